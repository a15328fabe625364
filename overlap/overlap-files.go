// elGraph: a high-performance tool for resolving read conflicts
// in long-read genome assembly.
// Copyright (c) 2020-2021 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elgraph/blob/master/LICENSE.txt>.

package overlap

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/exascience/elgraph/reads"
	"github.com/exascience/pargo/pipeline"
)

// EloverlapsHeader is the header line that every .eloverlaps file
// starts with.
const EloverlapsHeader = "# eloverlaps format version 1.0\n"

// An .eloverlaps file contains one directed overlap edge per line, as
// tab-separated oriented read values followed by the conflict flag as
// 0 or 1.

// FromEloverlapsFile loads a ReadGraph over readCount reads from an
// .eloverlaps file.
func FromEloverlapsFile(filename string, readCount int) (graph *ReadGraph, err error) {
	pathname, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	in, err := os.Open(pathname)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := in.Close(); nerr != nil {
			if err == nil {
				graph = nil
				err = nerr
			}
		}
	}()
	input := bufio.NewReader(in)
	header, err := input.ReadString('\n')
	if err != nil {
		return nil, err
	}
	if header != EloverlapsHeader {
		return nil, fmt.Errorf("%v is not an .eloverlaps file - invalid header", filename)
	}
	graph = NewReadGraph(readCount)
	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(input))
	p.Add(pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
		strs := data.([]string)
		edges := make([]Edge, 0, len(strs))
		for _, str := range strs {
			fields := strings.Split(str, "\t")
			if len(fields) != 3 {
				p.SetErr(fmt.Errorf("invalid overlap line %v", str))
				return edges
			}
			source, err := strconv.ParseUint(fields[0], 10, 32)
			if err != nil {
				p.SetErr(err)
				return edges
			}
			target, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				p.SetErr(err)
				return edges
			}
			if int(source) >= 2*readCount || int(target) >= 2*readCount {
				p.SetErr(fmt.Errorf("oriented read out of range in overlap line %v", str))
				return edges
			}
			isConflict, err := strconv.ParseBool(fields[2])
			if err != nil {
				p.SetErr(err)
				return edges
			}
			edges = append(edges, Edge{
				Source:     reads.OrientedReadId(source),
				Target:     reads.OrientedReadId(target),
				IsConflict: isConflict,
			})
		}
		return edges
	})))
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		for _, edge := range data.([]Edge) {
			edgeId := graph.AddEdge(edge.Source, edge.Target)
			graph.Edge(edgeId).IsConflict = edge.IsConflict
		}
		return data
	})))
	p.Run()
	if err = p.Err(); err != nil {
		return nil, err
	}
	return graph, nil
}

// ToEloverlapsFile stores a ReadGraph in an .eloverlaps file,
// including the current IsConflict flags.
func ToEloverlapsFile(graph *ReadGraph, filename string) (err error) {
	pathname, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	output, err := os.Create(pathname)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := output.Close(); nerr != nil {
			if err == nil {
				err = nerr
			}
		}
	}()
	if _, err = output.WriteString(EloverlapsHeader); err != nil {
		return err
	}
	var buf []byte
	for edgeId := 0; edgeId < graph.EdgeCount(); edgeId++ {
		edge := graph.Edge(EdgeId(edgeId))
		buf = buf[:0]
		buf = strconv.AppendUint(buf, uint64(edge.Source.Value()), 10)
		buf = append(buf, '\t')
		buf = strconv.AppendUint(buf, uint64(edge.Target.Value()), 10)
		buf = append(buf, '\t')
		if edge.IsConflict {
			buf = append(buf, '1')
		} else {
			buf = append(buf, '0')
		}
		buf = append(buf, '\n')
		if _, err := output.Write(buf); err != nil {
			return err
		}
	}
	return nil
}
