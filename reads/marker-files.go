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

package reads

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/exascience/pargo/pipeline"
)

// ElmarkersHeader is the header line that every .elmarkers file starts
// with. It is followed by a line declaring the marker length, for
// example "k\t16".
const ElmarkersHeader = "# elmarkers format version 1.0\n"

// An .elmarkers file declares each read with a line "R readId length",
// followed by one line "M kmerId position vertexId" per strand-0
// marker in ordinal order; vertexId is -1 for markers that are not
// part of any marker graph vertex. Read ids must be dense and
// ascending.

type markerFileRecord struct {
	isRead   bool
	readId   ReadId
	length   uint32
	marker   Marker
	vertexId VertexId
}

func parseMarkerFileLine(str string) (record markerFileRecord, err error) {
	fields := strings.Split(str, "\t")
	switch fields[0] {
	case "R":
		if len(fields) != 3 {
			return record, fmt.Errorf("invalid read declaration %v", str)
		}
		record.isRead = true
		readId, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return record, err
		}
		record.readId = ReadId(readId)
		length, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return record, err
		}
		record.length = uint32(length)
		return record, nil
	case "M":
		if len(fields) != 4 {
			return record, fmt.Errorf("invalid marker line %v", str)
		}
		kmerId, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return record, err
		}
		position, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return record, err
		}
		record.marker = Marker{KmerId: kmerId, Position: uint32(position)}
		vertexId, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			return record, err
		}
		if vertexId < 0 {
			record.vertexId = InvalidVertexId
		} else {
			record.vertexId = VertexId(vertexId)
		}
		return record, nil
	default:
		return record, fmt.Errorf("invalid line %v in .elmarkers file", str)
	}
}

// FromElmarkersFile loads a MarkerSet from an .elmarkers file.
func FromElmarkersFile(filename string) (set *MarkerSet, err error) {
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
				set = nil
				err = nerr
			}
		}
	}()
	input := bufio.NewReader(in)
	header, err := input.ReadString('\n')
	if err != nil {
		return nil, err
	}
	if header != ElmarkersHeader {
		return nil, fmt.Errorf("%v is not an .elmarkers file - invalid header", filename)
	}
	kLine, err := input.ReadString('\n')
	if err != nil {
		return nil, err
	}
	kFields := strings.Split(strings.TrimSuffix(kLine, "\n"), "\t")
	if len(kFields) != 2 || kFields[0] != "k" {
		return nil, fmt.Errorf("%v is not an .elmarkers file - missing marker length", filename)
	}
	k, err := strconv.ParseUint(kFields[1], 10, 32)
	if err != nil {
		return nil, err
	}
	set = NewMarkerSet(uint32(k))
	var (
		pendingRead     bool
		pendingLength   uint32
		pendingMarkers  []Marker
		pendingVertices []VertexId
	)
	flush := func() {
		if pendingRead {
			set.AddRead(pendingLength, pendingMarkers, pendingVertices)
			pendingMarkers = nil
			pendingVertices = nil
		}
	}
	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(input))
	p.Add(pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
		strs := data.([]string)
		records := make([]markerFileRecord, 0, len(strs))
		for _, str := range strs {
			record, err := parseMarkerFileLine(str)
			if err != nil {
				p.SetErr(err)
				return records
			}
			records = append(records, record)
		}
		return records
	})))
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		for _, record := range data.([]markerFileRecord) {
			if record.isRead {
				flush()
				if record.readId != ReadId(set.ReadCount()) {
					p.SetErr(fmt.Errorf("read ids not dense and ascending at read %v", record.readId))
					return data
				}
				pendingRead = true
				pendingLength = record.length
			} else {
				if !pendingRead {
					p.SetErr(fmt.Errorf("marker line before first read declaration"))
					return data
				}
				pendingMarkers = append(pendingMarkers, record.marker)
				pendingVertices = append(pendingVertices, record.vertexId)
			}
		}
		return data
	})))
	p.Run()
	if err = p.Err(); err != nil {
		return nil, err
	}
	flush()
	return set, nil
}

// ToElmarkersFile stores a MarkerSet in an .elmarkers file.
func ToElmarkersFile(set *MarkerSet, filename string) (err error) {
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
	if _, err = output.WriteString(ElmarkersHeader); err != nil {
		return err
	}
	if _, err = fmt.Fprint(output, "k\t", set.K, "\n"); err != nil {
		return err
	}
	for readId := 0; readId < set.ReadCount(); readId++ {
		o := NewOrientedReadId(ReadId(readId), 0)
		var buf []byte
		buf = append(buf, 'R', '\t')
		buf = strconv.AppendUint(buf, uint64(readId), 10)
		buf = append(buf, '\t')
		buf = strconv.AppendUint(buf, uint64(set.ReadLength(ReadId(readId))), 10)
		buf = append(buf, '\n')
		for ordinal, marker := range set.Markers(o) {
			buf = append(buf, 'M', '\t')
			buf = strconv.AppendUint(buf, marker.KmerId, 10)
			buf = append(buf, '\t')
			buf = strconv.AppendUint(buf, uint64(marker.Position), 10)
			buf = append(buf, '\t')
			if v := set.VertexOf(o, uint32(ordinal)); v == InvalidVertexId {
				buf = append(buf, '-', '1')
			} else {
				buf = strconv.AppendUint(buf, uint64(v), 10)
			}
			buf = append(buf, '\n')
		}
		if _, err := output.Write(buf); err != nil {
			return err
		}
	}
	return nil
}
