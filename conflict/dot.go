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

package conflict

import (
	"fmt"
	"log"
	"path/filepath"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/exascience/elgraph/internal"
)

// WriteComponents writes one Graphviz file per non-trivial connected
// component of the conflict graph into outputDir, named
// ConflictGraph-<componentId>.dot. Vertices are labeled by oriented
// read and styled by color, so the components can be rendered by any
// external Graphviz tool.
//
// While writing the edges of a component, the coloring postcondition
// is verified: the endpoints of every edge must share the component
// and differ in color.
func WriteComponents(graph *Graph, components [][]VertexId, outputDir string) {
	internal.MkdirAll(outputDir, 0700)
	for componentId, component := range components {
		dot := componentToDot(graph, componentId, component)
		file := internal.FileCreate(filepath.Join(outputDir, fmt.Sprint("ConflictGraph-", componentId, ".dot")))
		if _, err := file.WriteString(dot); err != nil {
			log.Panic(err)
		}
		internal.Close(file)
	}
}

func componentToDot(graph *Graph, componentId int, component []VertexId) string {
	g := gographviz.NewGraph()
	graphName := fmt.Sprint("component", componentId)
	g.SetName(graphName)
	g.SetDir(false)
	g.SetStrict(false)

	quote := func(vertexId VertexId) string {
		return strconv.Quote(graph.OrientedReadId(vertexId).String())
	}

	for _, vertexId := range component {
		vertex := graph.Vertex(vertexId)
		// The /set18/ color scheme has 8 entries; colors wrap around.
		fill := strconv.Quote(fmt.Sprint("/set18/", vertex.Color%8+1))
		attrs := map[string]string{
			"tooltip": strconv.Quote(fmt.Sprint(graph.OrientedReadId(vertexId),
				" component ", vertex.ComponentId, " color ", vertex.Color)),
			"style":     "filled",
			"color":     fill,
			"fillcolor": fill,
		}
		g.AddNode(graphName, quote(vertexId), attrs)
	}

	for _, vertexId := range component {
		for _, edgeId := range graph.IncidentEdges(vertexId) {
			edge := graph.Edge(edgeId)
			if edge.V0 != vertexId {
				continue
			}
			vertex0 := graph.Vertex(edge.V0)
			vertex1 := graph.Vertex(edge.V1)
			if vertex0.ComponentId != vertex1.ComponentId {
				log.Panicf("conflict edge %v-%v crosses components",
					graph.OrientedReadId(edge.V0), graph.OrientedReadId(edge.V1))
			}
			if vertex0.Color == vertex1.Color {
				log.Panicf("conflict edge %v-%v connects two vertices of color %v",
					graph.OrientedReadId(edge.V0), graph.OrientedReadId(edge.V1), vertex0.Color)
			}
			g.AddEdge(quote(edge.V0), quote(edge.V1), false, nil)
		}
	}

	return g.String()
}
