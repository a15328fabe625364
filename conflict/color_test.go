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
	"testing"

	"github.com/exascience/elgraph/overlap"
)

func checkColoring(t *testing.T, graph *Graph, components [][]VertexId) {
	t.Helper()
	// Every edge within a component connects differently colored
	// vertices.
	for edgeId := 0; edgeId < graph.EdgeCount(); edgeId++ {
		edge := graph.Edge(EdgeId(edgeId))
		vertex0 := graph.Vertex(edge.V0)
		vertex1 := graph.Vertex(edge.V1)
		if vertex0.ComponentId != vertex1.ComponentId {
			t.Error("edge", edge.V0, "-", edge.V1, "crosses components")
		}
		if vertex0.Color == vertex1.Color {
			t.Error("edge", edge.V0, "-", edge.V1, "connects vertices of the same color")
		}
	}
	// The sizes of the non-trivial components plus the discarded
	// singletons cover all vertices.
	covered := 0
	for _, component := range components {
		covered += len(component)
	}
	singletons := 0
	for vertexId := 0; vertexId < graph.VertexCount(); vertexId++ {
		vertex := graph.Vertex(VertexId(vertexId))
		if vertex.ComponentId == Invalid {
			singletons++
			if vertex.Color != Invalid {
				t.Error("singleton vertex", vertexId, "has a color")
			}
		} else if vertex.Color == Invalid {
			t.Error("component vertex", vertexId, "has no color")
		}
	}
	if covered+singletons != graph.VertexCount() {
		t.Error("component sizing failed")
	}
}

func TestColorPair(t *testing.T) {
	graph := NewGraph(2)
	graph.AddConflicts(0, []VertexId{2})
	graph.ComputeConnectivity()
	components := Color(graph)

	if len(components) != 2 {
		t.Fatal("component count failed")
	}
	// Equal-sized components are ordered by their minimum vertex id.
	if graph.Vertex(0).ComponentId != 0 || graph.Vertex(2).ComponentId != 0 {
		t.Error("component assignment failed for strand-0 pair")
	}
	if graph.Vertex(1).ComponentId != 1 || graph.Vertex(3).ComponentId != 1 {
		t.Error("component assignment failed for strand-1 pair")
	}
	if graph.Vertex(0).Color != 0 || graph.Vertex(2).Color != 1 {
		t.Error("coloring failed for strand-0 pair")
	}
	checkColoring(t, graph, components)
}

func TestColorTriangle(t *testing.T) {
	graph := NewGraph(3)
	graph.AddConflicts(0, []VertexId{2, 4})
	graph.AddConflicts(2, []VertexId{4})
	graph.ComputeConnectivity()
	components := Color(graph)

	if len(components) != 2 {
		t.Fatal("component count failed")
	}
	// A triangle needs three colors; greedy coloring in ascending
	// vertex id order assigns 0, 1, 2.
	if graph.Vertex(0).Color != 0 || graph.Vertex(2).Color != 1 || graph.Vertex(4).Color != 2 {
		t.Error("triangle coloring failed")
	}
	if graph.Vertex(1).Color != 0 || graph.Vertex(3).Color != 1 || graph.Vertex(5).Color != 2 {
		t.Error("mirrored triangle coloring failed")
	}
	checkColoring(t, graph, components)
}

func TestColorOrdersComponentsBySize(t *testing.T) {
	graph := NewGraph(6)
	// A component of three reads and a component of two reads, with
	// the smaller one on lower vertex ids.
	graph.AddConflicts(0, []VertexId{2})
	graph.AddConflicts(4, []VertexId{6, 8})
	graph.ComputeConnectivity()
	components := Color(graph)

	if len(components) != 4 {
		t.Fatal("component count failed")
	}
	if len(components[0]) != 3 || len(components[1]) != 3 {
		t.Error("larger components not first")
	}
	if graph.Vertex(4).ComponentId != 0 {
		t.Error("descending size order failed")
	}
	if graph.Vertex(0).ComponentId != 2 {
		t.Error("tie break by minimum vertex id failed")
	}
	// Vertices of read 5 are isolated.
	if graph.Vertex(10).ComponentId != Invalid || graph.Vertex(11).ComponentId != Invalid {
		t.Error("isolated vertices entered a component")
	}
	checkColoring(t, graph, components)
}

func TestColorIsDeterministic(t *testing.T) {
	graph := NewGraph(5)
	graph.AddConflicts(0, []VertexId{2, 4, 6})
	graph.AddConflicts(2, []VertexId{6})
	graph.AddConflicts(4, []VertexId{8})
	graph.ComputeConnectivity()
	Color(graph)

	colors := make([]uint32, graph.VertexCount())
	for vertexId := 0; vertexId < graph.VertexCount(); vertexId++ {
		colors[vertexId] = graph.Vertex(VertexId(vertexId)).Color
	}
	components := Color(graph)
	for vertexId := 0; vertexId < graph.VertexCount(); vertexId++ {
		if graph.Vertex(VertexId(vertexId)).Color != colors[vertexId] {
			t.Error("repeated coloring differs at vertex", vertexId)
		}
	}
	checkColoring(t, graph, components)
}

func TestColorToleratesDuplicateEdges(t *testing.T) {
	graph := NewGraph(2)
	// The same conflict inserted from two scan origins.
	graph.AddConflicts(0, []VertexId{2})
	graph.AddConflicts(0, []VertexId{2})
	graph.ComputeConnectivity()
	components := Color(graph)
	if len(components) != 2 {
		t.Fatal("component count failed with duplicate edges")
	}
	if graph.DistinctEdgeCount() != 2 {
		t.Error("distinct edge count failed")
	}
	checkColoring(t, graph, components)
}

func TestMarkReadGraphConflictEdgesAfterBuild(t *testing.T) {
	set := triangleMarkerSet()
	readGraph := overlap.NewReadGraph(set.ReadCount())
	graph := Build(set, readGraph, testCriteria)
	components := Color(graph)
	checkColoring(t, graph, components)
	if count := MarkReadGraphConflictEdges(graph, readGraph); count != 0 {
		t.Error("empty read graph gained conflict edges")
	}
}
