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

	"github.com/exascience/elgraph/align"
	"github.com/exascience/elgraph/overlap"
	"github.com/exascience/elgraph/reads"
)

var testCriteria = align.Criteria{MaxOffsetSigma: 1, MaxTrim: 2, MaxSkip: 2}

func testMarkers(n int) []reads.Marker {
	result := make([]reads.Marker, n)
	for i := range result {
		result[i] = reads.Marker{KmerId: uint64(i), Position: uint32(10 * (i + 1))}
	}
	return result
}

// testVertices assigns the given vertex to some ordinals of a read
// with n markers, and leaves all other ordinals unassigned.
func testVertices(n int, assignments map[int]reads.VertexId) []reads.VertexId {
	result := make([]reads.VertexId, n)
	for i := range result {
		result[i] = reads.InvalidVertexId
	}
	for ordinal, v := range assignments {
		result[ordinal] = v
	}
	return result
}

func hasEdge(graph *Graph, v0, v1 VertexId) bool {
	for edgeId := 0; edgeId < graph.EdgeCount(); edgeId++ {
		if graph.Edge(EdgeId(edgeId)) == (Edge{V0: v0, V1: v1}) {
			return true
		}
	}
	return false
}

func checkEdgeProperties(t *testing.T, graph *Graph) {
	t.Helper()
	for edgeId := 0; edgeId < graph.EdgeCount(); edgeId++ {
		edge := graph.Edge(EdgeId(edgeId))
		o0 := graph.OrientedReadId(edge.V0)
		o1 := graph.OrientedReadId(edge.V1)
		// No self-conflicts, and edges always point from the scanning
		// read to a higher-numbered read.
		if o0.Read() >= o1.Read() {
			t.Error("edge", o0, "-", o1, "violates the read ordering rule")
		}
		// The edge set is closed under strand flip.
		if !hasEdge(graph, edge.V0^1, edge.V1^1) {
			t.Error("mirror of edge", o0, "-", o1, "is missing")
		}
	}
}

// Two reads sharing a single marker graph vertex in the middle of
// both: the induced alignment leaves too much trim on both sides, so
// the reads conflict.
func conflictingPairMarkerSet() *reads.MarkerSet {
	set := reads.NewMarkerSet(4)
	set.AddRead(100, testMarkers(8), testVertices(8, map[int]reads.VertexId{3: 10}))
	set.AddRead(100, testMarkers(8), testVertices(8, map[int]reads.VertexId{3: 10}))
	set.BuildVertexIndex()
	return set
}

func TestBuildConflictingPair(t *testing.T) {
	set := conflictingPairMarkerSet()
	readGraph := overlap.NewReadGraph(set.ReadCount())
	graph := Build(set, readGraph, testCriteria)

	if graph.VertexCount() != 4 {
		t.Fatal("vertex count failed")
	}
	if graph.EdgeCount() != 2 {
		t.Fatal("edge count failed")
	}
	if !hasEdge(graph, 0, 2) {
		t.Error("conflict edge missing")
	}
	if !hasEdge(graph, 1, 3) {
		t.Error("mirrored conflict edge missing")
	}
	checkEdgeProperties(t, graph)
}

func TestBuildFiltersConfirmedOverlaps(t *testing.T) {
	set := conflictingPairMarkerSet()
	readGraph := overlap.NewReadGraph(set.ReadCount())
	// A confirmed overlap in either direction suppresses conflict
	// detection for the pair.
	readGraph.AddEdge(reads.NewOrientedReadId(1, 0), reads.NewOrientedReadId(0, 0))
	graph := Build(set, readGraph, testCriteria)
	if graph.EdgeCount() != 0 {
		t.Error("confirmed overlap not filtered")
	}
}

func TestBuildAcceptsCleanOverlap(t *testing.T) {
	set := reads.NewMarkerSet(4)
	// Two reads sharing all their marker graph vertices in order: the
	// induced alignment is clean, so there is no conflict.
	vertices := []reads.VertexId{100, 102, 104, 106, 108}
	set.AddRead(100, testMarkers(5), vertices)
	set.AddRead(100, testMarkers(5), vertices)
	set.BuildVertexIndex()
	readGraph := overlap.NewReadGraph(set.ReadCount())
	graph := Build(set, readGraph, testCriteria)
	if graph.EdgeCount() != 0 {
		t.Error("clean overlap declared a conflict")
	}
}

// Three reads conflicting pairwise, plus an isolated read.
func triangleMarkerSet() *reads.MarkerSet {
	set := reads.NewMarkerSet(4)
	set.AddRead(100, testMarkers(8), testVertices(8, map[int]reads.VertexId{3: 10, 4: 20}))
	set.AddRead(100, testMarkers(8), testVertices(8, map[int]reads.VertexId{3: 10, 4: 30}))
	set.AddRead(100, testMarkers(8), testVertices(8, map[int]reads.VertexId{3: 30, 4: 20}))
	set.AddRead(100, testMarkers(8), testVertices(8, nil))
	set.BuildVertexIndex()
	return set
}

func TestBuildTriangle(t *testing.T) {
	set := triangleMarkerSet()
	readGraph := overlap.NewReadGraph(set.ReadCount())
	graph := Build(set, readGraph, testCriteria)

	if graph.EdgeCount() != 6 {
		t.Fatal("edge count failed")
	}
	checkEdgeProperties(t, graph)
	for _, edge := range []Edge{{0, 2}, {0, 4}, {2, 4}, {1, 3}, {1, 5}, {3, 5}} {
		if !hasEdge(graph, edge.V0, edge.V1) {
			t.Error("triangle edge", edge.V0, "-", edge.V1, "missing")
		}
	}
	// The isolated read has no incident edges on either strand.
	if graph.Degree(6) != 0 || graph.Degree(7) != 0 {
		t.Error("isolated read gained conflict edges")
	}
}
