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
	"github.com/exascience/elgraph/reads"
)

func TestMarkReadGraphConflictEdges(t *testing.T) {
	// Conflict between reads 0 and 1; reads 2 and 3 stay isolated.
	graph := NewGraph(4)
	graph.AddConflicts(0, []VertexId{2})
	graph.ComputeConnectivity()
	Color(graph)

	readGraph := overlap.NewReadGraph(4)
	// Same component, different colors: conflicting.
	sameComponent := readGraph.AddEdge(reads.NewOrientedReadId(0, 0), reads.NewOrientedReadId(1, 0))
	// Different non-trivial components: not conflicting.
	crossComponent := readGraph.AddEdge(reads.NewOrientedReadId(0, 0), reads.NewOrientedReadId(1, 1))
	// One endpoint isolated in the conflict graph: not conflicting.
	isolated := readGraph.AddEdge(reads.NewOrientedReadId(2, 0), reads.NewOrientedReadId(0, 0))
	// Both endpoints isolated: not conflicting.
	bothIsolated := readGraph.AddEdge(reads.NewOrientedReadId(2, 1), reads.NewOrientedReadId(3, 0))

	if count := MarkReadGraphConflictEdges(graph, readGraph); count != 1 {
		t.Fatal("conflict edge count failed")
	}
	if !readGraph.Edge(sameComponent).IsConflict {
		t.Error("same-component edge not marked as conflicting")
	}
	if readGraph.Edge(crossComponent).IsConflict {
		t.Error("cross-component edge marked as conflicting")
	}
	if readGraph.Edge(isolated).IsConflict {
		t.Error("edge to isolated read marked as conflicting")
	}
	if readGraph.Edge(bothIsolated).IsConflict {
		t.Error("edge between isolated reads marked as conflicting")
	}
}

func TestMarkReadGraphConflictEdgesResetsStaleFlags(t *testing.T) {
	graph := NewGraph(2)
	graph.ComputeConnectivity()
	Color(graph)

	readGraph := overlap.NewReadGraph(2)
	stale := readGraph.AddEdge(reads.NewOrientedReadId(0, 0), reads.NewOrientedReadId(1, 0))
	readGraph.Edge(stale).IsConflict = true

	if count := MarkReadGraphConflictEdges(graph, readGraph); count != 0 {
		t.Fatal("conflict edge count failed")
	}
	if readGraph.Edge(stale).IsConflict {
		t.Error("stale conflict flag not cleared")
	}
}
