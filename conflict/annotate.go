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
	"log"

	"github.com/exascience/elgraph/overlap"
	"github.com/exascience/pargo/parallel"
)

// MarkReadGraphConflictEdges sets the IsConflict flag of every edge of
// the read graph from the coloring of the conflict graph, and returns
// the number of edges marked as conflicting.
//
// An overlap edge is conflicting exactly when both its endpoints
// belong to the same non-trivial connected component of the conflict
// graph and have different colors. Endpoints that are isolated in the
// conflict graph, or that lie in different components, give no
// evidence of conflict.
func MarkReadGraphConflictEdges(graph *Graph, readGraph *overlap.ReadGraph) int {
	if readGraph.VertexCount() != graph.VertexCount() {
		log.Panicf("conflict graph has %v vertices but read graph has %v", graph.VertexCount(), readGraph.VertexCount())
	}

	conflictEdgeCount := parallel.RangeReduceInt(0, readGraph.EdgeCount(), 0,
		func(low, high int) int {
			count := 0
			for edgeId := low; edgeId < high; edgeId++ {
				edge := readGraph.Edge(overlap.EdgeId(edgeId))
				vertex0 := graph.Vertex(edge.Source.Value())
				vertex1 := graph.Vertex(edge.Target.Value())

				if vertex0.ComponentId == Invalid || vertex1.ComponentId == Invalid {
					// One or both oriented reads are isolated in the
					// conflict graph, so there is no conflict.
					edge.IsConflict = false
					continue
				}

				// Both endpoints belong to non-trivial components, so
				// both must have been colored.
				if vertex0.Color == Invalid || vertex1.Color == Invalid {
					log.Panicf("edge %v-%v lies in colored components but misses a color",
						edge.Source, edge.Target)
				}

				edge.IsConflict = vertex0.ComponentId == vertex1.ComponentId &&
					vertex0.Color != vertex1.Color
				if edge.IsConflict {
					count++
				}
			}
			return count
		},
		func(x, y int) int {
			return x + y
		})

	log.Println("Marked as conflict edges", conflictEdgeCount, "edges out of",
		readGraph.EdgeCount(), "edges in the read graph.")
	return conflictEdgeCount
}
