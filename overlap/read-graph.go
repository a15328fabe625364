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
	"log"
	"math"

	"github.com/exascience/elgraph/reads"
)

// EdgeId identifies an edge of a ReadGraph.
type EdgeId uint32

// InvalidEdgeId is returned by FindEdge when no edge exists.
const InvalidEdgeId = EdgeId(math.MaxUint32)

// Edge is a confirmed overlap between two oriented reads, directed
// from Source to Target. IsConflict is written by the conflict
// resolution pipeline; it is false until then.
type Edge struct {
	Source, Target reads.OrientedReadId
	IsConflict     bool
}

// ReadGraph is a directed graph over oriented reads whose edges are
// confirmed, high-confidence overlaps. It has one vertex per oriented
// read, 2 * readCount in total. The edge set is fixed after
// construction; only the IsConflict flags are mutable afterwards.
type ReadGraph struct {
	readCount     int
	edges         []Edge
	edgesBySource [][]EdgeId
	edgesByTarget [][]EdgeId
}

// NewReadGraph returns an empty ReadGraph over the oriented reads of
// readCount reads.
func NewReadGraph(readCount int) *ReadGraph {
	return &ReadGraph{
		readCount:     readCount,
		edgesBySource: make([][]EdgeId, 2*readCount),
		edgesByTarget: make([][]EdgeId, 2*readCount),
	}
}

// ReadCount returns the number of reads underlying this graph.
func (graph *ReadGraph) ReadCount() int {
	return graph.readCount
}

// VertexCount returns the number of vertices, one per oriented read.
func (graph *ReadGraph) VertexCount() int {
	return 2 * graph.readCount
}

// EdgeCount returns the number of edges.
func (graph *ReadGraph) EdgeCount() int {
	return len(graph.edges)
}

// Edge returns a pointer to the edge with the given id.
func (graph *ReadGraph) Edge(edgeId EdgeId) *Edge {
	return &graph.edges[edgeId]
}

// AddEdge adds a directed overlap edge from source to target and
// returns its id.
func (graph *ReadGraph) AddEdge(source, target reads.OrientedReadId) EdgeId {
	if source.Read() == target.Read() {
		log.Panicf("overlap edge connects read %v to itself", source.Read())
	}
	edgeId := EdgeId(len(graph.edges))
	graph.edges = append(graph.edges, Edge{Source: source, Target: target})
	graph.edgesBySource[source.Value()] = append(graph.edgesBySource[source.Value()], edgeId)
	graph.edgesByTarget[target.Value()] = append(graph.edgesByTarget[target.Value()], edgeId)
	return edgeId
}

// FindEdge returns the id of the edge from source to target, or
// InvalidEdgeId if there is none. Only the given direction is checked.
func (graph *ReadGraph) FindEdge(source, target reads.OrientedReadId) EdgeId {
	for _, edgeId := range graph.edgesBySource[source.Value()] {
		if graph.edges[edgeId].Target == target {
			return edgeId
		}
	}
	return InvalidEdgeId
}
