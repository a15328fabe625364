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
	"sort"
	"sync"

	"github.com/exascience/elgraph/reads"
	psort "github.com/exascience/pargo/sort"
)

// VertexId identifies a vertex of the conflict graph. It equals the
// value of the corresponding oriented read.
type VertexId = uint32

// EdgeId identifies an edge of the conflict graph.
type EdgeId = uint32

// Invalid is the sentinel for component ids and colors of vertices
// that are not part of any non-trivial connected component.
const Invalid = ^uint32(0)

// Vertex carries the per-vertex results of conflict resolution. Both
// fields are Invalid until Color assigns them.
type Vertex struct {
	ComponentId uint32
	Color       uint32
}

// Edge is an undirected conflict edge between two oriented reads. A
// conflict is binary; edges carry no further payload.
type Edge struct {
	V0, V1 VertexId
}

// Graph is the conflict graph: an undirected graph with one vertex per
// oriented read whose edges denote pairs of oriented reads that
// overlap by marker sharing but fail induced alignment evaluation.
//
// The edge set is closed under strand flip: for every edge (u, v) the
// edge (flip(u), flip(v)) is also present.
//
// The graph is mutable under its internal lock while Build workers
// insert edges; after ComputeConnectivity the edge set is frozen and
// only the vertex annotations change.
type Graph struct {
	mutex         sync.Mutex
	vertices      []Vertex
	edges         []Edge
	incidentEdges [][]EdgeId
}

// NewGraph returns a conflict graph with 2 * readCount vertices and no
// edges. All component ids and colors start out Invalid.
func NewGraph(readCount int) *Graph {
	vertices := make([]Vertex, 2*readCount)
	for i := range vertices {
		vertices[i] = Vertex{ComponentId: Invalid, Color: Invalid}
	}
	return &Graph{vertices: vertices}
}

// VertexCount returns the number of vertices, one per oriented read.
func (graph *Graph) VertexCount() int {
	return len(graph.vertices)
}

// EdgeCount returns the number of edges, including duplicates inserted
// from different scan origins.
func (graph *Graph) EdgeCount() int {
	return len(graph.edges)
}

// Vertex returns a pointer to the vertex with the given id.
func (graph *Graph) Vertex(vertexId VertexId) *Vertex {
	return &graph.vertices[vertexId]
}

// Edge returns the edge with the given id.
func (graph *Graph) Edge(edgeId EdgeId) Edge {
	return graph.edges[edgeId]
}

// OrientedReadId returns the oriented read a vertex stands for.
func (graph *Graph) OrientedReadId(vertexId VertexId) reads.OrientedReadId {
	return reads.OrientedReadId(vertexId)
}

func (graph *Graph) addEdge(v0, v1 VertexId) {
	graph.edges = append(graph.edges, Edge{V0: v0, V1: v1})
}

// AddConflicts records that the oriented read v0 conflicts with each
// element of conflicting. For every conflict, both the edge itself and
// its strand-flipped mirror are inserted. The insertion of all edges
// for one scanned read happens under a single lock acquisition; this
// is the only synchronized operation during graph construction.
func (graph *Graph) AddConflicts(v0 VertexId, conflicting []VertexId) {
	if len(conflicting) == 0 {
		return
	}
	graph.mutex.Lock()
	defer graph.mutex.Unlock()
	for _, v1 := range conflicting {
		graph.addEdge(v0, v1)
		graph.addEdge(v0^1, v1^1)
	}
}

// ComputeConnectivity builds the per-vertex incidence lists. It must
// be called once, after all edges have been inserted and all workers
// have joined; the edge set is frozen from then on.
func (graph *Graph) ComputeConnectivity() {
	incidentEdges := make([][]EdgeId, len(graph.vertices))
	for edgeId, edge := range graph.edges {
		incidentEdges[edge.V0] = append(incidentEdges[edge.V0], EdgeId(edgeId))
		incidentEdges[edge.V1] = append(incidentEdges[edge.V1], EdgeId(edgeId))
	}
	graph.incidentEdges = incidentEdges
}

// IncidentEdges returns the ids of the edges incident to a vertex.
// ComputeConnectivity must have been called.
func (graph *Graph) IncidentEdges(vertexId VertexId) []EdgeId {
	return graph.incidentEdges[vertexId]
}

// Degree returns the number of edges incident to a vertex.
func (graph *Graph) Degree(vertexId VertexId) int {
	return len(graph.incidentEdges[vertexId])
}

// OtherVertex returns the endpoint of an edge other than the given
// one.
func (edge Edge) OtherVertex(vertexId VertexId) VertexId {
	if edge.V0 == vertexId {
		return edge.V1
	}
	return edge.V0
}

func sortEdges(edges []Edge) {
	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].V0 != edges[j].V0 {
			return edges[i].V0 < edges[j].V0
		}
		return edges[i].V1 < edges[j].V1
	})
}

type stableEdgeSorter []Edge

func (s stableEdgeSorter) SequentialSort(i, j int) {
	sortEdges(s[i:j])
}

func (s stableEdgeSorter) NewTemp() psort.StableSorter {
	return stableEdgeSorter(make([]Edge, len(s)))
}

func (s stableEdgeSorter) Len() int {
	return len(s)
}

func (s stableEdgeSorter) Less(i, j int) bool {
	if s[i].V0 != s[j].V0 {
		return s[i].V0 < s[j].V0
	}
	return s[i].V1 < s[j].V1
}

func (s stableEdgeSorter) Assign(source psort.StableSorter) func(i, j, len int) {
	dst, src := s, source.(stableEdgeSorter)
	return func(i, j, len int) {
		copy(dst[i:i+len], src[j:j+len])
	}
}

// DistinctEdgeCount returns the number of distinct conflict pairs,
// counting parallel edges inserted from different scan origins only
// once. Since a conflict edge always points from a lower to a higher
// read, no normalization of endpoint order is needed.
func (graph *Graph) DistinctEdgeCount() int {
	if len(graph.edges) == 0 {
		return 0
	}
	edges := make([]Edge, len(graph.edges))
	copy(edges, graph.edges)
	psort.StableSort(stableEdgeSorter(edges))
	count := 1
	for i := 1; i < len(edges); i++ {
		if edges[i] != edges[i-1] {
			count++
		}
	}
	return count
}
