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
	"sort"
)

// Union-find over flat parent arrays indexed by dense vertex id.

func findComponentRoot(parent []VertexId, vertexId VertexId) VertexId {
	root := vertexId
	for root != parent[root] {
		root = parent[root]
	}
	for vertexId != root {
		next := parent[vertexId]
		parent[vertexId] = root
		vertexId = next
	}
	return root
}

func joinComponents(parent []VertexId, vertexId1, vertexId2 VertexId) {
	root1 := findComponentRoot(parent, vertexId1)
	root2 := findComponentRoot(parent, vertexId2)
	if root1 == root2 {
		return
	}
	parent[root1] = root2
}

// Color computes the connected components of the conflict graph and
// colors each non-trivial component greedily. It runs single-threaded
// over the frozen edge set, after all Build workers have joined.
//
// Trivial components of a single isolated vertex are discarded; their
// vertices keep Invalid as component id and color. The remaining
// components are ordered by descending size, with ties broken by
// their minimum vertex id, and assigned dense sequential component
// ids. Within a component, vertices are colored in ascending vertex
// id order, each receiving the smallest color not used by an already
// colored neighbor, so that no edge connects two vertices of the same
// color. Repeated runs over the same graph produce the same result.
//
// The components are returned in component id order.
func Color(graph *Graph) [][]VertexId {
	if graph.incidentEdges == nil {
		log.Panic("coloring requires the connectivity of the conflict graph")
	}

	n := len(graph.vertices)
	for vertexId := range graph.vertices {
		graph.vertices[vertexId] = Vertex{ComponentId: Invalid, Color: Invalid}
	}

	// Compute connected components.
	parent := make([]VertexId, n)
	for vertexId := range parent {
		parent[vertexId] = VertexId(vertexId)
	}
	for _, edge := range graph.edges {
		joinComponents(parent, edge.V0, edge.V1)
	}

	// Gather the vertices of each connected component, in ascending
	// vertex id order.
	componentMap := make(map[VertexId][]VertexId)
	for vertexId := 0; vertexId < n; vertexId++ {
		root := findComponentRoot(parent, VertexId(vertexId))
		componentMap[root] = append(componentMap[root], VertexId(vertexId))
	}

	// Discard trivial components and sort the rest by decreasing
	// size, breaking ties by minimum vertex id for reproducibility.
	var components [][]VertexId
	for _, component := range componentMap {
		if len(component) > 1 {
			components = append(components, component)
		}
	}
	sort.Slice(components, func(i, j int) bool {
		if len(components[i]) != len(components[j]) {
			return len(components[i]) > len(components[j])
		}
		return components[i][0] < components[j][0]
	})

	// Store the component ids and color each component separately.
	nonTrivialVertexCount := 0
	for componentId, component := range components {
		nonTrivialVertexCount += len(component)
		for _, vertexId := range component {
			graph.vertices[vertexId].ComponentId = uint32(componentId)
		}
		colorComponent(graph, component)
	}

	log.Println("Found", len(components),
		"non-trivial connected components with a total of", nonTrivialVertexCount,
		"vertices out of", n, "vertices in the conflict graph.")
	return components
}

// colorComponent greedily colors the vertices of one connected
// component in ascending vertex id order. Colors are not minimized.
func colorComponent(graph *Graph, component []VertexId) {
	// A greedy coloring never needs more colors than the component
	// has vertices.
	used := make([]bool, len(component))
	for _, vertexId := range component {
		for i := range used {
			used[i] = false
		}
		for _, edgeId := range graph.IncidentEdges(vertexId) {
			neighbor := graph.edges[edgeId].OtherVertex(vertexId)
			if color := graph.vertices[neighbor].Color; color != Invalid {
				used[color] = true
			}
		}
		for color := range used {
			if !used[color] {
				graph.vertices[vertexId].Color = uint32(color)
				break
			}
		}
	}
}
