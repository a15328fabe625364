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

	"github.com/exascience/elgraph/align"
	"github.com/exascience/elgraph/overlap"
	"github.com/exascience/elgraph/reads"
	"github.com/exascience/pargo/parallel"
	"github.com/willf/bitset"
)

// buildScratch holds the per-worker work areas of the parallel sweep,
// reused across all reads of a range to avoid reallocation.
type buildScratch struct {
	candidates  []reads.OrientedReadId
	conflicting []VertexId
	alignments  []align.InducedAlignment
	seen        *bitset.BitSet
}

// Build constructs the conflict graph for all reads of a MarkerSet.
//
// The read id space is swept in parallel ranges; for each read,
// candidate conflicting partners are discovered through shared marker
// graph vertices, candidates with a confirmed overlap in the read
// graph are filtered out, and the induced alignments of the remaining
// candidates are evaluated against the criteria. Candidates that fail
// evaluation become conflict edges.
//
// Each unordered pair of reads is processed exactly once, by its
// lower-numbered read on strand 0; the strand-flipped mirror of every
// edge is inserted along with it.
func Build(set *reads.MarkerSet, readGraph *overlap.ReadGraph, criteria align.Criteria) *Graph {
	if set == nil || !set.HasVertexIndex() {
		log.Panic("conflict graph construction requires a marker set with its vertex index built")
	}
	if readGraph == nil {
		log.Panic("conflict graph construction requires a read graph")
	}
	if readGraph.ReadCount() != set.ReadCount() {
		log.Panicf("marker set has %v reads but read graph has %v", set.ReadCount(), readGraph.ReadCount())
	}

	graph := NewGraph(set.ReadCount())

	parallel.Range(0, set.ReadCount(), 0, func(low, high int) {
		scratch := &buildScratch{
			seen: bitset.New(uint(graph.VertexCount())),
		}
		for readId := low; readId < high; readId++ {
			addConflictEdges(graph, set, readGraph, criteria, reads.ReadId(readId), scratch)
		}
	})

	graph.ComputeConnectivity()
	log.Println("The conflict graph has", graph.VertexCount(), "vertices and", graph.EdgeCount(), "edges.")
	return graph
}

// addConflictEdges creates the conflict edges whose lower-numbered
// read is readId0. All work up to the final AddConflicts call is
// read-only over shared structures.
func addConflictEdges(
	graph *Graph,
	set *reads.MarkerSet,
	readGraph *overlap.ReadGraph,
	criteria align.Criteria,
	readId0 reads.ReadId,
	scratch *buildScratch,
) {
	// Put this read on strand 0. The strand-flipped mirror of every
	// edge is added along with the edge itself.
	o0 := reads.NewOrientedReadId(readId0, 0)

	// Find conflict candidates: oriented reads that share at least one
	// marker graph vertex with o0. Only reads with a higher id are
	// considered, so that each unordered pair is processed exactly
	// once. The bitset keeps the candidate list free of duplicates.
	scratch.candidates = scratch.candidates[:0]
	markerCount0 := uint32(set.MarkerCount(o0))
	for ordinal := uint32(0); ordinal < markerCount0; ordinal++ {
		v := set.VertexOf(o0, ordinal)
		if v == reads.InvalidVertexId {
			continue
		}
		for _, ref := range set.MarkersOfVertex(v) {
			if ref.OrientedReadId.Read() <= readId0 {
				continue
			}
			if !scratch.seen.Test(uint(ref.OrientedReadId.Value())) {
				scratch.seen.Set(uint(ref.OrientedReadId.Value()))
				scratch.candidates = append(scratch.candidates, ref.OrientedReadId)
			}
		}
	}
	for _, o1 := range scratch.candidates {
		scratch.seen.Clear(uint(o1.Value()))
	}

	// Remove candidates for which a confirmed overlap edge exists in
	// either direction. For those we already have a good alignment.
	kept := scratch.candidates[:0]
	for _, o1 := range scratch.candidates {
		forwardExists := readGraph.FindEdge(o0, o1) != overlap.InvalidEdgeId
		backwardExists := readGraph.FindEdge(o1, o0) != overlap.InvalidEdgeId
		if forwardExists || backwardExists {
			continue
		}
		kept = append(kept, o1)
	}
	scratch.candidates = kept

	// Compute the induced alignments between o0 and the surviving
	// candidates, and find the ones that are bad.
	align.ComputeAll(set, o0, scratch.candidates, &scratch.alignments)
	if len(scratch.alignments) != len(scratch.candidates) {
		log.Panicf("induced alignment count %v does not match candidate count %v for read %v",
			len(scratch.alignments), len(scratch.candidates), readId0)
	}
	scratch.conflicting = scratch.conflicting[:0]
	for i := range scratch.alignments {
		o1 := scratch.candidates[i]
		markerCount1 := uint32(set.MarkerCount(o1))
		if !scratch.alignments[i].Evaluate(markerCount0, markerCount1, criteria) {
			scratch.conflicting = append(scratch.conflicting, o1.Value())
		}
	}

	graph.AddConflicts(o0.Value(), scratch.conflicting)
}
