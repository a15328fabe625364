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

// Package align reconstructs and evaluates induced alignments: the
// alignment between two oriented reads implied purely by their shared
// marker graph vertex memberships, not computed from sequence.
package align

import (
	"math"
	"sort"

	"github.com/exascience/elgraph/reads"
)

// Criteria are the tolerances an induced alignment is evaluated
// against. The same immutable Criteria are used for a whole pipeline
// run.
type Criteria struct {
	// MaxOffsetSigma is the maximum allowed standard deviation of the
	// ordinal offsets of the alignment.
	MaxOffsetSigma float64

	// MaxTrim is the maximum number of markers on either side of the
	// alignment that are covered by both reads but not aligned.
	MaxTrim uint32

	// MaxSkip is the maximum marker gap between consecutive aligned
	// ordinals, in either read.
	MaxSkip uint32
}

// OrdinalPair aligns the marker at Ordinal0 of one oriented read with
// the marker at Ordinal1 of another.
type OrdinalPair struct {
	Ordinal0, Ordinal1 uint32
}

// InducedAlignment is the set of ordinal pairs between two oriented
// reads whose markers lie on a common marker graph vertex, sorted by
// Ordinal0.
type InducedAlignment struct {
	Data []OrdinalPair
}

// Compute returns the induced alignment between two oriented reads,
// derived from their shared marker graph vertices.
func Compute(set *reads.MarkerSet, o0, o1 reads.OrientedReadId) InducedAlignment {
	var alignment InducedAlignment
	markerCount := set.MarkerCount(o0)
	for ordinal := uint32(0); ordinal < uint32(markerCount); ordinal++ {
		v := set.VertexOf(o0, ordinal)
		if v == reads.InvalidVertexId {
			continue
		}
		for _, ref := range set.MarkersOfVertex(v) {
			if ref.OrientedReadId == o1 {
				alignment.Data = append(alignment.Data, OrdinalPair{ordinal, ref.Ordinal})
			}
		}
	}
	sortByOrdinal0(alignment.Data)
	return alignment
}

// ComputeAll computes the induced alignments between one oriented read
// and a set of others in a single sweep over the markers of o0. The
// result slice is reused; on return it contains one alignment per
// element of candidates, in the same order.
func ComputeAll(set *reads.MarkerSet, o0 reads.OrientedReadId, candidates []reads.OrientedReadId, alignments *[]InducedAlignment) {
	result := (*alignments)[:0]
	for range candidates {
		result = append(result, InducedAlignment{})
	}
	index := make(map[reads.OrientedReadId]int, len(candidates))
	for i, o1 := range candidates {
		index[o1] = i
	}
	markerCount := set.MarkerCount(o0)
	for ordinal := uint32(0); ordinal < uint32(markerCount); ordinal++ {
		v := set.VertexOf(o0, ordinal)
		if v == reads.InvalidVertexId {
			continue
		}
		for _, ref := range set.MarkersOfVertex(v) {
			if i, ok := index[ref.OrientedReadId]; ok {
				result[i].Data = append(result[i].Data, OrdinalPair{ordinal, ref.Ordinal})
			}
		}
	}
	for i := range result {
		sortByOrdinal0(result[i].Data)
	}
	*alignments = result
}

func sortByOrdinal0(data []OrdinalPair) {
	sort.Slice(data, func(i, j int) bool {
		if data[i].Ordinal0 != data[j].Ordinal0 {
			return data[i].Ordinal0 < data[j].Ordinal0
		}
		return data[i].Ordinal1 < data[j].Ordinal1
	})
}

// Evaluate decides whether this induced alignment is consistent with
// the two oriented reads overlapping cleanly. markerCount0 and
// markerCount1 are the marker counts of the two reads. An alignment is
// rejected when its ordinal offsets spread beyond MaxOffsetSigma, when
// it leaves more than MaxTrim unaligned markers on either side, or
// when it skips more than MaxSkip markers between consecutive aligned
// ordinals.
func (alignment *InducedAlignment) Evaluate(markerCount0, markerCount1 uint32, criteria Criteria) bool {
	data := alignment.Data
	if len(data) == 0 {
		return false
	}

	// Offset spread.
	var offsetSum float64
	for _, pair := range data {
		offsetSum += float64(int64(pair.Ordinal0) - int64(pair.Ordinal1))
	}
	offsetAverage := offsetSum / float64(len(data))
	if len(data) > 1 {
		var sum float64
		for _, pair := range data {
			delta := float64(int64(pair.Ordinal0)-int64(pair.Ordinal1)) - offsetAverage
			sum += delta * delta
		}
		sigma := math.Sqrt(sum / float64(len(data)-1))
		if sigma > criteria.MaxOffsetSigma {
			return false
		}
	}

	// Trim. Only the shorter of the two unaligned head or tail
	// portions matters, as the other belongs to just one of the reads.
	first := data[0]
	last := data[len(data)-1]
	leftTrim := minUint32(first.Ordinal0, first.Ordinal1)
	rightTrim := minUint32(markerCount0-1-last.Ordinal0, markerCount1-1-last.Ordinal1)
	if leftTrim > criteria.MaxTrim || rightTrim > criteria.MaxTrim {
		return false
	}

	// Skip.
	for i := 1; i < len(data); i++ {
		skip0 := data[i].Ordinal0 - data[i-1].Ordinal0
		var skip1 uint32
		if data[i].Ordinal1 > data[i-1].Ordinal1 {
			skip1 = data[i].Ordinal1 - data[i-1].Ordinal1
		} else {
			skip1 = data[i-1].Ordinal1 - data[i].Ordinal1
		}
		if skip0 > criteria.MaxSkip || skip1 > criteria.MaxSkip {
			return false
		}
	}

	return true
}

func minUint32(x, y uint32) uint32 {
	if x < y {
		return x
	}
	return y
}
