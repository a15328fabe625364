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

package reads

import (
	"log"
	"math"
)

// Marker is a short fixed-length sequence anchor at a specific
// position within an oriented read. The k-mer value is 2-bit encoded
// (A=0, C=1, G=2, T=3, most significant bits first).
type Marker struct {
	KmerId   uint64
	Position uint32
}

// VertexId identifies a marker graph vertex, a cluster of markers from
// different oriented reads believed to represent the same genomic
// locus. Vertices are numbered such that a vertex and its reverse
// complement form the consecutive pair (2*k, 2*k+1).
type VertexId uint64

// InvalidVertexId means a marker is not part of any marker graph
// vertex.
const InvalidVertexId = VertexId(math.MaxUint64)

// ReverseComplement returns the vertex containing the reverse
// complemented markers of this vertex.
func (v VertexId) ReverseComplement() VertexId {
	return v ^ 1
}

// MarkerReference locates one marker within an oriented read by its
// ordinal.
type MarkerReference struct {
	OrientedReadId OrientedReadId
	Ordinal        uint32
}

// ReverseComplementKmer returns the reverse complement of a 2-bit
// encoded k-mer of length k.
func ReverseComplementKmer(kmerId uint64, k uint32) uint64 {
	var rc uint64
	for i := uint32(0); i < k; i++ {
		rc = rc<<2 | (kmerId&3)^3
		kmerId >>= 2
	}
	return rc
}

// ReverseComplementMarkers derives the markers of an oriented read on
// strand 1 from the stored strand-0 markers: the marker order is
// reflected, each position is mirrored within the read, and each k-mer
// is replaced by its reverse complement. This is a pure function; the
// result is computed on demand and never cached.
func ReverseComplementMarkers(forward []Marker, readLength, k uint32) []Marker {
	reversed := make([]Marker, len(forward))
	for i, marker := range forward {
		reversed[len(forward)-1-i] = Marker{
			KmerId:   ReverseComplementKmer(marker.KmerId, k),
			Position: readLength - k - marker.Position,
		}
	}
	return reversed
}

// A MarkerSet stores the strand-0 markers of a set of reads, plus the
// marker graph vertex each marker belongs to. Markers on strand 1 are
// re-derived on demand via ReverseComplementMarkers and index
// arithmetic. Construction via AddRead, then BuildVertexIndex; after
// that the MarkerSet is read-only and safe for concurrent use.
type MarkerSet struct {
	K             uint32
	readLengths   []uint32
	markers       [][]Marker
	vertexTable   [][]VertexId
	vertexMarkers map[VertexId][]MarkerReference
}

// NewMarkerSet returns an empty MarkerSet for markers of length k.
func NewMarkerSet(k uint32) *MarkerSet {
	return &MarkerSet{K: k}
}

// AddRead adds a read with its strand-0 markers and their marker graph
// vertex assignments, and returns the id assigned to the read. Marker
// positions must be strictly increasing, and every marker must fit
// within the read.
func (set *MarkerSet) AddRead(length uint32, markers []Marker, vertices []VertexId) ReadId {
	if len(vertices) != len(markers) {
		log.Panicf("read %v: %v markers but %v vertex assignments", len(set.markers), len(markers), len(vertices))
	}
	for i, marker := range markers {
		if marker.Position+set.K > length {
			log.Panicf("read %v: marker %v at position %v exceeds read length %v", len(set.markers), i, marker.Position, length)
		}
		if i > 0 && marker.Position <= markers[i-1].Position {
			log.Panicf("read %v: marker positions not strictly increasing at ordinal %v", len(set.markers), i)
		}
	}
	readId := ReadId(len(set.markers))
	set.readLengths = append(set.readLengths, length)
	set.markers = append(set.markers, markers)
	set.vertexTable = append(set.vertexTable, vertices)
	return readId
}

// ReadCount returns the number of reads in this MarkerSet.
func (set *MarkerSet) ReadCount() int {
	return len(set.markers)
}

// ReadLength returns the length of the given read.
func (set *MarkerSet) ReadLength(readId ReadId) uint32 {
	return set.readLengths[readId]
}

// MarkerCount returns the number of markers of an oriented read. Both
// strands of a read have the same number of markers.
func (set *MarkerSet) MarkerCount(o OrientedReadId) int {
	return len(set.markers[o.Read()])
}

// Marker returns the marker at the given ordinal of an oriented read.
// Strand-1 markers are derived on the fly.
func (set *MarkerSet) Marker(o OrientedReadId, ordinal uint32) Marker {
	forward := set.markers[o.Read()]
	if o.Strand() == 0 {
		return forward[ordinal]
	}
	marker := forward[uint32(len(forward))-1-ordinal]
	return Marker{
		KmerId:   ReverseComplementKmer(marker.KmerId, set.K),
		Position: set.readLengths[o.Read()] - set.K - marker.Position,
	}
}

// Markers returns all markers of an oriented read in ordinal order.
// For strand 0 the result shares memory with the MarkerSet; for strand
// 1 it is freshly derived.
func (set *MarkerSet) Markers(o OrientedReadId) []Marker {
	forward := set.markers[o.Read()]
	if o.Strand() == 0 {
		return forward
	}
	return ReverseComplementMarkers(forward, set.readLengths[o.Read()], set.K)
}

// VertexOf returns the marker graph vertex the marker at the given
// ordinal of an oriented read belongs to, or InvalidVertexId if it
// belongs to none. The strand-1 marker at a reflected ordinal belongs
// to the reverse complement of the vertex of its strand-0 mirror.
func (set *MarkerSet) VertexOf(o OrientedReadId, ordinal uint32) VertexId {
	vertices := set.vertexTable[o.Read()]
	if o.Strand() == 0 {
		return vertices[ordinal]
	}
	v := vertices[uint32(len(vertices))-1-ordinal]
	if v == InvalidVertexId {
		return InvalidVertexId
	}
	return v.ReverseComplement()
}

// BuildVertexIndex builds the reverse index from marker graph vertices
// to the markers they contain, for both strands of every read. It must
// be called after the last AddRead and before any call to
// MarkersOfVertex.
func (set *MarkerSet) BuildVertexIndex() {
	index := make(map[VertexId][]MarkerReference)
	for readId, vertices := range set.vertexTable {
		markerCount := uint32(len(vertices))
		for ordinal, v := range vertices {
			if v == InvalidVertexId {
				continue
			}
			index[v] = append(index[v], MarkerReference{
				OrientedReadId: NewOrientedReadId(ReadId(readId), 0),
				Ordinal:        uint32(ordinal),
			})
			index[v.ReverseComplement()] = append(index[v.ReverseComplement()], MarkerReference{
				OrientedReadId: NewOrientedReadId(ReadId(readId), 1),
				Ordinal:        markerCount - 1 - uint32(ordinal),
			})
		}
	}
	set.vertexMarkers = index
}

// HasVertexIndex tells whether BuildVertexIndex has been called.
func (set *MarkerSet) HasVertexIndex() bool {
	return set.vertexMarkers != nil
}

// MarkersOfVertex returns all markers contained in a marker graph
// vertex. The result shares memory with the MarkerSet and must not be
// modified.
func (set *MarkerSet) MarkersOfVertex(v VertexId) []MarkerReference {
	return set.vertexMarkers[v]
}
