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
	"fmt"
	"log"
)

// ReadId identifies a read. It is used as a dense index into the reads
// of a MarkerSet.
type ReadId uint32

// Strand distinguishes the two orientations of a read: 0 for the read
// as stored, 1 for its reverse complement.
type Strand = ReadId

// OrientedReadId identifies a read together with a strand. The strand
// is stored in the least significant bit, so the two orientations of
// read r are the consecutive values 2*r and 2*r+1. OrientedReadId
// values are dense and can be used directly as vertex ids in graphs
// over oriented reads.
type OrientedReadId ReadId

// NewOrientedReadId returns the OrientedReadId for the given read and
// strand.
func NewOrientedReadId(readId ReadId, strand Strand) OrientedReadId {
	if strand > 1 {
		log.Panicf("invalid strand %v for read %v", strand, readId)
	}
	return OrientedReadId(readId<<1 | strand)
}

// Read returns the read this oriented read refers to.
func (o OrientedReadId) Read() ReadId {
	return ReadId(o) >> 1
}

// Strand returns the strand of this oriented read.
func (o OrientedReadId) Strand() Strand {
	return ReadId(o) & 1
}

// Value returns the dense integer value of this oriented read.
func (o OrientedReadId) Value() uint32 {
	return uint32(o)
}

// FlipStrand returns the oriented read for the same read on the
// opposite strand.
func (o OrientedReadId) FlipStrand() OrientedReadId {
	return o ^ 1
}

// String formats an oriented read as readId-strand, for example 251-0.
func (o OrientedReadId) String() string {
	return fmt.Sprint(o.Read(), "-", o.Strand())
}
