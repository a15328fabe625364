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

import "testing"

func TestOrientedReadId(t *testing.T) {
	o := NewOrientedReadId(5, 0)
	if o.Value() != 10 {
		t.Error("oriented read value failed")
	}
	if o.Read() != 5 || o.Strand() != 0 {
		t.Error("oriented read decomposition failed")
	}
	if o.String() != "5-0" {
		t.Error("oriented read formatting failed")
	}
	flipped := o.FlipStrand()
	if flipped.Value() != 11 || flipped.Read() != 5 || flipped.Strand() != 1 {
		t.Error("strand flip failed")
	}
	if flipped.FlipStrand() != o {
		t.Error("strand flip is not an involution")
	}
}

func TestOrientedReadIdMirror(t *testing.T) {
	// Every oriented read and its mirror derive from the same read.
	for readId := ReadId(0); readId < 100; readId++ {
		for strand := Strand(0); strand < 2; strand++ {
			o := NewOrientedReadId(readId, strand)
			if o.FlipStrand().Read() != readId {
				t.Fatal("mirror of", o, "derives from a different read")
			}
		}
	}
}
