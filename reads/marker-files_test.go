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
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestElmarkersFile(t *testing.T) {
	set := NewMarkerSet(3)
	set.AddRead(100, []Marker{{6, 10}, {0, 50}}, []VertexId{4, InvalidVertexId})
	set.AddRead(80, []Marker{{9, 20}, {3, 60}}, []VertexId{InvalidVertexId, 4})

	dir, err := ioutil.TempDir("", "elmarkers")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	filename := filepath.Join(dir, "test.elmarkers")

	if err := ToElmarkersFile(set, filename); err != nil {
		t.Fatal(err)
	}
	loaded, err := FromElmarkersFile(filename)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.K != set.K || loaded.ReadCount() != set.ReadCount() {
		t.Fatal("marker set shape failed after reload")
	}
	for readId := ReadId(0); int(readId) < set.ReadCount(); readId++ {
		if loaded.ReadLength(readId) != set.ReadLength(readId) {
			t.Error("read length failed after reload for read", readId)
		}
		o := NewOrientedReadId(readId, 0)
		for ordinal := 0; ordinal < set.MarkerCount(o); ordinal++ {
			if loaded.Marker(o, uint32(ordinal)) != set.Marker(o, uint32(ordinal)) {
				t.Error("marker failed after reload for read", readId, "ordinal", ordinal)
			}
			if loaded.VertexOf(o, uint32(ordinal)) != set.VertexOf(o, uint32(ordinal)) {
				t.Error("vertex failed after reload for read", readId, "ordinal", ordinal)
			}
		}
	}
}

func TestElmarkersFileRejectsInvalidHeader(t *testing.T) {
	dir, err := ioutil.TempDir("", "elmarkers")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	filename := filepath.Join(dir, "bad.elmarkers")
	if err := ioutil.WriteFile(filename, []byte("not a marker file\n"), 0666); err != nil {
		t.Fatal(err)
	}
	if _, err := FromElmarkersFile(filename); err == nil {
		t.Error("invalid header not rejected")
	}
}
