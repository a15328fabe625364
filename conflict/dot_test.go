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
	"strings"
	"testing"
)

func TestComponentToDot(t *testing.T) {
	graph := NewGraph(2)
	graph.AddConflicts(0, []VertexId{2})
	graph.ComputeConnectivity()
	components := Color(graph)

	dot := componentToDot(graph, 0, components[0])
	if !strings.Contains(dot, "component0") {
		t.Error("component name missing from dot output")
	}
	for _, label := range []string{`"0-0"`, `"1-0"`} {
		if !strings.Contains(dot, label) {
			t.Error("oriented read label", label, "missing from dot output")
		}
	}
	if !strings.Contains(dot, "/set18/") {
		t.Error("color scheme missing from dot output")
	}
}
