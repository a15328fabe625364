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

/*
Package conflict detects and resolves conflicts between overlapping
oriented reads.

Two oriented reads conflict when they share at least one marker graph
vertex, so they appear to overlap, yet the alignment induced by the
shared vertices fails the configured quality criteria. Such pairs
typically originate from different alleles, repeat copies, or
structural variants, and must not be allowed to contaminate the read
graph.

The pipeline is:

Build constructs an undirected conflict graph with one vertex per
oriented read. It sweeps the reads in parallel; all discovery,
filtering and evaluation work is read-only over shared structures, and
only the insertion of edges is serialized.

Color computes the connected components of the conflict graph,
discards trivial single-vertex components, and colors each remaining
component greedily so that no two directly conflicting oriented reads
share a color. Components and colors are stored on the vertices.

MarkReadGraphConflictEdges transfers the coloring onto the read graph
by setting the IsConflict flag of every overlap edge whose endpoints
lie in the same component with different colors.
*/
package conflict
