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

package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/exascience/elgraph/reads"
	"github.com/exascience/pargo/parallel"
	"github.com/google/uuid"
)

// MarkersStatsHelp is the help string for this command.
const MarkersStatsHelp = "Markers-stats parameters:\n" +
	"elgraph markers-stats elmarkers-file\n" +
	"[--log-path path]\n"

// MarkersStats implements the elgraph markers-stats command. It
// summarizes an .elmarkers file: the number of reads and markers, how
// many markers are part of a marker graph vertex, and how many
// distinct vertices the markers cover.
func MarkersStats() error {
	var logPath string

	var flags flag.FlagSet

	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	markersFile := getFilename(os.Args[2], MarkersStatsHelp)

	parseFlags(flags, 3, MarkersStatsHelp)

	setLogOutput(logPath, uuid.New())

	if !checkExist("", markersFile) {
		fmt.Fprint(os.Stderr, MarkersStatsHelp)
		os.Exit(1)
	}

	markerSet, err := reads.FromElmarkersFile(markersFile)
	if err != nil {
		return err
	}

	markerCount := parallel.RangeReduceInt(0, markerSet.ReadCount(), 0,
		func(low, high int) int {
			count := 0
			for readId := low; readId < high; readId++ {
				count += markerSet.MarkerCount(reads.NewOrientedReadId(reads.ReadId(readId), 0))
			}
			return count
		},
		func(x, y int) int {
			return x + y
		})

	markersInVertices := parallel.RangeReduceInt(0, markerSet.ReadCount(), 0,
		func(low, high int) int {
			count := 0
			for readId := low; readId < high; readId++ {
				o := reads.NewOrientedReadId(reads.ReadId(readId), 0)
				for ordinal := 0; ordinal < markerSet.MarkerCount(o); ordinal++ {
					if markerSet.VertexOf(o, uint32(ordinal)) != reads.InvalidVertexId {
						count++
					}
				}
			}
			return count
		},
		func(x, y int) int {
			return x + y
		})

	vertices := make(map[reads.VertexId]bool)
	for readId := 0; readId < markerSet.ReadCount(); readId++ {
		o := reads.NewOrientedReadId(reads.ReadId(readId), 0)
		for ordinal := 0; ordinal < markerSet.MarkerCount(o); ordinal++ {
			if v := markerSet.VertexOf(o, uint32(ordinal)); v != reads.InvalidVertexId {
				vertices[v] = true
			}
		}
	}

	log.Println("Marker length:", markerSet.K)
	log.Println("Reads:", markerSet.ReadCount())
	log.Println("Strand-0 markers:", markerCount)
	log.Println("Markers in a marker graph vertex:", markersInVertices)
	log.Println("Distinct marker graph vertices:", len(vertices))

	return nil
}
