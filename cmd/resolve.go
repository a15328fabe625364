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
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/exascience/elgraph/align"
	"github.com/exascience/elgraph/conflict"
	"github.com/exascience/elgraph/overlap"
	"github.com/exascience/elgraph/reads"
	"github.com/google/uuid"
)

// ResolveHelp is the help string for this command.
const ResolveHelp = "Resolve parameters:\n" +
	"elgraph resolve elmarkers-file eloverlaps-file\n" +
	"--output eloverlaps-file\n" +
	"[--dot-output dir]\n" +
	"[--max-offset-sigma nr]\n" +
	"[--max-trim nr]\n" +
	"[--max-skip nr]\n" +
	"[--nr-of-threads nr]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// Resolve implements the elgraph resolve command.
//
// It loads the marker set and the read graph of confirmed overlaps,
// builds and colors the conflict graph, marks the conflicting overlap
// edges, and writes the annotated read graph back out. Success is
// all-or-nothing: any precondition or internal consistency failure
// aborts the run.
func Resolve() error {
	var (
		output, dotOutput, profile, logPath string
		maxOffsetSigma                      float64
		maxTrim, maxSkip                    int
		nrOfThreads                         int
		timed                               bool
	)

	var flags flag.FlagSet

	flags.StringVar(&output, "output", "", "output .eloverlaps file with conflict flags")
	flags.StringVar(&dotOutput, "dot-output", "", "directory for Graphviz files of the conflict graph components")
	flags.Float64Var(&maxOffsetSigma, "max-offset-sigma", 50, "maximum sigma of the ordinal offsets of an induced alignment")
	flags.IntVar(&maxTrim, "max-trim", 100, "maximum number of unaligned markers on either side of an induced alignment")
	flags.IntVar(&maxSkip, "max-skip", 100, "maximum marker gap between consecutive aligned ordinals")
	flags.IntVar(&nrOfThreads, "nr-of-threads", 0, "number of worker threads")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	markersFile := getFilename(os.Args[2], ResolveHelp)
	overlapsFile := getFilename(os.Args[3], ResolveHelp)

	parseFlags(flags, 4, ResolveHelp)

	runId := uuid.New()
	setLogOutput(logPath, runId)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", markersFile) {
		sanityChecksFailed = true
	}
	if !checkExist("", overlapsFile) {
		sanityChecksFailed = true
	}
	if output == "" {
		log.Println("Error: Missing --output parameter.")
		sanityChecksFailed = true
	} else if !checkCreate("--output", output) {
		sanityChecksFailed = true
	}
	if nrOfThreads < 0 {
		log.Println("Error: Invalid nr-of-threads: ", nrOfThreads)
		sanityChecksFailed = true
	}
	if maxOffsetSigma < 0 {
		log.Println("Error: Invalid max-offset-sigma: ", maxOffsetSigma)
		sanityChecksFailed = true
	}
	if maxTrim < 0 {
		log.Println("Error: Invalid max-trim: ", maxTrim)
		sanityChecksFailed = true
	}
	if maxSkip < 0 {
		log.Println("Error: Invalid max-skip: ", maxSkip)
		sanityChecksFailed = true
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, ResolveHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " resolve ", markersFile, " ", overlapsFile)
	fmt.Fprint(&command, " --output ", output)
	if dotOutput != "" {
		fmt.Fprint(&command, " --dot-output ", dotOutput)
	}
	fmt.Fprint(&command, " --max-offset-sigma ", maxOffsetSigma)
	fmt.Fprint(&command, " --max-trim ", maxTrim)
	fmt.Fprint(&command, " --max-skip ", maxSkip)
	if nrOfThreads > 0 {
		runtime.GOMAXPROCS(nrOfThreads)
		fmt.Fprint(&command, " --nr-of-threads ", nrOfThreads)
	}
	if timed {
		fmt.Fprint(&command, " --timed")
	}
	if profile != "" {
		fmt.Fprint(&command, " --profile ", profile)
	}
	if logPath != "" {
		fmt.Fprint(&command, " --log-path ", logPath)
	}

	// executing command

	log.Println("Executing command:\n", command.String())

	criteria := align.Criteria{
		MaxOffsetSigma: maxOffsetSigma,
		MaxTrim:        uint32(maxTrim),
		MaxSkip:        uint32(maxSkip),
	}

	var markerSet *reads.MarkerSet
	var readGraph *overlap.ReadGraph
	var err error
	timedRun(timed, profile, "Loading marker set.", 1, func() {
		markerSet, err = reads.FromElmarkersFile(markersFile)
		if err != nil {
			return
		}
		markerSet.BuildVertexIndex()
	})
	if err != nil {
		return err
	}
	log.Println("Loaded", markerSet.ReadCount(), "reads.")

	timedRun(timed, profile, "Loading read graph.", 2, func() {
		readGraph, err = overlap.FromEloverlapsFile(overlapsFile, markerSet.ReadCount())
	})
	if err != nil {
		return err
	}
	log.Println("Loaded", readGraph.EdgeCount(), "confirmed overlap edges.")

	var conflictGraph *conflict.Graph
	timedRun(timed, profile, "Building the conflict graph.", 3, func() {
		conflictGraph = conflict.Build(markerSet, readGraph, criteria)
	})

	var components [][]conflict.VertexId
	timedRun(timed, profile, "Coloring the conflict graph.", 4, func() {
		components = conflict.Color(conflictGraph)
	})

	timedRun(timed, profile, "Marking conflict edges in the read graph.", 5, func() {
		conflict.MarkReadGraphConflictEdges(conflictGraph, readGraph)
	})

	timedRun(timed, profile, "Writing output files.", 6, func() {
		err = overlap.ToEloverlapsFile(readGraph, output)
		if err != nil {
			return
		}
		if dotOutput != "" {
			conflict.WriteComponents(conflictGraph, components, dotOutput)
		}
	})
	if err != nil {
		return err
	}

	log.Println("The conflict graph contains", conflictGraph.DistinctEdgeCount(), "distinct conflict pairs.")

	return nil
}
