// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// buildsa builds a suffix array index from a reference FASTA file and
// writes it in sarray's binary format. Records in the FASTA file are
// joined in file order into a single reference, headers discarded.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/kortschak/sufidx/sarray"
)

func main() {
	k := flag.Int("preftab", 0, "prefix table key length (0 disables the prefix table)")
	parallelBuild := flag.Bool("parallel", true, "build the prefix table with a worker per chunk")
	seed := flag.Int64("seed", 0, "seed the DNA normalizer for reproducible builds (0 uses the current time)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s [options] <reference.fa> <index.out>

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	refPath, outPath := flag.Arg(0), flag.Arg(1)

	raw, err := readReference(refPath)
	if err != nil {
		log.Fatal(err)
	}

	var norm *sarray.Normalizer
	if *seed != 0 {
		norm = sarray.NewSeeded(*seed)
	} else {
		norm = sarray.New()
	}
	text := norm.Normalize(raw)
	log.Printf("normalized %d bases (with sentinel: %d)", len(raw), len(text))

	sa, err := sarray.BuildSuffixArray(text)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("built suffix array of length %d", len(sa))

	idx := &sarray.Index{Text: text, SA: sa}
	if *k > 0 {
		var table *sarray.PrefixTable
		if *parallelBuild {
			table, err = sarray.BuildPrefixTableParallel(context.Background(), text, sa, *k)
			if err != nil {
				log.Fatal(err)
			}
		} else {
			table = sarray.BuildPrefixTable(text, sa, *k)
		}
		idx.Table = table
		log.Printf("built prefix table: k=%d entries=%d", *k, len(table.Entries))
	}

	out, err := os.Create(outPath)
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()
	if err := idx.Write(out); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote index to %s", outPath)
}

// readReference reads every sequence record from the FASTA file at path
// and concatenates their residues into a single reference, discarding
// headers (spec.md §6.2: "Multiple records are effectively joined").
func readReference(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var raw []byte
	sc := seqio.NewScanner(fasta.NewReader(f, linear.NewSeq("", nil, alphabet.DNA)))
	for sc.Next() {
		seq := sc.Seq().(*linear.Seq)
		raw = append(raw, []byte(seq.Seq)...)
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("error reading reference fasta: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("reference fasta %s has no sequences", path)
	}
	return raw, nil
}
