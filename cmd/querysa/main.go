// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// querysa answers a batch of queries against a suffix array index built by
// buildsa, writing one line per query record in the format
// "<title>\t<count>\t<pos_1>\t...\t<pos_count>".
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/kortschak/sufidx/sarray"
)

var modes = map[string]sarray.Mode{
	"naive":       sarray.ModeNaive,
	"simpleaccel": sarray.ModeSimpleAccel,
}

func main() {
	parallel := flag.Bool("parallel", true, "answer queries across a worker per GOMAXPROCS")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s [options] <index> <queries.fa> <mode> <output-or-'+'>

mode is one of: naive, simpleaccel
'+' for output suppresses the per-query file and emits only a summary line.

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 4 {
		flag.Usage()
		os.Exit(1)
	}
	indexPath, queriesPath, modeArg, outArg := flag.Arg(0), flag.Arg(1), flag.Arg(2), flag.Arg(3)

	mode, ok := modes[modeArg]
	if !ok {
		fmt.Fprintf(os.Stderr, "querysa: unknown mode %q\n", modeArg)
		os.Exit(1)
	}

	in, err := os.Open(indexPath)
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
	idx, err := sarray.ReadIndex(in)
	in.Close()
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
	log.Printf("loaded index: %d bases, %d suffix-array entries", len(idx.Text), len(idx.SA))

	records, err := readQueries(queriesPath)
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
	log.Printf("read %d query records", len(records))

	if err := sarray.RunBatch(context.Background(), idx, records, mode, *parallel); err != nil {
		log.Println(err)
		os.Exit(1)
	}

	var matches int
	for _, rec := range records {
		matches += len(rec.Results)
	}

	if outArg == "+" {
		fmt.Printf("queries=%d matches=%d\n", len(records), matches)
		return
	}

	out, err := os.Create(outArg)
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
	defer out.Close()
	w := bufio.NewWriter(out)
	for _, rec := range records {
		writeRecord(w, rec)
	}
	if err := w.Flush(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
	log.Printf("queries=%d matches=%d", len(records), matches)
}

// writeRecord writes one §6.4-format line for rec: title, count, then the
// matched positions in ascending order.
func writeRecord(w *bufio.Writer, rec *sarray.QueryRecord) {
	positions := append([]int32(nil), rec.Results...)
	sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })
	fmt.Fprintf(w, "%s\t%d", rec.Title, len(positions))
	for _, p := range positions {
		fmt.Fprintf(w, "\t%d", p)
	}
	fmt.Fprintln(w)
}

// readQueries reads every record of the FASTA file at path into a
// QueryRecord, using each record's description line as its title.
func readQueries(path string) ([]*sarray.QueryRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []*sarray.QueryRecord
	sc := seqio.NewScanner(fasta.NewReader(f, linear.NewSeq("", nil, alphabet.DNA)))
	for sc.Next() {
		seq := sc.Seq().(*linear.Seq)
		title := seq.ID
		if seq.Desc != "" {
			title = seq.ID + " " + seq.Desc
		}
		pattern := append([]byte(nil), []byte(seq.Seq)...)
		records = append(records, &sarray.QueryRecord{Title: title, Pattern: pattern})
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("error reading queries fasta: %w", err)
	}
	return records, nil
}
