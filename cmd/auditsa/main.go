// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The auditsa command inspects a persisted suffix array index and prints a
// JSON summary of its contents to stdout: the length of the normalized
// text, the length of the suffix array, the prefix-table parameter k, and
// the number of prefix-table entries. It does not print the text, the
// suffix array, or the table itself — those can be large enough that the
// summary, not the payload, is what an operator wants on a terminal.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/kortschak/sufidx/sarray"
)

type summary struct {
	TextLen        int `json:"text_len"`
	SALen          int `json:"sa_len"`
	K              int `json:"k"`
	PreftabEntries int `json:"preftab_entries"`
}

func main() {
	path := flag.String("index", "", "specify index file to audit (required)")
	flag.Parse()
	if *path == "" {
		flag.Usage()
		os.Exit(1)
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	idx, err := sarray.ReadIndex(f)
	if err != nil {
		log.Fatal(err)
	}

	s := summary{TextLen: len(idx.Text), SALen: len(idx.SA)}
	if idx.Table != nil {
		s.K = idx.Table.K
		s.PreftabEntries = len(idx.Table.Entries)
	}

	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(s); err != nil {
		log.Fatal(err)
	}
}
