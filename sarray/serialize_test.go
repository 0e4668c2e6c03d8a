// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sarray

import (
	"bytes"
	"math/rand"
	"testing"
)

func checkRoundTrip(t *testing.T, idx *Index) {
	t.Helper()
	var buf bytes.Buffer
	if err := idx.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := ReadIndex(&buf)
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	if !bytes.Equal(got.Text, idx.Text) {
		t.Fatalf("Text mismatch: got %q, want %q", got.Text, idx.Text)
	}
	if len(got.SA) != len(idx.SA) {
		t.Fatalf("SA length mismatch: got %d, want %d", len(got.SA), len(idx.SA))
	}
	for i := range idx.SA {
		if got.SA[i] != idx.SA[i] {
			t.Fatalf("SA[%d] mismatch: got %d, want %d", i, got.SA[i], idx.SA[i])
		}
	}

	wantK := 0
	var wantEntries map[string]Interval
	if idx.Table != nil {
		wantK = idx.Table.K
		wantEntries = idx.Table.Entries
	}
	if got.Table == nil {
		t.Fatal("ReadIndex returned nil Table")
	}
	if got.Table.K != wantK {
		t.Fatalf("Table.K mismatch: got %d, want %d", got.Table.K, wantK)
	}
	if len(got.Table.Entries) != len(wantEntries) {
		t.Fatalf("Table.Entries length mismatch: got %d, want %d", len(got.Table.Entries), len(wantEntries))
	}
	for key, iv := range wantEntries {
		giv, ok := got.Table.Entries[key]
		if !ok {
			t.Fatalf("missing key %q after round trip", key)
		}
		if giv != iv {
			t.Fatalf("key %q: got %v, want %v", key, giv, iv)
		}
	}
}

func TestRoundTripNoTable(t *testing.T) {
	text, sa := buildRef(t, "ACGTACGTACGT", 17)
	checkRoundTrip(t, &Index{Text: text, SA: sa})
}

func TestRoundTripWithTable(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	letters := []byte("ACGT")
	raw := make([]byte, 500)
	for i := range raw {
		raw[i] = letters[rng.Intn(len(letters))]
	}
	text, sa := buildRef(t, string(raw), 23)
	table := BuildPrefixTable(text, sa, 3)
	checkRoundTrip(t, &Index{Text: text, SA: sa, Table: table})
}

func TestReadIndexRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0, 0, 0, 0})
	_, err := ReadIndex(&buf)
	if err == nil {
		t.Fatal("expected error for bad magic")
	}
	serr, ok := err.(*Error)
	if !ok || serr.Kind != InvalidIndex {
		t.Fatalf("error = %v, want *Error with Kind InvalidIndex", err)
	}
}
