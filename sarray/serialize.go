// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sarray

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Magic is the 32-bit tag every persisted index begins with.
const Magic uint32 = 0xABEEFDAD

var order = binary.LittleEndian

// Index is the fully materialized, immutable result of a build: the
// normalized text, its suffix array, and an optional prefix table.
type Index struct {
	Text  []byte
	SA    []int32
	Table *PrefixTable // nil or Table.K == 0 means no prefix table
}

// Write serializes idx to w in the format documented in spec.md §6.1:
// a magic tag, the length-prefixed text, the length-prefixed suffix
// array, and — when a prefix table is present — its entry count followed
// by (key_len, key, lo, hi) tuples with inclusive hi.
func (idx *Index) Write(w io.Writer) error {
	if err := binary.Write(w, order, Magic); err != nil {
		return wrapErr(IOError, "Write", err)
	}
	if err := writeBytes(w, idx.Text); err != nil {
		return wrapErr(IOError, "Write", err)
	}
	if err := writeInt32s(w, idx.SA); err != nil {
		return wrapErr(IOError, "Write", err)
	}

	k := 0
	if idx.Table != nil {
		k = idx.Table.K
	}
	if err := binary.Write(w, order, uint64(k)); err != nil {
		return wrapErr(IOError, "Write", err)
	}
	if k == 0 {
		return nil
	}

	if err := binary.Write(w, order, uint64(len(idx.Table.Entries))); err != nil {
		return wrapErr(IOError, "Write", err)
	}
	for key, iv := range idx.Table.Entries {
		if err := writeBytes(w, []byte(key)); err != nil {
			return wrapErr(IOError, "Write", err)
		}
		if err := binary.Write(w, order, iv.Lo); err != nil {
			return wrapErr(IOError, "Write", err)
		}
		if err := binary.Write(w, order, iv.Hi-1); err != nil {
			return wrapErr(IOError, "Write", err)
		}
	}
	return nil
}

// ReadIndex deserializes an Index from r, written by Index.Write. It
// returns an *Error with Kind InvalidIndex if the magic does not match or
// the stream is truncated or inconsistent.
func ReadIndex(r io.Reader) (*Index, error) {
	var magic uint32
	if err := binary.Read(r, order, &magic); err != nil {
		return nil, wrapErr(InvalidIndex, "ReadIndex", err)
	}
	if magic != Magic {
		return nil, wrapErr(InvalidIndex, "ReadIndex", fmt.Errorf("bad magic: got %#x, want %#x", magic, Magic))
	}

	text, err := readBytes(r)
	if err != nil {
		return nil, wrapErr(InvalidIndex, "ReadIndex", err)
	}

	sa, err := readInt32s(r)
	if err != nil {
		return nil, wrapErr(InvalidIndex, "ReadIndex", err)
	}

	var k64 uint64
	if err := binary.Read(r, order, &k64); err != nil {
		return nil, wrapErr(InvalidIndex, "ReadIndex", err)
	}
	k := int(k64)

	idx := &Index{Text: text, SA: sa, Table: &PrefixTable{K: k, Entries: make(map[string]Interval)}}
	if k == 0 {
		return idx, nil
	}

	var count uint64
	if err := binary.Read(r, order, &count); err != nil {
		return nil, wrapErr(InvalidIndex, "ReadIndex", err)
	}
	for i := uint64(0); i < count; i++ {
		key, err := readBytes(r)
		if err != nil {
			return nil, wrapErr(InvalidIndex, "ReadIndex", err)
		}
		var lo, hiInclusive int32
		if err := binary.Read(r, order, &lo); err != nil {
			return nil, wrapErr(InvalidIndex, "ReadIndex", err)
		}
		if err := binary.Read(r, order, &hiInclusive); err != nil {
			return nil, wrapErr(InvalidIndex, "ReadIndex", err)
		}
		idx.Table.Entries[string(key)] = Interval{Lo: lo, Hi: hiInclusive + 1}
	}
	return idx, nil
}

func writeBytes(w io.Writer, b []byte) error {
	if err := binary.Write(w, order, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func readBytes(r io.Reader) ([]byte, error) {
	var n uint64
	if err := binary.Read(r, order, &n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func writeInt32s(w io.Writer, vs []int32) error {
	if err := binary.Write(w, order, uint64(len(vs))); err != nil {
		return err
	}
	return binary.Write(w, order, vs)
}

func readInt32s(r io.Reader) ([]int32, error) {
	var n uint64
	if err := binary.Read(r, order, &n); err != nil {
		return nil, err
	}
	vs := make([]int32, n)
	if err := binary.Read(r, order, vs); err != nil {
		return nil, err
	}
	return vs, nil
}
