// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package waveform

import "fmt"

// Memory assembles snippets and sequences into a waveform memory
// image.
//
// Snippet IDs start at 1 (ID 0 is reserved by the chip), sequence IDs
// at 0. Both are assigned in insertion order.
type Memory struct {
	snippets []Snippet
	seqs     []Sequence
}

// NewMemory returns an empty waveform memory.
func NewMemory() *Memory {
	return &Memory{}
}

// AddSnippet appends a snippet and returns its ID (1-15).
func (mem *Memory) AddSnippet(s Snippet) (uint8, error) {
	if len(mem.snippets) >= maxSnippets {
		return 0, fmt.Errorf("waveform: too many snippets (max %d): %w",
			maxSnippets, ErrInvalidArg,
		)
	}
	mem.snippets = append(mem.snippets, s)
	return uint8(len(mem.snippets)), nil
}

// AddSequence appends a sequence and returns its ID (0-15).
func (mem *Memory) AddSequence(s Sequence) (uint8, error) {
	if len(mem.seqs) >= maxSequences {
		return 0, fmt.Errorf("waveform: too many sequences (max %d): %w",
			maxSequences, ErrInvalidArg,
		)
	}
	mem.seqs = append(mem.seqs, s)
	return uint8(len(mem.seqs)) - 1, nil
}

// Bytes encodes the memory image to be uploaded to the chip.
func (mem *Memory) Bytes() ([]byte, error) {
	if len(mem.snippets) == 0 {
		return nil, fmt.Errorf("waveform: no snippets: %w", ErrEmpty)
	}
	if len(mem.seqs) == 0 {
		return nil, fmt.Errorf("waveform: no sequences: %w", ErrEmpty)
	}

	var (
		snps = make([][]byte, len(mem.snippets))
		seqs = make([][]byte, len(mem.seqs))
		size = 2 + len(mem.snippets) + len(mem.seqs)
	)
	for i, s := range mem.snippets {
		snps[i] = s.Bytes()
		size += len(snps[i])
	}
	for i, s := range mem.seqs {
		seqs[i] = s.Bytes()
		size += len(seqs[i])
	}
	if size > MemSize {
		return nil, fmt.Errorf("waveform: memory image too big (%d > %d bytes): %w",
			size, MemSize, ErrMemFull,
		)
	}

	o := make([]byte, 0, size)
	o = append(o, uint8(len(mem.snippets)), uint8(len(mem.seqs)))

	// end pointers hold the absolute index of the last byte of each
	// snippet and sequence within the image
	end := 2 + len(mem.snippets) + len(mem.seqs) - 1
	for _, p := range snps {
		end += len(p)
		o = append(o, uint8(end))
	}
	for _, p := range seqs {
		end += len(p)
		o = append(o, uint8(end))
	}

	for _, p := range snps {
		o = append(o, p...)
	}
	for _, p := range seqs {
		o = append(o, p...)
	}
	return o, nil
}
