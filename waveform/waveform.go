// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package waveform builds waveform memory images for DA728x haptic
// drivers, played back in RTWM mode.
//
// A waveform is assembled bottom-up: PWL points make a snippet, frames
// reference snippets with playback modifiers, frames make a sequence,
// and a Memory gathers snippets and sequences into the image uploaded
// to the chip.
//
// The memory image layout is:
//
//	[0]   number of snippets (1-15)
//	[1]   number of sequences (1-16)
//	[2..] end pointers, one byte per snippet then per sequence,
//	      holding the absolute index of the last byte of each
//	[..]  snippet data, concatenated
//	[..]  sequence data, concatenated
package waveform // import "github.com/go-hap/hap/waveform"

import "errors"

const (
	// MemSize is the size of the chip waveform memory, in bytes.
	MemSize = 100

	maxPoints    = 16 // PWL points per snippet
	maxSnippets  = 15 // snippet ID 0 is reserved
	maxSequences = 16
	maxSeqBytes  = 96
	maxFrequency = 511 // Hz, 9-bit field
)

var (
	// ErrInvalidArg is returned when a waveform parameter is out of
	// its encodable range.
	ErrInvalidArg = errors.New("invalid argument")

	// ErrEmpty is returned when a snippet, sequence or memory image
	// holds no data.
	ErrEmpty = errors.New("empty waveform element")

	// ErrMemFull is returned when a memory image does not fit the
	// chip waveform memory.
	ErrMemFull = errors.New("waveform memory full")
)
