// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package waveform

import "fmt"

// Sequence is an ordered list of frames, played back to back.
type Sequence []Frame

// NewSequence builds a sequence from frames.
func NewSequence(frames ...Frame) (Sequence, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("waveform: could not build sequence: %w", ErrEmpty)
	}
	var n int
	for _, f := range frames {
		n += len(f.Bytes())
	}
	if n > maxSeqBytes {
		return nil, fmt.Errorf("waveform: sequence too long (%d > %d bytes): %w",
			n, maxSeqBytes, ErrInvalidArg,
		)
	}
	return Sequence(frames), nil
}

// Bytes returns the memory encoding of the sequence.
func (s Sequence) Bytes() []byte {
	var o []byte
	for _, f := range s {
		o = append(o, f.Bytes()...)
	}
	return o
}
