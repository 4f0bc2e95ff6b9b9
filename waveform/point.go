// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package waveform

import "fmt"

// Point is one PWL (piecewise linear) point of a snippet, encoded as
// a single byte:
//
//	bit  7    RMP   0=step to amplitude, 1=ramp to amplitude
//	bits 6:4  TIME  number of timebases, minus 1
//	bits 3:0  AMP   amplitude
//
// With acceleration enabled the amplitude maps 0-15 to 0-100%; without
// it the field is a signed 4-bit drive value.
type Point uint8

// Ramp returns a point ramping to amplitude amp over n timebases.
func Ramp(n, amp uint8) (Point, error) {
	return newPoint(true, n, amp)
}

// Step returns a point stepping to amplitude amp for n timebases.
func Step(n, amp uint8) (Point, error) {
	return newPoint(false, n, amp)
}

func newPoint(ramp bool, n, amp uint8) (Point, error) {
	if n < 1 || n > 8 {
		return 0, fmt.Errorf("waveform: invalid timebase count %d: %w", n, ErrInvalidArg)
	}
	if amp > 15 {
		return 0, fmt.Errorf("waveform: invalid amplitude %d: %w", amp, ErrInvalidArg)
	}
	p := Point((n-1)<<4 | amp&0x0F)
	if ramp {
		p |= 0x80
	}
	return p, nil
}

// IsRamp reports whether the point ramps (rather than steps) to its
// amplitude.
func (p Point) IsRamp() bool { return p&0x80 != 0 }

// Timebases returns the duration of the point, in timebases (1-8).
func (p Point) Timebases() uint8 { return uint8(p>>4)&0x07 + 1 }

// Amplitude returns the amplitude field of the point (0-15).
func (p Point) Amplitude() uint8 { return uint8(p) & 0x0F }

// Snippet is the basic building block of a waveform: a short shape
// made of 1 to 16 PWL points.
type Snippet []Point

// NewSnippet builds a snippet from PWL points.
func NewSnippet(pts ...Point) (Snippet, error) {
	if len(pts) == 0 {
		return nil, fmt.Errorf("waveform: could not build snippet: %w", ErrEmpty)
	}
	if len(pts) > maxPoints {
		return nil, fmt.Errorf("waveform: too many points (%d > %d): %w",
			len(pts), maxPoints, ErrInvalidArg,
		)
	}
	return Snippet(pts), nil
}

// Bytes returns the memory encoding of the snippet.
func (s Snippet) Bytes() []byte {
	o := make([]byte, len(s))
	for i, p := range s {
		o[i] = byte(p)
	}
	return o
}
