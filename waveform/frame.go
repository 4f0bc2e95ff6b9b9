// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package waveform

import "fmt"

// Gain is the playback gain multiplier of a frame.
type Gain uint8

const (
	GainQuarter      Gain = iota // 0.25x
	GainHalf                     // 0.5x
	GainThreeQuarter             // 0.75x
	GainFull                     // 1x
)

// Timebase is the duration of one PWL timebase unit.
type Timebase uint8

const (
	Timebase5ms44 Timebase = iota // 5.44 ms
	Timebase10ms88
	Timebase21ms76
	Timebase43ms52
)

// Frame plays one snippet within a sequence, with optional gain,
// timebase, loop and frequency modifiers.
//
// A frame encodes to 1 to 3 bytes:
//
//	byte 1  0 | GAIN[6:5] | TIMEBASE[4:3] | SNP_ID[2:0]
//	byte 2  1 | LOOP[6:3] | FREQ_CMD[2] | FREQ[8] | SNP_ID[3]
//	byte 3  FREQ[7:0]
//
// Bytes 2 and 3 are emitted only when needed: byte 2 when the snippet
// ID exceeds 7 or a loop count or frequency is set, byte 3 when a
// frequency is set.
type Frame struct {
	id   uint8
	gain Gain
	tb   Timebase

	loop    uint8
	freq    uint16
	hasLoop bool
	hasFreq bool
}

// NewFrame returns a frame playing snippet id (1-15) at full gain on
// the 5.44 ms timebase.
func NewFrame(id uint8) (Frame, error) {
	if id < 1 || id > 15 {
		return Frame{}, fmt.Errorf("waveform: invalid snippet id %d: %w", id, ErrInvalidArg)
	}
	return Frame{id: id, gain: GainFull}, nil
}

// WithGain returns a copy of the frame with the given gain.
func (f Frame) WithGain(g Gain) Frame {
	f.gain = g & 0x03
	return f
}

// WithTimebase returns a copy of the frame with the given timebase.
func (f Frame) WithTimebase(tb Timebase) Frame {
	f.tb = tb & 0x03
	return f
}

// WithLoop returns a copy of the frame looping n extra times (0-15).
func (f Frame) WithLoop(n uint8) (Frame, error) {
	if n > 15 {
		return Frame{}, fmt.Errorf("waveform: invalid loop count %d: %w", n, ErrInvalidArg)
	}
	f.loop = n
	f.hasLoop = true
	return f, nil
}

// WithFrequency returns a copy of the frame overriding the playback
// frequency, in Hz (0-511).
func (f Frame) WithFrequency(hz uint16) (Frame, error) {
	if hz > maxFrequency {
		return Frame{}, fmt.Errorf("waveform: invalid frequency %d Hz: %w", hz, ErrInvalidArg)
	}
	f.freq = hz
	f.hasFreq = true
	return f, nil
}

// Bytes returns the memory encoding of the frame.
func (f Frame) Bytes() []byte {
	o := make([]byte, 1, 3)
	o[0] = uint8(f.gain)<<5 | uint8(f.tb)<<3 | f.id&0x07

	hi := f.id >> 3 & 0x01
	if hi == 0 && !f.hasLoop && !f.hasFreq {
		return o
	}

	b2 := 0x80 | f.loop<<3 | hi
	if f.hasFreq {
		b2 |= 1 << 2
		b2 |= uint8(f.freq>>8&0x01) << 1
	}
	o = append(o, b2)

	if f.hasFreq {
		o = append(o, uint8(f.freq&0xFF))
	}
	return o
}
