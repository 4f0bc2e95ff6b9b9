// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package waveform

import (
	"bytes"
	"errors"
	"testing"
)

func click(t *testing.T) Snippet {
	t.Helper()
	rise, err := Ramp(1, 15)
	if err != nil {
		t.Fatalf("could not build point: %+v", err)
	}
	fall, err := Ramp(1, 0)
	if err != nil {
		t.Fatalf("could not build point: %+v", err)
	}
	snp, err := NewSnippet(rise, fall)
	if err != nil {
		t.Fatalf("could not build snippet: %+v", err)
	}
	return snp
}

func seqOf(t *testing.T, ids ...uint8) Sequence {
	t.Helper()
	frames := make([]Frame, len(ids))
	for i, id := range ids {
		f, err := NewFrame(id)
		if err != nil {
			t.Fatalf("could not build frame: %+v", err)
		}
		frames[i] = f
	}
	seq, err := NewSequence(frames...)
	if err != nil {
		t.Fatalf("could not build sequence: %+v", err)
	}
	return seq
}

func TestMemory(t *testing.T) {
	mem := NewMemory()

	id, err := mem.AddSnippet(click(t))
	if err != nil {
		t.Fatalf("could not add snippet: %+v", err)
	}
	if got, want := id, uint8(1); got != want {
		t.Fatalf("invalid snippet id: got=%d, want=%d", got, want)
	}

	sid, err := mem.AddSequence(seqOf(t, id))
	if err != nil {
		t.Fatalf("could not add sequence: %+v", err)
	}
	if got, want := sid, uint8(0); got != want {
		t.Fatalf("invalid sequence id: got=%d, want=%d", got, want)
	}

	img, err := mem.Bytes()
	if err != nil {
		t.Fatalf("could not encode memory: %+v", err)
	}
	want := []byte{
		0x01,       // number of snippets
		0x01,       // number of sequences
		0x05, 0x06, // end pointers
		0x8F, 0x80, // snippet data
		0x61, // sequence data
	}
	if !bytes.Equal(img, want) {
		t.Fatalf("invalid memory image:\ngot= %x\nwant=%x", img, want)
	}
	if len(img) > MemSize {
		t.Fatalf("memory image too big: %d bytes", len(img))
	}
}

func TestMemoryLayout(t *testing.T) {
	mem := NewMemory()

	rise, err := Ramp(1, 15)
	if err != nil {
		t.Fatalf("could not build point: %+v", err)
	}
	snp1, err := NewSnippet(rise)
	if err != nil {
		t.Fatalf("could not build snippet: %+v", err)
	}
	hold, err := Step(2, 8)
	if err != nil {
		t.Fatalf("could not build point: %+v", err)
	}
	fall, err := Ramp(1, 0)
	if err != nil {
		t.Fatalf("could not build point: %+v", err)
	}
	snp2, err := NewSnippet(hold, fall)
	if err != nil {
		t.Fatalf("could not build snippet: %+v", err)
	}

	for _, snp := range []Snippet{snp1, snp2} {
		if _, err := mem.AddSnippet(snp); err != nil {
			t.Fatalf("could not add snippet: %+v", err)
		}
	}
	if _, err := mem.AddSequence(seqOf(t, 1, 2)); err != nil {
		t.Fatalf("could not add sequence: %+v", err)
	}

	img, err := mem.Bytes()
	if err != nil {
		t.Fatalf("could not encode memory: %+v", err)
	}
	want := []byte{
		0x02,             // number of snippets
		0x01,             // number of sequences
		0x05, 0x07, 0x09, // end pointers
		0x8F,       // snippet 1
		0x18, 0x80, // snippet 2
		0x61, 0x62, // sequence 0
	}
	if !bytes.Equal(img, want) {
		t.Fatalf("invalid memory image:\ngot= %x\nwant=%x", img, want)
	}
}

func TestMemoryFail(t *testing.T) {
	t.Run("no-snippets", func(t *testing.T) {
		mem := NewMemory()
		if _, err := mem.AddSequence(seqOf(t, 1)); err != nil {
			t.Fatalf("could not add sequence: %+v", err)
		}
		if _, err := mem.Bytes(); !errors.Is(err, ErrEmpty) {
			t.Fatalf("invalid error: got=%+v, want=%+v", err, ErrEmpty)
		}
	})

	t.Run("no-sequences", func(t *testing.T) {
		mem := NewMemory()
		if _, err := mem.AddSnippet(click(t)); err != nil {
			t.Fatalf("could not add snippet: %+v", err)
		}
		if _, err := mem.Bytes(); !errors.Is(err, ErrEmpty) {
			t.Fatalf("invalid error: got=%+v, want=%+v", err, ErrEmpty)
		}
	})

	t.Run("too-many-snippets", func(t *testing.T) {
		mem := NewMemory()
		for i := 0; i < maxSnippets; i++ {
			if _, err := mem.AddSnippet(click(t)); err != nil {
				t.Fatalf("could not add snippet %d: %+v", i, err)
			}
		}
		if _, err := mem.AddSnippet(click(t)); !errors.Is(err, ErrInvalidArg) {
			t.Fatalf("invalid error: got=%+v, want=%+v", err, ErrInvalidArg)
		}
	})

	t.Run("image-too-big", func(t *testing.T) {
		mem := NewMemory()
		pts := make([]Point, maxPoints)
		for i := range pts {
			pt, err := Ramp(1, 15)
			if err != nil {
				t.Fatalf("could not build point: %+v", err)
			}
			pts[i] = pt
		}
		for i := 0; i < 7; i++ {
			snp, err := NewSnippet(pts...)
			if err != nil {
				t.Fatalf("could not build snippet: %+v", err)
			}
			if _, err := mem.AddSnippet(snp); err != nil {
				t.Fatalf("could not add snippet %d: %+v", i, err)
			}
		}
		if _, err := mem.AddSequence(seqOf(t, 1)); err != nil {
			t.Fatalf("could not add sequence: %+v", err)
		}
		if _, err := mem.Bytes(); !errors.Is(err, ErrMemFull) {
			t.Fatalf("invalid error: got=%+v, want=%+v", err, ErrMemFull)
		}
	})
}
