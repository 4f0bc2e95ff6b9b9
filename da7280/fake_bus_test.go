// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package da7280

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-hap/hap/da7280/internal/regs"
)

type busOp struct {
	kind byte // 'r' or 'w'
	reg  uint8
	v    uint8
}

func (op busOp) String() string {
	return fmt.Sprintf("%c[0x%02x]=0x%02x", op.kind, op.reg, op.v)
}

// fakeBus is an in-memory register file with operation recording and
// per-register fault injection.
type fakeBus struct {
	mem  map[uint8]uint8
	ops  []busOp
	rerr map[uint8]error
	werr map[uint8]error
}

var _ Bus = (*fakeBus)(nil)

func newFakeBus(rev Variant) *fakeBus {
	return &fakeBus{
		mem: map[uint8]uint8{
			regs.CHIP_REV: uint8(rev),
			regs.MEM_CTL1: regs.SNP_MEM_0,
			regs.MEM_CTL2: regs.PATTERN_MEM_LOCK_MASK, // unlocked
		},
		rerr: make(map[uint8]error),
		werr: make(map[uint8]error),
	}
}

func (bus *fakeBus) ReadReg(reg uint8) (uint8, error) {
	if err := bus.rerr[reg]; err != nil {
		return 0, err
	}
	v := bus.mem[reg]
	bus.ops = append(bus.ops, busOp{kind: 'r', reg: reg, v: v})
	return v, nil
}

func (bus *fakeBus) WriteReg(reg, v uint8) error {
	if err := bus.werr[reg]; err != nil {
		return err
	}
	bus.mem[reg] = v
	bus.ops = append(bus.ops, busOp{kind: 'w', reg: reg, v: v})
	return nil
}

func (bus *fakeBus) WriteBlock(reg uint8, vs []uint8) error {
	for i, v := range vs {
		err := bus.WriteReg(reg+uint8(i), v)
		if err != nil {
			return err
		}
	}
	return nil
}

func (bus *fakeBus) reset() {
	bus.ops = nil
}

// writes returns the recorded write operations, in order.
func (bus *fakeBus) writes() []busOp {
	var ws []busOp
	for _, op := range bus.ops {
		if op.kind == 'w' {
			ws = append(ws, op)
		}
	}
	return ws
}

func newTestDevice(t *testing.T, bus *fakeBus, opts ...Option) *Device {
	t.Helper()
	dev, err := New(bus, opts...)
	if err != nil {
		t.Fatalf("could not create device: %+v", err)
	}
	dev.sleep = func(time.Duration) {}
	bus.reset()
	return dev
}
