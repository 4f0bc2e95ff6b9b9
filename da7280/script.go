// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package da7280

import (
	"time"

	"github.com/go-hap/hap/da7280/internal/regs"
)

type scrKind uint8

const (
	scrWriteOp scrKind = iota
	scrUpdateOp
	scrSleepOp
)

// scrEntry is one step of a register script. Scripts run in order and
// abort on the first error, leaving earlier writes in place.
type scrEntry struct {
	kind scrKind
	reg  uint8
	mask uint8
	v    uint8
	wait time.Duration
}

func scrWrite(reg, v uint8) scrEntry {
	return scrEntry{kind: scrWriteOp, reg: reg, v: v}
}

func scrUpdate(reg, mask, v uint8) scrEntry {
	return scrEntry{kind: scrUpdateOp, reg: reg, mask: mask, v: v}
}

func scrSleep(wait time.Duration) scrEntry {
	return scrEntry{kind: scrSleepOp, wait: wait}
}

func (dev *Device) runScript(script []scrEntry) error {
	for _, e := range script {
		var err error
		switch e.kind {
		case scrWriteOp:
			err = dev.bus.WriteReg(e.reg, e.v)
		case scrUpdateOp:
			err = dev.updateBits(e.reg, e.mask, e.v)
		case scrSleepOp:
			dev.sleep(e.wait)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// bootScript is the power-on register script applied at bootstrap:
// clear pending events, program the initial drive level, the pattern
// sequence selection and the GPI trigger pins.
func (dev *Device) bootScript() []scrEntry {
	cfg := &dev.cfg
	script := []scrEntry{
		scrWrite(regs.IRQ_EVENT1, 0xFF),
		scrWrite(regs.TOP_CTL2, cfg.override),
		scrWrite(regs.SEQ_CTL2,
			cfg.seqLoop<<regs.PS_SEQ_LOOP_SHIFT|
				cfg.seqID<<regs.PS_SEQ_ID_SHIFT),
	}
	for i, gpi := range cfg.gpi {
		script = append(script, scrWrite(
			regs.GPI_0_CTL+uint8(i),
			gpi.seqID<<regs.GPI_SEQUENCE_ID_SHIFT|
				uint8(gpi.mode)<<regs.GPI_MODE_SHIFT|
				uint8(gpi.pol)<<regs.GPI_POLARITY_SHIFT,
		))
	}
	return script
}
