// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package da7280

import (
	"reflect"
	"testing"

	"github.com/go-hap/hap/da7280/internal/regs"
)

func TestServiceIRQSpurious(t *testing.T) {
	bus := newFakeBus(DA7280)
	dev := newTestDevice(t, bus)

	evts, err := dev.ServiceIRQ()
	if err != nil {
		t.Fatalf("could not service IRQ: %+v", err)
	}
	if evts != nil {
		t.Fatalf("unexpected events: %v", evts)
	}
	want := []busOp{
		{kind: 'r', reg: regs.IRQ_EVENT1, v: 0},
		{kind: 'r', reg: regs.IRQ_EVENT_WARN_DIAG, v: 0},
		{kind: 'r', reg: regs.IRQ_EVENT_PAT_DIAG, v: 0},
	}
	if !reflect.DeepEqual(bus.ops, want) {
		t.Fatalf("invalid bus operations:\ngot= %v\nwant=%v", bus.ops, want)
	}
}

func TestServiceIRQ(t *testing.T) {
	bus := newFakeBus(DA7280)
	bus.mem[regs.IRQ_EVENT1] = regs.E_PAT_DONE_MASK | regs.E_WARNING_MASK
	bus.mem[regs.IRQ_EVENT_WARN_DIAG] = regs.E_LIM_DRIVE_MASK
	bus.mem[regs.IRQ_EVENT_PAT_DIAG] = regs.E_SEQ_ID_FAULT_MASK
	dev := newTestDevice(t, bus)

	evts, err := dev.ServiceIRQ()
	if err != nil {
		t.Fatalf("could not service IRQ: %+v", err)
	}
	want := []Event{EvtPatternDone, EvtWarning, EvtLimDrive, EvtSeqIDFault}
	if !reflect.DeepEqual(evts, want) {
		t.Fatalf("invalid events: got=%v, want=%v", evts, want)
	}

	wops := []busOp{
		{kind: 'w', reg: regs.IRQ_EVENT1, v: regs.E_PAT_DONE_MASK | regs.E_WARNING_MASK},
	}
	if got := bus.writes(); !reflect.DeepEqual(got, wops) {
		t.Fatalf("invalid write sequence:\ngot= %v\nwant=%v", got, wops)
	}
}

func TestServiceIRQPatternFault(t *testing.T) {
	// the actuator is stopped before the fault is acknowledged
	bus := newFakeBus(DA7280)
	bus.mem[regs.IRQ_EVENT1] = regs.E_PAT_FAULT_MASK
	bus.mem[regs.TOP_CTL1] = regs.STANDBY_EN_MASK | uint8(ModeRTWM)
	dev := newTestDevice(t, bus)

	evts, err := dev.ServiceIRQ()
	if err != nil {
		t.Fatalf("could not service IRQ: %+v", err)
	}
	if want := []Event{EvtPatternFault}; !reflect.DeepEqual(evts, want) {
		t.Fatalf("invalid events: got=%v, want=%v", evts, want)
	}

	want := []busOp{
		{kind: 'w', reg: regs.TOP_CTL1, v: regs.STANDBY_EN_MASK},
		{kind: 'w', reg: regs.IRQ_EVENT1, v: regs.E_PAT_FAULT_MASK},
	}
	if got := bus.writes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("invalid write sequence:\ngot= %v\nwant=%v", got, want)
	}
}

func TestDecodeEvents(t *testing.T) {
	for _, tc := range []struct {
		events [3]uint8
		want   []Event
	}{
		{events: [3]uint8{0, 0, 0}, want: nil},
		{events: [3]uint8{regs.E_SEQ_CONTINUE_MASK, 0, 0}, want: []Event{EvtSeqContinue}},
		{events: [3]uint8{0xFF, 0, 0}, want: []Event{
			EvtSeqContinue, EvtUVLOVbatOK, EvtPatternDone, EvtOvertempCritical,
			EvtPatternFault, EvtWarning, EvtActuatorFault, EvtOvercurrent,
		}},
		{events: [3]uint8{0, 0xD8, 0}, want: []Event{
			EvtOvertempWarning, EvtMemType, EvtLimDriveAcc, EvtLimDrive,
		}},
		{events: [3]uint8{0, 0, 0xE0}, want: []Event{
			EvtPWMFault, EvtMemFault, EvtSeqIDFault,
		}},
	} {
		got := decodeEvents(tc.events)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("events=%v: got=%v, want=%v", tc.events, got, tc.want)
		}
	}
}
