// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package da7280

import (
	"fmt"

	"github.com/go-hap/hap/da7280/internal/regs"
)

// Event is a chip event reported through the IRQ line.
type Event uint8

const (
	EvtSeqContinue Event = iota
	EvtUVLOVbatOK
	EvtPatternDone
	EvtOvertempCritical
	EvtPatternFault
	EvtWarning
	EvtActuatorFault
	EvtOvercurrent
	EvtOvertempWarning
	EvtMemType
	EvtLimDriveAcc
	EvtLimDrive
	EvtPWMFault
	EvtMemFault
	EvtSeqIDFault
)

func (e Event) String() string {
	switch e {
	case EvtSeqContinue:
		return "seq-continue"
	case EvtUVLOVbatOK:
		return "uvlo-vbat-ok"
	case EvtPatternDone:
		return "pattern-done"
	case EvtOvertempCritical:
		return "overtemp-critical"
	case EvtPatternFault:
		return "pattern-fault"
	case EvtWarning:
		return "warning"
	case EvtActuatorFault:
		return "actuator-fault"
	case EvtOvercurrent:
		return "overcurrent"
	case EvtOvertempWarning:
		return "overtemp-warning"
	case EvtMemType:
		return "mem-type"
	case EvtLimDriveAcc:
		return "lim-drive-acc"
	case EvtLimDrive:
		return "lim-drive"
	case EvtPWMFault:
		return "pwm-fault"
	case EvtMemFault:
		return "mem-fault"
	case EvtSeqIDFault:
		return "seq-id-fault"
	}
	return fmt.Sprintf("Event(%d)", uint8(e))
}

var evtTable = []struct {
	reg  int // offset from IRQ_EVENT1
	mask uint8
	evt  Event
}{
	{0, regs.E_SEQ_CONTINUE_MASK, EvtSeqContinue},
	{0, regs.E_UVLO_VBAT_OK_MASK, EvtUVLOVbatOK},
	{0, regs.E_PAT_DONE_MASK, EvtPatternDone},
	{0, regs.E_OVERTEMP_CRIT_MASK, EvtOvertempCritical},
	{0, regs.E_PAT_FAULT_MASK, EvtPatternFault},
	{0, regs.E_WARNING_MASK, EvtWarning},
	{0, regs.E_ACTUATOR_FAULT_MASK, EvtActuatorFault},
	{0, regs.E_OC_FAULT_MASK, EvtOvercurrent},
	{1, regs.E_OVERTEMP_WARN_MASK, EvtOvertempWarning},
	{1, regs.E_MEM_TYPE_MASK, EvtMemType},
	{1, regs.E_LIM_DRIVE_ACC_MASK, EvtLimDriveAcc},
	{1, regs.E_LIM_DRIVE_MASK, EvtLimDrive},
	{2, regs.E_PWM_FAULT_MASK, EvtPWMFault},
	{2, regs.E_MEM_FAULT_MASK, EvtMemFault},
	{2, regs.E_SEQ_ID_FAULT_MASK, EvtSeqIDFault},
}

func decodeEvents(events [3]uint8) []Event {
	var evts []Event
	for _, e := range evtTable {
		if events[e.reg]&e.mask != 0 {
			evts = append(evts, e.evt)
		}
	}
	return evts
}

// ServiceIRQ handles a pending interrupt: it reads the three event
// registers, stops the actuator on a pattern fault, acknowledges the
// events and returns them decoded.
//
// The IRQ line may be shared: a spurious call returns no events and
// performs no writes.
func (dev *Device) ServiceIRQ() ([]Event, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	var events [3]uint8
	for i := range events {
		v, err := dev.bus.ReadReg(regs.IRQ_EVENT1 + uint8(i))
		if err != nil {
			return nil, fmt.Errorf("da7280: could not read event register 0x%02x: %w",
				regs.IRQ_EVENT1+uint8(i), err,
			)
		}
		events[i] = v
	}

	if events[0]|events[1]|events[2] == 0 {
		return nil, nil
	}

	if events[0]&regs.E_PAT_FAULT_MASK != 0 {
		// stop the actuator first or the fault reasserts after the clear
		err := dev.updateBits(regs.TOP_CTL1, regs.OPERATION_MODE_MASK, 0)
		if err != nil {
			return nil, fmt.Errorf("da7280: could not stop haptics on pattern fault: %w", err)
		}
	}

	err := dev.bus.WriteReg(regs.IRQ_EVENT1, events[0])
	if err != nil {
		return nil, fmt.Errorf("da7280: could not acknowledge events: %w", err)
	}

	evts := decodeEvents(events)
	for _, evt := range evts {
		dev.msg.Printf("event: %v", evt)
	}
	return evts, nil
}
