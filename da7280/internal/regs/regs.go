// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package regs holds the register addresses and bit fields of the
// DA7280 haptic driver, as published in the Dialog datasheet.
package regs // import "github.com/go-hap/hap/da7280/internal/regs"

const (
	CHIP_REV            = 0x00
	IRQ_EVENT1          = 0x03
	IRQ_EVENT_WARN_DIAG = 0x04
	IRQ_EVENT_PAT_DIAG  = 0x05
	IRQ_STATUS1         = 0x06
	IRQ_MASK1           = 0x07
	CIF_I2C1            = 0x08
	FRQ_LRA_PER_H       = 0x0A
	FRQ_LRA_PER_L       = 0x0B
	ACTUATOR1           = 0x0C
	ACTUATOR2           = 0x0D
	ACTUATOR3           = 0x0E
	CALIB_V2I_H         = 0x0F
	CALIB_V2I_L         = 0x10
	CALIB_IMP_H         = 0x11
	CALIB_IMP_L         = 0x12
	TOP_CFG1            = 0x13
	TOP_CFG2            = 0x14
	TOP_CFG3            = 0x15
	TOP_CFG4            = 0x16
	TOP_INT_CFG1        = 0x17
	TOP_CTL1            = 0x22
	TOP_CTL2            = 0x23
	SEQ_CTL1            = 0x24
	SWG_C1              = 0x25
	SWG_C2              = 0x26
	SWG_C3              = 0x27
	SEQ_CTL2            = 0x28
	GPI_0_CTL           = 0x29
	GPI_1_CTL           = 0x2A
	GPI_2_CTL           = 0x2B
	MEM_CTL1            = 0x2C
	MEM_CTL2            = 0x2D
	ADC_DATA_H1         = 0x2E
	ADC_DATA_L1         = 0x2F
	POLARITY            = 0x43
	LRA_AVR_H           = 0x44
	LRA_AVR_L           = 0x45
	FRQ_LRA_PER_ACT_H   = 0x46
	FRQ_LRA_PER_ACT_L   = 0x47
	FRQ_PHASE_H         = 0x48
	FRQ_PHASE_L         = 0x49
	FRQ_CTL             = 0x4C
	IRQ_STATUS2         = 0x82
	IRQ_MASK2           = 0x83
	SNP_MEM_0           = 0x84
	SNP_MEM_99          = 0xE7
)

// IRQ_EVENT1 (0x03)
const (
	E_SEQ_CONTINUE_MASK   = 1 << 0
	E_UVLO_VBAT_OK_MASK   = 1 << 1
	E_PAT_DONE_MASK       = 1 << 2
	E_OVERTEMP_CRIT_MASK  = 1 << 3
	E_PAT_FAULT_MASK      = 1 << 4
	E_WARNING_MASK        = 1 << 5
	E_ACTUATOR_FAULT_MASK = 1 << 6
	E_OC_FAULT_MASK       = 1 << 7
)

// IRQ_EVENT_WARN_DIAG (0x04)
const (
	E_OVERTEMP_WARN_MASK = 1 << 3
	E_MEM_TYPE_MASK      = 1 << 4
	E_LIM_DRIVE_ACC_MASK = 1 << 6
	E_LIM_DRIVE_MASK     = 1 << 7
)

// IRQ_EVENT_PAT_DIAG (0x05)
const (
	E_PWM_FAULT_MASK    = 1 << 5
	E_MEM_FAULT_MASK    = 1 << 6
	E_SEQ_ID_FAULT_MASK = 1 << 7
)

// IRQ_STATUS1 (0x06)
const (
	STA_WARNING_MASK = 1 << 5
)

// FRQ_LRA_PER_L (0x0B)
const (
	LRA_PER_L_MASK = 127 << 0
)

// ACTUATOR3 (0x0E)
const (
	IMAX_MASK = 31 << 0
)

// TOP_CFG1 (0x13)
const (
	AMP_PID_EN_SHIFT      = 0
	AMP_PID_EN_MASK       = 1 << 0
	RAPID_STOP_EN_SHIFT   = 1
	RAPID_STOP_EN_MASK    = 1 << 1
	ACCELERATION_EN_SHIFT = 2
	ACCELERATION_EN_MASK  = 1 << 2
	FREQ_TRACK_EN_SHIFT   = 3
	FREQ_TRACK_EN_MASK    = 1 << 3
	BEMF_SENSE_EN_SHIFT   = 4
	BEMF_SENSE_EN_MASK    = 1 << 4
	ACTUATOR_TYPE_SHIFT   = 5
	ACTUATOR_TYPE_MASK    = 1 << 5
	EMBEDDED_MODE_MASK    = 1 << 7
)

// TOP_CFG4 (0x16)
const (
	TST_CALIB_IMPEDANCE_DIS_MASK = 1 << 6
	V2I_FACTOR_FREEZE_MASK       = 1 << 7
)

// TOP_INT_CFG1 (0x17)
const (
	BEMF_FAULT_LIM_MASK = 3 << 0
)

// TOP_CTL1 (0x22)
const (
	OPERATION_MODE_MASK = 7 << 0
	STANDBY_EN_MASK     = 1 << 3
	SEQ_START_MASK      = 1 << 4
)

// TOP_CTL2 (0x23)
const (
	OVERRIDE_VAL_MASK = 255 << 0
)

// SEQ_CTL1 (0x24)
const (
	SEQ_CONTINUE_MASK           = 1 << 0
	WAVEGEN_MODE_MASK           = 1 << 1
	FREQ_WAVEFORM_TIMEBASE_MASK = 1 << 2
)

// SEQ_CTL2 (0x28)
const (
	PS_SEQ_ID_SHIFT   = 0
	PS_SEQ_ID_MASK    = 15 << 0
	PS_SEQ_LOOP_SHIFT = 4
	PS_SEQ_LOOP_MASK  = 15 << 4
)

// GPI_0_CTL, GPI_1_CTL, GPI_2_CTL (0x29..0x2B)
const (
	GPI_POLARITY_SHIFT    = 0
	GPI_POLARITY_MASK     = 3 << 0
	GPI_MODE_SHIFT        = 2
	GPI_MODE_MASK         = 1 << 2
	GPI_SEQUENCE_ID_SHIFT = 3
	GPI_SEQUENCE_ID_MASK  = 15 << 3
)

// MEM_CTL2 (0x2D)
const (
	PATTERN_MEM_LOCK_MASK = 1 << 7
)

// FRQ_PHASE_L (0x49)
const (
	PHASE_SHIFT_FREEZE_MASK = 1 << 7
)
