// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package da7280 holds functions to control DA7280 haptic-driver chips.
package da7280 // import "github.com/go-hap/hap/da7280"

import (
	"errors"
	"fmt"
)

// I2CAddr is the 7-bit I2C slave address of the DA7280.
const I2CAddr = 0x94 >> 1

var (
	// ErrInvalidArg is returned when a value falls outside the
	// range the chip can encode.
	ErrInvalidArg = errors.New("invalid argument")

	// ErrBusy is returned when the chip reports a pending warning
	// and can not service the request.
	ErrBusy = errors.New("device busy")

	// ErrMemLocked is returned when the waveform memory lock bit
	// forbids pattern updates.
	ErrMemLocked = errors.New("pattern memory locked")

	// ErrUnsupported is returned when an operation needs a platform
	// facility (such as a PWM source) that was not provided.
	ErrUnsupported = errors.New("operation not supported")
)

// Variant identifies a chip of the DA728x family by the content of
// its CHIP_REV register.
type Variant uint8

const (
	DA7280 Variant = 0xBA
	DA7281 Variant = 0xCA
	DA7282 Variant = 0xDA
)

func (v Variant) String() string {
	switch v {
	case DA7280:
		return "DA7280"
	case DA7281:
		return "DA7281"
	case DA7282:
		return "DA7282"
	}
	return fmt.Sprintf("Variant(0x%x)", uint8(v))
}

// DeviceType describes the kind of actuator wired to the chip.
type DeviceType uint8

const (
	LRA DeviceType = iota // linear resonant actuator
	ERMBar
	ERMCoin
)

func (typ DeviceType) String() string {
	switch typ {
	case LRA:
		return "LRA"
	case ERMBar:
		return "ERM-bar"
	case ERMCoin:
		return "ERM-coin"
	}
	return fmt.Sprintf("DeviceType(%d)", uint8(typ))
}

// Mode is the operation mode of the chip, as encoded in the
// OPERATION_MODE field of TOP_CTL1.
type Mode uint8

const (
	ModeInactive Mode = iota
	ModeDRO           // direct register override
	ModePWM           // external PWM input
	ModeRTWM          // register-triggered waveform memory
	ModeETWM          // edge-triggered waveform memory
)

func (m Mode) String() string {
	switch m {
	case ModeInactive:
		return "inactive"
	case ModeDRO:
		return "DRO"
	case ModePWM:
		return "PWM"
	case ModeRTWM:
		return "RTWM"
	case ModeETWM:
		return "ETWM"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// GPIMode selects how a GPI trigger pin maps to patterns.
type GPIMode uint8

const (
	SinglePattern GPIMode = iota
	MultiPattern
)

// GPIPolarity selects the edge(s) a GPI trigger pin reacts to.
type GPIPolarity uint8

const (
	RisingEdge GPIPolarity = iota
	FallingEdge
	BothEdges
)

// PWM generates the external PWM signal driving the chip in PWM mode.
// The signal must be up before the chip enters PWM mode and torn down
// after it leaves it.
type PWM interface {
	Start() error
	Stop() error
}
