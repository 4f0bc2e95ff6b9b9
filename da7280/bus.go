// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package da7280

import (
	"fmt"

	"github.com/go-daq/smbus"
)

// Bus is the byte-register transport to a DA7280 chip.
//
// Implementations perform a single transfer per call and do not retry.
type Bus interface {
	// ReadReg reads the register at reg.
	ReadReg(reg uint8) (uint8, error)
	// WriteReg writes v to the register at reg.
	WriteReg(reg, v uint8) error
	// WriteBlock writes vs to consecutive registers, starting at reg.
	WriteBlock(reg uint8, vs []uint8) error
}

type smbusConn interface {
	ReadReg(addr, reg uint8) (uint8, error)
	WriteReg(addr, reg, v uint8) error
	Close() error
}

var _ smbusConn = (*smbus.Conn)(nil)

// SMBus drives a DA7280 chip over an I2C/SMBus adapter.
type SMBus struct {
	conn smbusConn
	addr uint8
}

var _ Bus = (*SMBus)(nil)

// OpenSMBus opens the i2c-dev adapter id and binds it to the chip
// at the given slave address.
func OpenSMBus(id int, addr uint8) (*SMBus, error) {
	conn, err := smbus.Open(id, addr)
	if err != nil {
		return nil, fmt.Errorf("da7280: could not open smbus adapter %d: %w", id, err)
	}
	return &SMBus{conn: conn, addr: addr}, nil
}

func (bus *SMBus) ReadReg(reg uint8) (uint8, error) {
	v, err := bus.conn.ReadReg(bus.addr, reg)
	if err != nil {
		return 0, fmt.Errorf("da7280: could not read register 0x%02x: %w", reg, err)
	}
	return v, nil
}

func (bus *SMBus) WriteReg(reg, v uint8) error {
	err := bus.conn.WriteReg(bus.addr, reg, v)
	if err != nil {
		return fmt.Errorf("da7280: could not write register 0x%02x: %w", reg, err)
	}
	return nil
}

// WriteBlock writes vs to consecutive registers, one byte per transfer.
func (bus *SMBus) WriteBlock(reg uint8, vs []uint8) error {
	for i, v := range vs {
		err := bus.conn.WriteReg(bus.addr, reg+uint8(i), v)
		if err != nil {
			return fmt.Errorf("da7280: could not write register 0x%02x: %w", reg+uint8(i), err)
		}
	}
	return nil
}

// Close releases the underlying adapter.
func (bus *SMBus) Close() error {
	return bus.conn.Close()
}
