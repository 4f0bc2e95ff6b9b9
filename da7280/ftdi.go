// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package da7280

import (
	"fmt"
	"io"

	"github.com/ziutek/ftdi"
)

type ftdiDevice interface {
	Reset() error

	SetBitmode(iomask byte, mode ftdi.Mode) error
	SetFlowControl(flowctrl ftdi.FlowCtrl) error
	SetLatencyTimer(lt int) error
	SetWriteChunkSize(cs int) error
	SetReadChunkSize(cs int) error
	PurgeBuffers() error

	io.Writer
	io.Reader
	io.Closer
}

// FTDIBus drives a DA7280 chip through an FTDI USB-to-I2C bridge.
// It is meant for bench bring-up on hosts without an i2c-dev adapter.
type FTDIBus struct {
	vid  uint16     // vendor ID
	pid  uint16     // product ID
	addr uint8      // chip I2C slave address
	ft   ftdiDevice // handle to the FTDI device
}

var _ Bus = (*FTDIBus)(nil)

var (
	ftdiOpen = ftdiOpenImpl
)

func ftdiOpenImpl(vid, pid uint16) (ftdiDevice, error) {
	dev, err := ftdi.OpenFirst(int(vid), int(pid), ftdi.ChannelAny)
	return dev, err
}

// OpenFTDIBus opens the first FTDI bridge matching vid:pid and binds
// it to the chip at the given slave address.
func OpenFTDIBus(vid, pid uint16, addr uint8) (*FTDIBus, error) {
	ft, err := ftdiOpen(vid, pid)
	if err != nil {
		return nil, fmt.Errorf("da7280: could not open FTDI device (vid=0x%x, pid=0x%x): %w", vid, pid, err)
	}

	bus := &FTDIBus{vid: vid, pid: pid, addr: addr, ft: ft}
	err = bus.init()
	if err != nil {
		ft.Close()
		return nil, fmt.Errorf("da7280: could not initialize FTDI device (vid=0x%x, pid=0x%x): %w", vid, pid, err)
	}

	return bus, nil
}

func (bus *FTDIBus) init() error {
	var err error

	err = bus.ft.Reset()
	if err != nil {
		return fmt.Errorf("could not reset USB: %w", err)
	}

	err = bus.ft.SetBitmode(0xFB, ftdi.ModeMPSSE)
	if err != nil {
		return fmt.Errorf("could not enable MPSSE: %w", err)
	}

	err = bus.ft.SetFlowControl(ftdi.FlowCtrlDisable)
	if err != nil {
		return fmt.Errorf("could not disable flow control: %w", err)
	}

	err = bus.ft.SetLatencyTimer(2)
	if err != nil {
		return fmt.Errorf("could not set latency timer to 2: %w", err)
	}

	err = bus.ft.SetWriteChunkSize(0xffff)
	if err != nil {
		return fmt.Errorf("could not set write chunk-size to 0xffff: %w", err)
	}

	err = bus.ft.SetReadChunkSize(0xffff)
	if err != nil {
		return fmt.Errorf("could not set read chunk-size to 0xffff: %w", err)
	}

	err = bus.ft.PurgeBuffers()
	if err != nil {
		return fmt.Errorf("could not purge USB buffers: %w", err)
	}

	return err
}

func (bus *FTDIBus) ReadReg(reg uint8) (uint8, error) {
	p := []byte{bus.addr << 1, reg, bus.addr<<1 | 1}

	n, err := bus.ft.Write(p)
	switch {
	case err != nil:
		return 0, fmt.Errorf("da7280: could not address register 0x%02x: %w", reg, err)
	case n != len(p):
		return 0, fmt.Errorf("da7280: could not address register 0x%02x: %w", reg, io.ErrShortWrite)
	}

	buf := make([]byte, 1)
	_, err = io.ReadFull(bus.ft, buf)
	if err != nil {
		return 0, fmt.Errorf("da7280: could not read register 0x%02x: %w", reg, err)
	}
	return buf[0], nil
}

func (bus *FTDIBus) WriteReg(reg, v uint8) error {
	p := []byte{bus.addr << 1, reg, v}

	n, err := bus.ft.Write(p)
	switch {
	case err != nil:
		return fmt.Errorf("da7280: could not write register (0x%02x, 0x%02x): %w", reg, v, err)
	case n != len(p):
		return fmt.Errorf("da7280: could not write register (0x%02x, 0x%02x): %w", reg, v, io.ErrShortWrite)
	}
	return nil
}

func (bus *FTDIBus) WriteBlock(reg uint8, vs []uint8) error {
	for i, v := range vs {
		err := bus.WriteReg(reg+uint8(i), v)
		if err != nil {
			return err
		}
	}
	return nil
}

// Close releases the FTDI handle.
func (bus *FTDIBus) Close() error {
	return bus.ft.Close()
}
