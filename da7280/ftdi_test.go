// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package da7280

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ziutek/ftdi"
)

type fakeFTDI struct {
	wbuf bytes.Buffer // bytes pushed to the bridge
	rbuf bytes.Buffer // bytes the bridge will answer
	werr error
	short bool

	closed bool
}

var _ ftdiDevice = (*fakeFTDI)(nil)

func (dev *fakeFTDI) Reset() error                              { return nil }
func (dev *fakeFTDI) SetBitmode(iomask byte, m ftdi.Mode) error { return nil }
func (dev *fakeFTDI) SetFlowControl(fc ftdi.FlowCtrl) error     { return nil }
func (dev *fakeFTDI) SetLatencyTimer(lt int) error              { return nil }
func (dev *fakeFTDI) SetWriteChunkSize(cs int) error            { return nil }
func (dev *fakeFTDI) SetReadChunkSize(cs int) error             { return nil }
func (dev *fakeFTDI) PurgeBuffers() error                       { return nil }

func (dev *fakeFTDI) Write(p []byte) (int, error) {
	if dev.werr != nil {
		return 0, dev.werr
	}
	if dev.short {
		n := len(p) - 1
		dev.wbuf.Write(p[:n])
		return n, nil
	}
	return dev.wbuf.Write(p)
}

func (dev *fakeFTDI) Read(p []byte) (int, error) {
	return dev.rbuf.Read(p)
}

func (dev *fakeFTDI) Close() error {
	dev.closed = true
	return nil
}

func TestFTDIBus(t *testing.T) {
	ft := new(fakeFTDI)
	ft.rbuf.WriteByte(0xBA)
	bus := &FTDIBus{addr: I2CAddr, ft: ft}

	v, err := bus.ReadReg(0x00)
	if err != nil {
		t.Fatalf("could not read register: %+v", err)
	}
	if got, want := v, uint8(0xBA); got != want {
		t.Fatalf("invalid register value: got=0x%02x, want=0x%02x", got, want)
	}
	if got, want := ft.wbuf.Bytes(), []byte{0x94, 0x00, 0x95}; !bytes.Equal(got, want) {
		t.Fatalf("invalid read frame: got=%x, want=%x", got, want)
	}

	ft.wbuf.Reset()
	err = bus.WriteReg(0x23, 0x59)
	if err != nil {
		t.Fatalf("could not write register: %+v", err)
	}
	if got, want := ft.wbuf.Bytes(), []byte{0x94, 0x23, 0x59}; !bytes.Equal(got, want) {
		t.Fatalf("invalid write frame: got=%x, want=%x", got, want)
	}

	ft.wbuf.Reset()
	err = bus.WriteBlock(0x84, []uint8{1, 2})
	if err != nil {
		t.Fatalf("could not write block: %+v", err)
	}
	if got, want := ft.wbuf.Bytes(), []byte{0x94, 0x84, 0x01, 0x94, 0x85, 0x02}; !bytes.Equal(got, want) {
		t.Fatalf("invalid block frames: got=%x, want=%x", got, want)
	}

	err = bus.Close()
	if err != nil {
		t.Fatalf("could not close bus: %+v", err)
	}
	if !ft.closed {
		t.Fatalf("FTDI handle not closed")
	}
}

func TestFTDIBusFail(t *testing.T) {
	t.Run("write-error", func(t *testing.T) {
		ft := &fakeFTDI{werr: errors.New("usb error")}
		bus := &FTDIBus{addr: I2CAddr, ft: ft}

		if _, err := bus.ReadReg(0x00); err == nil {
			t.Fatalf("expected a read error")
		}
		if err := bus.WriteReg(0x23, 0x59); err == nil {
			t.Fatalf("expected a write error")
		}
	})

	t.Run("short-write", func(t *testing.T) {
		ft := &fakeFTDI{short: true}
		bus := &FTDIBus{addr: I2CAddr, ft: ft}

		err := bus.WriteReg(0x23, 0x59)
		if !errors.Is(err, io.ErrShortWrite) {
			t.Fatalf("invalid error: got=%+v, want=%+v", err, io.ErrShortWrite)
		}
	})

	t.Run("short-read", func(t *testing.T) {
		ft := new(fakeFTDI)
		bus := &FTDIBus{addr: I2CAddr, ft: ft}

		_, err := bus.ReadReg(0x00)
		if err == nil {
			t.Fatalf("expected a read error")
		}
	})

	t.Run("open-error", func(t *testing.T) {
		defer func(fn func(vid, pid uint16) (ftdiDevice, error)) {
			ftdiOpen = fn
		}(ftdiOpen)
		ftdiOpen = func(vid, pid uint16) (ftdiDevice, error) {
			return nil, errors.New("no such device")
		}

		_, err := OpenFTDIBus(0x0403, 0x6014, I2CAddr)
		if err == nil {
			t.Fatalf("expected an open error")
		}
	})
}
