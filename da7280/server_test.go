// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package da7280

import (
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"
)

type fakeDevice struct {
	err error
	sta uint8
	evt []Event
}

var _ device = (*fakeDevice)(nil)

func (dev *fakeDevice) Init() error                  { return dev.err }
func (dev *fakeDevice) Enable() error                { return dev.err }
func (dev *fakeDevice) Disable() error               { return dev.err }
func (dev *fakeDevice) Suspend() error               { return dev.err }
func (dev *fakeDevice) Resume() error                { return dev.err }
func (dev *fakeDevice) SetMode(mode Mode) error      { return dev.err }
func (dev *fakeDevice) SetOverride(v uint8) error    { return dev.err }
func (dev *fakeDevice) SetSeqID(id uint8) error      { return dev.err }
func (dev *fakeDevice) SetSeqLoop(n uint8) error     { return dev.err }
func (dev *fakeDevice) WritePattern(p []byte) error  { return dev.err }
func (dev *fakeDevice) Close() error                 { return nil }
func (dev *fakeDevice) Status() (uint8, error)       { return dev.sta, dev.err }
func (dev *fakeDevice) ServiceIRQ() ([]Event, error) { return dev.evt, dev.err }

func getTCPPort() (string, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return "", err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return "", err
	}
	defer l.Close()
	return strconv.Itoa(l.Addr().(*net.TCPAddr).Port), nil
}

func TestServerFail(t *testing.T) {
	err := Serve("1.2.3.4.5:-1", 0, I2CAddr)
	if err == nil {
		t.Fatalf("expected an error")
	}
}

func TestServer(t *testing.T) {
	port, err := getTCPPort()
	if err != nil {
		t.Fatalf("could not find a TCP port: %+v", err)
	}
	addr := "localhost:" + port

	srv, err := newServer(addr, 0, I2CAddr)
	if err != nil {
		t.Fatalf("could not create server: %+v", err)
	}

	fdev := &fakeDevice{
		sta: 0x24,
		evt: []Event{EvtPatternDone, EvtWarning},
	}
	srv.newDevice = func(id int, addr uint8, opts ...Option) (device, error) {
		return fdev, nil
	}

	errch := make(chan error)
	go func() {
		errch <- srv.serve()
	}()

	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("could not dial server: %+v", err)
	}
	defer conn.Close()

	type request struct {
		Name string      `json:"name"`
		Args interface{} `json:"args,omitempty"`
	}

	send := func(t *testing.T, req request) string {
		t.Helper()
		err := json.NewEncoder(conn).Encode(req)
		if err != nil {
			t.Fatalf("could not send request %q: %+v", req.Name, err)
		}
		var rep struct {
			Msg string `json:"msg"`
		}
		err = json.NewDecoder(conn).Decode(&rep)
		if err != nil {
			t.Fatalf("could not read reply to %q: %+v", req.Name, err)
		}
		return rep.Msg
	}

	ack := func(t *testing.T, req request) {
		t.Helper()
		if msg := send(t, req); msg != "ok" {
			t.Fatalf("command %q failed: %s", req.Name, msg)
		}
	}

	ackErr := func(t *testing.T, req request, want string) {
		t.Helper()
		if msg := send(t, req); msg != want {
			t.Fatalf("invalid reply to %q:\ngot= %s\nwant=%s", req.Name, msg, want)
		}
	}

	ack(t, request{Name: "init"})
	ack(t, request{Name: "enable"})
	ack(t, request{Name: "suspend"})
	ack(t, request{Name: "resume"})
	ack(t, request{Name: "mode", Args: []uint8{2}})
	ack(t, request{Name: "override", Args: []uint8{0x59}})
	ack(t, request{Name: "sequence", Args: map[string]uint8{"id": 7, "loop": 3}})
	ack(t, request{Name: "pattern", Args: []byte{1, 2, 3}})
	ack(t, request{Name: "disable"})

	if msg := send(t, request{Name: "status"}); msg != "0x24" {
		t.Fatalf("invalid status reply: %s", msg)
	}
	if msg := send(t, request{Name: "irq"}); msg != "pattern-done,warning" {
		t.Fatalf("invalid irq reply: %s", msg)
	}

	ackErr(t, request{Name: "mode", Args: []uint8{1, 2}}, `invalid "mode" payload`)
	ackErr(t, request{Name: "turn-it-up"}, `unknown command "turn-it-up"`)

	fdev.err = errors.New("boom")
	ackErr(t, request{Name: "enable"}, "boom")
	fdev.err = nil

	ack(t, request{Name: "quit"})

	srv.close()
	err = <-errch
	if err == nil {
		t.Fatalf("expected an error from the closed listener")
	}
	if !isErrClosed(err) {
		t.Fatalf("invalid server error: %+v", err)
	}
}

func isErrClosed(err error) bool {
	return err != nil &&
		strings.HasSuffix(err.Error(), "use of closed network connection")
}
