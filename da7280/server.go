// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package da7280

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"
)

// device is the control surface the server drives.
type device interface {
	Init() error
	Enable() error
	Disable() error
	Suspend() error
	Resume() error
	SetMode(mode Mode) error
	SetOverride(v uint8) error
	SetSeqID(id uint8) error
	SetSeqLoop(n uint8) error
	WritePattern(p []byte) error
	ServiceIRQ() ([]Event, error)
	Status() (uint8, error)

	Close() error
}

var _ device = (*Device)(nil)

// server allows to control a DA7280 haptics device over TCP.
type server struct {
	ctl net.Listener

	msg *log.Logger
	i2c int   // i2c-dev adapter id
	adr uint8 // chip slave address

	newDevice func(id int, addr uint8, opts ...Option) (device, error)

	opts []Option
	dev  device
}

// Serve listens on addr and drives the chip on the given i2c-dev
// adapter, one controlling client at a time.
func Serve(addr string, id int, chip uint8, opts ...Option) error {
	srv, err := newServer(addr, id, chip, opts...)
	if err != nil {
		return fmt.Errorf("could not create da7280 server: %w", err)
	}
	return srv.serve()
}

func newServer(addr string, id int, chip uint8, opts ...Option) (*server, error) {
	ctl, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("could not create hap-svc server on %q: %w", addr, err)
	}

	srv := &server{
		ctl: ctl,

		msg: log.New(os.Stdout, "hap-svc: ", 0),

		i2c: id,
		adr: chip,

		newDevice: func(id int, addr uint8, opts ...Option) (device, error) {
			bus, err := OpenSMBus(id, addr)
			if err != nil {
				return nil, err
			}
			return New(bus, opts...)
		},

		opts: opts,
	}
	return srv, nil
}

func (srv *server) serve() error {
	defer srv.close()

	for {
		conn, err := srv.ctl.Accept()
		if err != nil {
			return fmt.Errorf("could not accept connection: %w", err)
		}

		err = srv.handle(conn)
		if err != nil {
			srv.msg.Printf("could not run haptics device: %+v", err)
			continue
		}
	}
}

func (srv *server) handle(conn net.Conn) error {
	defer conn.Close()
	srv.msg.Printf("serving %v...", conn.RemoteAddr())
	defer srv.msg.Printf("serving %v... [done]", conn.RemoteAddr())

	srv.dev = nil
	dev, err := srv.newDevice(srv.i2c, srv.adr, srv.opts...)
	if err != nil {
		return fmt.Errorf("could not create haptics device: %w", err)
	}
	defer dev.Close()
	srv.dev = dev

loop:
	for {
		var req struct {
			Name string           `json:"name"`
			Args *json.RawMessage `json:"args"`
		}

		err = json.NewDecoder(conn).Decode(&req)
		if err != nil {
			srv.msg.Printf("could not decode command request: %+v", err)
			srv.reply(conn, err)
			if errors.Is(err, io.EOF) {
				break loop
			}
			continue
		}
		srv.msg.Printf("received request: name=%q", req.Name)

		switch strings.ToLower(req.Name) {
		case "init":
			err = dev.Init()
			srv.reply(conn, err)
			if err != nil {
				srv.msg.Printf("could not initialize haptics device: %+v", err)
				continue
			}

		case "enable":
			err = dev.Enable()
			srv.reply(conn, err)
			if err != nil {
				srv.msg.Printf("could not enable haptics: %+v", err)
				continue
			}

		case "disable":
			err = dev.Disable()
			srv.reply(conn, err)
			if err != nil {
				srv.msg.Printf("could not disable haptics: %+v", err)
				continue
			}

		case "suspend":
			err = dev.Suspend()
			srv.reply(conn, err)
			if err != nil {
				srv.msg.Printf("could not suspend haptics device: %+v", err)
				continue
			}

		case "resume":
			err = dev.Resume()
			srv.reply(conn, err)
			if err != nil {
				srv.msg.Printf("could not resume haptics device: %+v", err)
				continue
			}

		case "mode":
			var args []uint8
			err = json.Unmarshal(*req.Args, &args)
			if err != nil || len(args) != 1 {
				srv.msg.Printf("could not decode %q payload: %+v", req.Name, err)
				srv.reply(conn, fmt.Errorf("invalid %q payload", req.Name))
				continue
			}
			err = dev.SetMode(Mode(args[0]))
			srv.reply(conn, err)
			if err != nil {
				srv.msg.Printf("could not set mode: %+v", err)
				continue
			}

		case "override":
			var args []uint8
			err = json.Unmarshal(*req.Args, &args)
			if err != nil || len(args) != 1 {
				srv.msg.Printf("could not decode %q payload: %+v", req.Name, err)
				srv.reply(conn, fmt.Errorf("invalid %q payload", req.Name))
				continue
			}
			err = dev.SetOverride(args[0])
			srv.reply(conn, err)
			if err != nil {
				srv.msg.Printf("could not set override value: %+v", err)
				continue
			}

		case "sequence":
			var args struct {
				ID   uint8 `json:"id"`
				Loop uint8 `json:"loop"`
			}
			err = json.Unmarshal(*req.Args, &args)
			if err != nil {
				srv.msg.Printf("could not decode %q payload: %+v", req.Name, err)
				srv.reply(conn, err)
				continue
			}
			err = dev.SetSeqID(args.ID)
			if err == nil {
				err = dev.SetSeqLoop(args.Loop)
			}
			srv.reply(conn, err)
			if err != nil {
				srv.msg.Printf("could not select sequence: %+v", err)
				continue
			}

		case "pattern":
			var args []byte
			err = json.Unmarshal(*req.Args, &args)
			if err != nil {
				srv.msg.Printf("could not decode %q payload: %+v", req.Name, err)
				srv.reply(conn, err)
				continue
			}
			err = dev.WritePattern(args)
			srv.reply(conn, err)
			if err != nil {
				srv.msg.Printf("could not upload pattern: %+v", err)
				continue
			}

		case "status":
			sta, err := dev.Status()
			if err != nil {
				srv.msg.Printf("could not read status: %+v", err)
				srv.reply(conn, err)
				continue
			}
			srv.replyMsg(conn, fmt.Sprintf("0x%02x", sta))

		case "irq":
			evts, err := dev.ServiceIRQ()
			if err != nil {
				srv.msg.Printf("could not service IRQ: %+v", err)
				srv.reply(conn, err)
				continue
			}
			names := make([]string, len(evts))
			for i, evt := range evts {
				names[i] = evt.String()
			}
			srv.replyMsg(conn, strings.Join(names, ","))

		case "quit":
			err = dev.Disable()
			srv.reply(conn, err)
			if err != nil {
				srv.msg.Printf("could not disable haptics: %+v", err)
				return fmt.Errorf("could not disable haptics: %w", err)
			}
			break loop

		default:
			srv.msg.Printf("unknown command name=%q, args=%q", req.Name, req.Args)
			err = fmt.Errorf("unknown command %q", req.Name)
			srv.reply(conn, err)
			continue
		}
	}

	return nil
}

func (srv *server) reply(conn net.Conn, err error) {
	rep := struct {
		Msg string `json:"msg"`
	}{"ok"}
	if err != nil {
		rep.Msg = fmt.Sprintf("%+v", err)
	}

	_ = json.NewEncoder(conn).Encode(rep)
}

func (srv *server) replyMsg(conn net.Conn, msg string) {
	rep := struct {
		Msg string `json:"msg"`
	}{msg}

	_ = json.NewEncoder(conn).Encode(rep)
}

func (srv *server) close() {
	_ = srv.ctl.Close()
}
