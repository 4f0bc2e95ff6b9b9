// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hapsrv exposes a DA728x haptics device as a TDAQ process,
// driven by the usual /config /init /start /stop run-control commands.
package hapsrv // import "github.com/go-hap/hap/hapsrv"

import (
	"context"
	"strings"
	"time"

	"github.com/go-daq/tdaq"
	"golang.org/x/xerrors"

	"github.com/go-hap/hap/da7280"
	"github.com/go-hap/hap/hapdb"
)

// device is the haptics control surface the server drives.
type device interface {
	Init() error
	Enable() error
	Disable() error
	SetSeqID(id uint8) error
	WritePattern(p []byte) error
	ServiceIRQ() ([]da7280.Event, error)
	Close() error
}

var _ device = (*da7280.Device)(nil)

// patternDB is the slice of hapdb.DB the server uses.
type patternDB interface {
	LastLibrary(ctx context.Context) (string, error)
	Patterns(ctx context.Context, library string) ([]hapdb.Pattern, error)
	Close() error
}

var _ patternDB = (*hapdb.DB)(nil)

// Server drives one DA728x chip under TDAQ run control.
//
// At /config the waveform pattern library is fetched from the haptics
// database, at /init the chip is opened and bootstrapped, /start
// uploads the configured pattern and enables the actuator, /stop
// disables it. While running, the chip IRQ registers are polled and
// decoded events are published on the /hap-evt output port.
type Server struct {
	name string

	i2c  int   // i2c-dev adapter id
	adr  uint8 // chip slave address
	opts []da7280.Option

	dbname  string // haptics database, empty to skip pattern upload
	pattern string // pattern name, first library pattern when empty

	newDevice func(id int, addr uint8, opts ...da7280.Option) (device, error)
	openDB    func(name string) (patternDB, error)

	dev  device
	pats []hapdb.Pattern
	evts chan []byte
}

// New creates a haptics TDAQ server for the chip at addr on the given
// i2c-dev adapter.
func New(name string, i2c int, addr uint8, opts ...da7280.Option) *Server {
	return &Server{
		name: name,
		i2c:  i2c,
		adr:  addr,
		opts: opts,

		newDevice: func(id int, addr uint8, opts ...da7280.Option) (device, error) {
			bus, err := da7280.OpenSMBus(id, addr)
			if err != nil {
				return nil, err
			}
			return da7280.New(bus, opts...)
		},
		openDB: func(name string) (patternDB, error) {
			return hapdb.Open(name)
		},

		evts: make(chan []byte, 32),
	}
}

// UsePatternDB makes /config fetch the named pattern from the latest
// library of the haptics database dbname.
func (srv *Server) UsePatternDB(dbname, pattern string) {
	srv.dbname = dbname
	srv.pattern = pattern
}

func (srv *Server) OnConfig(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /config command...")
	if srv.dbname == "" {
		return nil
	}

	db, err := srv.openDB(srv.dbname)
	if err != nil {
		ctx.Msg.Errorf("could not open pattern db %q: %+v", srv.dbname, err)
		return xerrors.Errorf("could not open pattern db %q: %w", srv.dbname, err)
	}
	defer db.Close()

	lib, err := db.LastLibrary(ctx.Ctx)
	if err != nil {
		ctx.Msg.Errorf("could not get last pattern library: %+v", err)
		return xerrors.Errorf("could not get last pattern library: %w", err)
	}

	pats, err := db.Patterns(ctx.Ctx, lib)
	if err != nil {
		ctx.Msg.Errorf("could not get patterns of library %q: %+v", lib, err)
		return xerrors.Errorf("could not get patterns of library %q: %w", lib, err)
	}
	for _, pat := range pats {
		if err := pat.Validate(); err != nil {
			ctx.Msg.Errorf("invalid pattern in library %q: %+v", lib, err)
			return xerrors.Errorf("invalid pattern in library %q: %w", lib, err)
		}
	}

	if srv.pattern != "" && !contains(pats, srv.pattern) {
		ctx.Msg.Errorf("no pattern %q in library %q", srv.pattern, lib)
		return xerrors.Errorf("no pattern %q in library %q", srv.pattern, lib)
	}

	ctx.Msg.Infof("configured %d pattern(s) from library %q", len(pats), lib)
	srv.pats = pats
	return nil
}

func (srv *Server) OnInit(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /init command...")

	dev, err := srv.newDevice(srv.i2c, srv.adr, srv.opts...)
	if err != nil {
		ctx.Msg.Errorf("could not open haptics device: %+v", err)
		return xerrors.Errorf("could not open haptics device: %w", err)
	}

	err = dev.Init()
	if err != nil {
		_ = dev.Close()
		ctx.Msg.Errorf("could not initialize haptics device: %+v", err)
		return xerrors.Errorf("could not initialize haptics device: %w", err)
	}

	srv.dev = dev
	return nil
}

func (srv *Server) OnReset(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /reset command...")
	if srv.dev == nil {
		return nil
	}

	err := srv.dev.Disable()
	if err != nil {
		ctx.Msg.Errorf("could not disable haptics: %+v", err)
		return xerrors.Errorf("could not disable haptics: %w", err)
	}

	err = srv.dev.Init()
	if err != nil {
		ctx.Msg.Errorf("could not re-initialize haptics device: %+v", err)
		return xerrors.Errorf("could not re-initialize haptics device: %w", err)
	}
	return nil
}

func (srv *Server) OnStart(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /start command...")
	if srv.dev == nil {
		return xerrors.New("haptics device not initialized")
	}

	pat, ok := srv.lookup()
	if ok {
		err := srv.dev.WritePattern(pat.Image)
		if err != nil {
			ctx.Msg.Errorf("could not upload pattern %q: %+v", pat.Name, err)
			return xerrors.Errorf("could not upload pattern %q: %w", pat.Name, err)
		}
		err = srv.dev.SetSeqID(pat.SeqID)
		if err != nil {
			ctx.Msg.Errorf("could not select sequence of pattern %q: %+v", pat.Name, err)
			return xerrors.Errorf("could not select sequence of pattern %q: %w", pat.Name, err)
		}
		ctx.Msg.Infof("uploaded pattern %q (seq-id=%d)", pat.Name, pat.SeqID)
	}

	err := srv.dev.Enable()
	if err != nil {
		ctx.Msg.Errorf("could not enable haptics: %+v", err)
		return xerrors.Errorf("could not enable haptics: %w", err)
	}
	return nil
}

func contains(pats []hapdb.Pattern, name string) bool {
	for _, pat := range pats {
		if pat.Name == name {
			return true
		}
	}
	return false
}

// lookup returns the pattern to upload at /start: the configured one
// by name, or the first of the library. A named pattern missing from
// the library is caught at /config.
func (srv *Server) lookup() (hapdb.Pattern, bool) {
	if len(srv.pats) == 0 {
		return hapdb.Pattern{}, false
	}
	if srv.pattern == "" {
		return srv.pats[0], true
	}
	for _, pat := range srv.pats {
		if pat.Name == srv.pattern {
			return pat, true
		}
	}
	return hapdb.Pattern{}, false
}

func (srv *Server) OnStop(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /stop command...")
	if srv.dev == nil {
		return nil
	}

	err := srv.dev.Disable()
	if err != nil {
		ctx.Msg.Errorf("could not disable haptics: %+v", err)
		return xerrors.Errorf("could not disable haptics: %w", err)
	}
	return nil
}

func (srv *Server) OnQuit(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /quit command...")
	if srv.dev == nil {
		return nil
	}

	err := srv.dev.Close()
	srv.dev = nil
	if err != nil {
		ctx.Msg.Errorf("could not close haptics device: %+v", err)
		return xerrors.Errorf("could not close haptics device: %w", err)
	}
	return nil
}

// Events publishes decoded chip events on the output port.
func (srv *Server) Events(ctx tdaq.Context, dst *tdaq.Frame) error {
	select {
	case <-ctx.Ctx.Done():
		dst.Body = nil
		return nil
	case evts := <-srv.evts:
		dst.Body = evts
	}
	return nil
}

// Run polls the chip IRQ registers and queues decoded events for the
// output port.
func (srv *Server) Run(ctx tdaq.Context) error {
	for {
		select {
		case <-ctx.Ctx.Done():
			return nil
		default:
			if srv.dev != nil {
				evts, err := srv.dev.ServiceIRQ()
				if err != nil {
					ctx.Msg.Errorf("could not service haptics IRQ: %+v", err)
				}
				if len(evts) > 0 {
					names := make([]string, len(evts))
					for i, evt := range evts {
						names[i] = evt.String()
					}
					select {
					case srv.evts <- []byte(strings.Join(names, ",")):
					default:
					}
				}
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
}
