// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command hap-srv starts a TDAQ server driving a DA7280 haptics
// device.
package main // import "github.com/go-hap/hap/cmd/hap-srv"

import (
	"context"
	"log"
	"os"

	"github.com/go-daq/tdaq"
	"github.com/go-daq/tdaq/flags"

	"github.com/go-hap/hap/da7280"
	"github.com/go-hap/hap/hapsrv"
)

func main() {
	cmd := flags.New()

	name := "hap"
	if len(cmd.Args) > 0 {
		name = cmd.Args[0]
	}

	dev := hapsrv.New(name, 0, da7280.I2CAddr)
	if dbname := os.Getenv("HAPDB_NAME"); dbname != "" {
		dev.UsePatternDB(dbname, os.Getenv("HAPDB_PATTERN"))
	}

	srv := tdaq.New(cmd, os.Stdout)
	srv.CmdHandle("/config", dev.OnConfig)
	srv.CmdHandle("/init", dev.OnInit)
	srv.CmdHandle("/reset", dev.OnReset)
	srv.CmdHandle("/start", dev.OnStart)
	srv.CmdHandle("/stop", dev.OnStop)
	srv.CmdHandle("/quit", dev.OnQuit)

	srv.OutputHandle("/hap-evt", dev.Events)

	srv.RunHandle(dev.Run)

	err := srv.Run(context.Background())
	if err != nil {
		log.Panicf("error: %+v", err)
	}
}
