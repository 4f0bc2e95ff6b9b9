// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command hap-console is an interactive register console for DA7280
// haptics devices.
//
// Commands:
//
//	read   <reg>
//	write  <reg> <val>
//	update <reg> <mask> <val>
//	dump
//	status
//	irq
//	enable
//	disable
//	quit
//
// Registers and values are parsed with Go syntax, so both 0x23 and 35
// work.
package main // import "github.com/go-hap/hap/cmd/hap-console"

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/go-hap/hap/da7280"
)

func main() {
	var (
		i2c  = flag.Int("i2c", 0, "i2c-dev adapter id")
		chip = flag.Uint("chip", uint(da7280.I2CAddr), "chip slave address")
	)

	log.SetPrefix("hap-console: ")
	log.SetFlags(0)

	flag.Parse()

	err := run(*i2c, uint8(*chip))
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(i2c int, chip uint8) error {
	bus, err := da7280.OpenSMBus(i2c, chip)
	if err != nil {
		return fmt.Errorf("could not open i2c bus: %w", err)
	}

	dev, err := da7280.New(bus)
	if err != nil {
		_ = bus.Close()
		return fmt.Errorf("could not open haptics device: %w", err)
	}
	defer dev.Close()

	log.Printf("connected to %v (adapter=%d, chip=0x%02x)", dev.Variant(), i2c, chip)

	term := liner.NewLiner()
	defer term.Close()
	term.SetCtrlCAborts(true)

	con := console{bus: bus, dev: dev}
	for {
		line, err := term.Prompt("hap> ")
		switch {
		case err == io.EOF || err == liner.ErrPromptAborted:
			fmt.Fprintf(os.Stdout, "\n")
			return nil
		case err != nil:
			return fmt.Errorf("could not read line: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		term.AppendHistory(line)

		quit, err := con.exec(line)
		if err != nil {
			log.Printf("%+v", err)
			continue
		}
		if quit {
			return nil
		}
	}
}

type console struct {
	bus da7280.Bus
	dev *da7280.Device
}

func (con *console) exec(line string) (quit bool, err error) {
	toks := strings.Fields(line)
	switch toks[0] {
	case "read":
		if len(toks) != 2 {
			return false, fmt.Errorf("usage: read <reg>")
		}
		reg, err := parseU8(toks[1])
		if err != nil {
			return false, err
		}
		v, err := con.bus.ReadReg(reg)
		if err != nil {
			return false, err
		}
		fmt.Printf("reg[0x%02x] = 0x%02x\n", reg, v)

	case "write":
		if len(toks) != 3 {
			return false, fmt.Errorf("usage: write <reg> <val>")
		}
		reg, err := parseU8(toks[1])
		if err != nil {
			return false, err
		}
		v, err := parseU8(toks[2])
		if err != nil {
			return false, err
		}
		err = con.bus.WriteReg(reg, v)
		if err != nil {
			return false, err
		}

	case "update":
		if len(toks) != 4 {
			return false, fmt.Errorf("usage: update <reg> <mask> <val>")
		}
		reg, err := parseU8(toks[1])
		if err != nil {
			return false, err
		}
		mask, err := parseU8(toks[2])
		if err != nil {
			return false, err
		}
		bits, err := parseU8(toks[3])
		if err != nil {
			return false, err
		}
		v, err := con.bus.ReadReg(reg)
		if err != nil {
			return false, err
		}
		v = v&^mask | bits&mask
		err = con.bus.WriteReg(reg, v)
		if err != nil {
			return false, err
		}
		fmt.Printf("reg[0x%02x] = 0x%02x\n", reg, v)

	case "dump":
		err := con.dev.DumpRegisters(os.Stdout)
		if err != nil {
			return false, err
		}

	case "status":
		sta, err := con.dev.Status()
		if err != nil {
			return false, err
		}
		fmt.Printf("status = 0x%02x\n", sta)

	case "irq":
		evts, err := con.dev.ServiceIRQ()
		if err != nil {
			return false, err
		}
		if len(evts) == 0 {
			fmt.Printf("no pending events\n")
		}
		for _, evt := range evts {
			fmt.Printf("event: %v\n", evt)
		}

	case "enable":
		err := con.dev.Enable()
		if err != nil {
			return false, err
		}

	case "disable":
		err := con.dev.Disable()
		if err != nil {
			return false, err
		}

	case "quit", "exit":
		return true, nil

	default:
		return false, fmt.Errorf("unknown command %q", toks[0])
	}
	return false, nil
}

func parseU8(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("could not parse %q: %w", s, err)
	}
	return uint8(v), nil
}
