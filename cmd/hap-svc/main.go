// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command hap-svc serves a DA7280 haptics device over TCP.
package main // import "github.com/go-hap/hap/cmd/hap-svc"

import (
	"flag"
	"log"

	"github.com/go-hap/hap/da7280"
)

func main() {
	var (
		addr = flag.String("addr", ":9998", "hap-svc [addr]:port")
		i2c  = flag.Int("i2c", 0, "i2c-dev adapter id")
		chip = flag.Uint("chip", uint(da7280.I2CAddr), "chip slave address")
	)

	log.SetPrefix("hap-svc: ")
	log.SetFlags(0)

	flag.Parse()

	err := da7280.Serve(*addr, *i2c, uint8(*chip))
	if err != nil {
		log.Fatalf("could not create hap-svc service: %+v", err)
	}
}
