// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command hap-mon watches a hap-svc service for actuator faults and
// sends mail alerts when faults repeat.
package main // import "github.com/go-hap/hap/cmd/hap-mon"

import (
	"crypto/tls"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	mail "gopkg.in/gomail.v2"
)

func main() {
	var (
		addr = flag.String("addr", "localhost:9998", "hap-svc address")
		freq = flag.Duration("freq", 30*time.Second, "probing interval")
	)

	flag.Parse()

	log.SetPrefix("hap-mon: ")
	log.SetFlags(0)

	run(*addr, *freq)
}

func run(addr string, freq time.Duration) {
	mon, err := newMonitor(addr)
	if err != nil {
		log.Fatalf("could not create monitor: %+v", err)
	}
	defer mon.close()

	log.Printf("monitoring hap-svc on %q...", addr)
	tick := time.NewTicker(freq)
	defer tick.Stop()

	for range tick.C {
		err := mon.probe()
		if err != nil {
			log.Printf("could not probe %q: %+v", addr, err)
			return
		}
	}
}

type monitor struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder

	alerts map[string]int // number of alerts per event
}

func newMonitor(addr string) (*monitor, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("could not dial %q: %w", addr, err)
	}
	return &monitor{
		conn:   conn,
		enc:    json.NewEncoder(conn),
		dec:    json.NewDecoder(conn),
		alerts: make(map[string]int),
	}, nil
}

func (mon *monitor) close() {
	_ = mon.conn.Close()
}

func (mon *monitor) probe() error {
	req := struct {
		Name string `json:"name"`
	}{"irq"}

	err := mon.enc.Encode(req)
	if err != nil {
		return fmt.Errorf("could not send irq request: %w", err)
	}

	var rep struct {
		Msg string `json:"msg"`
	}
	err = mon.dec.Decode(&rep)
	if err != nil {
		return fmt.Errorf("could not read irq reply: %w", err)
	}

	for _, evt := range strings.Split(rep.Msg, ",") {
		if isFault(evt) {
			mon.alert(evt)
		}
	}
	return nil
}

// isFault reports whether the named event should raise an alert.
func isFault(evt string) bool {
	switch {
	case strings.HasSuffix(evt, "-fault"),
		evt == "overcurrent",
		evt == "overtemp-critical":
		return true
	}
	return false
}

func (mon *monitor) alert(evt string) {
	log.Printf("fault event %q", evt)
	mon.alerts[evt]++

	const maxAlerts = 5
	if mon.alerts[evt] < maxAlerts {
		mon.alertMail(evt)
	}
}

var (
	alertMailUsr  = os.Getenv("MAIL_USERNAME")
	alertMailPwd  = os.Getenv("MAIL_PASSWORD")
	alertMailSrv  = os.Getenv("MAIL_SERVER")
	alertMailPort = atoi(os.Getenv("MAIL_PORT"))
	alertMailTgts = strings.Split(os.Getenv("MAIL_TGTS"), ",")
)

func (mon *monitor) alertMail(evt string) {
	if alertMailUsr == "" || alertMailPwd == "" ||
		alertMailSrv == "" || alertMailPort == 0 ||
		len(alertMailTgts) == 0 {
		log.Printf("could not send mail alert: missing credentials")
		return
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", alertMailUsr)
	msg.SetHeader("Bcc", alertMailTgts...)
	msg.SetHeader("Subject", fmt.Sprintf("[hap-mon] fault alert: %q", evt))
	msg.SetBody("text/plain", fmt.Sprintf("event: %q\ncount: %d\naddr: %v",
		evt, mon.alerts[evt], mon.conn.RemoteAddr(),
	))

	dial := mail.NewDialer(alertMailSrv, alertMailPort, alertMailUsr, alertMailPwd)
	dial.TLSConfig = &tls.Config{
		InsecureSkipVerify: true,
	}
	err := dial.DialAndSend(msg)
	if err != nil {
		log.Printf("could not send mail alert: %+v", err)
	}
}

func atoi(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
