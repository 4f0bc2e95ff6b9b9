// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package da7280

import (
	"fmt"
)

const (
	minResonantFreq = 50  // Hz
	maxResonantFreq = 300 // Hz

	imaxLimit = 252  // mA
	imaxStep  = 7200 // uA per code step

	voltRateMax = 6000  // mV
	voltStep    = 23400 // uV per code step
	nomVoltDflt = 0x6B

	impdMin = 4000  // milli-ohm
	impdMax = 50000 // milli-ohm

	minPWMFreq = 10000  // kHz
	maxPWMFreq = 250000 // kHz

	minWidebandFreq = 25   // Hz
	maxWidebandFreq = 1023 // Hz
)

// lraPeriod converts an LRA resonant frequency (in Hz) to the 15-bit
// drive period split across FRQ_LRA_PER_H and FRQ_LRA_PER_L.
func lraPeriod(hz uint16) (hi, lo uint8, err error) {
	if hz < minResonantFreq || hz > maxResonantFreq {
		return 0, 0, fmt.Errorf("da7280: resonant frequency %d Hz out of range [%d, %d]: %w",
			hz, minResonantFreq, maxResonantFreq, ErrInvalidArg,
		)
	}
	per := 1000000000 / (uint32(hz) * 1333)
	return uint8((per >> 7) & 0xFF), uint8(per & 0x7F), nil
}

// widebandPeriod converts a wideband drive frequency (in Hz) to the
// 15-bit drive period split across FRQ_LRA_PER_H and FRQ_LRA_PER_L.
// The wideband range is wider than the resonant one.
func widebandPeriod(hz uint16) (hi, lo uint8, err error) {
	if hz < minWidebandFreq || hz > maxWidebandFreq {
		return 0, 0, fmt.Errorf("da7280: wideband frequency %d Hz out of range [%d, %d]: %w",
			hz, minWidebandFreq, maxWidebandFreq, ErrInvalidArg,
		)
	}
	per := 1000000000 / (uint32(hz) * 1333)
	return uint8((per >> 7) & 0xFF), uint8(per & 0x7F), nil
}

// imaxCode converts an actuator max current (in mA) to the 5-bit IMAX
// field of ACTUATOR3.
func imaxCode(mA int) (uint8, error) {
	if mA > imaxLimit {
		return 0, fmt.Errorf("da7280: max current %d mA above limit %d mA: %w",
			mA, imaxLimit, ErrInvalidArg,
		)
	}
	code := (mA*1000-28600)/imaxStep + 1
	if code > 0x1F {
		code = 0x1F
	}
	return uint8(code) & 0x1F, nil
}

// voltCode converts a voltage rating (in mV) to the 8-bit code of the
// ACTUATOR1/ACTUATOR2 registers. Values at or above 6 V select the
// chip default rating.
func voltCode(mV uint32) uint8 {
	if mV >= voltRateMax {
		return nomVoltDflt
	}
	v := mV*1000/voltStep + 1
	if v > 0xFF {
		v = 0xFF
	}
	return uint8(v)
}

// v2iFactor computes the 16-bit V2I calibration factor from the
// actuator impedance (in milli-ohm) and the IMAX register code.
func v2iFactor(mOhm int, imax uint8) (uint16, error) {
	if mOhm < impdMin || mOhm > impdMax {
		return 0, fmt.Errorf("da7280: impedance %d mohm out of range [%d, %d]: %w",
			mOhm, impdMin, impdMax, ErrInvalidArg,
		)
	}
	v2i := uint32(mOhm) * 1000 * (uint32(imax) + 4) / 1610400
	return uint16(v2i), nil
}
