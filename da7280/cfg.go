// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package da7280

// gpiConfig holds the trigger configuration of one GPI pin.
type gpiConfig struct {
	seqID uint8
	mode  GPIMode
	pol   GPIPolarity
}

// config gathers the actuator ratings and the feature flags applied
// to the chip at bootstrap.
type config struct {
	typ  DeviceType
	mode Mode

	bemfSense bool
	freqTrack bool
	accel     bool
	rapidStop bool
	ampPID    bool

	nomVolt uint32 // nominal voltage rating, in mV
	absVolt uint32 // absolute max voltage rating, in mV
	resFreq uint16 // LRA resonant frequency, in Hz
	imax    int    // actuator max current, in mA
	impd    int    // actuator impedance, in milli-ohm

	override uint8 // initial DRO drive level
	seqID    uint8
	seqLoop  uint8
	gpi      [3]gpiConfig

	pwm PWM // external PWM source, nil when the platform has none
}

func newConfig() config {
	return config{
		typ:  LRA,
		mode: ModeDRO,

		bemfSense: true,
		freqTrack: true,
		accel:     true,
		rapidStop: true,
		ampPID:    false,

		nomVolt: 1200,
		absVolt: 1400,
		resFreq: 180,
		imax:    137,
		impd:    10500,

		override: 0x59,
		seqID:    7,
		seqLoop:  3,
		gpi: [3]gpiConfig{
			{seqID: 7, mode: SinglePattern, pol: BothEdges},
			{seqID: 7, mode: SinglePattern, pol: BothEdges},
			{seqID: 7, mode: SinglePattern, pol: BothEdges},
		},
	}
}

// Option configures a DA7280 device.
type Option func(*config)

// WithDeviceType sets the actuator type wired to the chip.
func WithDeviceType(typ DeviceType) Option {
	return func(cfg *config) {
		cfg.typ = typ
	}
}

// WithMode sets the operation mode applied at bootstrap.
func WithMode(mode Mode) Option {
	return func(cfg *config) {
		cfg.mode = mode
	}
}

// WithBEMFSense enables or disables back-EMF sensing.
func WithBEMFSense(on bool) Option {
	return func(cfg *config) {
		cfg.bemfSense = on
	}
}

// WithFreqTrack enables or disables resonant-frequency tracking.
func WithFreqTrack(on bool) Option {
	return func(cfg *config) {
		cfg.freqTrack = on
	}
}

// WithAcceleration enables or disables the active acceleration loop.
func WithAcceleration(on bool) Option {
	return func(cfg *config) {
		cfg.accel = on
	}
}

// WithRapidStop enables or disables rapid stop.
func WithRapidStop(on bool) Option {
	return func(cfg *config) {
		cfg.rapidStop = on
	}
}

// WithAmpPID enables or disables the amplitude PID loop.
func WithAmpPID(on bool) Option {
	return func(cfg *config) {
		cfg.ampPID = on
	}
}

// WithNomVolt sets the actuator nominal voltage rating, in mV.
func WithNomVolt(mV uint32) Option {
	return func(cfg *config) {
		cfg.nomVolt = mV
	}
}

// WithAbsVolt sets the actuator absolute max voltage rating, in mV.
func WithAbsVolt(mV uint32) Option {
	return func(cfg *config) {
		cfg.absVolt = mV
	}
}

// WithResonantFreq sets the LRA resonant frequency, in Hz.
func WithResonantFreq(hz uint16) Option {
	return func(cfg *config) {
		cfg.resFreq = hz
	}
}

// WithIMax sets the actuator max current, in mA.
func WithIMax(mA int) Option {
	return func(cfg *config) {
		cfg.imax = mA
	}
}

// WithImpedance sets the actuator impedance, in milli-ohm.
func WithImpedance(mOhm int) Option {
	return func(cfg *config) {
		cfg.impd = mOhm
	}
}

// WithOverride sets the initial DRO drive level.
func WithOverride(v uint8) Option {
	return func(cfg *config) {
		cfg.override = v
	}
}

// WithSeqID sets the pattern sequence played in RTWM mode.
func WithSeqID(id uint8) Option {
	return func(cfg *config) {
		cfg.seqID = id
	}
}

// WithSeqLoop sets the pattern sequence loop count.
func WithSeqLoop(n uint8) Option {
	return func(cfg *config) {
		cfg.seqLoop = n
	}
}

// WithGPI sets the trigger configuration of GPI pin n (0, 1 or 2).
func WithGPI(n int, seqID uint8, mode GPIMode, pol GPIPolarity) Option {
	return func(cfg *config) {
		cfg.gpi[n] = gpiConfig{seqID: seqID, mode: mode, pol: pol}
	}
}

// WithPWM provides the external PWM source used in PWM mode.
func WithPWM(pwm PWM) Option {
	return func(cfg *config) {
		cfg.pwm = pwm
	}
}
