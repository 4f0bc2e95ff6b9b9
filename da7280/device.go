// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package da7280

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/go-hap/hap/da7280/internal/regs"
)

const (
	// SNPMemSize is the size of the waveform pattern memory, in bytes.
	SNPMemSize = 100
)

// Device represents a DA7280 haptic-driver chip attached to a register
// bus. All methods are safe for concurrent use.
type Device struct {
	msg *log.Logger
	bus Bus
	cfg config

	variant Variant

	mu        sync.Mutex
	typ       DeviceType
	mode      Mode
	bemfSense bool
	freqTrack bool
	accel     bool
	rapidStop bool
	ampPID    bool
	suspended bool

	sleep func(time.Duration)
}

// New opens a DA7280 device on the given bus and checks the chip
// revision against the known DA728x variants.
func New(bus Bus, opts ...Option) (*Device, error) {
	dev := &Device{
		msg:   log.New(os.Stdout, "da7280: ", 0),
		bus:   bus,
		cfg:   newConfig(),
		sleep: time.Sleep,
	}

	for _, opt := range opts {
		opt(&dev.cfg)
	}

	rev, err := bus.ReadReg(regs.CHIP_REV)
	if err != nil {
		return nil, fmt.Errorf("da7280: could not read chip revision: %w", err)
	}
	switch Variant(rev) {
	case DA7280, DA7281, DA7282:
		dev.variant = Variant(rev)
	default:
		return nil, fmt.Errorf("da7280: unknown chip revision 0x%02x: %w", rev, ErrInvalidArg)
	}

	dev.typ = dev.cfg.typ
	dev.mode = dev.cfg.mode
	dev.bemfSense = dev.cfg.bemfSense
	dev.freqTrack = dev.cfg.freqTrack
	dev.accel = dev.cfg.accel
	dev.rapidStop = dev.cfg.rapidStop
	dev.ampPID = dev.cfg.ampPID

	return dev, nil
}

// Variant returns the chip variant read at open.
func (dev *Device) Variant() Variant { return dev.variant }

// Close releases the underlying bus when it owns an OS resource.
func (dev *Device) Close() error {
	if c, ok := dev.bus.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// updateBits modifies the masked bits of reg with a single
// read-modify-write cycle. The write happens even when the value
// is unchanged.
func (dev *Device) updateBits(reg, mask, bits uint8) error {
	v, err := dev.bus.ReadReg(reg)
	if err != nil {
		return err
	}
	v = v&^mask | bits&mask
	return dev.bus.WriteReg(reg, v)
}

// Init bootstraps the chip: actuator ratings, feature flags, the
// power-on register script, then leaves standby.
func (dev *Device) Init() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	err := dev.bootstrap()
	if err != nil {
		return fmt.Errorf("da7280: could not bootstrap device: %w", err)
	}

	dev.suspended = true
	err = dev.resume()
	if err != nil {
		return fmt.Errorf("da7280: could not resume device: %w", err)
	}
	return nil
}

// bootstrap applies the configuration to the chip, in the fixed order
// the chip expects. Callers must hold dev.mu.
func (dev *Device) bootstrap() error {
	cfg := &dev.cfg

	dev.typ = cfg.typ
	dev.mode = cfg.mode
	dev.bemfSense = cfg.bemfSense
	dev.freqTrack = cfg.freqTrack
	dev.accel = cfg.accel
	dev.rapidStop = cfg.rapidStop
	dev.ampPID = cfg.ampPID

	switch dev.typ {
	case LRA:
		err := dev.writeResonantFreq(cfg.resFreq)
		if err != nil {
			return err
		}
	case ERMCoin:
		err := dev.updateBits(regs.TOP_INT_CFG1, regs.BEMF_FAULT_LIM_MASK, 0)
		if err != nil {
			return err
		}
		err = dev.updateBits(regs.TOP_CFG4,
			regs.TST_CALIB_IMPEDANCE_DIS_MASK|regs.V2I_FACTOR_FREEZE_MASK,
			regs.TST_CALIB_IMPEDANCE_DIS_MASK|regs.V2I_FACTOR_FREEZE_MASK,
		)
		if err != nil {
			return err
		}
		// coin ERMs run open loop
		dev.accel = false
		dev.rapidStop = false
		dev.ampPID = false
	}

	if dev.mode >= ModeRTWM {
		// BEMF sensing conflicts with waveform-memory playback
		dev.bemfSense = false
	}

	var (
		mask uint8 = regs.ACTUATOR_TYPE_MASK |
			regs.BEMF_SENSE_EN_MASK |
			regs.FREQ_TRACK_EN_MASK |
			regs.ACCELERATION_EN_MASK |
			regs.RAPID_STOP_EN_MASK |
			regs.AMP_PID_EN_MASK
		val = bit(dev.typ != LRA)<<regs.ACTUATOR_TYPE_SHIFT |
			bit(dev.bemfSense)<<regs.BEMF_SENSE_EN_SHIFT |
			bit(dev.freqTrack)<<regs.FREQ_TRACK_EN_SHIFT |
			bit(dev.accel)<<regs.ACCELERATION_EN_SHIFT |
			bit(dev.rapidStop)<<regs.RAPID_STOP_EN_SHIFT |
			bit(dev.ampPID)<<regs.AMP_PID_EN_SHIFT
	)
	err := dev.updateBits(regs.TOP_CFG1, mask, val)
	if err != nil {
		return err
	}

	err = dev.writeIMax(cfg.imax)
	if err != nil {
		return err
	}
	err = dev.writeVoltRating(regs.ACTUATOR1, cfg.nomVolt)
	if err != nil {
		return err
	}
	err = dev.writeVoltRating(regs.ACTUATOR2, cfg.absVolt)
	if err != nil {
		return err
	}

	return dev.runScript(dev.bootScript())
}

func bit(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

// SetOverride sets the DRO drive level. The value is clamped to 0x7F
// when acceleration is enabled or the actuator is an LRA, where the
// sign bit would flip the drive direction.
func (dev *Device) SetOverride(v uint8) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	var mask uint8 = 0xFF
	if dev.accel || dev.typ == LRA {
		mask = 0x7F
	}
	if v > mask {
		v = mask
	}
	err := dev.bus.WriteReg(regs.TOP_CTL2, v&mask)
	if err != nil {
		return fmt.Errorf("da7280: could not set override value: %w", err)
	}
	return nil
}

// SetGPISeqID selects the pattern sequence triggered by GPI pin n.
func (dev *Device) SetGPISeqID(n int, id uint8) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	if n < 0 || n > 2 {
		return fmt.Errorf("da7280: invalid GPI pin %d: %w", n, ErrInvalidArg)
	}
	if id > 15 {
		return fmt.Errorf("da7280: invalid sequence id %d: %w", id, ErrInvalidArg)
	}
	err := dev.updateBits(regs.GPI_0_CTL+uint8(n),
		regs.GPI_SEQUENCE_ID_MASK,
		id<<regs.GPI_SEQUENCE_ID_SHIFT,
	)
	if err != nil {
		return fmt.Errorf("da7280: could not set GPI-%d sequence id: %w", n, err)
	}
	return nil
}

// SetGPIMode selects single- or multi-pattern triggering for GPI pin n.
func (dev *Device) SetGPIMode(n int, mode GPIMode) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	if n < 0 || n > 2 {
		return fmt.Errorf("da7280: invalid GPI pin %d: %w", n, ErrInvalidArg)
	}
	if mode > MultiPattern {
		return fmt.Errorf("da7280: invalid GPI mode %d: %w", mode, ErrInvalidArg)
	}
	err := dev.updateBits(regs.GPI_0_CTL+uint8(n),
		regs.GPI_MODE_MASK,
		uint8(mode)<<regs.GPI_MODE_SHIFT,
	)
	if err != nil {
		return fmt.Errorf("da7280: could not set GPI-%d mode: %w", n, err)
	}
	return nil
}

// SetGPIPolarity selects the trigger edge(s) for GPI pin n.
func (dev *Device) SetGPIPolarity(n int, pol GPIPolarity) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	if n < 0 || n > 2 {
		return fmt.Errorf("da7280: invalid GPI pin %d: %w", n, ErrInvalidArg)
	}
	if pol > BothEdges {
		return fmt.Errorf("da7280: invalid GPI polarity %d: %w", pol, ErrInvalidArg)
	}
	err := dev.updateBits(regs.GPI_0_CTL+uint8(n),
		regs.GPI_POLARITY_MASK,
		uint8(pol)<<regs.GPI_POLARITY_SHIFT,
	)
	if err != nil {
		return fmt.Errorf("da7280: could not set GPI-%d polarity: %w", n, err)
	}
	return nil
}

// SetResonantFreq sets the LRA drive frequency, in Hz.
func (dev *Device) SetResonantFreq(hz uint16) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.writeResonantFreq(hz)
}

func (dev *Device) writeResonantFreq(hz uint16) error {
	hi, lo, err := lraPeriod(hz)
	if err != nil {
		return err
	}
	err = dev.bus.WriteReg(regs.FRQ_LRA_PER_H, hi)
	if err != nil {
		return fmt.Errorf("da7280: could not set resonant frequency: %w", err)
	}
	err = dev.bus.WriteReg(regs.FRQ_LRA_PER_L, lo)
	if err != nil {
		return fmt.Errorf("da7280: could not set resonant frequency: %w", err)
	}
	return nil
}

// SetWidebandFreq sets the drive frequency for wideband or custom
// waveform operation, in Hz, and freezes the phase delay so the
// waveform generator does not track the actuator resonance.
func (dev *Device) SetWidebandFreq(hz uint16) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	hi, lo, err := widebandPeriod(hz)
	if err != nil {
		return err
	}
	for _, w := range []struct{ reg, v uint8 }{
		{regs.FRQ_LRA_PER_H, hi},
		{regs.FRQ_LRA_PER_L, lo},
		{regs.FRQ_PHASE_H, 0x00},
		{regs.FRQ_PHASE_L, regs.PHASE_SHIFT_FREEZE_MASK},
	} {
		err := dev.bus.WriteReg(w.reg, w.v)
		if err != nil {
			return fmt.Errorf("da7280: could not set wideband frequency: %w", err)
		}
	}
	return nil
}

// SetCustomWave switches the waveform generator in or out of custom
// waveform operation. The V2I factor is frozen while a custom drive
// waveform plays.
func (dev *Device) SetCustomWave(on bool) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	var wavegen, freeze uint8
	if on {
		wavegen = regs.WAVEGEN_MODE_MASK
		freeze = regs.V2I_FACTOR_FREEZE_MASK
	}
	err := dev.updateBits(regs.SEQ_CTL1, regs.WAVEGEN_MODE_MASK, wavegen)
	if err != nil {
		return fmt.Errorf("da7280: could not set waveform generator mode: %w", err)
	}
	err = dev.updateBits(regs.TOP_CFG4, regs.V2I_FACTOR_FREEZE_MASK, freeze)
	if err != nil {
		return fmt.Errorf("da7280: could not freeze V2I factor: %w", err)
	}
	return nil
}

// SetDeviceType sets the actuator type bit of TOP_CFG1.
func (dev *Device) SetDeviceType(typ DeviceType) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	if typ > ERMCoin {
		return fmt.Errorf("da7280: invalid device type %d: %w", typ, ErrInvalidArg)
	}
	err := dev.updateBits(regs.TOP_CFG1,
		regs.ACTUATOR_TYPE_MASK,
		bit(typ != LRA)<<regs.ACTUATOR_TYPE_SHIFT,
	)
	if err != nil {
		return fmt.Errorf("da7280: could not set device type: %w", err)
	}
	dev.typ = typ
	return nil
}

// SetBEMFSense enables or disables back-EMF sensing.
func (dev *Device) SetBEMFSense(on bool) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	err := dev.updateBits(regs.TOP_CFG1,
		regs.BEMF_SENSE_EN_MASK,
		bit(on)<<regs.BEMF_SENSE_EN_SHIFT,
	)
	if err != nil {
		return fmt.Errorf("da7280: could not set BEMF sensing: %w", err)
	}
	dev.bemfSense = on
	return nil
}

// SetFreqTrack enables or disables resonant-frequency tracking.
func (dev *Device) SetFreqTrack(on bool) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	err := dev.updateBits(regs.TOP_CFG1,
		regs.FREQ_TRACK_EN_MASK,
		bit(on)<<regs.FREQ_TRACK_EN_SHIFT,
	)
	if err != nil {
		return fmt.Errorf("da7280: could not set frequency tracking: %w", err)
	}
	dev.freqTrack = on
	return nil
}

// SetAcceleration enables or disables the active acceleration loop.
func (dev *Device) SetAcceleration(on bool) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	err := dev.updateBits(regs.TOP_CFG1,
		regs.ACCELERATION_EN_MASK,
		bit(on)<<regs.ACCELERATION_EN_SHIFT,
	)
	if err != nil {
		return fmt.Errorf("da7280: could not set acceleration: %w", err)
	}
	dev.accel = on
	return nil
}

// SetRapidStop enables or disables rapid stop.
func (dev *Device) SetRapidStop(on bool) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	err := dev.updateBits(regs.TOP_CFG1,
		regs.RAPID_STOP_EN_MASK,
		bit(on)<<regs.RAPID_STOP_EN_SHIFT,
	)
	if err != nil {
		return fmt.Errorf("da7280: could not set rapid stop: %w", err)
	}
	dev.rapidStop = on
	return nil
}

// SetAmpPID enables or disables the amplitude PID loop.
func (dev *Device) SetAmpPID(on bool) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	err := dev.updateBits(regs.TOP_CFG1,
		regs.AMP_PID_EN_MASK,
		bit(on)<<regs.AMP_PID_EN_SHIFT,
	)
	if err != nil {
		return fmt.Errorf("da7280: could not set amplitude PID: %w", err)
	}
	dev.ampPID = on
	return nil
}

// SetIMax sets the actuator max current (in mA) and recomputes the
// V2I calibration factor from the configured impedance.
func (dev *Device) SetIMax(mA int) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.writeIMax(mA)
}

func (dev *Device) writeIMax(mA int) error {
	code, err := imaxCode(mA)
	if err != nil {
		return err
	}
	err = dev.updateBits(regs.ACTUATOR3, regs.IMAX_MASK, code)
	if err != nil {
		return fmt.Errorf("da7280: could not set max current: %w", err)
	}

	v2i, err := v2iFactor(dev.cfg.impd, code)
	if err != nil {
		return err
	}
	err = dev.bus.WriteReg(regs.CALIB_V2I_L, uint8(v2i&0xFF))
	if err != nil {
		return fmt.Errorf("da7280: could not set V2I factor: %w", err)
	}
	err = dev.bus.WriteReg(regs.CALIB_V2I_H, uint8(v2i>>8))
	if err != nil {
		return fmt.Errorf("da7280: could not set V2I factor: %w", err)
	}
	return nil
}

// SetNomVolt sets the actuator nominal voltage rating, in mV.
func (dev *Device) SetNomVolt(mV uint32) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.writeVoltRating(regs.ACTUATOR1, mV)
}

// SetAbsVolt sets the actuator absolute max voltage rating, in mV.
func (dev *Device) SetAbsVolt(mV uint32) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.writeVoltRating(regs.ACTUATOR2, mV)
}

func (dev *Device) writeVoltRating(reg uint8, mV uint32) error {
	err := dev.bus.WriteReg(reg, voltCode(mV))
	if err != nil {
		return fmt.Errorf("da7280: could not set voltage rating: %w", err)
	}
	return nil
}

// SetSeqID selects the pattern sequence played in RTWM mode.
func (dev *Device) SetSeqID(id uint8) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	if id > 15 {
		return fmt.Errorf("da7280: invalid sequence id %d: %w", id, ErrInvalidArg)
	}
	err := dev.updateBits(regs.SEQ_CTL2,
		regs.PS_SEQ_ID_MASK,
		id<<regs.PS_SEQ_ID_SHIFT,
	)
	if err != nil {
		return fmt.Errorf("da7280: could not set sequence id: %w", err)
	}
	return nil
}

// SetSeqLoop sets the pattern sequence loop count.
func (dev *Device) SetSeqLoop(n uint8) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	if n > 15 {
		return fmt.Errorf("da7280: invalid sequence loop count %d: %w", n, ErrInvalidArg)
	}
	err := dev.updateBits(regs.SEQ_CTL2,
		regs.PS_SEQ_LOOP_MASK,
		n<<regs.PS_SEQ_LOOP_SHIFT,
	)
	if err != nil {
		return fmt.Errorf("da7280: could not set sequence loop count: %w", err)
	}
	return nil
}

// SetMode selects the operation mode applied at the next Enable.
// No bus traffic happens until then.
func (dev *Device) SetMode(mode Mode) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	if mode > ModeETWM {
		return fmt.Errorf("da7280: invalid mode %d: %w", mode, ErrInvalidArg)
	}
	dev.mode = mode
	return nil
}

// Mode returns the currently selected operation mode.
func (dev *Device) Mode() Mode {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.mode
}

// CheckPWM validates an external PWM signal against the chip limits:
// frequency within [10, 250] MHz and, with acceleration disabled,
// a duty cycle of at least 50%.
func (dev *Device) CheckPWM(freqKHz, duty int) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	if freqKHz < minPWMFreq || freqKHz > maxPWMFreq {
		return fmt.Errorf("da7280: PWM frequency %d kHz out of range [%d, %d]: %w",
			freqKHz, minPWMFreq, maxPWMFreq, ErrInvalidArg,
		)
	}
	if !dev.accel && duty < 50 {
		return fmt.Errorf("da7280: PWM duty %d%% below 50%% with acceleration off: %w",
			duty, ErrInvalidArg,
		)
	}
	return nil
}

// Enable starts driving the actuator in the selected operation mode.
//
// In PWM mode the external PWM source is started first; when none was
// provided the chip is left untouched and ErrUnsupported is returned.
// PWM and RTWM modes additionally pulse SEQ_START.
func (dev *Device) Enable() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	if dev.mode == ModePWM {
		err := dev.startPWM()
		if err != nil {
			return fmt.Errorf("da7280: could not enable haptics: %w", err)
		}
	}

	err := dev.updateBits(regs.TOP_CTL1,
		regs.OPERATION_MODE_MASK,
		uint8(dev.mode),
	)
	if err != nil {
		return fmt.Errorf("da7280: could not enable haptics: %w", err)
	}

	if dev.mode == ModePWM || dev.mode == ModeRTWM {
		err = dev.updateBits(regs.TOP_CTL1,
			regs.SEQ_START_MASK,
			regs.SEQ_START_MASK,
		)
		if err != nil {
			return fmt.Errorf("da7280: could not start sequence: %w", err)
		}
	}
	return nil
}

// Disable stops driving the actuator. The mode bits are cleared before
// any PWM teardown so the chip never samples a dead PWM input.
func (dev *Device) Disable() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	err := dev.updateBits(regs.TOP_CTL1, regs.OPERATION_MODE_MASK, 0)
	if err != nil {
		return fmt.Errorf("da7280: could not disable haptics: %w", err)
	}

	if dev.mode == ModePWM {
		err = dev.stopPWM()
		if err != nil {
			return fmt.Errorf("da7280: could not stop PWM: %w", err)
		}
	}
	return nil
}

func (dev *Device) startPWM() error {
	if dev.cfg.pwm == nil {
		return ErrUnsupported
	}
	return dev.cfg.pwm.Start()
}

func (dev *Device) stopPWM() error {
	if dev.cfg.pwm == nil {
		dev.msg.Printf("no PWM source, nothing to stop")
		return nil
	}
	return dev.cfg.pwm.Stop()
}

// Suspend puts the chip out of standby operation. It is a no-op when
// the device is already suspended.
func (dev *Device) Suspend() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	if dev.suspended {
		return nil
	}
	err := dev.updateBits(regs.TOP_CTL1, regs.STANDBY_EN_MASK, 0)
	if err != nil {
		return fmt.Errorf("da7280: could not suspend device: %w", err)
	}
	dev.suspended = true
	return nil
}

// Resume puts the chip back in standby operation. It is a no-op when
// the device is not suspended.
func (dev *Device) Resume() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	err := dev.resume()
	if err != nil {
		return fmt.Errorf("da7280: could not resume device: %w", err)
	}
	return nil
}

func (dev *Device) resume() error {
	if !dev.suspended {
		return nil
	}
	err := dev.updateBits(regs.TOP_CTL1,
		regs.STANDBY_EN_MASK,
		regs.STANDBY_EN_MASK,
	)
	if err != nil {
		return err
	}
	dev.suspended = false
	return nil
}

// WritePattern uploads a waveform pattern image to the chip memory.
// The transfer starts at the pattern base address from MEM_CTL1 and
// is refused while the chip reports a warning or the memory lock bit
// forbids updates.
func (dev *Device) WritePattern(p []byte) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	if len(p) > SNPMemSize {
		return fmt.Errorf("da7280: invalid pattern size %d: %w", len(p), ErrInvalidArg)
	}

	v, err := dev.bus.ReadReg(regs.IRQ_STATUS1)
	if err != nil {
		return fmt.Errorf("da7280: could not read device status: %w", err)
	}
	if v&regs.STA_WARNING_MASK != 0 {
		return fmt.Errorf("da7280: warning pending, not updating patterns: %w", ErrBusy)
	}

	v, err = dev.bus.ReadReg(regs.MEM_CTL2)
	if err != nil {
		return fmt.Errorf("da7280: could not read memory lock: %w", err)
	}
	if ^v&regs.PATTERN_MEM_LOCK_MASK != 0 {
		return fmt.Errorf("da7280: could not update patterns: %w", ErrMemLocked)
	}

	base, err := dev.bus.ReadReg(regs.MEM_CTL1)
	if err != nil {
		return fmt.Errorf("da7280: could not read pattern base address: %w", err)
	}
	if base < regs.SNP_MEM_0 || base > regs.SNP_MEM_99 {
		return fmt.Errorf("da7280: invalid pattern base address 0x%02x: %w", base, ErrInvalidArg)
	}

	if max := int(regs.SNP_MEM_99) - int(base) + 1; len(p) > max {
		p = p[:max]
	}
	err = dev.bus.WriteBlock(base, p)
	if err != nil {
		return fmt.Errorf("da7280: could not write patterns: %w", err)
	}
	return nil
}

// ReadPattern fills p with the waveform pattern image read back from
// the chip memory, starting at the pattern base address.
func (dev *Device) ReadPattern(p []byte) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	if len(p) > SNPMemSize {
		return fmt.Errorf("da7280: invalid pattern size %d: %w", len(p), ErrInvalidArg)
	}

	base, err := dev.bus.ReadReg(regs.MEM_CTL1)
	if err != nil {
		return fmt.Errorf("da7280: could not read pattern base address: %w", err)
	}
	if base < regs.SNP_MEM_0 || base > regs.SNP_MEM_99 {
		return fmt.Errorf("da7280: invalid pattern base address 0x%02x: %w", base, ErrInvalidArg)
	}
	for i := range p {
		v, err := dev.bus.ReadReg(base + uint8(i))
		if err != nil {
			return fmt.Errorf("da7280: could not read patterns: %w", err)
		}
		p[i] = v
	}
	return nil
}

// Status returns the content of the IRQ_STATUS1 register.
func (dev *Device) Status() (uint8, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	v, err := dev.bus.ReadReg(regs.IRQ_STATUS1)
	if err != nil {
		return 0, fmt.Errorf("da7280: could not read device status: %w", err)
	}
	return v, nil
}

// DumpRegisters prints the whole register file to w as a 16x16
// hex table.
func (dev *Device) DumpRegisters(w io.Writer) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	fmt.Fprintf(w, "reg[--..] = 00 01 02 03 04 05 06 07 08 09 0A 0B 0C 0D 0E 0F\n")
	for j := 0; j < 16; j++ {
		fmt.Fprintf(w, "reg[%02x..] =", j*16)
		for i := 0; i < 16; i++ {
			v, err := dev.bus.ReadReg(uint8(j*16 + i))
			if err != nil {
				return fmt.Errorf("da7280: could not read register 0x%02x: %w", j*16+i, err)
			}
			fmt.Fprintf(w, " %02x", v)
		}
		fmt.Fprintf(w, "\n")
	}
	return nil
}
