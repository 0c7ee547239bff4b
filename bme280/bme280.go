// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

const (
	// DefaultAddress is the I²C address when SDO is tied to GND.
	DefaultAddress uint16 = 0x76
	// AlternateAddress is the I²C address when SDO is tied to VDDIO.
	AlternateAddress uint16 = 0x77
)

// Register map.
const (
	regCalib00  uint8 = 0x88 // dig_T1 ~ dig_P9
	regCalib24  uint8 = 0xA1 // dig_H1
	regCalib26  uint8 = 0xE1 // dig_H2 ~ dig_H6
	regCtrlHum  uint8 = 0xF2
	regCtrlMeas uint8 = 0xF4
	regConfig   uint8 = 0xF5
	regADC      uint8 = 0xF7 // press_msb ~ hum_lsb

	calib00Len = 24
	calib26Len = 7
	adcLen     = 8
)

var (
	// ErrTemperatureUnavailable is returned by Read when the temperature
	// registers still hold their reset value, meaning no conversion completed.
	ErrTemperatureUnavailable = errors.New("bme280: temperature unavailable")
	// ErrPressureUnavailable is returned by Sense when the pressure could not
	// be computed from the sample.
	ErrPressureUnavailable = errors.New("bme280: pressure unavailable")
	// ErrHumidityUnavailable is returned by Sense when the humidity could not
	// be computed from the sample.
	ErrHumidityUnavailable = errors.New("bme280: humidity unavailable")
)

// Dev is a handle to an initialized BME280.
type Dev struct {
	b    Bus
	name string
	opts Opts
	cal  Calibration

	mu sync.Mutex
	// ready is when the first Normal mode conversion completes.
	ready time.Time
}

// NewI2C returns an object that communicates over I²C to a BME280
// environmental sensor at addr, usually DefaultAddress. The Opts can be nil.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	d, err := New(NewI2CBus(b, addr), opts)
	if err != nil {
		return nil, err
	}
	d.name = fmt.Sprintf("bme280{%s}", b)
	return d, nil
}

// New configures the device reachable through b and reads its calibration.
// The Opts can be nil.
func New(b Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	d := &Dev{b: b, name: "bme280", opts: *opts}
	if err := d.configure(); err != nil {
		return nil, fmt.Errorf("bme280: init: %w", err)
	}
	d.ready = time.Now().Add(d.opts.measurementTime())
	cal, err := ReadCalibration(b)
	if err != nil {
		return nil, fmt.Errorf("bme280: reading calibration: %w", err)
	}
	d.cal = cal
	return d, nil
}

// configure writes the control registers.
//
// ctrl_hum only takes effect after a write to ctrl_meas and config may be
// ignored once in Normal mode, so ctrl_meas goes last.
func (d *Dev) configure() error {
	if err := d.b.WriteReg(regCtrlHum, d.opts.ctrlHum()); err != nil {
		return err
	}
	if err := d.b.WriteReg(regConfig, d.opts.config()); err != nil {
		return err
	}
	return d.b.WriteReg(regCtrlMeas, d.opts.ctrlMeas(d.opts.Mode))
}

// Calibration returns the trim coefficients read when the device was opened.
func (d *Dev) Calibration() Calibration {
	return d.cal
}

// Read returns a compensated measurement.
//
// In Forced and Sleep mode a new conversion is triggered first and Read blocks
// for the maximum conversion time. In Normal mode the first Read waits for the
// first conversion to complete.
//
// ErrTemperatureUnavailable is returned when the device has not produced a
// temperature yet.
func (d *Dev) Read() (Reading, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.opts.Mode == Normal {
		if w := time.Until(d.ready); w > 0 {
			time.Sleep(w)
		}
	} else {
		if err := d.b.WriteReg(regCtrlMeas, d.opts.ctrlMeas(Forced)); err != nil {
			return Reading{}, fmt.Errorf("bme280: trigger: %w", err)
		}
		time.Sleep(d.opts.measurementTime())
	}
	raw, err := ReadRawSample(d.b)
	if err != nil {
		return Reading{}, fmt.Errorf("bme280: reading sample: %w", err)
	}
	if raw.Temperature == temperatureSkipped {
		return Reading{}, ErrTemperatureUnavailable
	}
	return d.cal.Compensate(raw), nil
}

// Sense implements the Sense method of physic.SenseEnv.
//
// Values that could not be computed are left untouched and reported with
// ErrPressureUnavailable and/or ErrHumidityUnavailable.
func (d *Dev) Sense(e *physic.Env) error {
	r, err := d.Read()
	if err != nil {
		return err
	}
	r.Env(e)
	var errs []error
	if !r.PressureValid {
		errs = append(errs, ErrPressureUnavailable)
	}
	if !r.HumidityValid {
		errs = append(errs, ErrHumidityUnavailable)
	}
	return errors.Join(errs...)
}

// Precision implements the Precision method of physic.SenseEnv.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = 10 * physic.MilliKelvin
	e.Pressure = 180 * physic.MilliPascal
	e.Humidity = 80 * physic.MicroRH
}

// Halt puts the device to sleep. Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.b.WriteReg(regCtrlMeas, d.opts.ctrlMeas(Sleep))
}

func (d *Dev) String() string {
	return d.name
}

var _ conn.Resource = &Dev{}
