// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Oversampling is the number of internal samples averaged for one
// measurement. More samples reduce noise at the cost of conversion time.
type Oversampling uint8

// Possible oversampling values. The register encodes them as 0 to 5.
const (
	Off  Oversampling = 0
	O1x  Oversampling = 1
	O2x  Oversampling = 2
	O4x  Oversampling = 3
	O8x  Oversampling = 4
	O16x Oversampling = 5
)

var oversamplingNames = []string{"off", "1x", "2x", "4x", "8x", "16x"}

func (o Oversampling) String() string {
	if int(o) < len(oversamplingNames) {
		return oversamplingNames[o]
	}
	return "Oversampling(" + strconv.Itoa(int(o)) + ")"
}

// Set implements flag.Value.
func (o *Oversampling) Set(s string) error {
	for i, n := range oversamplingNames {
		if strings.EqualFold(s, n) {
			*o = Oversampling(i)
			return nil
		}
	}
	return errors.New("bme280: invalid oversampling " + strconv.Quote(s))
}

// samples returns the number of internal samples, 0 when skipped.
func (o Oversampling) samples() int {
	if o == Off {
		return 0
	}
	return 1 << (o - 1)
}

// Filter is the IIR filter coefficient applied to temperature and pressure.
type Filter uint8

// Possible filter values.
const (
	NoFilter Filter = 0
	F2       Filter = 1
	F4       Filter = 2
	F8       Filter = 3
	F16      Filter = 4
)

var filterNames = []string{"off", "2", "4", "8", "16"}

func (f Filter) String() string {
	if int(f) < len(filterNames) {
		return filterNames[f]
	}
	return "Filter(" + strconv.Itoa(int(f)) + ")"
}

// Set implements flag.Value.
func (f *Filter) Set(s string) error {
	for i, n := range filterNames {
		if strings.EqualFold(s, n) {
			*f = Filter(i)
			return nil
		}
	}
	return errors.New("bme280: invalid filter " + strconv.Quote(s))
}

// Mode is the power mode written to ctrl_meas.
type Mode uint8

// Possible power modes.
const (
	// Sleep performs no measurement between reads. Dev.Read triggers a single
	// measurement on each call, like Forced.
	Sleep Mode = 0
	// Forced performs a single measurement then returns to Sleep. Dev.Read
	// triggers a new one on each call.
	Forced Mode = 1
	// Normal cycles between a measurement and a standby period.
	Normal Mode = 3
)

func (m Mode) String() string {
	switch m {
	case Sleep:
		return "sleep"
	case Forced:
		return "forced"
	case Normal:
		return "normal"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Set implements flag.Value.
func (m *Mode) Set(s string) error {
	for _, v := range []Mode{Sleep, Forced, Normal} {
		if strings.EqualFold(s, v.String()) {
			*m = v
			return nil
		}
	}
	return errors.New("bme280: invalid mode " + strconv.Quote(s))
}

// Standby is the inactive duration between two measurements in Normal mode.
type Standby uint8

// Possible standby durations.
const (
	S500us Standby = 0
	S62ms  Standby = 1
	S125ms Standby = 2
	S250ms Standby = 3
	S500ms Standby = 4
	S1s    Standby = 5
	S10ms  Standby = 6
	S20ms  Standby = 7
)

var standbyDurations = []time.Duration{
	500 * time.Microsecond,
	62500 * time.Microsecond,
	125 * time.Millisecond,
	250 * time.Millisecond,
	500 * time.Millisecond,
	time.Second,
	10 * time.Millisecond,
	20 * time.Millisecond,
}

// Duration returns the standby time.
func (s Standby) Duration() time.Duration {
	if int(s) < len(standbyDurations) {
		return standbyDurations[s]
	}
	return 0
}

func (s Standby) String() string {
	return s.Duration().String()
}

// Set implements flag.Value. It accepts a duration matching one of the
// supported standby times, e.g. "62.5ms" or "1s".
func (s *Standby) Set(v string) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return errors.New("bme280: invalid standby " + strconv.Quote(v))
	}
	for i, sd := range standbyDurations {
		if sd == d {
			*s = Standby(i)
			return nil
		}
	}
	return errors.New("bme280: unsupported standby " + strconv.Quote(v))
}

// Opts holds the configuration options for the device.
//
// Any combination allowed by the datasheet is accepted except Temperature
// being Off, since pressure and humidity compensation depend on it.
type Opts struct {
	Temperature Oversampling
	Pressure    Oversampling
	Humidity    Oversampling
	Mode        Mode
	Standby     Standby
	Filter      Filter
	// SPI3Wire enables the 3-wire SPI interface. It must be false on I²C.
	SPI3Wire bool
}

// DefaultOpts holds the default configuration options for the device: ×1
// oversampling on every channel, Normal mode with a 1s standby and no filter.
var DefaultOpts = Opts{
	Temperature: O1x,
	Pressure:    O1x,
	Humidity:    O1x,
	Mode:        Normal,
	Standby:     S1s,
	Filter:      NoFilter,
}

var errTemperatureOff = errors.New("bme280: temperature oversampling cannot be Off")

func (o *Opts) validate() error {
	if o.Temperature == Off {
		return errTemperatureOff
	}
	if o.Temperature > O16x || o.Pressure > O16x || o.Humidity > O16x {
		return errors.New("bme280: invalid oversampling")
	}
	if o.Mode != Sleep && o.Mode != Forced && o.Mode != Normal {
		return errors.New("bme280: invalid mode")
	}
	if o.Standby > S20ms {
		return errors.New("bme280: invalid standby")
	}
	if o.Filter > F16 {
		return errors.New("bme280: invalid filter")
	}
	return nil
}

// ctrlHum is the value of register 0xF2.
func (o *Opts) ctrlHum() uint8 {
	return uint8(o.Humidity)
}

// ctrlMeas is the value of register 0xF4 for mode m.
func (o *Opts) ctrlMeas(m Mode) uint8 {
	return uint8(o.Temperature)<<5 | uint8(o.Pressure)<<2 | uint8(m)
}

// config is the value of register 0xF5.
func (o *Opts) config() uint8 {
	v := uint8(o.Standby)<<5 | uint8(o.Filter)<<2
	if o.SPI3Wire {
		v |= 1
	}
	return v
}

// measurementTime is the maximum conversion time from datasheet appendix B.
func (o *Opts) measurementTime() time.Duration {
	us := 1250 + 2300*o.Temperature.samples()
	if n := o.Pressure.samples(); n != 0 {
		us += 2300*n + 575
	}
	if n := o.Humidity.samples(); n != 0 {
		us += 2300*n + 575
	}
	return time.Duration(us) * time.Microsecond
}
