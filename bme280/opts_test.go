// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import (
	"testing"
	"time"
)

func TestOptsRegisters(t *testing.T) {
	o := DefaultOpts
	if v := o.ctrlHum(); v != 0x01 {
		t.Errorf("ctrl_hum %#x", v)
	}
	if v := o.ctrlMeas(o.Mode); v != 0x27 {
		t.Errorf("ctrl_meas %#x", v)
	}
	if v := o.config(); v != 0xa0 {
		t.Errorf("config %#x", v)
	}
	o.SPI3Wire = true
	if v := o.config(); v != 0xa1 {
		t.Errorf("config with spi3w %#x", v)
	}
}

func TestOptsMeasurementTime(t *testing.T) {
	o := DefaultOpts
	if d := o.measurementTime(); d != 9300*time.Microsecond {
		t.Errorf("measurementTime() %s", d)
	}
	o.Pressure = Off
	o.Humidity = O16x
	if d := o.measurementTime(); d != (1250+2300+2300*16+575)*time.Microsecond {
		t.Errorf("measurementTime() %s", d)
	}
}

func TestFlagValues(t *testing.T) {
	var o Oversampling
	if err := o.Set("16X"); err != nil || o != O16x {
		t.Errorf("Set(16X) = %s, %v", o, err)
	}
	if err := o.Set("3x"); err == nil {
		t.Error("expected error")
	}
	var f Filter
	if err := f.Set("8"); err != nil || f != F8 || f.String() != "8" {
		t.Errorf("Set(8) = %s, %v", f, err)
	}
	var m Mode
	if err := m.Set("forced"); err != nil || m != Forced {
		t.Errorf("Set(forced) = %s, %v", m, err)
	}
	var s Standby
	if err := s.Set("62.5ms"); err != nil || s != S62ms {
		t.Errorf("Set(62.5ms) = %s, %v", s, err)
	}
	if err := s.Set("3s"); err == nil {
		t.Error("expected error")
	}
	if S1s.String() != "1s" {
		t.Errorf("S1s.String() = %s", S1s)
	}
}
