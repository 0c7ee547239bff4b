// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import (
	"math"
	"testing"

	"periph.io/x/conn/v3/physic"
)

const (
	// Datasheet section 8.1: 25.08°C and 100653.27Pa.
	wantTemperature = 25.08
	wantPressure    = 1006.5327
	// Computed from the humidity coefficients of datasheetCalib.
	wantHumidity = 39.2753
)

// closeTo reports whether got is within 0.1% of want.
func closeTo(got, want float64) bool {
	return math.Abs(got-want) <= math.Abs(want)*0.001
}

func TestCompensateDatasheet(t *testing.T) {
	raw := DecodeRawSample(datasheetADC)
	c := datasheetCoeffs

	temp := CompensateTemperature(c.T, raw.Temperature)
	if math.Abs(temp-wantTemperature) > 0.01 {
		t.Errorf("temperature %f != %f", temp, wantTemperature)
	}
	if tFine := temp * 5120; math.Abs(tFine-128422) > 1 {
		t.Errorf("t_fine %f != 128422", tFine)
	}
	h, ok := CompensateHumidity(c.H, raw.Humidity, temp)
	if !ok || !closeTo(h, wantHumidity) {
		t.Errorf("humidity %f (ok=%t) != %f", h, ok, wantHumidity)
	}
	p, ok := CompensatePressure(c.P, raw.Pressure, temp)
	if !ok || !closeTo(p, wantPressure) {
		t.Errorf("pressure %f (ok=%t) != %f", p, ok, wantPressure)
	}

	r := c.Compensate(raw)
	if r.Temperature != temp || r.Humidity != h || r.Pressure != p {
		t.Errorf("Compensate() = %s, expected %f %f %f", r, temp, p, h)
	}
	if !r.PressureValid || !r.HumidityValid {
		t.Errorf("Compensate() flagged a value invalid: %#v", r)
	}
}

func TestCompensateHumidityClamp(t *testing.T) {
	c := datasheetCoeffs.H
	if h, ok := CompensateHumidity(c, 0xffff, wantTemperature); !ok || h != 100 {
		t.Errorf("expected 100, got %f (ok=%t)", h, ok)
	}
	if h, ok := CompensateHumidity(c, 0, wantTemperature); !ok || h != 0 {
		t.Errorf("expected 0, got %f (ok=%t)", h, ok)
	}
}

func TestCompensateDegenerate(t *testing.T) {
	// 15°C makes the humidity temperature term exactly zero.
	h, ok := CompensateHumidity(datasheetCoeffs.H, 0x6a2b, 15)
	if ok || h != 0 || math.IsNaN(h) {
		t.Errorf("expected invalid humidity, got %f (ok=%t)", h, ok)
	}

	c := datasheetCoeffs.P
	c.P1 = 0
	p, ok := CompensatePressure(c, 415148, wantTemperature)
	if ok || p != 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		t.Errorf("expected invalid pressure, got %f (ok=%t)", p, ok)
	}
}

func TestCompensateSkipped(t *testing.T) {
	raw := DecodeRawSample(datasheetADC)
	raw.Pressure = pressureSkipped
	raw.Humidity = humiditySkipped
	r := datasheetCoeffs.Compensate(raw)
	if r.PressureValid || r.HumidityValid {
		t.Errorf("skipped channels reported valid: %#v", r)
	}
	if math.Abs(r.Temperature-wantTemperature) > 0.01 {
		t.Errorf("temperature %f != %f", r.Temperature, wantTemperature)
	}
	if s := r.String(); s != "25.08°C unavailable unavailable" {
		t.Errorf("unexpected String() %q", s)
	}
}

func TestReadingEnv(t *testing.T) {
	r := Reading{Temperature: 25, Pressure: 1013.25, Humidity: 50, PressureValid: true, HumidityValid: true}
	e := physic.Env{}
	r.Env(&e)
	if want := physic.ZeroCelsius + 25*physic.Celsius; e.Temperature != want {
		t.Errorf("temperature %s != %s", e.Temperature, want)
	}
	if want := 101325 * physic.Pascal; e.Pressure != want {
		t.Errorf("pressure %s != %s", e.Pressure, want)
	}
	if want := 50 * physic.PercentRH; e.Humidity != want {
		t.Errorf("humidity %s != %s", e.Humidity, want)
	}

	// Invalid values do not overwrite.
	e = physic.Env{Pressure: physic.Pascal, Humidity: physic.PercentRH}
	Reading{Temperature: 25}.Env(&e)
	if e.Pressure != physic.Pascal || e.Humidity != physic.PercentRH {
		t.Errorf("invalid values were written: %#v", e)
	}
}
