// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
)

// Reading is a compensated measurement.
type Reading struct {
	// Temperature in °C.
	Temperature float64
	// Pressure in hPa. Only meaningful when PressureValid is true.
	Pressure float64
	// Humidity in %RH, within [0, 100]. Only meaningful when HumidityValid is
	// true.
	Humidity float64

	PressureValid bool
	HumidityValid bool
}

// Env stores the valid values of r into e. Invalid values are not modified.
func (r Reading) Env(e *physic.Env) {
	e.Temperature = physic.ZeroCelsius + physic.Temperature(r.Temperature*float64(physic.Celsius))
	if r.PressureValid {
		e.Pressure = physic.Pressure(r.Pressure * 100 * float64(physic.Pascal))
	}
	if r.HumidityValid {
		e.Humidity = physic.RelativeHumidity(r.Humidity * float64(physic.PercentRH))
	}
}

func (r Reading) String() string {
	p := "unavailable"
	if r.PressureValid {
		p = fmt.Sprintf("%.2fhPa", r.Pressure)
	}
	h := "unavailable"
	if r.HumidityValid {
		h = fmt.Sprintf("%.2f%%rH", r.Humidity)
	}
	return fmt.Sprintf("%.2f°C %s %s", r.Temperature, p, h)
}

// Compensate converts s into physical units.
//
// Temperature is computed first; humidity and pressure take it as input. A
// channel that was skipped by the device, because its oversampling is Off, is
// reported as invalid.
func (c *Calibration) Compensate(s RawSample) Reading {
	r := Reading{Temperature: CompensateTemperature(c.T, s.Temperature)}
	if s.Humidity != humiditySkipped {
		r.Humidity, r.HumidityValid = CompensateHumidity(c.H, s.Humidity, r.Temperature)
	}
	if s.Pressure != pressureSkipped {
		r.Pressure, r.PressureValid = CompensatePressure(c.P, s.Pressure, r.Temperature)
	}
	return r
}

// CompensateTemperature returns the temperature in °C.
//
// raw has 20 bits of resolution.
func CompensateTemperature(c TempCoeffs, raw uint32) float64 {
	adc := float64(raw)
	t1 := float64(c.T1)
	v1 := (adc/16384.0 - t1/1024.0) * float64(c.T2)
	v2 := (adc/131072.0 - t1/8192.0) * (adc/131072.0 - t1/8192.0) * float64(c.T3)
	return (v1 + v2) / 5120.0
}

// CompensateHumidity returns the relative humidity in %RH, clamped to
// [0, 100].
//
// ok is false when the temperature term is exactly zero, where the vendor
// algorithm defines no value.
//
// raw has 16 bits of resolution.
func CompensateHumidity(c HumidityCoeffs, raw uint32, temperature float64) (h float64, ok bool) {
	h = temperature*5120.0 - 76800.0
	if h == 0 {
		return 0, false
	}
	h1 := float64(c.H1)
	h2 := float64(c.H2)
	h3 := float64(c.H3)
	h4 := float64(c.H4)
	h5 := float64(c.H5)
	h6 := float64(c.H6)
	h = (float64(raw) - (h4*64.0 + h5/16384.0*h)) *
		(h2 / 65536.0 * (1.0 + h6/67108864.0*h*(1.0+h3/67108864.0*h)))
	h *= 1.0 - h1*h/524288.0
	switch {
	case h > 100:
		h = 100
	case h < 0:
		h = 0
	}
	return h, true
}

// CompensatePressure returns the pressure in hPa.
//
// ok is false when the divisor computed from the calibration is exactly zero,
// which the datasheet uses to flag an invalid pressure.
//
// raw has 20 bits of resolution.
func CompensatePressure(c PressureCoeffs, raw uint32, temperature float64) (p float64, ok bool) {
	p1 := float64(c.P1)
	p2 := float64(c.P2)
	p3 := float64(c.P3)
	p4 := float64(c.P4)
	p5 := float64(c.P5)
	p6 := float64(c.P6)
	p7 := float64(c.P7)
	p8 := float64(c.P8)
	p9 := float64(c.P9)

	v1 := temperature*5120.0/2.0 - 64000.0
	v2 := (v1 / 4.0) * (v1 / 4.0) / 2048.0 * p6
	v2 += v1 * p5 * 2.0
	v2 = v2/4.0 + p4*65536.0
	v1 = (p3*((v1/4.0)*(v1/4.0)/8192.0)/8.0 + p2*v1/2.0) / 262144.0
	v1 = (32768.0 + v1) * p1 / 32768.0
	if v1 == 0 {
		return 0, false
	}
	p = ((1048576.0 - float64(raw)) - v2/4096.0) * 3125.0
	p = p * 2.0 / v1
	v1 = p9 * ((p / 8.0) * (p / 8.0) / 8192.0) / 4096.0
	v2 = (p / 4.0) * p8 / 8192.0
	return (p + (v1+v2+p7)/16.0) / 100.0, true
}
