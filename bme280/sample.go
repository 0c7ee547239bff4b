// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

// RawSample is one uncompensated ADC reading.
//
// Temperature and Pressure have 20 bits of resolution, Humidity 16 bits.
type RawSample struct {
	Temperature uint32
	Pressure    uint32
	Humidity    uint32
}

const (
	// Value reported by a channel whose oversampling is Off. It is also the
	// reset value, before the first conversion.
	temperatureSkipped uint32 = 0x80000
	pressureSkipped    uint32 = 0x80000
	humiditySkipped    uint32 = 0x8000
)

// ReadRawSample reads the ADC output block.
//
// No RawSample is returned when a read fails; the bus error is returned
// unchanged.
func ReadRawSample(b Bus) (RawSample, error) {
	var buf [adcLen]byte
	if err := readRegs(b, regADC, buf[:]); err != nil {
		return RawSample{}, err
	}
	return DecodeRawSample(buf), nil
}

// DecodeRawSample assembles the three ADC values from registers 0xF7~0xFE.
//
// Pressure: 0xF7~0xF9
// Temperature: 0xFA~0xFC
// Humidity: 0xFD~0xFE
func DecodeRawSample(buf [adcLen]byte) RawSample {
	return RawSample{
		Pressure:    uint32(buf[0])<<12 | uint32(buf[1])<<4 | uint32(buf[2])>>4,
		Temperature: uint32(buf[3])<<12 | uint32(buf[4])<<4 | uint32(buf[5])>>4,
		Humidity:    uint32(buf[6])<<8 | uint32(buf[7]),
	}
}
