// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import (
	"github.com/GermanBionicSystems/envsense/common"
)

// Calibration holds the factory trim coefficients of one sensor.
//
// They are burned into the device's non volatile memory and never change at
// runtime, so a Calibration is read once and then only read from.
type Calibration struct {
	T TempCoeffs
	P PressureCoeffs
	H HumidityCoeffs
}

// TempCoeffs are dig_T1 to dig_T3. T1 is unsigned 16 bits, the others signed.
type TempCoeffs struct {
	T1, T2, T3 int32
}

// PressureCoeffs are dig_P1 to dig_P9. P1 is unsigned 16 bits, the others
// signed.
type PressureCoeffs struct {
	P1, P2, P3, P4, P5, P6, P7, P8, P9 int32
}

// HumidityCoeffs are dig_H1 to dig_H6.
//
// H1 and H3 are unsigned 8 bits, H2 is signed 16 bits, H4 and H5 are signed
// 12 bits packed in 3 bytes and H6 is signed 8 bits. Decoders that only test
// bit 15 of the assembled value read H4, H5 and H6 as positive even when bit 7
// of 0xE4, 0xE6 or 0xE7 is set; this one does not.
type HumidityCoeffs struct {
	H1, H2, H3, H4, H5, H6 int32
}

// calibrationSize is the flat buffer holding the three calibration blocks.
//
// [0, 24) is regCalib00, [24] is regCalib24 and [25, 32) is regCalib26.
const calibrationSize = calib00Len + 1 + calib26Len

// ReadCalibration reads the three calibration blocks and decodes them.
//
// No Calibration is returned when a read fails; the bus error is returned
// unchanged.
func ReadCalibration(b Bus) (Calibration, error) {
	var buf [calibrationSize]byte
	if err := readRegs(b, regCalib00, buf[:calib00Len]); err != nil {
		return Calibration{}, err
	}
	if err := readRegs(b, regCalib24, buf[calib00Len:calib00Len+1]); err != nil {
		return Calibration{}, err
	}
	if err := readRegs(b, regCalib26, buf[calib00Len+1:]); err != nil {
		return Calibration{}, err
	}
	return DecodeCalibration(buf), nil
}

// DecodeCalibration decodes a calibration dump laid out as described for
// calibrationSize.
func DecodeCalibration(buf [calibrationSize]byte) Calibration {
	word := func(i int) uint32 {
		return common.Uint16LE(buf[i], buf[i+1])
	}
	s16 := func(i int) int32 {
		return common.SignExtend(word(i), 16)
	}
	var c Calibration
	c.T.T1 = int32(word(0))
	c.T.T2 = s16(2)
	c.T.T3 = s16(4)

	c.P.P1 = int32(word(6))
	c.P.P2 = s16(8)
	c.P.P3 = s16(10)
	c.P.P4 = s16(12)
	c.P.P5 = s16(14)
	c.P.P6 = s16(16)
	c.P.P7 = s16(18)
	c.P.P8 = s16(20)
	c.P.P9 = s16(22)

	c.H.H1 = int32(buf[24])
	c.H.H2 = s16(25)
	c.H.H3 = int32(buf[27])
	c.H.H4 = common.SignExtend(uint32(buf[28])<<4|uint32(buf[29]&0x0F), 12)
	c.H.H5 = common.SignExtend(uint32(buf[30])<<4|uint32(buf[29]>>4&0x0F), 12)
	c.H.H6 = common.SignExtend(uint32(buf[31]), 8)
	return c
}
