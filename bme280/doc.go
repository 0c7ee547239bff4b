// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bme280 controls a Bosch BME280 temperature, pressure and humidity
// sensor over I²C, or over any register addressed transport implementing Bus.
//
// The factory trim coefficients are read once when the device is opened and
// kept for the lifetime of the Dev. Each measurement reads the 8 byte ADC
// output block and runs the floating point compensation formulas published in
// the datasheet, temperature first since both pressure and humidity depend on
// it.
//
// The compensation functions are exported so that raw samples captured
// elsewhere can be converted without a live device.
//
// # Invalid readings
//
// The vendor algorithm returns 0 for pressure when its internal divisor is
// zero, and 0 for humidity when the temperature term degenerates. Those
// conditions are reported with Reading.PressureValid and
// Reading.HumidityValid instead of a misleading zero. Sense returns
// ErrPressureUnavailable or ErrHumidityUnavailable in that case.
//
// # Datasheet
//
// The URLs tend to rot, visit https://www.bosch-sensortec.com if they become
// invalid.
//
// https://www.bosch-sensortec.com/media/boschsensortec/downloads/datasheets/bst-bme280-ds002.pdf
//
// Register descriptions in Japanese, used by many hobbyist ports:
//
// https://trac.switch-science.com/wiki/BME280
package bme280
