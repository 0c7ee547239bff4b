// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package envsense is a container for the BME280 environmental sensor driver
// and the presentation packages built on it.
//
// bme280 holds the driver and the calibration compensation, gauge and
// envcard render readings to a terminal or an image, and cmd/bme280 is the
// command line program printing a reading.
package envsense
