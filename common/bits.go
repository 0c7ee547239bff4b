// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions used across multiple packages. For
// example, sign extension of register fields narrower than their storage.
package common

// SignExtend interprets the low bits of v as a two's complement number and
// returns it widened to int32. Bits above the field width are ignored.
//
// bits must be in the range 1..32.
func SignExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}

// Uint16LE assembles a 16 bit little endian word from two bytes.
func Uint16LE(lo, hi byte) uint32 {
	return uint32(hi)<<8 | uint32(lo)
}
