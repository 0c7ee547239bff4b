// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import (
	"encoding/binary"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/mmr"
)

// Bus is a register addressed transport to a single device.
//
// Every call blocks until the device answered or the transfer failed. Errors
// are returned to the caller unchanged by this package's readers.
type Bus interface {
	// ReadReg reads the 8 bit register reg.
	ReadReg(reg uint8) (uint8, error)
	// WriteReg writes v to the 8 bit register reg.
	WriteReg(reg, v uint8) error
}

// BlockReader is optionally implemented by a Bus that can read consecutive
// registers in a single transfer. The device auto-increments the register
// address so the result is identical to len(b) calls to ReadReg.
type BlockReader interface {
	ReadRegs(reg uint8, b []byte) error
}

// NewI2CBus returns a Bus talking to the device at addr on b.
func NewI2CBus(b i2c.Bus, addr uint16) Bus {
	return &i2cBus{r: mmr.Dev8{Conn: &i2c.Dev{Bus: b, Addr: addr}, Order: binary.LittleEndian}}
}

type i2cBus struct {
	r mmr.Dev8
}

func (b *i2cBus) ReadReg(reg uint8) (uint8, error) {
	return b.r.ReadUint8(reg)
}

func (b *i2cBus) WriteReg(reg, v uint8) error {
	return b.r.WriteUint8(reg, v)
}

func (b *i2cBus) ReadRegs(reg uint8, p []byte) error {
	return b.r.Tx([]byte{reg}, p)
}

func (b *i2cBus) String() string {
	return b.r.String()
}

// readRegs fills p starting at register reg, in ascending register order.
//
// The first failing read aborts and its error is returned as is.
func readRegs(b Bus, reg uint8, p []byte) error {
	if br, ok := b.(BlockReader); ok {
		return br.ReadRegs(reg, p)
	}
	for i := range p {
		v, err := b.ReadReg(reg + uint8(i))
		if err != nil {
			return err
		}
		p[i] = v
	}
	return nil
}
