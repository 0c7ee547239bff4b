// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gauge renders environmental readings as horizontal bars on a
// terminal using ANSI color codes.
//
// Each quantity gets one line: a label, a bar filled proportionally to where
// the value sits in its range, and the value itself. The bar fades from blue
// at the bottom of the range to red at the top.
package gauge

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/envsense/bme280"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Range is the span of values covered by a bar.
type Range struct {
	Min, Max float64
}

// Opts represents the options available for the gauge.
type Opts struct {
	// Width is the number of cells of each bar. Defaults to 40.
	Width   int
	Palette *ansi256.Palette

	// Ranges default to the BME280 operating range.
	Temperature Range
	Pressure    Range
	Humidity    Range

	_ struct{}
}

// DefaultOpts are the ranges the BME280 is specified for.
var DefaultOpts = Opts{
	Width:       40,
	Temperature: Range{Min: -40, Max: 85},
	Pressure:    Range{Min: 300, Max: 1100},
	Humidity:    Range{Min: 0, Max: 100},
}

// Dev writes gauges to a terminal.
type Dev struct {
	w       io.Writer
	opts    Opts
	palette ansi256.Palette

	buf bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	return NewWriter(colorable.NewColorableStdout(), opts)
}

// NewWriter returns a Dev that writes to w. The Opts can be nil.
func NewWriter(w io.Writer, opts *Opts) *Dev {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.Width <= 0 {
		o.Width = DefaultOpts.Width
	}
	if o.Temperature == (Range{}) {
		o.Temperature = DefaultOpts.Temperature
	}
	if o.Pressure == (Range{}) {
		o.Pressure = DefaultOpts.Pressure
	}
	if o.Humidity == (Range{}) {
		o.Humidity = DefaultOpts.Humidity
	}
	p := o.Palette
	if p == nil {
		p = ansi256.Default
	}
	return &Dev{w: w, opts: o, palette: *p}
}

func (d *Dev) String() string {
	return "Gauge"
}

// Halt resets the terminal colors.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m"))
	return err
}

// Render writes one bar per quantity of r. Invalid values are shown as
// unavailable with an empty bar.
func (d *Dev) Render(r bme280.Reading) error {
	d.buf.Reset()
	d.line("T", r.Temperature, true, d.opts.Temperature, "%7.2f°C")
	d.line("H", r.Humidity, r.HumidityValid, d.opts.Humidity, "%7.2f%%rH")
	d.line("P", r.Pressure, r.PressureValid, d.opts.Pressure, "%7.2fhPa")
	_, err := d.buf.WriteTo(d.w)
	return err
}

func (d *Dev) line(label string, v float64, valid bool, rng Range, format string) {
	_, _ = d.buf.WriteString(label)
	_, _ = d.buf.WriteString(" \033[0m")
	n := 0
	if valid {
		n = Cells(v, rng, d.opts.Width)
	}
	for i := 0; i < d.opts.Width; i++ {
		c := empty
		if i < n {
			c = Shade(float64(i) / float64(d.opts.Width))
		}
		_, _ = io.WriteString(&d.buf, d.palette.Block(c))
	}
	_, _ = d.buf.WriteString("\033[0m ")
	if valid {
		fmt.Fprintf(&d.buf, format, v)
	} else {
		_, _ = d.buf.WriteString("unavailable")
	}
	_ = d.buf.WriteByte('\n')
}

var empty = color.NRGBA{0x30, 0x30, 0x30, 255}

// Cells returns the number of cells out of width filled by v.
func Cells(v float64, rng Range, width int) int {
	if rng.Max <= rng.Min || v <= rng.Min {
		return 0
	}
	if v >= rng.Max {
		return width
	}
	return int((v - rng.Min) / (rng.Max - rng.Min) * float64(width))
}

// Shade returns the color at position f in [0, 1] of the blue to red
// gradient.
func Shade(f float64) color.NRGBA {
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return color.NRGBA{R: byte(255 * f), G: 0x40, B: byte(255 * (1 - f)), A: 255}
}

var _ fmt.Stringer = &Dev{}
