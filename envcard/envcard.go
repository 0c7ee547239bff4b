// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package envcard draws an environmental reading as a black on white card,
// sized for small e-paper and OLED panels driven through display.Drawer.
package envcard

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/GermanBionicSystems/envsense/bme280"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/display"
)

// Opts controls the card layout.
type Opts struct {
	// FontSize in points. 0 selects a size fitting three lines in the card.
	FontSize float64
	// Padding around the border, in pixels.
	Padding float64
	// Title is drawn above the values when not empty.
	Title string
}

var (
	fontOnce sync.Once
	fontTTF  *truetype.Font
	fontErr  error
)

func face(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		fontTTF, fontErr = truetype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}
	return truetype.NewFace(fontTTF, &truetype.Options{Size: size}), nil
}

// Lines returns the text lines of the card.
func Lines(r bme280.Reading) []string {
	h := "Humidity: unavailable"
	if r.HumidityValid {
		h = fmt.Sprintf("Humidity: %.2f %%", r.Humidity)
	}
	p := "Pressure: unavailable"
	if r.PressureValid {
		p = fmt.Sprintf("Pressure: %.2f hPa", r.Pressure)
	}
	return []string{fmt.Sprintf("Temperature: %.2f C", r.Temperature), h, p}
}

// Render returns an image of size w×h showing r. The Opts can be nil.
func Render(r bme280.Reading, w, h int, opts *Opts) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New("envcard: invalid size")
	}
	o := Opts{Padding: 4}
	if opts != nil {
		o = *opts
	}
	lines := Lines(r)
	if o.Title != "" {
		lines = append([]string{o.Title}, lines...)
	}
	size := o.FontSize
	if size <= 0 {
		size = (float64(h) - 4*o.Padding) / float64(len(lines)) * 0.7
	}
	f, err := face(size)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(o.Padding, o.Padding, float64(w)-2*o.Padding, float64(h)-2*o.Padding, 6)
	dc.Stroke()
	dc.SetFontFace(f)
	step := (float64(h) - 4*o.Padding) / float64(len(lines))
	for i, l := range lines {
		y := 2*o.Padding + step*(float64(i)+0.5)
		dc.DrawStringAnchored(l, 2*o.Padding, y, 0, 0.5)
	}
	return dc.Image(), nil
}

// Draw renders r to the whole surface of d.
func Draw(d display.Drawer, r bme280.Reading, opts *Opts) error {
	b := d.Bounds()
	img, err := Render(r, b.Dx(), b.Dy(), opts)
	if err != nil {
		return err
	}
	return d.Draw(b, img, image.Point{})
}

// SavePNG renders r to a PNG file.
func SavePNG(path string, r bme280.Reading, w, h int, opts *Opts) error {
	img, err := Render(r, w, h, opts)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}
