// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package envcard

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/GermanBionicSystems/envsense/bme280"
	"github.com/google/go-cmp/cmp"
)

var reading = bme280.Reading{Temperature: 25.08, Pressure: 1006.53, Humidity: 39.28, PressureValid: true, HumidityValid: true}

// drawer records the last image drawn.
type drawer struct {
	bounds image.Rectangle
	img    image.Image
}

func (d *drawer) String() string          { return "drawer" }
func (d *drawer) Halt() error             { return nil }
func (d *drawer) ColorModel() color.Model { return color.NRGBAModel }
func (d *drawer) Bounds() image.Rectangle { return d.bounds }
func (d *drawer) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	d.img = src
	return nil
}

func darkPixels(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x8000 {
				n++
			}
		}
	}
	return n
}

func TestLines(t *testing.T) {
	want := []string{"Temperature: 25.08 C", "Humidity: 39.28 %", "Pressure: 1006.53 hPa"}
	if diff := cmp.Diff(want, Lines(reading)); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
	want = []string{"Temperature: 25.08 C", "Humidity: unavailable", "Pressure: unavailable"}
	if diff := cmp.Diff(want, Lines(bme280.Reading{Temperature: 25.08})); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
}

func TestRender(t *testing.T) {
	img, err := Render(reading, 250, 122, &Opts{Padding: 4, Title: "Office"})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 250 || b.Dy() != 122 {
		t.Errorf("unexpected bounds %v", b)
	}
	if darkPixels(img) == 0 {
		t.Error("nothing was drawn")
	}
	if _, err := Render(reading, 0, 10, nil); err == nil {
		t.Error("expected an error for an empty card")
	}
}

func TestDraw(t *testing.T) {
	d := &drawer{bounds: image.Rect(0, 0, 128, 64)}
	if err := Draw(d, reading, nil); err != nil {
		t.Fatal(err)
	}
	if d.img == nil || d.img.Bounds().Dx() != 128 || d.img.Bounds().Dy() != 64 {
		t.Fatalf("unexpected image drawn: %v", d.img)
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.png")
	if err := SavePNG(path, reading, 200, 100, nil); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("unexpected bounds %v", b)
	}
}
