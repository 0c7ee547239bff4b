// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// bme280 reads temperature, humidity and pressure from a BME280 and prints
// them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/GermanBionicSystems/envsense/bme280"
	"github.com/GermanBionicSystems/envsense/envcard"
	"github.com/GermanBionicSystems/envsense/gauge"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// printReading writes the three result lines, with 2 decimals.
func printReading(w io.Writer, r bme280.Reading) error {
	if _, err := fmt.Fprintf(w, "Temperature: %.2f C\n", r.Temperature); err != nil {
		return err
	}
	h := "unavailable"
	if r.HumidityValid {
		h = fmt.Sprintf("%.2f %%", r.Humidity)
	}
	if _, err := fmt.Fprintf(w, "Humidity: %s\n", h); err != nil {
		return err
	}
	p := "unavailable"
	if r.PressureValid {
		p = fmt.Sprintf("%.2f hPa", r.Pressure)
	}
	_, err := fmt.Fprintf(w, "Pressure: %s\n", p)
	return err
}

// config is the parsed command line.
type config struct {
	bus      string
	addr     uint
	count    int
	interval time.Duration
	opts     bme280.Opts
	gauge    bool
	png      string
	verbose  bool
}

func parseFlags(fs *flag.FlagSet, args []string) (*config, error) {
	c := &config{opts: bme280.DefaultOpts}
	fs.StringVar(&c.bus, "b", "", "I²C bus to use")
	fs.UintVar(&c.addr, "a", uint(bme280.DefaultAddress), "I²C address of the device, 0x76 or 0x77")
	fs.IntVar(&c.count, "n", 1, "number of readings; 0 reads until interrupted")
	fs.DurationVar(&c.interval, "i", time.Second, "interval between readings")
	fs.Var(&c.opts.Temperature, "ot", "temperature oversampling: off, 1x, 2x, 4x, 8x, 16x")
	fs.Var(&c.opts.Pressure, "op", "pressure oversampling")
	fs.Var(&c.opts.Humidity, "oh", "humidity oversampling")
	fs.Var(&c.opts.Mode, "mode", "power mode: sleep, forced, normal")
	fs.Var(&c.opts.Standby, "standby", "standby time in normal mode: 500us, 62.5ms, 125ms, 250ms, 500ms, 1s, 10ms, 20ms")
	fs.Var(&c.opts.Filter, "filter", "IIR filter coefficient: off, 2, 4, 8, 16")
	fs.BoolVar(&c.gauge, "g", false, "render the readings as colored bars")
	fs.StringVar(&c.png, "png", "", "also render the last reading to this PNG file")
	fs.BoolVar(&c.verbose, "v", false, "verbose mode")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, errors.New("unexpected argument, try -help")
	}
	if c.addr > 0x7f {
		return nil, fmt.Errorf("invalid I²C address %#x", c.addr)
	}
	if c.count < 0 {
		return nil, errors.New("-n must be positive")
	}
	if c.count == 0 && c.png != "" {
		return nil, errors.New("-png requires a bounded -n")
	}
	return c, nil
}

func mainImpl() error {
	c, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}
	if !c.verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)

	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		return err
	}
	b, err := i2creg.Open(c.bus)
	if err != nil {
		return fmt.Errorf("failed to open I²C: %w", err)
	}
	defer b.Close()

	d, err := bme280.NewI2C(b, uint16(c.addr), &c.opts)
	if err != nil {
		return err
	}
	defer d.Halt()
	log.Printf("%s: %+v", d, d.Calibration())

	var g *gauge.Dev
	if c.gauge {
		g = gauge.New(nil)
		defer g.Halt()
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	var last bme280.Reading
	for i := 0; c.count == 0 || i < c.count; i++ {
		if i != 0 {
			<-ticker.C
		}
		r, err := d.Read()
		if err != nil {
			return err
		}
		log.Printf("%s", r)
		if g != nil {
			err = g.Render(r)
		} else {
			err = printReading(os.Stdout, r)
		}
		if err != nil {
			return err
		}
		last = r
	}
	if c.png != "" {
		return envcard.SavePNG(c.png, last, 250, 122, &envcard.Opts{Padding: 4, Title: d.String()})
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "bme280: %s.\n", err)
		os.Exit(1)
	}
}
