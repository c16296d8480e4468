package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/paged"
	"github.com/BeatGlow/paged/conn"
	"github.com/BeatGlow/paged/draw"
	"github.com/BeatGlow/paged/internal/config"
)

func main() {
	configFlag := flag.String("config", "", "Board configuration file (JSON)")
	controllerFlag := flag.String("controller", "", "Display controller (ssd1309, ssd1306, ssd1305, sh1106)")
	widthFlag := flag.Int("width", 0, "Display width")
	heightFlag := flag.Int("height", 0, "Display height")
	busFlag := flag.String("bus", "", "Bus type (i2c, spi)")
	i2cBusFlag := flag.String("i2c-bus", "", "I²C bus name (default: use first available)")
	i2cAddrFlag := flag.Uint("i2c-addr", uint(conn.DefaultI2CConfig.Addr), "I²C device address")
	i2cMaxFlag := flag.Int("i2c-max", conn.DefaultI2CConfig.MaxPayload, "I²C maximum transaction size")
	spiPortFlag := flag.String("spi-port", "", "SPI port name (default: use first available)")
	dcFlag := flag.String("dc", "", "Data/Command line (DC)")
	resetFlag := flag.String("reset", "", "Reset line")
	csFlag := flag.String("cs", "", "Chip select line")
	powerFlag := flag.String("power", "", "Panel power line")
	gpiochipFlag := flag.String("gpiochip", "", "Request lines by offset on this GPIO character device (e.g. gpiochip0)")
	cacheFlag := flag.Bool("cache", true, "Only transfer changed columns")
	strictFlag := flag.Bool("strict", false, "Fail on bus errors")
	textFlag := flag.String("text", "paged", "Text to display")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configFlag != "" {
		var err error
		if cfg, err = config.LoadConfig(*configFlag); err != nil {
			fatal(err)
		}
	}

	var lineErr error
	line := func(value string) config.LineConfig {
		if *gpiochipFlag == "" {
			return config.LineConfig{Name: value}
		}
		offset, err := strconv.Atoi(value)
		if err != nil {
			lineErr = fmt.Errorf("invalid line offset %q", value)
		}
		return config.LineConfig{Chip: *gpiochipFlag, Offset: offset}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "controller":
			cfg.Controller = *controllerFlag
		case "width":
			cfg.Width = *widthFlag
		case "height":
			cfg.Height = *heightFlag
		case "bus":
			cfg.Bus = *busFlag
		case "i2c-bus":
			cfg.I2C.Bus = *i2cBusFlag
		case "i2c-addr":
			cfg.I2C.Addr = uint16(*i2cAddrFlag)
		case "i2c-max":
			cfg.I2C.MaxPayload = *i2cMaxFlag
		case "spi-port":
			cfg.SPI.Port = *spiPortFlag
		case "dc":
			cfg.SPI.DC = line(*dcFlag)
		case "reset":
			cfg.Lines.Reset = line(*resetFlag)
		case "cs":
			cfg.Lines.ChipSelect = line(*csFlag)
		case "power":
			cfg.Lines.Power = line(*powerFlag)
		case "cache":
			cfg.Cache = *cacheFlag
		case "strict":
			cfg.I2C.Strict, cfg.SPI.Strict = *strictFlag, *strictFlag
		}
	})
	if lineErr != nil {
		fatal(lineErr)
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	if _, err := host.Init(); err != nil {
		fatal(err)
	}

	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i].Close()
		}
	}()
	open := func(lc config.LineConfig, initial gpio.Level) conn.Line {
		l, closer, err := openLine(lc, initial)
		if err != nil {
			fatal(err)
		}
		if closer != nil {
			closers = append(closers, closer)
		}
		return l
	}

	var t conn.Transport
	switch cfg.Bus {
	case "i2c":
		c, err := conn.OpenI2C(cfg.I2C.Transport())
		if err != nil {
			fatal(err)
		}
		t = c
	case "spi":
		dc := open(cfg.SPI.DC, gpio.Low)
		c, err := conn.OpenSPI(dc, cfg.SPI.Transport())
		if err != nil {
			fatal(err)
		}
		t = c
	}
	fmt.Printf("using connection: %s\n", t)

	chip, err := paged.ByName(cfg.Controller, cfg.Width, cfg.Height)
	if err != nil {
		fatal(err)
	}
	var driver paged.Driver = chip
	if cfg.Cache {
		driver = paged.NewFrameCache(chip)
	}

	dev, err := paged.New(t, driver, &paged.Config{
		ChipSelect: open(cfg.Lines.ChipSelect, gpio.High),
		Reset:      open(cfg.Lines.Reset, gpio.High),
		Power:      open(cfg.Lines.Power, gpio.Low),
	})
	if err != nil {
		fatal(err)
	}
	defer dev.Close()
	fmt.Printf("using driver: %s\n", dev)

	// a transport waiting for two init signals needs a second one
	if err = dev.Initialize(); errors.Is(err, conn.ErrNotReady) {
		err = dev.Initialize()
	}
	if err != nil {
		fatal(err)
	}
	if err = dev.SetContrast(cfg.Contrast); err != nil {
		fatal(err)
	}

	s, err := newScene(dev.Bounds(), *textFlag)
	if err != nil {
		fatal(err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(cfg.Interval) * time.Millisecond)
	defer ticker.Stop()

	fmt.Println("hit control-c to stop...")
	for offset := 0; ; offset++ {
		var (
			now      = time.Now()
			sceneErr error
		)
		if cfg.Cache {
			// compose the whole frame and hand it over page by page
			s.frame.Clear()
			sceneErr = s.draw(s.frame, now, offset)
			for page := 0; page < dev.Pages(); page++ {
				if err = dev.SubmitPage(page, s.frame.Page(page)); err != nil {
					break
				}
			}
		} else {
			err = dev.Render(func(img draw.Image) {
				if derr := s.draw(img, now, offset); sceneErr == nil {
					sceneErr = derr
				}
			})
		}
		if sceneErr != nil {
			fmt.Fprintln(os.Stderr, "scene: "+sceneErr.Error())
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "frame: "+err.Error())
		}

		select {
		case <-sigs:
			fmt.Println("shutting down...")
			return
		case <-ticker.C:
		}
	}
}

func openLine(lc config.LineConfig, initial gpio.Level) (conn.Line, io.Closer, error) {
	switch {
	case lc.Chip != "":
		l, err := conn.OpenCdevLine(lc.Chip, lc.Offset, initial)
		if err != nil {
			return nil, nil, err
		}
		return l, l, nil
	case lc.Name != "":
		l, err := conn.LineByName(lc.Name)
		if err != nil {
			return nil, nil, err
		}
		return l, nil, l.Out(initial)
	default:
		return nil, nil, nil
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
