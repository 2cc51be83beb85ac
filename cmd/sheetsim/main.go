// Command sheetsim runs a scripted gesture against a headless bottom sheet
// and reports the resulting index changes, trace, and filmstrip.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/go-drift/bottomsheet/internal/config"
	"github.com/go-drift/bottomsheet/internal/filmstrip"
	"github.com/go-drift/bottomsheet/pkg/geometry"
	"github.com/go-drift/bottomsheet/pkg/sheet"
	sheettest "github.com/go-drift/bottomsheet/pkg/testing"
)

// settleTimeout bounds each PumpAndSettle call.
const settleTimeout = 10 * time.Second

func main() {
	log.SetFlags(0)
	log.SetPrefix("sheetsim: ")
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath   string
	dir          string
	script       string
	index        int
	from         float64
	delta        float64
	velocity     float64
	scrollOffset float64
	tracePath    string
	filmstrip    string
	verbose      bool
}

func run(args []string, stdout io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("sheetsim", pflag.ContinueOnError)
	flagSet.StringVar(&opts.configPath, "config", "", "path to sheet.yaml or sheet.jsonc (default: search --dir)")
	flagSet.StringVar(&opts.dir, "dir", ".", "directory searched for sheet.yaml or sheet.jsonc")
	flagSet.StringVar(&opts.script, "script", "drag", "gesture to run: drag, fling, scroll-drag, or snap")
	flagSet.IntVar(&opts.index, "index", -1, "initial index for drags, target index for snap (default: from config)")
	flagSet.Float64Var(&opts.from, "from", 100, "touch-down y position")
	flagSet.Float64Var(&opts.delta, "delta", 200, "vertical drag distance; positive moves down")
	flagSet.Float64Var(&opts.velocity, "velocity", 2000, "fling speed in px/s")
	flagSet.Float64Var(&opts.scrollOffset, "scroll-offset", 0, "content offset of the scrollable for scroll-drag")
	flagSet.StringVar(&opts.tracePath, "trace", "", "write the JSON trace to this file (- for stdout)")
	flagSet.StringVar(&opts.filmstrip, "filmstrip", "", "write a PNG filmstrip of every frame to this file")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log each frame")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}
	return simulate(opts, stdout)
}

func loadConfig(opts options) (*config.Config, error) {
	if opts.configPath != "" {
		return config.LoadFile(opts.configPath)
	}
	return config.LoadOptional(opts.dir)
}

func simulate(opts options, stdout io.Writer) error {
	switch opts.script {
	case "drag", "fling", "scroll-drag", "snap":
	default:
		return fmt.Errorf("unknown script %q", opts.script)
	}

	fileCfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	cfg, err := fileCfg.SheetConfig()
	if err != nil {
		return err
	}
	if opts.index >= 0 && opts.script != "snap" {
		cfg.Index = opts.index
	}
	if opts.tracePath != "" && cfg.Trace == nil {
		cfg.Trace = sheet.NewTraceBuffer(0)
	}

	tester := sheettest.NewTester()
	defer tester.Cleanup()

	var (
		s      *sheet.Sheet
		frames []filmstrip.Frame
	)
	cfg.Control = tester.Control()
	cfg.OnIndexChange = func(index int) {
		fmt.Fprintf(stdout, "index -> %d\n", index)
	}
	cfg.OnPosition = func(extent float64) {
		if s == nil {
			return
		}
		f := filmstrip.Frame{
			Index:       s.Index(),
			Translation: s.Translation(),
			Dragging:    s.Session().Dragging,
		}
		frames = append(frames, f)
		if opts.verbose {
			log.Printf("frame %d: index=%d extent=%.1f dragging=%t", len(frames), f.Index, extent, f.Dragging)
		}
	}

	s, err = sheet.NewSheet(cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	tester.SetTarget(s)
	if err := tester.PumpAndSettle(settleTimeout); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "start index %d, extent %.1f\n", s.Index(), s.Position())

	start := geometry.Offset{Y: opts.from}
	delta := geometry.Offset{Y: opts.delta}
	switch opts.script {
	case "drag":
		err = tester.DragFrom(start, delta)
	case "fling":
		err = tester.Fling(start, delta, opts.velocity)
	case "scroll-drag":
		scrollable := sheettest.NewFakeScrollable(geometry.RectFromLTWH(0, 0, 1000, s.Geometry().ContainerExtent))
		scrollable.SetOffset(opts.scrollOffset)
		detach := s.Scroll().Attach(scrollable, nil)
		defer detach()
		s.Scroll().UpdateOffset(opts.scrollOffset)
		err = tester.ScrollDrag(start, delta, s.Scroll().NativeGesture())
	case "snap":
		index := opts.index
		if index < 0 {
			index = cfg.Index
		}
		s.SetIndex(index)
	}
	if err != nil {
		return err
	}
	if err := tester.PumpAndSettle(settleTimeout); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "final index %d, extent %.1f\n", s.Index(), s.Position())

	if opts.tracePath != "" {
		if err := writeTrace(opts.tracePath, cfg.Trace, stdout); err != nil {
			return err
		}
	}
	if opts.filmstrip != "" {
		if err := filmstrip.WriteFile(opts.filmstrip, frames, s.Geometry(), filmstrip.Options{}); err != nil {
			return err
		}
		log.Printf("wrote %d frames to %s", len(frames), opts.filmstrip)
	}
	return nil
}

func writeTrace(path string, buf *sheet.TraceBuffer, stdout io.Writer) error {
	data, err := json.MarshalIndent(buf.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	data = append(data, '\n')
	if path == "-" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `sheetsim runs a scripted gesture against a headless bottom sheet.

The sheet is configured from sheet.yaml or sheet.jsonc in --dir, or from
--config. Time is simulated with a fake clock at %s per frame.

Usage:
  sheetsim [flags]

Examples:
  # Drag the sheet down 300px from its configured index
  sheetsim --script drag --delta 300

  # Fling upward and write a filmstrip
  sheetsim --script fling --delta -200 --velocity 2500 --filmstrip strip.png

Flags:
%s`, sheettest.FrameDuration, strings.TrimRight(flagSet.FlagUsages(), "\n")+"\n")
}
