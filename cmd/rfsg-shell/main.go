// Command rfsg-shell is an interactive console for an NI-RFSG signal
// generator session.
//
// The shell opens one session, applies any presets from a profile
// file, and drops into a command loop for configuring and driving the
// instrument. Session settings come from flags, from a YAML profile,
// or both; flags win.
//
// Usage:
//
//	rfsg-shell [flags]
//
// Flags:
//
//	-resource string  Resource name of the instrument (e.g. PXI1Slot2)
//	-simulate         Open a simulated session instead of hardware
//	-model string     Model to simulate, with -simulate (default "5654")
//	-options string   Driver option string (overrides -simulate/-model)
//	-config string    YAML profile with session settings and presets
//	-trace string     Write a CBOR call trace to this file
//	-v                Echo every driver call to the debug log
//
// Examples:
//
//	# Connect to hardware
//	rfsg-shell -resource PXI1Slot2
//
//	# Simulated bench with a call trace
//	rfsg-shell -simulate -model 5654 -trace session.rftrace
//
//	# Saved profile, presets applied on open
//	rfsg-shell -config bench.yaml
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"

	"github.com/l-johnston/nirfsg/cmd/rfsg-shell/interactive"
	"github.com/l-johnston/nirfsg/internal/sim"
	"github.com/l-johnston/nirfsg/pkg/rfsg"
	"github.com/l-johnston/nirfsg/pkg/trace"
)

// Config holds the shell configuration.
type Config struct {
	Resource   string
	Simulate   bool
	Model      string
	Options    string
	TracePath  string
	ConfigFile string
	Verbose    bool
}

var config Config

func init() {
	flag.StringVar(&config.Resource, "resource", "", "Resource name of the instrument (e.g. PXI1Slot2)")
	flag.BoolVar(&config.Simulate, "simulate", false, "Open a simulated session instead of hardware")
	flag.StringVar(&config.Model, "model", "5654", "Model to simulate, with -simulate")
	flag.StringVar(&config.Options, "options", "", "Driver option string (overrides -simulate/-model)")
	flag.StringVar(&config.ConfigFile, "config", "", "YAML profile with session settings and presets")
	flag.StringVar(&config.TracePath, "trace", "", "Write a CBOR call trace to this file")
	flag.BoolVar(&config.Verbose, "v", false, "Echo every driver call to the debug log")
}

func main() {
	flag.Parse()

	// Setup logging
	setupLogging(config.Verbose)

	// Load profile, flags win over its session settings
	var presets map[string]any
	if config.ConfigFile != "" {
		profile, err := LoadProfile(config.ConfigFile)
		if err != nil {
			log.Fatalf("Failed to load profile: %v", err)
		}
		applyProfile(profile)
		presets = profile.Presets
	}

	// Validate configuration
	if err := validateConfig(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Apply defaults
	applyDefaults()

	opts, cleanup, err := sessionOptions()
	if err != nil {
		log.Fatalf("Failed to prepare session: %v", err)
	}
	defer cleanup()

	log.Printf("Opening %s...", config.Resource)
	dev, err := rfsg.Open(config.Resource, opts...)
	if err != nil {
		log.Fatalf("Failed to open session: %v", err)
	}
	log.Printf("Connected: %s (session %s)", dev.Model(), dev.SessionID())

	applyPresets(dev, presets)

	sh, err := interactive.New(dev)
	if err != nil {
		dev.Close()
		log.Fatalf("Failed to start shell: %v", err)
	}

	// Route log output through readline so it doesn't clobber the
	// prompt.
	log.SetOutput(sh.Stdout())

	sh.Run()

	if err := dev.Close(); err != nil {
		log.Printf("Error closing session: %v", err)
	}
	log.Println("Goodbye!")
}

func setupLogging(verbose bool) {
	log.SetFlags(log.Ltime)

	if verbose {
		log.SetFlags(log.Ltime | log.Lmicroseconds)
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
}

// applyProfile fills in every session setting whose flag was not given
// on the command line.
func applyProfile(p *Profile) {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["resource"] && p.Resource != "" {
		config.Resource = p.Resource
	}
	if !set["options"] && p.Options != "" {
		config.Options = p.Options
	}
	if !set["simulate"] && p.Simulate {
		config.Simulate = true
	}
	if !set["model"] && p.Model != "" {
		config.Model = p.Model
	}
	if !set["trace"] && p.Trace != "" {
		config.TracePath = p.Trace
	}
}

func validateConfig() error {
	if config.Resource == "" && !config.Simulate {
		return fmt.Errorf("resource name required (use -resource or -simulate)")
	}
	return nil
}

func applyDefaults() {
	if config.Resource == "" {
		// Simulated sessions accept any resource name.
		config.Resource = "PXI1Slot2"
	}
	if config.Simulate && config.Options == "" {
		config.Options = fmt.Sprintf("Simulate=1,DriverSetup=Model:%s", config.Model)
	}
}

// sessionOptions assembles the rfsg.Open options from the
// configuration. The returned cleanup closes the trace file, if any,
// and must run after the session closes so the trace captures the
// close.
func sessionOptions() ([]rfsg.Option, func(), error) {
	var opts []rfsg.Option
	cleanup := func() {}

	if config.Simulate {
		opts = append(opts, rfsg.WithLibrary(sim.New()))
	}
	if config.Options != "" {
		opts = append(opts, rfsg.WithOptions(config.Options))
	}

	var loggers []trace.Logger
	if config.TracePath != "" {
		fl, err := trace.NewFileLogger(config.TracePath)
		if err != nil {
			return nil, cleanup, fmt.Errorf("open trace file: %w", err)
		}
		cleanup = func() {
			if err := fl.Close(); err != nil {
				log.Printf("Error closing trace file: %v", err)
			}
		}
		loggers = append(loggers, fl)
		log.Printf("Tracing driver calls to %s", config.TracePath)
	}
	if config.Verbose {
		loggers = append(loggers, trace.NewSlogAdapter(slog.Default()))
	}

	switch len(loggers) {
	case 0:
	case 1:
		opts = append(opts, rfsg.WithTrace(loggers[0]))
	default:
		opts = append(opts, rfsg.WithTrace(trace.NewMultiLogger(loggers...)))
	}

	return opts, cleanup, nil
}

// applyPresets writes profile presets in name order. A failed preset
// logs a warning and the rest still apply.
func applyPresets(dev *rfsg.PXIe5654, presets map[string]any) {
	if len(presets) == 0 {
		return
	}

	sections := interactive.Sections(dev)
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := interactive.SetAttribute(sections, name, presets[name]); err != nil {
			log.Printf("Warning: preset %s: %v", name, err)
			continue
		}
		log.Printf("Preset %s = %v", name, presets[name])
	}
}
