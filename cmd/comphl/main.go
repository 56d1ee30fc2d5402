// Package main is the entry point for comphl, a filter that colors its input
// by how compressible each run of bytes is.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/lixenwraith/comphl/config"
	"github.com/lixenwraith/comphl/gradient"
	"github.com/lixenwraith/comphl/highlight"
	"github.com/lixenwraith/comphl/score"
	"github.com/lixenwraith/comphl/status"
	"github.com/lixenwraith/comphl/terminal"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes
const (
	exitOK     = 0
	exitIO     = 1
	exitConfig = 2
)

// errVersion reports that --version was handled
var errVersion = errors.New("version requested")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) (code int) {
	// Restore the terminal color if anything below panics
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\ncomphl crashed: %v\nStack Trace:\n%s\n", r, debug.Stack())
			code = exitIO
		}
	}()

	fs := flag.NewFlagSet("comphl", flag.ContinueOnError)
	cfg, err := parseFlags(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) || errors.Is(err, errVersion) {
			return exitOK
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitConfig
	}

	logFile := setupLogging(cfg.Log.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	reg := status.NewRegistry()
	h, closer, err := build(cfg, status.NewRunStats(reg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitConfig
	}
	if closer != nil {
		defer closer.Close()
	}

	mode, err := terminal.ResolveColorMode(cfg.Color.Choice, cfg.Color.Mode, os.Stdout.Fd())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitConfig
	}
	log.Printf("comphl %s: window=%d formula=%s gradient=%s mode=%s",
		version, cfg.WindowSize, cfg.Score.Formula, cfg.Color.Gradient, mode)

	stop := watchSignals(os.Stdout, os.Exit)
	defer stop()

	src := terminal.NewStripReader(terminal.Stdin())
	sink := terminal.NewWriter(os.Stdout, mode)
	if err := h.Run(src, sink); err != nil {
		log.Printf("comphl: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitIO
	}

	if cfg.Log.Stats {
		reg.Report(os.Stderr)
	}
	return exitOK
}

// watchSignals resets out and calls exit on SIGINT or SIGTERM
// The returned stop unregisters the handler and waits for the watcher to end
func watchSignals(out io.Writer, exit func(int)) (stop func()) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		select {
		case sig := <-signals:
			terminal.EmergencyReset(out)
			log.Printf("comphl: terminated by %v", sig)
			code := exitIO
			if s, ok := sig.(syscall.Signal); ok {
				code = 128 + int(s)
			}
			exit(code)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(signals)
		close(done)
		<-exited
	}
}

// build turns a validated config into a Highlighter
// The returned closer, when non-nil, releases scorer resources
func build(cfg *config.Config, stats *status.RunStats) (*highlight.Highlighter, io.Closer, error) {
	absent, err := score.ParseAbsent(cfg.Score.Absent)
	if err != nil {
		return nil, nil, err
	}
	sc, err := score.New(score.Options{
		Formula:    cfg.Score.Formula,
		Window:     cfg.WindowSize,
		AgePenalty: cfg.Score.AgePenalty,
		DecayShape: cfg.Score.DecayShape,
		Absent:     absent,
		Script:     cfg.Score.Script,
	})
	if err != nil {
		return nil, nil, err
	}
	closer, _ := sc.(io.Closer)

	g, err := gradient.New(gradient.Options{
		Name:    cfg.Color.Gradient,
		Stops:   cfg.Color.Stops,
		Reverse: cfg.Color.Reverse,
	})
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, nil, err
	}

	h, err := highlight.New(highlight.Options{
		WindowSize: cfg.WindowSize,
		Scorer:     sc,
		Gradient:   g,
		Stats:      stats,
	})
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, nil, err
	}
	return h, closer, nil
}

// parseFlags loads the config file and overlays explicitly set flags
// Returns errVersion after printing version information
func parseFlags(fs *flag.FlagSet, args []string) (*config.Config, error) {
	def := config.Default()
	over := config.Default()

	var (
		configPath  string
		stops       string
		showVersion bool
	)

	fs.StringVar(&configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.IntVar(&over.WindowSize, "window-size", def.WindowSize, "History window in bytes")
	fs.IntVar(&over.WindowSize, "w", def.WindowSize, "History window in bytes (shorthand)")
	fs.StringVar(&over.Score.Formula, "formula", def.Score.Formula, "Scoring formula: decay, penalty, reciprocal, lua")
	fs.Float64Var(&over.Score.AgePenalty, "age-penalty", def.Score.AgePenalty, "Age weight for the penalty formula")
	fs.Float64Var(&over.Score.DecayShape, "decay-shape", def.Score.DecayShape, "Age exponent for the decay formula")
	fs.StringVar(&over.Score.Absent, "absent", def.Score.Absent, "Score for runs with no prior occurrence: novel, zero")
	fs.StringVar(&over.Score.Script, "script", def.Score.Script, "Lua script defining score(length, age, window)")
	fs.StringVar(&over.Color.Choice, "color", def.Color.Choice, "Color output: auto, always, never")
	fs.StringVar(&over.Color.Mode, "color-mode", def.Color.Mode, "Color depth: auto, truecolor, 256")
	fs.StringVar(&over.Color.Gradient, "gradient", def.Color.Gradient, "Gradient: "+strings.Join(gradient.Names(), ", "))
	fs.StringVar(&stops, "stops", "", "Comma-separated colors for the custom gradient")
	fs.BoolVar(&over.Color.Reverse, "reverse", def.Color.Reverse, "Reverse the gradient")
	fs.BoolVar(&over.Log.Debug, "debug", def.Log.Debug, "Write a debug log to "+logDir)
	fs.BoolVar(&over.Log.Stats, "stats", def.Log.Stats, "Print run statistics to stderr at exit")
	fs.BoolVar(&showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "comphl - color text by compressibility\n\n")
		fmt.Fprintf(out, "Usage: comphl [options] < input\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if showVersion {
		fmt.Fprintf(fs.Output(), "comphl %s (%s)\n", version, commit)
		return nil, errVersion
	}

	required := configPath != ""
	if !required {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath, required)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "window-size", "w":
			cfg.WindowSize = over.WindowSize
		case "formula":
			cfg.Score.Formula = over.Score.Formula
		case "age-penalty":
			cfg.Score.AgePenalty = over.Score.AgePenalty
		case "decay-shape":
			cfg.Score.DecayShape = over.Score.DecayShape
		case "absent":
			cfg.Score.Absent = over.Score.Absent
		case "script":
			cfg.Score.Script = over.Score.Script
		case "color":
			cfg.Color.Choice = over.Color.Choice
		case "color-mode":
			cfg.Color.Mode = over.Color.Mode
		case "gradient":
			cfg.Color.Gradient = over.Color.Gradient
		case "stops":
			cfg.Color.Stops = splitList(stops)
		case "reverse":
			cfg.Color.Reverse = over.Color.Reverse
		case "debug":
			cfg.Log.Debug = over.Log.Debug
		case "stats":
			cfg.Log.Stats = over.Log.Stats
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
