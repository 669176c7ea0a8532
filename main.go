package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"rctdraw/compositor"
	"rctdraw/pack"
	"rctdraw/parallel"
	"rctdraw/render"
	"rctdraw/view"
)

type cli struct {
	LogLevel  slog.Level      `help:"Minimum level of log messages (debug, info, warn, error)" default:"info" group:"logging"`
	LogFormat string          `help:"Format of log messages" enum:"text,json" default:"text" group:"logging"`
	LogFile   string          `help:"Write log messages to this file instead of stderr" type:"path" group:"logging"`
	Workers   int             `help:"Number of parallel workers, 0 for one per CPU" default:"0"`
	Config    kong.ConfigFlag `help:"Load defaults from a JSON configuration file"`

	Pack   pack.CLICmd   `cmd:"" help:"Build a sprite asset file from a folder of images"`
	Render render.CLICmd `cmd:"" help:"Render the demo desktop to image files"`
	View   view.CLICmd   `cmd:"" help:"Show the demo desktop in the terminal"`
}

func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("rctdraw"),
		kong.Description("Indexed colour sprite compositor"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "rctdraw.json", "~/.config/rctdraw.json"),
	)

	var out io.Writer = os.Stderr
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			kctx.FatalIfErrorf(fmt.Errorf("could not open log file %q: %w", c.LogFile, err))
		}
		defer f.Close()
		out = f
	}

	logger := newLogger(out, c.LogLevel, c.LogFormat)
	slog.SetDefault(logger)
	compositor.SetLogger(logger)

	slog.Debug("running", "command", kctx.Command(), "workers", c.Workers)
	err := kctx.Run(parallel.Start(c.Workers))
	if err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
