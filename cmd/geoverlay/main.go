package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"geoverlay/internal/config"
	"geoverlay/internal/logger"
	"geoverlay/internal/overlay"
	"geoverlay/internal/source"
	"geoverlay/internal/tui"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string  `short:"c" long:"config"       env:"CONFIG_FILE"  description:"Path to configuration file"`
	MarkerColor string  `long:"marker-color"           env:"MARKER_COLOR" description:"Default marker colour"`
	StrokeColor string  `long:"stroke-color"           env:"STROKE_COLOR" description:"Default stroke colour"`
	FillColor   string  `long:"fill-color"             env:"FILL_COLOR"   description:"Default polygon fill colour"`
	StrokeWidth float64 `long:"stroke-width"           env:"STROKE_WIDTH" description:"Default stroke width"`
	Zoom        float64 `short:"z" long:"zoom"         env:"ZOOM"         description:"Initial zoom factor"`
	Dump        bool    `long:"dump"                   description:"Print the overlays as GeoJSON and exit"`
	Validate    bool    `long:"validate"               description:"Report malformed features and exit"`

	Args struct {
		File string `positional-arg-name:"file" description:"GeoJSON, WKT, CSV, KML or OSM PBF file"`
	} `positional-args:"yes"`
}

func main() {
	os.Exit(run())
}

// run returns the process exit code so that deferred cleanup, such as
// flushing the log file, happens before exit.
func run() int {
	_ = godotenv.Load(".env")

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		return 1
	}

	// The TUI owns the terminal; only batch modes log to stderr.
	closer, err := opts.Logger.Setup(!opts.Dump && !opts.Validate)
	if err != nil {
		fmt.Fprintln(os.Stderr, "log file:", err)
		return 1
	}
	defer closer.Close()

	cfg := config.Default()
	if opts.ConfigFile != "" {
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			log.Error().Err(err).Str("path", opts.ConfigFile).Msg("Failed to load configuration")
			return 1
		}
	}
	opts.apply(cfg)

	if opts.Dump || opts.Validate {
		return batch(opts, os.Stdout)
	}

	var m tea.Model
	if opts.Args.File != "" {
		m = tui.NewWithPath(cfg, opts.Args.File)
	} else {
		m = tui.New(cfg)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Error().Err(err).Msg("TUI exited")
		return 1
	}
	return 0
}

// batch runs the dump and validate modes and returns the exit code.
func batch(opts Options, out io.Writer) int {
	if opts.Args.File == "" {
		log.Error().Msg("A file argument is required")
		return 1
	}
	c, err := source.Load(opts.Args.File)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load features")
		return 1
	}
	if opts.Validate {
		errs := overlay.Validate(c.Features)
		for _, err := range errs {
			fmt.Fprintln(out, err)
		}
		if len(errs) > 0 {
			return 1
		}
		log.Info().Int("features", len(c.Features)).Msg("All features valid")
		return 0
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(overlay.ToGeoJSON(overlay.Build(c.Features))); err != nil {
		log.Error().Err(err).Msg("Failed to write GeoJSON")
		return 1
	}
	return 0
}

// apply overrides config values with the flags that were set.
func (o *Options) apply(cfg *config.Config) {
	if o.MarkerColor != "" {
		cfg.Style.Color = o.MarkerColor
	}
	if o.StrokeColor != "" {
		cfg.Style.StrokeColor = o.StrokeColor
	}
	if o.FillColor != "" {
		cfg.Style.FillColor = o.FillColor
	}
	if o.StrokeWidth > 0 {
		cfg.Style.StrokeWidth = o.StrokeWidth
	}
	if o.Zoom > 0 {
		cfg.Zoom = o.Zoom
	}
}
