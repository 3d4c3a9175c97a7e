package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/handeval/internal/config"
	"github.com/lox/handeval/poker"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"handeval.hcl" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" help:"Log level: debug, info, warn, error (overrides config)"`
	NoColor  bool   `help:"Disable coloured output"`

	out io.Writer
}

// env is what a command needs once flags and config are resolved.
type env struct {
	settings *config.Settings
	logger   *log.Logger
	eval     *poker.Evaluator
	styles   styles
	out      io.Writer
}

func (g *Globals) setup() (*env, error) {
	settings, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		settings.LogLevel = g.LogLevel
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	out := g.out
	if out == nil {
		out = os.Stdout
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	level, err := log.ParseLevel(settings.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	renderer := lipgloss.NewRenderer(out)
	if g.NoColor {
		logger.SetColorProfile(termenv.Ascii)
		renderer.SetColorProfile(termenv.Ascii)
	}

	start := time.Now()
	eval, err := poker.NewEvaluator(poker.WithLoadFactor(settings.LoadFactor))
	if err != nil {
		return nil, fmt.Errorf("building evaluator: %w", err)
	}
	logger.Debug("Built evaluator tables", "loadFactor", settings.LoadFactor, "took", time.Since(start))

	return &env{
		settings: settings,
		logger:   logger,
		eval:     eval,
		styles:   newStyles(renderer),
		out:      out,
	}, nil
}

type styles struct {
	header   lipgloss.Style
	hand     lipgloss.Style
	rank     lipgloss.Style
	category lipgloss.Style
	win      lipgloss.Style
	tie      lipgloss.Style
	fail     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		hand:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		rank:     r.NewStyle().Foreground(lipgloss.Color("11")),
		category: r.NewStyle().Foreground(lipgloss.Color("12")),
		win:      r.NewStyle().Foreground(lipgloss.Color("10")),
		tie:      r.NewStyle().Foreground(lipgloss.Color("11")),
		fail:     r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}
