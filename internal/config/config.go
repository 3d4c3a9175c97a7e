package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/handeval/poker"
)

// Config represents the complete handeval configuration file.
type Config struct {
	Handeval *Settings `hcl:"handeval,block"`
}

// Settings holds the tunables shared by all handeval commands.
type Settings struct {
	LogLevel   string  `hcl:"log_level,optional"`
	LoadFactor float64 `hcl:"load_factor,optional"`
	Workers    int     `hcl:"workers,optional"`
	Seed       *int64  `hcl:"seed,optional"`
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Default returns the settings used when no configuration file exists.
func Default() *Settings {
	return &Settings{
		LogLevel:   "info",
		LoadFactor: poker.DefaultLoadFactor,
		Workers:    defaultWorkers(),
	}
}

func defaultWorkers() int {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8 // Cap at 8 for diminishing returns
	}
	return workers
}

// Load loads settings from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Settings, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and fills in defaults for missing values.
func Parse(src []byte, filename string) (*Settings, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	s := cfg.Handeval
	if s == nil {
		return Default(), nil
	}

	// Apply defaults for missing values
	def := Default()
	if s.LogLevel == "" {
		s.LogLevel = def.LogLevel
	}
	if s.LoadFactor == 0 {
		s.LoadFactor = def.LoadFactor
	}
	if s.Workers == 0 {
		s.Workers = def.Workers
	}
	return s, nil
}

// Validate validates the settings
func (s *Settings) Validate() error {
	if !validLogLevels[s.LogLevel] {
		return fmt.Errorf("invalid log level: %q", s.LogLevel)
	}
	if s.LoadFactor <= 0 || s.LoadFactor > 1 {
		return fmt.Errorf("load factor must be in (0,1], got %v", s.LoadFactor)
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", s.Workers)
	}
	return nil
}
