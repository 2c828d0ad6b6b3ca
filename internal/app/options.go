package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/keenanjohnson/gprprotool/internal/codec"
	"github.com/keenanjohnson/gprprotool/internal/convert"
)

// Options represents user-provided parameters for a batch conversion.
type Options struct {
	InputPath        string
	Recursive        bool
	Format           string
	Quality          int
	OutputDir        string
	PreserveMetadata bool
	WaypointsPath    string
	LogLevel         string
	LogFile          string
	PrintSummary     bool
	Progress         func(done, total int)

	// Decoder overrides the native codec binding; tests use this.
	Decoder codec.Decoder
}

// Validate performs basic validation and assigns defaults where needed.
func (o *Options) Validate() error {
	o.InputPath = strings.TrimSpace(o.InputPath)
	o.Format = strings.TrimSpace(strings.ToLower(o.Format))
	o.OutputDir = strings.TrimSpace(o.OutputDir)
	o.WaypointsPath = strings.TrimSpace(o.WaypointsPath)
	o.LogLevel = strings.TrimSpace(o.LogLevel)
	o.LogFile = strings.TrimSpace(o.LogFile)

	if o.InputPath == "" {
		return fmt.Errorf("input path is required")
	}
	switch o.Format {
	case "", "jpeg", "jpg", "png":
	default:
		return fmt.Errorf("invalid format %q (expected jpeg or png)", o.Format)
	}
	if o.Quality == 0 {
		o.Quality = convert.DefaultConfig().Quality
	}
	if o.Quality < 1 || o.Quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100, got %d", o.Quality)
	}
	if o.OutputDir != "" {
		info, err := os.Stat(o.OutputDir)
		if err != nil {
			return fmt.Errorf("output directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("output directory %s is not a directory", o.OutputDir)
		}
	}
	if o.LogLevel == "" {
		o.LogLevel = "info"
	}
	if o.LogFile == "" {
		defaultPath, err := DefaultLogPath()
		if err != nil {
			return err
		}
		o.LogFile = defaultPath
	}
	return nil
}

// Config translates the validated options into a conversion config.
func (o *Options) Config() convert.Config {
	cfg := convert.DefaultConfig()
	if o.Format == "png" {
		cfg.Format = convert.FormatPNG
	}
	cfg.Quality = o.Quality
	cfg.OutputDir = o.OutputDir
	cfg.PreserveMetadata = o.PreserveMetadata
	return cfg
}

// DefaultLogPath places the log file next to the binary, falling back to the
// working directory when the binary lives in a temp dir.
func DefaultLogPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	dir := filepath.Dir(exe)
	// When running via `go run`, executable resides in temp; prefer current working dir then.
	if strings.HasPrefix(dir, os.TempDir()) {
		cwd, err := os.Getwd()
		if err == nil {
			dir = cwd
		}
	}
	return filepath.Join(dir, "gprprotool.log"), nil
}
