package convert

import "fmt"

// Format selects the output image encoding.
type Format int

const (
	FormatJPEG Format = iota
	FormatPNG
)

func (f Format) String() string {
	if f == FormatPNG {
		return "PNG"
	}
	return "JPEG"
}

// Extension returns the output filename extension without the dot.
func (f Format) Extension() string {
	if f == FormatPNG {
		return "png"
	}
	return "jpg"
}

// Toggle returns the other format.
func (f Format) Toggle() Format {
	if f == FormatJPEG {
		return FormatPNG
	}
	return FormatJPEG
}

const qualityStep = 5

// Config is an immutable value object describing one conversion
// request. The zero value is not useful; start from DefaultConfig.
type Config struct {
	Format           Format
	Quality          int // 1-100, JPEG only
	OutputDir        string
	PreserveMetadata bool
}

// DefaultConfig returns the default conversion settings: JPEG at
// quality 95, output next to the source, metadata preserved.
func DefaultConfig() Config {
	return Config{
		Format:           FormatJPEG,
		Quality:          95,
		OutputDir:        "",
		PreserveMetadata: true,
	}
}

// AdjustQuality returns a copy with quality stepped by direction*5,
// clamped to [1,100]. PNG output ignores quality but the stored value
// still stays in range.
func (c Config) AdjustQuality(direction int) Config {
	q := c.Quality + direction*qualityStep
	if q < 1 {
		q = 1
	}
	if q > 100 {
		q = 100
	}
	c.Quality = q
	return c
}

// QualityDisplay renders the quality setting for the UI.
func (c Config) QualityDisplay() string {
	if c.Format == FormatPNG {
		return "N/A"
	}
	return fmt.Sprintf("%d%%", c.Quality)
}
