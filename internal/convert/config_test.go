package convert

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Format != FormatJPEG {
		t.Errorf("default format = %s, want JPEG", cfg.Format)
	}
	if cfg.Quality != 95 {
		t.Errorf("default quality = %d, want 95", cfg.Quality)
	}
	if cfg.OutputDir != "" {
		t.Errorf("default output dir = %q, want source directory", cfg.OutputDir)
	}
	if !cfg.PreserveMetadata {
		t.Error("default should preserve metadata")
	}
}

func TestAdjustQualityClamping(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		direction int
		steps     int
		want      int
	}{
		{name: "single step up", start: 50, direction: 1, steps: 1, want: 55},
		{name: "single step down", start: 50, direction: -1, steps: 1, want: 45},
		{name: "clamped at upper bound", start: 95, direction: 1, steps: 10, want: 100},
		{name: "clamped at lower bound", start: 10, direction: -1, steps: 10, want: 1},
		{name: "recovers from lower clamp", start: 3, direction: -1, steps: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Format: FormatJPEG, Quality: tt.start}
			for i := 0; i < tt.steps; i++ {
				cfg = cfg.AdjustQuality(tt.direction)
				if cfg.Quality < 1 || cfg.Quality > 100 {
					t.Fatalf("quality %d escaped [1,100] after %d steps", cfg.Quality, i+1)
				}
			}
			if cfg.Quality != tt.want {
				t.Errorf("quality = %d, want %d", cfg.Quality, tt.want)
			}
		})
	}
}

func TestFormatToggle(t *testing.T) {
	if FormatJPEG.Toggle() != FormatPNG {
		t.Error("JPEG should toggle to PNG")
	}
	if FormatPNG.Toggle() != FormatJPEG {
		t.Error("PNG should toggle to JPEG")
	}
}

func TestQualityDisplay(t *testing.T) {
	jpeg := Config{Format: FormatJPEG, Quality: 80}
	if got := jpeg.QualityDisplay(); got != "80%" {
		t.Errorf("JPEG quality display = %q, want 80%%", got)
	}
	png := Config{Format: FormatPNG, Quality: 80}
	if got := png.QualityDisplay(); got != "N/A" {
		t.Errorf("PNG quality display = %q, want N/A", got)
	}
}

func TestFormatExtension(t *testing.T) {
	if got := FormatJPEG.Extension(); got != "jpg" {
		t.Errorf("JPEG extension = %q, want jpg", got)
	}
	if got := FormatPNG.Extension(); got != "png" {
		t.Errorf("PNG extension = %q, want png", got)
	}
}
