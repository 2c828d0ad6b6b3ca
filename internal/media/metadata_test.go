package media

import (
	"math"
	"testing"
)

func TestGPSDecimal(t *testing.T) {
	tests := []struct {
		name     string
		degrees  float64
		minutes  float64
		seconds  float64
		ref      string
		expected float64
	}{
		{
			name:     "south is negated",
			degrees:  10,
			minutes:  30,
			seconds:  0,
			ref:      "S",
			expected: -10.5,
		},
		{
			name:     "north stays positive",
			degrees:  10,
			minutes:  30,
			seconds:  0,
			ref:      "N",
			expected: 10.5,
		},
		{
			name:     "west is negated",
			degrees:  122,
			minutes:  25,
			seconds:  30,
			ref:      "W",
			expected: -(122 + 25/60.0 + 30/3600.0),
		},
		{
			name:     "east stays positive",
			degrees:  13,
			minutes:  24,
			seconds:  15.6,
			ref:      "E",
			expected: 13 + 24/60.0 + 15.6/3600.0,
		},
		{
			name:     "unknown ref treated as positive",
			degrees:  1,
			minutes:  0,
			seconds:  0,
			ref:      "",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gpsDecimal(tt.degrees, tt.minutes, tt.seconds, tt.ref)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("gpsDecimal = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCameraModel(t *testing.T) {
	tests := []struct {
		name  string
		make  string
		model string
		want  string
	}{
		{
			name:  "make and model combined",
			make:  "GoPro",
			model: "HERO10 Black",
			want:  "GoPro HERO10 Black",
		},
		{
			name:  "model only",
			make:  "",
			model: "HERO10 Black",
			want:  "HERO10 Black",
		},
		{
			name:  "make only",
			make:  "GoPro",
			model: "",
			want:  "GoPro",
		},
		{
			name:  "both missing",
			make:  "",
			model: "",
			want:  "Unknown Camera",
		},
		{
			name:  "whitespace trimmed",
			make:  "  GoPro ",
			model: " HERO11 ",
			want:  "GoPro HERO11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cameraModel(tt.make, tt.model); got != tt.want {
				t.Errorf("cameraModel(%q, %q) = %q, want %q", tt.make, tt.model, got, tt.want)
			}
		})
	}
}

func TestReadMetadataUnreadableFile(t *testing.T) {
	if _, err := ReadMetadata("/does/not/exist.gpr"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestReadMetadataUnparsableContainer(t *testing.T) {
	path := writeTempFile(t, "junk.gpr", []byte("definitely not a tiff"))
	if _, err := ReadMetadata(path); err == nil {
		t.Error("expected an error for an unparsable container")
	}
}
