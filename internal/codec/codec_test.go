package codec

import (
	"errors"
	"testing"
)

func TestResolutionString(t *testing.T) {
	tests := []struct {
		res  Resolution
		want string
	}{
		{ResolutionNone, "none"},
		{ResolutionEighth, "eighth"},
		{ResolutionQuarter, "quarter"},
		{ResolutionHalf, "half"},
		{ResolutionFull, "full"},
	}
	for _, tt := range tests {
		if got := tt.res.String(); got != tt.want {
			t.Errorf("Resolution(%d).String() = %q, want %q", tt.res, got, tt.want)
		}
	}
}

func TestUnavailableDecoder(t *testing.T) {
	// Without the gprsdk build tag every operation must report the
	// library as unavailable rather than panic or silently no-op.
	dec := NewDecoder()

	if _, err := dec.ParseMetadata([]byte{1}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("ParseMetadata err = %v, want ErrUnavailable", err)
	}
	if _, err := dec.DecodeRGB([]byte{1}, ResolutionFull, 8); !errors.Is(err, ErrUnavailable) {
		t.Errorf("DecodeRGB err = %v, want ErrUnavailable", err)
	}
	if _, err := dec.EncodeDNG([]byte{1}, Parameters{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("EncodeDNG err = %v, want ErrUnavailable", err)
	}
}
