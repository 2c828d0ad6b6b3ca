// Package codec is the boundary to the GoPro GPR reference library.
//
// The library does the actual VC-5/DNG work; this package only moves
// buffers across the cgo boundary. When the binary is built without the
// gprsdk tag every call reports ErrUnavailable, which keeps the rest of
// the tool (metadata viewing, batch planning) usable on machines without
// the native library installed.
package codec

import "errors"

// ErrUnavailable is returned when the native GPR library was not linked in.
var ErrUnavailable = errors.New("gpr codec not available in this build (rebuild with -tags gprsdk)")

// Resolution selects the decode quality tier offered by the library.
type Resolution int

const (
	ResolutionNone    Resolution = 0
	ResolutionEighth  Resolution = 1
	ResolutionQuarter Resolution = 2
	ResolutionHalf    Resolution = 3
	ResolutionFull    Resolution = 4
)

func (r Resolution) String() string {
	switch r {
	case ResolutionEighth:
		return "eighth"
	case ResolutionQuarter:
		return "quarter"
	case ResolutionHalf:
		return "half"
	case ResolutionFull:
		return "full"
	default:
		return "none"
	}
}

// Parameters holds the container metadata the library parses out of a
// GPR/DNG file before decoding.
type Parameters struct {
	InputWidth  int
	InputHeight int
	InputPitch  int
}

// RGBBuffer is the decoded pixel output. Data is a copy owned by the
// caller; the library-owned buffer is released before ParseMetadata or
// DecodeRGB return. Width and Height are what the library declared and
// are not guaranteed to agree with len(Data).
type RGBBuffer struct {
	Data   []byte
	Width  int
	Height int
}

// Decoder is the capability consumed by the conversion pipeline. A
// single implementation binds the native library; tests substitute
// their own. Implementations are not assumed reentrant: callers must
// not issue concurrent calls on one Decoder.
type Decoder interface {
	// ParseMetadata initializes parameters to their defaults and fills
	// them from the raw container bytes.
	ParseMetadata(raw []byte) (Parameters, error)

	// DecodeRGB decodes the raw container into an interleaved RGB
	// plane at the requested resolution tier and bit depth.
	DecodeRGB(raw []byte, res Resolution, bitDepth int) (RGBBuffer, error)

	// EncodeDNG repacks the raw GPR container as a plain DNG. Part of
	// the boundary surface; the convert flow does not use it.
	EncodeDNG(raw []byte, params Parameters) ([]byte, error)
}
