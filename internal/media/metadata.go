package media

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// Metadata is the best-effort EXIF summary of a raw container. Optional
// fields are nil when the corresponding tag is absent or malformed;
// absence is never encoded as a sentinel value.
type Metadata struct {
	CameraModel  string
	Width        int
	Height       int
	ISO          *int
	ExposureTime *string
	FNumber      *string
	FocalLength  *string
	DateTaken    *string
	Latitude     *float64
	Longitude    *float64
}

// ReadMetadata extracts camera and capture details from the EXIF segment
// of a GPR/DNG container. Individual missing tags never fail the read;
// only an unreadable file or an unparsable container returns an error.
func ReadMetadata(path string) (Metadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	x, err := decodeExifSafe(file, path)
	if err != nil {
		return Metadata{}, fmt.Errorf("decode metadata: %w", err)
	}

	meta := Metadata{
		CameraModel: cameraModel(stringField(x, exif.Make), stringField(x, exif.Model)),
		Width:       intField(x, exif.ImageWidth),
		Height:      intField(x, exif.ImageLength),
		ISO:         isoField(x),
		DateTaken:   dateTaken(x),
		Latitude:    gpsCoordinate(x, exif.GPSLatitude, exif.GPSLatitudeRef),
		Longitude:   gpsCoordinate(x, exif.GPSLongitude, exif.GPSLongitudeRef),
	}

	if s := displayField(x, exif.ExposureTime); s != "" {
		meta.ExposureTime = &s
	}
	if num, den, ok := ratField(x, exif.FNumber); ok && den != 0 {
		s := fmt.Sprintf("f/%g", float64(num)/float64(den))
		meta.FNumber = &s
	}
	if num, den, ok := ratField(x, exif.FocalLength); ok && den != 0 {
		s := fmt.Sprintf("%g mm", float64(num)/float64(den))
		meta.FocalLength = &s
	}

	return meta, nil
}

// decodeExifSafe protects against panics from the decoder on malformed files.
func decodeExifSafe(r io.Reader, path string) (x *exif.Exif, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while decoding %s: %v", path, rec)
		}
	}()

	x, err = exif.Decode(r)
	return x, err
}

func cameraModel(make, model string) string {
	combined := strings.TrimSpace(strings.TrimSpace(make) + " " + strings.TrimSpace(model))
	if combined == "" {
		return "Unknown Camera"
	}
	return combined
}

func stringField(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	val, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(val)
}

// intField accepts both short and long encodings; zero means absent.
func intField(x *exif.Exif, name exif.FieldName) int {
	tag, err := x.Get(name)
	if err != nil {
		return 0
	}
	val, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return val
}

func isoField(x *exif.Exif) *int {
	for _, name := range []exif.FieldName{exif.ISOSpeedRatings, exif.FieldName("ISOSpeed")} {
		if v := intField(x, name); v != 0 {
			return &v
		}
	}
	return nil
}

// displayField renders a tag the way its formatter displays it, with
// the formatter's surrounding quote characters stripped.
func displayField(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	return strings.Trim(strings.TrimSpace(tag.String()), `"`)
}

func ratField(x *exif.Exif, name exif.FieldName) (int64, int64, bool) {
	tag, err := x.Get(name)
	if err != nil {
		return 0, 0, false
	}
	num, den, err := tag.Rat2(0)
	if err != nil {
		return 0, 0, false
	}
	return num, den, true
}

func dateTaken(x *exif.Exif) *string {
	for _, name := range []exif.FieldName{exif.DateTimeOriginal, exif.DateTime} {
		if s := stringField(x, name); s != "" {
			return &s
		}
	}
	return nil
}

// gpsCoordinate converts the EXIF degree/minute/second rational triple
// into signed decimal degrees. The coordinate is omitted entirely when
// either the triple or its reference tag is missing or incomplete.
func gpsCoordinate(x *exif.Exif, coordName, refName exif.FieldName) *float64 {
	coord, err := x.Get(coordName)
	if err != nil {
		return nil
	}
	ref, err := x.Get(refName)
	if err != nil {
		return nil
	}
	refVal, err := ref.StringVal()
	if err != nil {
		return nil
	}
	if coord.Count < 3 {
		return nil
	}

	parts := make([]float64, 3)
	for i := range parts {
		num, den, err := coord.Rat2(i)
		if err != nil || den == 0 {
			return nil
		}
		parts[i] = float64(num) / float64(den)
	}

	val := gpsDecimal(parts[0], parts[1], parts[2], strings.TrimSpace(refVal))
	return &val
}

func gpsDecimal(degrees, minutes, seconds float64, ref string) float64 {
	result := degrees + minutes/60.0 + seconds/3600.0
	if ref == "S" || ref == "W" {
		result = -result
	}
	return result
}
