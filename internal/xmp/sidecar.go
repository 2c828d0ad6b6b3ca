// Package xmp writes metadata sidecars for converted images. JPEG and
// PNG outputs lose the DNG tag set; when metadata preservation is
// enabled the extracted fields are carried over in an XMP packet next
// to the output file.
package xmp

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/keenanjohnson/gprprotool/internal/media"
)

const (
	exifNamespace = "http://ns.adobe.com/exif/1.0/"
	tiffNamespace = "http://ns.adobe.com/tiff/1.0/"
)

// SidecarPath returns the expected XMP filename for an image file.
func SidecarPath(imagePath string) string {
	path := imagePath
	if strings.EqualFold(filepath.Ext(path), ".xmp") {
		path = strings.TrimSuffix(path, filepath.Ext(path))
	}

	ext := filepath.Ext(path)
	if ext == "" {
		return path + ".xmp"
	}
	return strings.TrimSuffix(path, ext) + ".xmp"
}

// WriteSidecar serializes the metadata into an XMP packet at path,
// replacing any existing sidecar.
func WriteSidecar(path string, meta media.Metadata) error {
	payload := BuildSidecar(meta)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create sidecar dir: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	return nil
}

// BuildSidecar returns the XMP payload for the metadata. Optional
// fields that are absent from the source are absent from the packet.
func BuildSidecar(meta media.Metadata) []byte {
	var builder strings.Builder
	builder.WriteString(`<?xpacket begin=" " id="W5M0MpCehiHzreSzNTczkc9d"?>`)
	builder.WriteString("\n<x:xmpmeta xmlns:x=\"adobe:ns:meta/\" x:xmptk=\"gprprotool\">\n")
	builder.WriteString("  <rdf:RDF xmlns:rdf=\"http://www.w3.org/1999/02/22-rdf-syntax-ns#\">\n")
	builder.WriteString(fmt.Sprintf("    <rdf:Description rdf:about=\"\" xmlns:exif=\"%s\" xmlns:tiff=\"%s\"",
		exifNamespace, tiffNamespace))

	attr := func(name, value string) {
		if value == "" {
			return
		}
		builder.WriteString(fmt.Sprintf(" %s=%q", name, value))
	}

	attr("tiff:Model", meta.CameraModel)
	if meta.Width > 0 {
		attr("tiff:ImageWidth", strconv.Itoa(meta.Width))
	}
	if meta.Height > 0 {
		attr("tiff:ImageLength", strconv.Itoa(meta.Height))
	}
	if meta.ISO != nil {
		attr("exif:ISOSpeedRatings", strconv.Itoa(*meta.ISO))
	}
	if meta.ExposureTime != nil {
		attr("exif:ExposureTime", *meta.ExposureTime)
	}
	if meta.FNumber != nil {
		attr("exif:FNumber", strings.TrimPrefix(*meta.FNumber, "f/"))
	}
	if meta.FocalLength != nil {
		attr("exif:FocalLength", strings.TrimSuffix(*meta.FocalLength, " mm"))
	}
	if meta.DateTaken != nil {
		attr("exif:DateTimeOriginal", *meta.DateTaken)
	}

	if meta.Latitude != nil && meta.Longitude != nil {
		latVal, latRef := formatGPSCoordinate(*meta.Latitude, "N", "S")
		lonVal, lonRef := formatGPSCoordinate(*meta.Longitude, "E", "W")
		attr("exif:GPSLatitude", latVal)
		attr("exif:GPSLatitudeRef", latRef)
		attr("exif:GPSLongitude", lonVal)
		attr("exif:GPSLongitudeRef", lonRef)
		attr("exif:GPSVersionID", "2.3.0.0")
	}

	builder.WriteString(">\n")
	builder.WriteString("    </rdf:Description>\n")
	builder.WriteString("  </rdf:RDF>\n")
	builder.WriteString("</x:xmpmeta>\n")
	builder.WriteString("<?xpacket end=\"w\"?>")

	return []byte(builder.String())
}

// formatGPSCoordinate renders decimal degrees in XMP's degree,minute
// notation and returns the value together with its hemisphere ref.
func formatGPSCoordinate(value float64, positiveRef, negativeRef string) (string, string) {
	ref := positiveRef
	if value < 0 {
		ref = negativeRef
	}

	abs := math.Abs(value)
	deg := math.Floor(abs)
	minutes := (abs - deg) * 60

	minutes = math.Round(minutes*1e10) / 1e10
	if minutes >= 60 {
		deg++
		minutes = 0
	}

	degStr := strconv.FormatFloat(deg, 'f', 0, 64)
	minStr := strconv.FormatFloat(minutes, 'f', 10, 64)
	minStr = strings.TrimRight(minStr, "0")
	minStr = strings.TrimRight(minStr, ".")
	if minStr == "" {
		minStr = "0"
	}

	return fmt.Sprintf("%s,%s%s", degStr, minStr, ref), ref
}
