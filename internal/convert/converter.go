package convert

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/keenanjohnson/gprprotool/internal/codec"
	"github.com/keenanjohnson/gprprotool/internal/media"
	"github.com/keenanjohnson/gprprotool/internal/xmp"
)

// Error taxonomy for a single conversion. All are fatal to the one
// operation and never to the process; callers match with errors.Is.
var (
	ErrIO             = errors.New("file unreadable or unwritable")
	ErrMetadataParse  = errors.New("container not recognized as a gpr/dng raw file")
	ErrDecode         = errors.New("codec reported failure or returned no data")
	ErrBufferTooSmall = errors.New("decoded buffer smaller than declared dimensions")
	ErrEncode         = errors.New("output serialization failed")
)

// Logf matches the printf-style logging functions of the logger.
type Logf func(format string, args ...interface{})

// Plane is a normalized decode result: row-major, interleaved RGB,
// 3 bytes per pixel, fully owned by this process. It is transient and
// consumed within a single conversion call.
type Plane struct {
	Data   []byte
	Width  int
	Height int
}

// Converter runs the decode-normalize-encode pipeline. The decoder is
// treated as non-reentrant: a Converter must not be used from more than
// one goroutine at a time.
type Converter struct {
	dec   codec.Decoder
	infof Logf
	warnf Logf
}

// NewConverter wires a Converter to a decoder. Either log function may
// be nil.
func NewConverter(dec codec.Decoder, infof, warnf Logf) *Converter {
	return &Converter{dec: dec, infof: infof, warnf: warnf}
}

func (c *Converter) logInfof(format string, args ...interface{}) {
	if c.infof != nil {
		c.infof(format, args...)
	}
}

func (c *Converter) logWarnf(format string, args ...interface{}) {
	if c.warnf != nil {
		c.warnf(format, args...)
	}
}

// Convert decodes one raw asset and writes it in the configured output
// format. It returns the output path on success.
func (c *Converter) Convert(asset media.Asset, cfg Config) (string, error) {
	outputPath := OutputPath(asset, cfg)
	c.logInfof("Starting conversion of %s -> %s (%s, quality %s)",
		asset.Filename, outputPath, cfg.Format, cfg.QualityDisplay())

	raw, err := os.ReadFile(asset.Path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrIO, asset.Path, err)
	}

	params, err := c.dec.ParseMetadata(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMetadataParse, err)
	}
	c.logInfof("Parsed container metadata: %dx%d pixels", params.InputWidth, params.InputHeight)

	rgb, err := c.dec.DecodeRGB(raw, codec.ResolutionFull, 8)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	c.logInfof("Decoded %d bytes, declared dimensions %dx%d (container said %dx%d)",
		len(rgb.Data), rgb.Width, rgb.Height, params.InputWidth, params.InputHeight)

	plane, inferred, err := NormalizePlane(rgb)
	if err != nil {
		return "", err
	}
	if inferred {
		c.logWarnf("Buffer size disagreed with declared dimensions for %s; inferred %dx%d from %d bytes",
			asset.Filename, plane.Width, plane.Height, len(rgb.Data))
	}

	if err := EncodePlane(plane, outputPath, cfg); err != nil {
		return "", err
	}

	if cfg.PreserveMetadata {
		c.writeSidecar(asset, outputPath)
	}

	c.logInfof("Conversion complete: %s", outputPath)
	return outputPath, nil
}

// writeSidecar copies the source metadata into an XMP sidecar next to
// the output. Failures here never fail the conversion.
func (c *Converter) writeSidecar(asset media.Asset, outputPath string) {
	meta := asset.Metadata
	if meta == nil {
		m, err := media.ReadMetadata(asset.Path)
		if err != nil {
			c.logWarnf("Skipping metadata sidecar for %s: %v", asset.Filename, err)
			return
		}
		meta = &m
	}

	sidecar := xmp.SidecarPath(outputPath)
	if err := xmp.WriteSidecar(sidecar, *meta); err != nil {
		c.logWarnf("Failed to write sidecar %s: %v", sidecar, err)
		return
	}
	c.logInfof("Wrote metadata sidecar: %s", sidecar)
}

// NormalizePlane interprets the decoder output. Only the byte length of
// the buffer is trusted; declared width/height are cross-checked
// against it:
//
//   - exact RGBA fit: 4 bytes/pixel, alpha dropped during copy
//   - exact RGB fit: 3 bytes/pixel
//   - neither: dimensions are untrustworthy and get re-derived assuming
//     3 bytes/pixel and a roughly square image. This is a documented
//     lossy last resort, wrong for strongly non-square sources.
//
// The returned bool reports whether the inference path was taken.
func NormalizePlane(buf codec.RGBBuffer) (Plane, bool, error) {
	size := len(buf.Data)
	if size == 0 {
		return Plane{}, false, fmt.Errorf("%w: empty output buffer", ErrDecode)
	}

	width, height := buf.Width, buf.Height
	bytesPerPixel := 0
	inferred := false

	switch {
	case size == width*height*4:
		bytesPerPixel = 4
	case size == width*height*3:
		bytesPerPixel = 3
	default:
		totalPixels := size / 3
		width = int(math.Sqrt(float64(totalPixels)))
		if width == 0 {
			return Plane{}, false, fmt.Errorf("%w: %d bytes is below one pixel", ErrDecode, size)
		}
		height = totalPixels / width
		bytesPerPixel = 3
		inferred = true
	}

	plane, err := copyPlane(buf.Data, width, height, bytesPerPixel)
	return plane, inferred, err
}

// copyPlane copies the RGB channels out of the raw buffer for the
// chosen (width, height, bytes-per-pixel) triple, dropping alpha when
// present. The triple must fit inside the buffer.
func copyPlane(raw []byte, width, height, bytesPerPixel int) (Plane, error) {
	need := width * height * bytesPerPixel
	if len(raw) < need {
		return Plane{}, fmt.Errorf("%w: need %d bytes for %dx%d at %d bytes/pixel, got %d",
			ErrBufferTooSmall, need, width, height, bytesPerPixel, len(raw))
	}

	data := make([]byte, width*height*3)
	if bytesPerPixel == 3 {
		copy(data, raw[:need])
	} else {
		for px := 0; px < width*height; px++ {
			src := px * 4
			dst := px * 3
			data[dst] = raw[src]
			data[dst+1] = raw[src+1]
			data[dst+2] = raw[src+2]
		}
	}

	return Plane{Data: data, Width: width, Height: height}, nil
}

// OutputPath derives `<dir>/<stem>.<ext>` for an asset; the source
// directory is used unless the config overrides it.
func OutputPath(asset media.Asset, cfg Config) string {
	dir := cfg.OutputDir
	if dir == "" {
		dir = filepath.Dir(asset.Path)
	}
	return filepath.Join(dir, asset.Stem()+"."+cfg.Format.Extension())
}

// EncodePlane serializes the plane to the target path. The write is
// staged through a temp file in the same directory and renamed into
// place, so a failed encode never leaves a partial file behind.
func EncodePlane(plane Plane, path string, cfg Config) error {
	img := planeToImage(plane)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrIO, path, err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	switch cfg.Format {
	case FormatPNG:
		err = png.Encode(tmp, img)
	default:
		err = jpeg.Encode(tmp, img, &jpeg.Options{Quality: cfg.Quality})
	}
	if err != nil {
		cleanup()
		return fmt.Errorf("%w: %s: %v", ErrEncode, cfg.Format, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close %s: %v", ErrIO, tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename to %s: %v", ErrIO, path, err)
	}
	return nil
}

func planeToImage(plane Plane) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, plane.Width, plane.Height))
	for y := 0; y < plane.Height; y++ {
		for x := 0; x < plane.Width; x++ {
			src := (y*plane.Width + x) * 3
			dst := img.PixOffset(x, y)
			img.Pix[dst] = plane.Data[src]
			img.Pix[dst+1] = plane.Data[src+1]
			img.Pix[dst+2] = plane.Data[src+2]
			img.Pix[dst+3] = 0xFF
		}
	}
	return img
}
