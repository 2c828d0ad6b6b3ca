package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Asset is a handle to a source raw file selected for conversion.
// Metadata is populated lazily on first access and stays nil when the
// container carries none that we can read.
type Asset struct {
	Path     string
	Filename string
	Size     int64
	Metadata *Metadata
}

// NewAsset builds an Asset for the given path. Size is zero when the
// file cannot be stat'ed; selection must still succeed so the error can
// surface later at conversion time.
func NewAsset(path string) Asset {
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}
	return Asset{
		Path:     path,
		Filename: filepath.Base(path),
		Size:     size,
	}
}

// Stem returns the filename without its extension, used to derive
// output names.
func (a Asset) Stem() string {
	return strings.TrimSuffix(a.Filename, filepath.Ext(a.Filename))
}

// FormatSize renders the byte size in a human-readable form.
func (a Asset) FormatSize() string {
	return humanSize(a.Size)
}

func humanSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// GPR containers are DNG-based; plain DNG files go through the same
// library path.
var rawExt = map[string]bool{
	".gpr": true,
	".dng": true,
}

// SupportedRaw reports whether the provided path has a supported raw
// container extension.
func SupportedRaw(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return rawExt[ext]
}
