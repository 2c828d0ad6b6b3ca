package media

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewAsset(t *testing.T) {
	path := writeTempFile(t, "GOPR0042.GPR", make([]byte, 2048))

	asset := NewAsset(path)
	if asset.Filename != "GOPR0042.GPR" {
		t.Errorf("filename = %q, want GOPR0042.GPR", asset.Filename)
	}
	if asset.Size != 2048 {
		t.Errorf("size = %d, want 2048", asset.Size)
	}
	if asset.Metadata != nil {
		t.Error("metadata should start unset")
	}
	if got := asset.Stem(); got != "GOPR0042" {
		t.Errorf("stem = %q, want GOPR0042", got)
	}
}

func TestNewAssetMissingFile(t *testing.T) {
	asset := NewAsset("/does/not/exist.gpr")
	if asset.Size != 0 {
		t.Errorf("size = %d, want 0 for a missing file", asset.Size)
	}
	if asset.Filename != "exist.gpr" {
		t.Errorf("filename = %q, want exist.gpr", asset.Filename)
	}
}

func TestSupportedRaw(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"photo.gpr", true},
		{"photo.GPR", true},
		{"photo.dng", true},
		{"photo.DNG", true},
		{"photo.jpg", false},
		{"photo.xmp", false},
		{"photo", false},
	}
	for _, tt := range tests {
		if got := SupportedRaw(tt.path); got != tt.want {
			t.Errorf("SupportedRaw(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{500, "500 B"},
		{1024, "1.00 KiB"},
		{1024 * 1024, "1.00 MiB"},
		{5*1024*1024 + 512*1024, "5.50 MiB"},
		{1024 * 1024 * 1024, "1.00 GiB"},
	}
	for _, tt := range tests {
		asset := Asset{Size: tt.size}
		if got := asset.FormatSize(); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
