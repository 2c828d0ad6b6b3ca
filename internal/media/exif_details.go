package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/evanoberholster/imagemeta"
	"github.com/evanoberholster/imagemeta/exif2"
)

// DetailField is a single label/value pair for the file-info screen.
type DetailField struct {
	Group string
	Label string
	Value string
}

// ReadDetails reads the full EXIF tag set and formats a grouped,
// user-friendly field list. This is the verbose companion to
// ReadMetadata: conversion never depends on it, the shell renders it.
func ReadDetails(path string) ([]DetailField, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	ex, err := decodeImagemetaSafe(file, path)
	if err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}

	var fields []DetailField
	add := func(group, label, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		fields = append(fields, DetailField{Group: group, Label: label, Value: value})
	}

	add("File", "File name", filepath.Base(path))
	add("File", "Directory", filepath.Dir(path))
	add("File", "Size", humanSize(info.Size()))
	add("File", "Modified", info.ModTime().Local().Format(time.RFC3339))

	if ts := ex.DateTimeOriginal(); !ts.IsZero() {
		add("Capture", "Captured", formatTS(ts))
	}
	if ts := ex.CreateDate(); !ts.IsZero() && !ts.Equal(ex.DateTimeOriginal()) {
		add("Capture", "Digitized", formatTS(ts))
	}

	add("Camera", "Make", ex.Make)
	add("Camera", "Model", ex.Model)
	add("Camera", "Serial", ex.CameraSerial)
	add("Camera", "Software", ex.Software)
	add("Camera", "Firmware", ex.ProcessingSoftware)

	if ex.ExposureTime != 0 {
		add("Exposure", "Shutter", ex.ExposureTime.String()+" s")
	}
	if ex.FNumber != 0 {
		add("Exposure", "Aperture", fmt.Sprintf("f/%.1f", ex.FNumber))
	}
	if ex.ISO != 0 {
		add("Exposure", "ISO", fmt.Sprintf("%d", ex.ISO))
	} else if ex.ISOSpeed != 0 {
		add("Exposure", "ISO", fmt.Sprintf("%d", ex.ISOSpeed))
	}
	if ex.ExposureBias != 0 {
		add("Exposure", "Exposure bias", ex.ExposureBias.String())
	}
	if ex.ExposureProgram != 0 {
		add("Exposure", "Program", ex.ExposureProgram.String())
	}
	if ex.MeteringMode != 0 {
		add("Exposure", "Metering", ex.MeteringMode.String())
	}
	if ex.FocalLength != 0 {
		add("Exposure", "Focal length", ex.FocalLength.String())
	}
	if ex.FocalLengthIn35mmFormat != 0 {
		add("Exposure", "35mm equivalent", ex.FocalLengthIn35mmFormat.String())
	}

	if ex.ImageWidth != 0 && ex.ImageHeight != 0 {
		add("Image", "Resolution", fmt.Sprintf("%dx%d", ex.ImageWidth, ex.ImageHeight))
	}
	if ex.Orientation != 0 {
		add("Image", "Orientation", ex.Orientation.String())
	}

	lat := ex.GPS.Latitude()
	lon := ex.GPS.Longitude()
	if lat != 0 || lon != 0 {
		add("GPS", "Latitude", fmt.Sprintf("%.6f", lat))
		add("GPS", "Longitude", fmt.Sprintf("%.6f", lon))
		if alt := ex.GPS.Altitude(); alt != 0 {
			add("GPS", "Altitude", fmt.Sprintf("%.2fm", alt))
		}
		if gpsDate := ex.GPS.Date(); !gpsDate.IsZero() {
			add("GPS", "GPS time", formatTS(gpsDate))
		}
	}

	return fields, nil
}

func formatTS(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04:05 -0700")
}

// decodeImagemetaSafe protects against panics from the decoder on
// malformed files.
func decodeImagemetaSafe(r io.ReadSeeker, path string) (ex exif2.Exif, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while decoding %s: %v", path, rec)
		}
	}()

	ex, err = imagemeta.Decode(r)
	return ex, err
}
