package app

import (
	"context"
	"fmt"

	"github.com/keenanjohnson/gprprotool/internal/codec"
	"github.com/keenanjohnson/gprprotool/internal/convert"
	"github.com/keenanjohnson/gprprotool/internal/gpx"
	"github.com/keenanjohnson/gprprotool/internal/media"
	"github.com/nir0k/logger"
)

// FileResult records the outcome for one input file.
type FileResult struct {
	Path    string
	Output  string
	Status  string
	Message string
}

// Summary aggregates a whole batch run.
type Summary struct {
	Converted  int
	Skipped    int
	Failed     int
	MetaErrors int
	Results    []FileResult
}

// Run converts every supported raw file under the input path. One
// file's failure is recorded and the remaining files still run; the
// only hard errors are unusable options, an empty file set, and context
// cancellation between items. Cancellation never interrupts a decode
// already handed to the codec.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cfg := logger.LogConfig{
		FilePath:       opts.LogFile,
		Format:         "standard",
		FileLevel:      opts.LogLevel,
		ConsoleLevel:   "fatal",
		ConsoleOutput:  false,
		EnableRotation: true,
		RotationConfig: logger.RotationConfig{
			MaxSize:    25,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		},
	}
	logInstance, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	infof := logInstance.Infof
	warnf := logInstance.Warningf
	errorf := logInstance.Errorf

	conversion := opts.Config()
	infof("Starting batch conversion with input=%s recursive=%t format=%s quality=%s outputDir=%s preserveMetadata=%t",
		opts.InputPath, opts.Recursive, conversion.Format, conversion.QualityDisplay(), opts.OutputDir, opts.PreserveMetadata)

	files, err := media.CollectFiles(opts.InputPath, opts.Recursive)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to process")
	}

	dec := opts.Decoder
	if dec == nil {
		dec = codec.NewDecoder()
	}
	converter := convert.NewConverter(dec, infof, warnf)

	summary := &Summary{}
	var waypoints []gpx.Waypoint

	progress := func(done int) {
		if opts.Progress != nil {
			opts.Progress(done, len(files))
		}
	}

	for i, path := range files {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}
		progress(i)

		if !media.SupportedRaw(path) {
			warnf("Skipping unsupported file: %s", path)
			summary.Skipped++
			summary.Results = append(summary.Results, FileResult{Path: path, Status: "skipped", Message: "not a GPR/DNG file"})
			continue
		}

		asset := media.NewAsset(path)
		if meta, err := media.ReadMetadata(path); err != nil {
			// Conversion itself does not need metadata; keep going.
			warnf("Failed to read metadata for %s: %v", path, err)
			summary.MetaErrors++
		} else {
			asset.Metadata = &meta
		}

		output, err := converter.Convert(asset, conversion)
		if err != nil {
			errorf("Failed to convert %s: %v", path, err)
			summary.Failed++
			summary.Results = append(summary.Results, FileResult{Path: path, Status: "failed", Message: err.Error()})
			continue
		}

		summary.Converted++
		summary.Results = append(summary.Results, FileResult{Path: path, Output: output, Status: "converted"})

		if meta := asset.Metadata; meta != nil && meta.Latitude != nil && meta.Longitude != nil {
			waypoints = append(waypoints, gpx.Waypoint{
				Name:      asset.Filename,
				Latitude:  *meta.Latitude,
				Longitude: *meta.Longitude,
			})
		}
	}
	progress(len(files))

	if opts.WaypointsPath != "" {
		if len(waypoints) == 0 {
			warnf("No converted files carried GPS coordinates; skipping waypoint export")
		} else if err := gpx.WriteWaypoints(opts.WaypointsPath, waypoints); err != nil {
			errorf("Failed to write waypoints: %v", err)
		} else {
			infof("Wrote %d waypoints to %s", len(waypoints), opts.WaypointsPath)
		}
	}

	line := fmt.Sprintf("Finished. converted=%d skipped=%d failed=%d meta_errors=%d",
		summary.Converted, summary.Skipped, summary.Failed, summary.MetaErrors)
	if opts.PrintSummary {
		fmt.Println(line)
	}
	infof("%s", line)
	return summary, nil
}
