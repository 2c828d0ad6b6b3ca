package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/keenanjohnson/gprprotool/internal/app"
)

func main() {
	var opts app.Options

	pflag.StringVarP(&opts.InputPath, "input", "i", "", "Path to a GPR/DNG file, directory, or glob pattern")
	pflag.BoolVarP(&opts.Recursive, "recursive", "r", false, "Scan subdirectories when the input is a folder")
	pflag.StringVarP(&opts.Format, "format", "f", "jpeg", "Output format: jpeg or png")
	pflag.IntVarP(&opts.Quality, "quality", "q", 95, "JPEG quality (1-100, ignored for PNG)")
	pflag.StringVarP(&opts.OutputDir, "output-dir", "o", "", "Directory for converted files (defaults to each source's directory)")
	pflag.BoolVar(&opts.PreserveMetadata, "preserve-metadata", true, "Write an XMP metadata sidecar next to each output")
	pflag.StringVar(&opts.WaypointsPath, "waypoints", "", "Optional GPX file collecting the GPS positions of converted images")
	pflag.StringVar(&opts.LogLevel, "log-level", "info", "Logging level for the log file")
	pflag.StringVar(&opts.LogFile, "log-file", "", "Optional log file path (defaults to a file next to the binary)")

	pflag.Parse()
	opts.PrintSummary = true

	ctx := context.Background()
	if _, err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "gprprotool-batch failed: %v\n", err)
		os.Exit(1)
	}
}
