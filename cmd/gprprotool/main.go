package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nir0k/logger"
	"github.com/spf13/pflag"

	"github.com/keenanjohnson/gprprotool/internal/app"
	"github.com/keenanjohnson/gprprotool/internal/codec"
	"github.com/keenanjohnson/gprprotool/internal/convert"
	"github.com/keenanjohnson/gprprotool/internal/tui"
)

func main() {
	var (
		startDir string
		logLevel string
		logFile  string
	)

	pflag.StringVarP(&startDir, "dir", "d", "", "Directory to open the file browser in (defaults to the working directory)")
	pflag.StringVarP(&logLevel, "log-level", "l", "info", "Logging level for the log file")
	pflag.StringVar(&logFile, "log-file", "", "Optional log file path (defaults to a file next to the binary)")
	pflag.Parse()

	if logFile == "" {
		defaultPath, err := app.DefaultLogPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "gprprotool failed: %v\n", err)
			os.Exit(1)
		}
		logFile = defaultPath
	}

	// The shell owns the terminal, so logs go to file only.
	cfg := logger.LogConfig{
		FilePath:       logFile,
		Format:         "standard",
		FileLevel:      logLevel,
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
		fmt.Fprintf(os.Stderr, "gprprotool failed: %v\n", err)
		os.Exit(1)
	}

	converter := convert.NewConverter(codec.NewDecoder(), logInstance.Infof, logInstance.Warningf)
	batchOpts := app.Options{LogLevel: logLevel, LogFile: logFile}

	program := tea.NewProgram(tui.New(converter, startDir, batchOpts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "gprprotool failed: %v\n", err)
		os.Exit(1)
	}
}
