// Package tui is the interactive terminal shell: menu, file browser,
// file info, conversion config. It holds navigation state only; all
// conversion work is delegated to the convert and app packages.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keenanjohnson/gprprotool/internal/app"
	"github.com/keenanjohnson/gprprotool/internal/convert"
	"github.com/keenanjohnson/gprprotool/internal/media"
)

// State identifies the active screen.
type State int

const (
	StateMainMenu State = iota
	StateFileBrowser
	StateFileInfo
	StateConfig
	StateSettings
	StateHelp
	StateConverting
	StateComplete
	StateError
)

var menuItems = []string{
	"Browse and Convert Files",
	"Batch Convert Directory",
	"Settings",
	"Help",
	"Quit",
}

const (
	menuBrowse = iota
	menuBatch
	menuSettings
	menuHelp
	menuQuit
)

const configOptionCount = 4
const settingsOptionCount = 3

// Model is the whole application state. Every transition goes through
// Update and returns a new value; nothing lives in package globals.
type Model struct {
	state State

	menuIndex  int
	currentDir string
	entries    []string
	fileIndex  int

	selected *media.Asset
	details  []media.DetailField

	defaults      convert.Config
	config        convert.Config
	configIndex   int
	settingsIndex int

	errorMessage   string
	successMessage string

	converter *convert.Converter
	batchOpts app.Options
}

type convertDoneMsg struct {
	output string
	err    error
}

type batchDoneMsg struct {
	summary *app.Summary
	err     error
}

// New builds the initial model. batchOpts carries logging settings and
// the decoder override for batch runs started from the menu.
func New(converter *convert.Converter, startDir string, batchOpts app.Options) Model {
	if startDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			startDir = cwd
		} else {
			startDir = "."
		}
	}
	return Model{
		state:      StateMainMenu,
		currentDir: startDir,
		defaults:   convert.DefaultConfig(),
		config:     convert.DefaultConfig(),
		converter:  converter,
		batchOpts:  batchOpts,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case convertDoneMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Conversion failed: %v", msg.err)
			m.state = StateError
		} else {
			m.successMessage = fmt.Sprintf("Conversion completed successfully!\n\nOutput: %s", msg.output)
			m.state = StateComplete
		}
		return m, nil

	case batchDoneMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Batch conversion failed: %v", msg.err)
			m.state = StateError
		} else {
			s := msg.summary
			m.successMessage = fmt.Sprintf("Batch conversion finished.\n\nConverted: %d\nSkipped: %d\nFailed: %d\nMetadata errors: %d",
				s.Converted, s.Skipped, s.Failed, s.MetaErrors)
			m.state = StateComplete
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateMainMenu:
		switch key.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.menuIndex = wrap(m.menuIndex-1, len(menuItems))
		case "down", "j":
			m.menuIndex = wrap(m.menuIndex+1, len(menuItems))
		case "enter":
			return m.selectMenuItem()
		}

	case StateFileBrowser:
		switch key.String() {
		case "q", "esc":
			m.state = StateMainMenu
		case "up", "k":
			if len(m.entries) > 0 {
				m.fileIndex = wrap(m.fileIndex-1, len(m.entries))
			}
		case "down", "j":
			if len(m.entries) > 0 {
				m.fileIndex = wrap(m.fileIndex+1, len(m.entries))
			}
		case "enter":
			return m.selectEntry()
		case "backspace":
			if parent := filepath.Dir(m.currentDir); parent != m.currentDir {
				m.currentDir = parent
				m.loadDirectory()
			}
		}

	case StateFileInfo:
		switch key.String() {
		case "q", "esc":
			m.selected = nil
			m.details = nil
			m.state = StateFileBrowser
		case "c":
			m.config = m.defaults
			m.configIndex = 0
			m.state = StateConfig
		}

	case StateConfig:
		switch key.String() {
		case "q", "esc":
			m.state = StateFileInfo
		case "up", "k":
			m.configIndex = wrap(m.configIndex-1, configOptionCount)
		case "down", "j":
			m.configIndex = wrap(m.configIndex+1, configOptionCount)
		case "left", "h":
			m.config = adjustConfig(m.config, m.configIndex, -1, m.currentDir)
		case "right", "l":
			m.config = adjustConfig(m.config, m.configIndex, 1, m.currentDir)
		case "enter":
			return m.startConversion()
		}

	case StateSettings:
		switch key.String() {
		case "q", "esc":
			m.state = StateMainMenu
		case "up", "k":
			m.settingsIndex = wrap(m.settingsIndex-1, settingsOptionCount)
		case "down", "j":
			m.settingsIndex = wrap(m.settingsIndex+1, settingsOptionCount)
		case "left", "h":
			m.defaults = adjustConfig(m.defaults, m.settingsIndex, -1, "")
		case "right", "l":
			m.defaults = adjustConfig(m.defaults, m.settingsIndex, 1, "")
		}

	case StateHelp:
		switch key.String() {
		case "q", "esc", "enter":
			m.state = StateMainMenu
		}

	case StateConverting:
		// A running decode cannot be interrupted; keys are ignored
		// until the done message arrives.

	case StateComplete, StateError:
		switch key.String() {
		case "q", "esc", "enter":
			m.backToMainMenu()
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) backToMainMenu() {
	m.state = StateMainMenu
	m.selected = nil
	m.details = nil
	m.errorMessage = ""
	m.successMessage = ""
}

func (m Model) selectMenuItem() (tea.Model, tea.Cmd) {
	switch m.menuIndex {
	case menuBrowse:
		m.loadDirectory()
		m.state = StateFileBrowser
	case menuBatch:
		return m.startBatch()
	case menuSettings:
		m.settingsIndex = 0
		m.state = StateSettings
	case menuHelp:
		m.state = StateHelp
	case menuQuit:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) loadDirectory() {
	entries, err := media.ListDirectory(m.currentDir)
	if err != nil {
		entries = nil
	}
	m.entries = entries
	m.fileIndex = 0
}

func (m Model) selectEntry() (tea.Model, tea.Cmd) {
	if m.fileIndex >= len(m.entries) {
		return m, nil
	}
	path := m.entries[m.fileIndex]

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		m.currentDir = path
		m.loadDirectory()
		return m, nil
	}
	if !media.SupportedRaw(path) {
		return m, nil
	}

	asset := media.NewAsset(path)
	// Metadata failures are shown, not fatal: the file can still be
	// converted without it.
	if meta, err := media.ReadMetadata(path); err == nil {
		asset.Metadata = &meta
	}
	m.selected = &asset
	m.details, _ = media.ReadDetails(path)
	m.state = StateFileInfo
	return m, nil
}

func (m Model) startConversion() (tea.Model, tea.Cmd) {
	if m.selected == nil {
		return m, nil
	}
	asset := *m.selected
	cfg := m.config
	converter := m.converter
	m.state = StateConverting
	return m, func() tea.Msg {
		output, err := converter.Convert(asset, cfg)
		return convertDoneMsg{output: output, err: err}
	}
}

func (m Model) startBatch() (tea.Model, tea.Cmd) {
	opts := m.batchOpts
	opts.InputPath = m.currentDir
	opts.Recursive = false
	opts.Format = m.defaults.Format.Extension()
	opts.Quality = m.defaults.Quality
	opts.PreserveMetadata = m.defaults.PreserveMetadata
	opts.PrintSummary = false
	m.state = StateConverting
	return m, func() tea.Msg {
		summary, err := app.Run(context.Background(), opts)
		return batchDoneMsg{summary: summary, err: err}
	}
}

// adjustConfig applies a left/right adjustment to the option at index.
// Index order matches the config screen: format, quality, preserve
// metadata, output directory.
func adjustConfig(cfg convert.Config, index, direction int, browserDir string) convert.Config {
	switch index {
	case 0:
		cfg.Format = cfg.Format.Toggle()
	case 1:
		if cfg.Format == convert.FormatJPEG {
			cfg = cfg.AdjustQuality(direction)
		}
	case 2:
		cfg.PreserveMetadata = !cfg.PreserveMetadata
	case 3:
		if cfg.OutputDir == "" {
			cfg.OutputDir = browserDir
		} else {
			cfg.OutputDir = ""
		}
	}
	return cfg
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}
