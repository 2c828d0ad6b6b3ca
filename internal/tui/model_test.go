package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keenanjohnson/gprprotool/internal/app"
	"github.com/keenanjohnson/gprprotool/internal/codec"
	"github.com/keenanjohnson/gprprotool/internal/convert"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	converter := convert.NewConverter(codec.NewDecoder(), nil, nil)
	return New(converter, t.TempDir(), app.Options{})
}

func key(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func step(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestMenuNavigationWraps(t *testing.T) {
	m := newTestModel(t)

	m = step(t, m, "k")
	if m.menuIndex != len(menuItems)-1 {
		t.Errorf("up from first item wrapped to %d, want %d", m.menuIndex, len(menuItems)-1)
	}
	m = step(t, m, "j")
	if m.menuIndex != 0 {
		t.Errorf("down from last item wrapped to %d, want 0", m.menuIndex)
	}
}

func TestBrowseOpensFileBrowser(t *testing.T) {
	m := newTestModel(t)
	m = step(t, m, "enter")
	if m.state != StateFileBrowser {
		t.Fatalf("state = %v, want StateFileBrowser", m.state)
	}
	m = step(t, m, "q")
	if m.state != StateMainMenu {
		t.Errorf("q did not return to the main menu")
	}
}

func TestBrowserDescendAndSelect(t *testing.T) {
	m := newTestModel(t)
	sub := filepath.Join(m.currentDir, "shots")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "GOPR0001.gpr"), []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}

	m = step(t, m, "enter") // open browser
	if len(m.entries) != 1 {
		t.Fatalf("entries = %v, want the shots directory", m.entries)
	}

	m = step(t, m, "enter") // descend into shots
	if m.currentDir != sub {
		t.Fatalf("currentDir = %q, want %q", m.currentDir, sub)
	}
	if len(m.entries) != 1 {
		t.Fatalf("entries = %v, want the gpr file", m.entries)
	}

	m = step(t, m, "enter") // select the file
	if m.state != StateFileInfo {
		t.Fatalf("state = %v, want StateFileInfo", m.state)
	}
	if m.selected == nil || m.selected.Filename != "GOPR0001.gpr" {
		t.Fatalf("selected = %+v", m.selected)
	}
	// Junk bytes: metadata stays nil and selection still works.
	if m.selected.Metadata != nil {
		t.Error("metadata set for an unparsable container")
	}

	m = step(t, m, "backspace")
	if m.state != StateFileInfo {
		t.Error("backspace should do nothing on the info screen")
	}
}

func TestConfigScreenAdjustments(t *testing.T) {
	m := newTestModel(t)
	m.state = StateConfig
	m.config = convert.DefaultConfig()

	m = step(t, m, "l")
	if m.config.Format != convert.FormatPNG {
		t.Error("right on format row should toggle to PNG")
	}
	m = step(t, m, "h")
	if m.config.Format != convert.FormatJPEG {
		t.Error("left on format row should toggle back to JPEG")
	}

	m = step(t, m, "j") // quality row
	for i := 0; i < 20; i++ {
		m = step(t, m, "l")
	}
	if m.config.Quality != 100 {
		t.Errorf("quality = %d, want clamp at 100", m.config.Quality)
	}
	for i := 0; i < 30; i++ {
		m = step(t, m, "h")
	}
	if m.config.Quality != 1 {
		t.Errorf("quality = %d, want clamp at 1", m.config.Quality)
	}

	m = step(t, m, "j") // preserve metadata row
	m = step(t, m, "l")
	if m.config.PreserveMetadata {
		t.Error("preserve metadata should toggle off")
	}

	m = step(t, m, "j") // output directory row
	m = step(t, m, "l")
	if m.config.OutputDir != m.currentDir {
		t.Errorf("output dir = %q, want browser directory", m.config.OutputDir)
	}
	m = step(t, m, "l")
	if m.config.OutputDir != "" {
		t.Error("output dir should toggle back to source directory")
	}
}

func TestSettingsEditDefaults(t *testing.T) {
	m := newTestModel(t)
	m.menuIndex = menuSettings
	m = step(t, m, "enter")
	if m.state != StateSettings {
		t.Fatalf("state = %v, want StateSettings", m.state)
	}

	m = step(t, m, "j", "l") // quality up by one step
	if m.defaults.Quality != 100 {
		t.Errorf("default quality = %d, want 100", m.defaults.Quality)
	}

	m = step(t, m, "q")
	if m.state != StateMainMenu {
		t.Error("q should leave settings")
	}
}

func TestConvertingIgnoresKeys(t *testing.T) {
	m := newTestModel(t)
	m.state = StateConverting
	m = step(t, m, "q", "esc", "enter")
	if m.state != StateConverting {
		t.Error("a running conversion must not be interrupted by keys")
	}
}

func TestDoneMessagesTransition(t *testing.T) {
	m := newTestModel(t)
	m.state = StateConverting

	next, _ := m.Update(convertDoneMsg{output: "/out/a.jpg"})
	m = next.(Model)
	if m.state != StateComplete {
		t.Fatalf("state = %v, want StateComplete", m.state)
	}

	m = step(t, m, "enter")
	if m.state != StateMainMenu {
		t.Error("enter should return to the main menu")
	}

	m.state = StateConverting
	next, _ = m.Update(convertDoneMsg{err: os.ErrPermission})
	m = next.(Model)
	if m.state != StateError {
		t.Fatalf("state = %v, want StateError", m.state)
	}
	if m.errorMessage == "" {
		t.Error("error message should be set")
	}
}

func TestHelpScreen(t *testing.T) {
	m := newTestModel(t)
	m.menuIndex = menuHelp
	m = step(t, m, "enter")
	if m.state != StateHelp {
		t.Fatalf("state = %v, want StateHelp", m.state)
	}
	if m.View() == "" {
		t.Error("help view should render")
	}
	m = step(t, m, "q")
	if m.state != StateMainMenu {
		t.Error("q should leave help")
	}
}
