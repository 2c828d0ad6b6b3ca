package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/keenanjohnson/gprprotool/internal/convert"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75")).
			Width(18)

	groupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("213")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))
)

func (m Model) View() string {
	switch m.state {
	case StateMainMenu:
		return m.viewMainMenu()
	case StateFileBrowser:
		return m.viewFileBrowser()
	case StateFileInfo:
		return m.viewFileInfo()
	case StateConfig:
		return m.viewConfig("Conversion Settings", m.config, m.configIndex, true)
	case StateSettings:
		return m.viewConfig("Default Settings", m.defaults, m.settingsIndex, false)
	case StateHelp:
		return m.viewHelp()
	case StateConverting:
		return titleStyle.Render("Converting...") + "\n\nThe decoder is working; this cannot be interrupted.\n"
	case StateComplete:
		return successStyle.Render("Done") + "\n\n" + m.successMessage + "\n\n" + dimStyle.Render("press enter to return to the menu")
	case StateError:
		return errorStyle.Render("Error") + "\n\n" + m.errorMessage + "\n\n" + dimStyle.Render("press enter to return to the menu")
	}
	return ""
}

func (m Model) viewMainMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("GPR Pro Tool"))
	b.WriteString("\n")
	for i, item := range menuItems {
		line := "  " + item
		if i == m.menuIndex {
			line = selectedStyle.Render("> " + item)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("j/k move · enter select · q quit"))
	return b.String()
}

func (m Model) viewFileBrowser() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Browse: " + m.currentDir))
	b.WriteString("\n")
	if len(m.entries) == 0 {
		b.WriteString(dimStyle.Render("  no directories or GPR/DNG files here") + "\n")
	}
	for i, path := range m.entries {
		name := filepath.Base(path)
		if isDir(path) {
			name += "/"
		}
		line := "  " + name
		if i == m.fileIndex {
			line = selectedStyle.Render("> " + name)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("enter open/select · backspace parent · q back"))
	return b.String()
}

func (m Model) viewFileInfo() string {
	if m.selected == nil {
		return ""
	}
	asset := m.selected

	var b strings.Builder
	b.WriteString(titleStyle.Render("File: " + asset.Filename))
	b.WriteString("\n")
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}
	row("Path", asset.Path)
	row("Size", asset.FormatSize())

	if meta := asset.Metadata; meta != nil {
		b.WriteString(groupStyle.Render("Metadata") + "\n")
		row("Camera", meta.CameraModel)
		if meta.Width > 0 && meta.Height > 0 {
			row("Dimensions", fmt.Sprintf("%dx%d", meta.Width, meta.Height))
		}
		if meta.ISO != nil {
			row("ISO", fmt.Sprintf("%d", *meta.ISO))
		}
		if meta.ExposureTime != nil {
			row("Exposure", *meta.ExposureTime)
		}
		if meta.FNumber != nil {
			row("Aperture", *meta.FNumber)
		}
		if meta.FocalLength != nil {
			row("Focal length", *meta.FocalLength)
		}
		if meta.DateTaken != nil {
			row("Taken", *meta.DateTaken)
		}
		if meta.Latitude != nil && meta.Longitude != nil {
			row("GPS", fmt.Sprintf("%.6f, %.6f", *meta.Latitude, *meta.Longitude))
		}
	} else {
		b.WriteString(dimStyle.Render("metadata unavailable for this file") + "\n")
	}

	if len(m.details) > 0 {
		group := ""
		for _, f := range m.details {
			if f.Group != group {
				group = f.Group
				b.WriteString(groupStyle.Render(group) + "\n")
			}
			row(f.Label, f.Value)
		}
	}

	b.WriteString("\n" + dimStyle.Render("c configure conversion · q back"))
	return b.String()
}

func (m Model) viewConfig(title string, cfg convert.Config, index int, showOutputDir bool) string {
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = "(source directory)"
	}

	options := []struct {
		label string
		value string
	}{
		{"Output format", cfg.Format.String()},
		{"JPEG quality", cfg.QualityDisplay()},
		{"Preserve metadata", onOff(cfg.PreserveMetadata)},
		{"Output directory", outputDir},
	}
	count := len(options)
	if !showOutputDir {
		count = settingsOptionCount
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for i := 0; i < count; i++ {
		line := fmt.Sprintf("  %-20s %s", options[i].label, options[i].value)
		if i == index {
			line = selectedStyle.Render(fmt.Sprintf("> %-20s %s", options[i].label, options[i].value))
		}
		b.WriteString(line + "\n")
	}
	footer := "h/l adjust · j/k move · q back"
	if showOutputDir {
		footer = "h/l adjust · j/k move · enter convert · q back"
	}
	b.WriteString("\n" + dimStyle.Render(footer))
	return b.String()
}

func (m Model) viewHelp() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Help"))
	b.WriteString("\n")
	for _, line := range []string{
		"Converts GoPro GPR raw files (and plain DNG) to JPEG or PNG.",
		"",
		"j/k or arrows   move",
		"enter           select / descend / convert",
		"backspace       parent directory",
		"c               conversion settings (from file info)",
		"q / esc         back, quit from the main menu",
		"",
		"Batch Convert Directory converts every GPR/DNG file in the",
		"current browser directory using the default settings.",
	} {
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("press q to return"))
	return b.String()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func onOff(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
