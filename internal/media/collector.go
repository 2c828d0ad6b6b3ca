package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CollectFiles resolves the input path into an ordered list of files to
// process. It supports direct file paths, directories, and glob
// patterns; multiple inputs may be separated by ';' or newlines.
func CollectFiles(input string, recursive bool) ([]string, error) {
	inputs := splitInputs(input)
	if len(inputs) == 0 {
		return nil, fmt.Errorf("input path is empty")
	}

	unique := make(map[string]struct{})
	var results []string

	addFile := func(path string) {
		if _, exists := unique[path]; !exists {
			unique[path] = struct{}{}
			results = append(results, path)
		}
	}

	for _, in := range inputs {
		matches, err := expandInput(in)
		if err != nil {
			return nil, err
		}

		for _, candidate := range matches {
			info, err := os.Stat(candidate)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", candidate, err)
			}
			if info.IsDir() {
				if err := walkDir(candidate, recursive, addFile); err != nil {
					return nil, err
				}
				continue
			}
			addFile(candidate)
		}
	}

	sort.Strings(results)
	return results, nil
}

// ListDirectory returns the entries of a single directory for the file
// browser: subdirectories first, then supported raw files, both sorted.
func ListDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var dirs, files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			dirs = append(dirs, path)
			continue
		}
		if entry.Type().IsRegular() && SupportedRaw(path) {
			files = append(files, path)
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)
	return append(dirs, files...), nil
}

func splitInputs(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == '\n' || r == '\r'
	})
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func expandInput(input string) ([]string, error) {
	if strings.ContainsAny(input, "*?[") {
		matches, err := filepath.Glob(input)
		if err != nil {
			return nil, fmt.Errorf("expand glob: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files matched pattern %q", input)
		}
		return matches, nil
	}
	return []string{input}, nil
}

func walkDir(root string, recursive bool, add func(string)) error {
	if recursive {
		return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() {
				add(path)
			}
			return nil
		})
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", root, err)
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			add(filepath.Join(root, entry.Name()))
		}
	}
	return nil
}
