//go:build mage

package main

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// packageStats holds line counts for one directory of the module.
type packageStats struct {
	Dir       string `json:"dir"`
	Prod      int    `json:"go_loc_prod"`
	Test      int    `json:"go_loc_test"`
	Templates int    `json:"template_loc,omitempty"`
}

type statsReport struct {
	Packages  []packageStats `json:"packages"`
	Prod      int            `json:"go_loc_prod"`
	Test      int            `json:"go_loc_test"`
	Templates int            `json:"template_loc"`
	DocWords  int            `json:"doc_wc"`
}

// skipDir reports directories that hold no project code.
func skipDir(path string) bool {
	base := filepath.Base(path)
	return path != "." && (strings.HasPrefix(base, "_") || strings.HasPrefix(base, ".") ||
		base == "vendor" || base == binaryDir || base == "magefiles")
}

// Stats prints Go and template line counts per package, plus the word count
// of the top-level markdown documents, as indented JSON.
func Stats() error {
	byDir := map[string]*packageStats{}
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}

		dir := filepath.Dir(path)
		if filepath.Base(dir) == "templates" {
			dir = filepath.Dir(dir)
		}
		ps := byDir[dir]
		if ps == nil {
			ps = &packageStats{Dir: dir}
			byDir[dir] = ps
		}

		n, err := lineCount(path)
		if err != nil {
			return err
		}
		switch {
		case strings.HasSuffix(path, "_test.go"):
			ps.Test += n
		case strings.HasSuffix(path, ".go"):
			ps.Prod += n
		case strings.HasSuffix(path, ".html"):
			ps.Templates += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	var report statsReport
	for _, ps := range byDir {
		if ps.Prod+ps.Test+ps.Templates == 0 {
			continue
		}
		report.Packages = append(report.Packages, *ps)
		report.Prod += ps.Prod
		report.Test += ps.Test
		report.Templates += ps.Templates
	}
	sort.Slice(report.Packages, func(i, j int) bool {
		return report.Packages[i].Dir < report.Packages[j].Dir
	})

	docs, _ := filepath.Glob("*.md")
	for _, path := range docs {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		report.DocWords += len(strings.Fields(string(data)))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func lineCount(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, nil
	}
	n := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		n++
	}
	return n, nil
}
