// Package inbox finds statement exports waiting in a directory and files them away once
// they have been imported.
package inbox

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ProcessedDir is the subdirectory imported statements are moved to.
const ProcessedDir = "processed"

// File describes a statement export in the inbox.
type File struct {
	Name string
	Path string
	Size int64
}

// Scan returns the .csv files directly inside dir, sorted by name. A missing directory
// is an empty inbox.
func Scan(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading inbox: %w", err)
	}

	var files []File
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, File{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	slices.SortFunc(files, func(a, b File) int { return strings.Compare(a.Name, b.Name) })
	return files, nil
}

// MarkProcessed moves dir/name to dir/processed/name. An existing file of the same name
// in processed/ is never overwritten.
func MarkProcessed(dir, name string) (string, error) {
	if name != filepath.Base(name) {
		return "", fmt.Errorf("invalid inbox file name %q", name)
	}
	src := filepath.Join(dir, name)
	dstDir := filepath.Join(dir, ProcessedDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return "", fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, name)
	if _, err := os.Stat(dst); err == nil {
		return "", fmt.Errorf("moving %s to processed: %w", name, fs.ErrExist)
	}
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("moving %s to processed: %w", name, err)
	}
	return dst, nil
}
