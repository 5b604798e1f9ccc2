package loader

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/hpetrov29/sifetl/errors"
)

// FileSet is the ordered list of files resolved from an input path, and the Format Tag they share
type FileSet struct {
	Path   string
	Files  []string
	Format string
}

// ListDirectory recursively lists every non-directory entry under dir, in lexical order.
// Symbolic links are not followed. A link to a directory is treated as a directory and
// skipped, while links to files and dangling links are listed.
func ListDirectory(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// FilterFiles retains the files whose full path contains a match for pattern.
// An empty pattern retains every file.
func FilterFiles(files []string, pattern string) ([]string, error) {
	if len(pattern) == 0 {
		return files, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &errors.ConfigError{Key: "pattern", Err: err}
	}
	var retained []string
	for _, f := range files {
		if re.MatchString(f) {
			retained = append(retained, f)
		}
	}
	return retained, nil
}

// FileExtension returns the extension of a file name without its leading dot, or ""
// if it has none. Leading dots of the base name do not start an extension, so
// ".profile" has none. The extension is returned as-is: "x.CSV" yields "CSV".
func FileExtension(path string) string {
	base := strings.TrimLeft(filepath.Base(path), ".")
	ext := filepath.Ext(base)
	if len(ext) == 0 {
		return ""
	}
	return ext[1:]
}

// UniqueExtension returns the extension shared by every file, and false if
// files is empty or spans more than one extension. Extensions are returned sorted.
func UniqueExtension(files []string) (string, []string, bool) {
	seen := make(map[string]struct{})
	for _, f := range files {
		seen[FileExtension(f)] = struct{}{}
	}
	exts := make([]string, 0, len(seen))
	for ext := range seen {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	if len(exts) != 1 {
		return "", exts, false
	}
	return exts[0], exts, true
}

// Resolve turns an input path into a FileSet. A directory is walked recursively and its
// files filtered by pattern, and they must all share one extension. A regular file is a
// FileSet of its own, and pattern is ignored. Anything else cannot be loaded.
func Resolve(path string, pattern string) (*FileSet, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &errors.PathNotFoundError{Path: path}
	} else if err != nil {
		return nil, &errors.EngineError{Op: "resolve " + path, Err: err}
	}
	switch {
	case info.IsDir():
		return resolveDirectory(path, pattern)
	case info.Mode().IsRegular():
		return &FileSet{Path: path, Files: []string{path}, Format: FileExtension(path)}, nil
	default:
		return nil, &errors.UnsupportedFormatError{Path: path}
	}
}

func resolveDirectory(dir string, pattern string) (*FileSet, error) {
	files, err := ListDirectory(dir)
	if err != nil {
		return nil, &errors.EngineError{Op: "list " + dir, Err: err}
	}
	files, err = FilterFiles(files, pattern)
	if err != nil {
		return nil, err
	}
	format, exts, ok := UniqueExtension(files)
	if !ok {
		return nil, &errors.MixedFormatsError{Path: dir, Extensions: exts}
	}
	return &FileSet{Path: dir, Files: files, Format: format}, nil
}
