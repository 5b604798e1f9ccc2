package errors

import (
	"fmt"
	"strings"
)

// ConfigError occurs when configuration (a config document, a master string,
// a log level, a name pattern, a reader option) cannot be used
type ConfigError struct {
	Key string
	Err error
}

// Error returns a textual representation of this ConfigError
func (e *ConfigError) Error() string {
	if len(e.Key) == 0 {
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid configuration for %s: %v", e.Key, e.Err)
}

// Unwrap returns the underlying cause of this ConfigError
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// PathNotFoundError occurs when an input path does not exist
type PathNotFoundError struct{ Path string }

// Error returns a textual representation of this PathNotFoundError
func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path %s does not exist", e.Path)
}

// UnsupportedFormatError occurs when no parser exists for a Format Tag, or when
// an input path is neither a regular file nor a directory
type UnsupportedFormatError struct {
	Path   string
	Format string
}

// Error returns a textual representation of this UnsupportedFormatError
func (e *UnsupportedFormatError) Error() string {
	if len(e.Format) == 0 {
		return fmt.Sprintf("%s has no recognizable data format", e.Path)
	}
	return fmt.Sprintf("%s: invalid data format %q", e.Path, e.Format)
}

// MixedFormatsError occurs when a directory yields no files, or files with more than one extension
type MixedFormatsError struct {
	Path       string
	Extensions []string
}

// Error returns a textual representation of this MixedFormatsError
func (e *MixedFormatsError) Error() string {
	if len(e.Extensions) == 0 {
		return fmt.Sprintf("cannot create a single structure from %s: no files found", e.Path)
	}
	return fmt.Sprintf("cannot create a single structure from varying file types in %s: [%s]", e.Path, strings.Join(e.Extensions, ", "))
}

// EngineError occurs when the engine fails to start a session or to load a File Set
type EngineError struct {
	Op  string
	Err error
}

// Error returns a textual representation of this EngineError
func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause of this EngineError
func (e *EngineError) Unwrap() error {
	return e.Err
}
