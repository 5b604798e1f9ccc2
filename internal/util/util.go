// Package util contains helpers for running work which may fail, or panic, per file
package util

import (
	"fmt"
	"runtime"
	"strings"
)

// SafeFileOperation runs an operation over a single file such that panics are recovered
// and nice error messages, naming the file, are constructed
func SafeFileOperation(path string, op func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if anErr, ok := r.(error); ok {
				err = fmt.Errorf("%s: panic: %w\n%s", path, anErr, GetTrace())
			} else {
				err = fmt.Errorf("%s: panic: %v\n%s", path, r, GetTrace())
			}
		}
	}()
	err = op()
	return
}

// GetTrace produces the string representation of a stack trace
func GetTrace() string {
	var name, file string
	var line int
	var pc [16]uintptr
	var res strings.Builder
	n := runtime.Callers(3, pc[:])
	for _, pc := range pc[:n] {
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		file, line = fn.FileLine(pc)
		name = fn.Name()
		if !strings.HasPrefix(name, "runtime.") {
			fmt.Fprintf(&res, "%s\n\t%s:%d\n", name, file, line)
		}
	}
	return res.String()
}

// FormatMultiError formats multierrors for logging, one error per line
func FormatMultiError(merrs []error) string {
	if len(merrs) == 1 {
		return merrs[0].Error()
	}
	var res strings.Builder
	fmt.Fprintf(&res, "%d errors occurred:", len(merrs))
	for _, err := range merrs {
		fmt.Fprintf(&res, "\n\t* %v", err)
	}
	return res.String()
}
