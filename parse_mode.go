package sifetl

import (
	"fmt"
	"strings"
)

// ParseMode determines how a DataSourceParser treats malformed records
type ParseMode string

const (
	// PermissiveMode keeps malformed records, nulling the values which could not be parsed
	PermissiveMode ParseMode = "PERMISSIVE"
	// DropMalformedMode silently drops malformed records
	DropMalformedMode ParseMode = "DROPMALFORMED"
	// FailFastMode aborts parsing at the first malformed record
	FailFastMode ParseMode = "FAILFAST"
)

// ParseParseMode parses a (case-insensitive) mode name
func ParseParseMode(mode string) (ParseMode, error) {
	switch m := ParseMode(strings.ToUpper(mode)); m {
	case PermissiveMode, DropMalformedMode, FailFastMode:
		return m, nil
	default:
		return "", fmt.Errorf("%q is not a known parse mode", mode)
	}
}
