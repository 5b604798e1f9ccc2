package errors

import (
	goerrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypedErrorsAreDistinguishable(t *testing.T) {
	var err error = fmt.Errorf("loading: %w", &MixedFormatsError{Path: "data", Extensions: []string{"csv", "json"}})
	var mixed *MixedFormatsError
	require.True(t, goerrors.As(err, &mixed))
	require.Equal(t, []string{"csv", "json"}, mixed.Extensions)
	var notFound *PathNotFoundError
	require.False(t, goerrors.As(err, &notFound))
	require.Contains(t, err.Error(), "varying file types")
}

func TestMixedFormatsErrorNoFiles(t *testing.T) {
	err := &MixedFormatsError{Path: "data"}
	require.Contains(t, err.Error(), "no files found")
}

func TestEngineErrorUnwraps(t *testing.T) {
	err := &EngineError{Op: "load", Err: fs.ErrPermission}
	require.True(t, goerrors.Is(err, fs.ErrPermission))
	cerr := &ConfigError{Key: "log.level", Err: fs.ErrInvalid}
	require.True(t, goerrors.Is(cerr, fs.ErrInvalid))
	require.Equal(t, "invalid configuration for log.level: invalid argument", cerr.Error())
}

func TestUnsupportedFormatError(t *testing.T) {
	require.Equal(t, `x.CSV: invalid data format "CSV"`, (&UnsupportedFormatError{Path: "x.CSV", Format: "CSV"}).Error())
	require.Equal(t, "x has no recognizable data format", (&UnsupportedFormatError{Path: "x"}).Error())
}
