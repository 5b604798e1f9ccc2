package util

import (
	goerrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSafeFileOperation(t *testing.T) {
	require.Nil(t, SafeFileOperation("a.csv", func() error { return nil }))

	err := SafeFileOperation("a.csv", func() error { return io.ErrUnexpectedEOF })
	require.Equal(t, io.ErrUnexpectedEOF, err)

	err = SafeFileOperation("b.parquet", func() error { panic(io.ErrShortBuffer) })
	require.NotNil(t, err)
	require.True(t, goerrors.Is(err, io.ErrShortBuffer))
	require.Contains(t, err.Error(), "b.parquet: panic")

	err = SafeFileOperation("c.json", func() error { panic("boom") })
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "c.json: panic: boom")
}

func TestFormatMultiError(t *testing.T) {
	require.Equal(t, "one", FormatMultiError([]error{fmt.Errorf("one")}))
	require.Equal(t, "2 errors occurred:\n\t* one\n\t* two", FormatMultiError([]error{fmt.Errorf("one"), fmt.Errorf("two")}))
}
