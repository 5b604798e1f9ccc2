// Package testing provides helpers for testing code which loads data through sifetl sessions.
package testing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/hpetrov29/sifetl/logging"
	"github.com/hpetrov29/sifetl/session"
	"github.com/stretchr/testify/require"
)

// testLogWriter forwards log records to the test log, so they are only shown for failing tests
type testLogWriter struct {
	t testing.TB
}

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// LocalSession starts an isolated local[2] Session which spills to a temporary
// directory, logs to the test log and is stopped when the test completes
func LocalSession(t testing.TB) *session.Session {
	t.Helper()
	return LocalSessionWithOptions(t, &session.Options{})
}

// LocalSessionWithOptions is LocalSession with specific engine tunables. TempDir is always replaced.
func LocalSessionWithOptions(t testing.TB, opts *session.Options) *session.Session {
	t.Helper()
	id, err := uuid.NewV4()
	require.Nil(t, err)
	opts = session.CloneOptions(opts)
	opts.TempDir = t.TempDir()
	b := &session.Builder{
		Master:  "local[2]",
		AppName: t.Name() + "-" + id.String(),
		Options: opts,
		Logger:  logging.New(testLogWriter{t: t}, logging.DebugLevel),
	}
	s, err := b.GetOrCreate()
	require.Nil(t, err)
	t.Cleanup(func() {
		require.Nil(t, s.Stop())
	})
	return s
}

// WriteFile writes a fixture file under dir, creating intermediate directories, and returns its path
func WriteFile(t testing.TB, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.Nil(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.Nil(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
