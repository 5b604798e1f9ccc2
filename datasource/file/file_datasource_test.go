package file

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hpetrov29/sifetl/datasource"
	"github.com/hpetrov29/sifetl/datasource/parser/dsv"
	"github.com/hpetrov29/sifetl/logging"
	"github.com/stretchr/testify/require"
)

func TestFileDataSource(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i, content := range []string{"fruit,qty\napple,3\n", "fruit,qty\npear,5\nplum,1\n"} {
		path := filepath.Join(dir, []string{"a.csv", "b.csv"}[i])
		require.Nil(t, os.WriteFile(path, []byte(content), 0644))
		files = append(files, path)
	}
	source := CreateDataSource(files, nil)
	require.Equal(t, files, source.Files())

	pm, err := source.Analyze()
	require.Nil(t, err)
	var paths []string
	for pm.HasNext() {
		paths = append(paths, pm.Next().Path())
	}
	require.Equal(t, files, paths)

	parser := dsv.CreateParser(&dsv.ParserConf{Header: true})
	schema, parts, err := datasource.ReadAll(source, parser)
	require.Nil(t, err)
	require.Equal(t, []string{"fruit", "qty"}, schema.ColumnNames())
	rows := 0
	for _, part := range parts {
		rows += part.GetNumRows()
	}
	require.Equal(t, 3, rows)
}

func TestFileDataSourceErrors(t *testing.T) {
	_, err := CreateDataSource(nil, nil).Analyze()
	require.NotNil(t, err)

	parser := dsv.CreateParser(&dsv.ParserConf{})
	_, _, err = datasource.ReadAll(CreateDataSource([]string{filepath.Join(t.TempDir(), "missing.csv")}, nil), parser)
	require.True(t, os.IsNotExist(err))
}

func TestFileDataSourceLogger(t *testing.T) {
	require.Equal(t, logging.OffLevel, CreateDataSource(nil, nil).logger.Level())
	logger := logging.New(io.Discard, logging.WarnLevel)
	require.Same(t, logger, CreateDataSource(nil, logger).logger)
}
