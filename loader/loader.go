// Package loader resolves an input path into a File Set and loads it into a DataFrame,
// choosing how to parse the files from their extension.
package loader

import (
	"context"

	"github.com/hpetrov29/sifetl"
	"github.com/hpetrov29/sifetl/dataframe"
	"github.com/hpetrov29/sifetl/errors"
	"github.com/hpetrov29/sifetl/session"
)

// ImportDataFromPath loads the file, or the files under the directory, at path. For a
// directory, only files whose full path matches the (unanchored) regular expression
// pattern are loaded, unless pattern is empty. Failures are returned as one of
// *errors.PathNotFoundError, *errors.ConfigError, *errors.MixedFormatsError,
// *errors.UnsupportedFormatError or *errors.EngineError.
func ImportDataFromPath(ctx context.Context, sess *session.Session, path string, pattern string) (*dataframe.DataFrame, error) {
	fileSet, err := Resolve(path, pattern)
	if err != nil {
		return nil, err
	}
	sess.Logger().Debug("resolved path", "path", path, "pattern", pattern, "format", fileSet.Format, "files", len(fileSet.Files))
	return CreateDataFrame(ctx, sess, fileSet)
}

// CreateDataFrame loads a FileSet according to its Format Tag: csv files have a header row
// and malformed rows are dropped, json files hold one object per line and malformed records
// become null-filled rows, and parquet files are read as-is
func CreateDataFrame(ctx context.Context, sess *session.Session, fileSet *FileSet) (*dataframe.DataFrame, error) {
	reader := sess.Read().Format(fileSet.Format)
	switch fileSet.Format {
	case session.CSVFormat:
		reader.Option(session.HeaderOption, "true").Option(session.ModeOption, string(sifetl.DropMalformedMode))
	case session.JSONFormat:
		reader.Option(session.ModeOption, string(sifetl.PermissiveMode))
	case session.ParquetFormat:
	default:
		return nil, &errors.UnsupportedFormatError{Path: fileSet.Path, Format: fileSet.Format}
	}
	return reader.Load(ctx, fileSet.Files...)
}
