// Package file provides a DataSource which reads data from an explicit set of files on disk.
// Files are assigned to workers in their entirety, so it is favourable if individual
// files represent roughly equal-sized divisions of data.
package file

import (
	"fmt"

	"github.com/hpetrov29/sifetl"
	"github.com/hpetrov29/sifetl/logging"
)

// DataSource is a set of files containing data which will be loaded into a DataFrame
type DataSource struct {
	files  []string
	logger *logging.Logger
}

// CreateDataSource is a factory for DataSources. A nil logger discards everything.
func CreateDataSource(files []string, logger *logging.Logger) *DataSource {
	toRead := make([]string, len(files))
	copy(toRead, files)
	if logger == nil {
		logger = logging.Discard()
	}
	return &DataSource{files: toRead, logger: logger}
}

// Analyze returns a PartitionMap, describing how the source files will be divided into Partitions
func (fs *DataSource) Analyze() (sifetl.PartitionMap, error) {
	if len(fs.files) == 0 {
		return nil, fmt.Errorf("file set is empty")
	}
	toRead := make([]string, len(fs.files))
	copy(toRead, fs.files)
	return &PartitionMap{
		files:  toRead,
		source: fs,
	}, nil
}

// Files returns the files read by this DataSource, in order
func (fs *DataSource) Files() []string {
	files := make([]string, len(fs.files))
	copy(files, fs.files)
	return files
}
