// Package memory provides a DataSource over in-memory buffers, each of which is treated like a file.
package memory

import (
	"fmt"

	"github.com/hpetrov29/sifetl"
)

// DataSource is a set of buffers containing data which will be loaded into a DataFrame
type DataSource struct {
	data [][]byte
}

// CreateDataSource is a factory for DataSources
func CreateDataSource(data [][]byte) *DataSource {
	return &DataSource{data}
}

// Analyze returns a PartitionMap, describing how the source data will be divided into Partitions
func (fs *DataSource) Analyze() (sifetl.PartitionMap, error) {
	if len(fs.data) == 0 {
		return nil, fmt.Errorf("memory data source is empty")
	}
	return &PartitionMap{
		source: fs,
	}, nil
}

// Files returns a synthetic name for each buffer
func (fs *DataSource) Files() []string {
	names := make([]string, len(fs.data))
	for i := range fs.data {
		names[i] = fmt.Sprintf("memory:%d", i)
	}
	return names
}
