package file

import (
	"fmt"
	"os"

	"github.com/hpetrov29/sifetl"
)

// PartitionLoader is capable of loading partitions of data from a file
type PartitionLoader struct {
	path   string
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("File loader filename: %s", pl.path)
}

// Path returns the file read by this PartitionLoader
func (pl *PartitionLoader) Path() string {
	return pl.path
}

// Load is capable of loading partitions of data from a file
func (pl *PartitionLoader) Load(parser sifetl.DataSourceParser, schema sifetl.Schema) (sifetl.PartitionIterator, error) {
	f, err := os.Open(pl.path)
	if err != nil {
		return nil, err
	}
	pi, err := parser.Parse(f, pl.source, schema, func() {
		err := f.Close()
		if err != nil {
			pl.source.logger.Warn("couldn't close file", "path", pl.path, "error", err)
		}
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", pl.path, err)
	}
	return pi, nil
}

// InferSchema reads the file to derive its schema, folding it into prior
func (pl *PartitionLoader) InferSchema(parser sifetl.DataSourceParser, prior sifetl.Schema) (sifetl.Schema, error) {
	f, err := os.Open(pl.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	schema, err := parser.InferSchema(f, prior)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pl.path, err)
	}
	return schema, nil
}
