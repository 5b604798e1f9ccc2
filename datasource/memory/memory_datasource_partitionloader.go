package memory

import (
	"bytes"
	"fmt"

	"github.com/hpetrov29/sifetl"
)

// PartitionLoader is capable of loading partitions of data from a buffer
type PartitionLoader struct {
	idx    int
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("Memory loader index: %d", pl.idx)
}

// Path returns a synthetic name for the buffer read by this PartitionLoader
func (pl *PartitionLoader) Path() string {
	return fmt.Sprintf("memory:%d", pl.idx)
}

// Load is capable of loading partitions of data from a buffer
func (pl *PartitionLoader) Load(parser sifetl.DataSourceParser, schema sifetl.Schema) (sifetl.PartitionIterator, error) {
	r := bytes.NewReader(pl.source.data[pl.idx])
	pi, err := parser.Parse(r, pl.source, schema, nil)
	if err != nil {
		return nil, err
	}
	return pi, nil
}

// InferSchema derives the schema of the buffer, folding it into prior
func (pl *PartitionLoader) InferSchema(parser sifetl.DataSourceParser, prior sifetl.Schema) (sifetl.Schema, error) {
	return parser.InferSchema(bytes.NewReader(pl.source.data[pl.idx]), prior)
}
