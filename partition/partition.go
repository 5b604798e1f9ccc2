// Package partition provides the in-memory Partition and Row implementations used by sifetl's
// parsers, along with a serializer which compresses Partitions for storage outside of memory.
package partition

import (
	"fmt"
	"log"

	"github.com/gofrs/uuid"
	"github.com/hpetrov29/sifetl"
	"github.com/hpetrov29/sifetl/errors"
)

const defaultCapacity = 16

// partitionImpl is sifetl's internal implementation of Partition
type partitionImpl struct {
	id      string
	maxRows int
	rows    [][]interface{}
	schema  sifetl.Schema
}

func createPartitionImpl(id string, maxRows int, schema sifetl.Schema) *partitionImpl {
	initialCapacity := defaultCapacity
	if initialCapacity > maxRows {
		initialCapacity = maxRows
	}
	return &partitionImpl{
		id:      id,
		maxRows: maxRows,
		rows:    make([][]interface{}, 0, initialCapacity),
		schema:  schema,
	}
}

// CreateBuildablePartition creates a new, empty Partition which can hold up to maxRows Rows respecting schema
func CreateBuildablePartition(maxRows int, schema sifetl.Schema) sifetl.BuildablePartition {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID for Partition: %v", err)
	}
	return createPartitionImpl(id.String(), maxRows, schema)
}

// ID retrieves the ID of this Partition
func (p *partitionImpl) ID() string {
	return p.id
}

// GetMaxRows retrieves the maximum number of rows in this Partition
func (p *partitionImpl) GetMaxRows() int {
	return p.maxRows
}

// GetNumRows retrieves the number of rows in this Partition
func (p *partitionImpl) GetNumRows() int {
	return len(p.rows)
}

// GetSchema retrieves the Schema of the Rows in this Partition
func (p *partitionImpl) GetSchema() sifetl.Schema {
	return p.schema
}

// GetRow retrieves a specific row from this Partition
func (p *partitionImpl) GetRow(rowNum int) sifetl.Row {
	return &rowImpl{values: p.rows[rowNum], schema: p.schema}
}

// ForEachRow iterates over Rows in a Partition
func (p *partitionImpl) ForEachRow(fn func(row sifetl.Row) error) error {
	row := &rowImpl{schema: p.schema}
	for i := range p.rows {
		row.values = p.rows[i]
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

// CanInsertRowData checks if a Row can be inserted into this Partition
func (p *partitionImpl) CanInsertRowData(values []interface{}) error {
	if len(values) != p.schema.NumColumns() {
		return errors.IncompatibleRowError{}
	} else if len(p.rows) >= p.maxRows {
		return errors.PartitionFullError{}
	}
	return nil
}

// AppendRowData adds a Row to the end of this Partition, if it isn't full and if the Row fits within the schema.
// The Partition takes ownership of values.
func (p *partitionImpl) AppendRowData(values []interface{}) error {
	if err := p.CanInsertRowData(values); err != nil {
		return err
	}
	p.rows = append(p.rows, values)
	return nil
}

// String returns a short description of this Partition
func (p *partitionImpl) String() string {
	return fmt.Sprintf("Partition %s (%d/%d rows)", p.id, len(p.rows), p.maxRows)
}
