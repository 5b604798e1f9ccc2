package sifetl

import "io"

// Row is a representation of a single row of columnar data,
// (a slice of a Partition), along with a reference to the
// Schema for that row. Values are nil when absent.
type Row interface {
	Schema() Schema                                      // Schema returns the schema for a row
	ToString() string                                    // ToString returns a string representation of this row
	Values() []interface{}                               // Values returns the values of this row, in column order
	IsNil(colName string) bool                           // IsNil returns true iff the given column value is nil in this row. If an error occurs, this function will return false.
	Get(colName string) (col interface{}, err error)     // Get returns the value of any column as an interface{}, if it exists
	GetBool(colName string) (col bool, err error)        // GetBool retrieves a single bool from the column with the given name
	GetInt64(colName string) (col int64, err error)      // GetInt64 retrieves a single int64 from the column with the given name
	GetFloat64(colName string) (col float64, err error)  // GetFloat64 retrieves a single float64 from the column with the given name
	GetVarString(colName string) (col string, err error) // GetVarString retrieves a single string from the column with the given name
}

// A Partition is a portion of a columnar dataset, consisting of multiple Rows.
type Partition interface {
	// ID retrieves the ID of this Partition
	ID() string
	// GetMaxRows retrieves the maximum number of rows in this Partition
	GetMaxRows() int
	// GetNumRows retrieves the number of rows in this Partition
	GetNumRows() int
	// GetSchema retrieves the Schema of the Rows in this Partition
	GetSchema() Schema
	// GetRow retrieves a specific row from this Partition
	GetRow(rowNum int) Row
	// ForEachRow iterates over Rows in a Partition
	ForEachRow(fn func(row Row) error) error
}

// A BuildablePartition can be built. Used in the implementation of Parsers
type BuildablePartition interface {
	Partition
	AppendRowData(values []interface{}) error // AppendRowData adds a Row to the end of this Partition, if it isn't full and if the Row fits within the schema
}

// PartitionIterator is a generalized interface for iterating over Partitions, regardless of where they come from
type PartitionIterator interface {
	HasNextPartition() bool
	NextPartition() (part Partition, err error)
	OnEnd(onEnd func())
	Close() // Close stops iteration early. End listeners fire at most once, whether from exhaustion or Close.
}

// A PartitionSerializer serializes and compresses partition data (and the inverse)
type PartitionSerializer interface {
	Compress(w io.Writer, part Partition) error               // Compress serializes and compresses partition data to a write stream
	Decompress(r io.Reader, schema Schema) (Partition, error) // Decompress decompresses and deserializes partition data from a read stream
}

// MalformedRecordCounter is implemented by PartitionIterators which track the malformed
// input records they dropped, nulled or failed on
type MalformedRecordCounter interface {
	NumMalformedRecords() int
}
