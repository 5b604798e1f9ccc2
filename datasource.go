package sifetl

import "io"

// PartitionLoader is a description of how to load specific Partitions of data from a particular DataSource.
// DataSources implement this interface to implement data-loading logic.
type PartitionLoader interface {
	// ToString describes this PartitionLoader, for logging
	ToString() string
	// Path returns the input this PartitionLoader reads
	Path() string
	// Load actually loads data, according to schema
	Load(parser DataSourceParser, schema Schema) (PartitionIterator, error)
	// InferSchema derives the schema of this input, folding it into prior
	InferSchema(parser DataSourceParser, prior Schema) (Schema, error)
}

// PartitionMap is an interface describing an iterator for PartitionLoaders.
// Returned by DataSource.Analyze(), a Session will iterate through
// PartitionLoaders and assign them to its workers.
type PartitionMap interface {
	HasNext() bool
	Next() PartitionLoader
}

// DataSource is a source of data which will be loaded into a DataFrame.
// It represents information about how to load data from the source as Partitions.
type DataSource interface {
	Analyze() (PartitionMap, error)
	Files() []string
}

// DataSourceParser is a tool which parses the raw data of one input into Partitions
type DataSourceParser interface {
	PartitionSize() int // PartitionSize returns the maximum size in rows of Partitions produced by this Parser
	// InferSchema reads one input and folds its schema into prior (which is nil for the first input)
	InferSchema(r io.Reader, prior Schema) (Schema, error)
	// Parse parses one input according to schema, producing Partitions
	Parse(r io.Reader, source DataSource, schema Schema, onIteratorEnd func()) (PartitionIterator, error)
}
