// Package datasource contains helpers shared by DataSource and Parser implementations.
package datasource

import (
	"github.com/hpetrov29/sifetl"
)

// InferSchema folds the schema of every input of source, in order
func InferSchema(source sifetl.DataSource, parser sifetl.DataSourceParser) (sifetl.Schema, error) {
	pm, err := source.Analyze()
	if err != nil {
		return nil, err
	}
	var schema sifetl.Schema
	for pm.HasNext() {
		schema, err = pm.Next().InferSchema(parser, schema)
		if err != nil {
			return nil, err
		}
	}
	return schema, nil
}

// ReadAll sequentially infers a schema for source and loads all of its Partitions.
// Sessions load concurrently instead; this is useful for DataSources and Parsers in isolation.
func ReadAll(source sifetl.DataSource, parser sifetl.DataSourceParser) (sifetl.Schema, []sifetl.Partition, error) {
	schema, err := InferSchema(source, parser)
	if err != nil {
		return nil, nil, err
	}
	pm, err := source.Analyze()
	if err != nil {
		return nil, nil, err
	}
	var parts []sifetl.Partition
	for pm.HasNext() {
		loaded, err := LoadPartitions(pm.Next(), parser, schema)
		if err != nil {
			return nil, nil, err
		}
		parts = append(parts, loaded...)
	}
	return schema, parts, nil
}

// LoadPartitions drains the PartitionIterator of a single PartitionLoader, discarding empty Partitions
func LoadPartitions(pl sifetl.PartitionLoader, parser sifetl.DataSourceParser, schema sifetl.Schema) ([]sifetl.Partition, error) {
	ps, err := pl.Load(parser, schema)
	if err != nil {
		return nil, err
	}
	defer ps.Close()
	var parts []sifetl.Partition
	for ps.HasNextPartition() {
		part, err := ps.NextPartition()
		if err != nil {
			return nil, err
		}
		if part.GetNumRows() > 0 {
			parts = append(parts, part)
		}
	}
	return parts, nil
}
