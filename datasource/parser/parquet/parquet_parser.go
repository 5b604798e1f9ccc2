// Package parquet parses flat Apache Parquet files into Partitions, using
// github.com/segmentio/parquet-go. Nested and repeated columns are not supported.
package parquet

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"

	"github.com/hpetrov29/sifetl"
	"github.com/hpetrov29/sifetl/schema"
	"github.com/segmentio/parquet-go"
)

// ParserConf configures a Parquet Parser
type ParserConf struct {
	PartitionSize int // The maximum number of rows per Partition. Defaults to 128.
}

// Parser produces partitions from Parquet data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new Parquet Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf.PartitionSize == 0 {
		conf.PartitionSize = 128
	}
	return &Parser{conf: conf}
}

// PartitionSize returns the maximum size in rows of Partitions produced by this Parser
func (p *Parser) PartitionSize() int {
	return p.conf.PartitionSize
}

// readerAtSize returns r as an io.ReaderAt along with its size, when r supports random access
func readerAtSize(r io.Reader) (io.ReaderAt, int64, bool) {
	ra, ok := r.(io.ReaderAt)
	if !ok {
		return nil, 0, false
	}
	switch sized := r.(type) {
	case interface{ Stat() (fs.FileInfo, error) }:
		info, err := sized.Stat()
		if err != nil || !info.Mode().IsRegular() {
			return nil, 0, false
		}
		return ra, info.Size(), true
	case interface{ Size() int64 }:
		return ra, sized.Size(), true
	}
	return nil, 0, false
}

// openFile reads a parquet footer before any row. Files and other random-access
// readers are opened in place; anything else is buffered in memory first.
func openFile(r io.Reader) (*parquet.File, error) {
	ra, size, ok := readerAtSize(r)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		ra, size = bytes.NewReader(data), int64(len(data))
	}
	pqFile, err := parquet.OpenFile(ra, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	return pqFile, nil
}

// fileSchema maps the leaf columns of a flat parquet schema to a Schema
func fileSchema(pqSchema *parquet.Schema) (sifetl.Schema, error) {
	fields := pqSchema.Fields()
	names := make([]string, len(fields))
	types := make([]sifetl.ColumnType, len(fields))
	for i, field := range fields {
		if !field.Leaf() || field.Repeated() {
			return nil, fmt.Errorf("parquet column %s is nested or repeated, which is not supported", field.Name())
		}
		names[i] = field.Name()
		switch field.Type().Kind() {
		case parquet.Boolean:
			types[i] = &sifetl.BoolColumnType{}
		case parquet.Int32, parquet.Int64:
			types[i] = &sifetl.Int64ColumnType{}
		case parquet.Float, parquet.Double:
			types[i] = &sifetl.Float64ColumnType{}
		default:
			types[i] = &sifetl.VarStringColumnType{}
		}
	}
	return schema.FromColumns(names, types)
}

// InferSchema reads the schema from a parquet file footer, folding it into prior
func (p *Parser) InferSchema(r io.Reader, prior sifetl.Schema) (sifetl.Schema, error) {
	pqFile, err := openFile(r)
	if err != nil {
		return nil, err
	}
	current, err := fileSchema(pqFile.Schema())
	if err != nil {
		return nil, err
	}
	if prior == nil {
		return current, nil
	}
	return schema.Merge(prior, current), nil
}

// Parse parses Parquet data to produce Partitions
func (p *Parser) Parse(r io.Reader, source sifetl.DataSource, schema sifetl.Schema, onIteratorEnd func()) (sifetl.PartitionIterator, error) {
	pqFile, err := openFile(r)
	if err != nil {
		return nil, err
	}
	current, err := fileSchema(pqFile.Schema())
	if err != nil {
		return nil, err
	}
	// position of each file column within the target schema
	targets := make([]int, current.NumColumns())
	for i, name := range current.ColumnNames() {
		offset, err := schema.GetOffset(name)
		if err != nil {
			return nil, err
		}
		targets[i] = offset.Index()
	}
	iterator := &parquetFilePartitionIterator{
		parser:       p,
		reader:       parquet.NewReader(pqFile),
		targets:      targets,
		hasNext:      true,
		source:       source,
		schema:       schema,
		buffer:       make([]parquet.Row, p.conf.PartitionSize),
		endListeners: []func(){},
	}
	if onIteratorEnd != nil {
		iterator.OnEnd(onIteratorEnd)
	}
	return iterator, nil
}
