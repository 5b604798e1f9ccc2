// Package dsv parses delimiter-separated values (CSV by default) into Partitions.
package dsv

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/hpetrov29/sifetl"
	"github.com/hpetrov29/sifetl/schema"
)

// ParserConf configures a DSV Parser
type ParserConf struct {
	PartitionSize int              // The maximum number of rows per Partition. Defaults to 128.
	Header        bool             // Whether the first line of each file holds column names. Otherwise columns are named _c0, _c1, ...
	Delimiter     rune             // The delimiter separating columns in the file. Defaults to ,
	Comment       rune             // Lines beginning with the comment character are ignored. Cannot be equal to the Delimiter. Defaults to no comment character.
	NilValue      string           // A special string which represents nil values in the dataset. Empty fields are always nil.
	Mode          sifetl.ParseMode // How malformed rows are treated. Defaults to PERMISSIVE.
	InferSchema   bool             // Whether to infer column types from the data. Otherwise every column is a string.
}

// Parser produces partitions from DSV data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new DSV Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf.PartitionSize == 0 {
		conf.PartitionSize = 128
	}
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	if len(conf.Mode) == 0 {
		conf.Mode = sifetl.PermissiveMode
	}
	return &Parser{conf: conf}
}

// PartitionSize returns the maximum size in rows of Partitions produced by this Parser
func (p *Parser) PartitionSize() int {
	return p.conf.PartitionSize
}

func (p *Parser) newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = p.conf.Delimiter
	reader.Comment = p.conf.Comment
	reader.FieldsPerRecord = -1 // row width is checked against the schema instead
	return reader
}

// InferSchema derives column names (and types, if configured to) from DSV data. Column names
// always come from the first input; later inputs only contribute to type inference.
func (p *Parser) InferSchema(r io.Reader, prior sifetl.Schema) (sifetl.Schema, error) {
	hasPrior := prior != nil && prior.NumColumns() > 0
	if hasPrior && !p.conf.InferSchema {
		return prior, nil
	}
	reader := p.newReader(r)
	var names []string
	var types []sifetl.ColumnType
	var firstData []string
	if hasPrior {
		names = prior.ColumnNames()
		types = prior.ColumnTypes()
		if p.conf.Header {
			if _, err := reader.Read(); err != nil && err != io.EOF && !isParseError(err) {
				return nil, err
			}
		}
	} else {
		first, err := reader.Read()
		if err == io.EOF {
			return schema.CreateSchema(), nil
		} else if err != nil {
			return nil, err
		}
		names = columnNames(first, p.conf.Header)
		types = make([]sifetl.ColumnType, len(names))
		if !p.conf.Header {
			firstData = first
		}
	}
	if p.conf.InferSchema {
		observed := make([]sifetl.ColumnType, len(names))
		if firstData != nil {
			p.observeRecord(firstData, observed)
		}
		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			} else if isParseError(err) {
				continue
			} else if err != nil {
				return nil, err
			}
			if len(record) == len(names) {
				p.observeRecord(record, observed)
			}
		}
		for i := range types {
			if hasPrior {
				if observed[i] != nil {
					types[i] = sifetl.WidenColumnTypes(types[i], observed[i])
				}
			} else {
				types[i] = observed[i]
			}
		}
	}
	for i := range types {
		if types[i] == nil || !p.conf.InferSchema {
			types[i] = &sifetl.VarStringColumnType{}
		}
	}
	return schema.FromColumns(names, types)
}

func (p *Parser) observeRecord(record []string, observed []sifetl.ColumnType) {
	for i, val := range record {
		if p.isNil(val) {
			continue
		}
		observed[i] = sifetl.WidenColumnTypes(observed[i], inferType(val))
	}
}

func (p *Parser) isNil(val string) bool {
	return len(val) == 0 || (len(p.conf.NilValue) > 0 && val == p.conf.NilValue)
}

func columnNames(first []string, header bool) []string {
	names := make([]string, len(first))
	for i := range first {
		if header && len(first[i]) > 0 {
			names[i] = first[i]
		} else {
			names[i] = fmt.Sprintf("_c%d", i)
		}
	}
	return names
}

// Parse parses DSV data to produce Partitions
func (p *Parser) Parse(r io.Reader, source sifetl.DataSource, schema sifetl.Schema, onIteratorEnd func()) (sifetl.PartitionIterator, error) {
	// start parsing by creating a reader
	reader := p.newReader(r)

	// ignore the header line, if configured to do so
	if p.conf.Header {
		_, err := reader.Read()
		if err != nil && err != io.EOF && !isParseError(err) {
			return nil, err
		}
	}

	iterator := &dsvFilePartitionIterator{
		parser:       p,
		reader:       reader,
		hasNext:      true,
		source:       source,
		schema:       schema,
		endListeners: []func(){},
	}
	if onIteratorEnd != nil {
		iterator.OnEnd(onIteratorEnd)
	}
	return iterator, nil
}
