package jsonl

import (
	"io"
	"sort"

	"github.com/hpetrov29/sifetl"
	"github.com/hpetrov29/sifetl/schema"
	"github.com/tidwall/gjson"
)

// ParserConf configures a JSONL Parser, suitable for JSON lines data
type ParserConf struct {
	PartitionSize int              // The maximum number of rows per Partition. Defaults to 128.
	Mode          sifetl.ParseMode // How malformed records are treated. Defaults to PERMISSIVE.
}

// Parser produces partitions from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser. The schema is inferred from the records themselves.
func CreateParser(conf *ParserConf) *Parser {
	if conf.PartitionSize == 0 {
		conf.PartitionSize = 128
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

// InferSchema scans every record, producing the union of their top-level keys in
// alphabetical order, folded into prior. Malformed records do not contribute.
func (p *Parser) InferSchema(r io.Reader, prior sifetl.Schema) (sifetl.Schema, error) {
	lines := newLineReader(r)
	observed := make(map[string]sifetl.ColumnType)
	for {
		line, ok, err := lines.next()
		if err != nil {
			return nil, err
		} else if !ok {
			break
		}
		record, ok := parseRecord(line)
		if !ok {
			continue
		}
		record.ForEach(func(key, value gjson.Result) bool {
			name := key.String()
			observed[name] = sifetl.WidenColumnTypes(observed[name], inferType(value))
			return true
		})
	}
	names := make([]string, 0, len(observed))
	for name := range observed {
		names = append(names, name)
	}
	sort.Strings(names)
	types := make([]sifetl.ColumnType, len(names))
	for i, name := range names {
		types[i] = observed[name]
		// only nulls seen so far
		if types[i] == nil {
			types[i] = &sifetl.VarStringColumnType{}
		}
	}
	current, err := schema.FromColumns(names, types)
	if err != nil {
		return nil, err
	}
	if prior == nil {
		return current, nil
	}
	return sortedSchema(schema.Merge(prior, current))
}

func sortedSchema(s sifetl.Schema) (sifetl.Schema, error) {
	names := s.ColumnNames()
	types := s.ColumnTypes()
	idx := make([]int, len(names))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return names[idx[i]] < names[idx[j]] })
	sortedNames := make([]string, len(names))
	sortedTypes := make([]sifetl.ColumnType, len(names))
	for i, j := range idx {
		sortedNames[i] = names[j]
		sortedTypes[i] = types[j]
	}
	return schema.FromColumns(sortedNames, sortedTypes)
}

// Parse parses JSONL data to produce Partitions
func (p *Parser) Parse(r io.Reader, source sifetl.DataSource, schema sifetl.Schema, onIteratorEnd func()) (sifetl.PartitionIterator, error) {
	iterator := &jsonlFilePartitionIterator{
		parser:       p,
		lines:        newLineReader(r),
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
