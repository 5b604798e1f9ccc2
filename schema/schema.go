package schema

import (
	"fmt"

	"github.com/hpetrov29/sifetl"
)

// column describes the position and type of a field in a Row.
type column struct {
	idx     int
	colType sifetl.ColumnType
}

// Clone returns a copy of this Column
func (c *column) Clone() sifetl.Column {
	return &column{c.idx, c.colType}
}

// Index returns the index of this Column within a Schema
func (c *column) Index() int {
	return c.idx
}

// Type returns the ColumnType of this Column
func (c *column) Type() sifetl.ColumnType {
	return c.colType
}

// schema is an ordered mapping from column names to Columns.
type schema struct {
	schema map[string]sifetl.Column
	names  []string
}

// CreateSchema is a factory for Schemas
func CreateSchema() sifetl.Schema {
	return &schema{
		schema: make(map[string]sifetl.Column),
		names:  make([]string, 0),
	}
}

// Equals returns nil iff this and another Schema are equivalent, or an error describing the first difference
func (s *schema) Equals(otherSchema sifetl.Schema) error {
	if s.NumColumns() != otherSchema.NumColumns() {
		return fmt.Errorf("Schemas have unequal numbers of columns")
	}
	otherNames := otherSchema.ColumnNames()
	otherTypes := otherSchema.ColumnTypes()
	for i, name := range s.names {
		if otherNames[i] != name {
			return fmt.Errorf("Column %d is named %s in one Schema and %s in the other", i, name, otherNames[i])
		}
		if !sifetl.SameColumnType(s.schema[name].Type(), otherTypes[i]) {
			return fmt.Errorf("Column %s types do not match", name)
		}
	}
	return nil
}

// Clone returns a copy of this Schema
func (s *schema) Clone() sifetl.Schema {
	newSchema := make(map[string]sifetl.Column)
	for k, v := range s.schema {
		newSchema[k] = v.Clone()
	}
	names := make([]string, len(s.names))
	copy(names, s.names)
	return &schema{schema: newSchema, names: names}
}

// NumColumns returns the number of columns in this Schema
func (s *schema) NumColumns() int {
	return len(s.names)
}

// GetOffset returns the Column with the given name
func (s *schema) GetOffset(colName string) (offset sifetl.Column, err error) {
	offset, ok := s.schema[colName]
	if !ok {
		err = fmt.Errorf("Schema does not contain column with name %s", colName)
	}
	return
}

// HasColumn returns true iff this schema contains a column with the given name
func (s *schema) HasColumn(colName string) bool {
	_, err := s.GetOffset(colName)
	return err == nil
}

// CreateColumn defines a new column at the end of the Schema
func (s *schema) CreateColumn(colName string, columnType sifetl.ColumnType) (newSchema sifetl.Schema, err error) {
	if _, containsOffset := s.schema[colName]; containsOffset {
		return nil, fmt.Errorf("Schema already contains column with name %s", colName)
	}
	if columnType == nil {
		return nil, fmt.Errorf("Column %s must have a type", colName)
	}
	s.schema[colName] = &column{len(s.names), columnType}
	s.names = append(s.names, colName)
	return s, nil
}

// ColumnNames returns the names in the schema, in index order
func (s *schema) ColumnNames() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// ColumnTypes returns the types in the schema, in index order
func (s *schema) ColumnTypes() []sifetl.ColumnType {
	types := make([]sifetl.ColumnType, len(s.names))
	for i, name := range s.names {
		types[i] = s.schema[name].Type()
	}
	return types
}

// Merge produces a new Schema containing the columns of a (in order) followed by the
// columns of b which a lacks. Columns present in both are widened to a common type.
// Either Schema may be nil.
func Merge(a sifetl.Schema, b sifetl.Schema) sifetl.Schema {
	if a == nil && b == nil {
		return CreateSchema()
	} else if a == nil {
		return b.Clone()
	} else if b == nil {
		return a.Clone()
	}
	result := CreateSchema()
	bNames := b.ColumnNames()
	bTypes := b.ColumnTypes()
	bIndex := make(map[string]int, len(bNames))
	for i, name := range bNames {
		bIndex[name] = i
	}
	aTypes := a.ColumnTypes()
	for i, name := range a.ColumnNames() {
		colType := aTypes[i]
		if j, ok := bIndex[name]; ok {
			colType = sifetl.WidenColumnTypes(colType, bTypes[j])
		}
		result.CreateColumn(name, colType)
	}
	for i, name := range bNames {
		if !result.HasColumn(name) {
			result.CreateColumn(name, bTypes[i])
		}
	}
	return result
}

// FromColumns builds a Schema from parallel slices of names and types
func FromColumns(names []string, types []sifetl.ColumnType) (sifetl.Schema, error) {
	if len(names) != len(types) {
		return nil, fmt.Errorf("%d column names do not match %d column types", len(names), len(types))
	}
	result := CreateSchema()
	for i, name := range names {
		if _, err := result.CreateColumn(name, types[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}
