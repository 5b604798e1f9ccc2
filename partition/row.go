package partition

import (
	"fmt"
	"strings"

	"github.com/hpetrov29/sifetl"
	"github.com/hpetrov29/sifetl/errors"
)

// rowImpl is a view over a single slice of values within a Partition
type rowImpl struct {
	values []interface{}
	schema sifetl.Schema
}

// CreateRow builds a standalone Row from values respecting schema
func CreateRow(values []interface{}, schema sifetl.Schema) sifetl.Row {
	return &rowImpl{values: values, schema: schema}
}

// Schema returns the schema for a row
func (r *rowImpl) Schema() sifetl.Schema {
	return r.schema
}

// Values returns the values of this row, in column order
func (r *rowImpl) Values() []interface{} {
	return r.values
}

// ToString returns a string representation of this row
func (r *rowImpl) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "{")
	types := r.schema.ColumnTypes()
	for i, name := range r.schema.ColumnNames() {
		if i > 0 {
			fmt.Fprint(&res, ", ")
		}
		if r.values[i] == nil {
			fmt.Fprintf(&res, "%s: nil", name)
		} else {
			fmt.Fprintf(&res, "%s: %s", name, types[i].ToString(r.values[i]))
		}
	}
	fmt.Fprint(&res, "}")
	return res.String()
}

func (r *rowImpl) index(colName string) (int, error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return 0, err
	}
	return offset.Index(), nil
}

// IsNil returns true iff the given column value is nil in this row. If an error occurs, this function will return false.
func (r *rowImpl) IsNil(colName string) bool {
	idx, err := r.index(colName)
	if err != nil {
		return false
	}
	return r.values[idx] == nil
}

// Get returns the value of any column as an interface{}, if it exists
func (r *rowImpl) Get(colName string) (interface{}, error) {
	idx, err := r.index(colName)
	if err != nil {
		return nil, err
	}
	return r.values[idx], nil
}

func (r *rowImpl) getNonNil(colName string) (interface{}, error) {
	v, err := r.Get(colName)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.NilValueError{Name: colName}
	}
	return v, nil
}

// GetBool retrieves a single bool from the column with the given name
func (r *rowImpl) GetBool(colName string) (bool, error) {
	v, err := r.getNonNil(colName)
	if err != nil {
		return false, err
	}
	bval, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("Column %s is not a bool", colName)
	}
	return bval, nil
}

// GetInt64 retrieves a single int64 from the column with the given name
func (r *rowImpl) GetInt64(colName string) (int64, error) {
	v, err := r.getNonNil(colName)
	if err != nil {
		return 0, err
	}
	ival, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("Column %s is not an int64", colName)
	}
	return ival, nil
}

// GetFloat64 retrieves a single float64 from the column with the given name
func (r *rowImpl) GetFloat64(colName string) (float64, error) {
	v, err := r.getNonNil(colName)
	if err != nil {
		return 0, err
	}
	fval, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("Column %s is not a float64", colName)
	}
	return fval, nil
}

// GetVarString retrieves a single string from the column with the given name
func (r *rowImpl) GetVarString(colName string) (string, error) {
	v, err := r.getNonNil(colName)
	if err != nil {
		return "", err
	}
	sval, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("Column %s is not a string", colName)
	}
	return sval, nil
}
