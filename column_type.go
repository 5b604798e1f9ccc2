package sifetl

import (
	"fmt"
	"strconv"
)

// ColumnType is an interface which is implemented to define supported column types.
// sifetl provides the built-in types below, which cover everything its parsers produce.
type ColumnType interface {
	Name() string                  // Name returns a short, human-readable name for this type
	ToString(v interface{}) string // ToString produces a string representation of a value of this type
}

// BoolColumnType is a column type which stores a boolean value
type BoolColumnType struct{}

// Name returns the name of this type
func (b *BoolColumnType) Name() string {
	return "bool"
}

// ToString produces a string representation of a value of a BoolColumnType value
func (b *BoolColumnType) ToString(v interface{}) string {
	return strconv.FormatBool(v.(bool))
}

// Int64ColumnType is a column type which stores an int64 value
type Int64ColumnType struct{}

// Name returns the name of this type
func (b *Int64ColumnType) Name() string {
	return "int64"
}

// ToString produces a string representation of a value of an Int64ColumnType value
func (b *Int64ColumnType) ToString(v interface{}) string {
	return strconv.FormatInt(v.(int64), 10)
}

// Float64ColumnType is a column type which stores a float64 value
type Float64ColumnType struct{}

// Name returns the name of this type
func (b *Float64ColumnType) Name() string {
	return "float64"
}

// ToString produces a string representation of a value of a Float64ColumnType value
func (b *Float64ColumnType) ToString(v interface{}) string {
	return strconv.FormatFloat(v.(float64), 'g', -1, 64)
}

// VarStringColumnType is a column type which stores a variable-length string value
type VarStringColumnType struct{}

// Name returns the name of this type
func (b *VarStringColumnType) Name() string {
	return "string"
}

// ToString produces a string representation of a value of a VarStringColumnType value
func (b *VarStringColumnType) ToString(v interface{}) string {
	return v.(string)
}

// SameColumnType returns true iff a and b are the same kind of ColumnType
func SameColumnType(a ColumnType, b ColumnType) bool {
	return fmt.Sprintf("%T", a) == fmt.Sprintf("%T", b)
}

// WidenColumnTypes returns the narrowest ColumnType capable of holding values of both a and b.
// A nil ColumnType means "not yet known" and yields the other type.
func WidenColumnTypes(a ColumnType, b ColumnType) ColumnType {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case SameColumnType(a, b):
		return a
	}
	_, aInt := a.(*Int64ColumnType)
	_, aFloat := a.(*Float64ColumnType)
	_, bInt := b.(*Int64ColumnType)
	_, bFloat := b.(*Float64ColumnType)
	if (aInt || aFloat) && (bInt || bFloat) {
		return &Float64ColumnType{}
	}
	return &VarStringColumnType{}
}

// ConvertValue coerces a value produced for one ColumnType into the representation used by
// another, wider ColumnType (as produced by WidenColumnTypes). nil stays nil.
func ConvertValue(v interface{}, to ColumnType) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	switch to.(type) {
	case *BoolColumnType:
		if bval, ok := v.(bool); ok {
			return bval, nil
		}
	case *Int64ColumnType:
		if ival, ok := v.(int64); ok {
			return ival, nil
		}
	case *Float64ColumnType:
		switch nval := v.(type) {
		case float64:
			return nval, nil
		case int64:
			return float64(nval), nil
		}
	case *VarStringColumnType:
		switch sval := v.(type) {
		case string:
			return sval, nil
		case bool:
			return strconv.FormatBool(sval), nil
		case int64:
			return strconv.FormatInt(sval, 10), nil
		case float64:
			return strconv.FormatFloat(sval, 'g', -1, 64), nil
		}
	}
	return nil, fmt.Errorf("Value %#v cannot be converted to column type %s", v, to.Name())
}
