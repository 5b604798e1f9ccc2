package dsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"github.com/hpetrov29/sifetl"
)

func isParseError(err error) bool {
	var perr *csv.ParseError
	return errors.As(err, &perr)
}

// inferType returns the narrowest ColumnType able to represent a non-nil value
func inferType(colVal string) sifetl.ColumnType {
	if _, err := strconv.ParseInt(colVal, 10, 64); err == nil {
		return &sifetl.Int64ColumnType{}
	}
	if _, err := strconv.ParseFloat(colVal, 64); err == nil {
		return &sifetl.Float64ColumnType{}
	}
	if colVal == "true" || colVal == "false" || colVal == "TRUE" || colVal == "FALSE" || colVal == "True" || colVal == "False" {
		return &sifetl.BoolColumnType{}
	}
	return &sifetl.VarStringColumnType{}
}

// scanValue parses a single field according to its column type
func scanValue(conf *ParserConf, name string, colType sifetl.ColumnType, colVal string) (interface{}, error) {
	// check for a nil value
	if len(colVal) == 0 || (len(conf.NilValue) > 0 && colVal == conf.NilValue) {
		return nil, nil
	}
	switch colType.(type) {
	case *sifetl.BoolColumnType:
		bval, err := strconv.ParseBool(colVal)
		if err != nil {
			return nil, fmt.Errorf("Column %s could not be parsed as a bool. Was: %#v", name, colVal)
		}
		return bval, nil
	case *sifetl.Int64ColumnType:
		ival, err := strconv.ParseInt(colVal, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("Column %s could not be parsed as an int64. Was: %#v", name, colVal)
		}
		return ival, nil
	case *sifetl.Float64ColumnType:
		fval, err := strconv.ParseFloat(colVal, 64)
		if err != nil {
			return nil, fmt.Errorf("Column %s could not be parsed as a float64. Was: %#v", name, colVal)
		}
		return fval, nil
	case *sifetl.VarStringColumnType:
		return colVal, nil
	default:
		return nil, fmt.Errorf("DSV parsing does not support column type %T", colType)
	}
}

// scanRow parses a record into row values according to a schema. When the record is
// malformed, the returned error describes why and, in PERMISSIVE mode, values holds
// the record padded or truncated to the schema with unparseable values set to nil.
func scanRow(conf *ParserConf, names []string, colTypes []sifetl.ColumnType, record []string) (values []interface{}, malformed error) {
	values = make([]interface{}, len(names))
	if len(record) != len(names) {
		malformed = fmt.Errorf("expected %d fields but found %d", len(names), len(record))
	}
	for i := 0; i < len(names) && i < len(record); i++ {
		val, err := scanValue(conf, names[i], colTypes[i], record[i])
		if err != nil {
			if malformed == nil {
				malformed = err
			}
			continue
		}
		values[i] = val
	}
	return values, malformed
}
