package jsonl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hpetrov29/sifetl"
	"github.com/tidwall/gjson"
)

// lineReader reads newline-terminated lines of any length
type lineReader struct {
	reader *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{reader: bufio.NewReader(r)}
}

// next returns the next line without its terminator, and false once the input is exhausted
func (lr *lineReader) next() (string, bool, error) {
	line, err := lr.reader.ReadString('\n')
	if err == io.EOF {
		if len(line) == 0 {
			return "", false, nil
		}
	} else if err != nil {
		return "", false, err
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}

// parseRecord returns the JSON object on a line, and false if the line does not hold exactly one
func parseRecord(line string) (gjson.Result, bool) {
	if !gjson.Valid(line) {
		return gjson.Result{}, false
	}
	record := gjson.Parse(line)
	return record, record.IsObject()
}

func isBlank(line string) bool {
	return len(strings.TrimSpace(line)) == 0
}

func isIntegral(value gjson.Result) bool {
	if strings.ContainsAny(value.Raw, ".eE") {
		return false
	}
	_, err := strconv.ParseInt(value.Raw, 10, 64)
	return err == nil
}

// inferType returns the ColumnType for a JSON value, or nil for null
func inferType(value gjson.Result) sifetl.ColumnType {
	switch value.Type {
	case gjson.Null:
		return nil
	case gjson.True, gjson.False:
		return &sifetl.BoolColumnType{}
	case gjson.Number:
		if isIntegral(value) {
			return &sifetl.Int64ColumnType{}
		}
		return &sifetl.Float64ColumnType{}
	default:
		return &sifetl.VarStringColumnType{}
	}
}

// parseValue converts a JSON value into the representation of a ColumnType
func parseValue(value gjson.Result, colName string, colType sifetl.ColumnType) (interface{}, error) {
	if !value.Exists() || value.Type == gjson.Null {
		return nil, nil
	}
	switch colType.(type) {
	case *sifetl.BoolColumnType:
		if value.Type != gjson.True && value.Type != gjson.False {
			return nil, fmt.Errorf("Column %s was not a boolean. Was: %s", colName, value.Raw)
		}
		return value.Bool(), nil
	case *sifetl.Int64ColumnType:
		if value.Type != gjson.Number || !isIntegral(value) {
			return nil, fmt.Errorf("Column %s was not an integer. Was: %s", colName, value.Raw)
		}
		return strconv.ParseInt(value.Raw, 10, 64)
	case *sifetl.Float64ColumnType:
		if value.Type != gjson.Number {
			return nil, fmt.Errorf("Column %s was not a number. Was: %s", colName, value.Raw)
		}
		return value.Float(), nil
	case *sifetl.VarStringColumnType:
		if value.Type == gjson.String {
			return value.Str, nil
		}
		return value.Raw, nil
	default:
		return nil, fmt.Errorf("JSONL parsing does not support column type %T", colType)
	}
}

// scanRow parses a line into row values according to a schema. A line which is not a JSON
// object, or which holds a value incompatible with its column, is malformed; values are
// then nil-filled (entirely for non-objects, per value otherwise).
func scanRow(names []string, colTypes []sifetl.ColumnType, line string) (values []interface{}, malformed error) {
	values = make([]interface{}, len(names))
	record, ok := parseRecord(line)
	if !ok {
		return values, fmt.Errorf("line is not a JSON object")
	}
	// keys are matched literally rather than as gjson paths, since they may contain dots
	fields := make(map[string]gjson.Result, len(names))
	record.ForEach(func(key, value gjson.Result) bool {
		fields[key.String()] = value
		return true
	})
	for i, name := range names {
		val, err := parseValue(fields[name], name, colTypes[i])
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
