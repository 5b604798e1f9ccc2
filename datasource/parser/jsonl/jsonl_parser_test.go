package jsonl

import (
	"strings"
	"testing"

	"github.com/hpetrov29/sifetl"
	"github.com/hpetrov29/sifetl/errors"
	"github.com/hpetrov29/sifetl/datasource"
	"github.com/hpetrov29/sifetl/datasource/memory"
	"github.com/stretchr/testify/require"
)

func collectRows(t *testing.T, parts []sifetl.Partition) []map[string]interface{} {
	var rows []map[string]interface{}
	for _, part := range parts {
		err := part.ForEachRow(func(row sifetl.Row) error {
			m := make(map[string]interface{})
			for i, name := range row.Schema().ColumnNames() {
				m[name] = row.Values()[i]
			}
			rows = append(rows, m)
			return nil
		})
		require.Nil(t, err)
	}
	return rows
}

func TestJSONLDatasourceParser(t *testing.T) {
	parser := CreateParser(&ParserConf{
		PartitionSize: 128,
	})
	data := [][]byte{
		[]byte("{\"name\": \"Sean\", \"meta\": { \"index\": 1, \"first\": \"Sean\", \"last\": \"McIntyre\"}}\n{\"name\": \"Chris\", \"meta\": { \"index\": 3, \"first\": \"Chris\", \"last\": \"Dickson\"}}"),
		[]byte("{\"name\": \"Phil\", \"meta\": { \"index\": 2, \"first\": \"Phil\", \"last\": \"Laliberté\"}}\n{\"name\": \"Fahd\", \"meta\": { \"index\": 4, \"first\": \"Fahd\", \"last\": \"Husain\"}}"),
	}
	schema, parts, err := datasource.ReadAll(memory.CreateDataSource(data), parser)
	require.Nil(t, err, "ReadAll err should be null")
	require.Equal(t, []string{"meta", "name"}, schema.ColumnNames())
	totalRows := 0
	for _, part := range parts {
		totalRows += part.GetNumRows()
	}
	require.Equal(t, 4, totalRows)
	rows := collectRows(t, parts)
	require.Equal(t, "Sean", rows[0]["name"])
	require.JSONEq(t, `{ "index": 1, "first": "Sean", "last": "McIntyre"}`, rows[0]["meta"].(string))
}

func TestJSONLSchemaInference(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	data := [][]byte{
		[]byte(`{"id": 1, "price": 2, "paid": true, "tags": ["a"], "note": null}` + "\n"),
		[]byte(`{"id": 2, "price": 2.5, "paid": false, "extra": "x"}` + "\n"),
	}
	schema, parts, err := datasource.ReadAll(memory.CreateDataSource(data), parser)
	require.Nil(t, err)
	require.Equal(t, []string{"extra", "id", "note", "paid", "price", "tags"}, schema.ColumnNames())
	types := schema.ColumnTypes()
	require.IsType(t, &sifetl.VarStringColumnType{}, types[0])
	require.IsType(t, &sifetl.Int64ColumnType{}, types[1])
	require.IsType(t, &sifetl.VarStringColumnType{}, types[2])
	require.IsType(t, &sifetl.BoolColumnType{}, types[3])
	require.IsType(t, &sifetl.Float64ColumnType{}, types[4])
	require.IsType(t, &sifetl.VarStringColumnType{}, types[5])

	rows := collectRows(t, parts)
	require.Len(t, rows, 2)
	require.Equal(t, int64(1), rows[0]["id"])
	require.Equal(t, 2.0, rows[0]["price"])
	require.Equal(t, `["a"]`, rows[0]["tags"])
	require.Nil(t, rows[0]["extra"])
	require.Equal(t, "x", rows[1]["extra"])
	require.Equal(t, false, rows[1]["paid"])
}

func TestJSONLPermissiveNullFillsMalformed(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	data := [][]byte{[]byte("{\"a\": 1}\nnot json\n\n[1, 2]\n{\"a\": 2}\n")}
	_, parts, err := datasource.ReadAll(memory.CreateDataSource(data), parser)
	require.Nil(t, err)
	rows := collectRows(t, parts)
	require.Len(t, rows, 4)
	require.Equal(t, int64(1), rows[0]["a"])
	require.Nil(t, rows[1]["a"])
	require.Nil(t, rows[2]["a"])
	require.Equal(t, int64(2), rows[3]["a"])
}

func TestJSONLDropMalformed(t *testing.T) {
	parser := CreateParser(&ParserConf{Mode: sifetl.DropMalformedMode})
	data := [][]byte{[]byte("{\"a\": 1}\n{broken\n{\"a\": \"two\"}\n")}
	schema, parts, err := datasource.ReadAll(memory.CreateDataSource(data), parser)
	require.Nil(t, err)
	// "two" widens a to string, so nothing is type-malformed
	require.IsType(t, &sifetl.VarStringColumnType{}, schema.ColumnTypes()[0])
	rows := collectRows(t, parts)
	require.Len(t, rows, 2)
	require.Equal(t, "1", rows[0]["a"])
}

func TestJSONLFailFast(t *testing.T) {
	parser := CreateParser(&ParserConf{Mode: sifetl.FailFastMode})
	data := [][]byte{[]byte("{\"a\": 1}\n{broken\n")}
	_, _, err := datasource.ReadAll(memory.CreateDataSource(data), parser)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "line 2")
}

func TestJSONLIteratorExhaustion(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	s, err := parser.InferSchema(strings.NewReader("{\"a\": 1}\n"), nil)
	require.Nil(t, err)
	it, err := parser.Parse(strings.NewReader("{\"a\": 1}\n"), nil, s, nil)
	require.Nil(t, err)
	part, err := it.NextPartition()
	require.Nil(t, err)
	require.Equal(t, 1, part.GetNumRows())
	require.False(t, it.HasNextPartition())
	_, err = it.NextPartition()
	require.IsType(t, errors.NoMorePartitionsError{}, err)
}

func TestJSONLRecordLongerThanScannerLimit(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	long := strings.Repeat("x", 70000)
	data := [][]byte{[]byte(`{"a": "` + long + `"}` + "\r\n" + `{"a": "short"}`)}
	schema, parts, err := datasource.ReadAll(memory.CreateDataSource(data), parser)
	require.Nil(t, err)
	require.Equal(t, []string{"a"}, schema.ColumnNames())
	rows := collectRows(t, parts)
	require.Len(t, rows, 2)
	require.Equal(t, long, rows[0]["a"])
	require.Equal(t, "short", rows[1]["a"])
}

func TestJSONLIteratorCloseFiresEndListeners(t *testing.T) {
	parser := CreateParser(&ParserConf{PartitionSize: 1})
	input := "{\"a\": 1}\n{\"a\": 2}\n"
	s, err := parser.InferSchema(strings.NewReader(input), nil)
	require.Nil(t, err)
	ended := 0
	it, err := parser.Parse(strings.NewReader(input), nil, s, func() { ended++ })
	require.Nil(t, err)
	_, err = it.NextPartition()
	require.Nil(t, err)
	require.True(t, it.HasNextPartition())
	it.Close()
	require.False(t, it.HasNextPartition())
	require.Equal(t, 1, ended)
	it.Close()
	require.Equal(t, 1, ended)
}
