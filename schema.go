package sifetl

// Schema is an ordered mapping from column names to Columns.
// It allows one to obtain column positions by name and define new columns.
type Schema interface {
	Equals(otherSchema Schema) error
	Clone() Schema
	NumColumns() int
	GetOffset(colName string) (offset Column, err error)
	HasColumn(colName string) bool
	CreateColumn(colName string, columnType ColumnType) (newSchema Schema, err error)
	ColumnNames() []string
	ColumnTypes() []ColumnType
}
