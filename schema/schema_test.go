package schema

import (
	"testing"

	"github.com/hpetrov29/sifetl"
	"github.com/stretchr/testify/require"
)

func TestSchemaEqualityBasic(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn("col1", &sifetl.Int64ColumnType{})
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col2", &sifetl.VarStringColumnType{})
	require.Nil(t, err)

	schema2 := CreateSchema()
	_, err = schema2.CreateColumn("col1", &sifetl.Int64ColumnType{})
	require.Nil(t, err)
	_, err = schema2.CreateColumn("col2", &sifetl.VarStringColumnType{})
	require.Nil(t, err)

	require.Nil(t, schema1.Equals(schema2))
}

func TestSchemaEqualityDifferentType(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn("col1", &sifetl.Int64ColumnType{})
	require.Nil(t, err)

	schema2 := CreateSchema()
	_, err = schema2.CreateColumn("col1", &sifetl.Float64ColumnType{})
	require.Nil(t, err)

	require.NotNil(t, schema1.Equals(schema2))
}

func TestSchemaEqualityOrder(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn("col1", &sifetl.Int64ColumnType{})
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col2", &sifetl.VarStringColumnType{})
	require.Nil(t, err)

	schema2 := CreateSchema()
	_, err = schema2.CreateColumn("col2", &sifetl.VarStringColumnType{})
	require.Nil(t, err)
	_, err = schema2.CreateColumn("col1", &sifetl.Int64ColumnType{})
	require.Nil(t, err)

	require.NotNil(t, schema1.Equals(schema2))
}

func TestSchemaDuplicateColumn(t *testing.T) {
	s := CreateSchema()
	_, err := s.CreateColumn("col1", &sifetl.BoolColumnType{})
	require.Nil(t, err)
	_, err = s.CreateColumn("col1", &sifetl.BoolColumnType{})
	require.NotNil(t, err)
	require.Equal(t, 1, s.NumColumns())
}

func TestSchemaCloneIsIndependent(t *testing.T) {
	s := CreateSchema()
	s.CreateColumn("a", &sifetl.BoolColumnType{})
	clone := s.Clone()
	clone.CreateColumn("b", &sifetl.BoolColumnType{})
	require.Equal(t, 1, s.NumColumns())
	require.Equal(t, []string{"a", "b"}, clone.ColumnNames())
	offset, err := clone.GetOffset("b")
	require.Nil(t, err)
	require.Equal(t, 1, offset.Index())
}

func TestMergeWidensAndUnions(t *testing.T) {
	a, err := FromColumns([]string{"id", "price", "name"}, []sifetl.ColumnType{
		&sifetl.Int64ColumnType{}, &sifetl.Int64ColumnType{}, &sifetl.VarStringColumnType{},
	})
	require.Nil(t, err)
	b, err := FromColumns([]string{"price", "active", "id"}, []sifetl.ColumnType{
		&sifetl.Float64ColumnType{}, &sifetl.BoolColumnType{}, &sifetl.BoolColumnType{},
	})
	require.Nil(t, err)

	merged := Merge(a, b)
	require.Equal(t, []string{"id", "price", "name", "active"}, merged.ColumnNames())
	types := merged.ColumnTypes()
	require.IsType(t, &sifetl.VarStringColumnType{}, types[0])
	require.IsType(t, &sifetl.Float64ColumnType{}, types[1])
	require.IsType(t, &sifetl.VarStringColumnType{}, types[2])
	require.IsType(t, &sifetl.BoolColumnType{}, types[3])

	require.Equal(t, a.ColumnNames(), Merge(a, nil).ColumnNames())
	require.Equal(t, b.ColumnNames(), Merge(nil, b).ColumnNames())
}
