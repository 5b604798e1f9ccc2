package sifetl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWidenColumnTypes(t *testing.T) {
	require.IsType(t, &Int64ColumnType{}, WidenColumnTypes(nil, &Int64ColumnType{}))
	require.IsType(t, &BoolColumnType{}, WidenColumnTypes(&BoolColumnType{}, nil))
	require.IsType(t, &Int64ColumnType{}, WidenColumnTypes(&Int64ColumnType{}, &Int64ColumnType{}))
	require.IsType(t, &Float64ColumnType{}, WidenColumnTypes(&Int64ColumnType{}, &Float64ColumnType{}))
	require.IsType(t, &Float64ColumnType{}, WidenColumnTypes(&Float64ColumnType{}, &Int64ColumnType{}))
	require.IsType(t, &VarStringColumnType{}, WidenColumnTypes(&BoolColumnType{}, &Int64ColumnType{}))
	require.IsType(t, &VarStringColumnType{}, WidenColumnTypes(&VarStringColumnType{}, &Float64ColumnType{}))
	require.Nil(t, WidenColumnTypes(nil, nil))
}

func TestConvertValue(t *testing.T) {
	v, err := ConvertValue(int64(3), &Float64ColumnType{})
	require.Nil(t, err)
	require.Equal(t, float64(3), v)

	v, err = ConvertValue(1.5, &VarStringColumnType{})
	require.Nil(t, err)
	require.Equal(t, "1.5", v)

	v, err = ConvertValue(true, &VarStringColumnType{})
	require.Nil(t, err)
	require.Equal(t, "true", v)

	v, err = ConvertValue(nil, &Int64ColumnType{})
	require.Nil(t, err)
	require.Nil(t, v)

	_, err = ConvertValue("abc", &Int64ColumnType{})
	require.NotNil(t, err)
	_, err = ConvertValue(2.5, &Int64ColumnType{})
	require.NotNil(t, err)
}

func TestColumnTypeToString(t *testing.T) {
	require.Equal(t, "true", (&BoolColumnType{}).ToString(true))
	require.Equal(t, "-4", (&Int64ColumnType{}).ToString(int64(-4)))
	require.Equal(t, "0.25", (&Float64ColumnType{}).ToString(0.25))
	require.Equal(t, "pear", (&VarStringColumnType{}).ToString("pear"))
}

func TestParseParseMode(t *testing.T) {
	mode, err := ParseParseMode("dropMalformed")
	require.Nil(t, err)
	require.Equal(t, DropMalformedMode, mode)
	mode, err = ParseParseMode("FAILFAST")
	require.Nil(t, err)
	require.Equal(t, FailFastMode, mode)
	_, err = ParseParseMode("lenient")
	require.NotNil(t, err)
}
