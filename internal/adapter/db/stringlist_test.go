package db

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringList_Value(t *testing.T) {
	value, err := StringList(nil).Value()
	require.NoError(t, err)
	require.Equal(t, "[]", value)

	value, err = StringList{"latam", "compra"}.Value()
	require.NoError(t, err)
	require.JSONEq(t, `["latam","compra"]`, string(value.([]byte)))
}

func TestStringList_Scan(t *testing.T) {
	var list StringList
	require.NoError(t, list.Scan([]byte(`["latam","compra"]`)))
	require.Equal(t, StringList{"latam", "compra"}, list)

	require.NoError(t, list.Scan(nil))
	require.Nil(t, list)

	require.NoError(t, list.Scan(""))
	require.Nil(t, list)

	require.Error(t, list.Scan(42))
}
