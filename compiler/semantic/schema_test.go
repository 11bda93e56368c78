package semantic_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltadb/volta"
	"github.com/voltadb/volta/compiler/semantic"
)

func TestTypeCompatible(t *testing.T) {
	cases := []struct {
		expected, actual volta.ValueType
		want             bool
	}{
		{volta.TypeInt, volta.TypeInt64, true},
		{volta.TypeInt64, volta.TypeInt, true},
		{volta.TypeInt32, volta.TypeInt64, true},
		{volta.TypeInt, volta.TypeString, false},
		{volta.TypeFloat, volta.TypeDouble, true},
		{volta.TypeDouble, volta.TypeFloat, true},
		{volta.TypeDouble, volta.TypeInt64, false},
		{volta.TypeFixedString, volta.TypeString, true},
		{volta.TypeString, volta.TypeFixedString, true},
		{volta.TypeVID, volta.TypeString, true},
		{volta.TypeVID, volta.TypeInt64, true},
		{volta.TypeVID, volta.TypeBool, false},
		{volta.TypeTimestamp, volta.TypeInt64, true},
		{volta.TypeInt64, volta.TypeTimestamp, false},
		{volta.TypeBool, volta.TypeBool, true},
		// Null and Unknown on the actual side match anything.
		{volta.TypeBool, volta.TypeNull, true},
		{volta.TypeInt64, volta.TypeUnknown, true},
		// But not on the expected side.
		{volta.TypeNull, volta.TypeBool, false},
	}
	for _, tc := range cases {
		got := semantic.TypeCompatible(tc.expected, tc.actual)
		assert.Equal(t, tc.want, got, "TypeCompatible(%s, %s)", tc.expected, tc.actual)
	}
}

func TestTypeCompatibleIsNotSymmetric(t *testing.T) {
	assert.True(t, semantic.TypeCompatible(volta.TypeTimestamp, volta.TypeInt))
	assert.False(t, semantic.TypeCompatible(volta.TypeInt, volta.TypeTimestamp))
}

func TestEnsureSchemaInfersLongStringUnbounded(t *testing.T) {
	// Strings past the fixed_string bound infer an unbounded string.
	store := newStore(t)
	body := strings.Repeat("x", 300)
	require.NoError(t, semantic.EnsureSchema(store, "school", "doc", false,
		[]string{"body"}, []volta.Value{volta.NewString(body)}))
	tag, err := store.GetTag("school", "doc")
	require.NoError(t, err)
	require.Len(t, tag.Props, 1)
	assert.Equal(t, volta.TypeString, tag.Props[0].Type)
	assert.Zero(t, tag.Props[0].Len)
}

func TestEnsureSchemaLeavesDeclaredSchemaAlone(t *testing.T) {
	store := newStore(t)
	require.NoError(t, semantic.EnsureSchema(store, "school", "person", false,
		[]string{"bogus"}, []volta.Value{volta.NewInt(1)}))
	tag, err := store.GetTag("school", "person")
	require.NoError(t, err)
	require.Len(t, tag.Props, 2)
	assert.Equal(t, "name", tag.Props[0].Name)
}

func TestEnsureSchemaValueCountMismatch(t *testing.T) {
	store := newStore(t)
	err := semantic.EnsureSchema(store, "school", "doc", false,
		[]string{"a", "b"}, []volta.Value{volta.NewInt(1)})
	require.Error(t, err)
	assert.Equal(t, "wrong number of values, expected 2 but got 1", err.Error())
}
