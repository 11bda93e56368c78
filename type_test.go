package volta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voltadb/volta"
)

func TestTypeByName(t *testing.T) {
	assert.Equal(t, volta.TypeInt64, volta.TypeByName("int64"))
	assert.Equal(t, volta.TypeInt64, volta.TypeByName("INT64"))
	assert.Equal(t, volta.TypeFixedString, volta.TypeByName("fixed_string"))
	assert.Equal(t, volta.TypeDouble, volta.TypeByName("double"))
	assert.Equal(t, volta.TypeUnknown, volta.TypeByName("varchar"))
}

func TestTypeFamilies(t *testing.T) {
	assert.True(t, volta.TypeInt8.IsIntFamily())
	assert.True(t, volta.TypeInt64.IsIntFamily())
	assert.False(t, volta.TypeDouble.IsIntFamily())
	assert.True(t, volta.TypeFixedString.IsStringFamily())
	assert.True(t, volta.TypeFloat.IsFloatFamily())
	assert.True(t, volta.TypeDouble.IsNumeric())
	assert.True(t, volta.TypeDate.IsTemporal())
	assert.False(t, volta.TypeString.IsNumeric())
}

func TestWiden(t *testing.T) {
	cases := []struct {
		a, b, want volta.ValueType
	}{
		{volta.TypeInt64, volta.TypeInt64, volta.TypeInt64},
		{volta.TypeInt32, volta.TypeInt64, volta.TypeInt64},
		{volta.TypeInt64, volta.TypeDouble, volta.TypeDouble},
		{volta.TypeFloat, volta.TypeDouble, volta.TypeDouble},
		{volta.TypeFixedString, volta.TypeString, volta.TypeString},
		{volta.TypeNull, volta.TypeBool, volta.TypeBool},
		{volta.TypeBool, volta.TypeUnknown, volta.TypeBool},
		{volta.TypeBool, volta.TypeString, volta.TypeUnknown},
		{volta.TypeVertex, volta.TypeEdge, volta.TypeUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, volta.Widen(tc.a, tc.b), "Widen(%s, %s)", tc.a, tc.b)
		assert.Equal(t, tc.want, volta.Widen(tc.b, tc.a), "Widen(%s, %s)", tc.b, tc.a)
	}
}
