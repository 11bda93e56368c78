package volta_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/voltadb/volta"
)

func TestValueEqualIsTypeStrict(t *testing.T) {
	assert.True(t, volta.NewInt(1).Equal(volta.NewInt(1)))
	assert.False(t, volta.NewInt(1).Equal(volta.NewFloat(1)))
	assert.False(t, volta.NewInt(1).Equal(volta.NewString("1")))
	assert.True(t, volta.Null.Equal(volta.Null))
}

func TestValueEqualDeep(t *testing.T) {
	a := volta.NewList([]volta.Value{volta.NewInt(1), volta.NewString("x")})
	b := volta.NewList([]volta.Value{volta.NewInt(1), volta.NewString("x")})
	c := volta.NewList([]volta.Value{volta.NewInt(2), volta.NewString("x")})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	m1 := volta.NewMap(map[string]volta.Value{"k": volta.NewInt(1)})
	m2 := volta.NewMap(map[string]volta.Value{"k": volta.NewInt(1)})
	assert.True(t, m1.Equal(m2))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "42", volta.NewInt(42).String())
	assert.Equal(t, `"hi"`, volta.NewString("hi").String())
	assert.Equal(t, "true", volta.NewBool(true).String())
	assert.Equal(t, "NULL", volta.Null.String())
	list := volta.NewList([]volta.Value{volta.NewInt(1), volta.NewInt(2)})
	assert.Equal(t, "[1, 2]", list.String())
	// Map keys render sorted so the output is deterministic.
	m := volta.NewMap(map[string]volta.Value{"b": volta.NewInt(2), "a": volta.NewInt(1)})
	assert.Equal(t, "{a: 1, b: 2}", m.String())
}

func TestValueAsFloat(t *testing.T) {
	assert.Equal(t, 3.0, volta.NewInt(3).AsFloat())
	assert.Equal(t, 2.5, volta.NewFloat(2.5).AsFloat())
}

func TestTemporalConstructors(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, volta.TypeDate, volta.NewDate(now).Type)
	assert.Equal(t, volta.TypeTimestamp, volta.NewTimestamp(now).Type)
	assert.True(t, volta.NewDate(now).Equal(volta.NewDate(now)))
}
