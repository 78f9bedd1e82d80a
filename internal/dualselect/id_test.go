package dualselect

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDKeys(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "abc", "abc"},
		{"int", 42, "42"},
		{"negative", int64(-7), "-7"},
		{"uint", uint16(9), "9"},
		{"whole float", 5.0, "5"},
		{"fraction", 2.5, "2.5"},
		{"json number", json.Number("12"), "12"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewID(tt.in).Key())
		})
	}
}

func TestIDEquality(t *testing.T) {
	t.Parallel()
	assert.True(t, NewID(1).Equal(StringID("1")))
	assert.True(t, IntID(5).Equal(NewID(5.0)))
	assert.False(t, StringID("01").Equal(IntID(1)))
	assert.Equal(t, IntID(3), NewID(IntID(3)))
	assert.True(t, ID{}.IsZero())
}

func TestIDJSONKeepsRepresentation(t *testing.T) {
	t.Parallel()
	var ids []ID
	require.NoError(t, json.Unmarshal([]byte(`[1, "1", 2.5, "x"]`), &ids))
	require.Len(t, ids, 4)

	assert.Equal(t, int64(1), ids[0].Value())
	assert.Equal(t, "1", ids[1].Value())
	assert.Equal(t, 2.5, ids[2].Value())
	assert.True(t, ids[0].Equal(ids[1]))

	out, err := json.Marshal(ids)
	require.NoError(t, err)
	assert.JSONEq(t, `[1, "1", 2.5, "x"]`, string(out))

	var bad ID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &bad))
}

func TestIDSet(t *testing.T) {
	t.Parallel()
	s := NewIDSet(StringID("b"), StringID("a"), NewID("b"))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"b", "a"}, s.Keys())

	assert.False(t, s.Insert(StringID("a")))
	assert.True(t, s.Insert(IntID(1)))
	assert.True(t, s.Has(StringID("1")))

	got, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, int64(1), got.Value())

	assert.True(t, s.Delete(StringID("b")))
	assert.False(t, s.Delete(StringID("b")))
	assert.Equal(t, []string{"a", "1"}, s.Keys())
	assert.True(t, s.HasKey("1"), "index must follow deletes")

	assert.False(t, s.Toggle(StringID("a")))
	assert.True(t, s.Toggle(StringID("a")))
	assert.Equal(t, "{1 a}", s.String())

	c := s.Clone()
	c.Clear()
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, "{}", c.String())

	s.Retain(func(id ID) bool { return id.Key() != "1" })
	assert.Equal(t, []string{"a"}, s.Keys())

	var zero IDSet
	assert.False(t, zero.Has(StringID("x")))
	assert.True(t, zero.Insert(StringID("x")))
}
