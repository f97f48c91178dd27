package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordGetAndLookup(t *testing.T) {
	r := NewRecord(map[string]int64{"stamp": 3, "value": -7})

	assert.Equal(t, int64(3), r.Get("stamp"))
	assert.Equal(t, int64(-7), r.Get("value"))

	v, ok := r.Lookup("stamp")
	assert.True(t, ok)
	assert.Equal(t, int64(3), v)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)

	assert.Panics(t, func() { r.Get("missing") })
}

func TestRecordAddOverwrites(t *testing.T) {
	r := NewEmptyRecord()
	r.Add("stamp", 1)
	r.Add("stamp", 2)

	assert.Equal(t, int64(2), r.Get("stamp"))
	assert.Equal(t, 1, r.ColumnCount())
}

func TestRecordDropColumns(t *testing.T) {
	r := NewRecord(map[string]int64{"a": 1, "b": 2, "c": 3})
	r.DropColumns([]string{"b", "missing"})

	assert.False(t, r.Has("b"))
	assert.True(t, r.Has("a"))
	assert.True(t, r.Has("c"))
}

func TestRecordRenameColumn(t *testing.T) {
	r := NewRecord(map[string]int64{"old": 5})
	r.RenameColumn("old", "new")

	assert.False(t, r.Has("old"))
	assert.Equal(t, int64(5), r.Get("new"))

	// renaming an absent column is a no-op
	r.RenameColumn("missing", "other")
	assert.False(t, r.Has("other"))
}

func TestRecordMergeOtherWins(t *testing.T) {
	r := NewRecord(map[string]int64{"a": 1, "b": 2})
	other := NewRecord(map[string]int64{"b": 20, "c": 30})
	r.Merge(other)

	expected := NewRecord(map[string]int64{"a": 1, "b": 20, "c": 30})
	assert.True(t, r.Equals(expected))
}

func TestRecordEquals(t *testing.T) {
	a := NewRecord(map[string]int64{"x": 1, "y": 2})
	b := NewRecord(map[string]int64{"y": 2, "x": 1})
	c := NewRecord(map[string]int64{"x": 1})
	d := NewRecord(map[string]int64{"x": 1, "y": 3})

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(d))
}

func TestRecordDataIsACopy(t *testing.T) {
	r := NewRecord(map[string]int64{"a": 1})
	data := r.Data()
	data["a"] = 99
	data["b"] = 2

	assert.Equal(t, int64(1), r.Get("a"))
	assert.False(t, r.Has("b"))
}

func TestRecordCloneIndependent(t *testing.T) {
	r := NewRecord(map[string]int64{"a": 1})
	c := r.Clone()
	c.Add("a", 2)
	c.Add("b", 3)

	require.Equal(t, int64(1), r.Get("a"))
	assert.False(t, r.Has("b"))
}

func TestNewRecordCopiesInput(t *testing.T) {
	init := map[string]int64{"a": 1}
	r := NewRecord(init)
	init["a"] = 42

	assert.Equal(t, int64(1), r.Get("a"))
}
