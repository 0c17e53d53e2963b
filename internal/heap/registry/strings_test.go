package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

func TestStringTableAddGet(t *testing.T) {
	tbl := NewStringTable(4)
	tbl.Add(model.ID(1), []byte("hello"))

	got, ok := tbl.Get(model.ID(1))
	require.True(t, ok)
	require.Equal(t, []byte("hello"), got)
	require.Equal(t, 1, tbl.Count())

	_, ok = tbl.Get(model.ID(2))
	require.False(t, ok)
}

func TestStringTableMustGetPanicsOnMiss(t *testing.T) {
	tbl := NewStringTable(4)
	require.Panics(t, func() { tbl.MustGet(model.ID(99)) })
}
