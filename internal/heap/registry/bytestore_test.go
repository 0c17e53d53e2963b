package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(4, 4)
	w := s.Append(model.ID(300))
	w.writeInt(30)
	w = s.Append(model.ID(100))
	w.writeInt(10)
	w = s.Append(model.ID(200))
	w.writeInt(20)

	s.Freeze()

	require.Equal(t, 3, s.Len())
	require.True(t, s.Contains(model.ID(200)))
	require.False(t, s.Contains(model.ID(999)))

	slot := s.IndexOf(model.ID(200))
	require.GreaterOrEqual(t, slot, 0)
	row := s.At(slot)
	require.Equal(t, uint32(20), row.readInt())

	var keys []model.ID
	for id, _ := range s.Entries() {
		keys = append(keys, id)
	}
	require.Equal(t, []model.ID{100, 200, 300}, keys)
}

func TestStoreIndexOfMiss(t *testing.T) {
	s := NewStore(4, 0)
	s.Append(model.ID(5))
	s.Freeze()

	require.Equal(t, -1, s.IndexOf(model.ID(6)))
}

func TestStoreAppendAfterFreezePanics(t *testing.T) {
	s := NewStore(4, 0)
	s.Append(model.ID(1))
	s.Freeze()

	require.Panics(t, func() { s.Append(model.ID(2)) })
}

func TestStoreGrowsPastInitialCapacity(t *testing.T) {
	s := NewStore(8, 1)
	for i := 1; i <= storeInitialCapacity*3; i++ {
		w := s.Append(model.ID(i))
		w.writeByte(byte(i))
	}
	s.Freeze()

	require.Equal(t, storeInitialCapacity*3, s.Len())
	for i := 1; i <= storeInitialCapacity*3; i++ {
		slot := s.IndexOf(model.ID(i))
		require.GreaterOrEqual(t, slot, 0)
		row := s.At(slot)
		require.Equal(t, byte(i), row.readByte())
	}
}

func TestBytesForValue(t *testing.T) {
	cases := []struct {
		v    uint64
		want int
	}{
		{0, 0},
		{1, 1},
		{0xFF, 1},
		{0x100, 2},
		{0xFFFFFFFF, 4},
		{0x1_0000_0000, 5},
	}
	for _, c := range cases {
		require.Equal(t, c.want, bytesForValue(c.v))
	}
}
