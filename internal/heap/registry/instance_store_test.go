package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

func TestInstanceStoreRoundTrip(t *testing.T) {
	w := &widths{positionBytes: 2, instanceSizeBytes: 2}
	s := NewInstanceStore(4, w)
	s.Append(model.ID(200), 500, model.ID(100), 16)
	s.Freeze()

	entry, ok := s.Get(model.ID(200))
	require.True(t, ok)
	require.Equal(t, uint64(500), entry.Position)
	require.Equal(t, model.ID(100), entry.ClassID)
	require.Equal(t, uint64(16), entry.RecordSize)

	_, ok = s.Get(model.ID(999))
	require.False(t, ok)
}
