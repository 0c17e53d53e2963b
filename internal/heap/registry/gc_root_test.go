package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

func TestRootCollectorDropsNullAndFiltersKind(t *testing.T) {
	c := newRootCollector(NewRootKindSet(model.HPROF_GC_ROOT_JNI_GLOBAL))
	c.add(model.GCRootRecord{Kind: model.HPROF_GC_ROOT_JNI_GLOBAL, ID: 0})
	c.add(model.GCRootRecord{Kind: model.HPROF_GC_ROOT_JNI_GLOBAL, ID: 5})
	c.add(model.GCRootRecord{Kind: model.HPROF_GC_ROOT_STICKY_CLASS, ID: 6})

	list := c.finish()
	require.Equal(t, 1, list.Len())

	var ids []model.ID
	for r := range list.Sequence() {
		ids = append(ids, r.ID)
	}
	require.Equal(t, []model.ID{5}, ids)
}

func TestRootCollectorNilKindsSelectsAll(t *testing.T) {
	c := newRootCollector(nil)
	c.add(model.GCRootRecord{Kind: model.HPROF_GC_ROOT_JNI_GLOBAL, ID: 1})
	c.add(model.GCRootRecord{Kind: model.HPROF_GC_ROOT_STICKY_CLASS, ID: 2})

	require.Equal(t, 2, c.finish().Len())
}
