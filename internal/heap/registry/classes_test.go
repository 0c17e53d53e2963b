package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

func TestIsWellKnownPrimitiveWrapperName(t *testing.T) {
	require.True(t, isWellKnownPrimitiveWrapperName([]byte("java/lang/Integer")))
	require.True(t, isWellKnownPrimitiveWrapperName([]byte("java/lang/Boolean")))
	require.True(t, isWellKnownPrimitiveWrapperName([]byte("java.lang.Integer")))
	require.False(t, isWellKnownPrimitiveWrapperName([]byte("java/lang/String")))
}

func TestClassNamesAddLookup(t *testing.T) {
	cn := NewClassNames(4)
	cn.Add(model.ID(10), model.ID(1))

	nameID, ok := cn.NameStringID(model.ID(10))
	require.True(t, ok)
	require.Equal(t, model.ID(1), nameID)
	require.Equal(t, 1, cn.Len())

	_, ok = cn.NameStringID(model.ID(99))
	require.False(t, ok)
}
