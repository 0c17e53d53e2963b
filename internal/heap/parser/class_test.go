package parser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

func TestDecodeLoadClass(t *testing.T) {
	raw := newByteBuilder(4).
		u4(1).     // class serial number, unused
		id(0x100). // class object ID
		u4(0).     // stack trace serial, unused
		id(0x50).  // class name string ID
		buf
	reader := NewBinaryReader(bytes.NewReader(raw))
	reader.SetHeader(&model.HprofHeader{IdentifierSize: 4})

	rec, err := decodeLoadClass(reader)
	require.NoError(t, err)
	require.Equal(t, model.ID(0x100), rec.ClassID)
	require.Equal(t, model.ID(0x50), rec.ClassNameStringID)
}

func TestDecodeLoadClassTruncated(t *testing.T) {
	raw := newByteBuilder(4).u4(1).id(0x100).buf
	reader := NewBinaryReader(bytes.NewReader(raw))
	reader.SetHeader(&model.HprofHeader{IdentifierSize: 4})

	_, err := decodeLoadClass(reader)
	require.Error(t, err)
}
