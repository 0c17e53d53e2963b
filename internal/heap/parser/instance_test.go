package parser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

func TestDecodeInstanceDump(t *testing.T) {
	fieldData := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	raw := newByteBuilder(4).
		id(0x400).              // object ID
		u4(0).                  // stack trace serial
		id(0x10).                // class ID
		u4(uint32(len(fieldData))). // instance data size
		bytes(fieldData).
		buf
	reader := NewBinaryReader(bytes.NewReader(raw))
	reader.SetHeader(&model.HprofHeader{IdentifierSize: 4})

	rec, err := decodeInstanceDump(reader)
	require.NoError(t, err)
	require.Equal(t, model.ID(0x400), rec.ID)
	require.Equal(t, model.ID(0x10), rec.ClassID)
	require.Equal(t, uint64(len(fieldData)), rec.RecordSize)
	require.Equal(t, int64(len(raw)), reader.BytesRead())
}

func TestDecodeInstanceDumpZeroSize(t *testing.T) {
	raw := newByteBuilder(4).id(0x400).u4(0).id(0x10).u4(0).buf
	reader := NewBinaryReader(bytes.NewReader(raw))
	reader.SetHeader(&model.HprofHeader{IdentifierSize: 4})

	rec, err := decodeInstanceDump(reader)
	require.NoError(t, err)
	require.Equal(t, uint64(0), rec.RecordSize)
}

func TestDecodeInstanceDumpTruncatedFieldData(t *testing.T) {
	raw := newByteBuilder(4).id(0x400).u4(0).id(0x10).u4(10).bytes([]byte{1, 2}).buf
	reader := NewBinaryReader(bytes.NewReader(raw))
	reader.SetHeader(&model.HprofHeader{IdentifierSize: 4})

	_, err := decodeInstanceDump(reader)
	require.Error(t, err)
}
