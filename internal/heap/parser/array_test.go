package parser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

func TestDecodeObjectArrayDump(t *testing.T) {
	const length = 3
	b := newByteBuilder(4).
		id(0x500). // array object ID
		u4(0).     // stack trace serial
		u4(length).
		id(0x10) // array class ID
	for i := 0; i < length; i++ {
		b.id(uint64(0x600 + i))
	}
	raw := b.buf
	reader := NewBinaryReader(bytes.NewReader(raw))
	reader.SetHeader(&model.HprofHeader{IdentifierSize: 4})

	rec, err := decodeObjectArrayDump(reader)
	require.NoError(t, err)
	require.Equal(t, model.ID(0x500), rec.ID)
	require.Equal(t, model.ID(0x10), rec.ArrayClassID)
	require.Equal(t, uint64(length*4), rec.RecordSize)
	require.Equal(t, int64(len(raw)), reader.BytesRead())
}

func TestDecodeObjectArrayDumpEmpty(t *testing.T) {
	raw := newByteBuilder(8).id(0x500).u4(0).u4(0).id(0x10).buf
	reader := NewBinaryReader(bytes.NewReader(raw))
	reader.SetHeader(&model.HprofHeader{IdentifierSize: 8})

	rec, err := decodeObjectArrayDump(reader)
	require.NoError(t, err)
	require.Equal(t, uint64(0), rec.RecordSize)
}

func TestDecodePrimitiveArrayDumpInts(t *testing.T) {
	const length = 4
	raw := newByteBuilder(4).
		id(0x700).
		u4(0).
		u4(length).
		u1(byte(model.HPROF_INT)).
		bytes(make([]byte, length*4)).
		buf
	reader := NewBinaryReader(bytes.NewReader(raw))
	reader.SetHeader(&model.HprofHeader{IdentifierSize: 4})

	rec, err := decodePrimitiveArrayDump(reader)
	require.NoError(t, err)
	require.Equal(t, model.ID(0x700), rec.ID)
	require.Equal(t, model.HPROF_INT, rec.Type)
	require.Equal(t, uint64(length*4), rec.RecordSize)
}

func TestDecodePrimitiveArrayDumpUnknownType(t *testing.T) {
	raw := newByteBuilder(4).id(0x700).u4(0).u4(1).u1(0xEE).buf
	reader := NewBinaryReader(bytes.NewReader(raw))
	reader.SetHeader(&model.HprofHeader{IdentifierSize: 4})

	_, err := decodePrimitiveArrayDump(reader)
	require.Error(t, err)
}

func TestDecodePrimitiveArrayDumpTruncatedElements(t *testing.T) {
	raw := newByteBuilder(4).id(0x700).u4(0).u4(2).u1(byte(model.HPROF_LONG)).bytes([]byte{1, 2}).buf
	reader := NewBinaryReader(bytes.NewReader(raw))
	reader.SetHeader(&model.HprofHeader{IdentifierSize: 4})

	_, err := decodePrimitiveArrayDump(reader)
	require.Error(t, err)
}
