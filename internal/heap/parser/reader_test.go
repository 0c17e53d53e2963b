package parser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

func TestBinaryReaderPrimitives(t *testing.T) {
	raw := newByteBuilder(8).u1(0xAB).u2(0x1234).u4(0xDEADBEEF).u8(0x0102030405060708).buf
	reader := NewBinaryReader(bytes.NewReader(raw))

	u1, err := reader.ReadU1()
	require.NoError(t, err)
	require.Equal(t, uint8(0xAB), u1)

	u2, err := reader.ReadU2()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), u2)

	u4, err := reader.ReadU4()
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), u4)

	u8, err := reader.ReadU8()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), u8)

	require.Equal(t, int64(15), reader.BytesRead())
}

func TestBinaryReaderReadIDWithoutHeader(t *testing.T) {
	reader := NewBinaryReader(bytes.NewReader([]byte{0, 0, 0, 1}))
	_, err := reader.ReadID()
	require.Error(t, err)
}

func TestBinaryReaderReadID(t *testing.T) {
	raw := newByteBuilder(4).id(0x1234).buf
	reader := NewBinaryReader(bytes.NewReader(raw))
	reader.SetHeader(&model.HprofHeader{IdentifierSize: 4})

	id, err := reader.ReadID()
	require.NoError(t, err)
	require.Equal(t, model.ID(0x1234), id)
}

func TestBinaryReaderReadStringNullTerminated(t *testing.T) {
	raw := append([]byte("hello"), 0)
	reader := NewBinaryReader(bytes.NewReader(raw))
	s, err := reader.ReadString()
	require.NoError(t, err)
	require.Equal(t, "hello", s)
}

func TestBinaryReaderSkip(t *testing.T) {
	raw := []byte{1, 2, 3, 4, 5}
	reader := NewBinaryReader(bytes.NewReader(raw))
	require.NoError(t, reader.Skip(3))
	b, err := reader.ReadU1()
	require.NoError(t, err)
	require.Equal(t, uint8(4), b)
}

func TestBinaryReaderSkipPastEnd(t *testing.T) {
	reader := NewBinaryReader(bytes.NewReader([]byte{1, 2}))
	require.Error(t, reader.Skip(5))
}

func TestBinaryReaderReadRecordHeader(t *testing.T) {
	raw := newByteBuilder(4).u1(byte(model.HPROF_UTF8)).u4(100).u4(42).buf
	reader := NewBinaryReader(bytes.NewReader(raw))

	rec, err := reader.ReadRecordHeader()
	require.NoError(t, err)
	require.Equal(t, model.HPROF_UTF8, rec.Type)
	require.Equal(t, uint32(100), rec.TimeOffset)
	require.Equal(t, uint32(42), rec.Length)
}

func TestBinaryReaderReadUtf8String(t *testing.T) {
	reader := NewBinaryReader(bytes.NewReader([]byte("héllo")))
	s, err := reader.ReadUtf8String(len("héllo"))
	require.NoError(t, err)
	require.Equal(t, "héllo", s)
}

func TestBinaryReaderReadUtf8StringNegativeLength(t *testing.T) {
	reader := NewBinaryReader(bytes.NewReader(nil))
	_, err := reader.ReadUtf8String(-1)
	require.Error(t, err)
}
