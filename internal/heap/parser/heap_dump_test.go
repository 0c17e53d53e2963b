package parser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

type recordedSubRecord struct {
	position int64
	kind     model.RecordKind
	value    any
}

func buildMixedSegment(idSize int) []byte {
	b := newByteBuilder(idSize)

	b.u1(byte(model.HPROF_GC_ROOT_STICKY_CLASS)).id(0x1)

	classDump := classDumpBody(idSize, 8, []struct {
		nameID uint64
		typ    model.HProfTagFieldType
	}{{nameID: 0x300, typ: model.HPROF_INT}})
	b.u1(byte(model.HPROF_GC_CLASS_DUMP)).bytes(classDump)

	instanceFields := []byte{1, 2, 3, 4}
	b.u1(byte(model.HPROF_GC_INSTANCE_DUMP)).
		id(0x400).u4(0).id(0x10).u4(uint32(len(instanceFields))).bytes(instanceFields)

	return b.buf
}

func TestDecodeHeapDumpSegmentDispatchesAllKinds(t *testing.T) {
	segment := buildMixedSegment(4)
	reader := NewBinaryReader(bytes.NewReader(segment))
	reader.SetHeader(&model.HprofHeader{IdentifierSize: 4})

	requested := model.NewRecordKindSet(model.RecordGCRoot, model.RecordClassSkip, model.RecordInstanceSkip)
	var got []recordedSubRecord
	err := decodeHeapDumpSegment(reader, uint32(len(segment)), requested,
		func(position int64, kind model.RecordKind, rec any) error {
			got = append(got, recordedSubRecord{position, kind, rec})
			return nil
		})
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, model.RecordGCRoot, got[0].kind)
	require.Equal(t, model.RecordClassSkip, got[1].kind)
	require.Equal(t, model.RecordInstanceSkip, got[2].kind)

	gcRoot := got[0].value.(model.GCRootRecord)
	require.Equal(t, model.ID(0x1), gcRoot.ID)

	classRec := got[1].value.(model.ClassSkipRecord)
	require.Equal(t, model.ID(0x10), classRec.ID)

	instanceRec := got[2].value.(model.InstanceSkipRecord)
	require.Equal(t, model.ID(0x400), instanceRec.ID)
}

func TestDecodeHeapDumpSegmentFiltersUnrequestedKinds(t *testing.T) {
	segment := buildMixedSegment(4)
	reader := NewBinaryReader(bytes.NewReader(segment))
	reader.SetHeader(&model.HprofHeader{IdentifierSize: 4})

	requested := model.NewRecordKindSet(model.RecordInstanceSkip)
	var got []recordedSubRecord
	err := decodeHeapDumpSegment(reader, uint32(len(segment)), requested,
		func(position int64, kind model.RecordKind, rec any) error {
			got = append(got, recordedSubRecord{position, kind, rec})
			return nil
		})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, model.RecordInstanceSkip, got[0].kind)
}

func TestDecodeHeapDumpSegmentEmpty(t *testing.T) {
	reader := NewBinaryReader(bytes.NewReader(nil))
	reader.SetHeader(&model.HprofHeader{IdentifierSize: 4})

	called := false
	err := decodeHeapDumpSegment(reader, 0, nil, func(int64, model.RecordKind, any) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.False(t, called)
}

func TestDecodeHeapDumpSegmentTrailingPadding(t *testing.T) {
	raw := newByteBuilder(4).u1(byte(model.HPROF_GC_ROOT_STICKY_CLASS)).id(0x1).bytes([]byte{0, 0, 0}).buf
	reader := NewBinaryReader(bytes.NewReader(raw))
	reader.SetHeader(&model.HprofHeader{IdentifierSize: 4})

	err := decodeHeapDumpSegment(reader, uint32(len(raw)), nil, func(int64, model.RecordKind, any) error {
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, int64(len(raw)), reader.BytesRead())
}

func TestDecodeHeapDumpSegmentExceedsBoundary(t *testing.T) {
	raw := newByteBuilder(4).u1(byte(model.HPROF_GC_ROOT_JAVA_FRAME)).id(0x1).u4(1).u4(2).buf
	reader := NewBinaryReader(bytes.NewReader(raw))
	reader.SetHeader(&model.HprofHeader{IdentifierSize: 4})

	// Declare a segment shorter than the sub-record it contains.
	err := decodeHeapDumpSegment(reader, uint32(len(raw)-2), nil, func(int64, model.RecordKind, any) error {
		return nil
	})
	require.Error(t, err)
}

func TestDecodeHeapDumpSegmentUnknownSubRecord(t *testing.T) {
	raw := newByteBuilder(4).u1(0x99).buf
	reader := NewBinaryReader(bytes.NewReader(raw))
	reader.SetHeader(&model.HprofHeader{IdentifierSize: 4})

	err := decodeHeapDumpSegment(reader, uint32(len(raw)), nil, func(int64, model.RecordKind, any) error {
		return nil
	})
	require.Error(t, err)
}
