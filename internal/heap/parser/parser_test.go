package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

// buildDumpFile assembles a minimal but complete HPROF file: a header, one
// UTF8 string, one LOAD_CLASS record referencing it, and a HEAP_DUMP
// segment containing a class dump, an instance dump, and a GC root.
func buildDumpFile(t *testing.T) string {
	t.Helper()
	idSize := 4
	b := newByteBuilder(idSize)
	b.bytes(header("JAVA PROFILE 1.0.2", idSize))

	name := "java/lang/Object"
	utf8Body := newByteBuilder(idSize).id(1).bytes([]byte(name)).buf
	b.u1(byte(model.HPROF_UTF8)).u4(0).u4(uint32(len(utf8Body))).bytes(utf8Body)

	loadClassBody := newByteBuilder(idSize).u4(1).id(0x10).u4(0).id(1).buf
	b.u1(byte(model.HPROF_LOAD_CLASS)).u4(0).u4(uint32(len(loadClassBody))).bytes(loadClassBody)

	segment := buildMixedSegment(idSize)
	b.u1(byte(model.HPROF_HEAP_DUMP)).u4(0).u4(uint32(len(segment))).bytes(segment)

	dir := t.TempDir()
	path := filepath.Join(dir, "dump.hprof")
	require.NoError(t, os.WriteFile(path, b.buf, 0o644))
	return path
}

func TestStreamHeader(t *testing.T) {
	path := buildDumpFile(t)
	stream := NewStream(path)

	h, err := stream.Header()
	require.NoError(t, err)
	require.Equal(t, "JAVA PROFILE 1.0.2", h.Format)
	require.Equal(t, uint32(4), h.IdentifierSize)
}

func TestStreamReadRecordsDispatchesEveryKind(t *testing.T) {
	path := buildDumpFile(t)
	stream := NewStream(path)

	requested := model.NewRecordKindSet(
		model.RecordString, model.RecordLoadClass, model.RecordGCRoot,
		model.RecordClassSkip, model.RecordInstanceSkip,
	)
	counts := make(map[model.RecordKind]int)
	total, err := stream.ReadRecords(requested, func(position int64, kind model.RecordKind, rec any) error {
		counts[kind]++
		return nil
	})
	require.NoError(t, err)
	require.Greater(t, total, int64(0))
	require.Equal(t, 1, counts[model.RecordString])
	require.Equal(t, 1, counts[model.RecordLoadClass])
	require.Equal(t, 1, counts[model.RecordGCRoot])
	require.Equal(t, 1, counts[model.RecordClassSkip])
	require.Equal(t, 1, counts[model.RecordInstanceSkip])
}

func TestStreamReadRecordsIsRepeatable(t *testing.T) {
	path := buildDumpFile(t)
	stream := NewStream(path)

	requested := model.NewRecordKindSet(model.RecordString)
	firstCount := 0
	_, err := stream.ReadRecords(requested, func(int64, model.RecordKind, any) error {
		firstCount++
		return nil
	})
	require.NoError(t, err)

	secondCount := 0
	_, err = stream.ReadRecords(requested, func(int64, model.RecordKind, any) error {
		secondCount++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, firstCount, secondCount)
}

func TestStreamReadRecordsFiltersUnrequestedKinds(t *testing.T) {
	path := buildDumpFile(t)
	stream := NewStream(path)

	requested := model.NewRecordKindSet(model.RecordGCRoot)
	calls := 0
	_, err := stream.ReadRecords(requested, func(position int64, kind model.RecordKind, rec any) error {
		calls++
		require.Equal(t, model.RecordGCRoot, kind)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestStreamMissingFile(t *testing.T) {
	stream := NewStream(filepath.Join(t.TempDir(), "does-not-exist.hprof"))
	_, err := stream.Header()
	require.Error(t, err)
}
