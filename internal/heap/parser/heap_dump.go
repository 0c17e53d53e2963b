package parser

import (
	"fmt"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

/*
decodeHeapDumpSegment decodes a HPROF_HEAP_DUMP or HPROF_HEAP_DUMP_SEGMENT
record: a back-to-back sequence of sub-records, each tagged by a one-byte
discriminator, running until exactly 'length' bytes have been consumed.
Only sub-records whose decoded kind is in 'requested' are reported to
onRecord; every sub-record still has to be walked structurally (even
class dumps, whose constant pool and static field values are otherwise
unused) because nothing else reveals how many bytes it occupies.
*/
func decodeHeapDumpSegment(reader *BinaryReader, length uint32, requested model.RecordKindSet,
	onRecord func(filePosition int64, kind model.RecordKind, rec any) error,
) error {
	if length == 0 {
		return nil
	}

	segmentStart := reader.BytesRead()
	segmentEnd := segmentStart + int64(length)

	for reader.BytesRead() < segmentEnd {
		beforeSubRecord := reader.BytesRead()

		subRecordRaw, err := reader.ReadU1()
		if err != nil {
			return fmt.Errorf("failed to read sub-record type at offset %d: %w", beforeSubRecord, err)
		}
		if subRecordRaw == 0 {
			// No sub-record uses tag 0: the rest of the segment is padding.
			break
		}
		subRecordType := model.HProfTagSubRecord(subRecordRaw)

		if err := dispatchSubRecord(reader, subRecordType, beforeSubRecord, requested, onRecord); err != nil {
			return fmt.Errorf("failed to decode sub-record 0x%02x at offset %d: %w", byte(subRecordType), beforeSubRecord, err)
		}

		afterSubRecord := reader.BytesRead()
		if afterSubRecord > segmentEnd {
			return fmt.Errorf("sub-record 0x%02x exceeded segment boundary: at %d, segment ends at %d",
				byte(subRecordType), afterSubRecord, segmentEnd)
		}
		if afterSubRecord <= beforeSubRecord {
			return fmt.Errorf("no progress made decoding sub-record 0x%02x at offset %d", byte(subRecordType), beforeSubRecord)
		}
	}

	remaining := segmentEnd - reader.BytesRead()
	if remaining > 0 {
		return reader.Skip(int(remaining))
	} else if remaining < 0 {
		return fmt.Errorf("read %d bytes beyond segment boundary", -remaining)
	}
	return nil
}

func dispatchSubRecord(reader *BinaryReader, subRecordType model.HProfTagSubRecord, position int64,
	requested model.RecordKindSet, onRecord func(filePosition int64, kind model.RecordKind, rec any) error,
) error {
	switch subRecordType {
	case model.HPROF_GC_ROOT_UNKNOWN, model.HPROF_GC_ROOT_JNI_GLOBAL, model.HPROF_GC_ROOT_JNI_LOCAL,
		model.HPROF_GC_ROOT_JAVA_FRAME, model.HPROF_GC_ROOT_NATIVE_STACK, model.HPROF_GC_ROOT_STICKY_CLASS,
		model.HPROF_GC_ROOT_THREAD_BLOCK, model.HPROF_GC_ROOT_MONITOR_USED, model.HPROF_GC_ROOT_THREAD_OBJ:
		id, err := decodeGCRoot(reader, subRecordType)
		if err != nil {
			return err
		}
		if requested.Has(model.RecordGCRoot) {
			return onRecord(position, model.RecordGCRoot, model.GCRootRecord{Kind: subRecordType, ID: id})
		}
		return nil

	case model.HPROF_GC_CLASS_DUMP:
		rec, _, err := decodeClassDump(reader)
		if err != nil {
			return err
		}
		if requested.Has(model.RecordClassSkip) {
			return onRecord(position, model.RecordClassSkip, rec)
		}
		return nil

	case model.HPROF_GC_INSTANCE_DUMP:
		rec, err := decodeInstanceDump(reader)
		if err != nil {
			return err
		}
		if requested.Has(model.RecordInstanceSkip) {
			return onRecord(position, model.RecordInstanceSkip, rec)
		}
		return nil

	case model.HPROF_GC_OBJ_ARRAY_DUMP:
		rec, err := decodeObjectArrayDump(reader)
		if err != nil {
			return err
		}
		if requested.Has(model.RecordObjectArraySkip) {
			return onRecord(position, model.RecordObjectArraySkip, rec)
		}
		return nil

	case model.HPROF_GC_PRIM_ARRAY_DUMP:
		rec, err := decodePrimitiveArrayDump(reader)
		if err != nil {
			return err
		}
		if requested.Has(model.RecordPrimitiveArraySkip) {
			return onRecord(position, model.RecordPrimitiveArraySkip, rec)
		}
		return nil

	default:
		return fmt.Errorf("unknown sub-record type: 0x%02x at offset %d", subRecordType, position)
	}
}
