package parser

import (
	"fmt"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

/*
decodeObjectArrayDump decodes a HPROF_GC_OBJ_ARRAY_DUMP sub-record,
skipping the element identifiers themselves.

	id    						Array object ID
	u4    						Stack trace serial number
	u4    						Array length (number of elements)
	id    						Array class object ID
	[id]*                       Elements (skipped)
*/
func decodeObjectArrayDump(reader *BinaryReader) (model.ObjectArraySkipRecord, error) {
	id, err := reader.ReadID()
	if err != nil {
		return model.ObjectArraySkipRecord{}, fmt.Errorf("failed to read array object ID: %w", err)
	}

	if _, err := reader.ReadU4(); err != nil { // stack trace serial, unused
		return model.ObjectArraySkipRecord{}, fmt.Errorf("failed to read stack trace serial: %w", err)
	}

	length, err := reader.ReadU4()
	if err != nil {
		return model.ObjectArraySkipRecord{}, fmt.Errorf("failed to read array length: %w", err)
	}

	classID, err := reader.ReadID()
	if err != nil {
		return model.ObjectArraySkipRecord{}, fmt.Errorf("failed to read array class ID: %w", err)
	}

	recordSize := uint64(length) * uint64(reader.Header().IdentifierSize)
	if err := reader.Skip(int(recordSize)); err != nil {
		return model.ObjectArraySkipRecord{}, fmt.Errorf("failed to skip array elements: %w", err)
	}

	return model.ObjectArraySkipRecord{ID: id, ArrayClassID: classID, RecordSize: recordSize}, nil
}

/*
decodePrimitiveArrayDump decodes a HPROF_GC_PRIM_ARRAY_DUMP sub-record,
skipping the packed element bytes themselves.

	id    						Array object ID
	u4    						Stack trace serial number
	u4    						Array length (number of elements)
	u1    						Element type
	[u1]*                       Elements (skipped)
*/
func decodePrimitiveArrayDump(reader *BinaryReader) (model.PrimitiveArraySkipRecord, error) {
	id, err := reader.ReadID()
	if err != nil {
		return model.PrimitiveArraySkipRecord{}, fmt.Errorf("failed to read array object ID: %w", err)
	}

	if _, err := reader.ReadU4(); err != nil { // stack trace serial, unused
		return model.PrimitiveArraySkipRecord{}, fmt.Errorf("failed to read stack trace serial: %w", err)
	}

	length, err := reader.ReadU4()
	if err != nil {
		return model.PrimitiveArraySkipRecord{}, fmt.Errorf("failed to read array length: %w", err)
	}

	typeRaw, err := reader.ReadU1()
	if err != nil {
		return model.PrimitiveArraySkipRecord{}, fmt.Errorf("failed to read element type: %w", err)
	}
	elementType := model.HProfTagFieldType(typeRaw)

	elementSize := elementType.Size(reader.Header().IdentifierSize)
	if elementSize == 0 {
		return model.PrimitiveArraySkipRecord{}, fmt.Errorf("unknown primitive array element type: 0x%02x", typeRaw)
	}

	recordSize := uint64(length) * uint64(elementSize)
	if err := reader.Skip(int(recordSize)); err != nil {
		return model.PrimitiveArraySkipRecord{}, fmt.Errorf("failed to skip array elements: %w", err)
	}

	return model.PrimitiveArraySkipRecord{ID: id, Type: elementType, RecordSize: recordSize}, nil
}
