package parser

import (
	"fmt"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

/*
decodeInstanceDump decodes a HPROF_GC_INSTANCE_DUMP sub-record's header
and skips the field value bytes entirely — the index only needs enough
to answer "what class is this, and where/how big is it on disk."

	id    						Object ID
	u4    						Stack trace serial number
	id    						Class object ID
	u4    						Instance data size in bytes
	[u1]*                       Instance field data (skipped)
*/
func decodeInstanceDump(reader *BinaryReader) (model.InstanceSkipRecord, error) {
	id, err := reader.ReadID()
	if err != nil {
		return model.InstanceSkipRecord{}, fmt.Errorf("failed to read object ID: %w", err)
	}

	if _, err := reader.ReadU4(); err != nil { // stack trace serial, unused
		return model.InstanceSkipRecord{}, fmt.Errorf("failed to read stack trace serial: %w", err)
	}

	classID, err := reader.ReadID()
	if err != nil {
		return model.InstanceSkipRecord{}, fmt.Errorf("failed to read class object ID: %w", err)
	}

	size, err := reader.ReadU4()
	if err != nil {
		return model.InstanceSkipRecord{}, fmt.Errorf("failed to read instance data size: %w", err)
	}

	if err := reader.Skip(int(size)); err != nil {
		return model.InstanceSkipRecord{}, fmt.Errorf("failed to skip instance data: %w", err)
	}

	return model.InstanceSkipRecord{ID: id, ClassID: classID, RecordSize: uint64(size)}, nil
}
