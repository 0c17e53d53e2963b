package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

/*
*	HProf binary format described here
*	https://github.com/openjdk/jdk/blob/master/src/hotspot/share/services/heapDumper.cpp
 */

// Stream is the concrete streaming HPROF reader the index builder runs its
// two passes against. Each call to ReadRecords opens the underlying file
// fresh and reads from the start, independent of any prior call, so the
// same Stream can be handed to both the width-selection and indexing
// passes without the caller managing file handles.
type Stream struct {
	filename string
}

func NewStream(filename string) *Stream {
	return &Stream{filename: filename}
}

// Header opens the file just far enough to read its header.
func (s *Stream) Header() (*model.HprofHeader, error) {
	file, err := os.Open(s.filename)
	if err != nil {
		return nil, fmt.Errorf("unable to open file: %w", err)
	}
	defer file.Close()

	return ParseHeader(NewBinaryReader(file))
}

// ReadRecords implements model.RecordReader.
func (s *Stream) ReadRecords(requested model.RecordKindSet,
	onRecord func(filePosition int64, kind model.RecordKind, rec any) error,
) (int64, error) {
	file, err := os.Open(s.filename)
	if err != nil {
		return 0, fmt.Errorf("unable to open file: %w", err)
	}
	defer file.Close()

	reader := NewBinaryReader(file)
	if _, err := ParseHeader(reader); err != nil {
		return 0, fmt.Errorf("failed to parse header: %w", err)
	}

	for {
		cursor := reader.BytesRead()

		record, err := reader.ReadRecordHeader()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read record header at offset %d: %w", cursor, err)
		}

		if err := dispatchTopRecord(reader, record, requested, onRecord); err != nil {
			return 0, fmt.Errorf("failed to decode %s record at offset %d: %w", record.Type, cursor, err)
		}
	}

	return reader.BytesRead(), nil
}

func dispatchTopRecord(reader *BinaryReader, record *model.HprofRecord, requested model.RecordKindSet,
	onRecord func(filePosition int64, kind model.RecordKind, rec any) error,
) error {
	position := reader.BytesRead()

	switch record.Type {
	case model.HPROF_UTF8:
		rec, err := decodeUTF8(reader, record.Length)
		if err != nil {
			return err
		}
		if requested.Has(model.RecordString) {
			return onRecord(position, model.RecordString, rec)
		}
		return nil

	case model.HPROF_LOAD_CLASS:
		rec, err := decodeLoadClass(reader)
		if err != nil {
			return err
		}
		if requested.Has(model.RecordLoadClass) {
			return onRecord(position, model.RecordLoadClass, rec)
		}
		return nil

	case model.HPROF_HEAP_DUMP, model.HPROF_HEAP_DUMP_SEGMENT:
		return decodeHeapDumpSegment(reader, record.Length, requested, onRecord)

	default:
		// UNLOAD_CLASS, FRAME, TRACE, ALLOC_SITES, HEAP_SUMMARY,
		// START_THREAD, END_THREAD, CPU_SAMPLES, CONTROL_SETTINGS,
		// HEAP_DUMP_END: none of these feed the seven indexed record
		// kinds, so their bodies are skipped wholesale.
		return reader.Skip(int(record.Length))
	}
}
