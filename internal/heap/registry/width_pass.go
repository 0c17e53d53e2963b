package registry

import (
	"fmt"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

// widths holds the per-dump byte widths derived from a width-selection
// pass: the minimum number of bytes needed to represent the largest
// observed value of each variable-width field.
type widths struct {
	idSize int

	positionBytes           int
	classSizeBytes          int
	instanceSizeBytes       int
	objectArraySizeBytes    int
	primitiveArraySizeBytes int

	canPackClassHighBit bool

	classCount          int
	instanceCount       int
	objectArrayCount    int
	primitiveArrayCount int
}

var widthPassKinds = model.NewRecordKindSet(
	model.RecordClassSkip,
	model.RecordInstanceSkip,
	model.RecordObjectArraySkip,
	model.RecordPrimitiveArraySkip,
)

// runWidthPass performs the first streaming sweep: it tallies per-kind
// counts and maxima without retaining any record, then derives the byte
// widths the indexing pass will pack rows with.
func runWidthPass(reader model.RecordReader, idSize int) (*widths, error) {
	var maxClassSize, maxInstanceSize, maxObjectArraySize, maxPrimitiveArraySize uint64
	w := &widths{idSize: idSize}

	totalBytesRead, err := reader.ReadRecords(widthPassKinds, func(_ int64, kind model.RecordKind, rec any) error {
		switch kind {
		case model.RecordClassSkip:
			r := rec.(model.ClassSkipRecord)
			w.classCount++
			if r.RecordSize > maxClassSize {
				maxClassSize = r.RecordSize
			}
		case model.RecordInstanceSkip:
			r := rec.(model.InstanceSkipRecord)
			w.instanceCount++
			if r.RecordSize > maxInstanceSize {
				maxInstanceSize = r.RecordSize
			}
		case model.RecordObjectArraySkip:
			r := rec.(model.ObjectArraySkipRecord)
			w.objectArrayCount++
			if r.RecordSize > maxObjectArraySize {
				maxObjectArraySize = r.RecordSize
			}
		case model.RecordPrimitiveArraySkip:
			r := rec.(model.PrimitiveArraySkipRecord)
			w.primitiveArrayCount++
			if r.RecordSize > maxPrimitiveArraySize {
				maxPrimitiveArraySize = r.RecordSize
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("width-selection pass failed: %w", err)
	}

	w.positionBytes = bytesForValue(uint64(totalBytesRead))
	w.classSizeBytes = bytesForValue(maxClassSize)
	w.instanceSizeBytes = bytesForValue(maxInstanceSize)
	w.objectArraySizeBytes = bytesForValue(maxObjectArraySize)
	w.primitiveArraySizeBytes = bytesForValue(maxPrimitiveArraySize)

	// Packing the hasRefFields flag into the top bit only pays off when
	// there's a spare bit to take: a zero-width size field has none.
	if w.classSizeBytes > 0 {
		topBit := uint64(1) << uint(w.classSizeBytes*8-1)
		w.canPackClassHighBit = maxClassSize&topBit == 0
	}

	return w, nil
}

// classPackedSize returns the row width used for recordSize+hasRefFields
// together: one shared field when packing is possible, one field plus a
// flag byte otherwise.
func (w *widths) classPackedSize() int {
	if w.canPackClassHighBit {
		return w.classSizeBytes
	}
	return w.classSizeBytes + 1
}
