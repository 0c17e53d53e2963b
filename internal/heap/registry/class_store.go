package registry

import "github.com/mabhi256/hprofindex/internal/heap/model"

// ClassEntry is the decoded payload row for one class object.
type ClassEntry struct {
	Position     uint64
	SuperclassID model.ID
	InstanceSize uint32
	RecordSize   uint64
	HasRefFields bool
}

// ClassStore holds one row per class object: file position, superclass
// identifier, declared instance size, and the record size packed together
// with the has-reference-fields flag.
type ClassStore struct {
	store *Store
	w     *widths
}

func NewClassStore(idSize int, w *widths) *ClassStore {
	rowWidth := w.positionBytes + idSize + 4 + w.classPackedSize()
	return &ClassStore{store: NewStore(idSize, rowWidth), w: w}
}

func (s *ClassStore) Append(id model.ID, position uint64, superclassID model.ID, instanceSize uint32, recordSize uint64, hasRefFields bool) {
	row := s.store.Append(id)
	row.writeTruncatedLong(position, s.w.positionBytes)
	row.writeId(superclassID)
	row.writeInt(instanceSize)
	if s.w.canPackClassHighBit {
		packed := recordSize
		if hasRefFields {
			packed |= uint64(1) << uint(s.w.classSizeBytes*8-1)
		}
		row.writeTruncatedLong(packed, s.w.classSizeBytes)
	} else {
		row.writeTruncatedLong(recordSize, s.w.classSizeBytes)
		if hasRefFields {
			row.writeByte(1)
		} else {
			row.writeByte(0)
		}
	}
}

func (s *ClassStore) Freeze()             { s.store.Freeze() }
func (s *ClassStore) Len() int            { return s.store.Len() }
func (s *ClassStore) ByteSize() int        { return s.store.ByteSize() }
func (s *ClassStore) Contains(id model.ID) bool { return s.store.Contains(id) }
func (s *ClassStore) IndexOf(id model.ID) int   { return s.store.IndexOf(id) }
func (s *ClassStore) KeyAt(slot int) model.ID   { return s.store.KeyAt(slot) }

func (s *ClassStore) decode(row RowReader) ClassEntry {
	position := row.readTruncatedLong(s.w.positionBytes)
	superclassID := row.readId()
	instanceSize := row.readInt()

	var recordSize uint64
	var hasRefFields bool
	if s.w.canPackClassHighBit {
		packed := row.readTruncatedLong(s.w.classSizeBytes)
		topBit := uint64(1) << uint(s.w.classSizeBytes*8-1)
		hasRefFields = packed&topBit != 0
		recordSize = packed &^ topBit
	} else {
		recordSize = row.readTruncatedLong(s.w.classSizeBytes)
		hasRefFields = row.readByte() != 0
	}

	return ClassEntry{
		Position:     position,
		SuperclassID: superclassID,
		InstanceSize: instanceSize,
		RecordSize:   recordSize,
		HasRefFields: hasRefFields,
	}
}

func (s *ClassStore) At(slot int) ClassEntry {
	return s.decode(s.store.At(slot))
}

func (s *ClassStore) Get(id model.ID) (ClassEntry, bool) {
	slot := s.store.IndexOf(id)
	if slot < 0 {
		return ClassEntry{}, false
	}
	return s.At(slot), true
}

// Sequence yields (id, entry) pairs in ascending identifier order.
func (s *ClassStore) Sequence() func(yield func(model.ID, ClassEntry) bool) {
	return func(yield func(model.ID, ClassEntry) bool) {
		for i := 0; i < s.store.Len(); i++ {
			if !yield(s.store.KeyAt(i), s.At(i)) {
				return
			}
		}
	}
}
