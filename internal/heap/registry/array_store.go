package registry

import "github.com/mabhi256/hprofindex/internal/heap/model"

// ObjectArrayEntry is the decoded payload row for one object-array object.
type ObjectArrayEntry struct {
	Position     uint64
	ArrayClassID model.ID
	RecordSize   uint64
}

// ObjectArrayStore holds one row per object-array object: file position,
// array-class identifier, and record size.
type ObjectArrayStore struct {
	store *Store
	w     *widths
}

func NewObjectArrayStore(idSize int, w *widths) *ObjectArrayStore {
	rowWidth := w.positionBytes + idSize + w.objectArraySizeBytes
	return &ObjectArrayStore{store: NewStore(idSize, rowWidth), w: w}
}

func (s *ObjectArrayStore) Append(id model.ID, position uint64, arrayClassID model.ID, recordSize uint64) {
	row := s.store.Append(id)
	row.writeTruncatedLong(position, s.w.positionBytes)
	row.writeId(arrayClassID)
	row.writeTruncatedLong(recordSize, s.w.objectArraySizeBytes)
}

func (s *ObjectArrayStore) Freeze()             { s.store.Freeze() }
func (s *ObjectArrayStore) Len() int            { return s.store.Len() }
func (s *ObjectArrayStore) ByteSize() int        { return s.store.ByteSize() }
func (s *ObjectArrayStore) Contains(id model.ID) bool { return s.store.Contains(id) }
func (s *ObjectArrayStore) IndexOf(id model.ID) int   { return s.store.IndexOf(id) }
func (s *ObjectArrayStore) KeyAt(slot int) model.ID   { return s.store.KeyAt(slot) }

func (s *ObjectArrayStore) decode(row RowReader) ObjectArrayEntry {
	position := row.readTruncatedLong(s.w.positionBytes)
	arrayClassID := row.readId()
	recordSize := row.readTruncatedLong(s.w.objectArraySizeBytes)
	return ObjectArrayEntry{Position: position, ArrayClassID: arrayClassID, RecordSize: recordSize}
}

func (s *ObjectArrayStore) At(slot int) ObjectArrayEntry {
	return s.decode(s.store.At(slot))
}

func (s *ObjectArrayStore) Get(id model.ID) (ObjectArrayEntry, bool) {
	slot := s.store.IndexOf(id)
	if slot < 0 {
		return ObjectArrayEntry{}, false
	}
	return s.At(slot), true
}

// Sequence yields (id, entry) pairs in ascending identifier order.
func (s *ObjectArrayStore) Sequence() func(yield func(model.ID, ObjectArrayEntry) bool) {
	return func(yield func(model.ID, ObjectArrayEntry) bool) {
		for i := 0; i < s.store.Len(); i++ {
			if !yield(s.store.KeyAt(i), s.At(i)) {
				return
			}
		}
	}
}

// PrimitiveArrayEntry is the decoded payload row for one primitive-array
// object.
type PrimitiveArrayEntry struct {
	Position   uint64
	Type       model.HProfTagFieldType
	RecordSize uint64
}

// PrimitiveArrayStore holds one row per primitive-array object: file
// position, element-type tag, and record size.
type PrimitiveArrayStore struct {
	store *Store
	w     *widths
}

func NewPrimitiveArrayStore(idSize int, w *widths) *PrimitiveArrayStore {
	rowWidth := w.positionBytes + 1 + w.primitiveArraySizeBytes
	return &PrimitiveArrayStore{store: NewStore(idSize, rowWidth), w: w}
}

func (s *PrimitiveArrayStore) Append(id model.ID, position uint64, elemType model.HProfTagFieldType, recordSize uint64) {
	row := s.store.Append(id)
	row.writeTruncatedLong(position, s.w.positionBytes)
	row.writeByte(byte(elemType))
	row.writeTruncatedLong(recordSize, s.w.primitiveArraySizeBytes)
}

func (s *PrimitiveArrayStore) Freeze()             { s.store.Freeze() }
func (s *PrimitiveArrayStore) Len() int            { return s.store.Len() }
func (s *PrimitiveArrayStore) ByteSize() int        { return s.store.ByteSize() }
func (s *PrimitiveArrayStore) Contains(id model.ID) bool { return s.store.Contains(id) }
func (s *PrimitiveArrayStore) IndexOf(id model.ID) int   { return s.store.IndexOf(id) }
func (s *PrimitiveArrayStore) KeyAt(slot int) model.ID   { return s.store.KeyAt(slot) }

func (s *PrimitiveArrayStore) decode(row RowReader) PrimitiveArrayEntry {
	position := row.readTruncatedLong(s.w.positionBytes)
	elemType := model.HProfTagFieldType(row.readByte())
	recordSize := row.readTruncatedLong(s.w.primitiveArraySizeBytes)
	return PrimitiveArrayEntry{Position: position, Type: elemType, RecordSize: recordSize}
}

func (s *PrimitiveArrayStore) At(slot int) PrimitiveArrayEntry {
	return s.decode(s.store.At(slot))
}

func (s *PrimitiveArrayStore) Get(id model.ID) (PrimitiveArrayEntry, bool) {
	slot := s.store.IndexOf(id)
	if slot < 0 {
		return PrimitiveArrayEntry{}, false
	}
	return s.At(slot), true
}

// Sequence yields (id, entry) pairs in ascending identifier order.
func (s *PrimitiveArrayStore) Sequence() func(yield func(model.ID, PrimitiveArrayEntry) bool) {
	return func(yield func(model.ID, PrimitiveArrayEntry) bool) {
		for i := 0; i < s.store.Len(); i++ {
			if !yield(s.store.KeyAt(i), s.At(i)) {
				return
			}
		}
	}
}
