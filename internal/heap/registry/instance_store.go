package registry

import "github.com/mabhi256/hprofindex/internal/heap/model"

// InstanceEntry is the decoded payload row for one instance object.
type InstanceEntry struct {
	Position   uint64
	ClassID    model.ID
	RecordSize uint64
}

// InstanceStore holds one row per instance object: file position, class
// identifier, and record size.
type InstanceStore struct {
	store *Store
	w     *widths
}

func NewInstanceStore(idSize int, w *widths) *InstanceStore {
	rowWidth := w.positionBytes + idSize + w.instanceSizeBytes
	return &InstanceStore{store: NewStore(idSize, rowWidth), w: w}
}

func (s *InstanceStore) Append(id model.ID, position uint64, classID model.ID, recordSize uint64) {
	row := s.store.Append(id)
	row.writeTruncatedLong(position, s.w.positionBytes)
	row.writeId(classID)
	row.writeTruncatedLong(recordSize, s.w.instanceSizeBytes)
}

func (s *InstanceStore) Freeze()             { s.store.Freeze() }
func (s *InstanceStore) Len() int            { return s.store.Len() }
func (s *InstanceStore) ByteSize() int        { return s.store.ByteSize() }
func (s *InstanceStore) Contains(id model.ID) bool { return s.store.Contains(id) }
func (s *InstanceStore) IndexOf(id model.ID) int   { return s.store.IndexOf(id) }
func (s *InstanceStore) KeyAt(slot int) model.ID   { return s.store.KeyAt(slot) }

func (s *InstanceStore) decode(row RowReader) InstanceEntry {
	position := row.readTruncatedLong(s.w.positionBytes)
	classID := row.readId()
	recordSize := row.readTruncatedLong(s.w.instanceSizeBytes)
	return InstanceEntry{Position: position, ClassID: classID, RecordSize: recordSize}
}

func (s *InstanceStore) At(slot int) InstanceEntry {
	return s.decode(s.store.At(slot))
}

func (s *InstanceStore) Get(id model.ID) (InstanceEntry, bool) {
	slot := s.store.IndexOf(id)
	if slot < 0 {
		return InstanceEntry{}, false
	}
	return s.At(slot), true
}

// Sequence yields (id, entry) pairs in ascending identifier order.
func (s *InstanceStore) Sequence() func(yield func(model.ID, InstanceEntry) bool) {
	return func(yield func(model.ID, InstanceEntry) bool) {
		for i := 0; i < s.store.Len(); i++ {
			if !yield(s.store.KeyAt(i), s.At(i)) {
				return
			}
		}
	}
}
