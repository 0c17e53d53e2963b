package registry

import (
	"bytes"
	"sort"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

const storeInitialCapacity = 16

// Store is a variable-width byte-packed container mapping a 64-bit object
// identifier to a fixed-width payload row. It starts in build mode,
// accepting Append calls in arbitrary order, and becomes read-only once
// Freeze sorts its rows by identifier and discards the write cursor.
// Entries are packed back-to-back in one contiguous buffer with no
// per-entry header beyond the identifier prefix.
type Store struct {
	idSize   int
	width    int
	buf      []byte
	count    int
	capacity int
	frozen   bool
}

// NewStore creates a build-mode store whose identifiers are idSize bytes
// wide and whose payload rows are width bytes wide.
func NewStore(idSize, width int) *Store {
	return &Store{idSize: idSize, width: width}
}

func (s *Store) rowSize() int { return s.idSize + s.width }

// Append reserves one row for id and returns a writer positioned at the
// start of its payload. The caller must write exactly `width` bytes
// through the writer, in the order the row's fields are declared, before
// the store is frozen.
func (s *Store) Append(id model.ID) *RowWriter {
	if s.frozen {
		panic(InvariantViolation{Msg: "Append called on a frozen store"})
	}

	s.ensureCapacity(s.count + 1)
	offset := s.count * s.rowSize()
	putUintN(s.buf[offset:offset+s.idSize], uint64(id), s.idSize)
	s.count++

	return &RowWriter{row: s.buf[offset+s.idSize : offset+s.rowSize()], idSize: s.idSize}
}

func (s *Store) ensureCapacity(rows int) {
	if rows <= s.capacity {
		return
	}
	newCap := s.capacity
	if newCap == 0 {
		newCap = storeInitialCapacity
	}
	for newCap < rows {
		newCap *= 2
	}
	grown := make([]byte, newCap*s.rowSize())
	copy(grown, s.buf)
	s.buf = grown
	s.capacity = newCap
}

// Freeze sorts all appended rows ascending by identifier (compared as
// unsigned big-endian bytes) and switches the store to read mode. It is a
// no-op if called twice.
func (s *Store) Freeze() {
	if s.frozen {
		return
	}
	sort.Sort(rowSlice{buf: s.buf, rowSize: s.rowSize(), idSize: s.idSize, n: s.count})
	s.buf = s.buf[:s.count*s.rowSize()]
	s.frozen = true
}

// Len returns the number of rows in the store.
func (s *Store) Len() int { return s.count }

// ByteSize returns the total size in bytes of the packed rows currently
// held, i.e. count*rowSize. Valid before and after Freeze.
func (s *Store) ByteSize() int { return s.count * s.rowSize() }

// Contains reports whether id is present in the store.
func (s *Store) Contains(id model.ID) bool { return s.IndexOf(id) >= 0 }

// IndexOf returns the slot of id via binary search, or -1 if absent.
// Requires the store to be frozen.
func (s *Store) IndexOf(id model.ID) int {
	if !s.frozen {
		panic(InvariantViolation{Msg: "IndexOf called on an unfrozen store"})
	}

	key := make([]byte, s.idSize)
	putUintN(key, uint64(id), s.idSize)

	lo, hi := 0, s.count
	for lo < hi {
		mid := (lo + hi) / 2
		offset := mid * s.rowSize()
		cmp := bytes.Compare(s.buf[offset:offset+s.idSize], key)
		switch {
		case cmp == 0:
			return mid
		case cmp < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return -1
}

// At returns a reader over the payload row at slot. Panics if slot is out
// of range.
func (s *Store) At(slot int) RowReader {
	if !s.frozen {
		panic(InvariantViolation{Msg: "At called on an unfrozen store"})
	}
	if slot < 0 || slot >= s.count {
		panic(InvariantViolation{Msg: "slot out of range"})
	}
	offset := slot*s.rowSize() + s.idSize
	return RowReader{row: s.buf[offset : offset+s.width], idSize: s.idSize}
}

// KeyAt returns the identifier at slot. Panics if slot is out of range.
func (s *Store) KeyAt(slot int) model.ID {
	if slot < 0 || slot >= s.count {
		panic(InvariantViolation{Msg: "slot out of range"})
	}
	offset := slot * s.rowSize()
	return model.ID(getUintN(s.buf[offset : offset+s.idSize]))
}

// Entries yields (identifier, row) pairs in ascending identifier order.
// Requires the store to be frozen. Each call produces an independent,
// single-pass iterator.
func (s *Store) Entries() func(yield func(model.ID, RowReader) bool) {
	return func(yield func(model.ID, RowReader) bool) {
		for i := 0; i < s.count; i++ {
			if !yield(s.KeyAt(i), s.At(i)) {
				return
			}
		}
	}
}

// rowSlice adapts a packed row buffer to sort.Interface, swapping whole
// rows so the identifier and its payload move together.
type rowSlice struct {
	buf     []byte
	rowSize int
	idSize  int
	n       int
}

func (r rowSlice) Len() int { return r.n }

func (r rowSlice) Less(i, j int) bool {
	a := r.buf[i*r.rowSize : i*r.rowSize+r.idSize]
	b := r.buf[j*r.rowSize : j*r.rowSize+r.idSize]
	return bytes.Compare(a, b) < 0
}

func (r rowSlice) Swap(i, j int) {
	tmp := make([]byte, r.rowSize)
	ri := r.buf[i*r.rowSize : (i+1)*r.rowSize]
	rj := r.buf[j*r.rowSize : (j+1)*r.rowSize]
	copy(tmp, ri)
	copy(ri, rj)
	copy(rj, tmp)
}

// RowWriter writes a single row's payload fields in declared order.
type RowWriter struct {
	row    []byte
	idSize int
	pos    int
}

func (w *RowWriter) writeId(id model.ID) {
	putUintN(w.row[w.pos:w.pos+w.idSize], uint64(id), w.idSize)
	w.pos += w.idSize
}

func (w *RowWriter) writeInt(v uint32) {
	putUintN(w.row[w.pos:w.pos+4], uint64(v), 4)
	w.pos += 4
}

func (w *RowWriter) writeByte(b byte) {
	w.row[w.pos] = b
	w.pos++
}

// writeTruncatedLong writes the low n bytes of value, big-endian. The
// caller guarantees value fits in n bytes.
func (w *RowWriter) writeTruncatedLong(value uint64, n int) {
	putUintN(w.row[w.pos:w.pos+n], value, n)
	w.pos += n
}

// RowReader reads a single row's payload fields in the order they were
// written.
type RowReader struct {
	row    []byte
	idSize int
	pos    int
}

func (r *RowReader) readId() model.ID {
	v := getUintN(r.row[r.pos : r.pos+r.idSize])
	r.pos += r.idSize
	return model.ID(v)
}

func (r *RowReader) readInt() uint32 {
	v := getUintN(r.row[r.pos : r.pos+4])
	r.pos += 4
	return uint32(v)
}

func (r *RowReader) readByte() byte {
	b := r.row[r.pos]
	r.pos++
	return b
}

func (r *RowReader) readTruncatedLong(n int) uint64 {
	v := getUintN(r.row[r.pos : r.pos+n])
	r.pos += n
	return v
}

func putUintN(buf []byte, v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
}

func getUintN(buf []byte) uint64 {
	var v uint64
	for _, b := range buf {
		v = v<<8 | uint64(b)
	}
	return v
}

// bytesForValue returns the minimum number of bytes needed to hold v,
// counting from zero (0 fits in 0 bytes).
func bytesForValue(v uint64) int {
	n := 0
	for v > 0 {
		v >>= 8
		n++
	}
	return n
}
