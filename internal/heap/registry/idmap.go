package registry

import "github.com/mabhi256/hprofindex/internal/heap/model"

// A generic map over a boxed 64-bit key would waste significant memory at
// tens of millions of entries, so these containers store the key inline
// in an open-addressed slot array instead, probing linearly on collision
// and resizing (doubling) once the load factor would exceed 0.75.
//
// Identifier 0 is the HPROF null reference and is never a legitimate key
// in any of these tables; IDToIDMap and IDSet use it as the empty-slot
// sentinel, while IDToObjectMap marks occupied slots in a separate used
// slice.

const (
	idMapMinCapacity = 16
	idMapLoadFactor  = 3 // numerator of a 3/4 load factor threshold
)

func tableSizeFor(expected int) int {
	size := idMapMinCapacity
	for size*idMapLoadFactor < expected*4 {
		size *= 2
	}
	return size
}

// hashID finalizes a 64-bit key with MurmurHash3's fmix64 step, needed
// because heap identifiers are often small and sequential and would
// otherwise cluster in the low-order bits of the table.
func hashID(id model.ID) uint64 {
	x := uint64(id)
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// IDToIDMap is an open-addressed map from a 64-bit identifier to another
// 64-bit identifier.
type IDToIDMap struct {
	keys   []model.ID
	values []model.ID
	count  int
}

// NewIDToIDMap pre-sizes the table for expected elements.
func NewIDToIDMap(expected int) *IDToIDMap {
	size := tableSizeFor(expected)
	return &IDToIDMap{keys: make([]model.ID, size), values: make([]model.ID, size)}
}

func (m *IDToIDMap) Put(key, value model.ID) {
	if key == 0 {
		panic(InvariantViolation{Msg: "cannot store the null identifier as a map key"})
	}
	if (m.count+1)*4 > len(m.keys)*idMapLoadFactor {
		m.grow()
	}
	idx := m.probe(key)
	if m.keys[idx] == 0 {
		m.count++
	}
	m.keys[idx] = key
	m.values[idx] = value
}

func (m *IDToIDMap) Get(key model.ID) (model.ID, bool) {
	if len(m.keys) == 0 {
		return 0, false
	}
	idx := m.probe(key)
	if m.keys[idx] == 0 {
		return 0, false
	}
	return m.values[idx], true
}

func (m *IDToIDMap) Contains(key model.ID) bool {
	_, ok := m.Get(key)
	return ok
}

func (m *IDToIDMap) Len() int { return m.count }

func (m *IDToIDMap) probe(key model.ID) int {
	mask := len(m.keys) - 1
	idx := int(hashID(key)) & mask
	for {
		if m.keys[idx] == 0 || m.keys[idx] == key {
			return idx
		}
		idx = (idx + 1) & mask
	}
}

func (m *IDToIDMap) grow() {
	oldKeys, oldValues := m.keys, m.values
	newSize := len(m.keys) * 2
	if newSize == 0 {
		newSize = idMapMinCapacity
	}
	m.keys = make([]model.ID, newSize)
	m.values = make([]model.ID, newSize)
	m.count = 0
	for i, k := range oldKeys {
		if k != 0 {
			m.Put(k, oldValues[i])
		}
	}
}

// Entries yields (key, value) pairs in unspecified order.
func (m *IDToIDMap) Entries() func(yield func(model.ID, model.ID) bool) {
	return func(yield func(model.ID, model.ID) bool) {
		for i, k := range m.keys {
			if k != 0 {
				if !yield(k, m.values[i]) {
					return
				}
			}
		}
	}
}

// IDToObjectMap is an open-addressed map from a 64-bit identifier to an
// arbitrary value.
type IDToObjectMap[V any] struct {
	keys   []model.ID
	values []V
	used   []bool
	count  int
}

func NewIDToObjectMap[V any](expected int) *IDToObjectMap[V] {
	size := tableSizeFor(expected)
	return &IDToObjectMap[V]{
		keys:   make([]model.ID, size),
		values: make([]V, size),
		used:   make([]bool, size),
	}
}

func (m *IDToObjectMap[V]) Put(key model.ID, value V) {
	if key == 0 {
		panic(InvariantViolation{Msg: "cannot store the null identifier as a map key"})
	}
	if (m.count+1)*4 > len(m.keys)*idMapLoadFactor {
		m.grow()
	}
	idx := m.probe(key)
	if !m.used[idx] {
		m.count++
	}
	m.keys[idx] = key
	m.values[idx] = value
	m.used[idx] = true
}

func (m *IDToObjectMap[V]) Get(key model.ID) (V, bool) {
	var zero V
	if len(m.keys) == 0 {
		return zero, false
	}
	idx := m.probe(key)
	if !m.used[idx] {
		return zero, false
	}
	return m.values[idx], true
}

func (m *IDToObjectMap[V]) Contains(key model.ID) bool {
	_, ok := m.Get(key)
	return ok
}

func (m *IDToObjectMap[V]) Len() int { return m.count }

func (m *IDToObjectMap[V]) probe(key model.ID) int {
	mask := len(m.keys) - 1
	idx := int(hashID(key)) & mask
	for {
		if !m.used[idx] || m.keys[idx] == key {
			return idx
		}
		idx = (idx + 1) & mask
	}
}

func (m *IDToObjectMap[V]) grow() {
	oldKeys, oldValues, oldUsed := m.keys, m.values, m.used
	newSize := len(m.keys) * 2
	if newSize == 0 {
		newSize = idMapMinCapacity
	}
	m.keys = make([]model.ID, newSize)
	m.values = make([]V, newSize)
	m.used = make([]bool, newSize)
	m.count = 0
	for i, used := range oldUsed {
		if used {
			m.Put(oldKeys[i], oldValues[i])
		}
	}
}

// IDSet is an open-addressed set of 64-bit identifiers.
type IDSet struct {
	keys  []model.ID
	count int
}

func NewIDSet(expected int) *IDSet {
	size := tableSizeFor(expected)
	return &IDSet{keys: make([]model.ID, size)}
}

func (s *IDSet) Add(id model.ID) {
	if id == 0 {
		panic(InvariantViolation{Msg: "cannot store the null identifier in a set"})
	}
	if (s.count+1)*4 > len(s.keys)*idMapLoadFactor {
		s.grow()
	}
	idx := s.probe(id)
	if s.keys[idx] == 0 {
		s.count++
	}
	s.keys[idx] = id
}

func (s *IDSet) Contains(id model.ID) bool {
	if len(s.keys) == 0 {
		return false
	}
	return s.keys[s.probe(id)] == id
}

func (s *IDSet) Len() int { return s.count }

func (s *IDSet) probe(id model.ID) int {
	mask := len(s.keys) - 1
	idx := int(hashID(id)) & mask
	for {
		if s.keys[idx] == 0 || s.keys[idx] == id {
			return idx
		}
		idx = (idx + 1) & mask
	}
}

func (s *IDSet) grow() {
	old := s.keys
	newSize := len(s.keys) * 2
	if newSize == 0 {
		newSize = idMapMinCapacity
	}
	s.keys = make([]model.ID, newSize)
	s.count = 0
	for _, k := range old {
		if k != 0 {
			s.Add(k)
		}
	}
}
