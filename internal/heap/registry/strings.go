package registry

import (
	"fmt"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

// StringTable interns string identifiers to their bytes. It is backed by
// the same open-addressed container as the other primitive-keyed tables
// rather than a boxed map[model.ID]string, since a dump's string table can
// itself run to millions of entries (every field and method name is one).
type StringTable struct {
	entries *IDToObjectMap[[]byte]
}

func NewStringTable(expected int) *StringTable {
	return &StringTable{entries: NewIDToObjectMap[[]byte](expected)}
}

func (t *StringTable) Add(id model.ID, bytes []byte) {
	t.entries.Put(id, bytes)
}

func (t *StringTable) Get(id model.ID) ([]byte, bool) {
	return t.entries.Get(id)
}

// MustGet returns the string bytes for id or panics: every caller of this
// method is resolving a reference the dump itself guaranteed to exist.
func (t *StringTable) MustGet(id model.ID) []byte {
	bytes, ok := t.entries.Get(id)
	if !ok {
		panic(InvariantViolation{Msg: fmt.Sprintf("string id 0x%x not found", uint64(id))})
	}
	return bytes
}

func (t *StringTable) Count() int { return t.entries.Len() }
