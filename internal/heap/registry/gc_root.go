package registry

import "github.com/mabhi256/hprofindex/internal/heap/model"

// RootKindSet is the caller-selected set of GC root variant kinds that
// should survive into the root list. A nil set selects every kind.
type RootKindSet map[model.HProfTagSubRecord]bool

func NewRootKindSet(kinds ...model.HProfTagSubRecord) RootKindSet {
	s := make(RootKindSet, len(kinds))
	for _, k := range kinds {
		s[k] = true
	}
	return s
}

func (s RootKindSet) has(k model.HProfTagSubRecord) bool {
	if s == nil {
		return true
	}
	return s[k]
}

// RootList is the ordered collection of GC roots exposed by a finished
// index: one entry per root whose kind was requested, in stream order, with null
// references already excluded.
type RootList struct {
	roots []model.GCRootRecord
}

// rootCollector builds a RootList during the indexing pass. It keeps only
// roots whose kind is in the caller-selected set and drops the null
// identifier: a root pointing at nothing can never resolve to an indexed
// object.
type rootCollector struct {
	kinds RootKindSet
	roots []model.GCRootRecord
}

func newRootCollector(kinds RootKindSet) *rootCollector {
	return &rootCollector{kinds: kinds}
}

func (c *rootCollector) add(root model.GCRootRecord) {
	if root.ID == 0 {
		return
	}
	if !c.kinds.has(root.Kind) {
		return
	}
	c.roots = append(c.roots, root)
}

func (c *rootCollector) finish() *RootList {
	return &RootList{roots: c.roots}
}

func (l *RootList) Len() int { return len(l.roots) }

// Sequence yields every collected root in stream order.
func (l *RootList) Sequence() func(yield func(model.GCRootRecord) bool) {
	return func(yield func(model.GCRootRecord) bool) {
		for _, r := range l.roots {
			if !yield(r) {
				return
			}
		}
	}
}

// SequenceOf yields only the roots of the given sub-record kind, in
// stream order.
func (l *RootList) SequenceOf(kind model.HProfTagSubRecord) func(yield func(model.GCRootRecord) bool) {
	return func(yield func(model.GCRootRecord) bool) {
		for _, r := range l.roots {
			if r.Kind != kind {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}
