package registry

import (
	"fmt"
	"strings"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

// ObjectKind discriminates which per-kind store an indexed object lives
// in.
type ObjectKind int

const (
	KindClass ObjectKind = iota
	KindInstance
	KindObjectArray
	KindPrimitiveArray
)

// IndexedObject is the decoded result of resolving an object identifier
// or a dense slot. Exactly one of the kind-specific fields is populated,
// selected by Kind.
type IndexedObject struct {
	ID        model.ID
	Kind      ObjectKind
	DenseSlot int

	Class          *ClassEntry
	Instance       *InstanceEntry
	ObjectArray    *ObjectArrayEntry
	PrimitiveArray *PrimitiveArrayEntry
}

// Index is the finished, read-only result of a Builder run. All state is
// immutable; every method is a pure function of that state.
type Index struct {
	header   *model.HprofHeader
	widths   *widths
	remapper model.Remapper

	strings    *StringTable
	classNames *ClassNames

	wrapperClasses *IDSet
	roots          *RootList

	classes         *ClassStore
	instances       *InstanceStore
	objectArrays    *ObjectArrayStore
	primitiveArrays *PrimitiveArrayStore
}

// Header returns the dump's header (format string, identifier size,
// timestamp) as decoded by the underlying reader.
func (idx *Index) Header() *model.HprofHeader { return idx.header }

// WidthSummary is a read-only snapshot of the byte widths the width
// pass chose for this dump, useful for reporting how compact the index
// ended up.
type WidthSummary struct {
	IdentifierSize          int
	PositionBytes           int
	ClassSizeBytes          int
	InstanceSizeBytes       int
	ObjectArraySizeBytes    int
	PrimitiveArraySizeBytes int
	ClassHighBitPacked      bool
}

func (idx *Index) Widths() WidthSummary {
	return WidthSummary{
		IdentifierSize:          idx.widths.idSize,
		PositionBytes:           idx.widths.positionBytes,
		ClassSizeBytes:          idx.widths.classSizeBytes,
		InstanceSizeBytes:       idx.widths.instanceSizeBytes,
		ObjectArraySizeBytes:    idx.widths.objectArraySizeBytes,
		PrimitiveArraySizeBytes: idx.widths.primitiveArraySizeBytes,
		ClassHighBitPacked:      idx.widths.canPackClassHighBit,
	}
}

func (idx *Index) ClassCount() int          { return idx.classes.Len() }
func (idx *Index) InstanceCount() int       { return idx.instances.Len() }
func (idx *Index) ObjectArrayCount() int    { return idx.objectArrays.Len() }
func (idx *Index) PrimitiveArrayCount() int { return idx.primitiveArrays.Len() }

// ByteSize returns the total size in bytes of the four packed object
// stores, excluding the string table and class-name/root tables. It is
// the in-memory footprint the width pass was chosen to minimize.
func (idx *Index) ByteSize() int64 {
	return int64(idx.classes.ByteSize()) +
		int64(idx.instances.ByteSize()) +
		int64(idx.objectArrays.ByteSize()) +
		int64(idx.primitiveArrays.ByteSize())
}

// ClassName looks up classId → stringId → string bytes, applies optional
// remapping, and rewrites the package separator for non-Android dumps.
// Panics if either the class id or the referenced string is absent.
func (idx *Index) ClassName(classID model.ID) string {
	nameStringID, ok := idx.classNames.NameStringID(classID)
	if !ok {
		panic(InvariantViolation{Msg: fmt.Sprintf("class id 0x%x not found", uint64(classID))})
	}
	name := normalizePackageSeparator(string(idx.strings.MustGet(nameStringID)), idx.header.IsAndroid())
	if idx.remapper != nil {
		name = idx.remapper.DeobfuscateClassName(name)
	}
	return name
}

// FieldName resolves a field's name string, optionally remapped in the
// context of its declaring class's name.
func (idx *Index) FieldName(classID model.ID, fieldNameStringID model.ID) string {
	name := string(idx.strings.MustGet(fieldNameStringID))
	if idx.remapper != nil {
		name = idx.remapper.DeobfuscateFieldName(idx.ClassName(classID), name)
	}
	return name
}

func normalizePackageSeparator(name string, android bool) string {
	if android {
		return name
	}
	return strings.ReplaceAll(name, "/", ".")
}

// ClassID is the reverse of ClassName: find the class identifier whose
// resolved name equals className. It is a linear scan over every loaded
// class and is not meant for hot paths.
func (idx *Index) ClassID(className string) (model.ID, bool) {
	var found model.ID
	ok := false
	for classID, _ := range idx.classNames.Entries() {
		if idx.ClassName(classID) == className {
			found, ok = classID, true
			break
		}
	}
	return found, ok
}

func (idx *Index) ObjectIDIsIndexed(id model.ID) bool {
	_, ok := idx.IndexedObjectOrNull(id)
	return ok
}

// IndexedObjectOrNull checks the four stores in order class → instance →
// object-array → primitive-array and returns the decoded entry with its
// dense slot, a stable total order spanning all kinds.
func (idx *Index) IndexedObjectOrNull(id model.ID) (IndexedObject, bool) {
	if slot := idx.classes.IndexOf(id); slot >= 0 {
		entry := idx.classes.At(slot)
		return IndexedObject{ID: id, Kind: KindClass, DenseSlot: slot, Class: &entry}, true
	}

	base := idx.classes.Len()
	if slot := idx.instances.IndexOf(id); slot >= 0 {
		entry := idx.instances.At(slot)
		return IndexedObject{ID: id, Kind: KindInstance, DenseSlot: base + slot, Instance: &entry}, true
	}

	base += idx.instances.Len()
	if slot := idx.objectArrays.IndexOf(id); slot >= 0 {
		entry := idx.objectArrays.At(slot)
		return IndexedObject{ID: id, Kind: KindObjectArray, DenseSlot: base + slot, ObjectArray: &entry}, true
	}

	base += idx.objectArrays.Len()
	if slot := idx.primitiveArrays.IndexOf(id); slot >= 0 {
		entry := idx.primitiveArrays.At(slot)
		return IndexedObject{ID: id, Kind: KindPrimitiveArray, DenseSlot: base + slot, PrimitiveArray: &entry}, true
	}

	return IndexedObject{}, false
}

// ObjectAtIndex is the inverse of IndexedObjectOrNull: denseSlot starts at
// 0 and spans class, instance, object-array, primitive-array slots in
// that order. Panics if denseSlot is out of range.
func (idx *Index) ObjectAtIndex(denseSlot int) IndexedObject {
	classCount := idx.classes.Len()
	instanceCount := idx.instances.Len()
	objectArrayCount := idx.objectArrays.Len()
	primitiveArrayCount := idx.primitiveArrays.Len()
	total := classCount + instanceCount + objectArrayCount + primitiveArrayCount

	if denseSlot < 0 || denseSlot >= total {
		panic(InvariantViolation{Msg: fmt.Sprintf("dense slot %d out of range [0, %d)", denseSlot, total)})
	}

	switch {
	case denseSlot < classCount:
		slot := denseSlot
		entry := idx.classes.At(slot)
		return IndexedObject{ID: idx.classes.KeyAt(slot), Kind: KindClass, DenseSlot: denseSlot, Class: &entry}

	case denseSlot < classCount+instanceCount:
		slot := denseSlot - classCount
		entry := idx.instances.At(slot)
		return IndexedObject{ID: idx.instances.KeyAt(slot), Kind: KindInstance, DenseSlot: denseSlot, Instance: &entry}

	case denseSlot < classCount+instanceCount+objectArrayCount:
		slot := denseSlot - classCount - instanceCount
		entry := idx.objectArrays.At(slot)
		return IndexedObject{ID: idx.objectArrays.KeyAt(slot), Kind: KindObjectArray, DenseSlot: denseSlot, ObjectArray: &entry}

	default:
		slot := denseSlot - classCount - instanceCount - objectArrayCount
		entry := idx.primitiveArrays.At(slot)
		return IndexedObject{ID: idx.primitiveArrays.KeyAt(slot), Kind: KindPrimitiveArray, DenseSlot: denseSlot, PrimitiveArray: &entry}
	}
}

func (idx *Index) IndexedClassSequence() func(yield func(model.ID, ClassEntry) bool) {
	return idx.classes.Sequence()
}

func (idx *Index) IndexedInstanceSequence() func(yield func(model.ID, InstanceEntry) bool) {
	return idx.instances.Sequence()
}

func (idx *Index) IndexedObjectArraySequence() func(yield func(model.ID, ObjectArrayEntry) bool) {
	return idx.objectArrays.Sequence()
}

func (idx *Index) IndexedPrimitiveArraySequence() func(yield func(model.ID, PrimitiveArrayEntry) bool) {
	return idx.primitiveArrays.Sequence()
}

// IndexedObjectSequence concatenates the four per-kind sequences in the
// same order used by dense slots.
func (idx *Index) IndexedObjectSequence() func(yield func(IndexedObject) bool) {
	return func(yield func(IndexedObject) bool) {
		slot := 0
		for id, entry := range idx.classes.Sequence() {
			e := entry
			if !yield(IndexedObject{ID: id, Kind: KindClass, DenseSlot: slot, Class: &e}) {
				return
			}
			slot++
		}
		for id, entry := range idx.instances.Sequence() {
			e := entry
			if !yield(IndexedObject{ID: id, Kind: KindInstance, DenseSlot: slot, Instance: &e}) {
				return
			}
			slot++
		}
		for id, entry := range idx.objectArrays.Sequence() {
			e := entry
			if !yield(IndexedObject{ID: id, Kind: KindObjectArray, DenseSlot: slot, ObjectArray: &e}) {
				return
			}
			slot++
		}
		for id, entry := range idx.primitiveArrays.Sequence() {
			e := entry
			if !yield(IndexedObject{ID: id, Kind: KindPrimitiveArray, DenseSlot: slot, PrimitiveArray: &e}) {
				return
			}
			slot++
		}
	}
}

func (idx *Index) GCRoots() *RootList { return idx.roots }

func (idx *Index) IsPrimitiveWrapperClass(classID model.ID) bool {
	return idx.wrapperClasses.Contains(classID)
}
