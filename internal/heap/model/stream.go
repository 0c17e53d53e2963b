package model

import "strings"

// RecordKind discriminates the seven record variants a RecordReader can
// deliver to a caller-supplied callback. A reader is configured with the
// set of kinds it should report; everything else is skipped internally.
type RecordKind int

const (
	RecordString RecordKind = iota
	RecordLoadClass
	RecordGCRoot
	RecordClassSkip
	RecordInstanceSkip
	RecordObjectArraySkip
	RecordPrimitiveArraySkip
)

func (k RecordKind) String() string {
	switch k {
	case RecordString:
		return "String"
	case RecordLoadClass:
		return "LoadClass"
	case RecordGCRoot:
		return "GCRoot"
	case RecordClassSkip:
		return "ClassSkip"
	case RecordInstanceSkip:
		return "InstanceSkip"
	case RecordObjectArraySkip:
		return "ObjectArraySkip"
	case RecordPrimitiveArraySkip:
		return "PrimitiveArraySkip"
	default:
		return "Unknown"
	}
}

// RecordKindSet is a caller-requested set of kinds to report.
type RecordKindSet map[RecordKind]bool

func NewRecordKindSet(kinds ...RecordKind) RecordKindSet {
	s := make(RecordKindSet, len(kinds))
	for _, k := range kinds {
		s[k] = true
	}
	return s
}

func (s RecordKindSet) Has(k RecordKind) bool { return s[k] }

// StringRecord is a HPROF_UTF8 body: bytes interned under an identifier.
type StringRecord struct {
	ID    ID
	Bytes []byte
}

// LoadClassRecord binds a class identifier to its name string identifier.
type LoadClassRecord struct {
	ClassID           ID
	ClassNameStringID ID
}

// GCRootRecord is a collapsed view of any of the nine GC root sub-records:
// only the kind discriminator and the referenced identifier survive.
type GCRootRecord struct {
	Kind HProfTagSubRecord
	ID   ID
}

// ClassSkipRecord carries a class dump's header fields without its constant
// pool, static fields, or instance field table.
type ClassSkipRecord struct {
	ID           ID
	SuperclassID ID
	InstanceSize uint32
	RecordSize   uint64
	HasRefFields bool
}

// InstanceSkipRecord carries an instance dump's header fields without its
// field value bytes.
type InstanceSkipRecord struct {
	ID         ID
	ClassID    ID
	RecordSize uint64
}

// ObjectArraySkipRecord carries an object array dump's header fields
// without its element identifiers.
type ObjectArraySkipRecord struct {
	ID           ID
	ArrayClassID ID
	RecordSize   uint64
}

// PrimitiveArraySkipRecord carries a primitive array dump's header fields
// without its element bytes.
type PrimitiveArraySkipRecord struct {
	ID         ID
	Type       HProfTagFieldType
	RecordSize uint64
}

// RecordReader is the streaming collaborator the indexer consumes. A
// single dump may be read more than once: each call to ReadRecords
// re-opens and re-reads from the start, independent of prior calls.
type RecordReader interface {
	ReadRecords(requested RecordKindSet, onRecord func(filePosition int64, kind RecordKind, rec any) error) (totalBytesRead int64, err error)
	Header() (*HprofHeader, error)
}

// Remapper deobfuscates class and field names. A nil Remapper is treated
// as the identity transform.
type Remapper interface {
	DeobfuscateClassName(name string) string
	DeobfuscateFieldName(className, fieldName string) string
}

// IsAndroid reports whether the dump's format string identifies an
// Android heap dump, which does not use '/' as its package separator.
func (h *HprofHeader) IsAndroid() bool {
	return strings.Contains(strings.ToUpper(h.Format), "ANDROID")
}
