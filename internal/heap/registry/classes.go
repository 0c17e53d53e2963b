package registry

import (
	"strings"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

// wellKnownPrimitiveWrapperNames are the eight boxed-primitive class
// names, keyed with '/' as the package separator (the form HPROF dumps
// actually use). isWellKnownPrimitiveWrapperName normalizes its input the
// same way before the lookup, since callers may see either separator:
// real dumps spell these with '/', but callers that already deobfuscate
// or otherwise hand in dotted names must still match.
var wellKnownPrimitiveWrapperNames = map[string]bool{
	"java/lang/Boolean":   true,
	"java/lang/Byte":      true,
	"java/lang/Character": true,
	"java/lang/Short":     true,
	"java/lang/Integer":   true,
	"java/lang/Long":      true,
	"java/lang/Float":     true,
	"java/lang/Double":    true,
}

func isWellKnownPrimitiveWrapperName(name []byte) bool {
	normalized := strings.ReplaceAll(string(name), ".", "/")
	return wellKnownPrimitiveWrapperNames[normalized]
}

// ClassNames maps a class identifier to its name's string identifier.
// It is the table the load-class record populates during the indexing
// pass; resolving the string bytes themselves, applying the package
// separator, and any remapping happens at the façade.
type ClassNames struct {
	table *IDToIDMap
}

func NewClassNames(expected int) *ClassNames {
	return &ClassNames{table: NewIDToIDMap(expected)}
}

func (c *ClassNames) Add(classID, nameStringID model.ID) {
	c.table.Put(classID, nameStringID)
}

func (c *ClassNames) NameStringID(classID model.ID) (model.ID, bool) {
	return c.table.Get(classID)
}

func (c *ClassNames) Len() int { return c.table.Len() }

// Entries yields (classID, nameStringID) pairs in unspecified order. Used
// by the façade's classId(name) reverse scan.
func (c *ClassNames) Entries() func(yield func(model.ID, model.ID) bool) {
	return c.table.Entries()
}
