package heapcli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/mabhi256/hprofindex/internal/heap/model"
	"github.com/mabhi256/hprofindex/internal/heap/registry"
	"github.com/mabhi256/hprofindex/utils"
)

var rootKindNames = map[model.HProfTagSubRecord]string{
	model.HPROF_GC_ROOT_UNKNOWN:      "unknown",
	model.HPROF_GC_ROOT_JNI_GLOBAL:   "jni-global",
	model.HPROF_GC_ROOT_JNI_LOCAL:    "jni-local",
	model.HPROF_GC_ROOT_JAVA_FRAME:   "java-frame",
	model.HPROF_GC_ROOT_NATIVE_STACK: "native-stack",
	model.HPROF_GC_ROOT_STICKY_CLASS: "sticky-class",
	model.HPROF_GC_ROOT_THREAD_BLOCK: "thread-block",
	model.HPROF_GC_ROOT_MONITOR_USED: "monitor-used",
	model.HPROF_GC_ROOT_THREAD_OBJ:   "thread-obj",
}

// ShouldStyle decides plain-text vs. styled output for an output stream,
// the way a well-behaved CLI defers to isatty rather than always coloring.
func ShouldStyle(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PrintSummary writes a plain or lipgloss-styled summary of the index:
// counts per object kind, the byte widths the width pass chose, the
// primitive-wrapper class count, the root list broken down by kind, the
// packed object stores' in-memory footprint, and how long the build took.
func PrintSummary(w io.Writer, idx *registry.Index, buildTime time.Duration, styled bool) {
	title := "hprofindex summary"
	if styled {
		title = utils.TitleStyle.Render(title)
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("─", 40))

	header := idx.Header()
	fmt.Fprintf(w, "Format: %s  |  Identifier size: %d bytes\n", header.Format, header.IdentifierSize)
	fmt.Fprintf(w, "Index size: %s  |  Build time: %s\n", utils.MemorySize(idx.ByteSize()), utils.FormatDuration(buildTime))
	fmt.Fprintln(w)

	printCountLine(w, "Classes", idx.ClassCount(), styled)
	printCountLine(w, "Instances", idx.InstanceCount(), styled)
	printCountLine(w, "Object arrays", idx.ObjectArrayCount(), styled)
	printCountLine(w, "Primitive arrays", idx.PrimitiveArrayCount(), styled)

	wrapperCount := 0
	for classID, _ := range idx.IndexedClassSequence() {
		if idx.IsPrimitiveWrapperClass(classID) {
			wrapperCount++
		}
	}
	fmt.Fprintf(w, "%-20s %d\n", "Primitive wrappers", wrapperCount)

	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionTitle("Byte widths chosen", styled))
	widths := idx.Widths()
	fmt.Fprintf(w, "  position:            %d bytes\n", widths.PositionBytes)
	fmt.Fprintf(w, "  class record size:   %d bytes (high-bit packed: %v)\n", widths.ClassSizeBytes, widths.ClassHighBitPacked)
	fmt.Fprintf(w, "  instance size:       %d bytes\n", widths.InstanceSizeBytes)
	fmt.Fprintf(w, "  object-array size:   %d bytes\n", widths.ObjectArraySizeBytes)
	fmt.Fprintf(w, "  primitive-array size: %d bytes\n", widths.PrimitiveArraySizeBytes)

	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionTitle("GC roots", styled))
	roots := idx.GCRoots()
	counts := make(map[model.HProfTagSubRecord]int)
	for r := range roots.Sequence() {
		counts[r.Kind]++
	}
	fmt.Fprintf(w, "  total: %d\n", roots.Len())
	for kind, name := range rootKindNames {
		if n := counts[kind]; n > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", name+":", n)
		}
	}
}

func printCountLine(w io.Writer, label string, count int, styled bool) {
	line := fmt.Sprintf("%-20s %d", label, count)
	if styled {
		line = utils.InfoStyle.Render(fmt.Sprintf("%-20s", label)) + fmt.Sprintf(" %d", count)
	}
	fmt.Fprintln(w, line)
}

func sectionTitle(s string, styled bool) string {
	if !styled {
		return s + ":"
	}
	return lipgloss.NewStyle().Bold(true).Foreground(utils.InfoColor).Render(s + ":")
}

// TopClassesByInstanceCount ranks classes by how many instances reference
// them, for the TUI's "top classes" table.
func TopClassesByInstanceCount(idx *registry.Index, limit int) []ClassInstanceCount {
	counts := make(map[model.ID]int)
	for _, entry := range idx.IndexedInstanceSequence() {
		counts[entry.ClassID]++
	}

	result := make([]ClassInstanceCount, 0, len(counts))
	for classID, count := range counts {
		result = append(result, ClassInstanceCount{ClassID: classID, Name: idx.ClassName(classID), Count: count})
	}

	sortByCountDescending(result)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// ClassInstanceCount pairs a class with how many instances reference it.
type ClassInstanceCount struct {
	ClassID model.ID
	Name    string
	Count   int
}

func sortByCountDescending(items []ClassInstanceCount) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j].Count > items[j-1].Count; j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}
