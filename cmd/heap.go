package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mabhi256/hprofindex/internal/heap/model"
	"github.com/mabhi256/hprofindex/internal/heap/parser"
	"github.com/mabhi256/hprofindex/internal/heap/registry"
	"github.com/mabhi256/hprofindex/internal/heapcli"
	"github.com/mabhi256/hprofindex/utils"
)

var rootKindFlagNames = map[string]model.HProfTagSubRecord{
	"unknown":      model.HPROF_GC_ROOT_UNKNOWN,
	"jni-global":   model.HPROF_GC_ROOT_JNI_GLOBAL,
	"jni-local":    model.HPROF_GC_ROOT_JNI_LOCAL,
	"java-frame":   model.HPROF_GC_ROOT_JAVA_FRAME,
	"native-stack": model.HPROF_GC_ROOT_NATIVE_STACK,
	"sticky-class": model.HPROF_GC_ROOT_STICKY_CLASS,
	"thread-block": model.HPROF_GC_ROOT_THREAD_BLOCK,
	"monitor-used": model.HPROF_GC_ROOT_MONITOR_USED,
	"thread-obj":   model.HPROF_GC_ROOT_THREAD_OBJ,
}

func parseRootKinds(raw []string) (registry.RootKindSet, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	kinds := make([]model.HProfTagSubRecord, 0, len(raw))
	for _, name := range raw {
		kind, ok := rootKindFlagNames[strings.TrimSpace(name)]
		if !ok {
			return nil, fmt.Errorf("unknown root kind %q", name)
		}
		kinds = append(kinds, kind)
	}
	return registry.NewRootKindSet(kinds...), nil
}

func buildIndex(filename, remapPath string, rootKindNames []string) (*registry.Index, time.Duration, error) {
	rootKinds, err := parseRootKinds(rootKindNames)
	if err != nil {
		return nil, 0, err
	}

	var remapper model.Remapper
	if remapPath != "" {
		fileRemapper, err := heapcli.LoadFileRemapper(remapPath)
		if err != nil {
			return nil, 0, err
		}
		remapper = fileRemapper
	}

	stream := parser.NewStream(filename)
	builder := registry.NewBuilder(stream, remapper, rootKinds)

	start := time.Now()
	idx, err := builder.Build(context.Background(), nil)
	elapsed := time.Since(start)
	if err != nil {
		return nil, 0, fmt.Errorf("building index: %w", err)
	}
	return idx, elapsed, nil
}

var (
	remapFlag     string
	rootKindsFlag []string
	tuiFlag       bool
)

var indexCmd = &cobra.Command{
	Use:               "index [hprof-file]",
	Short:             "Build an in-memory index over a heap dump and report its size",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension([]string{".hprof"}, true),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]
		if err := validateHprofFile(filename); err != nil {
			return err
		}

		idx, elapsed, err := buildIndex(filename, remapFlag, rootKindsFlag)
		if err != nil {
			return err
		}

		total := idx.ClassCount() + idx.InstanceCount() + idx.ObjectArrayCount() + idx.PrimitiveArrayCount()
		fmt.Fprintf(os.Stdout, "Indexed %d objects (%d classes, %d instances, %d object arrays, %d primitive arrays) and %d GC roots in %s (%s)\n",
			total, idx.ClassCount(), idx.InstanceCount(), idx.ObjectArrayCount(), idx.PrimitiveArrayCount(), idx.GCRoots().Len(),
			utils.FormatDuration(elapsed), utils.MemorySize(idx.ByteSize()))
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:               "summary [hprof-file]",
	Short:             "Print or browse a summary of a heap dump's index",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension([]string{".hprof"}, true),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]
		if err := validateHprofFile(filename); err != nil {
			return err
		}

		idx, elapsed, err := buildIndex(filename, remapFlag, rootKindsFlag)
		if err != nil {
			return err
		}

		if tuiFlag {
			return heapcli.RunTUI(idx)
		}

		heapcli.PrintSummary(os.Stdout, idx, elapsed, heapcli.ShouldStyle(os.Stdout))
		return nil
	},
}

func validateHprofFile(filename string) error {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filename)
	}
	if ext := filepath.Ext(filename); ext != ".hprof" {
		fmt.Printf("Warning: File extension '%s' is not '.hprof', but proceeding anyway...\n", ext)
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{indexCmd, summaryCmd} {
		c.Flags().StringVar(&remapFlag, "remap", "", "path to a class/field deobfuscation mapping file")
		c.Flags().StringSliceVar(&rootKindsFlag, "kinds", nil, "comma-separated GC root kinds to keep (default: all)")
	}
	summaryCmd.Flags().BoolVar(&tuiFlag, "tui", false, "browse the summary interactively instead of printing it")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(summaryCmd)
}
