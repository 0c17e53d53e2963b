package registry

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

var indexingPassKinds = model.NewRecordKindSet(
	model.RecordString,
	model.RecordLoadClass,
	model.RecordGCRoot,
	model.RecordClassSkip,
	model.RecordInstanceSkip,
	model.RecordObjectArraySkip,
	model.RecordPrimitiveArraySkip,
)

// Builder drives the two-pass streaming build: a width-selection pass
// over the skip-content records, then a single indexing pass that
// populates every table and store. A Builder is single-use.
type Builder struct {
	reader    model.RecordReader
	remapper  model.Remapper
	rootKinds RootKindSet
}

// NewBuilder creates a single-use builder over reader. rootKinds selects
// which GC root variant kinds survive into the finished root list; a nil
// set selects every kind.
func NewBuilder(reader model.RecordReader, remapper model.Remapper, rootKinds RootKindSet) *Builder {
	return &Builder{reader: reader, remapper: remapper, rootKinds: rootKinds}
}

// Build runs the width pass and, concurrently with it, an optional
// prepare callback representing unrelated setup work a caller wants
// overlapped (e.g. opening an output destination; the CLI passes nil) — the core
// itself remains single-threaded; this concurrency lives purely in the
// orchestration around it. It then runs the indexing pass and returns the
// finished, immutable index.
//
// Build consumes the builder; the same Builder must not be reused.
func (b *Builder) Build(ctx context.Context, prepare func(context.Context) error) (idx *Index, err error) {
	defer func() {
		if r := recover(); r != nil {
			if iv, ok := r.(InvariantViolation); ok {
				err = iv
				return
			}
			panic(r)
		}
	}()

	header, err := b.reader.Header()
	if err != nil {
		return nil, fmt.Errorf("reading dump header: %w", err)
	}

	var w *widths
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var werr error
		w, werr = runWidthPass(b.reader, int(header.IdentifierSize))
		return werr
	})
	if prepare != nil {
		g.Go(func() error { return prepare(gctx) })
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("width-selection pass failed: %w", err)
	}

	idSize := int(header.IdentifierSize)
	stringTable := NewStringTable(w.classCount + w.instanceCount)
	classNames := NewClassNames(w.classCount)
	wrapperNameIDs := NewIDSet(8)
	wrapperClassIDs := NewIDSet(8)
	roots := newRootCollector(b.rootKinds)

	classStore := NewClassStore(idSize, w)
	instanceStore := NewInstanceStore(idSize, w)
	objectArrayStore := NewObjectArrayStore(idSize, w)
	primitiveArrayStore := NewPrimitiveArrayStore(idSize, w)

	_, err = b.reader.ReadRecords(indexingPassKinds, func(position int64, kind model.RecordKind, rec any) error {
		switch kind {
		case model.RecordString:
			r := rec.(model.StringRecord)
			stringTable.Add(r.ID, r.Bytes)
			if isWellKnownPrimitiveWrapperName(r.Bytes) {
				wrapperNameIDs.Add(r.ID)
			}

		case model.RecordLoadClass:
			r := rec.(model.LoadClassRecord)
			classNames.Add(r.ClassID, r.ClassNameStringID)
			if wrapperNameIDs.Contains(r.ClassNameStringID) {
				wrapperClassIDs.Add(r.ClassID)
			}

		case model.RecordGCRoot:
			roots.add(rec.(model.GCRootRecord))

		case model.RecordClassSkip:
			r := rec.(model.ClassSkipRecord)
			classStore.Append(r.ID, uint64(position), r.SuperclassID, r.InstanceSize, r.RecordSize, r.HasRefFields)

		case model.RecordInstanceSkip:
			r := rec.(model.InstanceSkipRecord)
			instanceStore.Append(r.ID, uint64(position), r.ClassID, r.RecordSize)

		case model.RecordObjectArraySkip:
			r := rec.(model.ObjectArraySkipRecord)
			objectArrayStore.Append(r.ID, uint64(position), r.ArrayClassID, r.RecordSize)

		case model.RecordPrimitiveArraySkip:
			r := rec.(model.PrimitiveArraySkipRecord)
			primitiveArrayStore.Append(r.ID, uint64(position), r.Type, r.RecordSize)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("indexing pass failed: %w", err)
	}

	classStore.Freeze()
	instanceStore.Freeze()
	objectArrayStore.Freeze()
	primitiveArrayStore.Freeze()

	return &Index{
		header:          header,
		widths:          w,
		remapper:        b.remapper,
		strings:         stringTable,
		classNames:      classNames,
		wrapperClasses:  wrapperClassIDs,
		roots:           roots.finish(),
		classes:         classStore,
		instances:       instanceStore,
		objectArrays:    objectArrayStore,
		primitiveArrays: primitiveArrayStore,
	}, nil
}
