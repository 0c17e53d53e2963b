package parser

import (
	"fmt"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

/*
decodeGCRoot decodes any of the nine GC root sub-records into the object
identifier it references, discarding the thread/frame bookkeeping fields
that accompany some variants. The kind byte has already been consumed by
the caller.

	GC_ROOT_UNKNOWN        id
	GC_ROOT_JNI_GLOBAL      id  id
	GC_ROOT_JNI_LOCAL       id  u4  u4
	GC_ROOT_JAVA_FRAME      id  u4  u4
	GC_ROOT_NATIVE_STACK    id  u4
	GC_ROOT_STICKY_CLASS    id
	GC_ROOT_THREAD_BLOCK    id  u4
	GC_ROOT_MONITOR_USED    id
	GC_ROOT_THREAD_OBJ      id  u4  u4
*/
func decodeGCRoot(reader *BinaryReader, kind model.HProfTagSubRecord) (model.ID, error) {
	id, err := reader.ReadID()
	if err != nil {
		return 0, fmt.Errorf("failed to read root object ID: %w", err)
	}

	switch kind {
	case model.HPROF_GC_ROOT_JNI_GLOBAL:
		if _, err := reader.ReadID(); err != nil {
			return 0, fmt.Errorf("failed to read JNI global ref ID: %w", err)
		}
	case model.HPROF_GC_ROOT_JNI_LOCAL, model.HPROF_GC_ROOT_JAVA_FRAME, model.HPROF_GC_ROOT_THREAD_OBJ:
		if _, err := reader.ReadU4(); err != nil {
			return 0, fmt.Errorf("failed to read thread serial: %w", err)
		}
		if _, err := reader.ReadU4(); err != nil {
			return 0, fmt.Errorf("failed to read frame/trace serial: %w", err)
		}
	case model.HPROF_GC_ROOT_NATIVE_STACK, model.HPROF_GC_ROOT_THREAD_BLOCK:
		if _, err := reader.ReadU4(); err != nil {
			return 0, fmt.Errorf("failed to read thread serial: %w", err)
		}
	case model.HPROF_GC_ROOT_UNKNOWN, model.HPROF_GC_ROOT_STICKY_CLASS, model.HPROF_GC_ROOT_MONITOR_USED:
		// id only
	default:
		return 0, fmt.Errorf("unknown GC root kind: 0x%02x", byte(kind))
	}

	return id, nil
}
