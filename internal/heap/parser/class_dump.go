package parser

import (
	"fmt"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

/*
decodeClassDump decodes a HPROF_GC_CLASS_DUMP sub-record, keeping only the
header fields the index needs and skipping the constant pool and static
field values without materializing them. The instance field table is
walked to learn whether any field holds an object or array reference,
then discarded.

	id    						Class object ID
	u4    						Stack trace where class was loaded
	id    						Superclass object ID (0 for java.lang.Object)
	id    						Class loader object ID
	id    						Signers object ID
	id    						Protection domain object ID
	id    						Reserved
	id    						Reserved
	u4    						Instance size in bytes

	u2							Constant pool entry count
	[u2 u1 value]*              Constant pool entries

	u2    				        Static field count
	[id u1 value]*              Static fields

	u2							Instance field count
	[id u1]*                    Instance fields (name, type only)
*/
func decodeClassDump(reader *BinaryReader) (model.ClassSkipRecord, uint64, error) {
	start := reader.BytesRead()

	id, err := reader.ReadID()
	if err != nil {
		return model.ClassSkipRecord{}, 0, fmt.Errorf("failed to read class object ID: %w", err)
	}

	if _, err := reader.ReadU4(); err != nil { // stack trace serial, unused
		return model.ClassSkipRecord{}, 0, fmt.Errorf("failed to read stack trace serial: %w", err)
	}

	superclassID, err := reader.ReadID()
	if err != nil {
		return model.ClassSkipRecord{}, 0, fmt.Errorf("failed to read superclass object ID: %w", err)
	}

	for _, field := range []string{"class loader", "signers", "protection domain", "reserved1", "reserved2"} {
		if _, err := reader.ReadID(); err != nil {
			return model.ClassSkipRecord{}, 0, fmt.Errorf("failed to read %s object ID: %w", field, err)
		}
	}

	instanceSize, err := reader.ReadU4()
	if err != nil {
		return model.ClassSkipRecord{}, 0, fmt.Errorf("failed to read instance size: %w", err)
	}

	if err := skipConstantPool(reader); err != nil {
		return model.ClassSkipRecord{}, 0, err
	}

	if err := skipStaticFields(reader); err != nil {
		return model.ClassSkipRecord{}, 0, err
	}

	hasRefFields, err := scanInstanceFields(reader)
	if err != nil {
		return model.ClassSkipRecord{}, 0, err
	}

	recordSize := uint64(reader.BytesRead() - start)

	return model.ClassSkipRecord{
		ID:           id,
		SuperclassID: superclassID,
		InstanceSize: instanceSize,
		RecordSize:   recordSize,
		HasRefFields: hasRefFields,
	}, recordSize, nil
}

func skipConstantPool(reader *BinaryReader) error {
	count, err := reader.ReadU2()
	if err != nil {
		return fmt.Errorf("failed to read constant pool count: %w", err)
	}

	for i := uint16(0); i < count; i++ {
		if _, err := reader.ReadU2(); err != nil { // constant pool index
			return fmt.Errorf("failed to read constant pool index %d: %w", i, err)
		}
		if err := skipTypedValue(reader); err != nil {
			return fmt.Errorf("failed to skip constant pool value %d: %w", i, err)
		}
	}
	return nil
}

func skipStaticFields(reader *BinaryReader) error {
	count, err := reader.ReadU2()
	if err != nil {
		return fmt.Errorf("failed to read static field count: %w", err)
	}

	for i := uint16(0); i < count; i++ {
		if _, err := reader.ReadID(); err != nil { // field name ID
			return fmt.Errorf("failed to read static field name %d: %w", i, err)
		}
		if err := skipTypedValue(reader); err != nil {
			return fmt.Errorf("failed to skip static field value %d: %w", i, err)
		}
	}
	return nil
}

// scanInstanceFields walks the instance field table only to learn whether
// any field is an object or array reference; it keeps no field data.
func scanInstanceFields(reader *BinaryReader) (bool, error) {
	count, err := reader.ReadU2()
	if err != nil {
		return false, fmt.Errorf("failed to read instance field count: %w", err)
	}

	hasRefFields := false
	for i := uint16(0); i < count; i++ {
		if _, err := reader.ReadID(); err != nil { // field name ID
			return false, fmt.Errorf("failed to read instance field name %d: %w", i, err)
		}
		typeValue, err := reader.ReadU1()
		if err != nil {
			return false, fmt.Errorf("failed to read instance field type %d: %w", i, err)
		}
		fieldType := model.HProfTagFieldType(typeValue)
		if fieldType == model.HPROF_NORMAL_OBJECT || fieldType == model.HPROF_ARRAY_OBJECT {
			hasRefFields = true
		}
	}
	return hasRefFields, nil
}

func skipTypedValue(reader *BinaryReader) error {
	typeValue, err := reader.ReadU1()
	if err != nil {
		return fmt.Errorf("failed to read value type: %w", err)
	}
	fieldType := model.HProfTagFieldType(typeValue)
	size := fieldType.Size(reader.Header().IdentifierSize)
	if size == 0 {
		return fmt.Errorf("unknown field type: 0x%02x", typeValue)
	}
	return reader.Skip(size)
}
