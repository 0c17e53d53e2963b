package parser

import (
	"fmt"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

/*
decodeLoadClass decodes a HPROF_LOAD_CLASS record body:

u4      Unique class serial number
id      Object ID of the Class object
u4      Stack trace serial number when loaded
id      Class name ID - reference to UTF8 string
*/
func decodeLoadClass(reader *BinaryReader) (model.LoadClassRecord, error) {
	if _, err := reader.ReadU4(); err != nil { // class serial number, unused
		return model.LoadClassRecord{}, fmt.Errorf("failed to read class serial number: %w", err)
	}

	classID, err := reader.ReadID()
	if err != nil {
		return model.LoadClassRecord{}, fmt.Errorf("failed to read class object ID: %w", err)
	}

	if _, err := reader.ReadU4(); err != nil { // stack trace serial number, unused
		return model.LoadClassRecord{}, fmt.Errorf("failed to read stack trace serial number: %w", err)
	}

	nameID, err := reader.ReadID()
	if err != nil {
		return model.LoadClassRecord{}, fmt.Errorf("failed to read class name ID: %w", err)
	}

	return model.LoadClassRecord{ClassID: classID, ClassNameStringID: nameID}, nil
}
