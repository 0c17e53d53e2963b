package parser

import (
	"fmt"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

/*
decodeUTF8 decodes a HPROF_UTF8 record body:

id   		ID for this string
[u1]*		UTF-8 characters (no null terminator)
*/
func decodeUTF8(reader *BinaryReader, length uint32) (model.StringRecord, error) {
	stringID, err := reader.ReadID()
	if err != nil {
		return model.StringRecord{}, fmt.Errorf("failed to read string ID: %w", err)
	}

	stringLength := int(length) - int(reader.Header().IdentifierSize)
	if stringLength < 0 {
		return model.StringRecord{}, fmt.Errorf("invalid string length: %d", stringLength)
	}

	text, err := reader.ReadUtf8String(stringLength)
	if err != nil {
		return model.StringRecord{}, fmt.Errorf("failed to read string data: %w", err)
	}

	return model.StringRecord{ID: stringID, Bytes: []byte(text)}, nil
}
