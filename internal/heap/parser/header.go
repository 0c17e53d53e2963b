package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/mabhi256/hprofindex/internal/heap/model"
)

/*
*	ParseHeader parses the HPROF file header
*
*	"JAVA PROFILE 1.0.2\0"		Null-terminated format string
*	u4                    		Size of IDs (usually pointer size)
*	u4                    		High word of timestamp
*	u4                    		Low word of timestamp (ms since 1/1/70)
*
* The format string also carries the only version signal the index
* needs: whether this is an Android heap dump, which already uses '.'
* as its package separator instead of the JVM's '/'.
 */
func ParseHeader(reader *BinaryReader) (*model.HprofHeader, error) {
	hprofFormat, err := reader.ReadString()
	if err != nil {
		return nil, fmt.Errorf("unable to read format: %w", err)
	}

	if !strings.HasPrefix(hprofFormat, "JAVA PROFILE") && !strings.Contains(strings.ToUpper(hprofFormat), "ANDROID") {
		return nil, fmt.Errorf("invalid format: %s", hprofFormat)
	}

	identifierSize, err := reader.ReadU4()
	if err != nil {
		return nil, fmt.Errorf("failed to read identifier size: %w", err)
	}

	if identifierSize != 4 && identifierSize != 8 {
		return nil, fmt.Errorf("invalid identifierSize: %d", identifierSize)
	}

	tsHigh, err := reader.ReadU4()
	if err != nil {
		return nil, fmt.Errorf("failed to read timestamp high word: %w", err)
	}

	tsLow, err := reader.ReadU4()
	if err != nil {
		return nil, fmt.Errorf("failed to read timestamp low word: %w", err)
	}

	tsMilli := (uint64(tsHigh) << 32) | uint64(tsLow)
	timestampTime := time.UnixMilli(int64(tsMilli))

	header := &model.HprofHeader{
		Format:         hprofFormat,
		IdentifierSize: identifierSize,
		Timestamp:      timestampTime,
	}

	reader.SetHeader(header)

	return header, nil
}
