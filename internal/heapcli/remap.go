package heapcli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// FileRemapper is a trivial key=value text-file-backed implementation of
// model.Remapper. Each line maps an obfuscated class or field name to its
// deobfuscated form; lines without an '=' or starting with '#' are ignored.
type FileRemapper struct {
	classes map[string]string
	fields  map[string]string
}

// LoadFileRemapper reads a mapping file with two sections separated by a
// line of the form "fields:" — everything before it maps class names,
// everything after maps "ClassName.fieldName" to a deobfuscated field
// name.
func LoadFileRemapper(path string) (*FileRemapper, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening remap file: %w", err)
	}
	defer file.Close()

	r := &FileRemapper{classes: make(map[string]string), fields: make(map[string]string)}

	inFields := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "fields:" {
			inFields = true
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		if inFields {
			r.fields[key] = value
		} else {
			r.classes[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading remap file: %w", err)
	}

	return r, nil
}

func (r *FileRemapper) DeobfuscateClassName(name string) string {
	if mapped, ok := r.classes[name]; ok {
		return mapped
	}
	return name
}

func (r *FileRemapper) DeobfuscateFieldName(className, fieldName string) string {
	key := className + "." + fieldName
	if mapped, ok := r.fields[key]; ok {
		return mapped
	}
	return fieldName
}
