// Package normalize turns raw siphon metadata files into canonical moments.
// A file is parsed once, tagged with its source format, and mapped through
// exactly one per-format rule set.
package normalize

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// RawDocument is one parsed metadata file. The siphon writes several shapes
// with no declared type, so fields are probed, not unmarshaled into structs.
type RawDocument map[string]interface{}

// ParseError marks a file that could not be canonized. It is accumulated in
// the run report; it never aborts the run.
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.File, e.Message)
}

// ParseFile reads and decodes one metadata file.
func ParseFile(path string) (RawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{File: path, Message: err.Error()}
	}

	var doc RawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{File: path, Message: "invalid JSON: " + err.Error()}
	}
	return doc, nil
}

func (d RawDocument) has(key string) bool {
	_, ok := d[key]
	return ok
}

// str returns the value at key as a trimmed string; non-strings yield "".
func (d RawDocument) str(key string) string {
	if v, ok := d[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// firstStr returns the first non-empty string among keys.
func (d RawDocument) firstStr(keys ...string) string {
	for _, key := range keys {
		if s := d.str(key); s != "" {
			return s
		}
	}
	return ""
}

// intVal coerces the value at key to an int; missing or non-numeric is 0.
func (d RawDocument) intVal(key string) int {
	return coerceInt(d[key])
}

// sub returns a nested object, or nil when absent or not an object.
func (d RawDocument) sub(key string) RawDocument {
	if v, ok := d[key].(map[string]interface{}); ok {
		return RawDocument(v)
	}
	return nil
}

// idString coerces an identifier to string. Numeric ids arrive as float64
// from encoding/json and must not pick up an exponent or fraction.
func idString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatInt(int64(val), 10)
	case json.Number:
		return val.String()
	}
	return ""
}

// coerceInt accepts the number-or-string counters the platforms emit.
// Anything non-numeric counts as 0.
func coerceInt(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
		return 0
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return int(n)
		}
		if f, err := val.Float64(); err == nil {
			return int(f)
		}
		return 0
	}
	return 0
}
