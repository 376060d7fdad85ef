package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var jsonNull = []byte("null")

// isAbsent reports whether a raw field was omitted or explicitly null.
func isAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, jsonNull)
}

// decodeObject unmarshals a JSON object at path into v, translating
// encoding/json type errors into a FieldError that names the offending field.
func decodeObject(path string, raw json.RawMessage, v any) error {
	raw = bytes.TrimSpace(raw)
	if isAbsent(raw) {
		return missing(path)
	}
	if raw[0] != '{' {
		return &FieldError{Path: path, Err: ErrNotObject}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) && te.Field != "" {
			return &FieldError{
				Path: joinPath(path, te.Field),
				Err:  fmt.Errorf("expected %s, got %s", te.Type, te.Value),
			}
		}
		return &FieldError{Path: path, Err: err}
	}
	return nil
}

// decodeArray splits a JSON array at path into its raw elements.
func decodeArray(path string, raw json.RawMessage) ([]json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if isAbsent(raw) {
		return nil, missing(path)
	}
	if raw[0] != '[' {
		return nil, &FieldError{Path: path, Err: ErrNotArray}
	}
	var out []json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &FieldError{Path: path, Err: err}
	}
	return out, nil
}

func joinPath(base, field string) string {
	if base == "" {
		return field
	}
	if field == "" {
		return base
	}
	return base + "." + field
}

func indexPath(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}
