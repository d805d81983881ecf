package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Fields holds document attributes that have no dedicated struct field.
// It is inlined into the stored BSON document and flattened into the JSON
// object, so client-supplied attributes round-trip untouched.
type Fields map[string]any

var errNotAnObject = errors.New("document must be a JSON object")

// marshalDocument encodes known as a JSON object and adds every entry of
// extra whose key is not already taken by a known field.
func marshalDocument(known any, extra Fields) ([]byte, error) {
	b, err := json.Marshal(known)
	if err != nil || len(extra) == 0 {
		return b, err
	}

	var obj map[string]json.RawMessage
	if err = json.Unmarshal(b, &obj); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, taken := obj[k]; taken {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		obj[k] = raw
	}

	return json.Marshal(obj)
}

// unmarshalDocument decodes data into known and returns the attributes that
// did not map onto any of its JSON keys. Integral numbers are kept as int64.
func unmarshalDocument(data []byte, known any) (Fields, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, errNotAnObject
	}
	if err := json.Unmarshal(data, known); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var all map[string]any
	if err := dec.Decode(&all); err != nil {
		return nil, err
	}

	knownKeys, err := jsonKeys(known)
	if err != nil {
		return nil, err
	}
	for k := range knownKeys {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}

	extra := make(Fields, len(all))
	for k, v := range all {
		extra[k] = normalizeNumbers(v)
	}
	return extra, nil
}

func jsonKeys(v any) (map[string]json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var keys map[string]json.RawMessage
	err = json.Unmarshal(b, &keys)
	return keys, err
}

func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, inner := range t {
			t[k] = normalizeNumbers(inner)
		}
		return t
	case []any:
		for i, inner := range t {
			t[i] = normalizeNumbers(inner)
		}
		return t
	default:
		return v
	}
}
