package validate

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Record is a normalized output record: an insertion-ordered mapping from
// PascalCase output key to normalized value (string, int or float64).
// Optional fields whose source value was empty are simply never set, so the
// marshalled payload omits them instead of carrying nulls.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Set stores a value, keeping the position of the first Set for the key.
func (r *Record) Set(key string, value any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for key and whether it is present.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Len returns the number of keys.
func (r *Record) Len() int {
	return len(r.keys)
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Text returns the value for key as a string, or "" when absent or not a
// string.
func (r *Record) Text(key string) string {
	if s, ok := r.values[key].(string); ok {
		return s
	}
	return ""
}

// Float returns the value for key as a float64, widening stored ints.
// Absent or non-numeric values yield 0.
func (r *Record) Float(key string) float64 {
	switch v := r.values[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// Int returns the value for key as an int, or 0 when absent or not an int.
func (r *Record) Int(key string) int {
	if n, ok := r.values[key].(int); ok {
		return n
	}
	return 0
}

// MarshalJSON emits the record as a JSON object in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
