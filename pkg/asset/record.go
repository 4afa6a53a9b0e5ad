package asset

import (
	"encoding/json"
	"math"

	errs "github.com/matzehuels/stagekit/pkg/errors"
)

// FieldAssetID is the record field holding the global asset id.
const FieldAssetID = "assetId"

// MaxSafeInt is the largest integer every JSON number decoder represents
// exactly. Integral fields beyond ±MaxSafeInt are rejected.
const MaxSafeInt = 1<<53 - 1

// Record is one raw record read from the export document. Records are
// treated as immutable input: constructors copy what they need out of them.
type Record map[string]any

// Has reports whether the record carries key, even with a null value.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Float returns the numeric value of key.
func (r Record) Float(key string) (float64, bool) {
	return toFloat(r[key])
}

// Int returns the value of key when it is an integral number within
// ±MaxSafeInt.
func (r Record) Int(key string) (int, bool) {
	f, ok := toFloat(r[key])
	if !ok || f != math.Trunc(f) || math.Abs(f) > MaxSafeInt {
		return 0, false
	}
	return int(f), true
}

// String returns the string value of key.
func (r Record) String(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

// Slice returns the array value of key.
func (r Record) Slice(key string) ([]any, bool) {
	s, ok := r[key].([]any)
	return s, ok
}

// Map returns the object value of key.
func (r Record) Map(key string) (Record, bool) {
	switch m := r[key].(type) {
	case map[string]any:
		return Record(m), true
	case Record:
		return m, true
	}
	return nil, false
}

// AssetID returns the required assetId field.
// A missing, non-integral or out of range id is an INVALID_SCHEMA error.
func (r Record) AssetID() (int, error) {
	v, ok := r[FieldAssetID]
	if !ok || v == nil {
		return 0, errs.New(errs.ErrCodeInvalidSchema, "missing required field %q", FieldAssetID)
	}
	id, ok := r.Int(FieldAssetID)
	if !ok {
		return 0, errs.New(errs.ErrCodeInvalidSchema, "field %q must be an integer, got %v", FieldAssetID, v)
	}
	return id, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
