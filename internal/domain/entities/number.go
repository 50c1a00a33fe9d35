package entities

import (
	"bytes"
	"math"
	"strconv"
)

// Number is an optional numeric field of an upstream document.
// A JSON number decodes to a valid value. Anything else (null, a missing
// key, strings, booleans, objects) decodes to absent without failing the
// surrounding document.
type Number struct {
	value float64
	valid bool
}

// NewNumber returns a present Number
func NewNumber(v float64) Number {
	return Number{value: v, valid: true}
}

// Valid reports whether the number was present in the source document
func (n Number) Valid() bool {
	return n.valid
}

// Float returns the value, or NaN when absent
func (n Number) Float() float64 {
	if !n.valid {
		return math.NaN()
	}
	return n.value
}

// Value returns the value and whether it is present
func (n Number) Value() (float64, bool) {
	return n.value, n.valid
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	if c := data[0]; c != '-' && (c < '0' || c > '9') {
		return nil
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsInf(v, 0) {
		return nil
	}
	n.value, n.valid = v, true
	return nil
}

// MarshalJSON implements json.Marshaler; absent numbers encode as null
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, n.value, 'f', -1, 64), nil
}
