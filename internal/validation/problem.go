// Package validation is the submission pre-check engine: subject contexts,
// the per-pass reference data cache, the problem model and the rule chain.
//
// A pass is one subject context run through one ordered chain. Rules report
// business failures as Problems and reserve errors for contract violations
// and gateway failures; an error aborts the pass.
package validation

import (
	"strings"
)

// FieldName is the key a problem value is reported under.
type FieldName string

// FieldValue is one (key, value) pair carried by a problem.
type FieldValue struct {
	Key   FieldName `json:"key"`
	Value string    `json:"value"`
}

// Problem is a single validation failure. Values keep their order; the first
// value is always keyed by the code's canonical field.
type Problem struct {
	Code   ProblemCode  `json:"code"`
	Values []FieldValue `json:"values"`
}

// NewProblem builds a problem carrying value under the code's canonical field.
func NewProblem(code ProblemCode, value string) Problem {
	return Problem{
		Code:   code,
		Values: []FieldValue{{Key: code.Field(), Value: value}},
	}
}

// With returns a copy of p with an extra context value appended.
func (p Problem) With(key FieldName, value string) Problem {
	values := make([]FieldValue, len(p.Values), len(p.Values)+1)
	copy(values, p.Values)
	return Problem{Code: p.Code, Values: append(values, FieldValue{Key: key, Value: value})}
}

// Value returns the first value stored under key.
func (p Problem) Value(key FieldName) (string, bool) {
	for _, v := range p.Values {
		if v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}

// Equal reports whether both problems carry the same code and the same values in the same order.
func (p Problem) Equal(other Problem) bool {
	if p.Code != other.Code || len(p.Values) != len(other.Values) {
		return false
	}
	for i := range p.Values {
		if p.Values[i] != other.Values[i] {
			return false
		}
	}
	return true
}

func (p Problem) String() string {
	var b strings.Builder
	b.WriteString(string(p.Code))
	b.WriteByte('[')
	for i, v := range p.Values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(v.Key))
		b.WriteByte('=')
		b.WriteString(v.Value)
	}
	b.WriteByte(']')
	return b.String()
}
