package domain

import (
	"encoding/json"
)

// AnswerValue is a single questionnaire answer. It is either a scalar
// (free-text or single choice) or a sequence (multiple choice). The two
// shapes are distinct: a one-element sequence is not equal to a scalar
// with the same text.
type AnswerValue struct {
	// Scalar holds the value when IsSequence is false.
	Scalar string

	// Sequence holds the values when IsSequence is true.
	// An empty sequence is legal and distinct from a scalar.
	Sequence []string

	// IsSequence discriminates the two shapes.
	IsSequence bool
}

// ScalarValue constructs a scalar AnswerValue.
func ScalarValue(s string) AnswerValue {
	return AnswerValue{Scalar: s}
}

// SequenceValue constructs a sequence AnswerValue.
func SequenceValue(items ...string) AnswerValue {
	if items == nil {
		items = []string{}
	}
	return AnswerValue{Sequence: items, IsSequence: true}
}

// Items returns the value normalized to a sequence. A scalar becomes a
// one-element sequence. The returned slice must not be mutated.
func (v AnswerValue) Items() []string {
	if v.IsSequence {
		return v.Sequence
	}
	return []string{v.Scalar}
}

// Equal reports order-sensitive structural equality. Shape matters:
// a scalar never equals a sequence.
func (v AnswerValue) Equal(o AnswerValue) bool {
	if v.IsSequence != o.IsSequence {
		return false
	}
	if !v.IsSequence {
		return v.Scalar == o.Scalar
	}
	if len(v.Sequence) != len(o.Sequence) {
		return false
	}
	for i := range v.Sequence {
		if v.Sequence[i] != o.Sequence[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the value.
func (v AnswerValue) Clone() AnswerValue {
	if !v.IsSequence {
		return v
	}
	items := make([]string, len(v.Sequence))
	copy(items, v.Sequence)
	return AnswerValue{Sequence: items, IsSequence: true}
}

// MarshalJSON encodes a scalar as a JSON string and a sequence as a
// JSON array, preserving the shape on the wire and in snapshots.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.IsSequence {
		if v.Sequence == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.Sequence)
	}
	return json.Marshal(v.Scalar)
}

// UnmarshalJSON decodes a JSON string into a scalar and a JSON array
// into a sequence. Other JSON kinds are coerced to scalar text so that
// numeric or boolean answers survive round-trips.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var seq []string
	if err := json.Unmarshal(data, &seq); err == nil {
		if seq == nil {
			seq = []string{}
		}
		*v = AnswerValue{Sequence: seq, IsSequence: true}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = AnswerValue{Scalar: s}
		return nil
	}

	// Numbers, booleans and null arrive from loosely typed clients.
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrBadRequest.WithDetails("answer value is neither string nor array").WithCause(err)
	}
	if raw == nil {
		*v = AnswerValue{Scalar: ""}
		return nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return ErrBadRequest.WithCause(err)
	}
	*v = AnswerValue{Scalar: string(b)}
	return nil
}

// CloneAnswers deep-copies an answers map.
func CloneAnswers(in map[string]AnswerValue) map[string]AnswerValue {
	if in == nil {
		return nil
	}
	out := make(map[string]AnswerValue, len(in))
	for k, val := range in {
		out[k] = val.Clone()
	}
	return out
}
