package domain

import (
	"encoding/json"
	"testing"
)

func TestAnswerValueJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want AnswerValue
		out  string
	}{
		{
			name: "scalar string",
			in:   `"hello"`,
			want: ScalarValue("hello"),
			out:  `"hello"`,
		},
		{
			name: "empty scalar",
			in:   `""`,
			want: ScalarValue(""),
			out:  `""`,
		},
		{
			name: "sequence",
			in:   `["a","b","c"]`,
			want: SequenceValue("a", "b", "c"),
			out:  `["a","b","c"]`,
		},
		{
			name: "empty sequence",
			in:   `[]`,
			want: SequenceValue(),
			out:  `[]`,
		},
		{
			name: "number coerced to scalar",
			in:   `42`,
			want: ScalarValue("42"),
			out:  `"42"`,
		},
		{
			name: "null coerced to empty scalar",
			in:   `null`,
			want: ScalarValue(""),
			out:  `""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v AnswerValue
			if err := json.Unmarshal([]byte(tt.in), &v); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.in, err)
			}
			if !v.Equal(tt.want) {
				t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.in, v, tt.want)
			}

			b, err := json.Marshal(v)
			if err != nil {
				t.Fatalf("Marshal error: %v", err)
			}
			if string(b) != tt.out {
				t.Errorf("Marshal = %s, want %s", b, tt.out)
			}
		})
	}
}

func TestAnswerValueEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b AnswerValue
		want bool
	}{
		{"equal scalars", ScalarValue("x"), ScalarValue("x"), true},
		{"different scalars", ScalarValue("x"), ScalarValue("y"), false},
		{"equal sequences", SequenceValue("a", "b"), SequenceValue("a", "b"), true},
		{"order matters", SequenceValue("a", "b"), SequenceValue("b", "a"), false},
		{"length differs", SequenceValue("a"), SequenceValue("a", "a"), false},
		{"scalar vs one-element sequence", ScalarValue("a"), SequenceValue("a"), false},
		{"empty sequences", SequenceValue(), SequenceValue(), true},
		{"empty scalar vs empty sequence", ScalarValue(""), SequenceValue(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("Equal (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnswerValueItems(t *testing.T) {
	if got := ScalarValue("x").Items(); len(got) != 1 || got[0] != "x" {
		t.Errorf("scalar Items = %v, want [x]", got)
	}
	if got := SequenceValue("a", "b").Items(); len(got) != 2 {
		t.Errorf("sequence Items = %v, want [a b]", got)
	}
	if got := SequenceValue().Items(); len(got) != 0 {
		t.Errorf("empty sequence Items = %v, want []", got)
	}
}

func TestAnswerValueClone(t *testing.T) {
	orig := SequenceValue("a", "b")
	clone := orig.Clone()
	clone.Sequence[0] = "z"
	if orig.Sequence[0] != "a" {
		t.Error("Clone shares backing array with original")
	}
}

func TestCloneAnswers(t *testing.T) {
	in := map[string]AnswerValue{
		"q1": ScalarValue("a"),
		"q2": SequenceValue("x", "y"),
	}
	out := CloneAnswers(in)
	out["q2"].Sequence[0] = "mutated"
	if in["q2"].Sequence[0] != "x" {
		t.Error("CloneAnswers shares sequence backing arrays")
	}
	if CloneAnswers(nil) != nil {
		t.Error("CloneAnswers(nil) should be nil")
	}
}
