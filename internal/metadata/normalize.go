package metadata

import "strings"

// NormalizeTags coerces a raw "tags" value into a canonical sequence.
// It never fails:
//
//   - null or absent → empty sequence
//   - string → split on commas, each piece trimmed (a string with no
//     comma yields one element; an empty string yields one empty element)
//   - sequence → passed through unchanged, no per-element trimming
//   - any other shape → empty sequence, dropped without a diagnostic
func NormalizeTags(v Value) Value {
	switch v.kind {
	case String:
		parts := strings.Split(v.str, ",")
		seq := make([]Value, len(parts))
		for i, p := range parts {
			seq[i] = NewString(strings.TrimSpace(p))
		}
		return NewSequence(seq...)
	case Sequence:
		return v
	default:
		return NewSequence()
	}
}
