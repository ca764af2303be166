package argparse

import "strings"

// Record is the immutable result of one Parse call: one field per configured
// option, plus a remainder field when no default key is set. Field names are
// the canonical option names with hyphens mapped to underscores; lookups
// accept either spelling.
type Record struct {
	fields       map[string]any // bool for flags, string for set options, nil for untouched ones
	remainder    string
	hasRemainder bool
}

func normalizeName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// Flag reports whether the named arity-0 option was present.
func (r *Record) Flag(name string) bool {
	b, _ := r.fields[normalizeName(name)].(bool)
	return b
}

// Value returns the joined captured text of the named option. ok is false if
// the option was never targeted or names a boolean flag.
func (r *Record) Value(name string) (string, bool) {
	s, ok := r.fields[normalizeName(name)].(string)
	return s, ok
}

// Remainder returns the text not claimed by any option. It is empty when a
// default key is configured, since that option absorbs unclaimed words.
func (r *Record) Remainder() string {
	return r.remainder
}

// HasRemainder reports whether the record carries a remainder field at all,
// which is the case exactly when no default key was configured.
func (r *Record) HasRemainder() bool {
	return r.hasRemainder
}

// Fields returns a copy of the record as a plain map: bool per flag, string
// per set option, nil per untouched option, plus "remainder" when present.
func (r *Record) Fields() map[string]any {
	out := make(map[string]any, len(r.fields)+1)
	for k, v := range r.fields {
		out[k] = v
	}
	if r.hasRemainder {
		out["remainder"] = r.remainder
	}
	return out
}
