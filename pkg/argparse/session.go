package argparse

import "strings"

// session is the scratch state for a single Parse call. It is allocated
// fresh per call and never escapes it.
type session struct {
	p       *Parser
	acc     map[string][]string // canonical name -> captured words; "" is the unnamed remainder bucket
	touched map[string]bool     // flags set without opening an accumulator
	current *option             // nil targets the unnamed remainder bucket
}

// targetKey returns the accumulator key of the current capture target.
func (s *session) targetKey() string {
	if s.current == nil {
		return ""
	}
	return s.current.name
}

// defaultKey returns the accumulator key of the default target.
func (s *session) defaultKey() string {
	if s.p.defaultOpt == nil {
		return ""
	}
	return s.p.defaultOpt.name
}

// append captures one plain word for the current target. Once a finite
// positive arity is reached the target reverts to the default, so trailing
// words become positional text again.
func (s *session) append(word string) {
	key := s.targetKey()
	s.acc[key] = append(s.acc[key], word)
	if s.current != nil && s.current.arity != ArityUnbounded && len(s.acc[key]) >= s.current.arity {
		s.current = s.p.defaultOpt
	}
}

// classify decides whether tok opens a new option capture and reports
// whether the current target switched. allowBundle permits peeling bundled
// single-rune flags; route controls whether an unmatched token is handed to
// the Unmatched policy (the =-shorthand lookup passes false and lets the
// caller reclassify the whole token instead).
func (s *session) classify(tok string, allowBundle, route bool) bool {
	p := s.p
	key := strings.ToLower(strings.TrimLeft(tok, "-"))

	var matched *option

	switch {
	case len(tok) > 1 && tok[0] == '-' && tok[1] != '-':
		if o, ok := p.lookup[key]; ok {
			if o.name != key {
				if o.arity == 0 {
					s.touched[o.name] = true
					return false
				}
				matched = o
			}
			// A single-dash spelling of a canonical name is ambiguous; it
			// stays unmatched and is not treated as a bundle.
		} else if allowBundle {
			peeled := false
			for _, f := range p.bundle {
				if strings.Contains(key, f) {
					s.touched[p.lookup[f].name] = true
					tok = strings.ReplaceAll(tok, f, "")
					peeled = true
				}
			}
			if peeled {
				if tok == "-" {
					return false
				}
				// Whatever survived the peel is looked up again as a flag.
				key = strings.ToLower(strings.TrimLeft(tok, "-"))
				if o, ok := p.lookup[key]; ok {
					matched = o
				}
			}
		}

	case strings.HasPrefix(tok, "--") && len(tok) > 2 && tok[2] != '-':
		if o, ok := p.lookup[key]; ok {
			matched = o
		}
	}

	if matched == nil {
		if !route || p.policy.Unmatched == UnmatchedDrop {
			return false
		}
		dk := s.defaultKey()
		s.acc[dk] = append(s.acc[dk], tok)
		return false
	}

	_, seen := s.acc[matched.name]
	if matched != p.defaultOpt && (p.policy.Repeat == RepeatReplace || !seen) {
		s.acc[matched.name] = []string{}
	}
	s.current = matched
	return true
}

// finish freezes the session into a Record.
func (s *session) finish() *Record {
	fields := make(map[string]any, len(s.p.options))
	for _, o := range s.p.options {
		key := normalizeName(o.name)
		words, opened := s.acc[o.name]
		switch {
		case o.arity == 0:
			fields[key] = opened || s.touched[o.name]
		case opened:
			fields[key] = strings.Join(words, " ")
		default:
			fields[key] = nil
		}
	}

	r := &Record{fields: fields}
	if s.p.defaultOpt == nil {
		r.remainder = strings.Join(s.acc[""], " ")
		r.hasRemainder = true
	}
	return r
}
