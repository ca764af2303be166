// Package argparse turns the free-form text typed after a chat command into
// named options, boolean flags and leftover remainder text. It is a
// conversational argument grammar rather than a CLI one: quoted phrases stay
// intact, single-character flags bundle (-htc), key=value shorthand works
// with both dash styles, and malformed quoting degrades to literal text
// instead of failing. Parse never returns an error; the only fatal condition
// is an invalid schema at construction time.
//
// A Parser is immutable once built and safe to share across any number of
// concurrent Parse calls.
package argparse

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"parley/pkg/stringview"
)

// ErrInvalidSchema is wrapped by every construction-time failure.
var ErrInvalidSchema = errors.New("invalid schema")

// ArityUnbounded makes an option consume value words until end of input.
const ArityUnbounded = -1

// Option is a partial descriptor for one recognized option. The zero value
// of Arity declares a boolean flag; positive arities auto-close after that
// many words and hand control back to the default target.
type Option struct {
	Name    string // canonical name; defaults to the schema lookup key
	Aliases []string
	Arity   int
}

// Schema maps lookup keys to option descriptors. Keys, canonical names and
// aliases all become valid lookups and must be unique across the schema.
type Schema map[string]Option

// UnmatchedMode decides what happens to a flag-looking token that matches no
// option.
type UnmatchedMode int

const (
	// UnmatchedKeep routes the token into the default/remainder bucket as
	// literal text.
	UnmatchedKeep UnmatchedMode = iota
	// UnmatchedDrop discards the token entirely.
	UnmatchedDrop
)

// RepeatMode decides what happens when an already-filled option is targeted
// again.
type RepeatMode int

const (
	// RepeatReplace restarts the option's accumulator; the last occurrence
	// wins.
	RepeatReplace RepeatMode = iota
	// RepeatAppend keeps earlier values and appends new ones, even past the
	// option's arity.
	RepeatAppend
)

// Policy is the per-parser behavior choice made once at construction.
type Policy struct {
	Unmatched UnmatchedMode
	Repeat    RepeatMode
	// DefaultKey names the option that absorbs unclaimed words instead of a
	// separate remainder field. It must be a valid lookup key.
	DefaultKey string
}

// option is the resolved, shared form of an Option.
type option struct {
	name  string
	arity int
}

// Parser is an immutable compiled schema.
type Parser struct {
	lookup     map[string]*option
	bundle     []string // sorted single-rune lookup keys eligible for -xyz bundling
	options    []*option
	policy     Policy
	defaultOpt *option // nil when no default key is configured
}

// New validates schema and policy and compiles them into a Parser. Duplicate
// names or aliases, empty keys, arities below -1 and an unknown DefaultKey
// are configuration errors; all are wrapped with ErrInvalidSchema.
func New(schema Schema, policy Policy) (*Parser, error) {
	p := &Parser{
		lookup: make(map[string]*option),
		policy: policy,
	}

	keys := make([]string, 0, len(schema))
	for k := range schema {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	register := func(key string, o *option) error {
		if key == "" {
			return fmt.Errorf("argparse: %w: empty lookup key for option %q", ErrInvalidSchema, o.name)
		}
		if prev, ok := p.lookup[key]; ok && prev != o {
			return fmt.Errorf("argparse: %w: %q claimed by both %q and %q", ErrInvalidSchema, key, prev.name, o.name)
		}
		p.lookup[key] = o
		return nil
	}

	for _, key := range keys {
		desc := schema[key]
		if desc.Arity < ArityUnbounded {
			return nil, fmt.Errorf("argparse: %w: option %q has arity %d", ErrInvalidSchema, key, desc.Arity)
		}
		name := desc.Name
		if name == "" {
			name = key
		}
		o := &option{name: name, arity: desc.Arity}
		p.options = append(p.options, o)

		if err := register(key, o); err != nil {
			return nil, err
		}
		if err := register(name, o); err != nil {
			return nil, err
		}
		for _, alias := range desc.Aliases {
			if err := register(alias, o); err != nil {
				return nil, err
			}
		}
	}

	for key, o := range p.lookup {
		if len([]rune(key)) == 1 && o.arity == 0 && key != o.name {
			p.bundle = append(p.bundle, key)
		}
	}
	sort.Strings(p.bundle)

	if policy.DefaultKey != "" {
		o, ok := p.lookup[policy.DefaultKey]
		if !ok {
			return nil, fmt.Errorf("argparse: %w: default key %q matches no option", ErrInvalidSchema, policy.DefaultKey)
		}
		p.defaultOpt = o
	}

	return p, nil
}

// MustNew is New for package-level parser declarations; it panics on a
// configuration error.
func MustNew(schema Schema, policy Policy) *Parser {
	p, err := New(schema, policy)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse consumes one raw argument string and produces a Record. It never
// fails: unknown flags follow the Unmatched policy and malformed quoting is
// recovered locally as literal text.
func (p *Parser) Parse(raw string) *Record {
	s := &session{
		p:       p,
		acc:     make(map[string][]string),
		touched: make(map[string]bool),
		current: p.defaultOpt,
	}

	view := stringview.New(raw)
	for !view.EOF() {
		view.SkipChar(' ')

		// A quote directly wrapping a dash keeps the word literal even if it
		// would otherwise look like a flag.
		literal := view.Lookahead(2) == `"-`

		mark := view.Index()
		word, err := view.GetQuotedWord()
		if err != nil {
			// Splice everything scanned so far with a second extraction and
			// carry on with the result as one literal word.
			scanned := view.Since(mark)
			rest, _ := view.GetQuotedWord()
			word = scanned + rest
		}

		trimmed := strings.TrimSpace(word)

		if !literal && strings.HasPrefix(trimmed, "-") && len(trimmed) > 1 {
			if key, value, ok := splitShorthand(trimmed); ok {
				if s.classify(key, false, false) {
					s.append(value)
					continue
				}
			}
			s.classify(trimmed, true, true)
			continue
		}

		s.append(word)
	}

	return s.finish()
}

// Converter is the conversion-function shape a command framework invokes
// uniformly for each declared parameter.
type Converter func(ctx context.Context, raw string) (any, error)

// Converter adapts the parser for a per-parameter conversion pipeline. The
// returned function never reports an error.
func (p *Parser) Converter() Converter {
	return func(_ context.Context, raw string) (any, error) {
		return p.Parse(raw), nil
	}
}

// splitShorthand splits a -key=value token. Every =-separated piece must be
// non-empty; the value keeps any further = signs.
func splitShorthand(tok string) (key, value string, ok bool) {
	if !strings.Contains(tok, "=") {
		return "", "", false
	}
	parts := strings.Split(tok, "=")
	for _, part := range parts {
		if part == "" {
			return "", "", false
		}
	}
	return parts[0], strings.Join(parts[1:], "="), true
}
