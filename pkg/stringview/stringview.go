// Package stringview provides a cursor over a raw command-argument string
// with quote-aware word extraction. Words are delimited by spaces; a matched
// pair of quote runes groups everything between them into a single word with
// the quotes stripped. Malformed quoting is reported through sentinel errors
// alongside the text scanned so far, so callers can recover without losing
// the cursor.
package stringview

import (
	"errors"
	"unicode"
)

var (
	// ErrUnexpectedQuote is returned when a quote rune appears in the middle
	// of a non-quoted word.
	ErrUnexpectedQuote = errors.New("stringview: unexpected quote in non-quoted word")
	// ErrExpectedClosingQuote is returned when input ends inside a quoted word.
	ErrExpectedClosingQuote = errors.New("stringview: expected closing quote")
	// ErrInvalidEndOfQuotedString is returned when a closing quote is
	// followed by something other than whitespace.
	ErrInvalidEndOfQuotedString = errors.New("stringview: expected whitespace after closing quote")
)

// quotePairs maps opening quote runes to their closing counterparts.
var quotePairs = map[rune]rune{
	'"': '"',
	'‘': '’',
	'‚': '‛',
	'“': '”',
	'„': '‟',
	'⹂': '⹂',
	'「': '」',
	'『': '』',
	'〝': '〞',
	'﹁': '﹂',
	'﹃': '﹄',
	'＂': '＂',
	'｢': '｣',
	'«': '»',
	'‹': '›',
	'《': '》',
	'〈': '〉',
}

var allQuotes = map[rune]bool{}

func init() {
	for open, close := range quotePairs {
		allQuotes[open] = true
		allQuotes[close] = true
	}
}

// StringView is a mutable cursor over a fixed buffer. It is not safe for
// concurrent use; allocate one per scan.
type StringView struct {
	buf      []rune
	index    int
	previous int
}

// New returns a StringView positioned at the start of s.
func New(s string) *StringView {
	return &StringView{buf: []rune(s)}
}

// EOF reports whether the cursor has passed the last rune.
func (v *StringView) EOF() bool {
	return v.index >= len(v.buf)
}

// Index returns the current cursor position in runes.
func (v *StringView) Index() int {
	return v.index
}

// Since returns the text between mark and the current cursor position.
func (v *StringView) Since(mark int) string {
	if mark < 0 {
		mark = 0
	}
	end := v.index
	if end > len(v.buf) {
		end = len(v.buf)
	}
	if mark >= end {
		return ""
	}
	return string(v.buf[mark:end])
}

// Lookahead returns up to n runes starting at the cursor without moving it.
func (v *StringView) Lookahead(n int) string {
	end := v.index + n
	if end > len(v.buf) {
		end = len(v.buf)
	}
	if v.index >= end {
		return ""
	}
	return string(v.buf[v.index:end])
}

// Undo moves the cursor back to where it was before the last advance.
func (v *StringView) Undo() {
	v.index = v.previous
}

// SkipChar advances the cursor past a contiguous run of c and reports
// whether anything was skipped.
func (v *StringView) SkipChar(c rune) bool {
	skipped := false
	for v.index < len(v.buf) && v.buf[v.index] == c {
		v.previous = v.index
		v.index++
		skipped = true
	}
	return skipped
}

// current returns the rune under the cursor.
func (v *StringView) current() (rune, bool) {
	if v.EOF() {
		return 0, false
	}
	return v.buf[v.index], true
}

// get advances the cursor one rune and returns the rune it lands on.
func (v *StringView) get() (rune, bool) {
	v.previous = v.index
	v.index++
	if v.index < len(v.buf) {
		return v.buf[v.index], true
	}
	return 0, false
}

// GetQuotedWord extracts the next word. A word normally ends at a space, or
// at any whitespace rune immediately followed by a dash; that second rule
// keeps flags on their own line parseable while leaving other embedded
// whitespace inside the word. If the word opens with a quote rune, it ends
// at the matching closing quote instead and the quotes are excluded from the
// result. Inside quotes, a backslash escapes the quote runes themselves.
//
// On malformed quoting GetQuotedWord returns the text accumulated so far
// together with one of ErrUnexpectedQuote, ErrExpectedClosingQuote or
// ErrInvalidEndOfQuotedString. The cursor is left where the scan stopped, so
// the caller can combine Since with another extraction to treat the
// malformed region as literal text. At end of input it returns "" and no
// error.
func (v *StringView) GetQuotedWord() (string, error) {
	cur, ok := v.current()
	if !ok {
		return "", nil
	}

	closeQuote, quoted := quotePairs[cur]

	var result []rune
	var escapable map[rune]bool
	if quoted {
		escapable = map[rune]bool{cur: true, closeQuote: true}
	} else {
		result = append(result, cur)
		escapable = allQuotes
	}

	for !v.EOF() {
		cur, ok = v.get()
		if !ok {
			if quoted {
				return string(result), ErrExpectedClosingQuote
			}
			return string(result), nil
		}

		if cur == '\\' {
			next, more := v.get()
			if !more {
				if quoted {
					return string(result), ErrExpectedClosingQuote
				}
				return string(result), nil
			}
			if escapable[next] {
				result = append(result, next)
			} else {
				v.Undo()
				result = append(result, cur)
			}
			continue
		}

		if !quoted && allQuotes[cur] {
			return string(result), ErrUnexpectedQuote
		}

		if quoted && cur == closeQuote {
			next, more := v.get()
			if more && !unicode.IsSpace(next) {
				return string(result), ErrInvalidEndOfQuotedString
			}
			return string(result), nil
		}

		if !quoted {
			boundary := false
			if cur == ' ' {
				boundary = true
			} else if unicode.IsSpace(cur) {
				prev := v.index
				next, _ := v.get()
				v.index = prev
				boundary = next == '-'
			}
			if boundary {
				// leave the cursor on the separator
				return string(result), nil
			}
		}

		result = append(result, cur)
	}

	return string(result), nil
}
