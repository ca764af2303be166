package stringview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(t *testing.T, input string) []string {
	t.Helper()
	v := New(input)
	var out []string
	for !v.EOF() {
		v.SkipChar(' ')
		w, err := v.GetQuotedWord()
		require.NoError(t, err)
		out = append(out, w)
	}
	return out
}

func TestPlainWords(t *testing.T) {
	assert.Equal(t, []string{"hello", "world"}, words(t, "hello world"))
}

func TestMultipleSpacesBetweenWords(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, words(t, "a   b"))
}

func TestQuotedPhraseIsOneWord(t *testing.T) {
	assert.Equal(t, []string{"hello world", "rest"}, words(t, `"hello world" rest`))
}

func TestUnicodeQuotePairs(t *testing.T) {
	assert.Equal(t, []string{"hi there"}, words(t, "«hi there»"))
	assert.Equal(t, []string{"hi there"}, words(t, "“hi there”"))
}

func TestEscapedQuoteInsideQuotes(t *testing.T) {
	assert.Equal(t, []string{`a " b`}, words(t, `"a \" b"`))
}

func TestBackslashBeforeOrdinaryRuneIsKept(t *testing.T) {
	assert.Equal(t, []string{`a\b`}, words(t, `a\b`))
}

func TestWhitespaceBeforeDashBreaksWord(t *testing.T) {
	v := New("a\n-b")
	w, err := v.GetQuotedWord()
	require.NoError(t, err)
	assert.Equal(t, "a", w)
	assert.Equal(t, 1, v.Index())

	w, err = v.GetQuotedWord()
	require.NoError(t, err)
	assert.Equal(t, "\n-b", w)
	assert.True(t, v.EOF())
}

func TestOtherWhitespaceStaysInsideWord(t *testing.T) {
	assert.Equal(t, []string{"a\nb"}, words(t, "a\nb"))
}

func TestUnexpectedQuoteMidWord(t *testing.T) {
	v := New(`ab"cd ef"`)
	w, err := v.GetQuotedWord()
	require.ErrorIs(t, err, ErrUnexpectedQuote)
	assert.Equal(t, "ab", w)
	// cursor sits on the quote so the caller can re-extract from it
	assert.Equal(t, 2, v.Index())

	w, err = v.GetQuotedWord()
	require.NoError(t, err)
	assert.Equal(t, "cd ef", w)
}

func TestUnterminatedQuote(t *testing.T) {
	v := New(`"abc`)
	w, err := v.GetQuotedWord()
	require.ErrorIs(t, err, ErrExpectedClosingQuote)
	assert.Equal(t, "abc", w)
	assert.True(t, v.EOF())
}

func TestClosingQuoteNotFollowedBySpace(t *testing.T) {
	v := New(`"ab"c`)
	w, err := v.GetQuotedWord()
	require.ErrorIs(t, err, ErrInvalidEndOfQuotedString)
	assert.Equal(t, "ab", w)
}

func TestRecoverySplice(t *testing.T) {
	// the combination the parser uses to treat malformed quoting as literal text
	v := New(`-cl="top-bottom blur"`)
	mark := v.Index()
	_, err := v.GetQuotedWord()
	require.ErrorIs(t, err, ErrUnexpectedQuote)
	scanned := v.Since(mark)
	rest, err := v.GetQuotedWord()
	require.NoError(t, err)
	assert.Equal(t, "-cl=top-bottom blur", scanned+rest)
}

func TestSkipChar(t *testing.T) {
	v := New("   x")
	assert.True(t, v.SkipChar(' '))
	assert.Equal(t, 3, v.Index())
	assert.False(t, v.SkipChar(' '))
}

func TestLookahead(t *testing.T) {
	v := New(`"-nope"`)
	assert.Equal(t, `"-`, v.Lookahead(2))
	assert.Equal(t, `"-nope"`, v.Lookahead(99))
	assert.Equal(t, "", New("").Lookahead(2))
}

func TestGetQuotedWordAtEnd(t *testing.T) {
	v := New("")
	w, err := v.GetQuotedWord()
	require.NoError(t, err)
	assert.Equal(t, "", w)
}

func TestCursorRestsOnSeparator(t *testing.T) {
	v := New("one two")
	w, err := v.GetQuotedWord()
	require.NoError(t, err)
	assert.Equal(t, "one", w)
	assert.Equal(t, 3, v.Index())
	assert.Equal(t, "one", v.Since(0))
}
