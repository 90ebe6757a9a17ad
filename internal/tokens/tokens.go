// Package tokens splits a raw command line into tokens.
package tokens

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is one unit of user input.
type Token struct {
	Text   string
	Quoted bool
	Start  int // byte offset of the first raw byte
	End    int // byte offset just past the last raw byte
}

// Tokenize splits raw on whitespace. A double or single quote at the start
// of a token groups everything up to the matching quote into one token; the
// quotes are stripped and \", \' and \\ are unescaped inside. A quote in the
// middle of a word is kept literally. An unterminated quote runs to the end
// of the input.
func Tokenize(raw string) []Token {
	var out []Token
	var current strings.Builder

	i := 0
	for i < len(raw) {
		r, size := utf8.DecodeRuneInString(raw[i:])
		if unicode.IsSpace(r) {
			i += size
			continue
		}

		tok := Token{Start: i}
		current.Reset()

		if r == '"' || r == '\'' {
			tok.Quoted = true
			i = readQuoted(raw, i+size, byte(r), &current)
		}

		// plain word, or the tail glued to a closing quote
		for i < len(raw) {
			r, size = utf8.DecodeRuneInString(raw[i:])
			if unicode.IsSpace(r) {
				break
			}
			current.WriteString(raw[i : i+size])
			i += size
		}

		tok.Text = current.String()
		tok.End = i
		out = append(out, tok)
	}

	return out
}

// readQuoted copies the quoted span starting at i into b and returns the
// offset just past the closing quote (or len(raw) if there is none).
func readQuoted(raw string, i int, quote byte, b *strings.Builder) int {
	for i < len(raw) {
		c := raw[i]
		switch {
		case c == quote:
			return i + 1
		case c == '\\' && i+1 < len(raw):
			next := raw[i+1]
			if next == '"' || next == '\'' || next == '\\' {
				b.WriteByte(next)
				i += 2
				continue
			}
			b.WriteByte(c)
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return i
}

// Texts returns the text of every token.
func Texts(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

// Join joins token texts with single spaces.
func Join(toks []Token) string {
	return strings.Join(Texts(toks), " ")
}

// Partial reports whether the last token of raw runs up to the end of the
// input, i.e. the user is still typing it.
func Partial(raw string, toks []Token) bool {
	if len(toks) == 0 {
		return false
	}
	return toks[len(toks)-1].End == len(raw)
}

// Quote returns s ready to be typed back as a single token.
func Quote(s string) string {
	if s != "" && !strings.ContainsFunc(s, unicode.IsSpace) && !strings.ContainsAny(s[:1], `"'`) {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}
