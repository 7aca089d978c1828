// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jbeautify

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null

	// Do not modify the order of these constants without updating the
	// self-delimiting token check below.
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner reads lexical tokens from a source text.  Each call to Next
// advances the scanner to the next token, or reports false.
type Scanner struct {
	src string
	tok Token
	err error

	pos, end int // start and end offsets of current token
	last     int // size in bytes of last-read input rune

	// Apparent line and column offsets (0-based) of pos and end.
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner that consumes input from src.
func NewScanner(src string) *Scanner { return &Scanner{src: src} }

// Next advances s to the next token of the input and reports whether a token
// is available. At the end of the input, or if an error occurs, Next returns
// false and the caller should check Err.
func (s *Scanner) Next() bool {
	s.err = nil
	s.tok = Invalid
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol

	for {
		ch, err := s.rune()
		if err == io.EOF {
			return false // not an error
		} else if err != nil {
			s.fail(err)
			return false
		}

		// Discard whitespace.
		if isSpace(ch) {
			if ch == '\n' {
				s.eline++
				s.ecol = 0
			}
			s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
			continue
		}

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			s.tok = t
			return true
		}

		// Handle numbers.
		if isNumStart(ch) {
			return s.scanNumber(ch) == nil
		}

		// Handle string values.
		if ch == '"' {
			return s.scanString() == nil
		}

		// Handle constants: true, false, null
		var want mem.RO
		switch ch {
		case 't':
			s.tok = True
			want = mem.S("true")
		case 'f':
			s.tok = False
			want = mem.S("false")
		case 'n':
			s.tok = Null
			want = mem.S("null")
		default:
			s.unrune()
			s.failf("unexpected %q", ch)
			return false
		}
		s.scanName()
		if got := mem.S(s.src[s.pos:s.end]); !got.Equal(want) {
			s.tok = Invalid
			s.failAt(s.pos, s.pline, s.pcol, fmt.Errorf("unknown constant %q", got.StringCopy()))
			return false
		}
		return true
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next, or nil if the input ended
// without error. A lexical error has concrete type [*SyntaxError].
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token.
func (s *Scanner) Text() string { return s.src[s.pos:s.end] }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

func (s *Scanner) scanString() error {
	var esc bool
	var escPos, escCol int // start of the current \-escape
	hiPos, hiCol := -1, 0  // start of a high surrogate awaiting its pair
	for {
		pos, col := s.end, s.ecol
		ch, err := s.rune()
		if err == io.EOF {
			return s.failf("unterminated string")
		} else if err != nil {
			return s.fail(err)
		}
		if esc {
			// We are awaiting the completion of a \-escape.
			switch ch {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				if hiPos >= 0 {
					return s.unpaired(hiPos, hiCol)
				}
			case 'u':
				v, err := s.readHex4()
				if err != nil {
					return err
				}
				switch {
				case hiPos >= 0 && !isLowSurrogate(v):
					return s.unpaired(hiPos, hiCol)
				case hiPos >= 0:
					hiPos = -1
				case isHighSurrogate(v):
					hiPos, hiCol = escPos, escCol
				case isLowSurrogate(v):
					return s.unpaired(escPos, escCol)
				}
			default:
				s.unrune()
				return s.failf("invalid %q after escape", ch)
			}
			esc = false
		} else if ch == '\\' {
			esc, escPos, escCol = true, pos, col
		} else if hiPos >= 0 {
			return s.unpaired(hiPos, hiCol)
		} else if ch == '"' {
			s.tok = String
			return nil
		} else if ch < ' ' {
			s.unrune()
			return s.failf("unescaped control %q in string", ch)
		}
	}
}

// unpaired reports a syntax error for the unpaired surrogate escape at pos.
func (s *Scanner) unpaired(pos, col int) error {
	return s.failAt(pos, s.eline, col, fmt.Errorf("unpaired surrogate %s", s.src[pos:pos+6]))
}

func (s *Scanner) scanNumber(start rune) error {
	if start == '-' {
		// If there is a leading sign, we need at least one digit.
		// Otherwise, we already have one in start.
		if _, err := s.require(isDigit, "digit"); err != nil {
			return err
		}
	}

	// Consume the remainder of an integer.
	_, ch, err := s.readWhile(isDigit)
	if err == io.EOF {
		if hasExtraLeadingZeroes(s.Text()) {
			return s.failf("extra leading zeroes")
		}
		s.tok = Integer
		return nil
	} else if err != nil {
		return s.fail(err)
	}
	s.unrune()

	// Check for extra leading zeroes, which RFC 8259 disallows.
	// That is: 0.12 is OK, 01.2 is not.
	if hasExtraLeadingZeroes(s.Text()) {
		return s.failf("extra leading zeroes")
	}
	s.tok = Integer

	// If a decimal point follows, consume a fractional part.
	if ch == '.' {
		s.rune()
		nr, _, err := s.readWhile(isDigit)
		if err != nil && err != io.EOF {
			return s.fail(err)
		} else if nr == 0 {
			if err == nil {
				s.unrune()
			}
			return s.failf("no digits after decimal point")
		}
		if err == io.EOF {
			s.tok = Number
			return nil
		}
		s.unrune()
		s.tok = Number
		ch, _ = s.peek()
	}

	// If an exponent follows, consume it.
	if ch != 'E' && ch != 'e' {
		return nil
	}
	s.rune()
	sign, err := s.require(isExpStart, "sign or digit")
	if err != nil {
		return err
	}
	nr, _, err := s.readWhile(isDigit)
	if err != nil && err != io.EOF {
		return s.fail(err)
	}
	if err == nil {
		s.unrune()
	}
	if nr == 0 && (sign == '-' || sign == '+') {
		// It's OK to have no digits if the previous rune was not a sign,
		// otherwise we have to have at least one.
		return s.failf("missing exponent digits")
	}
	s.tok = Number
	return nil
}

// scanName consumes the remainder of a bare word.
func (s *Scanner) scanName() {
	if _, _, err := s.readWhile(isNameRune); err == nil {
		s.unrune()
	}
}

func (s *Scanner) rune() (rune, error) {
	if s.end >= len(s.src) {
		s.last = 0
		return 0, io.EOF
	}
	ch, nb := utf8.DecodeRuneInString(s.src[s.end:])
	if ch == utf8.RuneError && nb == 1 {
		s.last = 0
		return 0, errors.New("invalid UTF-8 encoding")
	}
	s.last = nb
	s.end += nb
	s.ecol++
	return ch, nil
}

func (s *Scanner) unrune() {
	if s.last > 0 {
		s.end -= s.last
		s.ecol--
		s.last = 0
	}
}

// peek returns the next rune of the input without consuming it.
func (s *Scanner) peek() (rune, error) {
	ch, err := s.rune()
	if err == nil {
		s.unrune()
	}
	return ch, err
}

// require reads a single rune matching f from the input, or returns an error
// mentioning the desired label.
func (s *Scanner) require(f func(rune) bool, label string) (rune, error) {
	ch, err := s.rune()
	if err == io.EOF {
		return 0, s.failf("want %s, got end of input", label)
	} else if err != nil {
		return 0, s.fail(err)
	} else if !f(ch) {
		s.unrune()
		return 0, s.failf("got %q, want %s", ch, label)
	}
	return ch, nil
}

// readWhile consumes runes matching f from the input until EOF or until a rune
// not matching f is found. The first non-matching rune (if any) is returned.
// It is the caller's responsibility to unread this rune, if desired.
// The int reports the number of runes consumed.
func (s *Scanner) readWhile(f func(rune) bool) (int, rune, error) {
	var nr int
	for {
		ch, err := s.rune()
		if err != nil {
			return nr, 0, err
		} else if !f(ch) {
			return nr, ch, nil
		}
		nr++
	}
}

// readHex4 reads exactly 4 hexadecimal digits from the input.
func (s *Scanner) readHex4() (rune, error) {
	var v rune
	for range 4 {
		ch, err := s.rune()
		if err == io.EOF {
			return 0, s.failf("incomplete Unicode escape")
		} else if err != nil {
			return 0, s.fail(err)
		} else if !isHexDigit(ch) {
			s.unrune()
			return 0, s.failf("invalid Unicode escape: not a hex digit: %q", ch)
		}
		v = v<<4 | hexValue(ch)
	}
	return v, nil
}

// fail records a syntax error at the current read position.
func (s *Scanner) fail(err error) error {
	return s.failAt(s.end, s.eline, s.ecol, err)
}

func (s *Scanner) failf(msg string, args ...any) error {
	return s.fail(fmt.Errorf(msg, args...))
}

func (s *Scanner) failAt(pos, line, col int, err error) error {
	s.err = &SyntaxError{
		Location: LineCol{Line: line + 1, Column: col},
		Offset:   pos,
		Message:  err.Error(),
		err:      err,
	}
	return s.err
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch rune) bool { return ch == '-' || isDigit(ch) }
func isExpStart(ch rune) bool { return ch == '-' || ch == '+' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isNameRune(ch rune) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func hexValue(ch rune) rune {
	switch {
	case ch >= 'a':
		return ch - 'a' + 10
	case ch >= 'A':
		return ch - 'A' + 10
	}
	return ch - '0'
}

func isHighSurrogate(r rune) bool { return 0xd800 <= r && r < 0xdc00 }
func isLowSurrogate(r rune) bool  { return 0xdc00 <= r && r < 0xe000 }

// hasExtraLeadingZeroes reports whether the representation of an integer in
// text has redundant leading zeroes, which RFC 8259 disallows.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(text string) bool {
	text = strings.TrimPrefix(text, "-") // skip leading sign
	if text != "" && text[0] == '0' {
		// A leading zero is OK if it's the only digit.
		return len(text) > 1 && isDigit(rune(text[1]))
	}
	return false
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch rune) (Token, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
