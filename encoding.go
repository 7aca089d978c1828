// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jbeautify

import (
	"errors"
	"strings"

	"github.com/creachadair/jbeautify/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return `"` + string(escape.Quote(mem.S(src), false)) + `"` }

// QuoteASCII is like Quote, but additionally escapes all non-ASCII characters
// as \u sequences, using surrogate pairs outside the Basic Multilingual Plane.
func QuoteASCII(src string) string { return `"` + string(escape.Quote(mem.S(src), true)) + `"` }

// Unquote decodes a JSON string value.  Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Invalid escapes and unpaired surrogates are replaced by the Unicode
// replacement rune. Unquote reports an error for an incomplete escape
// sequence. Note that a Scanner rejects unpaired surrogates.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return nil, errors.New("missing quotations")
	}
	return escape.Unquote(mem.S(src[1 : len(src)-1]))
}
