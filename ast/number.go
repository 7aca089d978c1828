// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// A Number is a numeric value. A Number is either an integer of arbitrary
// precision, or a binary64 floating-point value; the distinction follows the
// source text, so 1 is an integer and 1.0 and 1e0 are not.
type Number struct {
	isInt bool
	text  string  // canonical decimal text, for integers
	f     float64 // value, for floating-point
}

// Int constructs an integer Number with value v.
func Int(v int64) Number { return Number{isInt: true, text: strconv.FormatInt(v, 10)} }

// Float constructs a floating-point Number with value v.
func Float(v float64) Number { return Number{f: v} }

// ParseNumber parses text as a JSON number. Text without a fraction or
// exponent is an integer. A floating-point literal whose magnitude is too
// large to represent is converted to an infinity without error.
func ParseNumber(text string) (Number, error) {
	if !strings.ContainsAny(text, ".eE") {
		z, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return Number{}, fmt.Errorf("invalid integer %q", text)
		}
		return Number{isInt: true, text: z.String()}, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !isRangeError(err) {
		return Number{}, fmt.Errorf("invalid number %q", text)
	}
	return Number{f: f}, nil
}

func isRangeError(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// IsInt reports whether n is an integer.
func (n Number) IsInt() bool { return n.isInt }

// Int returns the value of an integer n, or nil if n is not an integer.
func (n Number) Int() *big.Int {
	if !n.isInt {
		return nil
	}
	z, _ := new(big.Int).SetString(n.text, 10)
	return z
}

// Int64 returns the value of n as an int64, and reports whether n is an
// integer that fits in an int64.
func (n Number) Int64() (int64, bool) {
	if !n.isInt {
		return 0, false
	}
	v, err := strconv.ParseInt(n.text, 10, 64)
	return v, err == nil
}

// Float64 returns the value of n as a float64. Large integers may lose
// precision.
func (n Number) Float64() float64 {
	if n.isInt {
		f, _ := new(big.Float).SetPrec(53).SetString(n.text)
		v, _ := f.Float64()
		return v
	}
	return n.f
}

// IsFinite reports whether n is neither infinite nor NaN.
func (n Number) IsFinite() bool {
	return n.isInt || !(math.IsInf(n.f, 0) || math.IsNaN(n.f))
}

// Equal reports whether n and m have the same kind and value.
func (n Number) Equal(m Number) bool {
	if n.isInt != m.isInt {
		return false
	} else if n.isInt {
		return n.text == m.text
	}
	return n.f == m.f || (math.IsNaN(n.f) && math.IsNaN(m.f))
}

// JSON satisfies the Value interface. Integers are rendered in canonical
// decimal form. Floating-point values use the shortest representation that
// reads back as the same value: fixed notation when the decimal exponent is
// in the range [-4, 16), exponent notation otherwise, and always with either
// a decimal point or an exponent. Non-finite values are rendered as the
// non-standard tokens Infinity, -Infinity, and NaN.
func (n Number) JSON() string {
	if n.isInt {
		return n.text
	}
	switch {
	case math.IsNaN(n.f):
		return "NaN"
	case math.IsInf(n.f, 1):
		return "Infinity"
	case math.IsInf(n.f, -1):
		return "-Infinity"
	}
	return formatFloat(n.f)
}

func (n Number) String() string { return n.JSON() }

func formatFloat(f float64) string {
	es := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(es[strings.IndexByte(es, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return es
	}
	fs := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(fs, '.') {
		fs += ".0"
	}
	return fs
}
