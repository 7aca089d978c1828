// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jbeautify_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jbeautify"
	"github.com/google/go-cmp/cmp"
)

func TestStream(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "."},
		{"   ", "."},

		{"true false null", `
Value true <true>
Value false <false>
Value null <null>
.`},

		{`0 5 -6.32 0.1e-2`, `
Value integer <0>
Value integer <5>
Value number <-6.32>
Value number <0.1e-2>
.`},

		{`"" "a b c" "a\tb" "a b"`, `
Value string <"">
Value string <"a b c">
Value string <"a\tb">
Value string <"a b">
.`},

		{`{}`, "BeginObject\nEndObject\n."},

		{`{"a":15}`, `
BeginObject
BeginMember <"a">
Value integer <15>
EndMember "}"
EndObject
.`},

		{`{"x":null, "y":[true]}`, `
BeginObject
BeginMember <"x">
Value null <null>
EndMember ","
BeginMember <"y">
BeginArray
Value true <true>
EndArray
EndMember "}"
EndObject
.`},

		{`[]`, "BeginArray\nEndArray\n."},
	}

	for _, test := range tests {
		st := jbeautify.NewStream(test.input)
		th := new(testHandler)
		if err := st.Parse(th); err != nil {
			t.Errorf("Parse failed: %v", err)
		}

		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestStreamErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
		estr  string
	}{
		// Various kinds of unbalanced object bits.
		{`{`, `BeginObject`,
			`at 1:1: expected "}" or string, got end of input`},
		{`}`, ``, `at 1:0: unexpected "}"`},
		{`{false:1}`, `BeginObject`,
			`at 1:1: expected "}" or string, got false`},
		{`{"true":}`, `
BeginObject
BeginMember <"true">`,
			`at 1:8: unexpected "}"`},
		{`{"true":1,`, `
BeginObject
BeginMember <"true">
Value integer <1>
EndMember ","`,
			`at 1:10: expected string, got end of input`},
		{`{"true":1,}`, `
BeginObject
BeginMember <"true">
Value integer <1>
EndMember ","`,
			`at 1:10: expected string, got "}"`},

		// Unbalanced array bits.
		{`[`, `BeginArray`,
			`at 1:1: unexpected end of input`},
		{`]`, ``, `at 1:0: unexpected "]"`},
		{`[15,`, `
BeginArray
Value integer <15>`,
			`at 1:4: unexpected end of input`},
		{`[15,]`, `
BeginArray
Value integer <15>`,
			`at 1:4: unexpected "]"`},
		{`[15 16]`, `
BeginArray
Value integer <15>`,
			`at 1:4: expected "]" or ",", got integer`},

		// Invalid values.
		{`1 2.0 forthright`, `
Value integer <1>
Value number <2.0>`,
			`at 1:6: unknown constant "forthright"`},
		{`"what did you`, ``,
			`at 1:13: unterminated string`},
	}

	for _, test := range tests {
		st := jbeautify.NewStream(test.input)
		th := new(testHandler)
		err := st.Parse(th)
		if err == nil {
			t.Error("Parse did not report an error")
			continue
		}

		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
		if diff := diffStrings(test.estr, err.Error()); diff != "" {
			t.Errorf("Input: %#q\nError: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestStreamHandlerError(t *testing.T) {
	errStop := errors.New("stop")
	th := &testHandler{failOn: "BeginArray", err: errStop}
	err := jbeautify.NewStream(`{"a": [1]}`).ParseSingle(th)
	if !errors.Is(err, errStop) {
		t.Errorf("ParseSingle: got %v, want %v", err, errStop)
	}
	if jbeautify.IsSyntaxError(err) {
		t.Errorf("ParseSingle: handler error %v reported as a syntax error", err)
	}
}

func TestParseOne(t *testing.T) {
	const input = `{ "love": true } [] "ok"`
	const want = `
BeginObject
BeginMember <"love">
Value true <true>
EndMember "}"
EndObject
---
BeginArray
EndArray
---
Value string <"ok">
---
.`
	th := new(testHandler)

	st := jbeautify.NewStream(input)
	for {
		err := st.ParseOne(th)
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("ParseOne failed: %v", err)
		}
		th.pr("---")
	}

	if diff := diffStrings(want, th.output()); diff != "" {
		t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", input, diff)
	}
}

func TestParseSingle(t *testing.T) {
	tests := []struct {
		input string
		want  string
		estr  string
	}{
		{"", ".", "at 1:0: unexpected end of input"},
		{"  42  ", "Value integer <42>\n.", ""},
		{`[1] 2`, "BeginArray\nValue integer <1>\nEndArray", `at 1:4: unexpected integer after end of value`},
		{"\n\n{}", "BeginObject\nEndObject\n.", ""},
	}
	for _, test := range tests {
		th := new(testHandler)
		err := jbeautify.NewStream(test.input).ParseSingle(th)
		if test.estr == "" && err != nil {
			t.Errorf("Input: %#q: unexpected error: %v", test.input, err)
		} else if test.estr != "" {
			if err == nil {
				t.Errorf("Input: %#q: got nil, want %q", test.input, test.estr)
			} else if got := err.Error(); got != test.estr {
				t.Errorf("Input: %#q: got %q, want %q", test.input, got, test.estr)
			}
		}
		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestFinish(t *testing.T) {
	st := jbeautify.NewStream(`true  `)
	th := new(testHandler)
	if err := st.ParseOne(th); err != nil {
		t.Fatalf("ParseOne failed: %v", err)
	}
	if err := st.Finish(); err != nil {
		t.Errorf("Finish: unexpected error: %v", err)
	}

	st = jbeautify.NewStream(`true false`)
	if err := st.ParseOne(th); err != nil {
		t.Fatalf("ParseOne failed: %v", err)
	}
	if err := st.Finish(); err == nil {
		t.Error("Finish: got nil, want error")
	}
}

func diffStrings(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}

type testHandler struct {
	buf bytes.Buffer

	failOn string // if set, fail the named event with err
	err    error
}

func (t *testHandler) pr(msg string, args ...any) error {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(&t.buf, msg, args...)
	if t.failOn != "" && strings.HasPrefix(msg, t.failOn) {
		return t.err
	}
	return nil
}

func (t *testHandler) output() string { return t.buf.String() }

func (t *testHandler) BeginObject(loc jbeautify.Anchor) error { return t.pr("BeginObject") }
func (t *testHandler) EndObject(loc jbeautify.Anchor) error   { return t.pr("EndObject") }
func (t *testHandler) BeginArray(loc jbeautify.Anchor) error  { return t.pr("BeginArray") }
func (t *testHandler) EndArray(loc jbeautify.Anchor) error    { return t.pr("EndArray") }
func (t *testHandler) EndOfInput(loc jbeautify.Anchor)        { t.pr(".") }

func (t *testHandler) BeginMember(loc jbeautify.Anchor) error {
	return t.pr("BeginMember <%s>", loc.Text())
}

func (t *testHandler) EndMember(loc jbeautify.Anchor) error {
	return t.pr("EndMember %s", loc.Token())
}

func (t *testHandler) Value(loc jbeautify.Anchor) error {
	return t.pr(`Value %s <%s>`, loc.Token(), loc.Text())
}
