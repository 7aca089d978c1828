// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jbeautify implements a strict JSON scanner and stream parser, the
// front end of a pipeline that validates JSON text selected in an editor and
// reformats it.
//
// The value model and validator live in package ast, the pretty-printer in
// package format, and the region-oriented pipeline that an editor host drives
// in package beautify.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON.  Construct a scanner
// from a source string and call its Next method to iterate over the tokens.
// Next advances to the next input token and reports true, or reports false at
// the end of the input or on error:
//
//	s := jbeautify.NewScanner(input)
//	for s.Next() {
//	   log.Printf("Next token: %v", s.Token())
//	}
//	if err := s.Err(); err != nil {
//	   log.Fatalf("Scanning failed: %v", err)
//	}
//
// # Streaming
//
// The Stream type implements an event-driven stream parser for JSON.  The
// parser works by calling methods on a Handler value to report the structure
// of the input. In case of error, parsing is terminated and an error of
// concrete type *jbeautify.SyntaxError is returned.
//
// Construct a Stream from a source string, and call its ParseSingle method to
// parse exactly one value:
//
//	s := jbeautify.NewStream(input)
//	if err := s.ParseSingle(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// The grammar is strict JSON: comments, trailing commas, bare words such as
// NaN, and leading zeroes on numbers are all rejected.
//
// # Handlers
//
// The Handler interface accepts parser events from a Stream. The methods of
// a handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// Each method is passed an Anchor value that can be used to retrieve location
// and type information. The Anchor passed to a handler method is only valid
// for the duration of that method call.
//
// # Positions
//
// Offsets in a Span are measured in bytes. Lines in a LineCol are 1-based and
// columns are 0-based counts of characters, so that a position can anchor an
// annotation in an editor view.
package jbeautify
