// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package settings loads formatter settings from a Sublime-style settings
// file. A settings file is a JSON object that may contain comments and
// trailing commas, for example:
//
//	{
//	  // Options for the JSON formatter.
//	  "json": {
//	    "sort_keys": true,
//	  },
//	}
//
// The recognized keys are json.sort_keys, json.force_sort, and
// json.ensure_ascii, all Boolean. Other keys are ignored. Unset keys take
// their values from Default.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/creachadair/jbeautify/ast"
	"github.com/creachadair/jbeautify/ast/cursor"
	"github.com/creachadair/jbeautify/beautify"
	"github.com/creachadair/jbeautify/format"
	"github.com/tailscale/hujson"
)

// FileName is the conventional base name of a settings file.
const FileName = "Beautify.sublime-settings"

// Settings are the formatter settings read from a settings file.
type Settings struct {
	SortKeys    bool // json.sort_keys
	ForceSort   bool // json.force_sort
	EnsureASCII bool // json.ensure_ascii
}

// Default returns the settings used when a key is not set: keys are not
// sorted and non-ASCII characters are escaped.
func Default() Settings { return Settings{EnsureASCII: true} }

// Config returns a beautify configuration for s that consults ov for forced
// sorting. If s.ForceSort is true, ov is set.
func (s Settings) Config(ov *format.SortOverride) beautify.Config {
	if s.ForceSort {
		if ov == nil {
			ov = format.ProcessOverride()
		}
		ov.Set(true)
	}
	return beautify.Config{SortKeys: s.SortKeys, ASCII: s.EnsureASCII, Override: ov}
}

// Load reads and parses the settings file at path. If the file does not
// exist, Load returns the default settings without error.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	} else if err != nil {
		return Settings{}, err
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse parses settings from the contents of a settings file.
func Parse(data []byte) (Settings, error) {
	// Comments and trailing commas are blanked in place, so offsets in the
	// standardized text match the original.
	std, err := hujson.Standardize(data)
	if err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	v, err := ast.Parse(string(std))
	if err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	if _, ok := v.(*ast.Object); !ok {
		return Settings{}, fmt.Errorf("invalid settings: got %s, want object", cursor.Kind(v))
	}

	s := Default()
	for _, opt := range []struct {
		key string
		dst *bool
	}{
		{"sort_keys", &s.SortKeys},
		{"force_sort", &s.ForceSort},
		{"ensure_ascii", &s.EnsureASCII},
	} {
		b, err := cursor.Path[ast.Bool](v, "json", opt.key)
		if errors.Is(err, cursor.ErrNotFound) {
			continue
		} else if err != nil {
			return Settings{}, fmt.Errorf("invalid setting: %w", err)
		}
		*opt.dst = bool(b)
	}
	return s, nil
}
