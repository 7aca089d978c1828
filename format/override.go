// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package format

import "sync/atomic"

// A SortOverride is a force-sort switch shared by formatters. While it is
// set, every Formatter that consults it sorts object keys regardless of its
// own Options.SortKeys. A SortOverride is safe for concurrent use.
// The zero value is ready for use and not set.
type SortOverride struct {
	forced atomic.Bool
}

// Set enables (true) or disables (false) forced sorting.
func (s *SortOverride) Set(on bool) { s.forced.Store(on) }

// Clear disables forced sorting, restoring per-call control.
func (s *SortOverride) Clear() { s.forced.Store(false) }

// Forced reports whether forced sorting is enabled.
// A nil *SortOverride is never forced.
func (s *SortOverride) Forced() bool { return s != nil && s.forced.Load() }

var processOverride SortOverride

// ProcessOverride returns the force-sort override for the running process.
// It is consulted by every Formatter whose Override field is nil, and stays
// in effect until it is cleared.
func ProcessOverride() *SortOverride { return &processOverride }
