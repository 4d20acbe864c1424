// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolchain

import "fmt"

// Capture holds the three output streams collected from a quietly-run
// operation: regular output, warnings, and diagnostic notes. Nothing is
// printed while the operation runs; callers decide what to surface.
type Capture struct {
	Stdout   []string
	Warnings []string
	Notes    []string
}

// Recorder is handed to a quietly-run operation in place of direct
// printing. Each method appends one line to the corresponding stream.
type Recorder struct {
	c Capture
}

// Printf records a line of regular output.
func (r *Recorder) Printf(format string, args ...any) {
	r.c.Stdout = append(r.c.Stdout, fmt.Sprintf(format, args...))
}

// Warnf records a warning.
func (r *Recorder) Warnf(format string, args ...any) {
	r.c.Warnings = append(r.c.Warnings, fmt.Sprintf(format, args...))
}

// Notef records a diagnostic note.
func (r *Recorder) Notef(format string, args ...any) {
	r.c.Notes = append(r.c.Notes, fmt.Sprintf(format, args...))
}

// RunQuiet executes op with a fresh Recorder and returns the captured
// streams alongside op's error. The error is returned, never printed, so
// a failed operation still hands back everything it said.
func RunQuiet(op func(*Recorder) error) (Capture, error) {
	var rec Recorder
	err := op(&rec)
	return rec.c, err
}
