// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"fmt"
	"strings"
)

// RunLog accumulates the append-only, human-readable record of one
// generation run. Single writer; everything in a run is sequential.
type RunLog struct {
	lines []string
}

// NewRunLog starts a run log with the standard header.
func NewRunLog() *RunLog {
	l := &RunLog{}
	l.Appendf("Article Generation Log")
	l.Appendf(strings.Repeat("=", 50))
	return l
}

// Appendf adds one formatted line.
func (l *RunLog) Appendf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// String returns the log as newline-joined plain text.
func (l *RunLog) String() string {
	return strings.Join(l.lines, "\n")
}
