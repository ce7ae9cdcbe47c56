// Package render holds the sinks that finished rows are drawn to.
package render

import (
	"bufio"
	"io"
	"strings"
)

// Text writes each row as a line of plain text.
type Text struct {
	w    *bufio.Writer
	rows int
}

// NewText returns a sink writing to w. Output is buffered until Flush.
func NewText(w io.Writer) *Text {
	return &Text{w: bufio.NewWriter(w)}
}

func (t *Text) WriteRow(row string) error {
	if _, err := t.w.WriteString(row); err != nil {
		return err
	}
	t.rows++
	return t.w.WriteByte('\n')
}

func (t *Text) Flush() error { return t.w.Flush() }

// Rows returns the number of rows written.
func (t *Text) Rows() int { return t.rows }

// Lines keeps rows in memory.
type Lines struct {
	rows []string
}

func (l *Lines) WriteRow(row string) error {
	l.rows = append(l.rows, row)
	return nil
}

// Rows returns the collected rows.
func (l *Lines) Rows() []string { return l.rows }

// String joins the rows with newlines, ending with one.
func (l *Lines) String() string {
	if len(l.rows) == 0 {
		return ""
	}
	return strings.Join(l.rows, "\n") + "\n"
}

// Sink is the row consumer shape shared with package stage.
type Sink interface {
	WriteRow(row string) error
}

type flusher interface {
	Flush() error
}

// Tee fans rows out to several sinks. Flush flushes every sink that
// supports it, stopping at the first error.
type Tee []Sink

func (t Tee) WriteRow(row string) error {
	for _, s := range t {
		if err := s.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

func (t Tee) Flush() error {
	for _, s := range t {
		if f, ok := s.(flusher); ok {
			if err := f.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}
