package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates an indented, line oriented dump of a tree. Every
// level of depth is indented by two spaces.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes label and quoted value, empty values are written as is.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Pairs writes label followed by space separated key=value pairs on a single
// line. Values are quoted, keys are written in the order given.
func (tw TreeWriter) Pairs(depth int, label string, keys []string, value func(key string) string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(" {")
	for i, k := range keys {
		if i > 0 {
			tw.w.WriteByte(' ')
		}
		tw.w.WriteString(k)
		tw.w.WriteByte('=')
		tw.w.WriteString(strconv.Quote(value(k)))
	}
	tw.w.WriteString("}\n")
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
