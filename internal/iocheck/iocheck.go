// Package iocheck checks generated files before they are written: the
// structure of ADX documents, the tags and the 7-bit character set of ADI
// files and, when a catalog is given, every field value.
//
// Problems are collected rather than returned one by one, so a single run
// reports all of them as "Line N Error: message".
package iocheck

import (
	"fmt"
	"strings"

	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
)

// maxReported limits the diagnostics shown in an error message.
const maxReported = 20

// Diagnostic is a problem found at a line of a file.
type Diagnostic struct {
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("Line %d Error: %s", d.Line, d.Message)
}

// Format renders diagnostics one per line. Only the first maxReported
// are shown.
func Format(diags []Diagnostic) string {
	var sb strings.Builder
	for i, d := range diags {
		if i == maxReported {
			fmt.Fprintf(&sb, "\n... and %d more", len(diags)-maxReported)
			break
		}
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(d.String())
	}
	return sb.String()
}

type collector struct {
	cat   *adif.Catalog
	diags []Diagnostic
}

func (c *collector) add(line int, format string, args ...any) {
	c.diags = append(c.diags, Diagnostic{
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	})
}

// checkValue validates a specification field. User and application
// fields are skipped, unknown fields are reported.
func (c *collector) checkValue(
	line int, name, value string, inHeader, tagStyle bool,
) {
	if c.cat == nil {
		return
	}
	f, ok := c.cat.Field(name)
	if !ok {
		c.add(line, "unknown field %s", name)
		return
	}
	switch {
	case inHeader && !f.Header:
		c.add(line, "field %s cannot be in the header", f.Name)
		return
	case !inHeader && f.Header:
		c.add(line, "header field %s cannot be in a record", f.Name)
		return
	}
	if err := c.cat.Check(name, value, tagStyle); err != nil {
		c.add(line, "%s", err)
	}
}
