package iocheck

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
)

type adiChecker struct {
	collector
	data []byte
	pos  int
	line int

	inHeader bool
	seen     map[string]struct{}
	userDefs map[string]struct{}
}

// CheckADI checks an ADI file: every character must be 7-bit ASCII and
// every tag must be well formed. With a catalog, field values are
// validated as well.
func CheckADI(data []byte, cat *adif.Catalog) []Diagnostic {
	c := adiChecker{
		collector: collector{cat: cat},
		data:      data,
		line:      1,
		seen:      make(map[string]struct{}),
		userDefs:  make(map[string]struct{}),
	}
	c.checkASCII()
	c.run()
	return c.diags
}

func (c *adiChecker) checkASCII() {
	line, col := 1, 0
	reported := 0
	for _, b := range c.data {
		col++
		if b == '\n' {
			line, col = line+1, 0
			continue
		}
		if b > 0x7F && reported != line {
			c.add(line, "character 0x%02X at column %d is not 7-bit ASCII",
				b, col)
			reported = line
		}
	}
}

// advance moves to pos, counting lines on the way.
func (c *adiChecker) advance(pos int) {
	c.line += bytes.Count(c.data[c.pos:pos], []byte{'\n'})
	c.pos = pos
}

func (c *adiChecker) run() {
	// A file that does not start with '<' has a header.
	c.inHeader = len(c.data) > 0 && c.data[0] != '<'
	for {
		i := bytes.IndexByte(c.data[c.pos:], '<')
		if i < 0 {
			break
		}
		c.advance(c.pos + i)
		if !c.tag() {
			return
		}
	}
	if c.inHeader {
		c.add(c.line, "the header has no <EOH> tag")
	}
}

// tag reads the tag at the current position and skips its value. It
// returns false when the rest of the file cannot be read.
func (c *adiChecker) tag() bool {
	end := bytes.IndexByte(c.data[c.pos:], '>')
	if end < 0 {
		c.add(c.line, "tag is not closed by '>'")
		return false
	}
	spec := string(c.data[c.pos+1 : c.pos+end])
	line := c.line
	c.advance(c.pos + end + 1)

	parts := strings.Split(spec, ":")
	name := strings.ToUpper(parts[0])
	if len(parts) == 1 {
		switch name {
		case "EOH":
			if !c.inHeader {
				c.add(line, "<EOH> without a header")
			}
			c.inHeader = false
		case "EOR":
			if c.inHeader {
				c.add(line, "<EOR> inside the header")
				c.inHeader = false
			}
		default:
			c.add(line, "tag <%s> has no length", spec)
			return true
		}
		clear(c.seen)
		return true
	}

	if len(parts) > 3 || name == "" {
		c.add(line, "tag <%s> is not in the <NAME[:type]:length> form", spec)
		return true
	}
	n, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || n < 0 {
		c.add(line, "tag <%s> has an invalid length", spec)
		return true
	}
	if len(parts) == 3 && len(parts[1]) != 1 {
		c.add(line, "tag <%s> has an invalid Data Type Indicator", spec)
	}
	if c.pos+n > len(c.data) {
		c.add(line, "value of %s runs past the end of the file", name)
		return false
	}
	value := string(c.data[c.pos : c.pos+n])
	c.advance(c.pos + n)

	if _, ok := c.seen[name]; ok {
		c.add(line, "field %s appears twice", name)
	}
	c.seen[name] = struct{}{}
	c.field(line, name, value)
	return true
}

func (c *adiChecker) field(line int, name, value string) {
	switch {
	case strings.HasPrefix(name, "APP_"):
		return
	case c.inHeader && isUserDefN(name):
		userName, _, _ := strings.Cut(value, ",")
		c.userDefs[strings.ToUpper(userName)] = struct{}{}
		return
	case !c.inHeader:
		if _, ok := c.userDefs[name]; ok {
			return
		}
	}
	c.checkValue(line, name, value, c.inHeader, true)
}

func isUserDefN(name string) bool {
	n, ok := strings.CutPrefix(name, "USERDEF")
	if !ok || n == "" {
		return false
	}
	_, err := strconv.Atoi(n)
	return err == nil
}
