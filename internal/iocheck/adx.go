package iocheck

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
)

const (
	elADX     = "ADX"
	elHeader  = "HEADER"
	elRecords = "RECORDS"
	elRecord  = "RECORD"
	elApp     = "APP"
	elUserDef = "USERDEF"
)

type adxChecker struct {
	collector
	dec *xml.Decoder

	stack      []xml.StartElement
	seen       map[string]struct{}
	text       strings.Builder
	hasHeader  bool
	hasRecords bool
}

// CheckADX checks an ADX document. The catalog may be nil, then field
// values are not validated.
func CheckADX(data []byte, cat *adif.Catalog) []Diagnostic {
	c := adxChecker{
		collector: collector{cat: cat},
		dec:       xml.NewDecoder(bytes.NewReader(data)),
		seen:      make(map[string]struct{}),
	}
	c.run()
	return c.diags
}

func (c *adxChecker) line() int {
	l, _ := c.dec.InputPos()
	return l
}

func (c *adxChecker) parent() string {
	if len(c.stack) == 0 {
		return ""
	}
	return c.stack[len(c.stack)-1].Name.Local
}

func (c *adxChecker) run() {
	for {
		tok, err := c.dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var se *xml.SyntaxError
			if errors.As(err, &se) {
				c.add(se.Line, "%s", se.Msg)
			} else {
				c.add(c.line(), "%s", err)
			}
			return
		}

		switch t := tok.(type) {
		case xml.StartElement:
			c.start(t)
		case xml.EndElement:
			c.end()
		case xml.CharData:
			if len(c.stack) >= 3 {
				c.text.Write(t)
			}
		}
	}
	if !c.hasRecords {
		c.add(c.line(), "the document has no <%s> element", elRecords)
	}
}

func (c *adxChecker) start(t xml.StartElement) {
	name := t.Name.Local
	switch c.parent() {
	case "":
		if name != elADX {
			c.add(c.line(), "root element is <%s>, expected <%s>", name, elADX)
		}
	case elADX:
		switch name {
		case elHeader:
			if c.hasHeader || c.hasRecords {
				c.add(c.line(), "<%s> must appear once, before <%s>",
					elHeader, elRecords)
			}
			c.hasHeader = true
			c.seen = make(map[string]struct{})
		case elRecords:
			if c.hasRecords {
				c.add(c.line(), "<%s> must appear once", elRecords)
			}
			c.hasRecords = true
		default:
			c.add(c.line(), "unexpected element <%s> in <%s>", name, elADX)
		}
	case elRecords:
		if name != elRecord {
			c.add(c.line(), "unexpected element <%s> in <%s>", name, elRecords)
		}
		c.seen = make(map[string]struct{})
	case elHeader, elRecord:
		c.field(t)
	default:
		c.add(c.line(), "element <%s> cannot contain the element <%s>",
			c.parent(), name)
	}
	c.stack = append(c.stack, t)
	c.text.Reset()
}

// field checks the attributes of a field element and its uniqueness.
func (c *adxChecker) field(t xml.StartElement) {
	name := t.Name.Local
	attrs := make(map[string]string, len(t.Attr))
	for _, a := range t.Attr {
		attrs[a.Name.Local] = a.Value
	}
	require := func(keys ...string) {
		for _, k := range keys {
			if attrs[k] == "" {
				c.add(c.line(), "<%s> has no %s attribute", name, k)
			}
		}
	}

	key := name
	switch {
	case name == elApp:
		require("PROGRAMID", "FIELDNAME")
		key = "APP_" + attrs["PROGRAMID"] + "_" + attrs["FIELDNAME"]
	case name == elUserDef && c.parent() == elHeader:
		require("FIELDID", "TYPE")
		key = "USERDEF" + attrs["FIELDID"]
	case name == elUserDef:
		require("FIELDNAME")
		key = attrs["FIELDNAME"]
	}

	key = strings.ToUpper(key)
	if _, ok := c.seen[key]; ok {
		c.add(c.line(), "field %s appears twice in <%s>", key, c.parent())
	}
	c.seen[key] = struct{}{}
}

func (c *adxChecker) end() {
	el := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	parent := c.parent()
	if parent != elHeader && parent != elRecord {
		return
	}
	name := el.Name.Local
	if name == elApp || name == elUserDef {
		return
	}
	c.checkValue(c.line(), name, c.text.String(), parent == elHeader, false)
}
