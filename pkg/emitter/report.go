package emitter

import (
	"fmt"
	"strings"

	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
)

// Comment writes free text between fields. ADI comments must not contain
// '<'. ADX comments must not contain "--" and are wrapped in <!-- -->.
func (e *Emitter) Comment(text string) error {
	if err := e.ensureFile(); err != nil {
		return err
	}
	if e.tagStyle() {
		if strings.Contains(text, "<") {
			return adif.SequencingError("", text,
				"Comments in ADI files cannot include a '<'")
		}
	} else {
		if strings.Contains(text, "--") {
			return adif.SequencingError("", text,
				"Comments in ADX files cannot include '--'")
		}
		text = "<!--" + e.encode(text) + "-->"
	}
	e.pending.WriteString(text)
	return nil
}

// CommentLine is Comment followed by CRLF.
func (e *Emitter) CommentLine(text string) error {
	if err := e.Comment(text); err != nil {
		return err
	}
	e.pending.WriteString(crlf)
	return nil
}

// Report writes a comment with the number of fields and records emitted
// and the untested fields. The full report adds the occurrences of every
// field and the statistics of repeated calls.
func (e *Emitter) Report(full bool) error {
	return e.CommentLine(e.report(full))
}

func (e *Emitter) report(full bool) string {
	var sb strings.Builder
	sb.WriteString("Report" + crlf + crlf)
	if len(e.untested) > 0 {
		fmt.Fprintf(&sb, "Untested fields: %6d"+crlf, len(e.untested))
	}
	fmt.Fprintf(&sb, "Fields emitted: %7d"+crlf+"Records emitted: %6d"+crlf,
		e.totalFields, e.totalRecords)

	if len(e.untested) > 0 {
		sb.WriteString(crlf + "Untested fields" + crlf + crlf)
		for _, name := range e.untested {
			sb.WriteString(name + crlf)
		}
	}
	if !full {
		return sb.String()
	}

	sb.WriteString(crlf + "Field details" + crlf + crlf)
	for _, f := range e.reg.Fields() {
		// _INTL fields can never appear in ADI.
		if e.tagStyle() && f.Variant == adif.SpecDefined &&
			strings.HasSuffix(f.Name, adif.IntlSuffix) {
			continue
		}
		fmt.Fprintf(&sb, "Occurrences: %5d, Name: %-34s, Header: %-5t, Variant: %s",
			f.Occurrences, f.Name, f.Header, f.Variant)
		if f.Variant == adif.User {
			fmt.Fprintf(&sb, ", USERDEFn number: %3d", f.UserDefNumber)
		}
		sb.WriteString(crlf)
	}

	st := e.calls.Stats()
	fmt.Fprintf(&sb, crlf+"Calls created:        %5d"+crlf, st.Created)
	fmt.Fprintf(&sb, "Repeating calls:      %5d"+crlf, st.Repeating)
	fmt.Fprintf(&sb, "Total repeated calls: %5d"+crlf+crlf, st.RepeatedTotal)
	for _, c := range st.Repeated {
		fmt.Fprintf(&sb, "Call: %-7s, Count: %4d"+crlf, c.Call, c.Count)
	}
	return sb.String()
}

// Stats summarizes a run.
type Stats struct {
	Fields   int
	Records  int
	Untested int
	Calls    int
}

// Stats returns counts of the output produced so far.
func (e *Emitter) Stats() Stats {
	return Stats{
		Fields:   e.totalFields,
		Records:  e.totalRecords,
		Untested: len(e.untested),
		Calls:    e.calls.Stats().Created,
	}
}
