package plan

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks the plan for errors and normalizes names.
// Problems that do not stop generation are added to Warnings.
func (p *Plan) Validate() error {
	if len(p.Records) == 0 {
		return fmt.Errorf("no records specified in plan")
	}

	p.Report = strings.ToLower(strings.TrimSpace(p.Report))
	levels := []string{"", ReportNone, ReportShort, ReportFull}
	if !slices.Contains(levels, p.Report) {
		return fmt.Errorf(
			"invalid report '%s': must be 'none', 'short' or 'full'", p.Report,
		)
	}

	for i := range p.Header {
		if err := p.Header[i].Validate(); err != nil {
			return fmt.Errorf("header field %d: %w", i+1, err)
		}
	}
	if !p.HeaderFields() && (len(p.Header) > 0 || len(p.UserDefs) > 0) {
		return fmt.Errorf(
			"header fields given but has_header_fields is false",
		)
	}
	// ADI text before the first tag is a header.
	if !p.HeaderFields() && (p.Comment != "" || p.Records[0].Comment != "") {
		return fmt.Errorf(
			"a file without header fields cannot start with a comment",
		)
	}

	numbers := make(map[int]struct{})
	for i := range p.UserDefs {
		u := &p.UserDefs[i]
		if err := u.Validate(); err != nil {
			return fmt.Errorf("userdef %d: %w", i+1, err)
		}
		if _, ok := numbers[u.Number]; ok {
			return fmt.Errorf("userdef %d: number %d is used twice", i+1, u.Number)
		}
		numbers[u.Number] = struct{}{}
	}

	for i := range p.Records {
		warnings, err := p.Records[i].Validate(i + 1)
		if err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		p.Warnings = append(p.Warnings, warnings...)
	}

	for i, name := range p.Untested {
		p.Untested[i] = strings.ToUpper(strings.TrimSpace(name))
	}
	return nil
}

// Validate checks a single field template.
func (f *Field) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return fmt.Errorf("name is required")
	}
	if f.Value == "" {
		return fmt.Errorf("value of %s is required", f.Name)
	}
	if len(f.Type) > 1 {
		return fmt.Errorf(
			"type of %s must be a single Data Type Indicator letter", f.Name,
		)
	}
	if f.App != "" && f.User {
		return fmt.Errorf("%s cannot be both an APP_ and a USERDEF field", f.Name)
	}
	if f.User && f.Type != "" {
		return fmt.Errorf(
			"type of USERDEF field %s is given by its declaration", f.Name,
		)
	}
	return nil
}

// Validate checks a USERDEFn declaration.
func (u *UserDef) Validate() error {
	u.Name = strings.TrimSpace(u.Name)
	if u.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(u.Type) != 1 {
		return fmt.Errorf(
			"type of %s must be a single Data Type Indicator letter", u.Name,
		)
	}
	if u.Number < 1 {
		return fmt.Errorf("number of %s must be 1 or more", u.Name)
	}
	return nil
}

// Validate checks a record template. The index is used in warnings.
func (r *Record) Validate(index int) ([]Warning, error) {
	var warnings []Warning

	if r.Repeat < 0 {
		return nil, fmt.Errorf("repeat cannot be negative")
	}
	var iterations int
	if r.Repeat > 0 {
		iterations++
	}
	if len(r.Each) > 0 {
		iterations++
	}
	if r.EachEnumeration != "" {
		iterations++
	}
	if iterations > 1 {
		return nil, fmt.Errorf(
			"repeat, each and each_enumeration cannot be combined",
		)
	}

	for _, v := range r.Each {
		if strings.Contains(v, "${") {
			return nil, fmt.Errorf("each value '%s' cannot hold a plan function", v)
		}
	}

	names := make(map[string]struct{})
	for i := range r.Fields {
		f := &r.Fields[i]
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("field %d: %w", i+1, err)
		}
		key := strings.ToUpper(f.App + "_" + f.Name)
		if _, ok := names[key]; ok {
			return nil, fmt.Errorf("field %s is given twice", f.Name)
		}
		names[key] = struct{}{}
	}

	if iterations == 0 && usesValue(r) {
		warnings = append(warnings, Warning{
			Record:     index,
			Field:      "fields",
			Message:    "${VALUE} is used but the record has no iteration",
			Suggestion: "Add 'repeat', 'each' or 'each_enumeration', ${VALUE} is empty otherwise",
		})
	}
	if len(r.Fields) == 0 && r.Comment == "" {
		warnings = append(warnings, Warning{
			Record:     index,
			Field:      "fields",
			Message:    "record has no fields",
			Suggestion: "Only the default QSO fields will be written",
		})
	}
	return warnings, nil
}

func usesValue(r *Record) bool {
	for _, f := range r.Fields {
		if strings.Contains(f.Value, "${VALUE}") {
			return true
		}
	}
	return false
}
