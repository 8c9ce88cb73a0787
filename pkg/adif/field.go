package adif

import (
	"slices"
	"strings"
)

// Variant tells where the definition of a field comes from.
type Variant int

const (
	// SpecDefined fields are listed in the specification export.
	SpecDefined Variant = iota
	// App fields are APP_{PROGRAMID}_{NAME} fields created on first use.
	App
	// User fields are declared by a USERDEFn header field.
	User
)

func (v Variant) String() string {
	switch v {
	case SpecDefined:
		return "ADIF"
	case App:
		return "APP"
	case User:
		return "USER"
	default:
		return "UNKNOWN"
	}
}

// IntlSuffix marks fields that carry international characters.
const IntlSuffix = "_INTL"

// FieldDef is the definition of a field together with its occurrence
// counter for the current generation run.
type FieldDef struct {
	Name        string
	Header      bool
	DataType    *DataType
	Variant     Variant
	Enumeration string
	Range       Range

	// UserDefNumber is the n of USERDEFn for User fields.
	UserDefNumber int
	// UserValues holds the allowed values of a User field declared with
	// an enumeration.
	UserValues []string
	// UserRange holds the limits of a User field declared with a range.
	UserRange Range

	Occurrences int
}

// Validate runs the data type rules and the field specific rules for
// value.
func (f *FieldDef) Validate(value string, tagStyle bool, enums Enumerations) error {
	err := f.DataType.Validate(f.Name, value, f.Enumeration, tagStyle, enums)
	if err != nil {
		return err
	}

	if f.Range.IsSet() {
		v, ok := ParseNumber(value, false)
		switch {
		case !ok:
			return ValidationError(f.Name, f.DataType.Name, value,
				"Value '%s' is not allowed in a %s field that has a defined "+
					"minimum and / or maximum value",
				value, f.Name,
			)
		case f.Range.HasMin && v < f.Range.Min:
			return ValidationError(f.Name, f.DataType.Name, value,
				"Value %s is not allowed because the minimum value in a %s field is %s",
				value, f.Name, FormatNumber(f.Range.Min),
			)
		case f.Range.HasMax && v > f.Range.Max:
			return ValidationError(f.Name, f.DataType.Name, value,
				"Value %s is not allowed because the maximum value in a %s field is %s",
				value, f.Name, FormatNumber(f.Range.Max),
			)
		}
	}

	switch f.Name {
	case "LAT", "MY_LAT":
		if c := firstUpper(value); c != 'N' && c != 'S' {
			return ValidationError(f.Name, f.DataType.Name, value,
				"a %s field must have a first character of 'S' or 'N'", f.Name)
		}
	case "LON", "MY_LON":
		if c := firstUpper(value); c != 'E' && c != 'W' {
			return ValidationError(f.Name, f.DataType.Name, value,
				"a %s field must have a first character of 'E' or 'W'", f.Name)
		}
	}
	return nil
}

// CheckUserValue checks value against the enumeration or the range given
// in the USERDEFn declaration.
func (f *FieldDef) CheckUserValue(value string) error {
	switch {
	case f.UserValues != nil:
		if slices.Contains(f.UserValues, strings.ToUpper(value)) {
			return nil
		}
	case f.UserRange.IsSet():
		if v, ok := ParseNumber(value, false); ok && f.UserRange.Contains(v) {
			return nil
		}
	default:
		return nil
	}
	return ValidationError(f.Name, f.DataType.Name, value,
		"USERDEFn field %s does not allow the value %s in its enumeration %s",
		f.Name, value, f.EnumerationOrRange(),
	)
}

// EnumerationOrRange renders the declared enumeration or range of a User
// field in the {A,B,C} or {min:max} form.
func (f *FieldDef) EnumerationOrRange() string {
	switch {
	case f.UserValues != nil:
		return "{" + strings.Join(f.UserValues, ",") + "}"
	case f.UserRange.IsSet():
		return "{" + FormatNumber(f.UserRange.Min) + ":" +
			FormatNumber(f.UserRange.Max) + "}"
	default:
		return ""
	}
}

func firstUpper(s string) byte {
	if s == "" {
		return 0
	}
	c := s[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return c
}

// FieldRegistry owns the field definitions of one generation run. It is
// created from a Catalog and extended lazily with App and User fields.
type FieldRegistry struct {
	cat    *Catalog
	fields map[string]*FieldDef
	order  []string
	// intl holds names of fields that have an _INTL counterpart.
	intl map[string]struct{}
}

// Lookup finds a field by name, ignoring case.
func (r *FieldRegistry) Lookup(name string) (*FieldDef, bool) {
	f, ok := r.fields[strings.ToUpper(name)]
	return f, ok
}

// HasIntlCounterpart reports whether name has an _INTL version.
func (r *FieldRegistry) HasIntlCounterpart(name string) bool {
	_, ok := r.intl[strings.ToUpper(name)]
	return ok
}

// Fields returns all definitions in the order they were added.
func (r *FieldRegistry) Fields() []*FieldDef {
	res := make([]*FieldDef, len(r.order))
	for i, name := range r.order {
		res[i] = r.fields[name]
	}
	return res
}

// HasUserDefNumber reports whether n is taken by a declared User field.
func (r *FieldRegistry) HasUserDefNumber(n int) bool {
	for _, f := range r.fields {
		if f.Variant == User && f.UserDefNumber == n {
			return true
		}
	}
	return false
}

func (r *FieldRegistry) add(f *FieldDef) {
	r.fields[f.Name] = f
	r.order = append(r.order, f.Name)
}

// DeclareUser registers a User field from a USERDEFn declaration.
// The enumerationOrRange is either empty, {A,B,C} or {min:max}.
func (r *FieldRegistry) DeclareUser(
	name string,
	indicator byte,
	number int,
	enumerationOrRange string,
) (*FieldDef, error) {
	name = strings.ToUpper(name)
	if f, ok := r.fields[name]; ok {
		switch f.Variant {
		case SpecDefined:
			return nil, SequencingError(name, "",
				"USERDEF field cannot have the same name as an ADIF-defined field")
		case User:
			return nil, SequencingError(name, "",
				"USERDEF field has already been declared in a USERDEFn field")
		default:
			return nil, SequencingError(name, "",
				"USERDEF field name is already used by an APP field")
		}
	}
	if number < 1 {
		return nil, SequencingError(name, "",
			"USERDEFn field number %d must be 1 or more", number)
	}
	if r.HasUserDefNumber(number) {
		return nil, SequencingError(name, "",
			"USERDEFn field number %d has already been used in a USERDEFn field",
			number)
	}

	dt, err := r.cat.DataTypeFor(indicator)
	if err != nil {
		return nil, err
	}

	res := FieldDef{
		Name:          name,
		DataType:      dt,
		Variant:       User,
		UserDefNumber: number,
	}

	spec := strings.ToUpper(strings.TrimSpace(enumerationOrRange))
	switch {
	case spec == "":
		if dt.Kind == KindEnumeration {
			return nil, SequencingError(name, "",
				"USERDEFn Data Type Indicator cannot be 'E' without an enumeration")
		}
	case len(spec) < 2 || spec[0] != '{' || spec[len(spec)-1] != '}':
		return nil, SequencingError(name, enumerationOrRange,
			"USERDEFn enumeration or range must be enclosed in braces")
	case strings.Contains(spec, ":"):
		if dt.Kind != KindNumber {
			return nil, SequencingError(name, enumerationOrRange,
				"USERDEFn field has a range without Data Type Indicator N")
		}
		bounds := strings.Split(spec[1:len(spec)-1], ":")
		if len(bounds) != 2 {
			return nil, SequencingError(name, enumerationOrRange,
				"USERDEFn range must have the form {min:max}")
		}
		rng, err := ParseRange(bounds[0], bounds[1])
		if err != nil || !rng.HasMin || !rng.HasMax || rng.Min > rng.Max {
			return nil, SequencingError(name, enumerationOrRange,
				"USERDEFn range must have the form {min:max}")
		}
		res.UserRange = rng
	default:
		if dt.Kind != KindEnumeration {
			return nil, SequencingError(name, enumerationOrRange,
				"USERDEFn field has an enumeration without Data Type Indicator E")
		}
		res.UserValues = []string{}
		for v := range strings.SplitSeq(spec[1:len(spec)-1], ",") {
			if v = strings.TrimSpace(v); v != "" {
				res.UserValues = append(res.UserValues, v)
			}
		}
		if len(res.UserValues) == 0 {
			return nil, SequencingError(name, enumerationOrRange,
				"USERDEFn enumeration has no values")
		}
	}

	r.add(&res)
	return &res, nil
}

// DeclareApp registers an APP_ field on its first use.
func (r *FieldRegistry) DeclareApp(name string, indicator byte) (*FieldDef, error) {
	name = strings.ToUpper(name)
	if _, ok := r.fields[name]; ok {
		return nil, InternalError("field %s is already registered", name)
	}
	dt, err := r.cat.DataTypeFor(indicator)
	if err != nil {
		return nil, err
	}
	res := FieldDef{
		Name:     name,
		DataType: dt,
		Variant:  App,
	}
	r.add(&res)
	return &res, nil
}
