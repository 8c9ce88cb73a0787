package adif

import (
	"strings"
)

// Enumeration is a set of allowed values keyed by their uppercased form.
// Records keep the order of the specification export.
type Enumeration struct {
	Name string

	values map[string]string
	keys   []string
}

// EnumerationRecord is one row of an enumeration table of the
// specification export.
type EnumerationRecord struct {
	// Value is the enumeration value (the second column of the row).
	Value string
	// Columns holds all named columns of the row, e.g. "DXCC Entity Code"
	// or "Lower Freq (MHz)".
	Columns map[string]string
}

// NewEnumeration creates an empty enumeration.
func NewEnumeration(name string) *Enumeration {
	return &Enumeration{
		Name:   strings.ToUpper(name),
		values: make(map[string]string),
	}
}

// Add inserts a value under key. A duplicate key is reported as a
// specification error and the earlier entry is kept.
func (e *Enumeration) Add(key, value string) error {
	key = strings.ToUpper(key)
	if _, ok := e.values[key]; ok {
		return SpecificationError(
			"enumeration %s already contains the key %s", e.Name, key,
		)
	}
	e.values[key] = value
	e.keys = append(e.keys, key)
	return nil
}

// Has checks if key exists. The key must be uppercased already.
func (e *Enumeration) Has(key string) bool {
	_, ok := e.values[key]
	return ok
}

// Len returns the number of entries.
func (e *Enumeration) Len() int {
	return len(e.keys)
}

// Values returns the canonical values in the order they were added.
func (e *Enumeration) Values() []string {
	res := make([]string, len(e.keys))
	for i, k := range e.keys {
		res[i] = e.values[k]
	}
	return res
}

// Validate checks that value belongs to the enumeration.
func (e *Enumeration) Validate(field, dataType, value string) error {
	if e.Has(strings.ToUpper(value)) {
		return nil
	}
	return ValidationError(field, dataType, value,
		"Enumeration '%s' does not include the value '%s'", e.Name, value,
	)
}

// Enumerations indexes enumerations by uppercased name.
type Enumerations map[string]*Enumeration

// Get finds an enumeration by name. A missing enumeration means the
// specification export lacks data the engine depends on.
func (es Enumerations) Get(name string) (*Enumeration, error) {
	if e, ok := es[strings.ToUpper(name)]; ok {
		return e, nil
	}
	return nil, SpecificationError("enumeration '%s' does not exist", name)
}

// SubdivisionKey builds the compound key used by the primary
// administrative subdivision enumeration, where the same code exists in
// several DXCC entities and some of them are deleted. The key is
// uppercased, as Has expects.
func SubdivisionKey(code, dxcc string, deleted bool) string {
	key := code + "\t" + dxcc
	if deleted {
		key += "\t" + ColDeleted
	}
	return strings.ToUpper(key)
}
