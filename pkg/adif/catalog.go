// Package adif holds the model of the ADIF specification used to generate
// and validate test QSOs: data types with their validators, enumerations,
// bands, modes and field definitions.
//
// The package does no I/O. A Catalog is built from a Source, which the
// caller fills from the specification export (all.xml).
package adif

import (
	"strconv"
	"strings"
)

// Enumerations, columns and names of the specification export the
// catalog depends on.
const (
	EnumBand = "BAND"
	EnumMode = "MODE"

	ColBand        = "Band"
	ColLowerFreq   = "Lower Freq (MHz)"
	ColUpperFreq   = "Upper Freq (MHz)"
	ColMode        = "Mode"
	ColSubmodes    = "Submodes"
	ColImportOnly  = "Import-only"
	ColDXCCCode    = "DXCC Entity Code"
	ColDeleted     = "Deleted"
	userDefnField  = "USERDEFN"
	minVersionCode = 305
)

// DataTypeSpec is a row of the data types table.
type DataTypeSpec struct {
	Name      string
	Indicator string
	Range     Range
}

// FieldSpec is a row of the fields table.
type FieldSpec struct {
	Name   string
	Header bool
	// DataType may list several types separated by commas, only the first
	// one is used.
	DataType string
	// Enumeration is an enumeration name, optionally followed by a
	// bracketed function reference.
	Enumeration string
	Range       Range
}

// EnumerationSpec is one enumeration table.
type EnumerationSpec struct {
	Name    string
	Records []EnumerationRecord
}

// Source is the raw content of the specification export.
type Source struct {
	Version      string
	Status       string
	DataTypes    []DataTypeSpec
	Fields       []FieldSpec
	Enumerations []EnumerationSpec
}

// Catalog is the immutable model of one version of the specification.
type Catalog struct {
	Version string
	Status  string

	Enumerations Enumerations
	Bands        *BandTable
	Modes        []Mode

	// Warnings collects problems that did not stop loading, such as
	// duplicate enumeration keys that were skipped.
	Warnings []error

	dataTypes     map[string]*DataType
	dataTypeOrder []*DataType
	fields        []FieldDef
	intl          map[string]struct{}
}

// NewCatalog builds a catalog from the raw specification export.
func NewCatalog(src Source) (*Catalog, error) {
	res := Catalog{
		Version:      strings.TrimSpace(src.Version),
		Status:       strings.TrimSpace(src.Status),
		Enumerations: make(Enumerations),
		dataTypes:    make(map[string]*DataType),
		intl:         make(map[string]struct{}),
	}

	if _, err := VersionCode(res.Version); err != nil {
		return nil, err
	}
	switch res.Status {
	case "Draft", "Proposed", "Released":
	default:
		return nil, SpecificationError(
			"ADIF Status '%s' is not one of 'Draft', 'Proposed', or 'Released'",
			res.Status,
		)
	}

	if err := res.loadDataTypes(src.DataTypes); err != nil {
		return nil, err
	}
	if err := res.loadFields(src.Fields); err != nil {
		return nil, err
	}
	if err := res.loadEnumerations(src.Enumerations); err != nil {
		return nil, err
	}
	return &res, nil
}

// VersionCode converts a version in the i.j.k form with single digits into
// its three digit code, e.g. "3.1.4" into 314. Versions before 3.0.5 are
// not supported.
func VersionCode(version string) (int, error) {
	v := version
	if len(v) != 5 || v[1] != '.' || v[3] != '.' ||
		!allDigits(v[0:1]) || !allDigits(v[2:3]) || !allDigits(v[4:5]) {
		return 0, SpecificationError(
			"ADIF Version '%s' is not in the required format of i.j.k", version,
		)
	}
	code := int(v[0]-'0')*100 + int(v[2]-'0')*10 + int(v[4]-'0')
	if code < minVersionCode {
		return 0, SpecificationError(
			"ADIF Version '%s' (%d) is not supported", version, code,
		)
	}
	return code, nil
}

// VersionCode returns the three digit code of the catalog version.
func (c *Catalog) VersionCode() int {
	code, _ := VersionCode(c.Version)
	return code
}

func (c *Catalog) loadDataTypes(specs []DataTypeSpec) error {
	for _, s := range specs {
		var ind byte
		if s.Indicator != "" {
			ind = s.Indicator[0]
		}
		dt, err := NewDataType(s.Name, ind, s.Range)
		if err != nil {
			return err
		}
		if _, ok := c.dataTypes[dt.Name]; ok {
			return SpecificationError("data type '%s' is defined twice", dt.Name)
		}
		c.dataTypes[dt.Name] = dt
		c.dataTypeOrder = append(c.dataTypeOrder, dt)
	}
	return nil
}

func (c *Catalog) loadFields(specs []FieldSpec) error {
	seen := make(map[string]struct{})
	for _, s := range specs {
		name := strings.ToUpper(strings.TrimSpace(s.Name))
		if name == userDefnField {
			continue
		}
		if _, ok := seen[name]; ok {
			return SpecificationError("field '%s' is defined twice", name)
		}
		seen[name] = struct{}{}

		dtName, _, _ := strings.Cut(s.DataType, ",")
		dtName = strings.ToUpper(strings.TrimSpace(dtName))
		if dtName == "" {
			return SpecificationError("field '%s' has no data type", name)
		}
		dt, ok := c.dataTypes[dtName]
		if !ok {
			return SpecificationError(
				"field '%s' has an unrecognized data type '%s'", name, s.DataType,
			)
		}

		enum := strings.ToUpper(strings.TrimSpace(s.Enumeration))
		if i := strings.IndexByte(enum, '['); i > 0 {
			enum = enum[:i]
		}

		if base, ok := strings.CutSuffix(name, IntlSuffix); ok {
			c.intl[base] = struct{}{}
		}

		c.fields = append(c.fields, FieldDef{
			Name:        name,
			Header:      s.Header,
			DataType:    dt,
			Variant:     SpecDefined,
			Enumeration: enum,
			Range:       s.Range,
		})
	}
	return nil
}

func (c *Catalog) loadEnumerations(specs []EnumerationSpec) error {
	var bands *EnumerationSpec
	var modes *EnumerationSpec

	for i := range specs {
		s := &specs[i]
		name := strings.ToUpper(strings.TrimSpace(s.Name))
		if _, ok := c.Enumerations[name]; ok {
			return SpecificationError("enumeration '%s' is defined twice", name)
		}
		switch name {
		case EnumBand:
			bands = s
		case EnumMode:
			modes = s
		}

		e := NewEnumeration(name)
		for _, rec := range s.Records {
			key := rec.Value
			if name == EnumPrimarySubdiv {
				_, deleted := rec.Columns[ColDeleted]
				key = SubdivisionKey(rec.Value, rec.Columns[ColDXCCCode], deleted)
			}
			if err := e.Add(key, rec.Value); err != nil {
				c.Warnings = append(c.Warnings, err)
			}
		}
		c.Enumerations[name] = e
	}

	if bands == nil {
		return SpecificationError("the Band enumeration does not exist")
	}
	if modes == nil {
		return SpecificationError("the Mode enumeration does not exist")
	}

	var err error
	if c.Bands, err = newBands(bands.Records); err != nil {
		return err
	}
	c.Modes = newModes(modes.Records)
	if len(c.Modes) == 0 {
		return SpecificationError("the Mode enumeration has no usable records")
	}
	return nil
}

func newBands(recs []EnumerationRecord) (*BandTable, error) {
	bands := make([]Band, 0, len(recs))
	for _, rec := range recs {
		name := rec.Columns[ColBand]
		if name == "" {
			name = rec.Value
		}
		lower, err := strconv.ParseFloat(strings.TrimSpace(rec.Columns[ColLowerFreq]), 64)
		if err != nil {
			return nil, SpecificationError(
				"band '%s' has an invalid lower frequency '%s'",
				name, rec.Columns[ColLowerFreq],
			)
		}
		upper, err := strconv.ParseFloat(strings.TrimSpace(rec.Columns[ColUpperFreq]), 64)
		if err != nil {
			return nil, SpecificationError(
				"band '%s' has an invalid upper frequency '%s'",
				name, rec.Columns[ColUpperFreq],
			)
		}
		bands = append(bands, Band{Name: name, Lower: lower, Upper: upper})
	}
	return NewBandTable(bands)
}

func newModes(recs []EnumerationRecord) []Mode {
	var res []Mode
	for _, rec := range recs {
		if _, ok := rec.Columns[ColImportOnly]; ok {
			continue
		}
		name := rec.Columns[ColMode]
		if name == "" {
			name = rec.Value
		}
		var subs []string
		for s := range strings.SplitSeq(rec.Columns[ColSubmodes], ",") {
			if s = strings.TrimSpace(s); s != "" {
				subs = append(subs, s)
			}
		}
		res = append(res, Mode{Name: name, Submodes: subs})
	}
	return res
}

// DataType finds a data type by name, ignoring case.
func (c *Catalog) DataType(name string) (*DataType, bool) {
	dt, ok := c.dataTypes[strings.ToUpper(name)]
	return dt, ok
}

// DataTypeFor resolves a Data Type Indicator. S, I and N are shared by
// several data types and always mean STRING, INTLSTRING and NUMBER.
// Other letters resolve to the first data type that carries them.
func (c *Catalog) DataTypeFor(indicator byte) (*DataType, error) {
	var name string
	switch indicator {
	case 'S':
		name = "STRING"
	case 'I':
		name = "INTLSTRING"
	case 'N':
		name = "NUMBER"
	}
	if name != "" {
		if dt, ok := c.dataTypes[name]; ok {
			return dt, nil
		}
	} else if indicator != 0 {
		for _, dt := range c.dataTypeOrder {
			if dt.Indicator == indicator {
				return dt, nil
			}
		}
	}
	return nil, SequencingError("", string(indicator),
		"Data Type Indicator '%c' does not exist", indicator)
}

// Field returns a copy of the definition of a specification field.
func (c *Catalog) Field(name string) (FieldDef, bool) {
	name = strings.ToUpper(name)
	for _, f := range c.fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// FieldNames returns the names of all specification fields in the order
// of the export.
func (c *Catalog) FieldNames() []string {
	res := make([]string, len(c.fields))
	for i := range c.fields {
		res[i] = c.fields[i].Name
	}
	return res
}

// NewFieldRegistry creates field definitions with zeroed counters for one
// generation run.
func (c *Catalog) NewFieldRegistry() *FieldRegistry {
	res := FieldRegistry{
		cat:    c,
		fields: make(map[string]*FieldDef, len(c.fields)),
		intl:   c.intl,
	}
	for _, f := range c.fields {
		res.add(&f)
	}
	return &res
}

// Check validates a value of a specification field without emitting it.
func (c *Catalog) Check(field, value string, tagStyle bool) error {
	f, ok := c.Field(field)
	if !ok {
		return SequencingError(field, value, "Unknown ADIF field")
	}
	return f.Validate(value, tagStyle, c.Enumerations)
}
