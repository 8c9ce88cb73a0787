// Package plan describes which fields and records a test file contains.
//
// A plan is read from plan.yaml (or plan.toml) and interpreted by a
// Driver that calls the emitter. Values may contain plan functions such
// as ${CALL_FOR_DXCC(291)}, which the Driver expands before the emitter
// sees the value, and {NAME} macros, which the emitter resolves against
// the current QSO.
//
// Example:
//
//	header:
//	  - name: ADIF_VER
//	    value: ${ADIF_VER}
//	userdefs:
//	  - name: EPC
//	    type: E
//	    number: 1
//	    values: "{A,B,C}"
//	records:
//	  - comment: one record per band
//	    each_enumeration: Band
//	    fields:
//	      - name: BAND
//	        value: ${VALUE}
package plan

// Report levels.
const (
	ReportNone  = "none"
	ReportShort = "short"
	ReportFull  = "full"
)

// Plan is the content of a plan file.
type Plan struct {
	// Comment is written at the start of the file.
	Comment string `yaml:"comment,omitempty" toml:"comment,omitempty"`

	// HasHeaderFields is true when omitted. Without header fields an ADI
	// file has no <EOH>.
	HasHeaderFields *bool `yaml:"has_header_fields,omitempty" toml:"has_header_fields,omitempty"`

	Header   []Field   `yaml:"header,omitempty" toml:"header,omitempty"`
	UserDefs []UserDef `yaml:"userdefs,omitempty" toml:"userdefs,omitempty"`
	Records  []Record  `yaml:"records" toml:"records"`

	// Untested lists fields the plan deliberately leaves out. They are
	// shown by the report.
	Untested []string `yaml:"untested,omitempty" toml:"untested,omitempty"`

	// Report is one of "none", "short" or "full" (default).
	Report string `yaml:"report,omitempty" toml:"report,omitempty"`

	// Warnings holds non-fatal validation warnings (not serialized)
	Warnings []Warning `yaml:"-" toml:"-"`
}

// Warning is a non-fatal problem of a plan.
type Warning struct {
	Record     int    // 1-based index of the record template, 0 for the plan
	Field      string // plan key with the issue
	Message    string // description of the issue
	Suggestion string // how to fix it
}

// Field is one field of a header or record template.
type Field struct {
	Name  string `yaml:"name" toml:"name"`
	Value string `yaml:"value" toml:"value"`

	// Type is an optional Data Type Indicator.
	Type string `yaml:"type,omitempty" toml:"type,omitempty"`

	// App makes this an APP_{App}_{Name} field.
	App string `yaml:"app,omitempty" toml:"app,omitempty"`

	// User marks a field declared in UserDefs.
	User bool `yaml:"user,omitempty" toml:"user,omitempty"`
}

// UserDef declares a USERDEFn field in the header.
type UserDef struct {
	Name   string `yaml:"name" toml:"name"`
	Type   string `yaml:"type" toml:"type"`
	Number int    `yaml:"number" toml:"number"`
	// Values is "{A,B,C}" for type E or "{min:max}" for type N.
	Values string `yaml:"values,omitempty" toml:"values,omitempty"`
}

// Record is a record template. Without iteration it produces one
// record. Repeat, Each and EachEnumeration are mutually exclusive and
// set the iteration value available as ${VALUE}.
type Record struct {
	Comment string  `yaml:"comment,omitempty" toml:"comment,omitempty"`
	Fields  []Field `yaml:"fields,omitempty" toml:"fields,omitempty"`

	// Repeat produces N records with values 1..N.
	Repeat int `yaml:"repeat,omitempty" toml:"repeat,omitempty"`
	// Each produces a record for every listed value.
	Each []string `yaml:"each,omitempty" toml:"each,omitempty"`
	// EachEnumeration produces a record for every value of a catalog
	// enumeration.
	EachEnumeration string `yaml:"each_enumeration,omitempty" toml:"each_enumeration,omitempty"`

	// SaveTimes remembers the QSO times before the first record.
	SaveTimes bool `yaml:"save_times,omitempty" toml:"save_times,omitempty"`
	// RestoreTimes returns to the saved QSO times after the last record.
	RestoreTimes bool `yaml:"restore_times,omitempty" toml:"restore_times,omitempty"`
}

// HeaderFields tells if the output has a header.
func (p *Plan) HeaderFields() bool {
	return p.HasHeaderFields == nil || *p.HasHeaderFields
}

// ReportLevel returns the normalized report level.
func (p *Plan) ReportLevel() string {
	if p.Report == "" {
		return ReportFull
	}
	return p.Report
}

// Loader reads and validates a plan.
type Loader interface {
	Load() (*Plan, error)
}
