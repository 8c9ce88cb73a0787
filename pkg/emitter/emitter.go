// Package emitter renders validated ADIF fields and records in tag style
// (ADI) or element style (ADX).
//
// An Emitter goes through the states BeforeFile, InHeader, InRecords and
// AfterFile. Output of a header or a record is staged and reaches the
// committed output only when that header or record ends, so a failed
// call never leaves a partial record behind. Every error aborts the file:
// the caller is expected to discard the Emitter.
package emitter

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
	"github.com/g3zod/CreateADIFTestFiles/pkg/callsign"
	"github.com/g3zod/CreateADIFTestFiles/pkg/qso"
)

// Style is the serialization of the output.
type Style int

const (
	// ADI is the tag style: <NAME[:type]:len>value.
	ADI Style = iota
	// ADX is the XML element style.
	ADX
)

func (s Style) String() string {
	switch s {
	case ADI:
		return "adi"
	case ADX:
		return "adx"
	default:
		return "unknown"
	}
}

// NewStyle converts "adi" or "adx" (any case) to a Style.
func NewStyle(s string) (Style, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "adi":
		return ADI, true
	case "adx":
		return ADX, true
	default:
		return ADI, false
	}
}

// State is the position of the emitter in the output file.
type State int

const (
	BeforeFile State = iota
	InHeader
	InRecords
	AfterFile
)

func (s State) String() string {
	switch s {
	case BeforeFile:
		return "before file"
	case InHeader:
		return "in header"
	case InRecords:
		return "in records"
	case AfterFile:
		return "after file"
	default:
		return "unknown"
	}
}

const crlf = "\r\n"

// DefaultSeed makes runs of the same day produce identical output.
const DefaultSeed uint64 = 1

// Config is given to New and does not change during a run.
type Config struct {
	Style Style
	// HasHeaderFields allows header fields. When false an ADI file has no
	// <EOH> and starts with the first record.
	HasHeaderFields bool
	FieldSeparator  string
	RecordSeparator string
	// Seed of the random source shared by all generators of the run.
	Seed uint64
	// Start of the first contact. The zero value means qso.Baseline of
	// the current time.
	Start    time.Time
	Duration time.Duration
	Interval time.Duration
}

// NewConfig returns the usual configuration for a style.
func NewConfig(style Style) Config {
	return Config{
		Style:           style,
		HasHeaderFields: true,
		FieldSeparator:  crlf,
		RecordSeparator: crlf + crlf,
		Seed:            DefaultSeed,
		Duration:        qso.DefaultDuration,
		Interval:        qso.DefaultInterval,
	}
}

// Emitter renders one output file. It is not safe for concurrent use.
type Emitter struct {
	cfg   Config
	cat   *adif.Catalog
	reg   *adif.FieldRegistry
	calls *callsign.Generator
	qso   *qso.Context

	state State
	out   strings.Builder
	// pending is the output of the current header or record.
	pending strings.Builder
	// buffer maps names of fields emitted in the current header or
	// record to their values.
	buffer map[string]string
	// recordOpen is set once <RECORD> was written for the current record.
	recordOpen bool

	untested     []string
	totalFields  int
	totalRecords int
}

// New creates an Emitter with its own field registry, random source,
// callsign generator and QSO context. Neither cat nor ents are modified.
func New(cat *adif.Catalog, ents *callsign.Entities, cfg Config) *Emitter {
	if cfg.FieldSeparator == "" {
		cfg.FieldSeparator = crlf
	}
	if cfg.RecordSeparator == "" {
		cfg.RecordSeparator = crlf + crlf
	}
	rnd := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	calls := callsign.New(ents, rnd)

	opts := []qso.Option{
		qso.OptDuration(cfg.Duration),
		qso.OptInterval(cfg.Interval),
	}
	if !cfg.Start.IsZero() {
		opts = append(opts, qso.OptStart(cfg.Start))
	}

	res := Emitter{
		cfg:    cfg,
		cat:    cat,
		reg:    cat.NewFieldRegistry(),
		calls:  calls,
		qso:    qso.New(cat, calls, rnd, opts...),
		buffer: make(map[string]string),
	}
	return &res
}

// Style returns the output style.
func (e *Emitter) Style() Style {
	return e.cfg.Style
}

// State returns the current state.
func (e *Emitter) State() State {
	return e.state
}

// Catalog returns the specification the emitter validates against.
func (e *Emitter) Catalog() *adif.Catalog {
	return e.cat
}

// QSO gives access to the current contact.
func (e *Emitter) QSO() *qso.Context {
	return e.qso
}

// Calls returns the callsign generator of the run.
func (e *Emitter) Calls() *callsign.Generator {
	return e.calls
}

// Fields returns the field registry of the run.
func (e *Emitter) Fields() *adif.FieldRegistry {
	return e.reg
}

// Records returns the number of completed records.
func (e *Emitter) Records() int {
	return e.totalRecords
}

// Emitted reports whether the current header or record already has the
// field.
func (e *Emitter) Emitted(name string) bool {
	_, ok := e.buffer[strings.ToUpper(name)]
	return ok
}

// String returns the committed output.
func (e *Emitter) String() string {
	return e.out.String()
}

// Bytes returns the committed output.
func (e *Emitter) Bytes() []byte {
	return []byte(e.out.String())
}

// SaveQSOTimes remembers the start and end of the current contact.
func (e *Emitter) SaveQSOTimes() {
	e.qso.SaveStartEnd()
}

// RestoreQSOTimes goes back to the times remembered by SaveQSOTimes.
func (e *Emitter) RestoreQSOTimes() {
	e.qso.RestoreStartEnd()
}

// UntestedField notes a field the output deliberately does not exercise.
// It is listed by Report.
func (e *Emitter) UntestedField(name string) {
	e.untested = append(e.untested, name)
}

func (e *Emitter) tagStyle() bool {
	return e.cfg.Style == ADI
}

// ensureFile starts the file when the caller did not do it.
func (e *Emitter) ensureFile() error {
	switch e.state {
	case BeforeFile:
		return e.BeginFile()
	case AfterFile:
		return adif.SequencingError("", "", "the file has already ended")
	}
	return nil
}

// ensureRecords ends the header when the first record field arrives.
func (e *Emitter) ensureRecords() error {
	if err := e.ensureFile(); err != nil {
		return err
	}
	if e.state == InHeader {
		return e.EndHeader()
	}
	return nil
}

// bor returns the text that goes before the first field of a header or
// record.
func (e *Emitter) bor() string {
	if len(e.buffer) > 0 {
		return ""
	}
	switch {
	case e.tagStyle() && e.state == InHeader && e.cfg.HasHeaderFields:
		// An ADI file with a header must not start with '<'.
		return " "
	case !e.tagStyle() && e.state == InRecords && !e.recordOpen:
		e.recordOpen = true
		return "<RECORD>" + e.cfg.FieldSeparator
	}
	return ""
}

// commit moves the staged output to the file.
func (e *Emitter) commit() {
	e.out.WriteString(e.pending.String())
	e.pending.Reset()
	clear(e.buffer)
	e.recordOpen = false
}

// BeginFile writes the prologue. In ADX this is the XML declaration and
// the opening of the root and header elements.
func (e *Emitter) BeginFile() error {
	if e.state != BeforeFile {
		return adif.SequencingError("", "",
			"the file has already begun, the emitter is %s", e.state)
	}
	if !e.tagStyle() {
		fs := e.cfg.FieldSeparator
		e.out.WriteString(`<?xml version="1.0" encoding="utf-8" ?>` + fs +
			"<ADX>" + fs + "<HEADER>" + fs)
	}
	e.state = InHeader
	return nil
}

// EndHeader closes the header and starts the records section.
func (e *Emitter) EndHeader() error {
	if err := e.ensureFile(); err != nil {
		return err
	}
	if e.state != InHeader {
		return adif.SequencingError("", "",
			"the header cannot end, the emitter is %s", e.state)
	}
	switch {
	case !e.tagStyle():
		e.pending.WriteString("</HEADER>" + e.cfg.RecordSeparator +
			"<RECORDS>" + e.cfg.FieldSeparator)
	case e.cfg.HasHeaderFields:
		e.pending.WriteString("<EOH>" + e.cfg.RecordSeparator)
	}
	e.commit()
	e.state = InRecords
	return nil
}

// EndRecord closes the current record and moves the QSO context to the
// next contact.
func (e *Emitter) EndRecord() error {
	if err := e.ensureRecords(); err != nil {
		return err
	}
	if err := e.qso.Next(e.buffer["CALL"]); err != nil {
		return err
	}
	if e.tagStyle() {
		e.pending.WriteString("<EOR>" + e.cfg.RecordSeparator)
	} else {
		if !e.recordOpen {
			e.pending.WriteString("<RECORD>" + e.cfg.FieldSeparator)
		}
		e.pending.WriteString("</RECORD>" + e.cfg.RecordSeparator)
	}
	e.totalRecords++
	e.commit()
	return nil
}

// defaultFields are added by CompleteRecord when the record lacks them.
var defaultFields = []string{
	"QSO_DATE", "TIME_ON", "TIME_OFF", "CALL", "BAND", "FREQ", "MODE",
}

// CompleteRecord adds the fields every QSO needs, taking their values
// from the QSO context, and ends the record.
func (e *Emitter) CompleteRecord() error {
	for _, name := range defaultFields {
		if e.Emitted(name) {
			continue
		}
		if err := e.Field(name, e.defaultValue(name)); err != nil {
			return err
		}
	}
	return e.EndRecord()
}

func (e *Emitter) defaultValue(name string) string {
	switch name {
	case "QSO_DATE":
		return e.qso.QSODate()
	case "TIME_ON":
		return e.qso.TimeOn()
	case "TIME_OFF":
		return e.qso.TimeOff()
	case "CALL":
		return e.qso.Call
	case "BAND":
		return e.qso.Band
	case "FREQ":
		return e.qso.FreqString()
	case "MODE":
		return e.qso.Mode
	}
	return ""
}

// Record emits name/value pairs as fields and completes the record.
func (e *Emitter) Record(pairs ...string) error {
	if len(pairs)%2 != 0 {
		return adif.SequencingError("", "",
			"Number of parameters supplied is not an even number")
	}
	for i := 0; i < len(pairs); i += 2 {
		if err := e.Field(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return e.CompleteRecord()
}

// EndFile writes the epilogue. A header without records is closed first.
func (e *Emitter) EndFile() error {
	if err := e.ensureFile(); err != nil {
		return err
	}
	if e.state == InHeader {
		if err := e.EndHeader(); err != nil {
			return err
		}
	}
	if len(e.buffer) > 0 {
		return adif.SequencingError("", "",
			"the file cannot end inside a record with %d fields", len(e.buffer))
	}
	e.out.WriteString(e.pending.String())
	e.pending.Reset()
	if !e.tagStyle() {
		e.out.WriteString("</RECORDS>" + e.cfg.FieldSeparator + "</ADX>")
	}
	e.state = AfterFile
	return nil
}
