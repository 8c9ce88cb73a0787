package plan

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
	"github.com/g3zod/CreateADIFTestFiles/pkg/emitter"
)

// createdLayout is the format of CREATED_TIMESTAMP.
const createdLayout = "20060102 150405"

// funcRE matches an innermost plan function, so arguments may hold other
// functions: ${CALL_FOR_DXCC(${VALUE})}.
var funcRE = regexp.MustCompile(`\$\{([A-Z_]+)(?:\(([^()${}]*)\))?\}`)

// Driver runs a plan against an emitter.
type Driver struct {
	plan *Plan
	em   *emitter.Emitter

	programID      string
	programVersion string
	now            func() time.Time
	onRecord       func(records int)
}

// Option changes the Driver created by NewDriver.
type Option func(*Driver)

// OptProgram sets the values of ${PROGRAMID} and ${PROGRAMVERSION}.
func OptProgram(id, version string) Option {
	return func(d *Driver) {
		d.programID = id
		d.programVersion = version
	}
}

// OptNow sets the clock used by ${CREATED_TIMESTAMP}.
func OptNow(now func() time.Time) Option {
	return func(d *Driver) {
		if now != nil {
			d.now = now
		}
	}
}

// OptOnRecord sets a callback called after every record with the number
// of records written so far.
func OptOnRecord(fn func(records int)) Option {
	return func(d *Driver) {
		d.onRecord = fn
	}
}

// NewDriver creates a Driver. The plan must be validated.
func NewDriver(p *Plan, em *emitter.Emitter, opts ...Option) *Driver {
	res := Driver{
		plan: p,
		em:   em,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(&res)
	}
	return &res
}

// Total returns the number of records the plan produces.
func (d *Driver) Total() (int, error) {
	var res int
	for i := range d.plan.Records {
		vals, err := d.iterations(&d.plan.Records[i])
		if err != nil {
			return 0, err
		}
		res += len(vals)
	}
	return res, nil
}

// Run writes the whole file. The context is checked between records;
// on cancellation the output is incomplete and must be discarded.
func (d *Driver) Run(ctx context.Context) error {
	p, em := d.plan, d.em

	for _, name := range p.Untested {
		em.UntestedField(name)
	}
	if err := em.BeginFile(); err != nil {
		return err
	}
	if p.Comment != "" {
		if err := em.CommentLine(p.Comment); err != nil {
			return err
		}
	}
	for _, f := range p.Header {
		if err := d.emit(f, ""); err != nil {
			return err
		}
	}
	for _, u := range p.UserDefs {
		err := em.DeclareUserField(u.Name, u.Type[0], u.Number, u.Values)
		if err != nil {
			return err
		}
	}
	if err := em.EndHeader(); err != nil {
		return err
	}

	for i := range p.Records {
		if err := d.runRecord(ctx, &p.Records[i]); err != nil {
			return err
		}
	}

	switch p.ReportLevel() {
	case ReportShort:
		if err := em.Report(false); err != nil {
			return err
		}
	case ReportFull:
		if err := em.Report(true); err != nil {
			return err
		}
	}
	return em.EndFile()
}

func (d *Driver) runRecord(ctx context.Context, r *Record) error {
	vals, err := d.iterations(r)
	if err != nil {
		return err
	}
	if r.SaveTimes {
		d.em.SaveQSOTimes()
	}
	for i, v := range vals {
		if err = ctx.Err(); err != nil {
			return err
		}
		if i == 0 && r.Comment != "" {
			if err = d.em.CommentLine(r.Comment); err != nil {
				return err
			}
		}
		for _, f := range r.Fields {
			if err = d.emit(f, v); err != nil {
				return err
			}
		}
		if err = d.em.CompleteRecord(); err != nil {
			return err
		}
		if d.onRecord != nil {
			d.onRecord(d.em.Records())
		}
	}
	if r.RestoreTimes {
		d.em.RestoreQSOTimes()
	}
	return nil
}

// iterations returns the ${VALUE} of every record of a template.
func (d *Driver) iterations(r *Record) ([]string, error) {
	switch {
	case r.Repeat > 0:
		res := make([]string, r.Repeat)
		for i := range r.Repeat {
			res[i] = strconv.Itoa(i + 1)
		}
		return res, nil
	case len(r.Each) > 0:
		return r.Each, nil
	case r.EachEnumeration != "":
		e, err := d.em.Catalog().Enumerations.Get(r.EachEnumeration)
		if err != nil {
			return nil, err
		}
		return e.Values(), nil
	default:
		return []string{""}, nil
	}
}

func (d *Driver) emit(f Field, value string) error {
	v, err := d.Expand(f.Value, value)
	if err != nil {
		return err
	}
	var indicator byte
	if f.Type != "" {
		indicator = strings.ToUpper(f.Type)[0]
	}
	switch {
	case f.App != "":
		return d.em.AppField(f.Name, v, f.App, indicator)
	case f.User:
		return d.em.UserField(f.Name, v)
	default:
		return d.em.TypedField(f.Name, v, indicator)
	}
}

// Expand replaces plan functions in s. The value is the iteration value
// returned by ${VALUE}. Results are not expanded again, so every pass
// removes one function and the loop ends.
func (d *Driver) Expand(s, value string) (string, error) {
	for strings.Contains(s, "${") {
		m := funcRE.FindStringSubmatchIndex(s)
		if m == nil {
			return "", adif.SequencingError("", s, "malformed plan function")
		}
		name := s[m[2]:m[3]]
		var args []string
		if m[4] >= 0 {
			for a := range strings.SplitSeq(s[m[4]:m[5]], ",") {
				args = append(args, strings.TrimSpace(a))
			}
		}
		res, err := d.call(name, args, value)
		if err != nil {
			return "", err
		}
		if strings.Contains(res, "${") {
			return "", adif.SequencingError("", res,
				"plan function %s returned another plan function", name)
		}
		s = s[:m[0]] + res + s[m[1]:]
	}
	return s, nil
}

func (d *Driver) call(name string, args []string, value string) (string, error) {
	want := func(n int) error {
		if len(args) != n {
			return adif.SequencingError("", strings.Join(args, ","),
				"plan function %s needs %d arguments, got %d", name, n, len(args))
		}
		return nil
	}
	number := func(s string) (int, error) {
		i, err := strconv.Atoi(s)
		if err != nil {
			return 0, adif.SequencingError("", s,
				"plan function %s needs a number, got '%s'", name, s)
		}
		return i, nil
	}

	calls, q := d.em.Calls(), d.em.QSO()
	var err error
	switch name {
	case "ADIF_VER":
		if err = want(0); err == nil {
			return d.em.Catalog().Version, nil
		}
	case "PROGRAMID":
		if err = want(0); err == nil {
			return d.programID, nil
		}
	case "PROGRAMVERSION":
		if err = want(0); err == nil {
			return d.programVersion, nil
		}
	case "CREATED_TIMESTAMP":
		if err = want(0); err == nil {
			return d.now().UTC().Format(createdLayout), nil
		}
	case "VALUE":
		if err = want(0); err == nil {
			return value, nil
		}
	case "CALL_FOR_DXCC":
		if err = want(1); err != nil {
			break
		}
		var code int
		if code, err = number(args[0]); err != nil {
			break
		}
		e, err := calls.CallForDXCC(code)
		return e.Call, err
	case "CALL_FOR_CONT":
		if err = want(1); err != nil {
			break
		}
		e, err := calls.CallForContinent(args[0])
		return e.Call, err
	case "CALL_FOR_PAS":
		if err = want(2); err != nil {
			break
		}
		var code int
		if code, err = number(args[0]); err != nil {
			break
		}
		e, err := calls.CallForSubdivision(code, args[1])
		return e.Call, err
	case "BAND_FOR_CONTEST":
		if err = want(1); err == nil {
			return adif.BandForContest(args[0]), nil
		}
	case "FREQ_FOR_BAND":
		if err = want(1); err == nil {
			return q.FreqForBand(args[0])
		}
	case "BAND_FOR_FREQ":
		if err = want(1); err == nil {
			return q.BandForFreq(args[0])
		}
	default:
		err = adif.SequencingError("", name, "unknown plan function %s", name)
	}
	return "", err
}
