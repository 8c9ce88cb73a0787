package plan_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/g3zod/CreateADIFTestFiles/internal/iotesting"
	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
	"github.com/g3zod/CreateADIFTestFiles/pkg/emitter"
	"github.com/g3zod/CreateADIFTestFiles/pkg/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmitter(t *testing.T, style emitter.Style) *emitter.Emitter {
	cfg := emitter.NewConfig(style)
	cfg.Start = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return emitter.New(iotesting.Catalog(t), iotesting.EntityIndex(t), cfg)
}

func newDriver(t *testing.T, p *plan.Plan, style emitter.Style) (*plan.Driver, *emitter.Emitter) {
	em := newEmitter(t, style)
	now := func() time.Time {
		return time.Date(2024, 5, 1, 10, 11, 12, 0, time.UTC)
	}
	d := plan.NewDriver(p, em,
		plan.OptProgram("adiftest", "v0.1.0"),
		plan.OptNow(now),
	)
	return d, em
}

func TestValidate(t *testing.T) {
	no := false
	tests := []struct {
		msg  string
		plan plan.Plan
		err  string
	}{
		{"empty", plan.Plan{}, "no records"},
		{
			"report",
			plan.Plan{Records: []plan.Record{{}}, Report: "long"},
			"invalid report",
		},
		{
			"header name",
			plan.Plan{
				Header:  []plan.Field{{Value: "x"}},
				Records: []plan.Record{{}},
			},
			"name is required",
		},
		{
			"no header",
			plan.Plan{
				HasHeaderFields: &no,
				Header:          []plan.Field{{Name: "PROGRAMID", Value: "x"}},
				Records:         []plan.Record{{}},
			},
			"has_header_fields is false",
		},
		{
			"no header comment",
			plan.Plan{
				HasHeaderFields: &no,
				Records:         []plan.Record{{Comment: "first"}},
			},
			"cannot start with a comment",
		},
		{
			"userdef type",
			plan.Plan{
				UserDefs: []plan.UserDef{{Name: "EPC", Type: "EE", Number: 1}},
				Records:  []plan.Record{{}},
			},
			"single Data Type Indicator",
		},
		{
			"userdef number",
			plan.Plan{
				UserDefs: []plan.UserDef{
					{Name: "A", Type: "S", Number: 1},
					{Name: "B", Type: "S", Number: 1},
				},
				Records: []plan.Record{{}},
			},
			"used twice",
		},
		{
			"iteration",
			plan.Plan{Records: []plan.Record{{Repeat: 2, Each: []string{"a"}}}},
			"cannot be combined",
		},
		{
			"negative",
			plan.Plan{Records: []plan.Record{{Repeat: -1}}},
			"negative",
		},
		{
			"twice",
			plan.Plan{Records: []plan.Record{{Fields: []plan.Field{
				{Name: "CALL", Value: "a"},
				{Name: "call", Value: "b"},
			}}}},
			"given twice",
		},
		{
			"app and user",
			plan.Plan{Records: []plan.Record{{Fields: []plan.Field{
				{Name: "X", Value: "a", App: "P", User: true},
			}}}},
			"both",
		},
		{
			"value",
			plan.Plan{Records: []plan.Record{{Fields: []plan.Field{
				{Name: "X"},
			}}}},
			"value of X",
		},
		{
			"function in each",
			plan.Plan{Records: []plan.Record{{
				Each:   []string{"20m", "${VALUE}"},
				Fields: []plan.Field{{Name: "BAND", Value: "${VALUE}"}},
			}}},
			"cannot hold a plan function",
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			err := v.plan.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), v.err)
		})
	}
}

func TestValidateWarnings(t *testing.T) {
	assert := assert.New(t)
	p := plan.Plan{
		Report: " Short ",
		Records: []plan.Record{
			{Fields: []plan.Field{{Name: "BAND", Value: "${VALUE}"}}},
			{},
			{Comment: "defaults only"},
		},
		Untested: []string{" my_rig "},
	}
	require.NoError(t, p.Validate())
	assert.Equal(plan.ReportShort, p.Report)
	assert.Equal([]string{"MY_RIG"}, p.Untested)
	require.Len(t, p.Warnings, 2)
	assert.Equal(1, p.Warnings[0].Record)
	assert.Equal(2, p.Warnings[1].Record)
	assert.True(p.HeaderFields())
}

func TestExpand(t *testing.T) {
	p := plan.Plan{Records: []plan.Record{{}}}

	tests := []struct {
		msg, in, value, exp string
	}{
		{"literal", "G3ZOD", "", "G3ZOD"},
		{"macro", "{CALL}", "", "{CALL}"},
		{"version", "${ADIF_VER}", "", iotesting.SpecVersion},
		{"program", "${PROGRAMID} ${PROGRAMVERSION}", "", "adiftest v0.1.0"},
		{"created", "${CREATED_TIMESTAMP}", "", "20240501 101112"},
		{"value", "x${VALUE}y", "20m", "x20my"},
		{"contest", "${BAND_FOR_CONTEST(ARRL-VHF-JAN)}", "", "2m"},
		{"nested", "${BAND_FOR_FREQ(${VALUE})}", "7.1", "40m"},
		{"dxcc", "${CALL_FOR_DXCC(0)}", "", "M0AAA/MM"},
		{"pas", "${CALL_FOR_PAS(1, ON)}", "", "VE3AAA"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			d, _ := newDriver(t, &p, emitter.ADI)
			res, err := d.Expand(v.in, v.value)
			require.NoError(t, err)
			assert.Equal(t, v.exp, res)
		})
	}

	d, _ := newDriver(t, &p, emitter.ADI)
	cont, err := d.Expand("${CALL_FOR_CONT(EU)}", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(cont, "G"))

	freq, err := d.Expand("${FREQ_FOR_BAND(20m)}", "")
	require.NoError(t, err)
	f, ok := adif.ParseNumber(freq, false)
	require.True(t, ok)
	assert.GreaterOrEqual(t, f, 14.0)
	assert.LessOrEqual(t, f, 14.35)
}

func TestExpandErrors(t *testing.T) {
	p := plan.Plan{Records: []plan.Record{{}}}
	d, _ := newDriver(t, &p, emitter.ADI)

	tests := []struct {
		msg, in, value string
		kind           adif.ErrorKind
	}{
		{"unknown", "${FOO}", "", adif.Sequencing},
		{"malformed", "${CALL_FOR_DXCC(1}", "", adif.Sequencing},
		{"args", "${CALL_FOR_DXCC(1,2)}", "", adif.Sequencing},
		{"no args", "${ADIF_VER(1)}", "", adif.Sequencing},
		{"number", "${CALL_FOR_DXCC(x)}", "", adif.Sequencing},
		{"deleted", "${CALL_FOR_DXCC(7)}", "", adif.Sequencing},
		{"band", "${FREQ_FOR_BAND(6m)}", "", adif.Validation},
		{"value expands to itself", "${VALUE}", "${VALUE}", adif.Sequencing},
		{"value holds a function", "x${VALUE}", "${ADIF_VER}", adif.Sequencing},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, err := d.Expand(v.in, v.value)
			require.Error(t, err)
			assert.Equal(t, v.kind, adif.KindOf(err), err.Error())
		})
	}
}

func testPlan() plan.Plan {
	return plan.Plan{
		Comment: "Test QSOs",
		Header: []plan.Field{
			{Name: "ADIF_VER", Value: "${ADIF_VER}"},
			{Name: "CREATED_TIMESTAMP", Value: "${CREATED_TIMESTAMP}"},
			{Name: "PROGRAMID", Value: "${PROGRAMID}"},
		},
		UserDefs: []plan.UserDef{
			{Name: "EPC", Type: "E", Number: 1, Values: "{A,B,C}"},
		},
		Records: []plan.Record{
			{
				Comment:         "bands",
				EachEnumeration: "Band",
				Fields: []plan.Field{
					{Name: "BAND", Value: "${VALUE}"},
					{Name: "FREQ", Value: "${FREQ_FOR_BAND(${VALUE})}"},
				},
			},
			{
				Each:      []string{"A", "B"},
				SaveTimes: true, RestoreTimes: true,
				Fields: []plan.Field{
					{Name: "EPC", Value: "${VALUE}", User: true},
					{Name: "Rig", Value: "IC-7300", App: "MONOLOG"},
					{Name: "QSO_DATE", Value: "{QSO_DATE}", Type: "D"},
				},
			},
			{
				Repeat: 3,
				Fields: []plan.Field{
					{Name: "CALL", Value: "${CALL_FOR_PAS(291,MA)}"},
				},
			},
		},
		Untested: []string{"MY_RIG"},
		Report:   plan.ReportShort,
	}
}

func TestRun(t *testing.T) {
	assert := assert.New(t)
	p := testPlan()
	require.NoError(t, p.Validate())

	var progress []int
	em := newEmitter(t, emitter.ADI)
	d := plan.NewDriver(&p, em,
		plan.OptProgram("adiftest", "v0.1.0"),
		plan.OptOnRecord(func(n int) { progress = append(progress, n) }),
	)
	total, err := d.Total()
	require.NoError(t, err)
	assert.Equal(8, total)

	require.NoError(t, d.Run(context.Background()))
	assert.Equal([]int{1, 2, 3, 4, 5, 6, 7, 8}, progress)
	assert.Equal(emitter.AfterFile, em.State())

	out := em.String()
	assert.True(strings.HasPrefix(out, "Test QSOs\r\n <ADIF_VER:5>3.1.5\r\n"))
	assert.Contains(out, "<PROGRAMID:8>adiftest\r\n")
	assert.Contains(out, "<USERDEF1:E:11>EPC,{A,B,C}\r\n<EOH>")
	assert.Contains(out, "bands\r\n<BAND:3>40m\r\n<FREQ:")
	assert.Contains(out, "<BAND:2>2m\r\n<FREQ:")
	assert.Contains(out, "<EPC:1>B\r\n<APP_MONOLOG_Rig:M:7>IC-7300\r\n")
	assert.Contains(out, "<QSO_DATE:D:8>")
	assert.Equal(3, strings.Count(out, "<CALL:5>W1"))
	assert.Equal(8, strings.Count(out, "<EOR>"))
	assert.Contains(out, "Untested fields:      1")
	assert.NotContains(out, "Field details")
}

func TestRunADX(t *testing.T) {
	p := testPlan()
	p.Report = plan.ReportNone
	require.NoError(t, p.Validate())
	d, em := newDriver(t, &p, emitter.ADX)

	require.NoError(t, d.Run(context.Background()))
	out := em.String()
	assert.Contains(t, out, "<!--Test QSOs-->\r\n")
	assert.Contains(t, out,
		`<APP PROGRAMID="MONOLOG" FIELDNAME="RIG" TYPE="G">IC-7300</APP>`)
	assert.Equal(t, 8, strings.Count(out, "</RECORD>"))
	assert.NotContains(t, out, "Report")
	assert.True(t, strings.HasSuffix(out, "</ADX>"))
}

func TestRunSaveTimes(t *testing.T) {
	p := plan.Plan{Records: []plan.Record{
		{Repeat: 2, SaveTimes: true, RestoreTimes: true},
		{},
	}}
	require.NoError(t, p.Validate())
	d, em := newDriver(t, &p, emitter.ADI)
	require.NoError(t, d.Run(context.Background()))

	// The third record starts where the first did.
	assert.Equal(t, 2, strings.Count(em.String(), "<QSO_DATE:8>20240301\r\n"+
		"<TIME_ON:6>000000\r\n"))
}

func TestRunErrors(t *testing.T) {
	t.Run("cancel", func(t *testing.T) {
		p := plan.Plan{Records: []plan.Record{{Repeat: 5}}}
		require.NoError(t, p.Validate())
		d, _ := newDriver(t, &p, emitter.ADI)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := d.Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("field", func(t *testing.T) {
		p := plan.Plan{Records: []plan.Record{{Fields: []plan.Field{
			{Name: "CQZ", Value: "99"},
		}}}}
		require.NoError(t, p.Validate())
		d, _ := newDriver(t, &p, emitter.ADI)
		err := d.Run(context.Background())
		assert.True(t, adif.IsValidation(err))
	})

	t.Run("enumeration", func(t *testing.T) {
		p := plan.Plan{Records: []plan.Record{{EachEnumeration: "Nope"}}}
		require.NoError(t, p.Validate())
		d, _ := newDriver(t, &p, emitter.ADI)
		_, err := d.Total()
		assert.True(t, adif.IsSpecification(err))
	})
}
