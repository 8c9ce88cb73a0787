package qso_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/g3zod/CreateADIFTestFiles/internal/iotesting"
	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
	"github.com/g3zod/CreateADIFTestFiles/pkg/callsign"
	"github.com/g3zod/CreateADIFTestFiles/pkg/qso"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newContext(t *testing.T) (*qso.Context, *callsign.Generator) {
	rnd := rand.New(rand.NewPCG(1, 1))
	calls := callsign.New(iotesting.EntityIndex(t), rnd)
	c := qso.New(iotesting.Catalog(t), calls, rnd, qso.OptStart(start))
	return c, calls
}

func TestBaseline(t *testing.T) {
	tests := []struct {
		msg string
		now time.Time
		exp time.Time
	}{
		{
			"plain",
			time.Date(2024, 5, 17, 13, 45, 1, 0, time.UTC),
			time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			"clamp leap",
			time.Date(2024, 4, 30, 23, 59, 59, 0, time.UTC),
			time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			"clamp",
			time.Date(2023, 4, 30, 1, 0, 0, 0, time.UTC),
			time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			"year",
			time.Date(2024, 1, 31, 1, 0, 0, 0, time.UTC),
			time.Date(2023, 11, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			"zone",
			time.Date(2024, 3, 1, 1, 0, 0, 0, time.FixedZone("X", 3*3600)),
			time.Date(2023, 12, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			assert.Equal(t, v.exp, qso.Baseline(v.now))
		})
	}
}

func TestNew(t *testing.T) {
	assert := assert.New(t)
	c, _ := newContext(t)

	assert.Equal(start, c.Start)
	assert.Equal(start.Add(qso.DefaultDuration), c.End)
	assert.Equal(qso.DefaultCall, c.Call)
	assert.Equal("20240301", c.QSODate())
	assert.Equal("120000", c.TimeOn())
	assert.Equal("120437", c.TimeOff())
	assert.Equal("14.05", c.FreqString())
	assert.Equal("NA", c.Cont)
}

func TestNext(t *testing.T) {
	assert := assert.New(t)
	c, calls := newContext(t)
	end := c.End

	require.NoError(t, c.Next(""))
	assert.Equal(end.Add(qso.DefaultInterval), c.Start)
	assert.Equal(c.Start.Add(qso.DefaultDuration), c.End)
	first := c.Call
	e, ok := calls.Previous(first)
	require.True(t, ok)
	assert.Equal(e.DXCC, c.DXCC)
	assert.Equal(e.Continent, c.Cont)

	// A record with its own call leaves the random call unused.
	require.NoError(t, c.Next("G3ZOD"))
	assert.Equal(first, c.Call)

	require.NoError(t, c.Next(first))
	assert.NotEqual(first, c.Call)

	for range 50 {
		require.NoError(t, c.Next(c.Call))
		b, ok := iotesting.Catalog(t).Bands.Lookup(c.Band)
		require.True(t, ok)
		assert.True(b.Contains(c.Freq))
		b, ok = iotesting.Catalog(t).Bands.Lookup(c.BandRx)
		require.True(t, ok)
		assert.True(b.Contains(c.FreqRx))
		assert.NotEqual("AMTORFEC", c.Mode)
	}
}

func TestSaveRestore(t *testing.T) {
	c, _ := newContext(t)
	c.SaveStartEnd()
	s, e := c.Start, c.End
	require.NoError(t, c.Next(""))
	require.NoError(t, c.Next(""))
	c.RestoreStartEnd()
	assert.Equal(t, s, c.Start)
	assert.Equal(t, e, c.End)
}

func TestApply(t *testing.T) {
	tests := []struct {
		msg, name, value string
		check            func(*testing.T, *qso.Context)
	}{
		{"date", "QSO_DATE", "20240305", func(t *testing.T, c *qso.Context) {
			assert.Equal(t, "20240305", c.QSODate())
			assert.Equal(t, "120000", c.TimeOn())
			assert.False(t, c.End.Before(c.Start))
		}},
		{"date off", "QSO_DATE_OFF", "20240228", func(t *testing.T, c *qso.Context) {
			assert.Equal(t, "20240228", c.QSODateOff())
			assert.Equal(t, c.End, c.Start)
		}},
		{"time on", "TIME_ON", "1300", func(t *testing.T, c *qso.Context) {
			assert.Equal(t, "130000", c.TimeOn())
			assert.Equal(t, c.Start, c.End)
		}},
		{"time off", "TIME_OFF", "121500", func(t *testing.T, c *qso.Context) {
			assert.Equal(t, "121500", c.TimeOff())
			assert.Equal(t, "120000", c.TimeOn())
		}},
		{"unknown call", "CALL", "G3ZOD", func(t *testing.T, c *qso.Context) {
			assert.Equal(t, "G3ZOD", c.Call)
			assert.Equal(t, -1, c.DXCC)
			assert.Equal(t, 0, c.CQZ)
			assert.Equal(t, 0, c.ITUZ)
			assert.Empty(t, c.Cont)
		}},
		{"freq", "FREQ", "7.1", func(t *testing.T, c *qso.Context) {
			assert.Equal(t, "40m", c.Band)
			assert.Equal(t, 7.1, c.Freq)
		}},
		{"band keeps freq", "BAND", "20M", func(t *testing.T, c *qso.Context) {
			assert.Equal(t, "20M", c.Band)
			assert.Equal(t, 14.05, c.Freq)
		}},
		{"band", "BAND", "2m", func(t *testing.T, c *qso.Context) {
			assert.Equal(t, "2m", c.Band)
			assert.GreaterOrEqual(t, c.Freq, 144.0)
			assert.LessOrEqual(t, c.Freq, 148.0)
		}},
		{"freq rx", "FREQ_RX", "145.5", func(t *testing.T, c *qso.Context) {
			assert.Equal(t, "2m", c.BandRx)
			assert.Equal(t, "20m", c.Band)
		}},
		{"band rx", "BAND_RX", "40m", func(t *testing.T, c *qso.Context) {
			assert.Equal(t, "40m", c.BandRx)
			assert.GreaterOrEqual(t, c.FreqRx, 7.0)
			assert.LessOrEqual(t, c.FreqRx, 7.3)
			assert.Equal(t, 14.05, c.Freq)
		}},
		{"zones", "CQZ", "14", func(t *testing.T, c *qso.Context) {
			assert.Equal(t, 14, c.CQZ)
		}},
		{"cont", "CONT", "EU", func(t *testing.T, c *qso.Context) {
			assert.Equal(t, "EU", c.Cont)
		}},
		{"mode", "mode", "CW", func(t *testing.T, c *qso.Context) {
			assert.Equal(t, "CW", c.Mode)
		}},
		{"other", "NAME", "Bob", func(t *testing.T, c *qso.Context) {
			assert.Equal(t, qso.DefaultCall, c.Call)
		}},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			c, _ := newContext(t)
			require.NoError(t, c.Apply(v.name, v.value))
			v.check(t, c)
		})
	}
}

func TestApplyCall(t *testing.T) {
	c, calls := newContext(t)
	e, err := calls.CallForDXCC(223)
	require.NoError(t, err)
	require.NoError(t, c.Apply("CALL", e.Call))
	assert.Equal(t, 223, c.DXCC)
	assert.Equal(t, 14, c.CQZ)
	assert.Equal(t, 27, c.ITUZ)
	assert.Equal(t, "EU", c.Cont)
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		msg, name, value string
	}{
		{"date", "QSO_DATE", "20230229"},
		{"time", "TIME_ON", "2561"},
		{"band", "BAND", "6m"},
		{"freq", "FREQ", "abc"},
		{"out of bands", "FREQ", "50.1"},
		{"cqz", "CQZ", "0"},
		{"ituz", "ITUZ", "x"},
		{"dxcc", "DXCC", "x"},
		{"cont", "CONT", "E1"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			c, _ := newContext(t)
			err := c.Apply(v.name, v.value)
			require.Error(t, err)
			assert.NotEqual(t, adif.ErrorKind(0), adif.KindOf(err))
		})
	}
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		msg, name, value, exp string
	}{
		{"literal", "NAME", "Bob", "Bob"},
		{"empty", "CALL", "{}", qso.DefaultCall},
		{"date", "QSO_DATE_OFF", "{QSO_DATE}", "20240301"},
		{"date plus", "QSO_DATE_OFF", "{QSO_DATE+2}", "20240303"},
		{"date minus", "QSO_DATE_OFF", "{QSO_DATE+-1}", "20240229"},
		{"date fraction", "QSO_DATE_OFF", "{QSO_DATE+0.5}", "20240302"},
		{"date off", "QSO_DATE", "{QSO_DATE_OFF+1}", "20240302"},
		{"time on", "TIME_ON", "{}", "120000"},
		{"time off", "NOTES", "{TIME_OFF}", "120437"},
		{"band", "BAND_RX", "{BAND}", "20m"},
		{"freq", "FREQ_RX", "{FREQ}", "14.05"},
		{"dxcc", "DXCC", "{}", "1"},
		{"cqz", "CQZ", "{}", "5"},
		{"ituz", "ITUZ", "{}", "2"},
		{"cont", "CONT", "{}", "NA"},
		{"year of birth", "NOTES", "{YEAR_OF_BIRTH(30)}", "1994"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			c, _ := newContext(t)
			res, err := c.Substitute(v.name, v.value)
			require.NoError(t, err)
			assert.Equal(t, v.exp, res)
		})
	}
}

func TestSubstituteErrors(t *testing.T) {
	tests := []struct {
		msg, value string
	}{
		{"no braces", "x{CALL}"},
		{"open", "{CALL"},
		{"plus on call", "{CALL+1}"},
		{"two plus", "{QSO_DATE+1+1}"},
		{"bad days", "{QSO_DATE+x}"},
		{"nan days", "{QSO_DATE+NaN}"},
		{"infinite days", "{QSO_DATE_OFF+Inf}"},
		{"exponent days", "{QSO_DATE+1e3}"},
		{"param", "{CALL(1)}"},
		{"no close", "{YEAR_OF_BIRTH(30}"},
		{"bad age", "{YEAR_OF_BIRTH(x)}"},
		{"unknown", "{MODE}"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			c, _ := newContext(t)
			_, err := c.Substitute("NOTES", v.value)
			assert.True(t, adif.IsSequencing(err), v.value)
		})
	}
}

func TestBandHelpers(t *testing.T) {
	assert := assert.New(t)
	c, _ := newContext(t)

	f, err := c.FreqForBand("2m")
	require.NoError(t, err)
	v, ok := adif.ParseNumber(f, false)
	require.True(t, ok)
	assert.GreaterOrEqual(v, 144.0)
	assert.LessOrEqual(v, 148.0)

	b, err := c.BandForFreq("7.05")
	require.NoError(t, err)
	assert.Equal("40m", b)

	_, err = c.FreqForBand("6m")
	assert.True(adif.IsValidation(err))
	_, err = c.BandForFreq("x")
	assert.True(adif.IsValidation(err))
}
