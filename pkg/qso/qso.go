// Package qso keeps the state of the current synthetic contact. Fields
// that are emitted update it, and values can refer to it with
// {NAME} macros.
package qso

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
	"github.com/g3zod/CreateADIFTestFiles/pkg/callsign"
)

// Defaults of the very first contact of a file.
const (
	DefaultBand = "20m"
	DefaultFreq = 14.05
	DefaultCall = "VE3AAA"
	DefaultMode = "SSB"

	DefaultDuration = 4*time.Minute + 37*time.Second
	DefaultInterval = time.Minute + 6*time.Second
)

const (
	dateLayout = "20060102"
	timeLayout = "150405"
)

// Context is the mutable state of the current contact.
type Context struct {
	Start time.Time
	End   time.Time

	Call   string
	Band   string
	Freq   float64
	BandRx string
	FreqRx float64
	DXCC   int
	CQZ    int
	ITUZ   int
	Cont   string
	Mode   string

	duration time.Duration
	interval time.Duration

	bands *adif.BandTable
	modes []adif.Mode
	calls *callsign.Generator
	rnd   *rand.Rand

	// entry is the random call prepared for the next record. It is reused
	// while records bring their own calls.
	entry *callsign.Entry

	savedStart time.Time
	savedEnd   time.Time
}

// Option changes the Context created by New.
type Option func(*Context)

// OptStart sets the start time of the first contact.
func OptStart(t time.Time) Option {
	return func(c *Context) {
		c.Start = t.UTC()
	}
}

// OptDuration sets how long each contact lasts.
func OptDuration(d time.Duration) Option {
	return func(c *Context) {
		if d >= 0 {
			c.duration = d
		}
	}
}

// OptInterval sets the gap between the end of a contact and the start of
// the next one.
func OptInterval(d time.Duration) Option {
	return func(c *Context) {
		if d >= 0 {
			c.interval = d
		}
	}
}

// New creates the context of the first contact of a file. Without
// OptStart the first contact starts at Baseline(time.Now()).
func New(
	cat *adif.Catalog,
	calls *callsign.Generator,
	rnd *rand.Rand,
	opts ...Option,
) *Context {
	res := Context{
		Start:    Baseline(time.Now()),
		Call:     DefaultCall,
		Band:     DefaultBand,
		Freq:     DefaultFreq,
		BandRx:   DefaultBand,
		FreqRx:   DefaultFreq,
		DXCC:     1,
		CQZ:      5,
		ITUZ:     2,
		Cont:     "NA",
		Mode:     DefaultMode,
		duration: DefaultDuration,
		interval: DefaultInterval,
		bands:    cat.Bands,
		modes:    cat.Modes,
		calls:    calls,
		rnd:      rnd,
	}
	for _, opt := range opts {
		opt(&res)
	}
	res.End = res.Start.Add(res.duration)
	res.savedStart = res.Start
	res.savedEnd = res.End
	return &res
}

// Baseline returns midnight UTC two calendar months before now. The day
// is clamped to the length of the target month, so all runs of one day
// produce the same times.
func Baseline(now time.Time) time.Time {
	now = now.UTC()
	y, m, d := now.Date()
	m -= 2
	if m < 1 {
		m += 12
		y--
	}
	if last := daysIn(y, m); d > last {
		d = last
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Next moves to the following contact. A new random call is chosen
// unless the record that just ended carried a call of its own, in which
// case the prepared random call is still unused and stays.
func (c *Context) Next(lastCall string) error {
	c.Start = c.End.Add(c.interval)
	c.End = c.Start.Add(c.duration)

	if c.entry == nil || lastCall == c.entry.Call {
		e, err := c.calls.RandomCall()
		if err != nil {
			return err
		}
		c.entry = &e
	}
	c.Call = c.entry.Call
	c.DXCC = c.entry.DXCC
	c.CQZ = c.entry.CQZone
	c.ITUZ = c.entry.ITUZone
	c.Cont = c.entry.Continent

	var err error
	c.Band = c.bands.RandomBand(c.rnd).Name
	if c.Freq, err = c.bands.RandomFreq(c.Band, c.rnd); err != nil {
		return err
	}
	c.BandRx = c.bands.RandomBand(c.rnd).Name
	if c.FreqRx, err = c.bands.RandomFreq(c.BandRx, c.rnd); err != nil {
		return err
	}
	if len(c.modes) > 0 {
		c.Mode = c.modes[c.rnd.IntN(len(c.modes))].Name
	}
	return nil
}

// SaveStartEnd remembers the current start and end times.
func (c *Context) SaveStartEnd() {
	c.savedStart = c.Start
	c.savedEnd = c.End
}

// RestoreStartEnd returns to the times remembered by SaveStartEnd.
func (c *Context) RestoreStartEnd() {
	c.Start = c.savedStart
	c.End = c.savedEnd
}

// QSODate returns the start date in yyyyMMdd form.
func (c *Context) QSODate() string {
	return c.Start.Format(dateLayout)
}

// QSODateOff returns the end date in yyyyMMdd form.
func (c *Context) QSODateOff() string {
	return c.End.Format(dateLayout)
}

// TimeOn returns the start time in HHmmss form.
func (c *Context) TimeOn() string {
	return c.Start.Format(timeLayout)
}

// TimeOff returns the end time in HHmmss form.
func (c *Context) TimeOff() string {
	return c.End.Format(timeLayout)
}

// FreqString returns the transmit frequency with at most 6 decimals.
func (c *Context) FreqString() string {
	return adif.FormatFreq(c.Freq)
}

// FreqRxString returns the receive frequency with at most 6 decimals.
func (c *Context) FreqRxString() string {
	return adif.FormatFreq(c.FreqRx)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

// FreqForBand picks a random frequency within a band.
func (c *Context) FreqForBand(band string) (string, error) {
	f, err := c.bands.RandomFreq(band, c.rnd)
	if err != nil {
		return "", err
	}
	return adif.FormatFreq(f), nil
}

// BandForFreq returns the band of a frequency given in MHz.
func (c *Context) BandForFreq(freq string) (string, error) {
	f, ok := adif.ParseNumber(freq, false)
	if !ok {
		return "", adif.ValidationError("FREQ", "NUMBER", freq,
			"'%s' is not a valid frequency", freq)
	}
	return c.bands.BandFor(f)
}
