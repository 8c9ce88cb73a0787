package qso

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
)

// Apply updates the contact after a field was validated and emitted.
// Fields the context does not track are ignored.
//
// BAND and FREQ (and their _RX pairs) follow the rule "last write wins":
// the written attribute is taken as is, and the paired one is derived
// again only when it no longer agrees.
func (c *Context) Apply(name, value string) error {
	switch name = strings.ToUpper(name); name {
	case "QSO_DATE":
		d, err := parseDate(name, value)
		if err != nil {
			return err
		}
		c.Start = withDate(c.Start, d)
		if c.End.Before(c.Start) {
			c.End = c.Start
		}
	case "QSO_DATE_OFF":
		d, err := parseDate(name, value)
		if err != nil {
			return err
		}
		c.End = withDate(c.End, d)
		if c.Start.After(c.End) {
			c.Start = c.End
		}
	case "TIME_ON":
		t, err := parseTime(name, value)
		if err != nil {
			return err
		}
		c.Start = withTime(c.Start, t)
		if c.End.Before(c.Start) {
			c.End = c.Start
		}
	case "TIME_OFF":
		t, err := parseTime(name, value)
		if err != nil {
			return err
		}
		c.End = withTime(c.End, t)
		if c.Start.After(c.End) {
			c.Start = c.End
		}
	case "CALL":
		c.Call = value
		if e, ok := c.calls.Previous(value); ok {
			c.DXCC, c.CQZ, c.ITUZ, c.Cont = e.DXCC, e.CQZone, e.ITUZone, e.Continent
		} else {
			c.DXCC, c.CQZ, c.ITUZ, c.Cont = -1, 0, 0, ""
		}
	case "BAND":
		band, freq, err := c.setBand(name, value, c.Freq)
		if err != nil {
			return err
		}
		c.Band, c.Freq = band, freq
	case "FREQ":
		freq, band, err := c.setFreq(name, value, c.Band)
		if err != nil {
			return err
		}
		c.Freq, c.Band = freq, band
	case "BAND_RX":
		band, freq, err := c.setBand(name, value, c.FreqRx)
		if err != nil {
			return err
		}
		c.BandRx, c.FreqRx = band, freq
	case "FREQ_RX":
		freq, band, err := c.setFreq(name, value, c.BandRx)
		if err != nil {
			return err
		}
		c.FreqRx, c.BandRx = freq, band
	case "DXCC":
		i, err := strconv.Atoi(value)
		if err != nil {
			return adif.ValidationError(name, "", value,
				"%s is not a valid value for the %s field", value, name)
		}
		c.DXCC = i
	case "CQZ", "ITUZ":
		i, err := strconv.Atoi(value)
		if err != nil || i <= 0 {
			return adif.ValidationError(name, "", value,
				"%s is not a valid value for the %s field", value, name)
		}
		if name == "CQZ" {
			c.CQZ = i
		} else {
			c.ITUZ = i
		}
	case "CONT":
		if len(value) != 2 ||
			!unicode.IsLetter(rune(value[0])) || !unicode.IsLetter(rune(value[1])) {
			return adif.ValidationError(name, "", value,
				"%s is not a valid value for the %s field", value, name)
		}
		c.Cont = value
	case "MODE":
		c.Mode = value
	}
	return nil
}

// setBand keeps freq when it lies inside the new band, otherwise it picks
// a random frequency of the band.
func (c *Context) setBand(name, value string, freq float64) (string, float64, error) {
	b, ok := c.bands.Lookup(value)
	if !ok {
		return "", 0, adif.ValidationError(name, "", value,
			"'%s' is not a band in the ADIF specification", value)
	}
	if b.Contains(freq) {
		return value, freq, nil
	}
	f, err := c.bands.RandomFreq(b.Name, c.rnd)
	if err != nil {
		return "", 0, err
	}
	return value, f, nil
}

// setFreq keeps band when it contains the new frequency, otherwise it
// looks up the band of the frequency.
func (c *Context) setFreq(name, value, band string) (float64, string, error) {
	f, ok := adif.ParseNumber(value, false)
	if !ok {
		return 0, "", adif.ValidationError(name, "", value,
			"'%s' is not a valid frequency", value)
	}
	if b, ok := c.bands.Lookup(band); ok && b.Contains(f) {
		return f, band, nil
	}
	res, err := c.bands.BandFor(f)
	if err != nil {
		return 0, "", err
	}
	return f, res, nil
}

func parseDate(name, value string) (time.Time, error) {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return d, adif.ValidationError(name, "DATE", value,
			"'%s' is not a valid date", value)
	}
	return d, nil
}

func parseTime(name, value string) (time.Time, error) {
	if len(value) == 4 {
		value += "00"
	}
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return t, adif.ValidationError(name, "TIME", value,
			"'%s' is not a valid time", value)
	}
	return t, nil
}

func withDate(t, d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

func withTime(t, clock time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
}
