package adif

import (
	"math"
	"math/rand/v2"
	"strings"
)

// Band is an amateur radio band with its frequency limits in MHz.
type Band struct {
	Name  string
	Lower float64
	Upper float64
}

// Contains reports whether freq lies within the band limits.
func (b Band) Contains(freq float64) bool {
	return freq >= b.Lower && freq <= b.Upper
}

// BandTable keeps bands in the order of the specification export.
type BandTable struct {
	bands  []Band
	byName map[string]int
}

// NewBandTable creates a table from bands. Names are matched
// case-insensitively, duplicates and inverted limits are specification
// errors.
func NewBandTable(bands []Band) (*BandTable, error) {
	if len(bands) == 0 {
		return nil, SpecificationError("the Band enumeration has no records")
	}
	res := BandTable{
		bands:  make([]Band, 0, len(bands)),
		byName: make(map[string]int, len(bands)),
	}
	for _, b := range bands {
		key := strings.ToLower(b.Name)
		if _, ok := res.byName[key]; ok {
			return nil, SpecificationError("band '%s' is defined twice", b.Name)
		}
		if b.Lower > b.Upper {
			return nil, SpecificationError(
				"band '%s' has lower limit %s above upper limit %s",
				b.Name, FormatNumber(b.Lower), FormatNumber(b.Upper),
			)
		}
		res.byName[key] = len(res.bands)
		res.bands = append(res.bands, b)
	}
	return &res, nil
}

// Bands returns a copy of all bands.
func (bt *BandTable) Bands() []Band {
	res := make([]Band, len(bt.bands))
	copy(res, bt.bands)
	return res
}

// Lookup finds a band by name, ignoring case.
func (bt *BandTable) Lookup(name string) (Band, bool) {
	i, ok := bt.byName[strings.ToLower(name)]
	if !ok {
		return Band{}, false
	}
	return bt.bands[i], true
}

// BandFor returns the name of the first band containing freq.
func (bt *BandTable) BandFor(freq float64) (string, error) {
	if math.IsNaN(freq) || math.IsInf(freq, 0) {
		return "", ValidationError("FREQ", "NUMBER", FormatNumber(freq),
			"frequency is not a number")
	}
	for _, b := range bt.bands {
		if b.Contains(freq) {
			return b.Name, nil
		}
	}
	return "", ValidationError("FREQ", "NUMBER", FormatFreq(freq),
		"frequency %s MHz is not within an amateur radio band", FormatFreq(freq))
}

// RandomBand picks a band uniformly.
func (bt *BandTable) RandomBand(r *rand.Rand) Band {
	return bt.bands[r.IntN(len(bt.bands))]
}

// RandomFreq picks a frequency uniformly within the named band, rounded to
// 1 Hz.
func (bt *BandTable) RandomFreq(name string, r *rand.Rand) (float64, error) {
	b, ok := bt.Lookup(name)
	if !ok {
		return 0, ValidationError("BAND", "ENUMERATION", name,
			"'%s' is not a valid band", name)
	}
	f := RoundFreq(b.Lower + r.Float64()*(b.Upper-b.Lower))
	if f > b.Upper {
		f = b.Upper
	}
	return f, nil
}

// BandForContest returns the band a contest takes place on, based on the
// contest identifier. Unknown contests default to 20m.
func BandForContest(contestID string) string {
	switch id := strings.ToUpper(contestID); {
	case strings.Contains(id, "VHF"):
		return "2m"
	case strings.Contains(id, "UHF"):
		return "70cm"
	case strings.Contains(id, "UKSMG"):
		return "6m"
	case strings.Contains(id, "160"):
		return "160m"
	case strings.Contains(id, "80M"),
		strings.Contains(id, "RSGB-AFS"),
		strings.Contains(id, "RSGB-CLUB-CALLS"),
		strings.Contains(id, "RSGB-ROPOCO"):
		return "80m"
	case strings.Contains(id, "40M"):
		return "40m"
	case strings.Contains(id, "10"),
		strings.Contains(id, "28"),
		strings.Contains(id, "TEN"):
		return "10m"
	default:
		return "20m"
	}
}

// Mode is a transmission mode with its submodes.
type Mode struct {
	Name     string
	Submodes []string
}
