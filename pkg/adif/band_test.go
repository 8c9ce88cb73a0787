package adif_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/g3zod/CreateADIFTestFiles/internal/iotesting"
	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandFor(t *testing.T) {
	bands := iotesting.Catalog(t).Bands

	tests := []struct {
		freq float64
		band string
		ok   bool
	}{
		{14.0, "20m", true},
		{14.35, "20m", true},
		{7.074, "40m", true},
		{146, "2m", true},
		{14.36, "", false},
		{math.NaN(), "", false},
		{math.Inf(1), "", false},
	}
	for _, v := range tests {
		band, err := bands.BandFor(v.freq)
		assert.Equal(t, v.band, band)
		if v.ok {
			assert.Nil(t, err)
		} else {
			assert.True(t, adif.IsValidation(err))
		}
	}
}

func TestRandomFreq(t *testing.T) {
	bands := iotesting.Catalog(t).Bands
	r := rand.New(rand.NewPCG(1, 2))

	b20, ok := bands.Lookup("20M")
	require.True(t, ok)
	for range 1000 {
		f, err := bands.RandomFreq("20m", r)
		require.Nil(t, err)
		assert.True(t, b20.Contains(f), f)
		assert.Equal(t, adif.RoundFreq(f), f)
	}

	_, err := bands.RandomFreq("11m", r)
	assert.True(t, adif.IsValidation(err))

	seen := make(map[string]int)
	for range 300 {
		seen[bands.RandomBand(r).Name]++
	}
	assert.Len(t, seen, 3)
}

func TestNewBandTable(t *testing.T) {
	_, err := adif.NewBandTable(nil)
	assert.True(t, adif.IsSpecification(err))

	_, err = adif.NewBandTable([]adif.Band{
		{Name: "20m", Lower: 14, Upper: 14.35},
		{Name: "20M", Lower: 14, Upper: 14.35},
	})
	assert.True(t, adif.IsSpecification(err))

	_, err = adif.NewBandTable([]adif.Band{{Name: "20m", Lower: 15, Upper: 14}})
	assert.True(t, adif.IsSpecification(err))
}

func TestBandForContest(t *testing.T) {
	tests := []struct {
		contest string
		band    string
	}{
		{"ARRL-VHF-JAN", "2m"},
		{"ARRL-UHF-AUG", "70cm"},
		{"UKSMG-6M-MARATHON", "6m"},
		{"ARRL-160", "160m"},
		{"RSGB-80M-CC", "80m"},
		{"RSGB-ROPOCO", "80m"},
		{"RSGB-AFS-CW", "80m"},
		{"BARTG-SPRINT-40M", "40m"},
		{"ARRL-10", "10m"},
		{"TEN-TEN", "10m"},
		{"CQ-WW-CW", "20m"},
		{"", "20m"},
	}
	for _, v := range tests {
		assert.Equal(t, v.band, adif.BandForContest(v.contest), v.contest)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		s        string
		integral bool
		val      float64
		ok       bool
	}{
		{"14.074", false, 14.074, true},
		{"-3", true, -3, true},
		{"3.", false, 3, true},
		{".5", false, 0.5, true},
		{"7.000", true, 7, true},
		{"7.010", true, 0, false},
		{"+3", false, 0, false},
		{"1e3", false, 0, false},
		{"1.2.3", false, 0, false},
		{"-", false, 0, false},
		{"", false, 0, false},
		{" 1", false, 0, false},
	}
	for _, v := range tests {
		val, ok := adif.ParseNumber(v.s, v.integral)
		assert.Equal(t, v.ok, ok, v.s)
		assert.Equal(t, v.val, val, v.s)
	}

	assert.Equal(t, "14.074", adif.FormatFreq(14.0740004))
	assert.Equal(t, "144", adif.FormatNumber(144))
}
