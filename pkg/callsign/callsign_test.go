package callsign_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
	"github.com/g3zod/CreateADIFTestFiles/pkg/callsign"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntities(t *testing.T) *callsign.Entities {
	t.Helper()
	ents, err := callsign.NewEntities([]callsign.Entity{
		{
			Code: 1, Name: "Canada", CallTemplate: "VE#aaa", Continent: "NA",
			CQZone: 5, ITUZone: 2,
			Subdivisions: []callsign.Subdivision{
				{Code: "ON", CallTemplate: "VE3aaa", CQZone: 4, ITUZone: 4},
				{Code: "QC", CallTemplate: "VE2aaa"},
				{Code: "NU"},
			},
		},
		{
			Code: 223, Name: "England", CallTemplate: "G#aa", Continent: "eu",
			CQZone: 14, ITUZone: 27,
		},
		{
			Code: 7, Name: "Aldabra", CallTemplate: "VQ9a", Continent: "AF",
			CQZone: 39, ITUZone: 53, Deleted: true,
		},
		{Code: 999, Name: "Nowhere", Continent: "AS"},
	})
	require.Nil(t, err)
	return ents
}

func newGen(t *testing.T) *callsign.Generator {
	return callsign.New(testEntities(t), rand.New(rand.NewPCG(1, 1)))
}

func TestSequencerCycle(t *testing.T) {
	seq := callsign.NewSequencer()
	first := seq.Next()
	assert.Equal(t, "AAA", string(first[:]))
	second := seq.Next()
	assert.Equal(t, "AAB", string(second[:]))

	for range callsign.SequencerCycle - 2 {
		seq.Next()
	}
	assert.Equal(t, "AAA", seq.Peek())
}

func TestSequencerCarry(t *testing.T) {
	seq := callsign.NewSequencer()
	for range 26 {
		seq.Next()
	}
	assert.Equal(t, "ABA", seq.Peek())
	for range 26*26 - 26 {
		seq.Next()
	}
	assert.Equal(t, "BAA", seq.Peek())
}

func TestGroupsIndependent(t *testing.T) {
	g := newGen(t)
	for range 100 {
		g.Instantiate("W1aaa")
	}
	assert.Equal(t, "AAA", g.Peek(1))
	assert.Equal(t, "AAA", g.Peek(2))
	assert.Equal(t, "ADW", g.Peek(3))

	assert.Equal(t, "G2AA", g.Instantiate("G2aa"))
	assert.Equal(t, "G2AB", g.Instantiate("G2aa"))
	assert.Equal(t, "W1A", g.Instantiate("W1a"))
	assert.Equal(t, "W1B", g.Instantiate("W1a"))
	assert.Equal(t, "ADW", g.Peek(3))
	assert.Equal(t, "", g.Peek(4))
}

func TestUniqueWithinCycle(t *testing.T) {
	g := newGen(t)
	seen := make(map[string]struct{}, callsign.SequencerCycle)
	for range callsign.SequencerCycle {
		seen[g.Instantiate("K1aaa")] = struct{}{}
	}
	assert.Len(t, seen, callsign.SequencerCycle)
	st := g.Stats()
	assert.Equal(t, callsign.SequencerCycle, st.Created)
	assert.Equal(t, 0, st.Repeating)

	assert.Equal(t, "K1AAA", g.Instantiate("K1aaa"))
	st = g.Stats()
	assert.Equal(t, 1, st.Repeating)
	assert.Equal(t, 1, st.RepeatedTotal)
	require.Len(t, st.Repeated, 1)
	assert.Equal(t, callsign.CallCount{Call: "K1AAA", Count: 2}, st.Repeated[0])
}

func TestDigitWildcard(t *testing.T) {
	g := newGen(t)
	for range 50 {
		call := g.Instantiate("#X#aaa")
		assert.Equal(t, call[0], call[2], call)
		assert.True(t, call[0] >= '0' && call[0] <= '9', call)
		assert.NotContains(t, call, "a")
	}
}

func TestRandomCall(t *testing.T) {
	g := newGen(t)
	for range 200 {
		e, err := g.RandomCall()
		require.Nil(t, err)
		assert.Contains(t, []int{1, 223}, e.DXCC)
		prev, ok := g.Previous(e.Call)
		assert.True(t, ok)
		assert.Equal(t, e.DXCC, prev.DXCC)
	}

	ents, err := callsign.NewEntities([]callsign.Entity{
		{Code: 7, CallTemplate: "VQ9a", Deleted: true},
	})
	require.Nil(t, err)
	g = callsign.New(ents, rand.New(rand.NewPCG(1, 1)))
	_, err = g.RandomCall()
	assert.True(t, adif.IsSpecification(err))
}

func TestCallForDXCC(t *testing.T) {
	tests := []struct {
		msg      string
		code     int
		prefix   string
		cont     string
		errKind adif.ErrorKind
	}{
		{"canada", 1, "VE", "NA", 0},
		{"england", 223, "G", "EU", 0},
		{"maritime mobile", 0, "M0", "", 0},
		{"deleted", 7, "", "", adif.Sequencing},
		{"unknown", 4242, "", "", adif.Sequencing},
		{"no template", 999, "", "", adif.Specification},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			g := newGen(t)
			e, err := g.CallForDXCC(v.code)
			if v.errKind != 0 {
				assert.Equal(t, v.errKind, adif.KindOf(err))
				return
			}
			require.Nil(t, err)
			assert.True(t, strings.HasPrefix(e.Call, v.prefix), e.Call)
			assert.Equal(t, v.code, e.DXCC)
			assert.Equal(t, v.cont, e.Continent)
		})
	}

	g := newGen(t)
	e, err := g.CallForDXCC(0)
	require.Nil(t, err)
	assert.Equal(t, "M0AAA/MM", e.Call)
}

func TestCallForContinent(t *testing.T) {
	g := newGen(t)
	e, err := g.CallForContinent("eu")
	require.Nil(t, err)
	assert.Equal(t, 223, e.DXCC)

	_, err = g.CallForContinent("AF")
	assert.True(t, adif.IsSequencing(err))
}

func TestCallForSubdivision(t *testing.T) {
	g := newGen(t)

	e, err := g.CallForSubdivision(1, "ON")
	require.Nil(t, err)
	assert.Equal(t, "VE3AAA", e.Call)
	assert.Equal(t, 4, e.CQZone)
	assert.Equal(t, 4, e.ITUZone)

	e, err = g.CallForSubdivision(1, "qc")
	require.Nil(t, err)
	assert.Equal(t, "VE2AAB", e.Call)
	assert.Equal(t, 5, e.CQZone)

	e, err = g.CallForSubdivision(1, "NU")
	require.Nil(t, err)
	assert.True(t, strings.HasPrefix(e.Call, "VE"))
	assert.True(t, strings.HasSuffix(e.Call, "AAC"), e.Call)

	_, err = g.CallForSubdivision(0, "ON")
	assert.True(t, adif.IsSequencing(err))
	_, err = g.CallForSubdivision(7, "ON")
	assert.True(t, adif.IsSequencing(err))
}

func TestNewEntitiesDuplicate(t *testing.T) {
	_, err := callsign.NewEntities([]callsign.Entity{
		{Code: 1, CallTemplate: "VE#aaa"},
		{Code: 1, CallTemplate: "VE#aaa"},
	})
	assert.True(t, adif.IsSpecification(err))
}

func TestPreviousUnknown(t *testing.T) {
	g := newGen(t)
	_, ok := g.Previous("N0CALL")
	assert.False(t, ok)
}
