// Package callsign synthesizes plausible station callsigns from the call
// templates of DXCC entities.
//
// Letter wildcards are filled from three independent Sequencers, one for
// each wildcard group size, so templates with a single 'a' do not run out
// of letters because of templates with 'aa' or 'aaa'. Digit wildcards are
// filled with random digits.
package callsign

import (
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
)

// MaritimeMobileTemplate is used for DXCC code 0.
const MaritimeMobileTemplate = "M0aaa/MM"

// Entry is a synthesized call with the metadata of its entity.
type Entry struct {
	Call      string
	DXCC      int
	CQZone    int
	ITUZone   int
	Continent string
}

// Stats describes how often calls were repeated during a run.
type Stats struct {
	// Created is the number of distinct calls.
	Created int
	// Repeating is the number of calls created more than once.
	Repeating int
	// RepeatedTotal is the number of times an existing call was created
	// again.
	RepeatedTotal int
	// Repeated lists repeating calls in alphabetical order.
	Repeated []CallCount
}

// CallCount is a call together with the number of times it was created.
type CallCount struct {
	Call  string
	Count int
}

// Generator creates calls for one generation run.
type Generator struct {
	ents *Entities
	rnd  *rand.Rand

	seqs [3]*Sequencer

	counts        map[string]int
	entries       map[string]Entry
	repeating     int
	repeatedTotal int
}

// New creates a Generator. The random source is shared with the rest of
// the engine of one run so the whole output is reproducible.
func New(ents *Entities, rnd *rand.Rand) *Generator {
	return &Generator{
		ents:    ents,
		rnd:     rnd,
		seqs:    [3]*Sequencer{NewSequencer(), NewSequencer(), NewSequencer()},
		counts:  make(map[string]int),
		entries: make(map[string]Entry),
	}
}

// Instantiate fills the wildcards of a template and records the call in
// the repeat statistics.
func (g *Generator) Instantiate(template string) string {
	call := []byte(template)

	if strings.IndexByte(template, '#') >= 0 {
		d := byte('0' + g.rnd.IntN(10))
		for i := range call {
			if call[i] == '#' {
				call[i] = d
			}
		}
	}

	if pos := strings.IndexByte(template, 'a'); pos >= 0 {
		switch {
		case strings.Contains(template, "aaa"):
			l := g.seqs[2].Next()
			copy(call[pos:], l[:])
		case strings.Contains(template, "aa"):
			l := g.seqs[1].Next()
			copy(call[pos:], l[1:])
		default:
			l := g.seqs[0].Next()
			call[pos] = l[2]
		}
	}

	res := string(call)
	g.counts[res]++
	if n := g.counts[res]; n > 1 {
		g.repeatedTotal++
		if n == 2 {
			g.repeating++
		}
	}
	return res
}

// RandomCall creates a call for a uniformly chosen entity that is not
// deleted.
func (g *Generator) RandomCall() (Entry, error) {
	active := g.ents.active
	if len(active) == 0 {
		return Entry{}, adif.SpecificationError(
			"the entities document has no current DXCC entity with a call template",
		)
	}
	e := g.ents.byCode[active[g.rnd.IntN(len(active))]]
	return g.save(g.entry(e, e.CallTemplate, nil)), nil
}

// CallForDXCC creates a call for the given entity. DXCC 0 is maritime
// mobile.
func (g *Generator) CallForDXCC(code int) (Entry, error) {
	if code == 0 {
		return g.save(Entry{Call: g.Instantiate(MaritimeMobileTemplate)}), nil
	}
	e, err := g.current(code)
	if err != nil {
		return Entry{}, err
	}
	return g.save(g.entry(e, e.CallTemplate, nil)), nil
}

// CallForContinent creates a call for the first current entity on the
// continent.
func (g *Generator) CallForContinent(cont string) (Entry, error) {
	cont = strings.ToUpper(cont)
	for _, code := range g.ents.active {
		e := g.ents.byCode[code]
		if e.Continent == cont {
			return g.save(g.entry(e, e.CallTemplate, nil)), nil
		}
	}
	return Entry{}, adif.SequencingError("CONT", cont,
		"no current DXCC entity with a call template is on continent '%s'", cont)
}

// CallForSubdivision creates a call for a primary administrative
// subdivision, using its own template when it has one.
func (g *Generator) CallForSubdivision(dxcc int, code string) (Entry, error) {
	if dxcc == 0 {
		return Entry{}, adif.SequencingError("DXCC", "0",
			"DXCC 0 has no primary administrative subdivisions")
	}
	e, err := g.current(dxcc)
	if err != nil {
		return Entry{}, err
	}
	template := e.CallTemplate
	sub, ok := e.Subdivision(code)
	if ok && sub.CallTemplate != "" {
		template = sub.CallTemplate
	}
	return g.save(g.entry(e, template, sub)), nil
}

// Previous returns the entry of a call created earlier in the run.
func (g *Generator) Previous(call string) (Entry, bool) {
	e, ok := g.entries[call]
	return e, ok
}

// Peek returns the letters the sequencer for a wildcard group size of 1, 2
// or 3 will use next.
func (g *Generator) Peek(group int) string {
	if group < 1 || group > 3 {
		return ""
	}
	return g.seqs[group-1].Peek()
}

// Stats returns the repeat statistics collected so far.
func (g *Generator) Stats() Stats {
	res := Stats{
		Created:       len(g.counts),
		Repeating:     g.repeating,
		RepeatedTotal: g.repeatedTotal,
	}
	for call, n := range g.counts {
		if n > 1 {
			res.Repeated = append(res.Repeated, CallCount{Call: call, Count: n})
		}
	}
	sort.Slice(res.Repeated, func(i, j int) bool {
		return res.Repeated[i].Call < res.Repeated[j].Call
	})
	return res
}

func (g *Generator) current(code int) (*Entity, error) {
	e, ok := g.ents.Get(code)
	if !ok || e.Deleted {
		return nil, adif.SequencingError("DXCC", "",
			"DXCC entity code %d not found or is deleted", code)
	}
	if e.CallTemplate == "" {
		return nil, adif.SpecificationError(
			"DXCC entity %d has no call template", code)
	}
	return e, nil
}

func (g *Generator) entry(e *Entity, template string, sub *Subdivision) Entry {
	res := Entry{
		Call:      g.Instantiate(template),
		DXCC:      e.Code,
		CQZone:    e.CQZone,
		ITUZone:   e.ITUZone,
		Continent: e.Continent,
	}
	if sub != nil {
		if sub.CQZone > 0 {
			res.CQZone = sub.CQZone
		}
		if sub.ITUZone > 0 {
			res.ITUZone = sub.ITUZone
		}
	}
	return res
}

// save keeps the first entry created for a call.
func (g *Generator) save(e Entry) Entry {
	if _, ok := g.entries[e.Call]; !ok {
		g.entries[e.Call] = e
	}
	return e
}
