package callsign

import (
	"sort"
	"strings"

	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
)

// Entity describes a DXCC entity of the entities reference document.
type Entity struct {
	Code int
	Name string
	// CallTemplate contains up to three 'a' letter wildcards and '#' digit
	// wildcards, e.g. "VE#aaa".
	CallTemplate string
	Continent    string
	CQZone       int
	ITUZone      int
	Deleted      bool
	// StartDate and EndDate limit the period when the entity is valid.
	// They are empty for current entities.
	StartDate string
	EndDate   string

	Subdivisions []Subdivision
}

// Subdivision is a primary administrative subdivision of an entity.
type Subdivision struct {
	Code string
	// CallTemplate overrides the template of the entity, may be empty.
	CallTemplate string
	CQZone       int
	ITUZone      int
	Deleted      bool
	// SecondaryCodes lists valid secondary subdivisions. Only Alaska
	// carries them.
	SecondaryCodes []string
}

// Entities indexes entities by their DXCC code.
type Entities struct {
	byCode map[int]*Entity
	// active holds codes of entities that are not deleted and have a
	// template, in ascending order.
	active []int
}

// NewEntities builds the index. Duplicate codes are a specification error.
func NewEntities(ents []Entity) (*Entities, error) {
	res := Entities{byCode: make(map[int]*Entity, len(ents))}
	for i := range ents {
		e := ents[i]
		if _, ok := res.byCode[e.Code]; ok {
			return nil, adif.SpecificationError(
				"DXCC entity %d is defined twice in the entities document", e.Code,
			)
		}
		e.Continent = strings.ToUpper(strings.TrimSpace(e.Continent))
		res.byCode[e.Code] = &e
		if !e.Deleted && e.CallTemplate != "" && e.Code != 0 {
			res.active = append(res.active, e.Code)
		}
	}
	sort.Ints(res.active)
	return &res, nil
}

// Get returns an entity by its code.
func (es *Entities) Get(code int) (*Entity, bool) {
	e, ok := es.byCode[code]
	return e, ok
}

// Len returns the number of entities, deleted ones included.
func (es *Entities) Len() int {
	return len(es.byCode)
}

// Active returns the codes of usable entities in ascending order.
func (es *Entities) Active() []int {
	res := make([]int, len(es.active))
	copy(res, es.active)
	return res
}

// Subdivision finds a subdivision of the entity that is not deleted.
func (e *Entity) Subdivision(code string) (*Subdivision, bool) {
	for i := range e.Subdivisions {
		s := &e.Subdivisions[i]
		if !s.Deleted && strings.EqualFold(s.Code, code) {
			return s, true
		}
	}
	return nil, false
}
