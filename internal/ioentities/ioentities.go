// Package ioentities reads the DXCC entities document that holds the
// callsign templates, continents and zones of every entity.
package ioentities

import (
	"encoding/xml"
	"log/slog"
	"strings"

	"github.com/g3zod/CreateADIFTestFiles/internal/iofs"
	"github.com/g3zod/CreateADIFTestFiles/pkg/callsign"
)

type xmlSecondary struct {
	Code string `xml:"code,attr"`
}

type xmlPrimary struct {
	Code         string         `xml:"code,attr"`
	CallTemplate string         `xml:"callTemplate,attr"`
	CQZ          int            `xml:"cqz,attr"`
	ITUZ         int            `xml:"ituz,attr"`
	Deleted      bool           `xml:"deleted,attr"`
	Secondary    []xmlSecondary `xml:"sas"`
}

type xmlEntity struct {
	Code         int          `xml:"code,attr"`
	Name         string       `xml:"name,attr"`
	CallTemplate string       `xml:"callTemplate,attr"`
	Continent    string       `xml:"continent,attr"`
	CQZ          int          `xml:"cqz,attr"`
	ITUZ         int          `xml:"ituz,attr"`
	Deleted      bool         `xml:"deleted,attr"`
	StartDate    string       `xml:"startDate,attr"`
	EndDate      string       `xml:"endDate,attr"`
	Primary      []xmlPrimary `xml:"pas"`
}

type xmlDocument struct {
	XMLName  xml.Name    `xml:"adif"`
	Entities []xmlEntity `xml:"dxccEntities>dxccEntity"`
}

// Load reads the entities document at path and indexes its entities.
func Load(path string) (*callsign.Entities, error) {
	data, err := iofs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Build(path, data)
}

// Build indexes the entities of a document. The path is used in error
// messages only.
func Build(path string, data []byte) (*callsign.Entities, error) {
	ents, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	res, err := callsign.NewEntities(ents)
	if err != nil {
		return nil, EntitiesBuildError(path, err)
	}
	slog.Debug("Loaded DXCC entities", "path", path, "entities", res.Len())
	return res, nil
}

// Parse converts the entities document into entities.
func Parse(path string, data []byte) ([]callsign.Entity, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, EntitiesParseError(path, err)
	}
	if len(doc.Entities) == 0 {
		return nil, EntitiesEmptyError(path)
	}

	res := make([]callsign.Entity, 0, len(doc.Entities))
	for _, e := range doc.Entities {
		ent := callsign.Entity{
			Code:         e.Code,
			Name:         strings.TrimSpace(e.Name),
			CallTemplate: strings.TrimSpace(e.CallTemplate),
			Continent:    strings.TrimSpace(e.Continent),
			CQZone:       e.CQZ,
			ITUZone:      e.ITUZ,
			Deleted:      e.Deleted,
			StartDate:    e.StartDate,
			EndDate:      e.EndDate,
		}
		for _, p := range e.Primary {
			sub := callsign.Subdivision{
				Code:         strings.TrimSpace(p.Code),
				CallTemplate: strings.TrimSpace(p.CallTemplate),
				CQZone:       p.CQZ,
				ITUZone:      p.ITUZ,
				Deleted:      p.Deleted,
			}
			for _, s := range p.Secondary {
				sub.SecondaryCodes = append(sub.SecondaryCodes, s.Code)
			}
			ent.Subdivisions = append(ent.Subdivisions, sub)
		}
		res = append(res, ent)
	}
	return res, nil
}
