package iotesting

import (
	"testing"

	"github.com/g3zod/CreateADIFTestFiles/pkg/callsign"
)

// Entities returns the fixture entities. They match EntitiesXML.
func Entities() []callsign.Entity {
	return []callsign.Entity{
		{
			Code: 1, Name: "Canada", CallTemplate: "VE#aaa", Continent: "NA",
			CQZone: 5, ITUZone: 2,
			Subdivisions: []callsign.Subdivision{
				{Code: "ON", CallTemplate: "VE3aaa", CQZone: 4, ITUZone: 4},
				{Code: "QC", CallTemplate: "VE2aaa", CQZone: 2, ITUZone: 4},
			},
		},
		{
			Code: 6, Name: "Alaska", CallTemplate: "KL7aa", Continent: "NA",
			CQZone: 1, ITUZone: 1,
			Subdivisions: []callsign.Subdivision{
				{
					Code:           "AK",
					SecondaryCodes: []string{"AK,Aleutians East", "AK,Anchorage"},
				},
			},
		},
		{
			Code: 7, Name: "Aldabra", CallTemplate: "VQ9a", Continent: "AF",
			CQZone: 39, ITUZone: 53, Deleted: true,
		},
		{
			Code: 223, Name: "England", CallTemplate: "G#aa", Continent: "EU",
			CQZone: 14, ITUZone: 27,
		},
		{
			Code: 291, Name: "United States of America", CallTemplate: "K#aaa",
			Continent: "NA", CQZone: 5, ITUZone: 8,
			Subdivisions: []callsign.Subdivision{
				{Code: "MA", CallTemplate: "W1aaa"},
			},
		},
	}
}

// MinimalEntities holds Canada only, with the template "VE3aaa".
func MinimalEntities() []callsign.Entity {
	return []callsign.Entity{
		{
			Code: 1, Name: "Canada", CallTemplate: "VE3aaa", Continent: "NA",
			CQZone: 5, ITUZone: 2,
		},
	}
}

// EntityIndex builds the index of Entities.
func EntityIndex(t testing.TB) *callsign.Entities {
	t.Helper()
	return mustEntities(t, Entities())
}

// MinimalEntityIndex builds the index of MinimalEntities.
func MinimalEntityIndex(t testing.TB) *callsign.Entities {
	t.Helper()
	return mustEntities(t, MinimalEntities())
}

func mustEntities(t testing.TB, ents []callsign.Entity) *callsign.Entities {
	t.Helper()
	res, err := callsign.NewEntities(ents)
	if err != nil {
		t.Fatalf("cannot build fixture entities: %v", err)
	}
	return res
}
