// Package iotesting provides shared fixtures for tests: a small ADIF
// specification, a small entities document and helpers for temporary
// directories.
package iotesting

import (
	"testing"

	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
)

// SpecVersion is the ADIF version of the fixture specification.
const SpecVersion = "3.1.5"

func rng(min, max string) adif.Range {
	r, err := adif.ParseRange(min, max)
	if err != nil {
		panic(err)
	}
	return r
}

func rec(value string, cols ...string) adif.EnumerationRecord {
	res := adif.EnumerationRecord{Value: value, Columns: make(map[string]string)}
	for i := 0; i+1 < len(cols); i += 2 {
		res.Columns[cols[i]] = cols[i+1]
	}
	return res
}

func plain(name string, values ...string) adif.EnumerationSpec {
	res := adif.EnumerationSpec{Name: name}
	for _, v := range values {
		res.Records = append(res.Records, rec(v))
	}
	return res
}

func dataTypes() []adif.DataTypeSpec {
	return []adif.DataTypeSpec{
		{Name: "AwardList"},
		{Name: "Boolean", Indicator: "B"},
		{Name: "Character"},
		{Name: "CreditList"},
		{Name: "Date", Indicator: "D"},
		{Name: "Digit"},
		{Name: "Enumeration", Indicator: "E"},
		{Name: "GridSquare"},
		{Name: "GridSquareExt"},
		{Name: "GridSquareList"},
		{Name: "Integer"},
		{Name: "IntlCharacter"},
		{Name: "IntlMultilineString", Indicator: "G"},
		{Name: "IntlString", Indicator: "I"},
		{Name: "IOTARefNo"},
		{Name: "Location", Indicator: "L"},
		{Name: "MultilineString", Indicator: "M"},
		{Name: "Number", Indicator: "N"},
		{Name: "POTARefList"},
		{Name: "PositiveInteger", Range: rng("1", "")},
		{Name: "SecondaryAdministrativeSubdivisionListAlt"},
		{Name: "SecondarySubdivisionList"},
		{Name: "SOTARef"},
		{Name: "SponsoredAwardList"},
		{Name: "String", Indicator: "S"},
		{Name: "Time", Indicator: "T"},
		{Name: "WWFFRef"},
	}
}

func fields() []adif.FieldSpec {
	return []adif.FieldSpec{
		{Name: "ADIF_VER", Header: true, DataType: "String"},
		{Name: "CREATED_TIMESTAMP", Header: true, DataType: "String"},
		{Name: "PROGRAMID", Header: true, DataType: "String"},
		{Name: "PROGRAMVERSION", Header: true, DataType: "String"},
		{Name: "USERDEFn", Header: true, DataType: "String"},
		{Name: "AGE", DataType: "Number", Range: rng("0", "120")},
		{Name: "AWARD_SUBMITTED", DataType: "SponsoredAwardList"},
		{Name: "BAND", DataType: "Enumeration", Enumeration: "Band"},
		{Name: "BAND_RX", DataType: "Enumeration", Enumeration: "Band"},
		{Name: "CALL", DataType: "String"},
		{Name: "CNTY_ALT", DataType: "SecondaryAdministrativeSubdivisionListAlt"},
		{Name: "COMMENT", DataType: "String"},
		{Name: "COMMENT_INTL", DataType: "IntlString"},
		{Name: "CONT", DataType: "Enumeration", Enumeration: "Continent"},
		{Name: "CONTEST_ID", DataType: "String"},
		{Name: "CQZ", DataType: "PositiveInteger", Range: rng("1", "40")},
		{Name: "CREDIT_SUBMITTED", DataType: "CreditList,AwardList"},
		{Name: "DXCC", DataType: "Enumeration", Enumeration: "DXCC_Entity_Code"},
		{Name: "FREQ", DataType: "Number"},
		{Name: "FREQ_RX", DataType: "Number"},
		{Name: "GRIDSQUARE", DataType: "GridSquare"},
		{Name: "GRIDSQUARE_EXT", DataType: "GridSquareExt"},
		{Name: "IOTA", DataType: "IOTARefNo"},
		{Name: "ITUZ", DataType: "PositiveInteger", Range: rng("1", "90")},
		{Name: "K_INDEX", DataType: "Integer", Range: rng("0", "9")},
		{Name: "LAT", DataType: "Location"},
		{Name: "LON", DataType: "Location"},
		{Name: "MODE", DataType: "Enumeration", Enumeration: "Mode"},
		{Name: "NAME", DataType: "String"},
		{Name: "NAME_INTL", DataType: "IntlString"},
		{Name: "NOTES", DataType: "MultilineString"},
		{Name: "NOTES_INTL", DataType: "IntlMultilineString"},
		{Name: "POTA_REF", DataType: "POTARefList"},
		{Name: "QSL_RCVD", DataType: "Enumeration", Enumeration: "QSL_Rcvd"},
		{Name: "QSO_DATE", DataType: "Date"},
		{Name: "QSO_DATE_OFF", DataType: "Date"},
		{Name: "QSO_RANDOM", DataType: "Boolean"},
		{Name: "SOTA_REF", DataType: "SOTARef"},
		{
			Name:        "STATE",
			DataType:    "Enumeration",
			Enumeration: "Primary_Administrative_Subdivision[DXCC]",
		},
		{Name: "SWL", DataType: "Boolean"},
		{Name: "TIME_OFF", DataType: "Time"},
		{Name: "TIME_ON", DataType: "Time"},
		{Name: "VUCC_GRIDS", DataType: "GridSquareList"},
		{Name: "WWFF_REF", DataType: "WWFFRef"},
	}
}

func enumerations() []adif.EnumerationSpec {
	return []adif.EnumerationSpec{
		{
			Name: "Band",
			Records: []adif.EnumerationRecord{
				rec("40m", adif.ColBand, "40m",
					adif.ColLowerFreq, "7.0", adif.ColUpperFreq, "7.3"),
				rec("20m", adif.ColBand, "20m",
					adif.ColLowerFreq, "14.0", adif.ColUpperFreq, "14.35"),
				rec("2m", adif.ColBand, "2m",
					adif.ColLowerFreq, "144", adif.ColUpperFreq, "148"),
			},
		},
		{
			Name: "Mode",
			Records: []adif.EnumerationRecord{
				rec("CW", adif.ColMode, "CW", adif.ColSubmodes, "PCW"),
				rec("MFSK", adif.ColMode, "MFSK", adif.ColSubmodes, "FT4, JS8"),
				rec("SSB", adif.ColMode, "SSB", adif.ColSubmodes, "LSB,USB"),
				rec("AMTORFEC", adif.ColMode, "AMTORFEC",
					adif.ColImportOnly, "true"),
			},
		},
		plain("Continent", "NA", "SA", "EU", "AF", "OC", "AS", "AN"),
		plain("Credit", "DXCC", "DXCC_BAND", "WAS", "IOTA"),
		plain("QSL_Medium", "CARD", "EQSL", "LOTW"),
		plain("Award_Sponsor", "ADIF_", "ARRL_", "CQ_", "DARC_"),
		plain("DXCC_Entity_Code", "0", "1", "6", "7", "223", "291"),
		plain("QSL_Rcvd", "Y", "N", "R", "I", "V"),
		{
			Name: "Primary_Administrative_Subdivision",
			Records: []adif.EnumerationRecord{
				rec("ON", adif.ColDXCCCode, "1"),
				rec("QC", adif.ColDXCCCode, "1"),
				rec("MA", adif.ColDXCCCode, "291"),
				rec("AK", adif.ColDXCCCode, "6"),
				rec("MA", adif.ColDXCCCode, "291", adif.ColDeleted, "true"),
			},
		},
		plain("Secondary_Administrative_Subdivision_Alt",
			"NZ_Regions:Auckland", "NZ_Regions:Canterbury", "JA_Cities:100101"),
	}
}

// Source returns the fixture specification: three bands (40m, 20m, 2m),
// four modes of which one is import-only, and a selection of fields that
// cover every data type.
func Source() adif.Source {
	return adif.Source{
		Version:      SpecVersion,
		Status:       "Released",
		DataTypes:    dataTypes(),
		Fields:       fields(),
		Enumerations: enumerations(),
	}
}

// MinimalSource is Source reduced to one band (20m, 14.0-14.35 MHz) and
// one mode (SSB).
func MinimalSource() adif.Source {
	res := Source()
	for i := range res.Enumerations {
		e := &res.Enumerations[i]
		switch e.Name {
		case "Band":
			e.Records = e.Records[1:2]
		case "Mode":
			e.Records = e.Records[2:3]
		}
	}
	return res
}

// Catalog builds the catalog of Source.
func Catalog(t testing.TB) *adif.Catalog {
	t.Helper()
	return mustCatalog(t, Source())
}

// MinimalCatalog builds the catalog of MinimalSource.
func MinimalCatalog(t testing.TB) *adif.Catalog {
	t.Helper()
	return mustCatalog(t, MinimalSource())
}

func mustCatalog(t testing.TB, src adif.Source) *adif.Catalog {
	t.Helper()
	cat, err := adif.NewCatalog(src)
	if err != nil {
		t.Fatalf("cannot build fixture catalog: %v", err)
	}
	return cat
}
