// Package iocatalog reads the ADIF specification export (all.xml) and
// builds the catalog used to generate and check test QSOs.
package iocatalog

import (
	"encoding/xml"
	"log/slog"
	"strings"

	"github.com/g3zod/CreateADIFTestFiles/internal/iofs"
	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
	"github.com/g3zod/CreateADIFTestFiles/pkg/config"
	"github.com/gnames/gnlib"
)

// Column names of the export tables.
const (
	colDataType   = "Data Type"
	colIndicator  = "Data Type Indicator"
	colFieldName  = "Field Name"
	colEnumName   = "Enumeration"
	colHeader     = "Header Field"
	colMinimum    = "Minimum Value"
	colMaximum    = "Maximum Value"
	enumNameValue = "Enumeration Name"
)

type xmlValue struct {
	Name string `xml:"name,attr"`
	Text string `xml:",chardata"`
}

type xmlRecord struct {
	Values []xmlValue `xml:"value"`
}

type xmlEnumeration struct {
	Name    string      `xml:"name,attr"`
	Records []xmlRecord `xml:"record"`
}

type xmlExport struct {
	XMLName      xml.Name         `xml:"adif"`
	Version      string           `xml:"version,attr"`
	Status       string           `xml:"status,attr"`
	Created      string           `xml:"created,attr"`
	DataTypes    []xmlRecord      `xml:"dataTypes>record"`
	Enumerations []xmlEnumeration `xml:"enumerations>enumeration"`
	Fields       []xmlRecord      `xml:"fields>record"`
}

func (r xmlRecord) columns() map[string]string {
	res := make(map[string]string, len(r.Values))
	for _, v := range r.Values {
		res[v.Name] = strings.TrimSpace(v.Text)
	}
	return res
}

// value returns the enumeration value, which is the column after the
// enumeration name.
func (r xmlRecord) value() string {
	for i, v := range r.Values {
		if v.Name != enumNameValue {
			continue
		}
		if i+1 < len(r.Values) {
			return strings.TrimSpace(r.Values[i+1].Text)
		}
	}
	if len(r.Values) > 1 {
		return strings.TrimSpace(r.Values[1].Text)
	}
	return ""
}

// Load reads the export at path and builds its catalog.
func Load(path string) (*adif.Catalog, error) {
	data, err := iofs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Build(path, data)
}

// Build creates the catalog from the content of an export. The path is
// used in error messages only. Every call returns an independent catalog.
func Build(path string, data []byte) (*adif.Catalog, error) {
	src, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	if err = checkVersion(path, src.Version); err != nil {
		return nil, err
	}
	switch src.Status {
	case "Draft", "Proposed", "Released":
	default:
		return nil, CatalogStatusError(path, src.Status)
	}

	res, err := adif.NewCatalog(src)
	if err != nil {
		return nil, CatalogBuildError(path, err)
	}
	for _, w := range res.Warnings {
		slog.Warn("Specification export problem", "path", path, "error", w)
	}
	slog.Debug("Loaded ADIF specification",
		"path", path,
		"version", res.Version,
		"status", res.Status,
		"fields", len(res.FieldNames()),
		"enumerations", len(res.Enumerations),
	)
	return res, nil
}

// Parse converts the export into the raw source of a catalog.
func Parse(path string, data []byte) (adif.Source, error) {
	var doc xmlExport
	if err := xml.Unmarshal(data, &doc); err != nil {
		return adif.Source{}, CatalogParseError(path, err)
	}

	res := adif.Source{
		Version: strings.TrimSpace(doc.Version),
		Status:  strings.TrimSpace(doc.Status),
	}

	for i, r := range doc.DataTypes {
		cols := r.columns()
		rng, err := adif.ParseRange(cols[colMinimum], cols[colMaximum])
		if err != nil {
			return res, CatalogRecordError(path, "dataTypes", i+1, err)
		}
		res.DataTypes = append(res.DataTypes, adif.DataTypeSpec{
			Name:      cols[colDataType],
			Indicator: cols[colIndicator],
			Range:     rng,
		})
	}

	for i, r := range doc.Fields {
		cols := r.columns()
		rng, err := adif.ParseRange(cols[colMinimum], cols[colMaximum])
		if err != nil {
			return res, CatalogRecordError(path, "fields", i+1, err)
		}
		res.Fields = append(res.Fields, adif.FieldSpec{
			Name:        cols[colFieldName],
			Header:      isTrue(cols[colHeader]),
			DataType:    dataTypeList(cols[colDataType]),
			Enumeration: cols[colEnumName],
			Range:       rng,
		})
	}

	for _, e := range doc.Enumerations {
		spec := adif.EnumerationSpec{Name: strings.TrimSpace(e.Name)}
		for _, r := range e.Records {
			spec.Records = append(spec.Records, adif.EnumerationRecord{
				Value:   r.value(),
				Columns: r.columns(),
			})
		}
		res.Enumerations = append(res.Enumerations, spec)
	}
	return res, nil
}

// dataTypeList removes the spaces after commas in a field that accepts
// more than one data type ("CreditList, AwardList").
func dataTypeList(s string) string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ",")
}

func isTrue(s string) bool {
	return strings.EqualFold(s, "true") || strings.EqualFold(s, "y")
}

func checkVersion(path, version string) error {
	v := "v" + version
	if !gnlib.IsVersion(v) {
		return CatalogVersionError(path, version)
	}
	if gnlib.CmpVersion(v, config.MinVersionADIF) < 0 {
		return CatalogTooOldError(path, version)
	}
	return nil
}
