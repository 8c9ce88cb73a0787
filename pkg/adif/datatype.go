package adif

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the closed set of data types the engine knows how to validate.
type Kind int

const (
	KindUnknown Kind = iota
	KindCharacter
	KindString
	KindIntlCharacter
	KindIntlString
	KindMultilineString
	KindIntlMultilineString
	KindAwardListImportOnly
	KindCreditList
	KindSponsoredAwardList
	KindBoolean
	KindDigit
	KindInteger
	KindNumber
	KindPositiveInteger
	KindDate
	KindTime
	KindIotaRefNo
	KindEnumeration
	KindGridSquare
	KindGridSquareExt
	KindGridSquareList
	KindLocation
	KindPotaRefList
	KindSecondarySubdivisionList
	KindSecondaryAdministrativeSubdivisionListAlt
	KindSotaRef
	KindWwffRef
)

// kindNames maps uppercased data type names of the specification export
// to their kinds.
var kindNames = map[string]Kind{
	"CHARACTER":                                 KindCharacter,
	"STRING":                                    KindString,
	"INTLCHARACTER":                             KindIntlCharacter,
	"INTLSTRING":                                KindIntlString,
	"MULTILINESTRING":                           KindMultilineString,
	"INTLMULTILINESTRING":                       KindIntlMultilineString,
	"AWARDLIST":                                 KindAwardListImportOnly,
	"AWARDLIST IMPORT-ONLY":                     KindAwardListImportOnly,
	"CREDITLIST":                                KindCreditList,
	"SPONSOREDAWARDLIST":                        KindSponsoredAwardList,
	"BOOLEAN":                                   KindBoolean,
	"DIGIT":                                     KindDigit,
	"INTEGER":                                   KindInteger,
	"NUMBER":                                    KindNumber,
	"POSITIVEINTEGER":                           KindPositiveInteger,
	"DATE":                                      KindDate,
	"TIME":                                      KindTime,
	"IOTAREFNO":                                 KindIotaRefNo,
	"ENUMERATION":                               KindEnumeration,
	"GRIDSQUARE":                                KindGridSquare,
	"GRIDSQUAREEXT":                             KindGridSquareExt,
	"GRIDSQUARELIST":                            KindGridSquareList,
	"LOCATION":                                  KindLocation,
	"POTAREFLIST":                               KindPotaRefList,
	"SECONDARYSUBDIVISIONLIST":                  KindSecondarySubdivisionList,
	"SECONDARYADMINISTRATIVESUBDIVISIONLISTALT": KindSecondaryAdministrativeSubdivisionListAlt,
	"SOTAREF":                                   KindSotaRef,
	"WWFFREF":                                   KindWwffRef,
}

// KindByName returns the kind for a data type name, ignoring case.
func KindByName(name string) (Kind, bool) {
	k, ok := kindNames[strings.ToUpper(strings.TrimSpace(name))]
	return k, ok
}

// IsInternational reports whether values of this kind may hold characters
// outside of printable ASCII.
func (k Kind) IsInternational() bool {
	return k == KindIntlCharacter || k == KindIntlString ||
		k == KindIntlMultilineString
}

// Range is an optional numeric interval. Unset bounds are open.
type Range struct {
	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// ParseRange creates a Range from textual bounds. Empty strings leave the
// corresponding bound unset.
func ParseRange(min, max string) (Range, error) {
	var res Range
	var err error
	if min = strings.TrimSpace(min); min != "" {
		if res.Min, err = strconv.ParseFloat(min, 64); err != nil {
			return res, err
		}
		res.HasMin = true
	}
	if max = strings.TrimSpace(max); max != "" {
		if res.Max, err = strconv.ParseFloat(max, 64); err != nil {
			return res, err
		}
		res.HasMax = true
	}
	return res, nil
}

// IsSet reports whether at least one bound is given.
func (r Range) IsSet() bool {
	return r.HasMin || r.HasMax
}

// Contains checks v against the set bounds.
func (r Range) Contains(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	if r.HasMin && v < r.Min {
		return false
	}
	if r.HasMax && v > r.Max {
		return false
	}
	return true
}

// DataType describes one data type of the specification together with the
// validation function bound to its kind.
type DataType struct {
	// Name is the uppercased name, e.g. "POSITIVEINTEGER".
	Name string
	// Indicator is the single-letter Data Type Indicator, 0 when the data
	// type has none.
	Indicator byte
	Kind      Kind
	Range     Range

	check checkFunc
}

// NewDataType binds the validation function for the given name. An unknown
// name is a specification error.
func NewDataType(name string, indicator byte, rng Range) (*DataType, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	kind, ok := kindNames[name]
	if !ok {
		return nil, SpecificationError(
			"data type '%s' is not supported", name,
		)
	}
	res := DataType{
		Name:      name,
		Indicator: indicator,
		Kind:      kind,
		Range:     rng,
		check:     checks[kind],
	}
	if res.check == nil {
		return nil, InternalError("no validator for data type '%s'", name)
	}
	return &res, nil
}

// Validate checks a value of a field against the rules of the data type.
// The enumeration is the name declared by the field, and enums provides
// lookups for the enumeration-backed rules.
func (dt *DataType) Validate(
	field, value, enumeration string,
	tagStyle bool,
	enums Enumerations,
) error {
	c := checkCtx{
		dt:          dt,
		field:       field,
		value:       value,
		enumeration: enumeration,
		tagStyle:    tagStyle,
		enums:       enums,
	}
	return dt.check(&c)
}
