package emitter

import (
	"strconv"
	"strings"

	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

var lineBreaks = strings.NewReplacer("\r\n", "\r\n", "\r", "\r\n", "\n", "\r\n")

// encode escapes XML text and attribute content in ADX output.
func (e *Emitter) encode(s string) string {
	if e.tagStyle() {
		return s
	}
	return xmlEscaper.Replace(s)
}

// skip tells if a field is left out of the output: _INTL fields in ADI,
// and in ADX the plain fields that have an _INTL counterpart.
func (e *Emitter) skip(nameUpper string) bool {
	if e.tagStyle() {
		return strings.HasSuffix(nameUpper, adif.IntlSuffix)
	}
	return e.reg.HasIntlCounterpart(nameUpper)
}

// skipKind is the rule of skip for APP and USERDEF fields, which is
// decided by their data type.
func (e *Emitter) skipKind(k adif.Kind) bool {
	if e.tagStyle() {
		return k.IsInternational()
	}
	return k == adif.KindString || k == adif.KindMultilineString
}

// Field emits a field defined by the specification or declared with
// DeclareUserField. The value may be a {NAME} macro resolved against the
// current QSO.
func (e *Emitter) Field(name, value string) error {
	return e.TypedField(name, value, 0)
}

// TypedField is Field with an explicit Data Type Indicator, which must
// match the data type of the field. Zero means no indicator.
func (e *Emitter) TypedField(name, value string, indicator byte) error {
	if name == "" {
		return adif.SequencingError("", value, "name parameter is zero-length")
	}
	if value == "" {
		return adif.SequencingError(name, "", "value parameter is zero-length")
	}
	nameUpper := strings.ToUpper(name)

	value, err := e.qso.Substitute(nameUpper, value)
	if err != nil {
		return err
	}

	def, known := e.reg.Lookup(nameUpper)
	isHeader := known && def.Header
	if isHeader && !e.cfg.HasHeaderFields {
		return adif.SequencingError(nameUpper, value,
			"Trying to add a header field to a file without header fields")
	}
	if !known && !e.skip(nameUpper) {
		return adif.SequencingError(nameUpper, value,
			"Unknown ADIF field or undeclared USERDEF field")
	}

	if isHeader {
		if err = e.ensureFile(); err != nil {
			return err
		}
		if e.state != InHeader {
			return adif.SequencingError(nameUpper, value,
				"Header field not allowed in record section")
		}
	} else if err = e.ensureRecords(); err != nil {
		return err
	}

	if e.Emitted(nameUpper) {
		return adif.SequencingError(nameUpper, value,
			"Field name already included in record")
	}
	if e.skip(nameUpper) {
		return nil
	}

	switch def.Variant {
	case adif.SpecDefined:
		if indicator != 0 {
			dt, err := e.cat.DataTypeFor(indicator)
			if err != nil {
				return err
			}
			if dt != def.DataType {
				return adif.SequencingError(nameUpper, value,
					"if a Data Type Indicator is supplied, it must match the one "+
						"for the field in the ADIF specification")
			}
		}
	case adif.App:
		return adif.SequencingError(nameUpper, value,
			"APP_ field must be output using the AppField method")
	case adif.User:
		return adif.SequencingError(nameUpper, value,
			"USERDEF field must be output using the UserField method")
	default:
		return adif.InternalError("unexpected field variant %d", def.Variant)
	}

	def.Occurrences++
	if err = def.Validate(value, e.tagStyle(), e.cat.Enumerations); err != nil {
		return err
	}
	value = lineBreaks.Replace(value)
	if err = e.qso.Apply(nameUpper, value); err != nil {
		return err
	}

	e.pending.WriteString(e.bor())
	e.buffer[nameUpper] = value
	e.totalFields++

	if e.tagStyle() {
		e.pending.WriteString("<" + name)
		if indicator != 0 {
			e.pending.WriteString(":" + string(indicator))
		}
		e.pending.WriteString(":" + strconv.Itoa(len(value)) + ">" + value)
	} else {
		e.pending.WriteString("<" + nameUpper)
		if indicator != 0 {
			e.pending.WriteString(` DATATYPEINDICATOR="` + string(indicator) + `"`)
		}
		e.pending.WriteString(">" + e.encode(value) + "</" + nameUpper + ">")
	}
	e.pending.WriteString(e.cfg.FieldSeparator)
	return nil
}

// DeclareUserField emits the USERDEFn header field that declares a user
// defined field. The enumerationOrRange is empty, {A,B,C} for indicator
// E or {min:max} for indicator N.
func (e *Emitter) DeclareUserField(
	name string,
	indicator byte,
	number int,
	enumerationOrRange string,
) error {
	if name == "" {
		return adif.SequencingError("", "", "name parameter is zero-length")
	}
	if indicator == 0 {
		return adif.SequencingError(name, "",
			"dataTypeIndicator parameter is zero-length")
	}
	if number < 1 {
		return adif.SequencingError(name, "", "number parameter is less than 1")
	}
	nameUpper := strings.ToUpper(name)
	if !e.cfg.HasHeaderFields {
		return adif.SequencingError(nameUpper, "",
			"Trying to add a USERDEFn header field to a file without header fields")
	}
	if err := e.ensureFile(); err != nil {
		return err
	}
	if e.state != InHeader {
		return adif.SequencingError(nameUpper, "",
			"Header field not allowed in record section")
	}
	if e.Emitted(nameUpper) {
		return adif.SequencingError(nameUpper, "",
			"USERDEFn field name already included in record")
	}

	if _, err := e.reg.DeclareUser(nameUpper, indicator, number, enumerationOrRange); err != nil {
		return err
	}
	if def, ok := e.reg.Lookup("USERDEFN"); ok {
		def.Occurrences++
	}

	e.pending.WriteString(e.bor())
	e.buffer[nameUpper] = strconv.Itoa(number)
	e.totalFields++

	num := strconv.Itoa(number)
	if e.tagStyle() {
		var enum string
		if enumerationOrRange != "" {
			enum = "," + enumerationOrRange
		}
		e.pending.WriteString("<USERDEF" + num + ":" + string(indicator) + ":" +
			strconv.Itoa(len(name)+len(enum)) + ">" + name + enum)
	} else {
		var attrs string
		if strings.Contains(enumerationOrRange, ":") {
			attrs += ` RANGE="` + e.encode(enumerationOrRange) + `"`
		} else if enumerationOrRange != "" {
			attrs += ` ENUM="` + e.encode(enumerationOrRange) + `"`
		}
		e.pending.WriteString(`<USERDEF FIELDID="` + num + `" TYPE="` +
			string(indicator) + `"` + attrs + ">" + e.encode(nameUpper) +
			"</USERDEF>")
	}
	e.pending.WriteString(e.cfg.FieldSeparator)
	return nil
}

// UserField emits a value of a field declared with DeclareUserField.
func (e *Emitter) UserField(name, value string) error {
	if name == "" {
		return adif.SequencingError("", value, "name parameter is zero-length")
	}
	if value == "" {
		return adif.SequencingError(name, "", "value parameter is zero-length")
	}
	nameUpper := strings.ToUpper(name)

	def, ok := e.reg.Lookup(nameUpper)
	if !ok {
		return adif.SequencingError(nameUpper, value, "Undeclared USERDEF field")
	}
	switch def.Variant {
	case adif.SpecDefined:
		return adif.SequencingError(nameUpper, value,
			"ADIF-defined fields must be emitted using the Field or Record methods")
	case adif.App:
		return adif.SequencingError(nameUpper, value,
			"APP_ field must be emitted using the AppField method")
	case adif.User:
	default:
		return adif.InternalError("unexpected field variant %d", def.Variant)
	}
	if err := def.CheckUserValue(value); err != nil {
		return err
	}
	if err := e.ensureRecords(); err != nil {
		return err
	}
	if e.Emitted(nameUpper) {
		return adif.SequencingError(nameUpper, value,
			"USERDEF field already included in record")
	}
	if e.skipKind(def.DataType.Kind) {
		return nil
	}

	if err := def.Validate(value, e.tagStyle(), e.cat.Enumerations); err != nil {
		return err
	}
	def.Occurrences++

	e.pending.WriteString(e.bor())
	e.buffer[nameUpper] = value
	e.totalFields++

	if e.tagStyle() {
		e.pending.WriteString("<" + name + ":" + strconv.Itoa(len(value)) + ">" +
			value)
	} else {
		e.pending.WriteString(`<USERDEF FIELDNAME="` + e.encode(nameUpper) + `">` +
			e.encode(value) + "</USERDEF>")
	}
	e.pending.WriteString(e.cfg.FieldSeparator)
	return nil
}

// AppField emits an APP_{PROGRAMID}_{NAME} field. The first use of a
// field fixes its data type; without an indicator it is the widest string
// type of the style (M for ADI, G for ADX). Later calls may omit the
// indicator but must not change it.
func (e *Emitter) AppField(name, value, programID string, indicator byte) error {
	if name == "" {
		return adif.SequencingError("", value, "name parameter is zero-length")
	}
	if value == "" {
		return adif.SequencingError(name, "", "value parameter is zero-length")
	}
	if programID == "" {
		return adif.SequencingError(name, value,
			"programId parameter is zero-length")
	}
	full := "APP_" + strings.ToUpper(programID) + "_" + strings.ToUpper(name)

	def, ok := e.reg.Lookup(full)
	if !ok {
		if indicator == 0 {
			indicator = 'G'
			if e.tagStyle() {
				indicator = 'M'
			}
		}
		var err error
		if def, err = e.reg.DeclareApp(full, indicator); err != nil {
			return err
		}
	} else {
		switch def.Variant {
		case adif.App:
		case adif.User:
			return adif.SequencingError(full, value,
				"USERDEF field must be output using the UserField method")
		default:
			return adif.InternalError("unexpected field variant %d", def.Variant)
		}
		if indicator != 0 {
			dt, err := e.cat.DataTypeFor(indicator)
			if err != nil {
				return err
			}
			if dt != def.DataType {
				return adif.SequencingError(full, value,
					"the '%s' field has already been included in a QSO with a "+
						"different Data Type Indicator of '%c'",
					full, def.DataType.Indicator)
			}
		}
	}

	if err := e.ensureFile(); err != nil {
		return err
	}
	if e.state == InHeader && !e.cfg.HasHeaderFields {
		if err := e.EndHeader(); err != nil {
			return err
		}
	}
	if e.Emitted(full) {
		return adif.SequencingError(full, value,
			"APP_ field name %s has already been included in this record", full)
	}
	if e.skipKind(def.DataType.Kind) {
		return nil
	}

	if err := def.Validate(value, e.tagStyle(), e.cat.Enumerations); err != nil {
		return err
	}
	def.Occurrences++

	e.pending.WriteString(e.bor())
	e.buffer[full] = value
	e.totalFields++

	dti := string(def.DataType.Indicator)
	if e.tagStyle() {
		e.pending.WriteString("<APP_" + programID + "_" + name + ":" + dti + ":" +
			strconv.Itoa(len(value)) + ">" + value)
	} else {
		e.pending.WriteString(`<APP PROGRAMID="` + e.encode(programID) +
			`" FIELDNAME="` + e.encode(strings.ToUpper(name)) + `" TYPE="` + dti +
			`">` + e.encode(value) + "</APP>")
	}
	e.pending.WriteString(e.cfg.FieldSeparator)
	return nil
}
