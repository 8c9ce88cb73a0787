package adif

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Names of enumerations some data types depend on.
const (
	EnumCredit             = "CREDIT"
	EnumQSLMedium          = "QSL_MEDIUM"
	EnumAwardSponsor       = "AWARD_SPONSOR"
	EnumContinent          = "CONTINENT"
	EnumPrimarySubdiv      = "PRIMARY_ADMINISTRATIVE_SUBDIVISION"
	EnumSecondarySubdivAlt = "SECONDARY_ADMINISTRATIVE_SUBDIVISION_ALT"
)

var (
	adifVerRE          = regexp.MustCompile(`^3\.[0-9]\.[0-9]$`)
	createdTimestampRE = regexp.MustCompile(
		`^(19[3-9][0-9]|[2-9][0-9]{3})(0[1-9]|1[0-2])(0[1-9]|[1-2][0-9]|3[0-1]) ([0-1][0-9]|2[0-3])([0-5][0-9]){2}$`,
	)
	potaRefRE = regexp.MustCompile(
		`^[a-zA-Z0-9]{1,4}-[0-9]{4,5}(@[a-zA-Z]{2}-[a-zA-Z0-9]{1,3})?$`,
	)
)

type checkFunc func(c *checkCtx) error

type checkCtx struct {
	dt          *DataType
	field       string
	value       string
	enumeration string
	tagStyle    bool
	enums       Enumerations
}

func (c *checkCtx) fail(format string, args ...any) error {
	return ValidationError(c.field, c.dt.Name, c.value, format, args...)
}

func (c *checkCtx) notAllowed() error {
	return c.fail("'%s' is not allowed in a field of type %s", c.value, c.dt.Name)
}

// lookup finds an enumeration the rule depends on.
func (c *checkCtx) lookup(name string) (*Enumeration, error) {
	return c.enums.Get(name)
}

// inEnum checks an uppercased value against an enumeration.
func (c *checkCtx) inEnum(e *Enumeration, value string) error {
	if e.Has(value) {
		return nil
	}
	return c.fail("Enumeration '%s' does not include the value '%s'", e.Name, value)
}

var checks = [...]checkFunc{
	KindCharacter:                                 checkText,
	KindIntlCharacter:                             checkText,
	KindString:                                    checkText,
	KindIntlString:                                checkText,
	KindMultilineString:                           checkText,
	KindIntlMultilineString:                       checkText,
	KindAwardListImportOnly:                       checkNothing,
	KindCreditList:                                checkCreditList,
	KindSponsoredAwardList:                        checkSponsoredAwardList,
	KindBoolean:                                   checkBoolean,
	KindDigit:                                     checkDigit,
	KindInteger:                                   checkInteger,
	KindNumber:                                    checkNumber,
	KindPositiveInteger:                           checkPositiveInteger,
	KindDate:                                      checkDate,
	KindTime:                                      checkTime,
	KindIotaRefNo:                                 checkIotaRefNo,
	KindEnumeration:                               checkEnumeration,
	KindGridSquare:                                checkGridSquare,
	KindGridSquareExt:                             checkGridSquareExt,
	KindGridSquareList:                            checkGridSquareList,
	KindLocation:                                  checkLocation,
	KindPotaRefList:                               checkPotaRefList,
	KindSecondarySubdivisionList:                  checkNothing,
	KindSecondaryAdministrativeSubdivisionListAlt: checkSubdivisionListAlt,
	KindSotaRef:                                   checkSotaRef,
	KindWwffRef:                                   checkWwffRef,
}

func checkNothing(*checkCtx) error {
	return nil
}

func checkText(c *checkCtx) error {
	kind := c.dt.Kind
	if c.tagStyle && kind.IsInternational() {
		return c.fail(
			"data type '%s' is not allowed in a tag-style (.adi) file",
			c.dt.Name,
		)
	}

	single := kind == KindCharacter || kind == KindIntlCharacter
	if single && utf8.RuneCountInString(c.value) != 1 {
		return c.notAllowed()
	}

	for _, r := range c.value {
		var valid bool
		switch kind {
		case KindCharacter, KindString:
			valid = r >= 32 && r <= 126
		case KindIntlCharacter, KindIntlString:
			valid = r != '\r' && r != '\n'
		case KindMultilineString:
			valid = (r >= 32 && r <= 126) || r == '\r' || r == '\n'
		case KindIntlMultilineString:
			valid = true
		}
		if !valid {
			return c.fail(
				"Character '%c' (decimal %d, hex %x) is not allowed in a field of type %s",
				r, r, r, c.dt.Name,
			)
		}
	}

	switch c.field {
	case "ADIF_VER":
		if !adifVerRE.MatchString(c.value) {
			return c.fail(
				"%s contains an invalid ADIF version in a field of type %s",
				c.value, c.dt.Name,
			)
		}
	case "CREATED_TIMESTAMP":
		if !createdTimestampRE.MatchString(c.value) {
			return c.fail(
				"%s contains an invalid date and time in a field of type %s",
				c.value, c.dt.Name,
			)
		}
	}
	return nil
}

func checkCreditList(c *checkCtx) error {
	credits, err := c.lookup(EnumCredit)
	if err != nil {
		return err
	}
	media, err := c.lookup(EnumQSLMedium)
	if err != nil {
		return err
	}

	seenCredits := make(map[string]struct{})
	for item := range strings.SplitSeq(c.value, ",") {
		pair := strings.Split(item, ":")
		if len(pair) > 2 {
			return c.fail(
				"Value '%s' is not valid in a %s field", c.value, c.dt.Name,
			)
		}

		credit := strings.ToUpper(pair[0])
		if err = c.inEnum(credits, credit); err != nil {
			return err
		}
		if _, ok := seenCredits[credit]; ok {
			return c.fail(
				"Value '%s' contains more than one occurrence of Credit %s in a %s field",
				c.value, pair[0], c.dt.Name,
			)
		}
		seenCredits[credit] = struct{}{}

		if len(pair) == 1 {
			continue
		}

		seenMedia := make(map[string]struct{})
		for medium := range strings.SplitSeq(pair[1], "&") {
			medium = strings.ToUpper(medium)
			if err = c.inEnum(media, medium); err != nil {
				return err
			}
			if _, ok := seenMedia[medium]; ok {
				return c.fail(
					"Value '%s' contains more than one occurrence of QSL_Medium %s in a %s field",
					c.value, medium, c.dt.Name,
				)
			}
			seenMedia[medium] = struct{}{}
		}
	}
	return nil
}

func checkSponsoredAwardList(c *checkCtx) error {
	sponsors, err := c.lookup(EnumAwardSponsor)
	if err != nil {
		return err
	}

	for award := range strings.SplitSeq(c.value, ",") {
		parts := strings.SplitN(award, "_", 3)
		if len(parts) < 3 {
			return c.fail(
				"Award '%s' does not have 3 parts separated by '_' characters "+
					"so is not allowed in a field of type %s",
				award, c.dt.Name,
			)
		}
		for _, p := range parts {
			if p == "" {
				return c.fail(
					"Award '%s' with an empty part is not allowed in a field of type %s",
					award, c.dt.Name,
				)
			}
		}
		if err = c.inEnum(sponsors, strings.ToUpper(parts[0])+"_"); err != nil {
			return err
		}
	}
	return nil
}

func checkBoolean(c *checkCtx) error {
	switch c.value {
	case "Y", "y", "N", "n":
		return nil
	}
	return c.notAllowed()
}

func checkDigit(c *checkCtx) error {
	if len(c.value) != 1 || c.value[0] < '0' || c.value[0] > '9' {
		return c.notAllowed()
	}
	return nil
}

func checkInteger(c *checkCtx) error {
	if _, ok := ParseNumber(c.value, true); !ok {
		return c.notAllowed()
	}
	return nil
}

func checkNumber(c *checkCtx) error {
	if _, ok := ParseNumber(c.value, false); !ok {
		return c.notAllowed()
	}
	return nil
}

func checkPositiveInteger(c *checkCtx) error {
	v, ok := ParseNumber(c.value, true)
	if !ok {
		return c.notAllowed()
	}
	rng := c.dt.Range
	if rng.HasMin && v < rng.Min {
		return c.fail(
			"'%s' is not allowed in a field of type %s (Value %s is < %s)",
			c.value, c.dt.Name, c.value, FormatNumber(rng.Min),
		)
	}
	if rng.HasMax && v > rng.Max {
		return c.fail(
			"'%s' is not allowed in a field of type %s (Value %s is > %s)",
			c.value, c.dt.Name, c.value, FormatNumber(rng.Max),
		)
	}
	return nil
}

func checkDate(c *checkCtx) error {
	if !IsDate(c.value) {
		return c.notAllowed()
	}
	return nil
}

func checkTime(c *checkCtx) error {
	if !IsTime(c.value) {
		return c.notAllowed()
	}
	return nil
}

func checkIotaRefNo(c *checkCtx) error {
	v := c.value
	if len(v) != 6 || v[2] != '-' || !allDigits(v[3:]) {
		return c.notAllowed()
	}
	continents, err := c.lookup(EnumContinent)
	if err != nil {
		return err
	}
	return c.inEnum(continents, strings.ToUpper(v[:2]))
}

func checkEnumeration(c *checkCtx) error {
	name := c.enumeration
	if name == "" || name[0] == '{' || name == EnumPrimarySubdiv {
		return nil
	}
	e, err := c.lookup(name)
	if err != nil {
		return err
	}
	return c.inEnum(e, strings.ToUpper(c.value))
}

func checkGridSquare(c *checkCtx) error {
	if !IsLocator(c.value) {
		return c.fail("'%s' is not valid for a field of type %s", c.value, c.dt.Name)
	}
	return nil
}

func checkGridSquareExt(c *checkCtx) error {
	if !IsLocatorExt(c.value) {
		return c.fail("'%s' is not valid for a field of type %s", c.value, c.dt.Name)
	}
	return nil
}

func checkGridSquareList(c *checkCtx) error {
	for loc := range strings.SplitSeq(c.value, ",") {
		if !IsLocator(loc) {
			return c.fail(
				"value '%s' in '%s' is not valid for a field of type %s",
				loc, c.value, c.dt.Name,
			)
		}
	}
	return nil
}

func checkLocation(c *checkCtx) error {
	v := c.value
	if len(v) != 11 || !isASCII(v) {
		return c.fail(
			"'%s' must be 11 characters long in a field of type %s",
			v, c.dt.Name,
		)
	}
	if v[4] != ' ' {
		return c.fail(
			"'%s' does not have a space (' ') in the 5th character position "+
				"in a field of type %s",
			v, c.dt.Name,
		)
	}
	if v[7] != '.' {
		return c.fail(
			"'%s' does not have a full stop ('.') in the 8th character position "+
				"in a field of type %s",
			v, c.dt.Name,
		)
	}

	degrees, okDeg := atoiDigits(v[1:4])
	minutes, okMin := ParseNumber(v[5:], false)
	if !okDeg || !okMin || v[5] == '-' {
		return c.fail(
			"'%s' does not have a valid unsigned decimal number in the character "+
				"positions 2-7 in a field of type %s",
			v, c.dt.Name,
		)
	}

	var limit int
	var axis string
	switch unicode.ToUpper(rune(v[0])) {
	case 'N', 'S':
		limit, axis = 90, "latitude"
	case 'E', 'W':
		limit, axis = 180, "longitude"
	default:
		return c.fail(
			"'%s' does not start with a cardinal point (N, S, E or W) "+
				"in a field of type %s",
			v, c.dt.Name,
		)
	}
	if degrees > limit || (degrees == limit && minutes != 0) || minutes >= 60 {
		return c.fail(
			"'%s' does not have a valid unsigned decimal number for %s in the "+
				"character positions 2-7 in a field of type %s",
			v, axis, c.dt.Name,
		)
	}
	return nil
}

func checkPotaRefList(c *checkCtx) error {
	for ref := range strings.SplitSeq(c.value, ",") {
		if ref == "" {
			continue
		}
		if !potaRefRE.MatchString(ref) {
			return c.fail(
				"%s contains an invalid POTA reference \"%s\" in a field of type %s",
				c.value, ref, c.dt.Name,
			)
		}
	}
	return nil
}

func checkSubdivisionListAlt(c *checkCtx) error {
	seen := make(map[string]struct{})
	for code := range strings.SplitSeq(c.value, ";") {
		parts := strings.Split(code, ":")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return c.fail(
				"%s contains an invalid subdivision code \"%s\" in a field of type %s",
				c.value, code, c.dt.Name,
			)
		}

		alt, err := c.lookup(EnumSecondarySubdivAlt)
		if err != nil {
			return err
		}
		if !alt.Has(strings.ToUpper(code)) {
			return c.fail(
				"%s contains an invalid %s subdivision code \"%s\" in a field of type %s",
				c.value, parts[0], code, c.dt.Name,
			)
		}

		name := strings.ToUpper(parts[0])
		if _, ok := seen[name]; ok {
			return c.fail(
				"%s contains more than one enumeration-name \"%s\" in a field of type %s",
				c.value, parts[0], c.dt.Name,
			)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func checkSotaRef(c *checkCtx) error {
	v := c.value
	slash := strings.IndexByte(v, '/')
	if slash < 1 {
		return c.fail(
			"%s does not have a forward slash (/) in the 2nd or later character "+
				"position in a field of type %s",
			v, c.dt.Name,
		)
	}
	if slash == len(v)-1 {
		return c.fail(
			"%s cannot have a forward slash (/) in the last character position "+
				"in a field of type %s",
			v, c.dt.Name,
		)
	}

	ref := v[slash+1:]
	if len(ref) != 6 || ref[2] != '-' ||
		!unicode.IsLetter(rune(ref[0])) || !unicode.IsLetter(rune(ref[1])) ||
		!allDigits(ref[3:]) {
		return c.fail(
			"%s does not contain a valid SOTA Reference Number in the righthand "+
				"6 characters in a field of type %s",
			ref, c.dt.Name,
		)
	}
	return nil
}

func checkWwffRef(c *checkCtx) error {
	v := c.value
	var parts []string
	for p := range strings.SplitSeq(v, "-") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	switch {
	case len(parts) != 2:
		return c.fail(
			"%s does not have two parts separated by a dash (-) in a field of type %s",
			v, c.dt.Name,
		)
	case len(parts[0]) < 3 || len(parts[0]) > 6:
		return c.fail(
			"%s length to the left of the dash (-) is not within the range 3 to 6 "+
				"characters in a field of type %s",
			v, c.dt.Name,
		)
	case !strings.EqualFold(parts[0][len(parts[0])-2:], "FF"):
		return c.fail(
			"%s final two characters to the left of the dash (-) are not FF "+
				"in a field of type %s",
			v, c.dt.Name,
		)
	case len(parts[1]) != 4:
		return c.fail(
			"%s there are not four characters the right of the dash (-) "+
				"in a field of type %s",
			v, c.dt.Name,
		)
	case !allDigits(parts[1]):
		return c.fail(
			"%s the characters to the right of the dash (-) are not all digits (0-9) "+
				"in a field of type %s",
			v, c.dt.Name,
		)
	}
	return nil
}

// IsDate reports whether s is a real calendar date in yyyyMMdd form.
func IsDate(s string) bool {
	if len(s) != 8 || !allDigits(s) {
		return false
	}
	y, _ := atoiDigits(s[:4])
	m, _ := atoiDigits(s[4:6])
	d, _ := atoiDigits(s[6:])
	if y < 1 || m < 1 || m > 12 || d < 1 {
		return false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return t.Day() == d && int(t.Month()) == m
}

// IsTime reports whether s is a time in HHmm or HHmmss form.
func IsTime(s string) bool {
	if (len(s) != 4 && len(s) != 6) || !allDigits(s) {
		return false
	}
	h, _ := atoiDigits(s[:2])
	m, _ := atoiDigits(s[2:4])
	sec := 0
	if len(s) == 6 {
		sec, _ = atoiDigits(s[4:])
	}
	return h < 24 && m < 60 && sec < 60
}

// IsLocator reports whether s is a Maidenhead locator of 2, 4, 6 or 8
// characters.
func IsLocator(s string) bool {
	s = strings.ToUpper(s)
	if len(s) == 0 || len(s)%2 != 0 || len(s) > 8 {
		return false
	}
	for i := 0; i < len(s); i += 2 {
		a, b := s[i], s[i+1]
		switch i {
		case 0:
			if !between(a, 'A', 'R') || !between(b, 'A', 'R') {
				return false
			}
		case 4:
			if !between(a, 'A', 'X') || !between(b, 'A', 'X') {
				return false
			}
		default:
			if !between(a, '0', '9') || !between(b, '0', '9') {
				return false
			}
		}
	}
	return true
}

// IsLocatorExt reports whether s is a 2 or 4 character locator extension.
func IsLocatorExt(s string) bool {
	s = strings.ToUpper(s)
	if len(s) != 2 && len(s) != 4 {
		return false
	}
	if !between(s[0], 'A', 'X') || !between(s[1], 'A', 'X') {
		return false
	}
	if len(s) == 4 && (!between(s[2], '0', '9') || !between(s[3], '0', '9')) {
		return false
	}
	return true
}

func between(b, lo, hi byte) bool {
	return b >= lo && b <= hi
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func atoiDigits(s string) (int, bool) {
	if !allDigits(s) {
		return 0, false
	}
	var res int
	for i := 0; i < len(s); i++ {
		res = res*10 + int(s[i]-'0')
	}
	return res, true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}
