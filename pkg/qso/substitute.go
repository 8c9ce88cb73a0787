package qso

import (
	"strconv"
	"strings"
	"time"

	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
)

// Substitute resolves a {NAME} macro against the current contact. Values
// without a '{' are returned unchanged. Supported forms:
//
//	{}                   same as {<field name>}
//	{QSO_DATE+n}         start date plus n days, n may be fractional
//	{QSO_DATE_OFF+n}     end date plus n days
//	{YEAR_OF_BIRTH(age)} year of the start date minus age
//	{QSO_DATE} {QSO_DATE_OFF} {TIME_ON} {TIME_OFF} {CALL} {BAND} {FREQ}
//	{BAND_RX} {FREQ_RX} {DXCC} {CQZ} {ITUZ} {CONT}
func (c *Context) Substitute(nameUpper, value string) (string, error) {
	if !strings.Contains(value, "{") {
		return value, nil
	}
	raw := value
	fail := func(format string, args ...any) (string, error) {
		return "", adif.SequencingError(nameUpper, raw, format, args...)
	}

	if len(value) < 2 || value[0] != '{' || value[len(value)-1] != '}' {
		return fail("substitution value does not start and end with '{' and '}'")
	}
	if value == "{}" {
		value = nameUpper
	} else {
		value = value[1 : len(value)-1]
	}

	var addDays float64
	switch parts := strings.Split(value, "+"); len(parts) {
	case 1:
	case 2:
		if parts[0] != "QSO_DATE" && parts[0] != "QSO_DATE_OFF" {
			return fail("cannot use '+' in a substitution of %s", parts[0])
		}
		var ok bool
		if addDays, ok = adif.ParseNumber(parts[1], false); !ok {
			return fail("item following '+' is not fixed point or integer")
		}
		value = parts[0]
	default:
		return fail("more than one '+' found in substitution")
	}

	var param string
	if i := strings.IndexByte(value, '('); i > 0 {
		if value[len(value)-1] != ')' {
			return fail("parameter must end with a ')' character")
		}
		param = value[i+1 : len(value)-1]
		value = value[:i]
		if value != "YEAR_OF_BIRTH" {
			return fail("a parameter cannot be used with %s", value)
		}
	}

	switch value {
	case "QSO_DATE":
		return c.Start.Add(days(addDays)).Format(dateLayout), nil
	case "QSO_DATE_OFF":
		return c.End.Add(days(addDays)).Format(dateLayout), nil
	case "TIME_ON":
		return c.TimeOn(), nil
	case "TIME_OFF":
		return c.TimeOff(), nil
	case "CALL":
		return c.Call, nil
	case "BAND":
		return c.Band, nil
	case "FREQ":
		return c.FreqString(), nil
	case "BAND_RX":
		return c.BandRx, nil
	case "FREQ_RX":
		return c.FreqRxString(), nil
	case "DXCC":
		return itoa(c.DXCC), nil
	case "CQZ":
		return itoa(c.CQZ), nil
	case "ITUZ":
		return itoa(c.ITUZ), nil
	case "CONT":
		return c.Cont, nil
	case "YEAR_OF_BIRTH":
		age, err := strconv.Atoi(param)
		if err != nil {
			return fail("YEAR_OF_BIRTH(%s): invalid age parameter", param)
		}
		return itoa(c.Start.AddDate(-age, 0, 0).Year()), nil
	}
	return fail("invalid substitution")
}

func days(n float64) time.Duration {
	return time.Duration(n * float64(24*time.Hour))
}
