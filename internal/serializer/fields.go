package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Body is a decoded JSON object whose values are parsed lazily, so that an
// absent key, an explicit null and a wrongly typed value can each be told
// apart.  Keys that no serializer asks for are ignored.
type Body map[string]json.RawMessage

// Parser converts one raw JSON value into T.
type Parser[T any] interface {
	Parse(raw json.RawMessage) (T, error)
}

// Field runs p on body[name].  A missing key is an error unless partial is
// set, in which case the field is skipped.  The returned pointer is nil
// whenever no value was produced.
func Field[T any](body Body, name string, partial bool, errs FieldErrors, p Parser[T]) *T {
	raw, ok := body[name]
	if !ok {
		if !partial {
			errs.Add(name, msgRequired)
		}
		return nil
	}
	if isNull(raw) {
		errs.Add(name, msgNull)
		return nil
	}
	v, err := p.Parse(raw)
	if err != nil {
		errs.Add(name, err.Error())
		return nil
	}
	return &v
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// scalarText returns the text of a JSON string or number.  ok is false for
// objects, arrays and booleans.
func scalarText(raw json.RawMessage) (s string, quoted, ok bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false, false
	}
	switch c := raw[0]; {
	case c == '"':
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", true, false
		}
		return s, true, true
	case c == '-' || (c >= '0' && c <= '9'):
		return string(raw), false, true
	}
	return "", false, false
}

// CharField accepts strings; numbers are taken as their literal text.
type CharField struct {
	MaxLength  int  // zero means unlimited
	AllowBlank bool // accept "" (after trimming)
	NoTrim     bool // keep surrounding whitespace, used for passwords
}

func (f CharField) Parse(raw json.RawMessage) (string, error) {
	s, _, ok := scalarText(raw)
	if !ok {
		return "", ValidationError("Not a valid string.")
	}
	if !f.NoTrim {
		s = strings.TrimSpace(s)
	}
	if s == "" && !f.AllowBlank {
		return "", ValidationError(msgBlank)
	}
	if f.MaxLength > 0 && utf8.RuneCountInString(s) > f.MaxLength {
		return "", ValidationError(fmt.Sprintf("Ensure this field has no more than %d characters.", f.MaxLength))
	}
	return s, nil
}

// IntegerField accepts JSON integers, integral floats and digit strings
// within [Min, Max].
type IntegerField struct {
	Min int64
	Max int64
}

const maxInt32 = math.MaxInt32

func (f IntegerField) Parse(raw json.RawMessage) (int, error) {
	s, _, ok := scalarText(raw)
	if !ok {
		return 0, ValidationError("A valid integer is required.")
	}
	n, ok := parseIntText(s)
	if !ok {
		return 0, ValidationError("A valid integer is required.")
	}
	if n < f.Min {
		return 0, ValidationError(fmt.Sprintf("Ensure this value is greater than or equal to %d.", f.Min))
	}
	if n > f.Max {
		return 0, ValidationError(fmt.Sprintf("Ensure this value is less than or equal to %d.", f.Max))
	}
	return int(n), nil
}

func parseIntText(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(fl, 0) || fl != math.Trunc(fl) || math.Abs(fl) > 1<<53 {
		return 0, false
	}
	return int64(fl), true
}

// DecimalField accepts decimal strings or JSON numbers and keeps them exact.
// Trailing zeros beyond DecimalPlaces are tolerated; significant digits are not.
type DecimalField struct {
	MaxDigits     int
	DecimalPlaces int
	NonNegative   bool
}

func (f DecimalField) Parse(raw json.RawMessage) (decimal.Decimal, error) {
	s, _, ok := scalarText(raw)
	if !ok {
		return decimal.Decimal{}, ValidationError("A valid number is required.")
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, ValidationError("A valid number is required.")
	}
	placesMsg := fmt.Sprintf("Ensure that there are no more than %d decimal places.", f.DecimalPlaces)
	whole := f.MaxDigits - f.DecimalPlaces
	wholeMsg := fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", whole)

	// Comparing or truncating rescales the coefficient by 10^|exponent|, so
	// exponents outside what the column can hold are rejected up front.
	if d.IsZero() {
		d = decimal.Zero
	}
	switch exp := int64(d.Exponent()); {
	case exp < -int64(f.MaxDigits+f.DecimalPlaces):
		return decimal.Decimal{}, ValidationError(placesMsg)
	case exp > int64(f.MaxDigits):
		return decimal.Decimal{}, ValidationError(wholeMsg)
	}

	places := int32(f.DecimalPlaces)
	if !d.Equal(d.Truncate(places)) {
		return decimal.Decimal{}, ValidationError(placesMsg)
	}
	if d.Abs().Cmp(decimal.New(1, int32(whole))) >= 0 {
		return decimal.Decimal{}, ValidationError(wholeMsg)
	}
	if f.NonNegative && d.IsNegative() {
		return decimal.Decimal{}, ValidationError("Ensure this value is greater than or equal to 0.")
	}
	return d.Truncate(places), nil
}

// DateTimeField accepts ISO-8601 timestamps.  Values without an offset are
// read as UTC.  Precision is cut to microseconds, which is what the store
// keeps.  When Min or Max is set, the UTC instant must fall within them.
type DateTimeField struct {
	Min time.Time
	Max time.Time
}

var dateTimeLayouts = []string{
	time.RFC3339, // fractional seconds are accepted when parsing
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

const msgDateTimeFormat = "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z]."

func (f DateTimeField) Parse(raw json.RawMessage) (time.Time, error) {
	s, quoted, ok := scalarText(raw)
	if !ok || !quoted {
		return time.Time{}, ValidationError(msgDateTimeFormat)
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		t = t.Truncate(time.Microsecond)
		if !f.Min.IsZero() && t.Before(f.Min) {
			return time.Time{}, ValidationError("Ensure this value is no earlier than " + f.Min.UTC().Format(time.RFC3339Nano) + ".")
		}
		if !f.Max.IsZero() && t.After(f.Max) {
			return time.Time{}, ValidationError("Ensure this value is no later than " + f.Max.UTC().Format(time.RFC3339Nano) + ".")
		}
		return t, nil
	}
	return time.Time{}, ValidationError(msgDateTimeFormat)
}
