package dateparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Spreadsheet serial day 0. The 1899-12-30 epoch is the conventional one that
// already compensates for the historical 1900 leap-year bug, so serials map
// directly to real dates.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Numeric values above this threshold are millisecond epoch timestamps;
// anything smaller is a spreadsheet serial.
const msEpochThreshold = 100_000_000_000

var (
	isoRegex    = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})(?:[T ].*)?$`)
	localeRegex = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2}|\d{4})$`)
)

// Fallback layouts for strings that match none of the explicit shapes.
var fallbackLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// Normalize converts any accepted date representation into a canonical Date.
// Recognized shapes, in precedence order: time.Time (UTC fields), numeric
// millisecond epoch, numeric spreadsheet serial, YYYY-MM-DD string (trailing
// time discarded), D/M/YYYY or D-M-YYYY locale string, and finally a small
// set of generic layouts. Anything else is ErrUnparseableDate.
func Normalize(value any) (Date, error) {
	switch v := value.(type) {
	case time.Time:
		return FromTime(v)
	case *time.Time:
		if v == nil {
			return Date{}, fmt.Errorf("%w: nil timestamp", ErrUnparseableDate)
		}
		return FromTime(*v)
	case Date:
		return v, nil
	case float64:
		return normalizeNumber(v)
	case float32:
		return normalizeNumber(float64(v))
	case int:
		return normalizeNumber(float64(v))
	case int32:
		return normalizeNumber(float64(v))
	case int64:
		return normalizeNumber(float64(v))
	case string:
		return NormalizeString(v)
	default:
		return Date{}, fmt.Errorf("%w: unsupported type %T", ErrUnparseableDate, value)
	}
}

// NormalizeString parses a date from its string form. Numeric strings (as
// produced by spreadsheet cells without a date style) go through the same
// serial/epoch rules as numbers.
func NormalizeString(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("%w: empty string", ErrUnparseableDate)
	}

	if m := isoRegex.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return NewDate(year, month, day)
	}

	if m := localeRegex.FindStringSubmatch(s); m != nil {
		return normalizeLocale(m[1], m[2], m[3])
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return normalizeNumber(n)
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t)
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrUnparseableDate, s)
}

func normalizeNumber(n float64) (Date, error) {
	if n > msEpochThreshold {
		return FromTime(time.UnixMilli(int64(n)))
	}
	if n <= 0 {
		return Date{}, fmt.Errorf("%w: serial %v out of range", ErrUnparseableDate, n)
	}
	ms := int64(n * 86_400_000)
	return FromTime(serialEpoch.Add(time.Duration(ms) * time.Millisecond))
}

// normalizeLocale handles D/M/YYYY and D-M-YYYY. When one component exceeds
// 12 it is unambiguously the day; when both fit in [1,12] the value is
// ambiguous and we keep this system's day-first convention. Callers that can
// control the producer should prefer YYYY-MM-DD.
func normalizeLocale(first, second, yearStr string) (Date, error) {
	a, _ := strconv.Atoi(first)
	b, _ := strconv.Atoi(second)
	year, _ := strconv.Atoi(yearStr)

	if len(yearStr) == 2 {
		if year < 70 {
			year += 2000
		} else {
			year += 1900
		}
	}

	day, month := a, b
	if a <= 12 && b > 12 {
		// Only the second component can be the day.
		day, month = b, a
	}
	return NewDate(year, month, day)
}
