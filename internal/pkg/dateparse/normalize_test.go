package dateparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeISOStrings(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"2024-12-31", "2024-12-31"},
		{"2024-01-02", "2024-01-02"},
		{"2000-02-29", "2000-02-29"},
		{"2024-06-15T10:30:00Z", "2024-06-15"},
		{"2024-06-15 10:30:00", "2024-06-15"},
	}
	for _, c := range cases {
		got, err := Normalize(c.input)
		require.NoError(t, err, "input %q", c.input)
		assert.Equal(t, c.want, got.String(), "input %q", c.input)
	}
}

func TestNormalizeISORoundTrip(t *testing.T) {
	for _, s := range []string{"1900-01-01", "1970-06-30", "2024-02-29", "2100-12-31"} {
		d, err := Normalize(s)
		require.NoError(t, err)
		assert.Equal(t, s, d.String())

		again, err := Normalize(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, again)
	}
}

func TestNormalizeSpreadsheetSerial(t *testing.T) {
	// Anchors checked against the conventional 1899-12-30 epoch.
	cases := []struct {
		serial float64
		want   string
	}{
		{45292, "2024-01-01"},
		{45293, "2024-01-02"},
		{45658, "2025-01-01"},
		{43831, "2020-01-01"},
		{2, "1900-01-01"},
	}
	for _, c := range cases {
		got, err := Normalize(c.serial)
		require.NoError(t, err, "serial %v", c.serial)
		assert.Equal(t, c.want, got.String(), "serial %v", c.serial)

		// Cross-representation equivalence with the ISO form.
		iso, err := Normalize(c.want)
		require.NoError(t, err)
		assert.Equal(t, iso, got)
	}
}

func TestNormalizeSerialAsString(t *testing.T) {
	// Spreadsheet readers hand over unstyled numeric cells as strings.
	got, err := Normalize("45293")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", got.String())

	got, err = Normalize("45292.75")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", got.String())
}

func TestNormalizeMillisecondEpoch(t *testing.T) {
	got, err := Normalize(float64(1735689600000)) // 2025-01-01T00:00:00Z
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", got.String())

	got, err = Normalize(int64(1704153600000)) // 2024-01-02T00:00:00Z
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", got.String())
}

func TestNormalizeNativeTime(t *testing.T) {
	// UTC calendar fields are taken regardless of the zone on the value.
	lima := time.FixedZone("America/Lima", -5*3600)
	got, err := Normalize(time.Date(2024, 3, 31, 22, 0, 0, 0, lima))
	require.NoError(t, err)
	assert.Equal(t, "2024-04-01", got.String())
}

func TestNormalizeLocaleStrings(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"31/12/2024", "2024-12-31"},
		{"31-12-2024", "2024-12-31"},
		// Second component over 12: unambiguously the day.
		{"12/31/2024", "2024-12-31"},
		// Both components in [1,12]: day-first convention.
		{"03/04/2024", "2024-04-03"},
		{"1/2/2024", "2024-02-01"},
		// Two-digit years: <70 maps to the 2000s, >=70 to the 1900s.
		{"5/6/99", "1999-06-05"},
		{"5/6/30", "2030-06-05"},
		{"15-08-69", "2069-08-15"},
		{"15-08-70", "1970-08-15"},
	}
	for _, c := range cases {
		got, err := Normalize(c.input)
		require.NoError(t, err, "input %q", c.input)
		assert.Equal(t, c.want, got.String(), "input %q", c.input)
	}
}

func TestNormalizeRejectsInvalid(t *testing.T) {
	inputs := []any{
		"2024-02-30",
		"30/02/2024",
		"not a date",
		"",
		"99/99/2024",
		float64(-3),
		float64(0),
		struct{}{},
		"1850-01-01", // below the supported year range
	}
	for _, input := range inputs {
		_, err := Normalize(input)
		require.Error(t, err, "input %v", input)
		assert.ErrorIs(t, err, ErrUnparseableDate, "input %v", input)
	}
}

func TestWeekday(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		{"2024-01-07", 1}, // Sunday
		{"2024-01-08", 2}, // Monday
		{"2024-12-31", 3}, // Tuesday
		{"2025-01-04", 7}, // Saturday
		{"2025-01-05", 1}, // Sunday
	}
	for _, c := range cases {
		d, err := Normalize(c.date)
		require.NoError(t, err)
		assert.Equal(t, c.want, d.Weekday(), "date %s", c.date)
	}
}
