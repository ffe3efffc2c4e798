package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		in       time.Time
		expected time.Time
	}{
		{
			name:     "seconds are dropped",
			in:       time.Date(2024, 6, 10, 14, 0, 45, 0, time.UTC),
			expected: time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC),
		},
		{
			name:     "nanoseconds are dropped",
			in:       time.Date(2024, 6, 10, 14, 0, 0, 999999999, time.UTC),
			expected: time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC),
		},
		{
			name:     "already minute-granular value is unchanged",
			in:       time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC),
			expected: time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.in))
		})
	}
}

func TestCanonicalTime(t *testing.T) {
	testCases := []struct {
		name      string
		in        string
		expected  string
		expectErr bool
	}{
		{name: "minute form", in: "14:00", expected: "14:00"},
		{name: "second form collapses to the same slot", in: "14:00:45", expected: "14:00"},
		{name: "leading and trailing spaces", in: " 09:05 ", expected: "09:05"},
		{name: "midnight", in: "00:00", expected: "00:00"},
		{name: "last minute of day", in: "23:59:59", expected: "23:59"},
		{name: "garbage", in: "2pm", expectErr: true},
		{name: "out of range hour", in: "25:00", expectErr: true},
		{name: "empty", in: "", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CanonicalTime(tc.in)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestCanonicalTimeCollapsesSecondNoise(t *testing.T) {
	a, err := CanonicalTime("14:00:00")
	assert.NoError(t, err)
	b, err := CanonicalTime("14:00:45")
	assert.NoError(t, err)
	assert.Equal(t, a, b, "times differing only in seconds are the same slot")
}

func TestCanonicalDate(t *testing.T) {
	got, err := CanonicalDate("2024-06-10")
	assert.NoError(t, err)
	assert.Equal(t, "2024-06-10", got)

	_, err = CanonicalDate("10/06/2024")
	assert.Error(t, err)

	_, err = CanonicalDate("2024-13-40")
	assert.Error(t, err)
}

func TestFormatHelpers(t *testing.T) {
	ts := time.Date(2024, 6, 10, 14, 0, 30, 0, time.UTC)
	assert.Equal(t, "14:00", FormatTime(ts))
	assert.Equal(t, "2024-06-10", FormatDate(ts))
}
