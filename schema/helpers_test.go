package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestFloorToDay verifies UTC conversion and midnight truncation.
func TestFloorToDay(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "already midnight UTC",
			input:    time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "afternoon UTC",
			input:    time.Date(2024, 3, 10, 15, 4, 5, 123, time.UTC),
			expected: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "offset zone crossing midnight",
			input:    time.Date(2024, 3, 10, 22, 0, 0, 0, time.FixedZone("minus5", -5*3600)),
			expected: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(FloorToDay(tt.input)))
		})
	}
}

// TestDayRange verifies inclusive calendar coverage with no gaps.
func TestDayRange(t *testing.T) {
	first := time.Date(2024, 2, 27, 11, 0, 0, 0, time.UTC)
	last := time.Date(2024, 3, 2, 3, 0, 0, 0, time.UTC)

	days := DayRange(first, last)
	assert.Len(t, days, 5) // leap year: Feb 27, 28, 29, Mar 1, 2
	assert.True(t, days[0].Equal(time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)))
	assert.True(t, days[4].Equal(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))
	for i := 1; i < len(days); i++ {
		assert.Equal(t, 24*time.Hour, days[i].Sub(days[i-1]))
	}
}

// TestDayRangeInverted verifies that an inverted range yields nothing.
func TestDayRangeInverted(t *testing.T) {
	first := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, DayRange(first, last))
}

// TestDayEnd verifies the closed daily interval bound.
func TestDayEnd(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.True(t, time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC).Equal(DayEnd(day)))
}

// TestRefListMarshalText verifies JSON encoding of reference lists.
func TestRefListMarshalText(t *testing.T) {
	id1, id3 := int64(1), int64(3)

	tests := []struct {
		name     string
		refs     RefList
		expected string
	}{
		{name: "empty list normalizes to null element", refs: RefList{}, expected: "[null]"},
		{name: "nil list normalizes to null element", refs: nil, expected: "[null]"},
		{name: "mixed refs", refs: RefList{&id1, nil, &id3}, expected: "[1,null,3]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.refs.MarshalText()
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

// TestParseRefList verifies decoding round-trips the encoded form.
func TestParseRefList(t *testing.T) {
	refs, err := ParseRefList("[1,null,3]")
	assert.NoError(t, err)
	assert.Len(t, refs, 3)
	assert.Equal(t, int64(1), *refs[0])
	assert.Nil(t, refs[1])
	assert.Equal(t, int64(3), *refs[2])
}
