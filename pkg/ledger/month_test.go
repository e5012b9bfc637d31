package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthKeyFromDate(t *testing.T) {
	key := MonthKeyFromDate(time.Date(2025, time.June, 17, 14, 30, 0, 0, time.UTC))

	assert.Equal(t, 2025, key.Year)
	assert.Equal(t, time.June, key.Month)
}

func TestMonthKey_Label(t *testing.T) {
	tests := []struct {
		name string
		key  MonthKey
		want string
	}{
		{"mid-year month", MonthKey{Year: 2025, Month: time.June}, "June 2025"},
		{"january", MonthKey{Year: 2024, Month: time.January}, "January 2024"},
		{"december", MonthKey{Year: 2023, Month: time.December}, "December 2023"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.Label())
		})
	}
}

func TestMonthKeyFromLabel(t *testing.T) {
	t.Run("should parse a rendered label", func(t *testing.T) {
		key, err := MonthKeyFromLabel("June 2025")

		require.NoError(t, err)
		assert.Equal(t, MonthKey{Year: 2025, Month: time.June}, key)
	})

	t.Run("should round-trip through Label", func(t *testing.T) {
		original := MonthKey{Year: 2025, Month: time.March}

		parsed, err := MonthKeyFromLabel(original.Label())

		require.NoError(t, err)
		assert.True(t, original.Equal(parsed))
	})

	t.Run("should reject an unknown month name", func(t *testing.T) {
		_, err := MonthKeyFromLabel("Juin 2025")

		assert.Error(t, err)
	})

	t.Run("should reject a label without a year", func(t *testing.T) {
		_, err := MonthKeyFromLabel("June")

		assert.Error(t, err)
	})

	t.Run("should reject a non-numeric year", func(t *testing.T) {
		_, err := MonthKeyFromLabel("June twenty")

		assert.Error(t, err)
	})
}

func TestMonthKey_Ordering(t *testing.T) {
	may := MonthKey{Year: 2025, Month: time.May}
	june := MonthKey{Year: 2025, Month: time.June}
	lastYear := MonthKey{Year: 2024, Month: time.December}

	assert.True(t, may.Before(june))
	assert.True(t, june.After(may))
	assert.True(t, lastYear.Before(may))
	assert.True(t, may.After(lastYear))
	assert.False(t, may.Before(may))
	assert.False(t, may.After(may))
	assert.True(t, may.Equal(may))
	assert.False(t, may.Equal(june))
}
