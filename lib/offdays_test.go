package lib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterOffDays(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   time.Month
		offDays []int
		want    []int
	}{
		{
			name:    "weekday kept",
			year:    2024,
			month:   time.June,
			offDays: []int{10},
			want:    []int{10},
		},
		{
			name:    "saturday and sunday removed",
			year:    2024,
			month:   time.June,
			offDays: []int{1, 2, 8, 9, 10},
			want:    []int{10},
		},
		{
			name:    "out of range days dropped",
			year:    2024,
			month:   time.February,
			offDays: []int{0, 29, 30, -4},
			want:    []int{29},
		},
		{
			name:    "duplicates collapse and result is sorted",
			year:    2024,
			month:   time.June,
			offDays: []int{14, 10, 14},
			want:    []int{10, 14},
		},
		{
			name:    "nil input",
			year:    2024,
			month:   time.June,
			offDays: nil,
			want:    []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterOffDays(tt.year, tt.month, tt.offDays)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterOffDays_EveryDay(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		all := make([]int, 0, 31)
		for day := 1; day <= DaysIn(2025, month); day++ {
			all = append(all, day)
		}

		got, err := FilterOffDays(2025, month, all)
		require.NoError(t, err)

		kept := make(map[int]bool)
		for _, day := range got {
			kept[day] = true
		}

		for _, day := range all {
			assert.Equal(t, !IsWeekend(2025, month, day), kept[day], "2025-%v-%v", month, day)
		}
	}
}

func TestOutOfRangeDays(t *testing.T) {
	assert.Equal(t, []int{31, 0}, OutOfRangeDays(2024, time.June, []int{31, 5, 0}))
	assert.Empty(t, OutOfRangeDays(2024, time.June, []int{1, 30}))
}
