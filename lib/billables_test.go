package lib

import (
	"testing"
	"time"

	"git.cmcode.dev/cmcode/invoice-planner/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBillables(t *testing.T) {
	segments := SplitWeeks(2024, time.June, nil)
	got := GetBillables(segments, time.June, "50", "$")

	require.Len(t, got, 4)
	assert.Equal(t, models.BillableLine{
		Description: "Week of June 2 - 8",
		Hours:       "40",
		Rate:        "$ 50",
		Cost:        "$ 2000.0",
	}, got[0])
	assert.Equal(t, "Week of June 23 - 29", got[3].Description)
}

func TestBillablesForDate(t *testing.T) {
	tests := []struct {
		name      string
		billdate  string
		rate      string
		offDays   []int
		marker    string
		wantLines []string
		wantHours []string
		wantErr   bool
	}{
		{
			name:      "weekday off day reduces its week",
			billdate:  "2024-06-01",
			rate:      "50",
			offDays:   []int{10},
			marker:    "$",
			wantLines: []string{"Week of June 2 - 8", "Week of June 9 - 15", "Week of June 16 - 22", "Week of June 23 - 29"},
			wantHours: []string{"40", "32", "40", "40"},
		},
		{
			name:      "weekend off day changes nothing",
			billdate:  "2024-06-30",
			rate:      "50",
			offDays:   []int{8, 9},
			marker:    "$",
			wantLines: []string{"Week of June 2 - 8", "Week of June 9 - 15", "Week of June 16 - 22", "Week of June 23 - 29"},
			wantHours: []string{"40", "40", "40", "40"},
		},
		{
			name:      "week entirely off is dropped",
			billdate:  "2024-06-15",
			rate:      "50",
			offDays:   []int{3, 4, 5, 6, 7},
			marker:    "€",
			wantLines: []string{"Week of June 9 - 15", "Week of June 16 - 22", "Week of June 23 - 29"},
			wantHours: []string{"40", "40", "40"},
		},
		{
			name:     "bad billing date",
			billdate: "2024-6-1",
			rate:     "50",
			marker:   "$",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BillablesForDate(tt.billdate, tt.rate, tt.offDays, tt.marker)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			require.Len(t, got, len(tt.wantLines))

			for i := range got {
				assert.Equal(t, tt.wantLines[i], got[i].Description)
				assert.Equal(t, tt.wantHours[i], got[i].Hours)
				assert.Equal(t, tt.marker+" "+tt.rate, got[i].Rate)
			}
		})
	}
}

func TestLineCost(t *testing.T) {
	assert.Equal(t, int64(200000), LineCost(models.BillableLine{Hours: "40", Rate: "$ 50"}))
	assert.Equal(t, int64(49400), LineCost(models.BillableLine{Hours: "8", Rate: "$ 61.75"}))
	assert.Equal(t, int64(0), LineCost(models.BillableLine{Hours: "", Rate: "$ 61.75"}))
}

func TestGetTotals(t *testing.T) {
	lines := []models.BillableLine{
		{Hours: "40", Rate: "$ 50"},
		{Hours: "32", Rate: "$ 50"},
	}

	got := GetTotals(lines, decimal.Zero)
	assert.Equal(t, Totals{Subtotal: 360000, Tax: 0, Total: 360000}, got)

	got = GetTotals(lines, decimal.RequireFromString("7.5"))
	assert.Equal(t, Totals{Subtotal: 360000, Tax: 27000, Total: 387000}, got)

	// tax is truncated to whole cents
	assert.Equal(t, int64(33), GetTax(333, decimal.NewFromInt(10)))
	assert.Equal(t, int64(0), GetTotals(nil, decimal.NewFromInt(10)).Total)
}
