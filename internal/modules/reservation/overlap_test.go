package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"disjoint before", "2024-01-01", "2024-01-03", "2024-01-05", "2024-01-08", false},
		{"disjoint after", "2024-01-05", "2024-01-08", "2024-01-01", "2024-01-03", false},
		{"contained", "2024-01-01", "2024-01-10", "2024-01-03", "2024-01-05", true},
		{"partial overlap", "2024-01-01", "2024-01-05", "2024-01-04", "2024-01-08", true},
		{"identical", "2024-01-01", "2024-01-05", "2024-01-01", "2024-01-05", true},
		// Checkout day equals checkin day: conflicting under the
		// inclusive-boundary policy. Same-day turnover is rejected.
		{"shared boundary", "2024-01-01", "2024-01-05", "2024-01-05", "2024-01-08", true},
		{"shared boundary reversed", "2024-01-05", "2024-01-08", "2024-01-01", "2024-01-05", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(day(tt.aStart), day(tt.aEnd), day(tt.bStart), day(tt.bEnd))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverlaps_Symmetric(t *testing.T) {
	aStart, aEnd := day("2024-03-01"), day("2024-03-04")
	bStart, bEnd := day("2024-03-04"), day("2024-03-09")

	assert.Equal(t,
		Overlaps(aStart, aEnd, bStart, bEnd),
		Overlaps(bStart, bEnd, aStart, aEnd),
	)
}
