package service

import (
	"testing"

	"pcxpress/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestClassifyUrgency(t *testing.T) {
	cases := []struct {
		name      string
		quantity  int
		threshold int
		want      string
	}{
		{"out of stock", 0, 5, dto.UrgencyCritical},
		{"below threshold", 3, 5, dto.UrgencyHigh},
		{"at threshold", 5, 5, dto.UrgencyHigh},
		{"just above threshold", 6, 5, dto.UrgencyMedium},
		{"just below recommended", 9, 5, dto.UrgencyMedium},
		{"at recommended", 10, 5, dto.UrgencyLow},
		{"above recommended", 25, 5, dto.UrgencyLow},
		{"zero threshold well stocked", 7, 0, dto.UrgencyLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyUrgency(tc.quantity, tc.threshold))
		})
	}
}
