package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidReportType(t *testing.T) {
	t.Parallel()

	for _, typ := range []string{
		ReportTypeIncorrectSpecies,
		ReportTypeInappropriate,
		ReportTypeCopyright,
		ReportTypePoorQuality,
	} {
		assert.True(t, IsValidReportType(typ), typ)
	}

	for _, typ := range []string{"", "spam", "INAPPROPRIATE", "other"} {
		assert.False(t, IsValidReportType(typ), typ)
	}
}

func TestCanTransitionTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status string
		target string
		want   bool
	}{
		{name: "pending to reviewed", status: ReportStatusPending, target: ReportStatusReviewed, want: true},
		{name: "pending to resolved", status: ReportStatusPending, target: ReportStatusResolved, want: true},
		{name: "pending to dismissed", status: ReportStatusPending, target: ReportStatusDismissed, want: true},
		{name: "pending to pending", status: ReportStatusPending, target: ReportStatusPending, want: false},
		{name: "pending to unknown", status: ReportStatusPending, target: "archived", want: false},
		{name: "resolved is terminal", status: ReportStatusResolved, target: ReportStatusDismissed, want: false},
		{name: "reviewed is terminal", status: ReportStatusReviewed, target: ReportStatusResolved, want: false},
		{name: "dismissed is terminal", status: ReportStatusDismissed, target: ReportStatusReviewed, want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := PhotoReport{Status: tc.status}
			assert.Equal(t, tc.want, r.CanTransitionTo(tc.target))
		})
	}
}
