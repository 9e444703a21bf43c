package entities

import "testing"

func TestLine_Capacity(t *testing.T) {
	tests := []struct {
		name     string
		line     Line
		expected Cases
	}{
		{
			name:     "full_shift_no_downtime",
			line:     Line{ID: "L1", RateCPH: 500, ShiftHours: 16, DowntimeMin: 0},
			expected: 8000,
		},
		{
			name:     "downtime_subtracted",
			line:     Line{ID: "L2", RateCPH: 600, ShiftHours: 20, DowntimeMin: 60},
			expected: 11400,
		},
		{
			name:     "fractional_downtime_truncates",
			line:     Line{ID: "L3", RateCPH: 350, ShiftHours: 16, DowntimeMin: 45},
			expected: 5337, // 5600 - 262.5
		},
		{
			name:     "never_negative",
			line:     Line{ID: "L4", RateCPH: 100, ShiftHours: 1, DowntimeMin: 600},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.Capacity(); got != tt.expected {
				t.Errorf("Capacity() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestLine_Eligible(t *testing.T) {
	line := Line{
		ID:           "L1",
		EligibleSKUs: map[SKUCode]struct{}{"WTR-1L-12PK": {}},
	}

	if !line.Eligible("WTR-1L-12PK") {
		t.Error("expected WTR-1L-12PK to be eligible")
	}
	if line.Eligible("WTR-1GAL-6PK") {
		t.Error("expected WTR-1GAL-6PK to be ineligible")
	}
}
