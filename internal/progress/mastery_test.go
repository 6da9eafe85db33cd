package progress

import "testing"

func TestMasteryCategory(t *testing.T) {
	tests := []struct {
		mastery float64
		want    string
	}{
		{100, "Expert"},
		{90, "Expert"},
		{89.99, "Advanced"},
		{80, "Advanced"},
		{75, "Proficient"},
		{70, "Proficient"},
		{65, "Developing"},
		{60, "Developing"},
		{55, "Beginning"},
		{50, "Beginning"},
		{49.99, "Needs Support"},
		{0, "Needs Support"},
	}

	for _, tt := range tests {
		if got := MasteryCategory(tt.mastery); got != tt.want {
			t.Errorf("MasteryCategory(%v) = %q, want %q", tt.mastery, got, tt.want)
		}
	}
}
