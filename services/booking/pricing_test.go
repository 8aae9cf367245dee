package booking

import "testing"

// Requirement: rental days count nights, end date exclusive; inverted or
// malformed ranges are rejected.
func TestCountRentalDays(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		want    int
		wantErr bool
	}{
		{"three nights", "2024-02-10", "2024-02-13", 3, false},
		{"single night", "2024-02-10", "2024-02-11", 1, false},
		{"same day", "2024-02-10", "2024-02-10", 0, true},
		{"inverted range", "2024-02-13", "2024-02-10", 0, true},
		{"bad start", "10-02-2024", "2024-02-13", 0, true},
		{"empty end", "2024-02-10", "", 0, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := CountRentalDays(test.start, test.end)
			if (err != nil) != test.wantErr {
				t.Fatalf("CountRentalDays() error = %v, wantErr %v", err, test.wantErr)
			}
			if got != test.want {
				t.Errorf("CountRentalDays() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestTotalPrice(t *testing.T) {
	if got := TotalPrice(45.5, 3); got != 136.5 {
		t.Errorf("TotalPrice(45.5, 3) = %v, want 136.5", got)
	}
	if got := TotalPrice(45.5, 0); got != 0 {
		t.Errorf("TotalPrice(45.5, 0) = %v, want 0", got)
	}
}
