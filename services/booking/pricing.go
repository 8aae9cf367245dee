package booking

import (
	"fmt"
	"time"
)

// dateLayout is the calendar-day form used on the wire and in storage.
const dateLayout = "2006-01-02"

// CountRentalDays returns the number of chargeable days in [start, end).
// The end day is the return day and is not charged.
func CountRentalDays(startDate, endDate string) (int, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}

	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return 0, fmt.Errorf("end date %q is not after start date %q", endDate, startDate)
	}
	return days, nil
}

// TotalPrice computes the order total for a rental period.
func TotalPrice(pricePerDay float64, days int) float64 {
	return pricePerDay * float64(days)
}

// today returns the current calendar day in wire form.
func today() string {
	return time.Now().Format(dateLayout)
}
