package service

import "time"

// CheckOutDue is the first day the occupant is no longer covered by
// the booked stay.
func CheckOutDue(checkIn time.Time, durationWeeks int) time.Time {
	return checkIn.AddDate(0, 0, 7*durationWeeks)
}

// IsOverdue reports whether a stay that began on checkIn has run past
// its booked weeks as of today. A zero duration never expires; those
// beds are open-ended.
func IsOverdue(checkIn time.Time, durationWeeks int, today time.Time) bool {
	if durationWeeks <= 0 {
		return false
	}
	return CheckOutDue(checkIn, durationWeeks).Before(truncateDay(today))
}

// OverdueDays is how many whole days past the due date the stay is.
// Zero when not overdue.
func OverdueDays(checkIn time.Time, durationWeeks int, today time.Time) int {
	if !IsOverdue(checkIn, durationWeeks, today) {
		return 0
	}
	due := CheckOutDue(checkIn, durationWeeks)
	return int(truncateDay(today).Sub(due).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
