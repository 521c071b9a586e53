package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsOverdue(t *testing.T) {
	checkIn := day(2026, time.March, 2)

	t.Run("within the booked weeks", func(t *testing.T) {
		assert.False(t, IsOverdue(checkIn, 4, day(2026, time.March, 20)))
	})

	t.Run("due date itself is not overdue", func(t *testing.T) {
		assert.False(t, IsOverdue(checkIn, 4, day(2026, time.March, 30)))
	})

	t.Run("one day past due", func(t *testing.T) {
		assert.True(t, IsOverdue(checkIn, 4, day(2026, time.March, 31)))
	})

	t.Run("open ended stay never expires", func(t *testing.T) {
		assert.False(t, IsOverdue(checkIn, 0, day(2030, time.January, 1)))
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		late := time.Date(2026, time.March, 30, 23, 59, 0, 0, time.UTC)
		assert.False(t, IsOverdue(checkIn, 4, late))
	})
}

func TestCheckOutDue(t *testing.T) {
	assert.Equal(t, day(2026, time.March, 30), CheckOutDue(day(2026, time.March, 2), 4))
	assert.Equal(t, day(2026, time.March, 9), CheckOutDue(day(2026, time.March, 2), 1))
}

func TestOverdueDays(t *testing.T) {
	checkIn := day(2026, time.March, 2)

	assert.Equal(t, 0, OverdueDays(checkIn, 4, day(2026, time.March, 30)))
	assert.Equal(t, 1, OverdueDays(checkIn, 4, day(2026, time.March, 31)))
	assert.Equal(t, 10, OverdueDays(checkIn, 4, day(2026, time.April, 9)))
}
