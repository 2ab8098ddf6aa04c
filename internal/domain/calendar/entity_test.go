package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPublicHoliday_AppliesTo(t *testing.T) {
	t.Parallel()
	oneOff := PublicHoliday{Name: "Opening Day", Date: date(2024, time.May, 17)}
	assert.True(t, oneOff.AppliesTo(date(2024, time.May, 17)))
	assert.False(t, oneOff.AppliesTo(date(2025, time.May, 17)))

	recurring := PublicHoliday{Name: "National Day", Date: date(2020, time.May, 17), IsRecurring: true}
	assert.True(t, recurring.AppliesTo(date(2024, time.May, 17)))
	assert.True(t, recurring.AppliesTo(date(2031, time.May, 17)))
	assert.False(t, recurring.AppliesTo(date(2024, time.May, 18)))
}

func TestNonWorkingDay_SpecificDate(t *testing.T) {
	t.Parallel()
	d := date(2024, time.July, 5)
	n := NonWorkingDay{Pattern: PatternSpecific, Date: &d}

	assert.True(t, n.AppliesTo(date(2024, time.July, 5)))
	assert.False(t, n.AppliesTo(date(2024, time.July, 6)))
}

func TestNonWorkingDay_WeeklyPattern(t *testing.T) {
	t.Parallel()
	friday := time.Friday
	n := NonWorkingDay{Pattern: PatternWeekly, Weekday: &friday}

	assert.True(t, n.AppliesTo(date(2024, time.July, 5)))  // a Friday
	assert.True(t, n.AppliesTo(date(2024, time.July, 12))) // next Friday
	assert.False(t, n.AppliesTo(date(2024, time.July, 4)))
}

func TestNonWorkingDay_MonthlyPattern(t *testing.T) {
	t.Parallel()
	fifteenth := 15
	n := NonWorkingDay{Pattern: PatternMonthly, DayOfMonth: &fifteenth}

	assert.True(t, n.AppliesTo(date(2024, time.July, 15)))
	assert.True(t, n.AppliesTo(date(2024, time.August, 15)))
	assert.False(t, n.AppliesTo(date(2024, time.July, 16)))
}

func TestNonWorkingDay_ValidityWindow(t *testing.T) {
	t.Parallel()
	monday := time.Monday
	from := date(2024, time.July, 1)
	until := date(2024, time.July, 31)
	n := NonWorkingDay{
		Pattern:    PatternWeekly,
		Weekday:    &monday,
		ValidFrom:  &from,
		ValidUntil: &until,
	}

	assert.True(t, n.AppliesTo(date(2024, time.July, 8)))   // Monday inside window
	assert.False(t, n.AppliesTo(date(2024, time.June, 24))) // Monday before window
	assert.False(t, n.AppliesTo(date(2024, time.August, 5)))
}
