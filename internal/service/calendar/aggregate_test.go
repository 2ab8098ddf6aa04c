package calendar

import (
	"testing"
	"time"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/calendar"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/timeentry"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tod(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// july2024Input: two entries in an otherwise empty July 2024. July 2024 has
// 31 days, 8 weekend days and starts on a Monday.
func july2024Input() AggregateInput {
	veh := vehicle.Vehicle{
		ID:           "veh-1",
		LicensePlate: "AB123CD",
		Make:         "Ford",
		Model:        "Transit",
		Year:         2020,
		IsActive:     true,
	}

	entryMon := timeentry.TimeEntry{
		ID:                "entry-1",
		EmployeeID:        "emp-1",
		Date:              day(2024, time.July, 1),
		StartTime:         tod(8, 0),
		EndTime:           tod(16, 30),
		LunchBreakMinutes: 30,
		PollutionLevel:    timeentry.PollutionLow,
	}
	entryTue := timeentry.TimeEntry{
		ID:                "entry-2",
		EmployeeID:        "emp-1",
		Date:              day(2024, time.July, 2),
		StartTime:         tod(7, 0),
		EndTime:           tod(15, 0),
		LunchBreakMinutes: 60,
		PollutionLevel:    timeentry.PollutionHigh,
	}

	return AggregateInput{
		EmployeeID: "emp-1",
		Year:       2024,
		Month:      time.July,
		Entries:    []timeentry.TimeEntry{entryMon, entryTue},
		Usages: map[string]timeentry.VehicleUsage{
			"entry-1": {
				ID:          "usage-1",
				TimeEntryID: "entry-1",
				Usage: timeentry.VehicleUsed{
					VehicleID:       "veh-1",
					StartKilometers: 50000,
					EndKilometers:   50120,
				},
			},
			"entry-2": {
				ID:          "usage-2",
				TimeEntryID: "entry-2",
				Usage:       timeentry.NoVehicle{},
			},
		},
		Vehicles: map[string]vehicle.Vehicle{"veh-1": veh},
		Rules:    timeentry.DefaultRules(),
		Today:    day(2024, time.August, 15),
	}
}

func TestAggregateMonth_FullMonthOfCells(t *testing.T) {
	t.Parallel()
	view := AggregateMonth(july2024Input(), nil, calendar.ModeDetailFilter)

	require.Len(t, view.Days, 31)
	assert.Equal(t, "2024-07-01", view.Days[0].Date)
	assert.Equal(t, "2024-07-31", view.Days[30].Date)

	populated := 0
	for _, cell := range view.Days {
		if cell.HasEntry {
			populated++
		}
	}
	assert.Equal(t, 2, populated)

	assert.Equal(t, 31, view.Summary.TotalDays)
	assert.Equal(t, 8, view.Summary.Weekends)
	assert.Equal(t, 23, view.Summary.Workdays)
	assert.Equal(t, 2, view.Summary.EntryCount)
	// Every elapsed workday without an entry is missing.
	assert.Equal(t, 21, view.Summary.MissingEntries)
}

func TestAggregateMonth_Totals(t *testing.T) {
	t.Parallel()
	view := AggregateMonth(july2024Input(), nil, calendar.ModeDetailFilter)

	// 8h00 and 7h00 worked after lunch.
	assert.Equal(t, 480+420, view.Summary.TotalWorkedMinutes)
	assert.Equal(t, 120, view.Summary.TotalDistanceKm)
	assert.Equal(t, 1, view.Summary.VehicleDays)
	assert.Equal(t, 1, view.Summary.NoVehicleDays)
}

func TestAggregateMonth_Idempotent(t *testing.T) {
	t.Parallel()
	in := july2024Input()
	first := AggregateMonth(in, nil, calendar.ModeDetailFilter)
	second := AggregateMonth(in, nil, calendar.ModeDetailFilter)
	assert.Equal(t, first, second)
}

func TestAggregateMonth_EmptyMonth(t *testing.T) {
	t.Parallel()
	in := AggregateInput{
		EmployeeID: "emp-1",
		Year:       2024,
		Month:      time.February,
		Rules:      timeentry.DefaultRules(),
		Today:      day(2024, time.March, 15),
	}
	view := AggregateMonth(in, nil, calendar.ModeDetailFilter)

	require.Len(t, view.Days, 29) // 2024 is a leap year
	assert.Equal(t, 0, view.Summary.EntryCount)
	assert.Equal(t, 0, view.Summary.TotalWorkedMinutes)
	assert.Equal(t, view.Summary.Workdays, view.Summary.MissingEntries)
}

func TestAggregateMonth_FutureDaysAreNotMissing(t *testing.T) {
	t.Parallel()
	in := july2024Input()
	in.Today = day(2024, time.July, 10)
	view := AggregateMonth(in, nil, calendar.ModeDetailFilter)

	for _, cell := range view.Days {
		date, err := time.Parse("2006-01-02", cell.Date)
		require.NoError(t, err)
		if date.After(in.Today) {
			assert.False(t, cell.IsMissingEntry, "future day %s flagged missing", cell.Date)
		}
	}
}

func TestAggregateMonth_HolidaysAndNonWorkingDays(t *testing.T) {
	t.Parallel()
	in := july2024Input()
	in.Holidays = []calendar.PublicHoliday{
		{ID: "hol-1", Name: "Company Day", Date: day(2023, time.July, 4), IsRecurring: true},
	}
	wednesday := time.Wednesday
	in.NonWorkingDays = []calendar.NonWorkingDay{
		{ID: "nwd-1", EmployeeID: "emp-1", Pattern: calendar.PatternWeekly, Weekday: &wednesday},
	}

	view := AggregateMonth(in, nil, calendar.ModeDetailFilter)

	// July 4th 2024 matches the recurring holiday from 2023.
	assert.True(t, view.Days[3].IsPublicHoliday)
	assert.Equal(t, "Company Day", view.Days[3].PublicHolidayName)
	assert.Equal(t, 1, view.Summary.Holidays)

	// July 2024 has five Wednesdays: 3, 10, 17, 24, 31.
	assert.Equal(t, 5, view.Summary.NonWorkingDays)
	assert.True(t, view.Days[2].IsNonWorkingDay)
	assert.False(t, view.Days[2].IsMissingEntry)
}

func TestAggregateMonth_DetailFilterKeepsFullTotals(t *testing.T) {
	t.Parallel()
	in := july2024Input()
	vehicleID := "veh-1"
	filter := &calendar.Filter{VehicleID: &vehicleID}

	view := AggregateMonth(in, filter, calendar.ModeDetailFilter)

	// Only the vehicle day survives the listing.
	require.Len(t, view.Days, 1)
	assert.Equal(t, "2024-07-01", view.Days[0].Date)

	// The totals still cover the whole month.
	assert.Equal(t, 31, view.Summary.TotalDays)
	assert.Equal(t, 2, view.Summary.EntryCount)
	assert.Equal(t, 480+420, view.Summary.TotalWorkedMinutes)
}

func TestAggregateMonth_FilteredTotalsNarrowsTotals(t *testing.T) {
	t.Parallel()
	in := july2024Input()
	vehicleID := "veh-1"
	filter := &calendar.Filter{VehicleID: &vehicleID}

	view := AggregateMonth(in, filter, calendar.ModeFilteredTotals)

	require.Len(t, view.Days, 1)
	assert.Equal(t, 1, view.Summary.TotalDays)
	assert.Equal(t, 1, view.Summary.EntryCount)
	assert.Equal(t, 480, view.Summary.TotalWorkedMinutes)
	assert.Equal(t, 120, view.Summary.TotalDistanceKm)
}

func TestAggregateMonth_PollutionFilter(t *testing.T) {
	t.Parallel()
	in := july2024Input()
	level := timeentry.PollutionHigh
	filter := &calendar.Filter{PollutionLevel: &level}

	view := AggregateMonth(in, filter, calendar.ModeFilteredTotals)

	require.Len(t, view.Days, 1)
	assert.Equal(t, "2024-07-02", view.Days[0].Date)
	assert.Equal(t, 420, view.Summary.TotalWorkedMinutes)
}

func TestAggregateMonth_DateRangeFilter(t *testing.T) {
	t.Parallel()
	in := july2024Input()
	from := day(2024, time.July, 10)
	to := day(2024, time.July, 20)
	filter := &calendar.Filter{From: &from, To: &to}

	view := AggregateMonth(in, filter, calendar.ModeDetailFilter)

	require.Len(t, view.Days, 11)
	assert.Equal(t, "2024-07-10", view.Days[0].Date)
	assert.Equal(t, "2024-07-20", view.Days[10].Date)
}

func TestAggregateMonth_WarningsSurfaceInCells(t *testing.T) {
	t.Parallel()
	in := july2024Input()
	// Stretch the first entry to 14 hours and its distance past 500 km.
	in.Entries[0].StartTime = tod(6, 0)
	in.Entries[0].EndTime = tod(20, 30)
	in.Usages["entry-1"] = timeentry.VehicleUsage{
		ID:          "usage-1",
		TimeEntryID: "entry-1",
		Usage: timeentry.VehicleUsed{
			VehicleID:       "veh-1",
			StartKilometers: 50000,
			EndKilometers:   50600,
		},
	}

	view := AggregateMonth(in, nil, calendar.ModeDetailFilter)

	cell := view.Days[0]
	require.True(t, cell.HasEntry)
	codes := make([]string, 0, len(cell.Warnings))
	for _, w := range cell.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, timeentry.WarningLongShift)
	assert.Contains(t, codes, timeentry.WarningImplausibleDistance)
	assert.Equal(t, len(cell.Warnings), view.Summary.WarningCount)
}
