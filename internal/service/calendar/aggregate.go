package calendar

import (
	"time"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/calendar"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/timeentry"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/vehicle"
)

// AggregateInput is everything the month aggregation reads. The caller loads
// it; the aggregation itself touches no storage and is deterministic for a
// given input, so running it twice yields identical views.
type AggregateInput struct {
	EmployeeID     string
	Year           int
	Month          time.Month
	Entries        []timeentry.TimeEntry
	Usages         map[string]timeentry.VehicleUsage // keyed by entry ID
	Vehicles       map[string]vehicle.Vehicle        // keyed by vehicle ID
	Holidays       []calendar.PublicHoliday
	NonWorkingDays []calendar.NonWorkingDay
	Rules          timeentry.Rules
	Today          time.Time
}

// AggregateMonth builds the calendar view for one employee-month. Every cell
// of the month appears exactly once, in date order, whether or not an entry
// exists for it. The filter trims the detail listing; whether it also trims
// the totals depends on the mode.
func AggregateMonth(in AggregateInput, filter *calendar.Filter, mode calendar.Mode) calendar.MonthView {
	first := time.Date(in.Year, in.Month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	view := calendar.MonthView{
		EmployeeID: in.EmployeeID,
		Year:       in.Year,
		Month:      int(in.Month),
		Mode:       mode,
		Days:       make([]calendar.DayCell, 0, daysInMonth),
	}

	var summary calendar.MonthSummary
	summary.TotalDays = daysInMonth

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(in.Year, in.Month, day, 0, 0, 0, 0, time.UTC)
		cell := buildDayCell(in, date)

		matched := matchesFilter(cell, filter)

		// Detail filtering drops a cell from the listing only; its totals
		// still count. Filtered totals drop it from both.
		if matched || mode != calendar.ModeFilteredTotals {
			accumulate(&summary, cell)
		}
		if matched {
			view.Days = append(view.Days, cell)
		}
	}

	if mode == calendar.ModeFilteredTotals {
		summary.TotalDays = len(view.Days)
	}
	view.Summary = summary
	return view
}

func buildDayCell(in AggregateInput, date time.Time) calendar.DayCell {
	cell := calendar.DayCell{
		Date:      date.Format("2006-01-02"),
		Weekday:   date.Weekday().String(),
		IsWeekend: date.Weekday() == time.Saturday || date.Weekday() == time.Sunday,
	}

	for _, h := range in.Holidays {
		if h.AppliesTo(date) {
			cell.IsPublicHoliday = true
			cell.PublicHolidayName = h.Name
			break
		}
	}
	for _, n := range in.NonWorkingDays {
		if n.AppliesTo(date) {
			cell.IsNonWorkingDay = true
			cell.NonWorkingReason = n.Reason
			break
		}
	}

	entry, hasEntry := dayEntry(in, date)
	if hasEntry {
		cell.HasEntry = true
		cell.Entry = &calendar.DayEntry{
			EntryID:           entry.ID,
			StartTime:         entry.StartTime.Format("15:04"),
			EndTime:           entry.EndTime.Format("15:04"),
			LunchBreakMinutes: entry.LunchBreakMinutes,
			PollutionLevel:    int(entry.PollutionLevel),
			WorkedMinutes:     entry.WorkedMinutes(),
			WorkedHours:       entry.WorkedHours(),
			Notes:             entry.Notes,
		}
		cell.VehicleInfo = dayVehicleInfo(in, entry)
		cell.Warnings = dayWarnings(in, entry)
	} else if isWorkday(cell) && !date.After(in.Today) {
		// Only elapsed workdays can be missing an entry; the future is
		// not late yet.
		cell.IsMissingEntry = true
	}

	return cell
}

func dayEntry(in AggregateInput, date time.Time) (timeentry.TimeEntry, bool) {
	for _, e := range in.Entries {
		if e.Date.Year() == date.Year() && e.Date.Month() == date.Month() && e.Date.Day() == date.Day() {
			return e, true
		}
	}
	return timeentry.TimeEntry{}, false
}

func dayVehicleInfo(in AggregateInput, entry timeentry.TimeEntry) *calendar.VehicleInfo {
	usage, ok := in.Usages[entry.ID]
	if !ok {
		return nil
	}

	info := &calendar.VehicleInfo{DistanceKm: usage.Distance()}
	switch u := usage.Usage.(type) {
	case timeentry.NoVehicle:
		info.NoVehicleUsed = true
	case timeentry.VehicleUsed:
		vehicleID := u.VehicleID
		info.VehicleID = &vehicleID
		if v, ok := in.Vehicles[u.VehicleID]; ok {
			label := v.Label()
			info.VehicleLabel = &label
		}
	}
	return info
}

// dayWarnings re-derives plausibility warnings for a stored entry so the
// calendar shows the same flags the submission did.
func dayWarnings(in AggregateInput, entry timeentry.TimeEntry) []timeentry.Warning {
	var usage *timeentry.VehicleUsage
	if u, ok := in.Usages[entry.ID]; ok {
		usage = &u
	}
	var veh *vehicle.Vehicle
	if usage != nil {
		if id := usage.VehicleID(); id != nil {
			if v, ok := in.Vehicles[*id]; ok {
				veh = &v
			}
		}
	}
	verdict := timeentry.ValidateEntry(entry, usage, veh, in.Today, in.Rules)
	return verdict.Warnings
}

// isWorkday: not a weekend, public holiday or personal non-working day.
func isWorkday(cell calendar.DayCell) bool {
	return !cell.IsWeekend && !cell.IsPublicHoliday && !cell.IsNonWorkingDay
}

func accumulate(summary *calendar.MonthSummary, cell calendar.DayCell) {
	if cell.IsWeekend {
		summary.Weekends++
	}
	if cell.IsPublicHoliday {
		summary.Holidays++
	}
	if cell.IsNonWorkingDay {
		summary.NonWorkingDays++
	}
	if isWorkday(cell) {
		summary.Workdays++
	}
	if cell.IsMissingEntry {
		summary.MissingEntries++
	}
	if !cell.HasEntry {
		return
	}

	summary.EntryCount++
	summary.TotalWorkedMinutes += cell.Entry.WorkedMinutes
	summary.WarningCount += len(cell.Warnings)

	if cell.VehicleInfo != nil {
		summary.TotalDistanceKm += cell.VehicleInfo.DistanceKm
		if cell.VehicleInfo.NoVehicleUsed {
			summary.NoVehicleDays++
		} else if cell.VehicleInfo.VehicleID != nil {
			summary.VehicleDays++
		}
	}
}

func matchesFilter(cell calendar.DayCell, filter *calendar.Filter) bool {
	if filter == nil {
		return true
	}

	if filter.From != nil || filter.To != nil {
		date, err := time.Parse("2006-01-02", cell.Date)
		if err != nil {
			return false
		}
		if filter.From != nil && date.Before(*filter.From) {
			return false
		}
		if filter.To != nil && date.After(*filter.To) {
			return false
		}
	}

	if filter.VehicleID != nil {
		if cell.VehicleInfo == nil || cell.VehicleInfo.VehicleID == nil || *cell.VehicleInfo.VehicleID != *filter.VehicleID {
			return false
		}
	}

	if filter.PollutionLevel != nil {
		if cell.Entry == nil || cell.Entry.PollutionLevel != int(*filter.PollutionLevel) {
			return false
		}
	}

	return true
}
