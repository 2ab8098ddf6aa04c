package timeentry

import (
	"testing"
	"time"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tod(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}

func validEntry() TimeEntry {
	return TimeEntry{
		ID:                "entry-1",
		EmployeeID:        "emp-1",
		Date:              time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		StartTime:         tod(8, 0),
		EndTime:           tod(16, 30),
		LunchBreakMinutes: 30,
		PollutionLevel:    PollutionLow,
	}
}

func activeVehicle() *vehicle.Vehicle {
	return &vehicle.Vehicle{
		ID:           "veh-1",
		LicensePlate: "AB123CD",
		Make:         "Ford",
		Model:        "Transit",
		Year:         2020,
		IsActive:     true,
	}
}

var testNow = time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

func errorFields(v Verdict) []string {
	fields := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

func warningCodes(v Verdict) []string {
	codes := make([]string, 0, len(v.Warnings))
	for _, w := range v.Warnings {
		codes = append(codes, w.Code)
	}
	return codes
}

func TestValidateEntry_ValidDayPasses(t *testing.T) {
	t.Parallel()
	verdict := ValidateEntry(validEntry(), nil, nil, testNow, DefaultRules())

	assert.True(t, verdict.Accepted())
	assert.Empty(t, verdict.Warnings)
}

func TestValidateEntry_FutureDateRejected(t *testing.T) {
	t.Parallel()
	entry := validEntry()
	entry.Date = testNow.AddDate(0, 0, 2)

	verdict := ValidateEntry(entry, nil, nil, testNow, DefaultRules())

	assert.False(t, verdict.Accepted())
	assert.Contains(t, errorFields(verdict), "date")
}

func TestValidateEntry_EndBeforeStartRejected(t *testing.T) {
	t.Parallel()
	entry := validEntry()
	entry.StartTime = tod(16, 0)
	entry.EndTime = tod(8, 0)

	verdict := ValidateEntry(entry, nil, nil, testNow, DefaultRules())

	assert.False(t, verdict.Accepted())
	assert.Contains(t, errorFields(verdict), "end_time")
}

func TestValidateEntry_OvernightShiftAccepted(t *testing.T) {
	t.Parallel()
	entry := validEntry()
	entry.StartTime = tod(22, 0)
	entry.EndTime = tod(6, 0)
	entry.LunchBreakMinutes = 0

	verdict := ValidateEntry(entry, nil, nil, testNow, DefaultRules())

	assert.True(t, verdict.Accepted())
	assert.True(t, entry.IsOvernight())
	assert.Equal(t, 8*60, entry.WorkedMinutes())
}

func TestValidateEntry_EveningStartWithAfternoonEndRejected(t *testing.T) {
	t.Parallel()
	// Ends at 14:00, past the overnight morning cutoff.
	entry := validEntry()
	entry.StartTime = tod(19, 0)
	entry.EndTime = tod(14, 0)

	verdict := ValidateEntry(entry, nil, nil, testNow, DefaultRules())

	assert.False(t, verdict.Accepted())
	assert.Contains(t, errorFields(verdict), "end_time")
}

func TestValidateEntry_OvernightEndingAtNoonAccepted(t *testing.T) {
	t.Parallel()
	entry := validEntry()
	entry.StartTime = tod(18, 0)
	entry.EndTime = tod(12, 0)
	entry.LunchBreakMinutes = 0

	verdict := ValidateEntry(entry, nil, nil, testNow, DefaultRules())

	assert.True(t, verdict.Accepted())
	assert.True(t, entry.IsOvernight())
	assert.Equal(t, 18*60, entry.WorkedMinutes())
}

func TestValidateEntry_OvernightEndingPastNoonRejected(t *testing.T) {
	t.Parallel()
	// 12:30 is past the noon cutoff, even though the hour is still 12.
	entry := validEntry()
	entry.StartTime = tod(22, 0)
	entry.EndTime = tod(12, 30)

	verdict := ValidateEntry(entry, nil, nil, testNow, DefaultRules())

	assert.False(t, verdict.Accepted())
	assert.False(t, entry.IsOvernight())
	assert.Contains(t, errorFields(verdict), "end_time")
}

func TestValidateEntry_LunchSwallowsShiftRejected(t *testing.T) {
	t.Parallel()
	entry := validEntry()
	entry.StartTime = tod(9, 0)
	entry.EndTime = tod(10, 0)
	entry.LunchBreakMinutes = 60

	verdict := ValidateEntry(entry, nil, nil, testNow, DefaultRules())

	assert.False(t, verdict.Accepted())
}

func TestValidateEntry_NegativeLunchRejected(t *testing.T) {
	t.Parallel()
	entry := validEntry()
	entry.LunchBreakMinutes = -15

	verdict := ValidateEntry(entry, nil, nil, testNow, DefaultRules())

	assert.False(t, verdict.Accepted())
	assert.Contains(t, errorFields(verdict), "lunch_break_minutes")
}

func TestValidateEntry_PollutionLevelBounds(t *testing.T) {
	t.Parallel()
	for _, level := range []PollutionLevel{0, 4, -1} {
		entry := validEntry()
		entry.PollutionLevel = level
		verdict := ValidateEntry(entry, nil, nil, testNow, DefaultRules())
		assert.False(t, verdict.Accepted(), "level %d should be rejected", level)
	}
	for _, level := range []PollutionLevel{PollutionLow, PollutionMedium, PollutionHigh} {
		entry := validEntry()
		entry.PollutionLevel = level
		verdict := ValidateEntry(entry, nil, nil, testNow, DefaultRules())
		assert.True(t, verdict.Accepted(), "level %d should pass", level)
	}
}

func TestValidateEntry_LongShiftWarnsButAccepts(t *testing.T) {
	t.Parallel()
	entry := validEntry()
	entry.StartTime = tod(6, 0)
	entry.EndTime = tod(20, 0)
	entry.LunchBreakMinutes = 30

	verdict := ValidateEntry(entry, nil, nil, testNow, DefaultRules())

	assert.True(t, verdict.Accepted())
	assert.Contains(t, warningCodes(verdict), WarningLongShift)
}

func TestValidateEntry_LongLunchWarnsButAccepts(t *testing.T) {
	t.Parallel()
	entry := validEntry()
	entry.StartTime = tod(9, 0)
	entry.EndTime = tod(13, 0)
	entry.LunchBreakMinutes = 150

	verdict := ValidateEntry(entry, nil, nil, testNow, DefaultRules())

	assert.True(t, verdict.Accepted())
	assert.Contains(t, warningCodes(verdict), WarningLongLunch)
}

func TestValidateEntry_VehicleUsageOdometerChecks(t *testing.T) {
	t.Parallel()
	entry := validEntry()
	veh := activeVehicle()

	usage := &VehicleUsage{
		ID:          "usage-1",
		TimeEntryID: entry.ID,
		Usage: VehicleUsed{
			VehicleID:       veh.ID,
			StartKilometers: 50200,
			EndKilometers:   50100,
		},
	}

	verdict := ValidateEntry(entry, usage, veh, testNow, DefaultRules())

	assert.False(t, verdict.Accepted())
	assert.Contains(t, errorFields(verdict), "end_kilometers")
}

func TestValidateEntry_NegativeOdometerRejected(t *testing.T) {
	t.Parallel()
	entry := validEntry()
	veh := activeVehicle()
	usage := &VehicleUsage{
		Usage: VehicleUsed{VehicleID: veh.ID, StartKilometers: -1, EndKilometers: 100},
	}

	verdict := ValidateEntry(entry, usage, veh, testNow, DefaultRules())

	assert.False(t, verdict.Accepted())
	assert.Contains(t, errorFields(verdict), "start_kilometers")
}

func TestValidateEntry_UnknownVehicleRejected(t *testing.T) {
	t.Parallel()
	entry := validEntry()
	usage := &VehicleUsage{
		Usage: VehicleUsed{VehicleID: "veh-gone", StartKilometers: 0, EndKilometers: 10},
	}

	verdict := ValidateEntry(entry, usage, nil, testNow, DefaultRules())

	assert.False(t, verdict.Accepted())
	assert.Contains(t, errorFields(verdict), "vehicle_id")
}

func TestValidateEntry_InactiveVehicleRejected(t *testing.T) {
	t.Parallel()
	entry := validEntry()
	veh := activeVehicle()
	veh.IsActive = false
	usage := &VehicleUsage{
		Usage: VehicleUsed{VehicleID: veh.ID, StartKilometers: 0, EndKilometers: 10},
	}

	verdict := ValidateEntry(entry, usage, veh, testNow, DefaultRules())

	assert.False(t, verdict.Accepted())
	assert.Contains(t, errorFields(verdict), "vehicle_id")
}

func TestValidateEntry_ImplausibleDistanceWarnsButAccepts(t *testing.T) {
	t.Parallel()
	entry := validEntry()
	veh := activeVehicle()
	usage := &VehicleUsage{
		Usage: VehicleUsed{VehicleID: veh.ID, StartKilometers: 50000, EndKilometers: 50501},
	}

	verdict := ValidateEntry(entry, usage, veh, testNow, DefaultRules())

	require.True(t, verdict.Accepted())
	assert.Contains(t, warningCodes(verdict), WarningImplausibleDistance)
}

func TestValidateEntry_DistanceAtThresholdPassesSilently(t *testing.T) {
	t.Parallel()
	entry := validEntry()
	veh := activeVehicle()
	usage := &VehicleUsage{
		Usage: VehicleUsed{VehicleID: veh.ID, StartKilometers: 50000, EndKilometers: 50500},
	}

	verdict := ValidateEntry(entry, usage, veh, testNow, DefaultRules())

	assert.True(t, verdict.Accepted())
	assert.Empty(t, verdict.Warnings)
}

func TestValidateEntry_NoVehicleDayPasses(t *testing.T) {
	t.Parallel()
	entry := validEntry()
	usage := &VehicleUsage{Usage: NoVehicle{}}

	verdict := ValidateEntry(entry, usage, nil, testNow, DefaultRules())

	assert.True(t, verdict.Accepted())
	assert.Equal(t, 0, usage.Distance())
}
