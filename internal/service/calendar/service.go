package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/calendar"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/timeentry"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/user"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/vehicle"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CalendarServiceImpl struct {
	calendar.HolidayRepository
	calendar.NonWorkingDayRepository
	timeentry.TimeEntryRepository
	vehicle.VehicleRepository
	rules timeentry.Rules
}

func NewCalendarService(
	holidayRepository calendar.HolidayRepository,
	nonWorkingDayRepository calendar.NonWorkingDayRepository,
	entryRepository timeentry.TimeEntryRepository,
	vehicleRepository vehicle.VehicleRepository,
	rules timeentry.Rules,
) calendar.CalendarService {
	return &CalendarServiceImpl{
		HolidayRepository:       holidayRepository,
		NonWorkingDayRepository: nonWorkingDayRepository,
		TimeEntryRepository:     entryRepository,
		VehicleRepository:       vehicleRepository,
		rules:                   rules,
	}
}

func (s *CalendarServiceImpl) extractClaims(ctx context.Context) (userID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	roleStr, _ := claims["role"].(string)
	return userID, user.Role(roleStr), nil
}

// AggregateMonth implements calendar.CalendarService.
func (s *CalendarServiceImpl) AggregateMonth(ctx context.Context, employeeID string, year, month int, filter *calendar.Filter, mode calendar.Mode) (calendar.MonthView, error) {
	actorID, actorRole, err := s.extractClaims(ctx)
	if err != nil {
		return calendar.MonthView{}, err
	}

	if employeeID == "" {
		employeeID = actorID
	}
	if !user.CanAccessEmployeeData(actorID, actorRole, employeeID) {
		return calendar.MonthView{}, user.ErrAccessToRecordDenied
	}

	if year < 1900 || month < 1 || month > 12 {
		return calendar.MonthView{}, calendar.ErrInvalidPeriod
	}
	if mode == "" {
		mode = calendar.ModeDetailFilter
	}
	if !mode.Valid() {
		return calendar.MonthView{}, calendar.ErrInvalidMode
	}

	entries, usages, err := s.TimeEntryRepository.ListForMonth(ctx, employeeID, year, time.Month(month))
	if err != nil {
		return calendar.MonthView{}, fmt.Errorf("failed to list time entries: %w", err)
	}

	holidays, err := s.HolidayRepository.ListForYear(ctx, year)
	if err != nil {
		return calendar.MonthView{}, fmt.Errorf("failed to list public holidays: %w", err)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	nonWorking, err := s.NonWorkingDayRepository.ListForEmployee(ctx, employeeID, first, last)
	if err != nil {
		return calendar.MonthView{}, fmt.Errorf("failed to list non-working days: %w", err)
	}

	vehicles := make(map[string]vehicle.Vehicle)
	for _, u := range usages {
		id := u.VehicleID()
		if id == nil {
			continue
		}
		if _, ok := vehicles[*id]; ok {
			continue
		}
		v, err := s.VehicleRepository.GetByID(ctx, *id)
		if err != nil {
			if err == pgx.ErrNoRows {
				continue
			}
			return calendar.MonthView{}, fmt.Errorf("failed to get vehicle: %w", err)
		}
		vehicles[*id] = v
	}

	view := AggregateMonth(AggregateInput{
		EmployeeID:     employeeID,
		Year:           year,
		Month:          time.Month(month),
		Entries:        entries,
		Usages:         usages,
		Vehicles:       vehicles,
		Holidays:       holidays,
		NonWorkingDays: nonWorking,
		Rules:          s.rules,
		Today:          time.Now().UTC().Truncate(24 * time.Hour),
	}, filter, mode)

	return view, nil
}

// CreateHoliday implements calendar.CalendarService.
func (s *CalendarServiceImpl) CreateHoliday(ctx context.Context, req calendar.CreateHolidayRequest) (calendar.PublicHoliday, error) {
	_, role, err := s.extractClaims(ctx)
	if err != nil {
		return calendar.PublicHoliday{}, err
	}
	if !user.HasPermission(role, user.PermissionCalendarManage) {
		return calendar.PublicHoliday{}, user.ErrBackofficeRequired
	}

	if err := req.Validate(); err != nil {
		return calendar.PublicHoliday{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	now := time.Now()
	created, err := s.HolidayRepository.Create(ctx, calendar.PublicHoliday{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Date:        date,
		IsRecurring: req.IsRecurring,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return calendar.PublicHoliday{}, fmt.Errorf("failed to create public holiday: %w", err)
	}
	return created, nil
}

// ListHolidays implements calendar.CalendarService.
func (s *CalendarServiceImpl) ListHolidays(ctx context.Context, year int) ([]calendar.PublicHoliday, error) {
	holidays, err := s.HolidayRepository.ListForYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list public holidays: %w", err)
	}
	return holidays, nil
}

// DeleteHoliday implements calendar.CalendarService.
func (s *CalendarServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	_, role, err := s.extractClaims(ctx)
	if err != nil {
		return err
	}
	if !user.HasPermission(role, user.PermissionCalendarManage) {
		return user.ErrBackofficeRequired
	}

	if err := s.HolidayRepository.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return calendar.ErrHolidayNotFound
		}
		return fmt.Errorf("failed to delete public holiday: %w", err)
	}
	return nil
}

// CreateNonWorkingDay implements calendar.CalendarService.
func (s *CalendarServiceImpl) CreateNonWorkingDay(ctx context.Context, req calendar.CreateNonWorkingDayRequest) (calendar.NonWorkingDay, error) {
	_, role, err := s.extractClaims(ctx)
	if err != nil {
		return calendar.NonWorkingDay{}, err
	}
	if !user.HasPermission(role, user.PermissionCalendarManage) {
		return calendar.NonWorkingDay{}, user.ErrBackofficeRequired
	}

	if err := req.Validate(); err != nil {
		return calendar.NonWorkingDay{}, err
	}

	now := time.Now()
	day := calendar.NonWorkingDay{
		ID:         uuid.New().String(),
		EmployeeID: req.EmployeeID,
		Pattern:    calendar.Pattern(req.Pattern),
		Reason:     req.Reason,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Date != nil {
		d, _ := validator.IsValidDate(*req.Date)
		day.Date = &d
	}
	if req.Weekday != nil {
		w := time.Weekday(*req.Weekday)
		day.Weekday = &w
	}
	day.DayOfMonth = req.DayOfMonth
	if req.ValidFrom != nil {
		d, _ := validator.IsValidDate(*req.ValidFrom)
		day.ValidFrom = &d
	}
	if req.ValidUntil != nil {
		d, _ := validator.IsValidDate(*req.ValidUntil)
		day.ValidUntil = &d
	}

	created, err := s.NonWorkingDayRepository.Create(ctx, day)
	if err != nil {
		return calendar.NonWorkingDay{}, fmt.Errorf("failed to create non-working day: %w", err)
	}
	return created, nil
}

// DeleteNonWorkingDay implements calendar.CalendarService.
func (s *CalendarServiceImpl) DeleteNonWorkingDay(ctx context.Context, id string) error {
	_, role, err := s.extractClaims(ctx)
	if err != nil {
		return err
	}
	if !user.HasPermission(role, user.PermissionCalendarManage) {
		return user.ErrBackofficeRequired
	}

	if err := s.NonWorkingDayRepository.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return calendar.ErrNonWorkingDayNotFound
		}
		return fmt.Errorf("failed to delete non-working day: %w", err)
	}
	return nil
}
