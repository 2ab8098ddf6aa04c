package timeentry

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/timeentry"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/user"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/vehicle"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/validator"
	"github.com/fleetwerk/timelog-backend-go/internal/service/fleet"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TimeEntryServiceImpl struct {
	timeentry.TimeEntryRepository
	vehicle.VehicleRepository
	continuity *fleet.ContinuityChecker
	rules      timeentry.Rules
}

func NewTimeEntryService(entryRepository timeentry.TimeEntryRepository, vehicleRepository vehicle.VehicleRepository, continuity *fleet.ContinuityChecker, rules timeentry.Rules) timeentry.TimeEntryService {
	return &TimeEntryServiceImpl{
		TimeEntryRepository: entryRepository,
		VehicleRepository:   vehicleRepository,
		continuity:          continuity,
		rules:               rules,
	}
}

func (s *TimeEntryServiceImpl) extractClaims(ctx context.Context) (userID string, role user.Role, err error) {
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

// resolveVehicle loads the vehicle a usage references, or nil when the usage
// used no vehicle. A missing vehicle is reported by the validator, not here.
func (s *TimeEntryServiceImpl) resolveVehicle(ctx context.Context, usage *timeentry.VehicleUsage) (*vehicle.Vehicle, error) {
	if usage == nil {
		return nil, nil
	}
	vehicleID := usage.VehicleID()
	if vehicleID == nil {
		return nil, nil
	}
	v, err := s.VehicleRepository.GetByID(ctx, *vehicleID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return &v, nil
}

// CreateEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) CreateEntry(ctx context.Context, req timeentry.CreateEntryRequest) (timeentry.EntryResponse, error) {
	actorID, actorRole, err := s.extractClaims(ctx)
	if err != nil {
		return timeentry.EntryResponse{}, err
	}

	if req.EmployeeID == "" {
		req.EmployeeID = actorID
	}
	if !user.CanAccessEmployeeData(actorID, actorRole, req.EmployeeID) {
		return timeentry.EntryResponse{}, user.ErrAccessToRecordDenied
	}

	if err := req.Validate(); err != nil {
		return timeentry.EntryResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	startTime, _ := validator.IsValidTimeOfDay(req.StartTime)
	endTime, _ := validator.IsValidTimeOfDay(req.EndTime)

	now := time.Now()
	entry := timeentry.TimeEntry{
		ID:                uuid.New().String(),
		EmployeeID:        req.EmployeeID,
		Date:              date,
		StartTime:         startTime,
		EndTime:           endTime,
		LunchBreakMinutes: req.LunchBreakMinutes,
		PollutionLevel:    timeentry.PollutionLevel(req.PollutionLevel),
		Notes:             req.Notes,
		CreatedBy:         actorID,
		UpdatedBy:         actorID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	var usage *timeentry.VehicleUsage
	if req.VehicleUsage != nil {
		variant, usageErrs := req.VehicleUsage.ToUsage()
		if len(usageErrs) > 0 {
			return timeentry.EntryResponse{}, usageErrs
		}
		usage = &timeentry.VehicleUsage{
			ID:          uuid.New().String(),
			TimeEntryID: entry.ID,
			Usage:       variant,
			Notes:       req.VehicleUsage.Notes,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	veh, err := s.resolveVehicle(ctx, usage)
	if err != nil {
		return timeentry.EntryResponse{}, err
	}

	verdict := timeentry.ValidateEntry(entry, usage, veh, now, s.rules)
	if !verdict.Accepted() {
		return timeentry.EntryResponse{}, verdict.Errors
	}

	persist := func() error {
		if used, ok := usageVariant(usage); ok {
			// The start reading anchors against the vehicle's prior history;
			// the end reading only has to beat the start, which the validator
			// already guaranteed.
			if err := s.continuity.Check(ctx, used.VehicleID, used.StartKilometers, entry.Date); err != nil {
				return err
			}
		}
		created, err := s.TimeEntryRepository.Create(ctx, entry, usage)
		if err != nil {
			return err
		}
		entry = created
		return nil
	}

	if used, ok := usageVariant(usage); ok {
		err = s.continuity.WithVehicleLock(used.VehicleID, persist)
	} else {
		err = persist()
	}
	if err != nil {
		return timeentry.EntryResponse{}, err
	}

	return s.toEntryResponse(entry, usage, veh, verdict.Warnings), nil
}

// GetEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) GetEntry(ctx context.Context, id string) (timeentry.EntryResponse, error) {
	actorID, actorRole, err := s.extractClaims(ctx)
	if err != nil {
		return timeentry.EntryResponse{}, err
	}

	entry, err := s.TimeEntryRepository.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timeentry.EntryResponse{}, timeentry.ErrEntryNotFound
		}
		return timeentry.EntryResponse{}, fmt.Errorf("failed to get time entry: %w", err)
	}

	if !user.CanAccessEmployeeData(actorID, actorRole, entry.EmployeeID) {
		return timeentry.EntryResponse{}, user.ErrAccessToRecordDenied
	}

	usage, err := s.TimeEntryRepository.GetUsage(ctx, entry.ID)
	if err != nil {
		return timeentry.EntryResponse{}, fmt.Errorf("failed to get vehicle usage: %w", err)
	}
	veh, err := s.resolveVehicle(ctx, usage)
	if err != nil {
		return timeentry.EntryResponse{}, err
	}

	return s.toEntryResponse(entry, usage, veh, nil), nil
}

// ListEntries implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) ListEntries(ctx context.Context, filter timeentry.EntryFilter) ([]timeentry.EntryResponse, error) {
	actorID, actorRole, err := s.extractClaims(ctx)
	if err != nil {
		return nil, err
	}

	if filter.EmployeeID == "" {
		filter.EmployeeID = actorID
	}
	if !user.CanAccessEmployeeData(actorID, actorRole, filter.EmployeeID) {
		return nil, user.ErrAccessToRecordDenied
	}

	entries, usages, err := s.TimeEntryRepository.ListForMonth(ctx, filter.EmployeeID, filter.Year, time.Month(filter.Month))
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}

	responses := make([]timeentry.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		var usage *timeentry.VehicleUsage
		if u, ok := usages[entry.ID]; ok {
			usage = &u
		}
		veh, err := s.resolveVehicle(ctx, usage)
		if err != nil {
			return nil, err
		}
		responses = append(responses, s.toEntryResponse(entry, usage, veh, nil))
	}
	return responses, nil
}

// UpdateEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) UpdateEntry(ctx context.Context, req timeentry.UpdateEntryRequest) (timeentry.EntryResponse, error) {
	actorID, actorRole, err := s.extractClaims(ctx)
	if err != nil {
		return timeentry.EntryResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return timeentry.EntryResponse{}, err
	}

	entry, err := s.TimeEntryRepository.GetByID(ctx, req.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timeentry.EntryResponse{}, timeentry.ErrEntryNotFound
		}
		return timeentry.EntryResponse{}, fmt.Errorf("failed to get time entry: %w", err)
	}

	if !user.CanAccessEmployeeData(actorID, actorRole, entry.EmployeeID) {
		return timeentry.EntryResponse{}, user.ErrAccessToRecordDenied
	}

	if req.StartTime != nil {
		entry.StartTime, _ = validator.IsValidTimeOfDay(*req.StartTime)
	}
	if req.EndTime != nil {
		entry.EndTime, _ = validator.IsValidTimeOfDay(*req.EndTime)
	}
	if req.LunchBreakMinutes != nil {
		entry.LunchBreakMinutes = *req.LunchBreakMinutes
	}
	if req.PollutionLevel != nil {
		entry.PollutionLevel = timeentry.PollutionLevel(*req.PollutionLevel)
	}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}
	now := time.Now()
	entry.UpdatedBy = actorID
	entry.UpdatedAt = now

	usage, err := s.TimeEntryRepository.GetUsage(ctx, entry.ID)
	if err != nil {
		return timeentry.EntryResponse{}, fmt.Errorf("failed to get vehicle usage: %w", err)
	}
	if req.VehicleUsage != nil {
		variant, usageErrs := req.VehicleUsage.ToUsage()
		if len(usageErrs) > 0 {
			return timeentry.EntryResponse{}, usageErrs
		}
		if usage == nil {
			usage = &timeentry.VehicleUsage{
				ID:          uuid.New().String(),
				TimeEntryID: entry.ID,
				CreatedAt:   now,
			}
		}
		usage.Usage = variant
		usage.Notes = req.VehicleUsage.Notes
		usage.UpdatedAt = now
	}

	veh, err := s.resolveVehicle(ctx, usage)
	if err != nil {
		return timeentry.EntryResponse{}, err
	}

	verdict := timeentry.ValidateEntry(entry, usage, veh, now, s.rules)
	if !verdict.Accepted() {
		return timeentry.EntryResponse{}, verdict.Errors
	}

	persist := func() error {
		if used, ok := usageVariant(usage); ok && req.VehicleUsage != nil {
			// An edited usage re-enters the history, so its start reading
			// anchors against the vehicle's prior readings exactly like a new
			// entry's does.
			if err := s.continuity.Check(ctx, used.VehicleID, used.StartKilometers, entry.Date); err != nil {
				return err
			}
		}
		if err := s.TimeEntryRepository.Update(ctx, entry, usage); err != nil {
			return fmt.Errorf("failed to update time entry: %w", err)
		}
		return nil
	}

	if used, ok := usageVariant(usage); ok {
		err = s.continuity.WithVehicleLock(used.VehicleID, persist)
	} else {
		err = persist()
	}
	if err != nil {
		return timeentry.EntryResponse{}, err
	}

	return s.toEntryResponse(entry, usage, veh, verdict.Warnings), nil
}

// DeleteEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	actorID, actorRole, err := s.extractClaims(ctx)
	if err != nil {
		return err
	}

	entry, err := s.TimeEntryRepository.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timeentry.ErrEntryNotFound
		}
		return fmt.Errorf("failed to get time entry: %w", err)
	}

	if !user.CanAccessEmployeeData(actorID, actorRole, entry.EmployeeID) {
		return user.ErrAccessToRecordDenied
	}

	if err := s.TimeEntryRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	return nil
}

func usageVariant(usage *timeentry.VehicleUsage) (timeentry.VehicleUsed, bool) {
	if usage == nil {
		return timeentry.VehicleUsed{}, false
	}
	used, ok := usage.Usage.(timeentry.VehicleUsed)
	return used, ok
}

func (s *TimeEntryServiceImpl) toEntryResponse(entry timeentry.TimeEntry, usage *timeentry.VehicleUsage, veh *vehicle.Vehicle, warnings []timeentry.Warning) timeentry.EntryResponse {
	resp := timeentry.EntryResponse{
		ID:                entry.ID,
		EmployeeID:        entry.EmployeeID,
		Date:              entry.Date.Format("2006-01-02"),
		StartTime:         entry.StartTime.Format("15:04"),
		EndTime:           entry.EndTime.Format("15:04"),
		LunchBreakMinutes: entry.LunchBreakMinutes,
		PollutionLevel:    int(entry.PollutionLevel),
		WorkedMinutes:     entry.WorkedMinutes(),
		Notes:             entry.Notes,
		Warnings:          warnings,
		CreatedAt:         entry.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         entry.UpdatedAt.Format(time.RFC3339),
	}
	if entry.EmployeeName != nil {
		resp.EmployeeName = *entry.EmployeeName
	}

	if usage != nil {
		usageResp := &timeentry.VehicleUsageResponse{
			Distance: usage.Distance(),
			Notes:    usage.Notes,
		}
		switch u := usage.Usage.(type) {
		case timeentry.NoVehicle:
			usageResp.NoVehicleUsed = true
		case timeentry.VehicleUsed:
			vehicleID := u.VehicleID
			startKm := u.StartKilometers
			endKm := u.EndKilometers
			usageResp.VehicleID = &vehicleID
			usageResp.StartKilometers = &startKm
			usageResp.EndKilometers = &endKm
			if veh != nil {
				label := veh.Label()
				usageResp.VehicleLabel = &label
			}
		}
		resp.VehicleUsage = usageResp
	}

	return resp
}
