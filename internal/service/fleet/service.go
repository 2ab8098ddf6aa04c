package fleet

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/user"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/vehicle"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VehicleServiceImpl struct {
	vehicle.VehicleRepository
	vehicle.ReadingRepository
	continuity *ContinuityChecker
}

func NewVehicleService(vehicleRepository vehicle.VehicleRepository, readingRepository vehicle.ReadingRepository, continuity *ContinuityChecker) vehicle.VehicleService {
	return &VehicleServiceImpl{
		VehicleRepository: vehicleRepository,
		ReadingRepository: readingRepository,
		continuity:        continuity,
	}
}

func (s *VehicleServiceImpl) extractClaims(ctx context.Context) (userID string, role user.Role, err error) {
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

// CreateVehicle implements vehicle.VehicleService.
func (s *VehicleServiceImpl) CreateVehicle(ctx context.Context, req vehicle.CreateVehicleRequest) (vehicle.VehicleResponse, error) {
	_, role, err := s.extractClaims(ctx)
	if err != nil {
		return vehicle.VehicleResponse{}, err
	}
	if !user.HasPermission(role, user.PermissionVehicleManage) {
		return vehicle.VehicleResponse{}, user.ErrBackofficeRequired
	}

	if err := req.Validate(); err != nil {
		return vehicle.VehicleResponse{}, err
	}

	plate := validator.NormalizePlate(req.LicensePlate)
	if _, err := s.VehicleRepository.GetByPlate(ctx, plate); err == nil {
		return vehicle.VehicleResponse{}, vehicle.ErrPlateExists
	} else if err != pgx.ErrNoRows {
		return vehicle.VehicleResponse{}, fmt.Errorf("failed to check license plate: %w", err)
	}

	fuelType := vehicle.FuelType(req.FuelType)
	if req.FuelType == "" {
		fuelType = vehicle.FuelOther
	}

	now := time.Now()
	created, err := s.VehicleRepository.Create(ctx, vehicle.Vehicle{
		ID:           uuid.New().String(),
		LicensePlate: plate,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Color:        req.Color,
		FuelType:     fuelType,
		IsActive:     true,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return vehicle.VehicleResponse{}, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return toVehicleResponse(created), nil
}

// GetVehicle implements vehicle.VehicleService.
func (s *VehicleServiceImpl) GetVehicle(ctx context.Context, id string) (vehicle.VehicleResponse, error) {
	v, err := s.VehicleRepository.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return vehicle.VehicleResponse{}, vehicle.ErrVehicleNotFound
		}
		return vehicle.VehicleResponse{}, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return toVehicleResponse(v), nil
}

// ListVehicles implements vehicle.VehicleService.
func (s *VehicleServiceImpl) ListVehicles(ctx context.Context, activeOnly bool) ([]vehicle.VehicleResponse, error) {
	vehicles, err := s.VehicleRepository.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	responses := make([]vehicle.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		responses = append(responses, toVehicleResponse(v))
	}
	return responses, nil
}

// UpdateVehicle implements vehicle.VehicleService.
func (s *VehicleServiceImpl) UpdateVehicle(ctx context.Context, req vehicle.UpdateVehicleRequest) (vehicle.VehicleResponse, error) {
	_, role, err := s.extractClaims(ctx)
	if err != nil {
		return vehicle.VehicleResponse{}, err
	}
	if !user.HasPermission(role, user.PermissionVehicleManage) {
		return vehicle.VehicleResponse{}, user.ErrBackofficeRequired
	}

	if err := req.Validate(); err != nil {
		return vehicle.VehicleResponse{}, err
	}

	v, err := s.VehicleRepository.GetByID(ctx, req.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return vehicle.VehicleResponse{}, vehicle.ErrVehicleNotFound
		}
		return vehicle.VehicleResponse{}, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if req.Make != nil {
		v.Make = *req.Make
	}
	if req.Model != nil {
		v.Model = *req.Model
	}
	if req.Year != nil {
		v.Year = *req.Year
	}
	if req.Color != nil {
		v.Color = *req.Color
	}
	if req.FuelType != nil {
		v.FuelType = vehicle.FuelType(*req.FuelType)
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	if req.Notes != nil {
		v.Notes = *req.Notes
	}
	v.UpdatedAt = time.Now()

	if err := s.VehicleRepository.Update(ctx, v); err != nil {
		return vehicle.VehicleResponse{}, fmt.Errorf("failed to update vehicle: %w", err)
	}

	return toVehicleResponse(v), nil
}

// DeactivateVehicle implements vehicle.VehicleService.
func (s *VehicleServiceImpl) DeactivateVehicle(ctx context.Context, id string) (vehicle.VehicleResponse, error) {
	inactive := false
	return s.UpdateVehicle(ctx, vehicle.UpdateVehicleRequest{ID: id, IsActive: &inactive})
}

// DeleteVehicle implements vehicle.VehicleService.
func (s *VehicleServiceImpl) DeleteVehicle(ctx context.Context, id string) error {
	_, role, err := s.extractClaims(ctx)
	if err != nil {
		return err
	}
	if !user.HasPermission(role, user.PermissionVehicleManage) {
		return user.ErrBackofficeRequired
	}

	history, err := s.ReadingRepository.History(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load vehicle history: %w", err)
	}
	if len(history) > 0 {
		return vehicle.ErrVehicleHasHistory
	}

	if err := s.VehicleRepository.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return vehicle.ErrVehicleNotFound
		}
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return nil
}

// CheckOdometerContinuity implements vehicle.VehicleService.
func (s *VehicleServiceImpl) CheckOdometerContinuity(ctx context.Context, vehicleID string, kilometers int, asOf time.Time) error {
	return s.continuity.Check(ctx, vehicleID, kilometers, asOf)
}

func toVehicleResponse(v vehicle.Vehicle) vehicle.VehicleResponse {
	return vehicle.VehicleResponse{
		ID:           v.ID,
		LicensePlate: v.LicensePlate,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		Color:        v.Color,
		FuelType:     string(v.FuelType),
		IsActive:     v.IsActive,
		Notes:        v.Notes,
		Label:        v.Label(),
		CreatedAt:    v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    v.UpdatedAt.Format(time.RFC3339),
	}
}
