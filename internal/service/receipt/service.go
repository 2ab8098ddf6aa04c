package receipt

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/receipt"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/user"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/vehicle"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/validator"
	"github.com/fleetwerk/timelog-backend-go/internal/service/file"
	"github.com/fleetwerk/timelog-backend-go/internal/service/fleet"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReceiptServiceImpl struct {
	receipt.ReceiptRepository
	vehicle.VehicleRepository
	fileService file.FileService
	continuity  *fleet.ContinuityChecker
}

func NewReceiptService(receiptRepository receipt.ReceiptRepository, vehicleRepository vehicle.VehicleRepository, fileService file.FileService, continuity *fleet.ContinuityChecker) receipt.ReceiptService {
	return &ReceiptServiceImpl{
		ReceiptRepository: receiptRepository,
		VehicleRepository: vehicleRepository,
		fileService:       fileService,
		continuity:        continuity,
	}
}

func (s *ReceiptServiceImpl) extractClaims(ctx context.Context) (userID string, role user.Role, err error) {
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

// SubmitReceipt implements receipt.ReceiptService.
func (s *ReceiptServiceImpl) SubmitReceipt(ctx context.Context, req receipt.SubmitReceiptRequest) (receipt.ReceiptResponse, error) {
	actorID, _, err := s.extractClaims(ctx)
	if err != nil {
		return receipt.ReceiptResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return receipt.ReceiptResponse{}, err
	}

	veh, err := s.VehicleRepository.GetByID(ctx, req.VehicleID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return receipt.ReceiptResponse{}, vehicle.ErrVehicleNotFound
		}
		return receipt.ReceiptResponse{}, fmt.Errorf("failed to get vehicle: %w", err)
	}
	if !veh.IsActive {
		return receipt.ReceiptResponse{}, vehicle.ErrVehicleInactive
	}

	now := time.Now()

	var purchaseDate *time.Time
	if req.FuelPurchaseDate != nil {
		d, _ := validator.IsValidDate(*req.FuelPurchaseDate)
		if d.After(now) {
			return receipt.ReceiptResponse{}, validator.ValidationErrors{{
				Field:   "fuel_purchase_date",
				Message: "fuel purchase date cannot be in the future",
			}}
		}
		if now.Sub(d) > receipt.MaxPurchaseAge {
			return receipt.ReceiptResponse{}, validator.ValidationErrors{{
				Field:   "fuel_purchase_date",
				Message: "fuel purchase date is more than 30 days old",
			}}
		}
		purchaseDate = &d
	}

	rec := receipt.FuelReceipt{
		ID:               uuid.New().String(),
		VehicleID:        req.VehicleID,
		EmployeeID:       actorID,
		OdometerReading:  req.OdometerReading,
		ReceiptDate:      now,
		FuelAmountLiters: req.FuelAmountLiters,
		TotalCost:        req.TotalCost,
		GasStation:       req.GasStation,
		FuelPurchaseDate: purchaseDate,
		Notes:            req.Notes,
		Status:           receipt.StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// The receipt's reading is positioned in the history by its purchase date
	// when one was given, otherwise by the submission time.
	asOf := now
	if purchaseDate != nil {
		asOf = *purchaseDate
	}

	err = s.continuity.WithVehicleLock(req.VehicleID, func() error {
		if err := s.continuity.Check(ctx, req.VehicleID, req.OdometerReading, asOf); err != nil {
			return err
		}

		imageDate := now
		if purchaseDate != nil {
			imageDate = *purchaseDate
		}
		imageKey, err := s.fileService.UploadReceiptImage(ctx, actorID, imageDate, req.File, req.FileHeader.Filename)
		if err != nil {
			return fmt.Errorf("failed to store receipt image: %w", err)
		}
		rec.ImageKey = imageKey

		created, err := s.ReceiptRepository.Create(ctx, rec)
		if err != nil {
			// The orphaned image is cheap; the dangling row would not be.
			_ = s.fileService.DeleteFile(ctx, imageKey)
			return fmt.Errorf("failed to create fuel receipt: %w", err)
		}
		rec = created
		return nil
	})
	if err != nil {
		return receipt.ReceiptResponse{}, err
	}

	return s.toReceiptResponse(ctx, rec, time.Now()), nil
}

// GetReceipt implements receipt.ReceiptService.
func (s *ReceiptServiceImpl) GetReceipt(ctx context.Context, id string) (receipt.ReceiptResponse, error) {
	actorID, actorRole, err := s.extractClaims(ctx)
	if err != nil {
		return receipt.ReceiptResponse{}, err
	}

	rec, err := s.ReceiptRepository.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return receipt.ReceiptResponse{}, receipt.ErrReceiptNotFound
		}
		return receipt.ReceiptResponse{}, fmt.Errorf("failed to get fuel receipt: %w", err)
	}

	if !user.CanAccessEmployeeData(actorID, actorRole, rec.EmployeeID) {
		return receipt.ReceiptResponse{}, user.ErrAccessToRecordDenied
	}

	return s.toReceiptResponse(ctx, rec, time.Now()), nil
}

// ListReceipts implements receipt.ReceiptService.
func (s *ReceiptServiceImpl) ListReceipts(ctx context.Context, filter receipt.ReceiptFilter) ([]receipt.ReceiptResponse, error) {
	actorID, actorRole, err := s.extractClaims(ctx)
	if err != nil {
		return nil, err
	}

	// Employees are always scoped to their own receipts.
	if !user.HasPermission(actorRole, user.PermissionReceiptViewAll) {
		filter.EmployeeID = actorID
	}

	receipts, err := s.ReceiptRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list fuel receipts: %w", err)
	}

	now := time.Now()
	responses := make([]receipt.ReceiptResponse, 0, len(receipts))
	for _, rec := range receipts {
		responses = append(responses, s.toReceiptResponse(ctx, rec, now))
	}
	return responses, nil
}

// UpdateReceipt implements receipt.ReceiptService.
func (s *ReceiptServiceImpl) UpdateReceipt(ctx context.Context, req receipt.UpdateReceiptRequest) (receipt.ReceiptResponse, error) {
	actorID, actorRole, err := s.extractClaims(ctx)
	if err != nil {
		return receipt.ReceiptResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return receipt.ReceiptResponse{}, err
	}

	rec, err := s.ReceiptRepository.GetByID(ctx, req.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return receipt.ReceiptResponse{}, receipt.ErrReceiptNotFound
		}
		return receipt.ReceiptResponse{}, fmt.Errorf("failed to get fuel receipt: %w", err)
	}

	if !user.CanAccessEmployeeData(actorID, actorRole, rec.EmployeeID) {
		return receipt.ReceiptResponse{}, user.ErrAccessToRecordDenied
	}

	now := time.Now()
	if !rec.CanBeEdited(now) {
		if rec.Status.Terminal() {
			return receipt.ReceiptResponse{}, receipt.ErrAlreadyProcessed
		}
		return receipt.ReceiptResponse{}, receipt.ErrEditWindowClosed
	}

	if req.VehicleID != nil && *req.VehicleID != rec.VehicleID {
		veh, err := s.VehicleRepository.GetByID(ctx, *req.VehicleID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return receipt.ReceiptResponse{}, vehicle.ErrVehicleNotFound
			}
			return receipt.ReceiptResponse{}, fmt.Errorf("failed to get vehicle: %w", err)
		}
		if !veh.IsActive {
			return receipt.ReceiptResponse{}, vehicle.ErrVehicleInactive
		}
		rec.VehicleID = veh.ID
	}
	if req.OdometerReading != nil {
		rec.OdometerReading = *req.OdometerReading
	}
	if req.FuelAmountLiters != nil {
		rec.FuelAmountLiters = req.FuelAmountLiters
	}
	if req.TotalCost != nil {
		rec.TotalCost = req.TotalCost
	}
	if req.GasStation != nil {
		rec.GasStation = *req.GasStation
	}
	if req.Notes != nil {
		rec.Notes = *req.Notes
	}
	rec.UpdatedAt = now

	asOf := rec.ReceiptDate
	if rec.FuelPurchaseDate != nil {
		asOf = *rec.FuelPurchaseDate
	}

	err = s.continuity.WithVehicleLock(rec.VehicleID, func() error {
		if req.OdometerReading != nil || req.VehicleID != nil {
			if err := s.continuity.Check(ctx, rec.VehicleID, rec.OdometerReading, asOf); err != nil {
				return err
			}
		}
		return s.ReceiptRepository.UpdateDetails(ctx, rec)
	})
	if err != nil {
		return receipt.ReceiptResponse{}, err
	}

	return s.toReceiptResponse(ctx, rec, now), nil
}

// TransitionReceipt implements receipt.ReceiptService.
func (s *ReceiptServiceImpl) TransitionReceipt(ctx context.Context, req receipt.TransitionReceiptRequest) (receipt.ReceiptResponse, error) {
	actorID, actorRole, err := s.extractClaims(ctx)
	if err != nil {
		return receipt.ReceiptResponse{}, err
	}
	if !user.HasPermission(actorRole, user.PermissionReceiptApprove) {
		return receipt.ReceiptResponse{}, user.ErrBackofficeRequired
	}

	if err := req.Validate(); err != nil {
		return receipt.ReceiptResponse{}, err
	}

	rec, err := s.ReceiptRepository.GetByID(ctx, req.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return receipt.ReceiptResponse{}, receipt.ErrReceiptNotFound
		}
		return receipt.ReceiptResponse{}, fmt.Errorf("failed to get fuel receipt: %w", err)
	}

	next, err := receipt.Transition(rec.Status, receipt.Action(req.Action))
	if err != nil {
		return receipt.ReceiptResponse{}, err
	}

	// The repository swap re-checks the status, so a concurrent transition
	// that landed between our read and this write loses cleanly.
	if err := s.ReceiptRepository.TransitionStatus(ctx, rec.ID, rec.Status, next, actorID, req.Reason); err != nil {
		return receipt.ReceiptResponse{}, err
	}

	now := time.Now()
	rec.Status = next
	rec.ApprovedBy = &actorID
	rec.ApprovedAt = &now
	rec.RejectionReason = req.Reason
	rec.UpdatedAt = now

	return s.toReceiptResponse(ctx, rec, now), nil
}

func (s *ReceiptServiceImpl) toReceiptResponse(ctx context.Context, rec receipt.FuelReceipt, now time.Time) receipt.ReceiptResponse {
	resp := receipt.ReceiptResponse{
		ID:               rec.ID,
		VehicleID:        rec.VehicleID,
		EmployeeID:       rec.EmployeeID,
		OdometerReading:  rec.OdometerReading,
		ReceiptDate:      rec.ReceiptDate.Format(time.RFC3339),
		FuelAmountLiters: rec.FuelAmountLiters,
		TotalCost:        rec.TotalCost,
		GasStation:       rec.GasStation,
		Notes:            rec.Notes,
		Status:           string(rec.Status),
		ApprovedBy:       rec.ApprovedBy,
		RejectionReason:  rec.RejectionReason,
		CanBeEdited:      rec.CanBeEdited(now),
		CreatedAt:        rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        rec.UpdatedAt.Format(time.RFC3339),
	}
	if rec.FuelPurchaseDate != nil {
		d := rec.FuelPurchaseDate.Format("2006-01-02")
		resp.FuelPurchaseDate = &d
	}
	if rec.ApprovedAt != nil {
		at := rec.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &at
	}
	if rec.EmployeeName != nil {
		resp.EmployeeName = *rec.EmployeeName
	}
	if rec.VehiclePlate != nil {
		resp.VehiclePlate = *rec.VehiclePlate
	}
	if rec.ImageKey != "" {
		if url, err := s.fileService.GetFileURL(ctx, rec.ImageKey, time.Hour); err == nil {
			resp.ImageURL = url
		}
	}
	return resp
}
