package postgresql

import (
	"context"
	"fmt"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/receipt"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type receiptRepositoryImpl struct {
	db *database.DB
}

func NewReceiptRepository(db *database.DB) receipt.ReceiptRepository {
	return &receiptRepositoryImpl{db: db}
}

const receiptColumns = `r.id, r.vehicle_id, r.employee_id, r.odometer_reading, r.receipt_date,
				  r.image_key, r.fuel_amount_liters, r.total_cost, r.gas_station,
				  r.fuel_purchase_date, r.notes, r.status, r.approved_by, r.approved_at,
				  r.rejection_reason, r.created_at, r.updated_at`

func scanReceipt(row pgx.Row) (receipt.FuelReceipt, error) {
	var rec receipt.FuelReceipt
	err := row.Scan(
		&rec.ID,
		&rec.VehicleID,
		&rec.EmployeeID,
		&rec.OdometerReading,
		&rec.ReceiptDate,
		&rec.ImageKey,
		&rec.FuelAmountLiters,
		&rec.TotalCost,
		&rec.GasStation,
		&rec.FuelPurchaseDate,
		&rec.Notes,
		&rec.Status,
		&rec.ApprovedBy,
		&rec.ApprovedAt,
		&rec.RejectionReason,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	return rec, err
}

func scanReceiptWithJoins(row pgx.Row) (receipt.FuelReceipt, error) {
	var rec receipt.FuelReceipt
	err := row.Scan(
		&rec.ID,
		&rec.VehicleID,
		&rec.EmployeeID,
		&rec.OdometerReading,
		&rec.ReceiptDate,
		&rec.ImageKey,
		&rec.FuelAmountLiters,
		&rec.TotalCost,
		&rec.GasStation,
		&rec.FuelPurchaseDate,
		&rec.Notes,
		&rec.Status,
		&rec.ApprovedBy,
		&rec.ApprovedAt,
		&rec.RejectionReason,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.EmployeeName,
		&rec.VehiclePlate,
	)
	return rec, err
}

// Create implements receipt.ReceiptRepository.
func (r *receiptRepositoryImpl) Create(ctx context.Context, rec receipt.FuelReceipt) (receipt.FuelReceipt, error) {
	q := GetQuerier(ctx, r.db)

	insertQuery := `
		INSERT INTO fuel_receipts AS r (id, vehicle_id, employee_id, odometer_reading,
										receipt_date, image_key, fuel_amount_liters,
										total_cost, gas_station, fuel_purchase_date,
										notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING ` + receiptColumns

	return scanReceipt(q.QueryRow(ctx, insertQuery,
		rec.ID, rec.VehicleID, rec.EmployeeID, rec.OdometerReading,
		rec.ReceiptDate, rec.ImageKey, rec.FuelAmountLiters,
		rec.TotalCost, rec.GasStation, rec.FuelPurchaseDate,
		rec.Notes, rec.Status,
	))
}

// GetByID implements receipt.ReceiptRepository.
func (r *receiptRepositoryImpl) GetByID(ctx context.Context, id string) (receipt.FuelReceipt, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + receiptColumns + `,
			   u.first_name || ' ' || u.last_name,
			   v.license_plate
		FROM fuel_receipts r
		JOIN users u ON u.id = r.employee_id
		JOIN vehicles v ON v.id = r.vehicle_id
		WHERE r.id = $1
	`
	return scanReceiptWithJoins(q.QueryRow(ctx, query, id))
}

// List implements receipt.ReceiptRepository.
func (r *receiptRepositoryImpl) List(ctx context.Context, filter receipt.ReceiptFilter) ([]receipt.FuelReceipt, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + receiptColumns + `,
			   u.first_name || ' ' || u.last_name,
			   v.license_plate
		FROM fuel_receipts r
		JOIN users u ON u.id = r.employee_id
		JOIN vehicles v ON v.id = r.vehicle_id
		WHERE 1=1
	`
	args := []interface{}{}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND r.employee_id = $%d", len(args))
	}
	if filter.VehicleID != "" {
		args = append(args, filter.VehicleID)
		query += fmt.Sprintf(" AND r.vehicle_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	query += ` ORDER BY r.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []receipt.FuelReceipt
	for rows.Next() {
		rec, err := scanReceiptWithJoins(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, rec)
	}
	return receipts, rows.Err()
}

// UpdateDetails implements receipt.ReceiptRepository. Status, image key and
// receipt date are deliberately absent from the SET list.
func (r *receiptRepositoryImpl) UpdateDetails(ctx context.Context, rec receipt.FuelReceipt) error {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE fuel_receipts
		SET vehicle_id = $2, odometer_reading = $3, fuel_amount_liters = $4,
			total_cost = $5, gas_station = $6, notes = $7, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`
	tag, err := q.Exec(ctx, updateQuery,
		rec.ID, rec.VehicleID, rec.OdometerReading, rec.FuelAmountLiters,
		rec.TotalCost, rec.GasStation, rec.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return receipt.ErrAlreadyProcessed
	}
	return nil
}

// TransitionStatus implements receipt.ReceiptRepository. The WHERE clause on
// the current status makes the update a compare-and-swap: of two concurrent
// approvals exactly one matches the row.
func (r *receiptRepositoryImpl) TransitionStatus(ctx context.Context, id string, from, to receipt.Status, approverID string, reason string) error {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE fuel_receipts
		SET status = $3, approved_by = $4, approved_at = NOW(),
			rejection_reason = $5, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`
	tag, err := q.Exec(ctx, updateQuery, id, from, to, approverID, reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Either the receipt vanished or someone else transitioned it first.
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM fuel_receipts WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return receipt.ErrReceiptNotFound
		}
		return receipt.ErrAlreadyProcessed
	}
	return nil
}
