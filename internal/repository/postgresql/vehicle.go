package postgresql

import (
	"context"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/vehicle"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type vehicleRepositoryImpl struct {
	db *database.DB
}

func NewVehicleRepository(db *database.DB) vehicle.VehicleRepository {
	return &vehicleRepositoryImpl{db: db}
}

const vehicleColumns = `id, license_plate, make, model, year, color, fuel_type,
				  is_active, notes, created_at, updated_at`

func scanVehicle(row pgx.Row) (vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	err := row.Scan(
		&v.ID,
		&v.LicensePlate,
		&v.Make,
		&v.Model,
		&v.Year,
		&v.Color,
		&v.FuelType,
		&v.IsActive,
		&v.Notes,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	return v, err
}

// Create implements vehicle.VehicleRepository.
func (r *vehicleRepositoryImpl) Create(ctx context.Context, v vehicle.Vehicle) (vehicle.Vehicle, error) {
	q := GetQuerier(ctx, r.db)

	insertQuery := `
		INSERT INTO vehicles (id, license_plate, make, model, year, color, fuel_type,
							  is_active, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING ` + vehicleColumns

	created, err := scanVehicle(q.QueryRow(ctx, insertQuery,
		v.ID, v.LicensePlate, v.Make, v.Model, v.Year, v.Color, v.FuelType,
		v.IsActive, v.Notes,
	))
	if err != nil {
		if isUniqueViolation(err, "") {
			return vehicle.Vehicle{}, vehicle.ErrPlateExists
		}
		return vehicle.Vehicle{}, err
	}
	return created, nil
}

// GetByID implements vehicle.VehicleRepository.
func (r *vehicleRepositoryImpl) GetByID(ctx context.Context, id string) (vehicle.Vehicle, error) {
	q := GetQuerier(ctx, r.db)
	return scanVehicle(q.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id))
}

// GetByPlate implements vehicle.VehicleRepository.
func (r *vehicleRepositoryImpl) GetByPlate(ctx context.Context, plate string) (vehicle.Vehicle, error) {
	q := GetQuerier(ctx, r.db)
	return scanVehicle(q.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE license_plate = $1`, plate))
}

// List implements vehicle.VehicleRepository.
func (r *vehicleRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]vehicle.Vehicle, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY license_plate`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []vehicle.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// Update implements vehicle.VehicleRepository.
func (r *vehicleRepositoryImpl) Update(ctx context.Context, v vehicle.Vehicle) error {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE vehicles
		SET make = $2, model = $3, year = $4, color = $5, fuel_type = $6,
			is_active = $7, notes = $8, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, updateQuery,
		v.ID, v.Make, v.Model, v.Year, v.Color, v.FuelType, v.IsActive, v.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete implements vehicle.VehicleRepository. Usage records and receipts
// reference vehicles with RESTRICT foreign keys, so the database is the last
// line of defense for history protection.
func (r *vehicleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return vehicle.ErrVehicleHasHistory
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
