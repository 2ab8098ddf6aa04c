package postgresql

import (
	"context"
	"time"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/timeentry"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timeEntryRepositoryImpl struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timeentry.TimeEntryRepository {
	return &timeEntryRepositoryImpl{db: db}
}

const entryColumns = `id, employee_id, date, start_time, end_time, lunch_break_minutes,
				  pollution_level, notes, created_by, updated_by, created_at, updated_at`

func scanEntry(row pgx.Row) (timeentry.TimeEntry, error) {
	var e timeentry.TimeEntry
	err := row.Scan(
		&e.ID,
		&e.EmployeeID,
		&e.Date,
		&e.StartTime,
		&e.EndTime,
		&e.LunchBreakMinutes,
		&e.PollutionLevel,
		&e.Notes,
		&e.CreatedBy,
		&e.UpdatedBy,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// usageRow is the flat storage shape of a vehicle usage; toUsage folds it
// back into the tagged variant.
type usageRow struct {
	ID            string
	TimeEntryID   string
	VehicleID     *string
	StartKm       *int
	EndKm         *int
	NoVehicleUsed bool
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (u usageRow) toUsage() timeentry.VehicleUsage {
	usage := timeentry.VehicleUsage{
		ID:          u.ID,
		TimeEntryID: u.TimeEntryID,
		Notes:       u.Notes,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.NoVehicleUsed || u.VehicleID == nil {
		usage.Usage = timeentry.NoVehicle{}
		return usage
	}
	used := timeentry.VehicleUsed{VehicleID: *u.VehicleID}
	if u.StartKm != nil {
		used.StartKilometers = *u.StartKm
	}
	if u.EndKm != nil {
		used.EndKilometers = *u.EndKm
	}
	usage.Usage = used
	return usage
}

func usageWriteArgs(u *timeentry.VehicleUsage) (vehicleID *string, startKm, endKm *int, noVehicle bool) {
	switch v := u.Usage.(type) {
	case timeentry.NoVehicle:
		return nil, nil, nil, true
	case timeentry.VehicleUsed:
		id := v.VehicleID
		start := v.StartKilometers
		end := v.EndKilometers
		return &id, &start, &end, false
	}
	return nil, nil, nil, false
}

const usageColumns = `id, time_entry_id, vehicle_id, start_kilometers, end_kilometers,
				  no_vehicle_used, notes, created_at, updated_at`

func scanUsageRow(row pgx.Row) (usageRow, error) {
	var u usageRow
	err := row.Scan(
		&u.ID,
		&u.TimeEntryID,
		&u.VehicleID,
		&u.StartKm,
		&u.EndKm,
		&u.NoVehicleUsed,
		&u.Notes,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// Create implements timeentry.TimeEntryRepository. The entry and its usage
// land in one transaction; the unique (employee_id, date) index is the final
// word on duplicates.
func (r *timeEntryRepositoryImpl) Create(ctx context.Context, entry timeentry.TimeEntry, usage *timeentry.VehicleUsage) (timeentry.TimeEntry, error) {
	var created timeentry.TimeEntry

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		insertEntry := `
			INSERT INTO time_entries (id, employee_id, date, start_time, end_time,
									  lunch_break_minutes, pollution_level, notes,
									  created_by, updated_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
			RETURNING ` + entryColumns

		var err error
		created, err = scanEntry(tx.QueryRow(ctx, insertEntry,
			entry.ID, entry.EmployeeID, entry.Date, entry.StartTime, entry.EndTime,
			entry.LunchBreakMinutes, entry.PollutionLevel, entry.Notes,
			entry.CreatedBy, entry.UpdatedBy,
		))
		if err != nil {
			if isUniqueViolation(err, "") {
				return timeentry.ErrDuplicateEntry
			}
			return err
		}

		if usage != nil {
			vehicleID, startKm, endKm, noVehicle := usageWriteArgs(usage)
			insertUsage := `
				INSERT INTO vehicle_usages (id, time_entry_id, vehicle_id, start_kilometers,
											end_kilometers, no_vehicle_used, notes,
											created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			`
			if _, err := tx.Exec(ctx, insertUsage,
				usage.ID, created.ID, vehicleID, startKm, endKm, noVehicle, usage.Notes,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return timeentry.TimeEntry{}, err
	}
	return created, nil
}

// GetByID implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) GetByID(ctx context.Context, id string) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)
	return scanEntry(q.QueryRow(ctx, `SELECT `+entryColumns+` FROM time_entries WHERE id = $1`, id))
}

// GetByEmployeeAndDate implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	entry, err := scanEntry(q.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM time_entries WHERE employee_id = $1 AND date = $2`,
		employeeID, date,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// GetUsage implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) GetUsage(ctx context.Context, entryID string) (*timeentry.VehicleUsage, error) {
	q := GetQuerier(ctx, r.db)

	row, err := scanUsageRow(q.QueryRow(ctx,
		`SELECT `+usageColumns+` FROM vehicle_usages WHERE time_entry_id = $1`,
		entryID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	usage := row.toUsage()
	return &usage, nil
}

// ListForMonth implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ListForMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]timeentry.TimeEntry, map[string]timeentry.VehicleUsage, error) {
	q := GetQuerier(ctx, r.db)

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	rows, err := q.Query(ctx, `
		SELECT `+entryColumns+`
		FROM time_entries
		WHERE employee_id = $1 AND date >= $2 AND date < $3
		ORDER BY date
	`, employeeID, from, to)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var entries []timeentry.TimeEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	usageRows, err := q.Query(ctx, `
		SELECT `+usageColumns+`
		FROM vehicle_usages u
		WHERE u.time_entry_id IN (
			SELECT id FROM time_entries
			WHERE employee_id = $1 AND date >= $2 AND date < $3
		)
	`, employeeID, from, to)
	if err != nil {
		return nil, nil, err
	}
	defer usageRows.Close()

	usages := make(map[string]timeentry.VehicleUsage)
	for usageRows.Next() {
		row, err := scanUsageRow(usageRows)
		if err != nil {
			return nil, nil, err
		}
		usages[row.TimeEntryID] = row.toUsage()
	}
	return entries, usages, usageRows.Err()
}

// Update implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) Update(ctx context.Context, entry timeentry.TimeEntry, usage *timeentry.VehicleUsage) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		updateEntry := `
			UPDATE time_entries
			SET start_time = $2, end_time = $3, lunch_break_minutes = $4,
				pollution_level = $5, notes = $6, updated_by = $7, updated_at = NOW()
			WHERE id = $1
		`
		tag, err := tx.Exec(ctx, updateEntry,
			entry.ID, entry.StartTime, entry.EndTime, entry.LunchBreakMinutes,
			entry.PollutionLevel, entry.Notes, entry.UpdatedBy,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}

		// The usage is replaced wholesale; nil means the day has none now.
		if _, err := tx.Exec(ctx, `DELETE FROM vehicle_usages WHERE time_entry_id = $1`, entry.ID); err != nil {
			return err
		}
		if usage == nil {
			return nil
		}

		vehicleID, startKm, endKm, noVehicle := usageWriteArgs(usage)
		_, err = tx.Exec(ctx, `
			INSERT INTO vehicle_usages (id, time_entry_id, vehicle_id, start_kilometers,
										end_kilometers, no_vehicle_used, notes,
										created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		`, usage.ID, entry.ID, vehicleID, startKm, endKm, noVehicle, usage.Notes, usage.CreatedAt)
		return err
	})
}

// Delete implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	// vehicle_usages rows cascade via their foreign key.
	tag, err := q.Exec(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
