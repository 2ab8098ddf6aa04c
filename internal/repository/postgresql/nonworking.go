package postgresql

import (
	"context"
	"time"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/calendar"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type nonWorkingDayRepositoryImpl struct {
	db *database.DB
}

func NewNonWorkingDayRepository(db *database.DB) calendar.NonWorkingDayRepository {
	return &nonWorkingDayRepositoryImpl{db: db}
}

const nonWorkingColumns = `id, employee_id, pattern, date, weekday, day_of_month,
				  valid_from, valid_until, reason, created_at, updated_at`

func scanNonWorkingDay(row pgx.Row) (calendar.NonWorkingDay, error) {
	var n calendar.NonWorkingDay
	var weekday *int
	err := row.Scan(
		&n.ID,
		&n.EmployeeID,
		&n.Pattern,
		&n.Date,
		&weekday,
		&n.DayOfMonth,
		&n.ValidFrom,
		&n.ValidUntil,
		&n.Reason,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if weekday != nil {
		w := time.Weekday(*weekday)
		n.Weekday = &w
	}
	return n, err
}

// Create implements calendar.NonWorkingDayRepository.
func (r *nonWorkingDayRepositoryImpl) Create(ctx context.Context, n calendar.NonWorkingDay) (calendar.NonWorkingDay, error) {
	q := GetQuerier(ctx, r.db)

	var weekday *int
	if n.Weekday != nil {
		w := int(*n.Weekday)
		weekday = &w
	}

	insertQuery := `
		INSERT INTO non_working_days (id, employee_id, pattern, date, weekday, day_of_month,
									  valid_from, valid_until, reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING ` + nonWorkingColumns

	return scanNonWorkingDay(q.QueryRow(ctx, insertQuery,
		n.ID, n.EmployeeID, n.Pattern, n.Date, weekday, n.DayOfMonth,
		n.ValidFrom, n.ValidUntil, n.Reason,
	))
}

// GetByID implements calendar.NonWorkingDayRepository.
func (r *nonWorkingDayRepositoryImpl) GetByID(ctx context.Context, id string) (calendar.NonWorkingDay, error) {
	q := GetQuerier(ctx, r.db)
	return scanNonWorkingDay(q.QueryRow(ctx, `SELECT `+nonWorkingColumns+` FROM non_working_days WHERE id = $1`, id))
}

// ListForEmployee implements calendar.NonWorkingDayRepository. Recurring
// patterns are returned whenever their validity window overlaps the range;
// matching them to concrete dates happens in the aggregation.
func (r *nonWorkingDayRepositoryImpl) ListForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]calendar.NonWorkingDay, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+nonWorkingColumns+`
		FROM non_working_days
		WHERE employee_id = $1
		  AND (valid_from IS NULL OR valid_from <= $3)
		  AND (valid_until IS NULL OR valid_until >= $2)
		  AND (pattern <> 'specific' OR (date >= $2 AND date <= $3))
		ORDER BY created_at
	`, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []calendar.NonWorkingDay
	for rows.Next() {
		n, err := scanNonWorkingDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, n)
	}
	return days, rows.Err()
}

// Delete implements calendar.NonWorkingDayRepository.
func (r *nonWorkingDayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM non_working_days WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
