package postgresql

import (
	"context"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/calendar"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) calendar.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

const holidayColumns = `id, name, date, is_recurring, description, created_at, updated_at`

func scanHoliday(row pgx.Row) (calendar.PublicHoliday, error) {
	var h calendar.PublicHoliday
	err := row.Scan(
		&h.ID,
		&h.Name,
		&h.Date,
		&h.IsRecurring,
		&h.Description,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	return h, err
}

// Create implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h calendar.PublicHoliday) (calendar.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	insertQuery := `
		INSERT INTO public_holidays (id, name, date, is_recurring, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + holidayColumns

	created, err := scanHoliday(q.QueryRow(ctx, insertQuery,
		h.ID, h.Name, h.Date, h.IsRecurring, h.Description,
	))
	if err != nil {
		if isUniqueViolation(err, "") {
			return calendar.PublicHoliday{}, calendar.ErrHolidayExists
		}
		return calendar.PublicHoliday{}, err
	}
	return created, nil
}

// GetByID implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id string) (calendar.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)
	return scanHoliday(q.QueryRow(ctx, `SELECT `+holidayColumns+` FROM public_holidays WHERE id = $1`, id))
}

// ListForYear implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) ListForYear(ctx context.Context, year int) ([]calendar.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+holidayColumns+`
		FROM public_holidays
		WHERE is_recurring OR EXTRACT(YEAR FROM date) = $1
		ORDER BY date
	`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []calendar.PublicHoliday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// Delete implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM public_holidays WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
