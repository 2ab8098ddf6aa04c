package postgresql

import (
	"context"
	"time"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/vehicle"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type readingRepositoryImpl struct {
	db *database.DB
}

func NewReadingRepository(db *database.DB) vehicle.ReadingRepository {
	return &readingRepositoryImpl{db: db}
}

// readingHistoryQuery merges mileage readings (each usage contributes its
// start and its end) with receipt readings into one stream per vehicle. The
// sequence column is derived from creation time at microsecond precision, so
// readings recorded for the same day order by insertion: a back-dated
// correction sorts before anything written after it. A usage's end reading
// sits one tick above its start.
const readingHistoryQuery = `
	SELECT vehicle_id, kilometers, recorded_at, seq, source FROM (
		SELECT u.vehicle_id,
			   u.start_kilometers AS kilometers,
			   te.date AS recorded_at,
			   (EXTRACT(EPOCH FROM u.created_at) * 1000000)::bigint * 2 AS seq,
			   'mileage' AS source
		FROM vehicle_usages u
		JOIN time_entries te ON te.id = u.time_entry_id
		WHERE u.vehicle_id = $1 AND NOT u.no_vehicle_used

		UNION ALL

		SELECT u.vehicle_id,
			   u.end_kilometers,
			   te.date,
			   (EXTRACT(EPOCH FROM u.created_at) * 1000000)::bigint * 2 + 1,
			   'mileage'
		FROM vehicle_usages u
		JOIN time_entries te ON te.id = u.time_entry_id
		WHERE u.vehicle_id = $1 AND NOT u.no_vehicle_used

		UNION ALL

		SELECT r.vehicle_id,
			   r.odometer_reading,
			   COALESCE(r.fuel_purchase_date, r.receipt_date::date),
			   (EXTRACT(EPOCH FROM r.created_at) * 1000000)::bigint * 2,
			   'receipt'
		FROM fuel_receipts r
		WHERE r.vehicle_id = $1
	) readings
`

func scanReading(row pgx.Row) (vehicle.Reading, error) {
	var reading vehicle.Reading
	err := row.Scan(
		&reading.VehicleID,
		&reading.Kilometers,
		&reading.RecordedAt,
		&reading.Seq,
		&reading.Source,
	)
	return reading, err
}

// LatestReadingAt implements vehicle.ReadingRepository.
func (r *readingRepositoryImpl) LatestReadingAt(ctx context.Context, vehicleID string, asOf time.Time) (*vehicle.Reading, error) {
	q := GetQuerier(ctx, r.db)

	reading, err := scanReading(q.QueryRow(ctx,
		readingHistoryQuery+` WHERE recorded_at <= $2 ORDER BY recorded_at DESC, seq DESC LIMIT 1`,
		vehicleID, asOf,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &reading, nil
}

// History implements vehicle.ReadingRepository.
func (r *readingRepositoryImpl) History(ctx context.Context, vehicleID string) ([]vehicle.Reading, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, readingHistoryQuery+` ORDER BY recorded_at, seq`, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []vehicle.Reading
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}
	return readings, rows.Err()
}
