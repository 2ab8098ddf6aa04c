package fleet

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReadingRepo serves readings from memory in (RecordedAt, Seq) order.
type fakeReadingRepo struct {
	mu       sync.Mutex
	readings map[string][]vehicle.Reading
}

func newFakeReadingRepo() *fakeReadingRepo {
	return &fakeReadingRepo{readings: make(map[string][]vehicle.Reading)}
}

func (f *fakeReadingRepo) add(r vehicle.Reading) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readings[r.VehicleID] = append(f.readings[r.VehicleID], r)
}

func (f *fakeReadingRepo) sorted(vehicleID string) []vehicle.Reading {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := append([]vehicle.Reading(nil), f.readings[vehicleID]...)
	for i := 1; i < len(list); i++ {
		for j := i; j > 0; j-- {
			a, b := list[j-1], list[j]
			if a.RecordedAt.After(b.RecordedAt) || (a.RecordedAt.Equal(b.RecordedAt) && a.Seq > b.Seq) {
				list[j-1], list[j] = b, a
			} else {
				break
			}
		}
	}
	return list
}

func (f *fakeReadingRepo) LatestReadingAt(ctx context.Context, vehicleID string, asOf time.Time) (*vehicle.Reading, error) {
	var latest *vehicle.Reading
	for _, r := range f.sorted(vehicleID) {
		if r.RecordedAt.After(asOf) {
			break
		}
		r := r
		latest = &r
	}
	return latest, nil
}

func (f *fakeReadingRepo) History(ctx context.Context, vehicleID string) ([]vehicle.Reading, error) {
	return f.sorted(vehicleID), nil
}

func TestContinuityChecker_FirstReadingAlwaysPasses(t *testing.T) {
	t.Parallel()
	checker := NewContinuityChecker(newFakeReadingRepo())

	err := checker.Check(context.Background(), "veh-1", 0, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
}

func TestContinuityChecker_EqualReadingPasses(t *testing.T) {
	t.Parallel()
	repo := newFakeReadingRepo()
	repo.add(vehicle.Reading{
		VehicleID:  "veh-1",
		Kilometers: 50000,
		RecordedAt: time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC),
		Seq:        1,
		Source:     vehicle.SourceMileage,
	})
	checker := NewContinuityChecker(repo)

	err := checker.Check(context.Background(), "veh-1", 50000, time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
}

func TestContinuityChecker_RegressionRejected(t *testing.T) {
	t.Parallel()
	repo := newFakeReadingRepo()
	repo.add(vehicle.Reading{
		VehicleID:  "veh-1",
		Kilometers: 50200,
		RecordedAt: time.Date(2024, 7, 2, 17, 0, 0, 0, time.UTC),
		Seq:        2,
		Source:     vehicle.SourceReceipt,
	})
	checker := NewContinuityChecker(repo)

	err := checker.Check(context.Background(), "veh-1", 50100, time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)

	var contErr *vehicle.ContinuityError
	require.True(t, errors.As(err, &contErr))
	assert.Equal(t, "veh-1", contErr.VehicleID)
	assert.Equal(t, 50100, contErr.Kilometers)
	assert.Equal(t, 50200, contErr.Prior.Kilometers)
	assert.Equal(t, vehicle.SourceReceipt, contErr.Prior.Source)
}

func TestContinuityChecker_TimestampTieBreaksByInsertionOrder(t *testing.T) {
	t.Parallel()
	repo := newFakeReadingRepo()
	at := time.Date(2024, 7, 3, 8, 0, 0, 0, time.UTC)
	repo.add(vehicle.Reading{VehicleID: "veh-1", Kilometers: 50300, RecordedAt: at, Seq: 1, Source: vehicle.SourceMileage})
	repo.add(vehicle.Reading{VehicleID: "veh-1", Kilometers: 50400, RecordedAt: at, Seq: 2, Source: vehicle.SourceReceipt})
	checker := NewContinuityChecker(repo)

	// The later insertion wins the tie, so 50350 regresses against 50400.
	err := checker.Check(context.Background(), "veh-1", 50350, at)
	require.Error(t, err)

	var contErr *vehicle.ContinuityError
	require.True(t, errors.As(err, &contErr))
	assert.Equal(t, int64(2), contErr.Prior.Seq)
	assert.Equal(t, 50400, contErr.Prior.Kilometers)
}

func TestContinuityChecker_VehiclesAreIndependent(t *testing.T) {
	t.Parallel()
	repo := newFakeReadingRepo()
	repo.add(vehicle.Reading{
		VehicleID:  "veh-1",
		Kilometers: 90000,
		RecordedAt: time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC),
		Seq:        1,
		Source:     vehicle.SourceMileage,
	})
	checker := NewContinuityChecker(repo)

	// veh-2 has no history so any reading passes.
	asOf := time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, checker.Check(context.Background(), "veh-2", 10, asOf))
	assert.Error(t, checker.Check(context.Background(), "veh-1", 10, asOf))
}

func TestContinuityChecker_BackdatedReadingAnchorsAgainstItsOwnDate(t *testing.T) {
	t.Parallel()
	repo := newFakeReadingRepo()
	repo.add(vehicle.Reading{
		VehicleID:  "veh-1",
		Kilometers: 1000,
		RecordedAt: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Seq:        1,
		Source:     vehicle.SourceMileage,
	})
	repo.add(vehicle.Reading{
		VehicleID:  "veh-1",
		Kilometers: 1050,
		RecordedAt: time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC),
		Seq:        2,
		Source:     vehicle.SourceReceipt,
	})
	checker := NewContinuityChecker(repo)

	// A correction dated July 3 is measured against July 1, not July 5.
	between := time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, checker.Check(context.Background(), "veh-1", 1020, between))

	err := checker.Check(context.Background(), "veh-1", 900, between)
	require.Error(t, err)
	var contErr *vehicle.ContinuityError
	require.True(t, errors.As(err, &contErr))
	assert.Equal(t, 1000, contErr.Prior.Kilometers)
}

func TestContinuityChecker_WithVehicleLockSerializes(t *testing.T) {
	t.Parallel()
	repo := newFakeReadingRepo()
	checker := NewContinuityChecker(repo)
	ctx := context.Background()

	day := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	var wg sync.WaitGroup
	failures := 0
	var mu sync.Mutex
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(km int) {
			defer wg.Done()
			err := checker.WithVehicleLock("veh-1", func() error {
				if err := checker.Check(ctx, "veh-1", km, day); err != nil {
					return err
				}
				latest, _ := repo.LatestReadingAt(ctx, "veh-1", day)
				var seq int64 = 1
				if latest != nil {
					seq = latest.Seq + 1
				}
				repo.add(vehicle.Reading{
					VehicleID:  "veh-1",
					Kilometers: km,
					RecordedAt: day,
					Seq:        seq,
					Source:     vehicle.SourceMileage,
				})
				return nil
			})
			if err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}(1000 * (i + 1))
	}
	wg.Wait()

	// Every accepted write was checked against the true latest reading;
	// the history can never contain a regression.
	history, err := repo.History(ctx, "veh-1")
	require.NoError(t, err)
	for i := 1; i < len(history); i++ {
		assert.GreaterOrEqual(t, history[i].Kilometers, history[i-1].Kilometers)
	}
	assert.Equal(t, 8, len(history)+failures)
}
