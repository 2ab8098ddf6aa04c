package receipt

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/receipt"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/vehicle"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/validator"
	"github.com/fleetwerk/timelog-backend-go/internal/service/fleet"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReceiptRepo struct {
	mu       sync.Mutex
	receipts map[string]receipt.FuelReceipt
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{receipts: make(map[string]receipt.FuelReceipt)}
}

func (f *fakeReceiptRepo) Create(ctx context.Context, r receipt.FuelReceipt) (receipt.FuelReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.receipts[r.ID] = r
	return r, nil
}

func (f *fakeReceiptRepo) GetByID(ctx context.Context, id string) (receipt.FuelReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.receipts[id]
	if !ok {
		return receipt.FuelReceipt{}, pgx.ErrNoRows
	}
	return r, nil
}

func (f *fakeReceiptRepo) List(ctx context.Context, filter receipt.ReceiptFilter) ([]receipt.FuelReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []receipt.FuelReceipt
	for _, r := range f.receipts {
		if filter.EmployeeID != "" && r.EmployeeID != filter.EmployeeID {
			continue
		}
		list = append(list, r)
	}
	return list, nil
}

func (f *fakeReceiptRepo) UpdateDetails(ctx context.Context, r receipt.FuelReceipt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.receipts[r.ID] = r
	return nil
}

func (f *fakeReceiptRepo) TransitionStatus(ctx context.Context, id string, from, to receipt.Status, approverID string, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.receipts[id]
	if !ok || r.Status != from {
		return receipt.ErrAlreadyProcessed
	}
	r.Status = to
	f.receipts[id] = r
	return nil
}

type fakeVehicleRepo struct {
	vehicles map[string]vehicle.Vehicle
}

func (f *fakeVehicleRepo) Create(ctx context.Context, v vehicle.Vehicle) (vehicle.Vehicle, error) {
	f.vehicles[v.ID] = v
	return v, nil
}

func (f *fakeVehicleRepo) GetByID(ctx context.Context, id string) (vehicle.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return vehicle.Vehicle{}, pgx.ErrNoRows
	}
	return v, nil
}

func (f *fakeVehicleRepo) GetByPlate(ctx context.Context, plate string) (vehicle.Vehicle, error) {
	for _, v := range f.vehicles {
		if v.LicensePlate == plate {
			return v, nil
		}
	}
	return vehicle.Vehicle{}, pgx.ErrNoRows
}

func (f *fakeVehicleRepo) List(ctx context.Context, activeOnly bool) ([]vehicle.Vehicle, error) {
	var list []vehicle.Vehicle
	for _, v := range f.vehicles {
		if activeOnly && !v.IsActive {
			continue
		}
		list = append(list, v)
	}
	return list, nil
}

func (f *fakeVehicleRepo) Update(ctx context.Context, v vehicle.Vehicle) error {
	f.vehicles[v.ID] = v
	return nil
}

func (f *fakeVehicleRepo) Delete(ctx context.Context, id string) error {
	delete(f.vehicles, id)
	return nil
}

type stubReadingRepo struct {
	readings []vehicle.Reading
}

func (s *stubReadingRepo) LatestReadingAt(ctx context.Context, vehicleID string, asOf time.Time) (*vehicle.Reading, error) {
	var latest *vehicle.Reading
	for i := range s.readings {
		r := s.readings[i]
		if r.VehicleID != vehicleID || r.RecordedAt.After(asOf) {
			continue
		}
		if latest == nil || r.RecordedAt.After(latest.RecordedAt) ||
			(r.RecordedAt.Equal(latest.RecordedAt) && r.Seq > latest.Seq) {
			latest = &r
		}
	}
	return latest, nil
}

func (s *stubReadingRepo) History(ctx context.Context, vehicleID string) ([]vehicle.Reading, error) {
	var list []vehicle.Reading
	for _, r := range s.readings {
		if r.VehicleID == vehicleID {
			list = append(list, r)
		}
	}
	return list, nil
}

type fakeFileService struct {
	uploads int
	deleted []string
}

func (f *fakeFileService) UploadReceiptImage(ctx context.Context, employeeID string, purchaseDate time.Time, file io.Reader, filename string) (string, error) {
	f.uploads++
	return "receipts/" + employeeID + "/" + filename, nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeFileService) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "https://files.local/" + path, nil
}

func authContext(t *testing.T, userID, role string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    role,
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newSubmitFixture(readings *stubReadingRepo) (receipt.ReceiptService, *fakeReceiptRepo, *fakeFileService) {
	receiptRepo := newFakeReceiptRepo()
	vehicleRepo := &fakeVehicleRepo{vehicles: map[string]vehicle.Vehicle{
		"veh-1": {
			ID:           "veh-1",
			LicensePlate: "B1234XYZ",
			Make:         "Toyota",
			Model:        "Hilux",
			IsActive:     true,
		},
	}}
	files := &fakeFileService{}
	svc := NewReceiptService(receiptRepo, vehicleRepo, files, fleet.NewContinuityChecker(readings))
	return svc, receiptRepo, files
}

func submitRequest(purchaseDate *string) receipt.SubmitReceiptRequest {
	return receipt.SubmitReceiptRequest{
		VehicleID:        "veh-1",
		OdometerReading:  50100,
		GasStation:       "Shell Sudirman",
		FuelPurchaseDate: purchaseDate,
		FileHeader:       &multipart.FileHeader{Filename: "pump.jpg", Size: 2048},
	}
}

func TestSubmitReceipt_FuturePurchaseDateRejected(t *testing.T) {
	t.Parallel()
	svc, repo, files := newSubmitFixture(&stubReadingRepo{})
	future := time.Now().AddDate(0, 0, 2).Format("2006-01-02")

	_, err := svc.SubmitReceipt(authContext(t, "emp-1", "employee"), submitRequest(&future))
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	assert.Equal(t, "fuel_purchase_date", errs[0].Field)
	assert.Contains(t, errs[0].Message, "future")
	assert.Zero(t, files.uploads)
	assert.Empty(t, repo.receipts)
}

func TestSubmitReceipt_PurchaseDateOlderThanThirtyDaysRejected(t *testing.T) {
	t.Parallel()
	svc, repo, files := newSubmitFixture(&stubReadingRepo{})
	stale := time.Now().AddDate(0, 0, -31).Format("2006-01-02")

	_, err := svc.SubmitReceipt(authContext(t, "emp-1", "employee"), submitRequest(&stale))
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	assert.Equal(t, "fuel_purchase_date", errs[0].Field)
	assert.Contains(t, errs[0].Message, "more than 30 days old")
	assert.Zero(t, files.uploads)
	assert.Empty(t, repo.receipts)
}

func TestSubmitReceipt_PurchaseDateWithinThirtyDaysAccepted(t *testing.T) {
	t.Parallel()
	svc, repo, files := newSubmitFixture(&stubReadingRepo{})
	recent := time.Now().AddDate(0, 0, -29).Format("2006-01-02")

	resp, err := svc.SubmitReceipt(authContext(t, "emp-1", "employee"), submitRequest(&recent))
	require.NoError(t, err)

	assert.Equal(t, string(receipt.StatusPending), resp.Status)
	require.NotNil(t, resp.FuelPurchaseDate)
	assert.Equal(t, recent, *resp.FuelPurchaseDate)
	assert.Equal(t, 1, files.uploads)

	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "receipts/emp-1/pump.jpg", stored.ImageKey)
}

func TestSubmitReceipt_OdometerRegressionRejected(t *testing.T) {
	t.Parallel()
	readings := &stubReadingRepo{readings: []vehicle.Reading{{
		VehicleID:  "veh-1",
		Kilometers: 60000,
		RecordedAt: time.Now().AddDate(0, 0, -3),
		Seq:        1,
		Source:     vehicle.SourceMileage,
	}}}
	svc, repo, _ := newSubmitFixture(readings)

	_, err := svc.SubmitReceipt(authContext(t, "emp-1", "employee"), submitRequest(nil))
	require.Error(t, err)

	var contErr *vehicle.ContinuityError
	require.True(t, errors.As(err, &contErr))
	assert.Equal(t, 60000, contErr.Prior.Kilometers)
	assert.Empty(t, repo.receipts)
}
