package vehicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetwerk/timelog-backend-go/internal/pkg/validator"
)

func validCreateRequest() CreateVehicleRequest {
	return CreateVehicleRequest{
		LicensePlate: "B 1234 XYZ",
		Make:         "Toyota",
		Model:        "Avanza",
		Year:         2022,
		FuelType:     "petrol",
	}
}

func validationFields(t *testing.T, err error) []string {
	t.Helper()
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestCreateVehicleRequest_Valid(t *testing.T) {
	req := validCreateRequest()
	assert.NoError(t, req.Validate())
}

func TestCreateVehicleRequest_PlateRequired(t *testing.T) {
	req := validCreateRequest()
	req.LicensePlate = "  - "
	assert.Contains(t, validationFields(t, req.Validate()), "license_plate")
}

func TestCreateVehicleRequest_PlateSpecialCharacters(t *testing.T) {
	req := validCreateRequest()
	req.LicensePlate = "B#1234!"
	assert.Contains(t, validationFields(t, req.Validate()), "license_plate")
}

func TestCreateVehicleRequest_YearBounds(t *testing.T) {
	req := validCreateRequest()
	req.Year = 1899
	assert.Contains(t, validationFields(t, req.Validate()), "year")

	req = validCreateRequest()
	req.Year = 2100
	assert.Contains(t, validationFields(t, req.Validate()), "year")
}

func TestCreateVehicleRequest_UnknownFuelType(t *testing.T) {
	req := validCreateRequest()
	req.FuelType = "plutonium"
	assert.Contains(t, validationFields(t, req.Validate()), "fuel_type")
}

func TestCreateVehicleRequest_EmptyFuelTypeAllowed(t *testing.T) {
	// Defaulting to "other" happens in the service layer.
	req := validCreateRequest()
	req.FuelType = ""
	assert.NoError(t, req.Validate())
}

func TestUpdateVehicleRequest_PartialPatch(t *testing.T) {
	req := UpdateVehicleRequest{ID: "veh-1"}
	assert.NoError(t, req.Validate())

	badYear := 1850
	req.Year = &badYear
	assert.Contains(t, validationFields(t, req.Validate()), "year")
}

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "B1234XYZ", validator.NormalizePlate("b 1234-xyz"))
	assert.Equal(t, "AB12CD", validator.NormalizePlate("  ab 12 cd  "))
}

func TestVehicle_Label(t *testing.T) {
	v := Vehicle{LicensePlate: "B1234XYZ", Make: "Toyota", Model: "Avanza"}
	assert.Equal(t, "B1234XYZ (Toyota Avanza)", v.Label())
}
