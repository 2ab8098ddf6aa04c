package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/vehicle"
	"github.com/fleetwerk/timelog-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type VehicleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type vehicleHandlerImpl struct {
	vehicleService vehicle.VehicleService
	readings       vehicle.ReadingRepository
}

func NewVehicleHandler(vehicleService vehicle.VehicleService, readings vehicle.ReadingRepository) VehicleHandler {
	return &vehicleHandlerImpl{
		vehicleService: vehicleService,
		readings:       readings,
	}
}

// Create implements VehicleHandler.
func (h *vehicleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req vehicle.CreateVehicleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create vehicle decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.vehicleService.CreateVehicle(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Vehicle created", result)
}

// GetByID implements VehicleHandler.
func (h *vehicleHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.vehicleService.GetVehicle(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements VehicleHandler.
func (h *vehicleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	result, err := h.vehicleService.ListVehicles(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements VehicleHandler.
func (h *vehicleHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req vehicle.UpdateVehicleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update vehicle decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.vehicleService.UpdateVehicle(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vehicle updated", result)
}

// Deactivate implements VehicleHandler.
func (h *vehicleHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.vehicleService.DeactivateVehicle(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vehicle deactivated", result)
}

// Delete implements VehicleHandler.
func (h *vehicleHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.vehicleService.DeleteVehicle(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vehicle deleted", nil)
}

// History implements VehicleHandler. It exposes the merged odometer history
// backoffice users audit when a continuity conflict is reported.
func (h *vehicleHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.vehicleService.GetVehicle(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	history, err := h.readings.History(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	type readingResponse struct {
		Kilometers int    `json:"kilometers"`
		RecordedAt string `json:"recorded_at"`
		Source     string `json:"source"`
	}
	result := make([]readingResponse, 0, len(history))
	for _, reading := range history {
		result = append(result, readingResponse{
			Kilometers: reading.Kilometers,
			RecordedAt: reading.RecordedAt.Format("2006-01-02"),
			Source:     string(reading.Source),
		})
	}

	response.Success(w, result)
}
