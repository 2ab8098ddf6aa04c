package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/receipt"
	"github.com/fleetwerk/timelog-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReceiptHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Transition(w http.ResponseWriter, r *http.Request)
}

type receiptHandlerImpl struct {
	receiptService receipt.ReceiptService
}

func NewReceiptHandler(receiptService receipt.ReceiptService) ReceiptHandler {
	return &receiptHandlerImpl{
		receiptService: receiptService,
	}
}

// Submit implements ReceiptHandler.
func (h *receiptHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req receipt.SubmitReceiptRequest

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	// Get JSON data from 'data' field
	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}

	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Get file from form
	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Receipt image is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	req.File = file
	req.FileHeader = fileHeader

	result, err := h.receiptService.SubmitReceipt(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Fuel receipt submitted", result)
}

// GetByID implements ReceiptHandler.
func (h *receiptHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.receiptService.GetReceipt(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements ReceiptHandler.
func (h *receiptHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := receipt.ReceiptFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		VehicleID:  r.URL.Query().Get("vehicle_id"),
		Status:     r.URL.Query().Get("status"),
	}

	result, err := h.receiptService.ListReceipts(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements ReceiptHandler.
func (h *receiptHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req receipt.UpdateReceiptRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update receipt decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.receiptService.UpdateReceipt(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Fuel receipt updated", result)
}

// Transition implements ReceiptHandler.
func (h *receiptHandlerImpl) Transition(w http.ResponseWriter, r *http.Request) {
	var req receipt.TransitionReceiptRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Transition receipt decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.receiptService.TransitionReceipt(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Fuel receipt "+result.Status, result)
}
