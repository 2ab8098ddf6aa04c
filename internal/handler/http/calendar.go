package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/calendar"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/timeentry"
	"github.com/fleetwerk/timelog-backend-go/internal/handler/http/response"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type CalendarHandler interface {
	MonthView(w http.ResponseWriter, r *http.Request)
	CreateHoliday(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)
	CreateNonWorkingDay(w http.ResponseWriter, r *http.Request)
	DeleteNonWorkingDay(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.CalendarService
}

func NewCalendarHandler(calendarService calendar.CalendarService) CalendarHandler {
	return &calendarHandlerImpl{
		calendarService: calendarService,
	}
}

// MonthView implements CalendarHandler.
func (h *calendarHandlerImpl) MonthView(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.BadRequest(w, "Invalid year", nil)
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		response.BadRequest(w, "Invalid month", nil)
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	mode := calendar.Mode(r.URL.Query().Get("mode"))

	filter, err := parseCalendarFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.calendarService.AggregateMonth(r.Context(), employeeID, year, month, filter, mode)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func parseCalendarFilter(r *http.Request) (*calendar.Filter, error) {
	q := r.URL.Query()
	var filter calendar.Filter
	var set bool

	if v := q.Get("vehicle_id"); v != "" {
		filter.VehicleID = &v
		set = true
	}
	if v := q.Get("from"); v != "" {
		d, ok := validator.IsValidDate(v)
		if !ok {
			return nil, errInvalidFilterDate("from")
		}
		filter.From = &d
		set = true
	}
	if v := q.Get("to"); v != "" {
		d, ok := validator.IsValidDate(v)
		if !ok {
			return nil, errInvalidFilterDate("to")
		}
		filter.To = &d
		set = true
	}
	if v := q.Get("pollution_level"); v != "" {
		level, err := strconv.Atoi(v)
		if err != nil {
			return nil, errInvalidFilterDate("pollution_level")
		}
		p := timeentry.PollutionLevel(level)
		filter.PollutionLevel = &p
		set = true
	}

	if !set {
		return nil, nil
	}
	return &filter, nil
}

func errInvalidFilterDate(field string) error {
	return fmt.Errorf("Invalid filter value for %s", field)
}

// CreateHoliday implements CalendarHandler.
func (h *calendarHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req calendar.CreateHolidayRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create holiday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.calendarService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Public holiday created", result)
}

// ListHolidays implements CalendarHandler.
func (h *calendarHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			response.BadRequest(w, "Invalid year", nil)
			return
		}
		year = parsed
	}

	result, err := h.calendarService.ListHolidays(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteHoliday implements CalendarHandler.
func (h *calendarHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.calendarService.DeleteHoliday(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Public holiday deleted", nil)
}

// CreateNonWorkingDay implements CalendarHandler.
func (h *calendarHandlerImpl) CreateNonWorkingDay(w http.ResponseWriter, r *http.Request) {
	var req calendar.CreateNonWorkingDayRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create non-working day decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.calendarService.CreateNonWorkingDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Non-working day created", result)
}

// DeleteNonWorkingDay implements CalendarHandler.
func (h *calendarHandlerImpl) DeleteNonWorkingDay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.calendarService.DeleteNonWorkingDay(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Non-working day deleted", nil)
}
