package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"parkgate/internal/db"
	"parkgate/internal/entities"
	apperrors "parkgate/internal/errors"
	"parkgate/internal/service"
)

type VisitHandler struct {
	Service *service.VisitService
}

func NewVisitHandler(svc *service.VisitService) *VisitHandler {
	return &VisitHandler{Service: svc}
}

func (h *VisitHandler) RegisterEntry(w http.ResponseWriter, r *http.Request) {
	var req RegisterEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.LicensePlate) == "" {
		http.Error(w, "license_plate is required", http.StatusBadRequest)
		return
	}

	ticket, err := h.Service.RegisterEntry(req.VehicleClass, req.LicensePlate, req.DriverEmail, req.DriverPhone)
	if err != nil {
		http.Error(w, err.Error(), apperrors.StatusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ticketResponse(ticket))
}

func (h *VisitHandler) RegisterExit(w http.ResponseWriter, r *http.Request) {
	var req RegisterExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.LicensePlate) == "" {
		http.Error(w, "license_plate is required", http.StatusBadRequest)
		return
	}

	ticket, err := h.Service.RegisterExit(req.LicensePlate)
	if err != nil {
		http.Error(w, err.Error(), apperrors.StatusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ticketResponse(ticket))
}

func (h *VisitHandler) GetOpenTicket(w http.ResponseWriter, r *http.Request) {
	plate := mux.Vars(r)["plate"]
	ticket, err := h.Service.GetOpenTicket(plate)
	if err != nil {
		http.Error(w, err.Error(), apperrors.StatusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ticketResponse(ticket))
}

func (h *VisitHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	rates := []entities.RateResponse{
		{VehicleClass: string(db.Car), HourlyRate: service.CarRatePerHour, GraceMinutes: service.GraceMinutes},
		{VehicleClass: string(db.Bike), HourlyRate: service.BikeRatePerHour, GraceMinutes: service.GraceMinutes},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rates)
}

func ticketResponse(t *db.Ticket) entities.TicketResponse {
	return entities.TicketResponse{
		ID:           t.ID,
		LicensePlate: t.LicensePlate,
		SpotNumber:   t.SpotNumber,
		VehicleClass: string(t.VehicleClass),
		EntryTime:    t.EntryTime,
		ExitTime:     t.ExitTime,
		Price:        t.Price,
	}
}
