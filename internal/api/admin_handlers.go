package api

import (
	"encoding/json"
	"net/http"

	"parkgate/internal/db"
	"parkgate/internal/service"
	"parkgate/internal/utils"
)

type AdminHandler struct {
	Service *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	openOnly := r.URL.Query().Get("open") == "true"

	var class db.VehicleClass
	if name := r.URL.Query().Get("vehicle_class"); name != "" {
		parsed, err := utils.ParseClass(name)
		if err != nil {
			http.Error(w, "Invalid vehicle_class", http.StatusBadRequest)
			return
		}
		class = parsed
	}

	tickets, err := h.Service.ListTickets(date, class, openOnly)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tickets)
}

func (h *AdminHandler) ListSpots(w http.ResponseWriter, r *http.Request) {
	spots, err := h.Service.ListSpots()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spots)
}

func (h *AdminHandler) GetOccupancy(w http.ResponseWriter, r *http.Request) {
	occupancy, err := h.Service.GetOccupancy()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(occupancy)
}

func (h *AdminHandler) AddSpots(w http.ResponseWriter, r *http.Request) {
	var req AddSpotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	class, err := utils.ParseClass(req.VehicleClass)
	if err != nil {
		http.Error(w, "Invalid vehicle_class", http.StatusBadRequest)
		return
	}
	if req.Count <= 0 {
		http.Error(w, "count must be positive", http.StatusBadRequest)
		return
	}

	if err := h.Service.AddSpots(class, req.Count); err != nil {
		http.Error(w, "Could not add spots", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Spots added"})
}
