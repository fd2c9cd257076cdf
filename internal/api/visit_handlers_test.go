package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkgate/internal/db"
	"parkgate/internal/entities"
	"parkgate/internal/service"
)

type memSpotStore struct {
	available map[int]bool
}

func (m *memSpotStore) FindAvailable(class db.VehicleClass) (int, bool, error) {
	if class != db.Car {
		return 0, false, nil
	}
	lowest := 0
	for number, free := range m.available {
		if free && (lowest == 0 || number < lowest) {
			lowest = number
		}
	}
	return lowest, lowest != 0, nil
}

func (m *memSpotStore) Allocate(number int, class db.VehicleClass) error {
	m.available[number] = false
	return nil
}

func (m *memSpotStore) Release(number int, class db.VehicleClass) error {
	m.available[number] = true
	return nil
}

type memTicketStore struct {
	tickets []*db.Ticket
}

func (m *memTicketStore) Create(t *db.Ticket) error {
	t.ID = len(m.tickets) + 1
	m.tickets = append(m.tickets, t)
	return nil
}

func (m *memTicketStore) GetOpenByPlate(plate string) (*db.Ticket, error) {
	for _, t := range m.tickets {
		if t.LicensePlate == plate && t.Open() {
			return t, nil
		}
	}
	return nil, nil
}

func (m *memTicketStore) Close(id int, exitTime time.Time, price float64) (bool, error) {
	for _, t := range m.tickets {
		if t.ID == id && t.Open() {
			t.ExitTime = &exitTime
			t.Price = price
			return true, nil
		}
	}
	return false, nil
}

func (m *memTicketStore) CountByPlate(plate string) (int, error) {
	count := 0
	for _, t := range m.tickets {
		if t.LicensePlate == plate {
			count++
		}
	}
	return count, nil
}

func newTestRouter() *mux.Router {
	spots := &memSpotStore{available: map[int]bool{1: true, 2: true}}
	visitSvc := service.NewVisitService(spots, &memTicketStore{}, service.NewFareService(), nil)
	handler := NewVisitHandler(visitSvc)

	r := mux.NewRouter()
	r.HandleFunc("/api/visits/entry", handler.RegisterEntry).Methods("POST")
	r.HandleFunc("/api/visits/exit", handler.RegisterExit).Methods("POST")
	r.HandleFunc("/api/visits/{plate}", handler.GetOpenTicket).Methods("GET")
	r.HandleFunc("/api/rates", handler.GetRates).Methods("GET")
	return r
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestEntryEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/visits/entry", RegisterEntryRequest{
		VehicleClass: 1,
		LicensePlate: "ABC123",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var ticket entities.TicketResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ticket))
	assert.Equal(t, "ABC123", ticket.LicensePlate)
	assert.Equal(t, 1, ticket.SpotNumber)
	assert.Nil(t, ticket.ExitTime)
}

func TestEntryEndpointInvalidSelector(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/visits/entry", RegisterEntryRequest{
		VehicleClass: 9,
		LicensePlate: "ABC123",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEntryEndpointMissingPlate(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/visits/entry", RegisterEntryRequest{
		VehicleClass: 1,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExitEndpointNoOpenTicket(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/visits/exit", RegisterExitRequest{
		LicensePlate: "GHOST1",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExitEndpointClosesTicket(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/visits/entry", RegisterEntryRequest{
		VehicleClass: 1,
		LicensePlate: "XYZ789",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/visits/exit", RegisterExitRequest{
		LicensePlate: "XYZ789",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var ticket entities.TicketResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ticket))
	require.NotNil(t, ticket.ExitTime)
	// Within the grace period the stay is free.
	assert.Zero(t, ticket.Price)
}

func TestRatesEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/rates", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var rates []entities.RateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rates))
	require.Len(t, rates, 2)
	assert.Equal(t, "CAR", rates[0].VehicleClass)
	assert.Equal(t, 1.5, rates[0].HourlyRate)
}
