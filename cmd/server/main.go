package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"parkgate/internal/api"
	"parkgate/internal/auth"
	"parkgate/internal/repository"
	"parkgate/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	spotRepo := repository.NewSpotRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	fareSvc := service.NewFareService()
	receiptSvc := service.NewReceiptService()
	visitSvc := service.NewVisitService(spotRepo, ticketRepo, fareSvc, receiptSvc)
	adminSvc := service.NewAdminService(adminRepo, spotRepo)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo)
	auditSvc := service.NewAuditService(auditRepo)

	visitHandler := api.NewVisitHandler(visitSvc)
	adminHandler := api.NewAdminHandler(adminSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	r := mux.NewRouter()

	// Gate endpoints
	r.HandleFunc("/api/visits/entry", visitHandler.RegisterEntry).Methods("POST")
	r.HandleFunc("/api/visits/exit", visitHandler.RegisterExit).Methods("POST")
	r.HandleFunc("/api/visits/{plate}", visitHandler.GetOpenTicket).Methods("GET")
	r.HandleFunc("/api/rates", visitHandler.GetRates).Methods("GET")

	// Admin endpoints (protected)
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/register", adminAuthHandler.Register).Methods("POST")
	admin.HandleFunc("/tickets", adminHandler.ListTickets).Methods("GET")
	admin.HandleFunc("/spots", adminHandler.ListSpots).Methods("GET")
	admin.HandleFunc("/spots", adminHandler.AddSpots).Methods("POST")
	admin.HandleFunc("/occupancy", adminHandler.GetOccupancy).Methods("GET")

	schedule := os.Getenv("AUDIT_SCHEDULE")
	if schedule == "" {
		schedule = "@every 10m"
	}
	c := cron.New()
	if _, err := c.AddFunc(schedule, auditSvc.Run); err != nil {
		log.Fatalf("Failed to schedule audit job: %v", err)
	}
	c.Start()

	handler := handlers.CombinedLoggingHandler(os.Stdout, r)
	handler = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
