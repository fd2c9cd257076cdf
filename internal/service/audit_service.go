package service

import (
	"fmt"
	"log"
	"time"

	"parkgate/internal/db"
	"parkgate/internal/repository"
)

// StaleTicketAge is how long a ticket may stay open before the audit job
// flags it for manual reconciliation.
const StaleTicketAge = 24 * time.Hour

type AuditService struct {
	Repo *repository.AuditRepository
}

func NewAuditService(repo *repository.AuditRepository) *AuditService {
	return &AuditService{Repo: repo}
}

// ReleaseOrphanedSpots frees spots that are marked unavailable without an
// open ticket referencing them. An availability flag and the ledger can
// only disagree after a crash between allocate and ticket creation, or a
// failed release on exit.
func (s *AuditService) ReleaseOrphanedSpots() error {
	spots, err := s.Repo.GetOrphanedSpots()
	if err != nil {
		return fmt.Errorf("audit job: failed to find orphaned spots: %w", err)
	}
	if len(spots) == 0 {
		return nil
	}

	byClass := map[db.VehicleClass][]int{}
	for _, spot := range spots {
		byClass[spot.VehicleClass] = append(byClass[spot.VehicleClass], spot.Number)
	}

	for class, numbers := range byClass {
		released, err := s.Repo.ReleaseSpotNumbers(class, numbers)
		if err != nil {
			return fmt.Errorf("audit job: failed to release orphaned spots: %w", err)
		}
		log.Printf("Audit job: released %d orphaned %s spots: %v", released, class, numbers)
	}
	return nil
}

// ReportStaleTickets logs open tickets older than StaleTicketAge. They are
// not closed automatically; pricing a stay needs a real exit event.
func (s *AuditService) ReportStaleTickets() error {
	cutoff := time.Now().UTC().Add(-StaleTicketAge)
	tickets, err := s.Repo.GetStaleOpenTickets(cutoff)
	if err != nil {
		return fmt.Errorf("audit job: failed to list stale open tickets: %w", err)
	}
	for _, t := range tickets {
		log.Printf("Audit job: ticket %d (plate %s, spot %d %s) open since %s",
			t.ID, t.LicensePlate, t.SpotNumber, t.VehicleClass, t.EntryTime.Format(time.RFC3339))
	}
	return nil
}

// Run executes one audit pass.
func (s *AuditService) Run() {
	if err := s.ReleaseOrphanedSpots(); err != nil {
		log.Printf("%v", err)
	}
	if err := s.ReportStaleTickets(); err != nil {
		log.Printf("%v", err)
	}
}
