package service

import (
	"parkgate/internal/db"
	"parkgate/internal/entities"
	"parkgate/internal/repository"
)

type AdminService struct {
	Repo  *repository.AdminRepository
	Spots *repository.SpotRepository
}

func NewAdminService(repo *repository.AdminRepository, spots *repository.SpotRepository) *AdminService {
	return &AdminService{Repo: repo, Spots: spots}
}

func (s *AdminService) ListTickets(date string, class db.VehicleClass, openOnly bool) ([]db.Ticket, error) {
	return s.Repo.ListTickets(date, class, openOnly)
}

func (s *AdminService) ListSpots() ([]db.Spot, error) {
	return s.Spots.ListSpots()
}

func (s *AdminService) GetOccupancy() ([]entities.OccupancySummary, error) {
	return s.Repo.GetOccupancy()
}

func (s *AdminService) AddSpots(class db.VehicleClass, count int) error {
	return s.Spots.AddSpots(class, count)
}
