package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"parkgate/internal/db"
	apperrors "parkgate/internal/errors"
	"parkgate/internal/utils"
)

// SpotStore is the slice of the spot pool the workflow needs.
type SpotStore interface {
	FindAvailable(class db.VehicleClass) (int, bool, error)
	Allocate(number int, class db.VehicleClass) error
	Release(number int, class db.VehicleClass) error
}

// TicketStore is the slice of the ticket ledger the workflow needs.
type TicketStore interface {
	Create(t *db.Ticket) error
	GetOpenByPlate(plate string) (*db.Ticket, error)
	Close(id int, exitTime time.Time, price float64) (bool, error)
	CountByPlate(plate string) (int, error)
}

// VisitService drives one vehicle visit from the entry gate to the exit
// gate: allocate spot, open ticket, price the stay, release the spot.
type VisitService struct {
	Spots    SpotStore
	Tickets  TicketStore
	Fare     *FareService
	Receipts *ReceiptService

	now func() time.Time
}

func NewVisitService(spots SpotStore, tickets TicketStore, fare *FareService, receipts *ReceiptService) *VisitService {
	return &VisitService{
		Spots:    spots,
		Tickets:  tickets,
		Fare:     fare,
		Receipts: receipts,
		now:      time.Now,
	}
}

// RegisterEntry admits an arriving vehicle: resolves the class selector,
// claims the lowest free spot of that class and opens a ticket bound to it.
// If the ticket cannot be persisted the spot is released again before the
// error surfaces, so no spot stays blocked without an open ticket.
func (s *VisitService) RegisterEntry(selector int, plate, driverEmail, driverPhone string) (*db.Ticket, error) {
	class, err := utils.ClassFromSelector(selector)
	if err != nil {
		return nil, fmt.Errorf("selector %d: %w", selector, err)
	}
	plate = strings.TrimSpace(plate)
	if plate == "" {
		return nil, fmt.Errorf("license plate must not be empty")
	}

	number, ok, err := s.Spots.FindAvailable(class)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("class %s: %w", class, apperrors.ErrNoAvailableSpot)
	}

	if err := s.Spots.Allocate(number, class); err != nil {
		return nil, err
	}

	ticket := &db.Ticket{
		LicensePlate: plate,
		SpotNumber:   number,
		VehicleClass: class,
		EntryTime:    s.now().UTC(),
		DriverEmail:  strings.TrimSpace(driverEmail),
		DriverPhone:  strings.TrimSpace(driverPhone),
	}
	if err := s.Tickets.Create(ticket); err != nil {
		if relErr := s.Spots.Release(number, class); relErr != nil {
			log.Printf("Could not release spot %d (%s) after failed ticket creation: %v", number, class, relErr)
		}
		return nil, err
	}

	log.Printf("Vehicle %s admitted to spot %d (%s)", plate, number, class)
	return ticket, nil
}

// RegisterExit closes the visit for the plate and prices the stay. The
// spot is released once the vehicle has physically exited even when the
// ticket close could not be confirmed; a stuck spot blocks new arrivals
// while a missed billing record can be reconciled by hand.
func (s *VisitService) RegisterExit(plate string) (*db.Ticket, error) {
	plate = strings.TrimSpace(plate)

	ticket, err := s.Tickets.GetOpenByPlate(plate)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("plate %s: %w", plate, apperrors.ErrNoOpenTicket)
	}

	visits, err := s.Tickets.CountByPlate(plate)
	if err != nil {
		return nil, err
	}
	// The current ticket is already counted, so recurring means > 1.
	discount := visits > 1

	exitTime := s.now().UTC()
	price, err := s.Fare.ComputeFare(ticket.EntryTime, exitTime, ticket.VehicleClass, discount)
	if err != nil {
		return nil, err
	}
	ticket.ExitTime = &exitTime
	ticket.Price = price

	applied, err := s.Tickets.Close(ticket.ID, exitTime, price)
	if err != nil {
		log.Printf("Error closing ticket %d for plate %s: %v. Releasing spot anyway.", ticket.ID, plate, err)
	} else if !applied {
		log.Printf("Close of ticket %d for plate %s was not applied. Releasing spot anyway.", ticket.ID, plate)
	}

	if err := s.Spots.Release(ticket.SpotNumber, ticket.VehicleClass); err != nil {
		log.Printf("Could not release spot %d (%s) for exiting vehicle %s: %v", ticket.SpotNumber, ticket.VehicleClass, plate, err)
	}

	if s.Receipts != nil {
		s.Receipts.SendReceipt(ticket, discount)
	}

	log.Printf("Vehicle %s exited spot %d (%s), fare %.2f (discount %t)", plate, ticket.SpotNumber, ticket.VehicleClass, price, discount)
	return ticket, nil
}

// GetOpenTicket looks up the current open ticket for a plate.
func (s *VisitService) GetOpenTicket(plate string) (*db.Ticket, error) {
	ticket, err := s.Tickets.GetOpenByPlate(strings.TrimSpace(plate))
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("plate %s: %w", plate, apperrors.ErrNoOpenTicket)
	}
	return ticket, nil
}
