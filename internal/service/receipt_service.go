package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"parkgate/internal/db"
	"parkgate/internal/entities"
)

// ReceiptService sends a fare receipt to departing drivers that left an
// email address or phone number at the entry gate. Sending is best-effort
// and asynchronous; a failed receipt never blocks the exit.
type ReceiptService struct {
}

func NewReceiptService() *ReceiptService {
	return &ReceiptService{}
}

func (s *ReceiptService) SendReceipt(ticket *db.Ticket, discounted bool) {
	if ticket.DriverEmail == "" && ticket.DriverPhone == "" {
		return
	}
	if ticket.ExitTime == nil {
		log.Printf("Receipt requested for still-open ticket %d, skipping", ticket.ID)
		return
	}

	data := entities.ReceiptEmailData{
		LicensePlate:       ticket.LicensePlate,
		SpotNumber:         ticket.SpotNumber,
		VehicleClass:       string(ticket.VehicleClass),
		EntryTimeFormatted: ticket.EntryTime.Local().Format("02 Jan 2006 15:04 MST"),
		ExitTimeFormatted:  ticket.ExitTime.Local().Format("02 Jan 2006 15:04 MST"),
		Price:              ticket.Price,
		Discounted:         discounted,
		CurrentYear:        time.Now().Year(),
	}

	if ticket.DriverEmail != "" {
		s.sendEmailReceipt(ticket.DriverEmail, data)
	}
	if ticket.DriverPhone != "" {
		s.sendSMSReceipt(ticket.DriverPhone, data)
	}
}

func (s *ReceiptService) sendEmailReceipt(toEmail string, data entities.ReceiptEmailData) {
	subject := fmt.Sprintf("Your parking receipt - %s", data.LicensePlate)
	plainBody := fmt.Sprintf(
		"Thank you for parking with us.\n\n"+
			"Vehicle: %s (spot %d, %s)\n"+
			"Entry: %s\n"+
			"Exit: %s\n"+
			"Total fare: %.2f EUR\n",
		data.LicensePlate, data.SpotNumber, data.VehicleClass,
		data.EntryTimeFormatted, data.ExitTimeFormatted, data.Price,
	)
	if data.Discounted {
		plainBody += "A 5% recurring-visitor discount was applied.\n"
	}

	var htmlBody string
	tmplPath := filepath.Join("internal", "templates", "receipt_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("Could not parse receipt template (%s): %v", tmplPath, err)
	} else {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			log.Printf("Could not render receipt template for plate %s: %v", data.LicensePlate, err)
		} else {
			htmlBody = buf.String()
		}
	}

	go func() {
		if err := SendEmailWithSendGrid(toEmail, data.LicensePlate, subject, plainBody, htmlBody); err != nil {
			log.Printf("Receipt email for plate %s failed: %v", data.LicensePlate, err)
		}
	}()
}

func (s *ReceiptService) sendSMSReceipt(toPhone string, data entities.ReceiptEmailData) {
	message := fmt.Sprintf("Parking receipt for %s: %.2f EUR (spot %d, exit %s). Details in your email.",
		data.LicensePlate, data.Price, data.SpotNumber, data.ExitTimeFormatted)

	go func() {
		if err := SendSMS(toPhone, message); err != nil {
			log.Printf("Receipt SMS for plate %s failed: %v", data.LicensePlate, err)
		}
	}()
}
