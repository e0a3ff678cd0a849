// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"freelanceflow-backend/models"
	"freelanceflow-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 8 AM
	c.AddFunc("0 8 * * *", func() {
		s.RunDailySweep()
	})

	c.Start()
	log.Println("Invoice reminder scheduler started")
}

// RunDailySweep marks sent invoices past their due date as overdue, then
// sends payment reminders for users who have reminders enabled.
func (s *ReminderService) RunDailySweep() {
	log.Println("Starting daily invoice sweep...")

	s.MarkOverdueInvoices()

	var users []models.User
	if err := s.db.Find(&users, "is_active = ?", true).Error; err != nil {
		log.Printf("Failed to fetch users: %v", err)
		return
	}

	for _, user := range users {
		if !remindersEnabled(user) {
			continue
		}
		s.ProcessUserReminders(user)
	}

	log.Println("Daily invoice sweep completed")
}

// MarkOverdueInvoices flips sent invoices to overdue once the due date has
// passed. The cutoff is midnight today, so an invoice due yesterday is
// overdue this morning.
func (s *ReminderService) MarkOverdueInvoices() {
	cutoff := utils.BeginningOfDay(time.Now())

	result := s.db.Model(&models.Invoice{}).
		Where("status = ? AND due_date < ?", models.InvoiceStatusSent, cutoff).
		Update("status", models.InvoiceStatusOverdue)

	if result.Error != nil {
		log.Printf("Failed to mark overdue invoices: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Marked %d invoices as overdue", result.RowsAffected)
	}
}

func (s *ReminderService) ProcessUserReminders(user models.User) {
	var invoices []models.Invoice
	if err := s.db.Where("user_id = ? AND status = ?", user.ID, models.InvoiceStatusOverdue).
		Find(&invoices).Error; err != nil {
		log.Printf("User %s: Failed to get overdue invoices: %v", user.ID, err)
		return
	}

	for _, invoice := range invoices {
		s.sendPaymentReminder(user, invoice)
	}
}

func (s *ReminderService) sendPaymentReminder(user models.User, invoice models.Invoice) {
	var client models.Client
	if err := s.db.Where("user_id = ? AND id = ?", user.ID, invoice.ClientID).
		First(&client).Error; err != nil {
		log.Printf("User %s: Client for invoice %s not found: %v", user.ID, invoice.InvoiceNumber, err)
		return
	}

	if client.Phone == "" {
		return
	}

	businessName := user.BusinessName
	if businessName == "" {
		businessName = user.Name
	}

	message := fmt.Sprintf(
		"Hi %s, this is a reminder from %s that invoice %s for %.2f was due on %s. Please arrange payment at your earliest convenience.",
		client.Name, businessName, invoice.InvoiceNumber,
		invoice.Amount, invoice.DueDate.Format("Jan 2, 2006"),
	)

	// Determine channel (WhatsApp if available, else SMS)
	channel := "sms"
	var to string

	// Use WhatsApp if phone is in E.164 format and starts with '+'
	if strings.HasPrefix(client.Phone, "+") {
		to = "whatsapp:" + client.Phone
		channel = "whatsapp"
	} else {
		to = client.Phone
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", client.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", client.Phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", client.Phone)
	}

	reminderLog := models.ReminderLog{
		UserID:       user.ID,
		InvoiceID:    invoice.ID,
		ClientID:     client.ID,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for invoice %s: %v", invoice.InvoiceNumber, err)
	}
}

// remindersEnabled reads the account's invoice settings; reminders default on.
func remindersEnabled(user models.User) bool {
	if user.InvoiceSettings == nil {
		return true
	}
	if v, ok := user.InvoiceSettings["remindersEnabled"].(bool); ok {
		return v
	}
	return true
}
