package services_test

import (
	"testing"
	"time"

	"freelanceflow-backend/models"
	"freelanceflow-backend/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInvoice(status string) models.Invoice {
	return models.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: "INV-20260315-ABC123",
		IssueDate:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC),
		Status:        status,
		Amount:        862.5,
		Notes:         "Thank you for your business.\nPayable by bank transfer.",
		Items: []models.InvoiceItem{
			{Description: "Website Redesign: API integration", Quantity: 3.5, Rate: 75, Amount: 262.5},
			{Description: "Consulting", Quantity: 6, Rate: 100, Amount: 600},
		},
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	user := models.User{
		Name:            "Jordan Smith",
		Email:           "jordan@example.com",
		BusinessName:    "Smith Digital",
		BusinessAddress: "12 Harbor St",
	}
	client := models.Client{Name: "Acme Corp", Email: "billing@acme.test"}

	pdfBytes, err := services.GenerateInvoicePDF(testInvoice(models.InvoiceStatusSent), user, client)
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestGenerateInvoicePDF_DraftStillRenders(t *testing.T) {
	pdfBytes, err := services.GenerateInvoicePDF(
		testInvoice(models.InvoiceStatusDraft), models.User{Name: "Solo"}, models.Client{Name: "Acme"})
	require.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
}
