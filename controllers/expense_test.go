package controllers

import (
	"testing"
	"time"

	"freelanceflow-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseCSVRecords(t *testing.T) {
	expenses := []models.Expense{
		{
			Date:        time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			Category:    "software",
			Description: "IDE license, annual",
			Amount:      199,
			TaxRate:     0.2,
			TaxAmount:   39.8,
			TotalAmount: 238.8,
			Billable:    true,
			Tags:        models.StringList{"tools", "recurring"},
		},
		{
			Date:        time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
			Category:    "travel",
			Description: "Client visit",
			Amount:      85.5,
			TotalAmount: 85.5,
			Billable:    false,
		},
	}

	records := expenseCSVRecords(expenses)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"Date", "Category", "Description", "Amount", "Tax Rate",
		"Tax Amount", "Total", "Billable", "Tags",
	}, records[0])

	assert.Equal(t, []string{
		"2026-03-15", "software", "IDE license, annual",
		"199.00", "20.00%", "39.80", "238.80", "Yes", "tools, recurring",
	}, records[1])

	assert.Equal(t, []string{
		"2026-03-20", "travel", "Client visit",
		"85.50", "0.00%", "0.00", "85.50", "No", "",
	}, records[2])
}

func TestExpenseCSVRecords_EmptyListIsHeaderOnly(t *testing.T) {
	records := expenseCSVRecords(nil)
	require.Len(t, records, 1)
	assert.Equal(t, "Date", records[0][0])
}
