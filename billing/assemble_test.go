package billing_test

import (
	"strings"
	"testing"
	"time"

	"freelanceflow-backend/billing"
	"freelanceflow-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemFromTimeEntry(t *testing.T) {
	e := models.TimeEntry{
		ID:          uuid.New(),
		Duration:    12600, // 3.5 hours
		HourlyRate:  75,
		Description: "API integration",
	}

	item := billing.ItemFromTimeEntry(e, "Website Redesign")

	assert.Equal(t, "Website Redesign: API integration", item.Description)
	assert.InDelta(t, 3.5, item.Quantity, 1e-9)
	assert.Equal(t, 75.0, item.Rate)
	assert.InDelta(t, 262.5, item.Amount, 1e-9)
}

func TestItemFromTimeEntry_UsesSnapshotRate(t *testing.T) {
	// The entry's stored rate wins even if the project rate has changed since
	e := models.TimeEntry{Duration: 3600, HourlyRate: 60}
	item := billing.ItemFromTimeEntry(e, "Project")
	assert.Equal(t, 60.0, item.Rate)
	assert.Equal(t, 60.0, item.Amount)
}

func TestInvoiceTotal_MatchesItemSum(t *testing.T) {
	entries := []models.TimeEntry{
		{Duration: 3600, HourlyRate: 100, Description: "a"},
		{Duration: 5400, HourlyRate: 80, Description: "b"},
		{Duration: 1800, HourlyRate: 120, Description: "c"},
	}

	var items []models.InvoiceItem
	var expected float64
	for _, e := range entries {
		item := billing.ItemFromTimeEntry(e, "p")
		items = append(items, item)
		expected += item.Amount
	}

	assert.InDelta(t, expected, billing.InvoiceTotal(items), 1e-9)
}

func TestInvoiceTotal_TracksItemMutations(t *testing.T) {
	items := []models.InvoiceItem{
		billing.ManualItem("Design", 2, 50),
		billing.ManualItem("Development", 1, 100),
	}
	assert.Equal(t, 200.0, billing.InvoiceTotal(items))

	// Add
	items = append(items, billing.ManualItem("Hosting", 1, 25))
	assert.Equal(t, 225.0, billing.InvoiceTotal(items))

	// Edit
	items[0] = billing.ManualItem("Design", 3, 50)
	assert.Equal(t, 275.0, billing.InvoiceTotal(items))

	// Delete
	items = items[1:]
	assert.Equal(t, 125.0, billing.InvoiceTotal(items))
}

func TestManualItem(t *testing.T) {
	item := billing.ManualItem("Consulting", 2.5, 90)
	assert.Equal(t, "Consulting", item.Description)
	assert.InDelta(t, 225.0, item.Amount, 1e-9)
}

func TestNewInvoiceNumber_Shape(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	number := billing.NewInvoiceNumber(now)

	require.True(t, strings.HasPrefix(number, "INV-20260901-"), number)
	assert.Len(t, number, len("INV-20260901-")+6)
}

func TestNewInvoiceNumber_Varies(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[billing.NewInvoiceNumber(now)] = true
	}
	assert.Greater(t, len(seen), 1, "random suffix should vary between calls")
}

func TestEntryDuration(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(2*time.Hour + 30*time.Minute)

	d, err := billing.EntryDuration(start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(9000), d)
}

func TestEntryDuration_RejectsBadRanges(t *testing.T) {
	now := time.Now()

	_, err := billing.EntryDuration(now, now)
	assert.ErrorIs(t, err, billing.ErrInvalidTimeRange)

	_, err = billing.EntryDuration(now, now.Add(-time.Minute))
	assert.ErrorIs(t, err, billing.ErrInvalidTimeRange)
}

func TestExpenseTax(t *testing.T) {
	taxAmount, totalAmount := billing.ExpenseTax(100, 0.2)
	assert.InDelta(t, 20.0, taxAmount, 1e-9)
	assert.InDelta(t, 120.0, totalAmount, 1e-9)

	taxAmount, totalAmount = billing.ExpenseTax(100, 0)
	assert.Equal(t, 0.0, taxAmount)
	assert.Equal(t, 100.0, totalAmount)
}
