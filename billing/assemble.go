package billing

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"freelanceflow-backend/models"
)

// ItemFromTimeEntry converts one time entry into one invoice line item.
// Quantity is the entry's duration in hours and the rate is the entry's
// own snapshot, not the project's current rate, so historical billing
// stays accurate after rate changes.
func ItemFromTimeEntry(entry models.TimeEntry, projectName string) models.InvoiceItem {
	quantity := SafeAmount(float64(entry.Duration)) / 3600
	rate := SafeAmount(entry.HourlyRate)
	return models.InvoiceItem{
		Description: fmt.Sprintf("%s: %s", projectName, entry.Description),
		Quantity:    quantity,
		Rate:        rate,
		Amount:      quantity * rate,
	}
}

// ManualItem builds a free-form line item.
func ManualItem(description string, quantity, rate float64) models.InvoiceItem {
	quantity = SafeAmount(quantity)
	rate = SafeAmount(rate)
	return models.InvoiceItem{
		Description: description,
		Quantity:    quantity,
		Rate:        rate,
		Amount:      quantity * rate,
	}
}

// InvoiceTotal sums item amounts. The items list is the single source of
// truth; call this after every item mutation.
func InvoiceTotal(items []models.InvoiceItem) float64 {
	var total float64
	for _, it := range items {
		total += SafeAmount(it.Amount)
	}
	return total
}

const numberCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewInvoiceNumber generates a short human-presented identifier,
// INV-<yyyymmdd>-<6 random chars>. Uniqueness is best-effort; creation is
// a single-user action and the column keeps a unique index as backstop.
func NewInvoiceNumber(t time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(numberCharset))))
		if err != nil {
			// crypto/rand failing is effectively unreachable; fall
			// back to a time-derived character.
			suffix[i] = numberCharset[t.UnixNano()%int64(len(numberCharset))]
			continue
		}
		suffix[i] = numberCharset[n.Int64()]
	}
	return "INV-" + t.Format("20060102") + "-" + string(suffix)
}

// EntryDuration computes the duration for a time entry and validates the
// range. Duration is always derived here, never trusted from input.
func EntryDuration(start, end time.Time) (int64, error) {
	if !end.After(start) {
		return 0, ErrInvalidTimeRange
	}
	return int64(end.Sub(start).Seconds()), nil
}

// ExpenseTax derives the tax and total for an expense.
func ExpenseTax(amount, taxRate float64) (taxAmount, totalAmount float64) {
	amount = SafeAmount(amount)
	taxRate = SafeAmount(taxRate)
	taxAmount = amount * taxRate
	return taxAmount, amount + taxAmount
}
