package billing

import "freelanceflow-backend/models"

// Invoice status machine: draft -> sent -> paid, with overdue reachable
// from sent when the due date passes. Overdue invoices can still be paid.
// No transition moves an invoice backward.
var invoiceTransitions = map[string][]string{
	models.InvoiceStatusDraft:   {models.InvoiceStatusSent},
	models.InvoiceStatusSent:    {models.InvoiceStatusPaid, models.InvoiceStatusOverdue},
	models.InvoiceStatusOverdue: {models.InvoiceStatusPaid},
	models.InvoiceStatusPaid:    {},
}

// CheckInvoiceTransition returns ErrInvalidTransition unless from -> to is
// a permitted forward move.
func CheckInvoiceTransition(from, to string) error {
	for _, next := range invoiceTransitions[from] {
		if next == to {
			return nil
		}
	}
	return ErrInvalidTransition
}

// InvoiceEditable reports whether line items may still be changed.
// Editing is only permitted while the invoice is a draft.
func InvoiceEditable(status string) bool {
	return status == models.InvoiceStatusDraft
}

// Milestone status machine: pending -> in_progress -> completed, with
// in_progress -> pending as a reopen. Completed is terminal through
// normal controls.
var milestoneTransitions = map[string][]string{
	models.MilestoneStatusPending:    {models.MilestoneStatusInProgress},
	models.MilestoneStatusInProgress: {models.MilestoneStatusCompleted, models.MilestoneStatusPending},
	models.MilestoneStatusCompleted:  {},
}

func CheckMilestoneTransition(from, to string) error {
	for _, next := range milestoneTransitions[from] {
		if next == to {
			return nil
		}
	}
	return ErrInvalidTransition
}
