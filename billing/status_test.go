package billing_test

import (
	"testing"

	"freelanceflow-backend/billing"
	"freelanceflow-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceTransitions_Allowed(t *testing.T) {
	allowed := [][2]string{
		{models.InvoiceStatusDraft, models.InvoiceStatusSent},
		{models.InvoiceStatusSent, models.InvoiceStatusPaid},
		{models.InvoiceStatusSent, models.InvoiceStatusOverdue},
		{models.InvoiceStatusOverdue, models.InvoiceStatusPaid},
	}
	for _, pair := range allowed {
		assert.NoError(t, billing.CheckInvoiceTransition(pair[0], pair[1]),
			"%s -> %s should be allowed", pair[0], pair[1])
	}
}

func TestInvoiceTransitions_Rejected(t *testing.T) {
	rejected := [][2]string{
		{models.InvoiceStatusDraft, models.InvoiceStatusPaid},
		{models.InvoiceStatusDraft, models.InvoiceStatusOverdue},
		{models.InvoiceStatusSent, models.InvoiceStatusDraft},
		{models.InvoiceStatusPaid, models.InvoiceStatusSent},
		{models.InvoiceStatusPaid, models.InvoiceStatusOverdue},
		{models.InvoiceStatusOverdue, models.InvoiceStatusSent},
		{models.InvoiceStatusOverdue, models.InvoiceStatusDraft},
		{models.InvoiceStatusDraft, models.InvoiceStatusDraft},
	}
	for _, pair := range rejected {
		assert.ErrorIs(t, billing.CheckInvoiceTransition(pair[0], pair[1]),
			billing.ErrInvalidTransition,
			"%s -> %s should be rejected", pair[0], pair[1])
	}
}

func TestInvoiceEditable_OnlyDrafts(t *testing.T) {
	assert.True(t, billing.InvoiceEditable(models.InvoiceStatusDraft))
	assert.False(t, billing.InvoiceEditable(models.InvoiceStatusSent))
	assert.False(t, billing.InvoiceEditable(models.InvoiceStatusPaid))
	assert.False(t, billing.InvoiceEditable(models.InvoiceStatusOverdue))
}

func TestMilestoneTransitions(t *testing.T) {
	assert.NoError(t, billing.CheckMilestoneTransition(
		models.MilestoneStatusPending, models.MilestoneStatusInProgress))
	assert.NoError(t, billing.CheckMilestoneTransition(
		models.MilestoneStatusInProgress, models.MilestoneStatusCompleted))

	// Reopening an in-progress milestone is the only backward move
	assert.NoError(t, billing.CheckMilestoneTransition(
		models.MilestoneStatusInProgress, models.MilestoneStatusPending))

	assert.ErrorIs(t, billing.CheckMilestoneTransition(
		models.MilestoneStatusPending, models.MilestoneStatusCompleted),
		billing.ErrInvalidTransition)
	assert.ErrorIs(t, billing.CheckMilestoneTransition(
		models.MilestoneStatusCompleted, models.MilestoneStatusInProgress),
		billing.ErrInvalidTransition)
	assert.ErrorIs(t, billing.CheckMilestoneTransition(
		models.MilestoneStatusCompleted, models.MilestoneStatusPending),
		billing.ErrInvalidTransition)
}
