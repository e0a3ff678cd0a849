package controllers

import (
	"testing"

	"freelanceflow-backend/billing"
	"freelanceflow-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProjectView_HourlyBudget(t *testing.T) {
	project := models.Project{
		ID:           uuid.New(),
		Name:         "Website Redesign",
		HourlyRate:   100,
		BudgetAmount: 1000,
		BudgetType:   models.BudgetTypeHourly,
		Milestones: []models.Milestone{
			{Status: models.MilestoneStatusCompleted},
			{Status: models.MilestoneStatusPending},
		},
	}

	entries := []models.TimeEntry{
		{ID: uuid.New(), ProjectID: project.ID, Duration: 7 * 3600},
		{ID: uuid.New(), ProjectID: uuid.New(), Duration: 100 * 3600}, // unrelated project
	}
	projectID := project.ID
	expenses := []models.Expense{
		{ID: uuid.New(), ProjectID: &projectID, Amount: 150},
	}

	view := projectView(project, entries, expenses)

	assert.InDelta(t, 7.0, view.HoursLogged, 1e-9)
	assert.InDelta(t, 850.0, view.BudgetUsed, 1e-9)
	assert.Equal(t, billing.BudgetStateWarning, view.BudgetState)
	assert.Equal(t, 50, view.MilestoneProgress)
}

func TestProjectView_FixedBudgetIgnoresHours(t *testing.T) {
	project := models.Project{
		ID:           uuid.New(),
		Name:         "Brand Package",
		HourlyRate:   100,
		BudgetAmount: 5000,
		BudgetType:   models.BudgetTypeFixed,
	}

	entries := []models.TimeEntry{
		{ID: uuid.New(), ProjectID: project.ID, Duration: 200 * 3600},
	}
	projectID := project.ID
	expenses := []models.Expense{
		{ID: uuid.New(), ProjectID: &projectID, Amount: 4200},
	}

	view := projectView(project, entries, expenses)

	assert.InDelta(t, 200.0, view.HoursLogged, 1e-9)
	assert.InDelta(t, 4200.0, view.BudgetUsed, 1e-9)
	assert.Equal(t, billing.BudgetStateWarning, view.BudgetState)
}

func TestProjectView_NoBudgetIsOK(t *testing.T) {
	project := models.Project{ID: uuid.New(), BudgetType: models.BudgetTypeHourly, HourlyRate: 50}
	view := projectView(project, nil, nil)
	assert.Equal(t, billing.BudgetStateOK, view.BudgetState)
	assert.Equal(t, 0, view.MilestoneProgress)
}
