package billing_test

import (
	"math"
	"testing"
	"time"

	"freelanceflow-backend/billing"
	"freelanceflow-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(projectID, clientID uuid.UUID, seconds int64) models.TimeEntry {
	return models.TimeEntry{
		ID:        uuid.New(),
		ProjectID: projectID,
		ClientID:  clientID,
		Duration:  seconds,
	}
}

func TestSafeAmount_CoercesBadValues(t *testing.T) {
	assert.Equal(t, 0.0, billing.SafeAmount(math.NaN()))
	assert.Equal(t, 0.0, billing.SafeAmount(math.Inf(1)))
	assert.Equal(t, 0.0, billing.SafeAmount(math.Inf(-1)))
	assert.Equal(t, 42.5, billing.SafeAmount(42.5))
	assert.Equal(t, -3.0, billing.SafeAmount(-3))
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, 120.5, billing.ParseAmount("120.5"))
	assert.Equal(t, 99.0, billing.ParseAmount("  99  "))
	assert.Equal(t, 0.0, billing.ParseAmount("not a number"))
	assert.Equal(t, 0.0, billing.ParseAmount(""))
	assert.Equal(t, 0.0, billing.ParseAmount("NaN"))
}

func TestHoursFor_SumsMatchingEntries(t *testing.T) {
	projectID := uuid.New()
	clientID := uuid.New()
	other := uuid.New()

	entries := []models.TimeEntry{
		entry(projectID, clientID, 3600),
		entry(projectID, clientID, 1800),
		entry(other, clientID, 7200),
	}

	assert.InDelta(t, 1.5, billing.HoursFor(entries, billing.ByProject(projectID)), 1e-9)
	assert.InDelta(t, 3.5, billing.HoursFor(entries, billing.ByClient(clientID)), 1e-9)
	assert.InDelta(t, 3.5, billing.HoursFor(entries, nil), 1e-9)
}

func TestExpenseByProject_NilProjectNeverMatches(t *testing.T) {
	projectID := uuid.New()
	expenses := []models.Expense{
		{ID: uuid.New(), ProjectID: &projectID, Amount: 100},
		{ID: uuid.New(), ProjectID: nil, Amount: 999},
	}

	total := billing.ExpenseTotalFor(expenses, billing.ExpenseByProject(projectID))
	assert.Equal(t, 100.0, total)
}

func TestBudgetUsed_HourlyBurnsHoursPlusExpenses(t *testing.T) {
	p := models.Project{BudgetType: models.BudgetTypeHourly, HourlyRate: 80}
	assert.Equal(t, 10*80.0+250, billing.BudgetUsed(p, 10, 250))
}

func TestBudgetUsed_FixedCountsExpensesOnly(t *testing.T) {
	p := models.Project{BudgetType: models.BudgetTypeFixed, HourlyRate: 80}
	assert.Equal(t, 250.0, billing.BudgetUsed(p, 10, 250))
}

func TestBudgetState_Thresholds(t *testing.T) {
	// Both thresholds are inclusive
	assert.Equal(t, billing.BudgetStateOK, billing.BudgetState(799.99, 1000))
	assert.Equal(t, billing.BudgetStateWarning, billing.BudgetState(800, 1000))
	assert.Equal(t, billing.BudgetStateWarning, billing.BudgetState(999.99, 1000))
	assert.Equal(t, billing.BudgetStateExceeded, billing.BudgetState(1000, 1000))
	assert.Equal(t, billing.BudgetStateExceeded, billing.BudgetState(1500, 1000))
}

func TestBudgetState_NoBudgetIsAlwaysOK(t *testing.T) {
	assert.Equal(t, billing.BudgetStateOK, billing.BudgetState(5000, 0))
	assert.Equal(t, billing.BudgetStateOK, billing.BudgetState(5000, -10))
}

func TestBudgetState_FixedProjectNearBudget(t *testing.T) {
	p := models.Project{BudgetType: models.BudgetTypeFixed, BudgetAmount: 5000}
	used := billing.BudgetUsed(p, 120, 4200)
	assert.Equal(t, 4200.0, used)
	assert.Equal(t, billing.BudgetStateWarning, billing.BudgetState(used, p.BudgetAmount))
}

func TestMilestoneProgress(t *testing.T) {
	assert.Equal(t, 0, billing.MilestoneProgress(nil))

	milestones := []models.Milestone{
		{Status: models.MilestoneStatusCompleted},
		{Status: models.MilestoneStatusCompleted},
		{Status: models.MilestoneStatusPending},
		{Status: models.MilestoneStatusInProgress},
	}
	assert.Equal(t, 50, billing.MilestoneProgress(milestones))

	// One of three completed rounds to 33
	assert.Equal(t, 33, billing.MilestoneProgress(milestones[1:]))
}

func TestSummary(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)

	invoices := []models.Invoice{
		{IssueDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), Amount: 4000},
		{IssueDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), Amount: 1000},
		{IssueDate: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), Amount: 9999}, // out of range
	}
	expenses := []models.Expense{
		{Date: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), Amount: 1500},
	}

	s := billing.Summary(invoices, expenses, from, to)
	assert.Equal(t, 5000.0, s.Revenue)
	assert.Equal(t, 1500.0, s.Expenses)
	assert.Equal(t, 3500.0, s.Profit)
	assert.InDelta(t, 70.0, s.Margin, 1e-9)
}

func TestSummary_RangeBoundsAreInclusive(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	invoices := []models.Invoice{
		{IssueDate: from, Amount: 100},
		{IssueDate: to, Amount: 200},
	}

	s := billing.Summary(invoices, nil, from, to)
	assert.Equal(t, 300.0, s.Revenue)
}

func TestSummary_ZeroRevenueHasZeroMargin(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	expenses := []models.Expense{
		{Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Amount: 500},
	}

	s := billing.Summary(nil, expenses, from, to)
	assert.Equal(t, 0.0, s.Revenue)
	assert.Equal(t, -500.0, s.Profit)
	assert.Equal(t, 0.0, s.Margin)
}

func TestMonthlyBreakdown_NoGaps(t *testing.T) {
	from := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	invoices := []models.Invoice{
		{IssueDate: time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), Amount: 1000},
		{IssueDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), Amount: 3000},
	}
	expenses := []models.Expense{
		{Date: time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), Amount: 400},
	}

	rows := billing.MonthlyBreakdown(invoices, expenses, from, to)
	require.Len(t, rows, 4)

	assert.Equal(t, "2026-01", rows[0].Month)
	assert.Equal(t, 1000.0, rows[0].Revenue)

	// February has only the expense; March is empty but present
	assert.Equal(t, "2026-02", rows[1].Month)
	assert.Equal(t, 400.0, rows[1].Expenses)
	assert.Equal(t, -400.0, rows[1].Profit)

	assert.Equal(t, "2026-03", rows[2].Month)
	assert.Equal(t, 0.0, rows[2].Revenue)
	assert.Equal(t, 0.0, rows[2].Expenses)

	assert.Equal(t, "2026-04", rows[3].Month)
	assert.Equal(t, 3000.0, rows[3].Revenue)
}

func TestMonthlyBreakdown_InvertedRangeIsEmpty(t *testing.T) {
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, billing.MonthlyBreakdown(nil, nil, from, to))
}

func TestClientProfitability(t *testing.T) {
	active := models.Client{ID: uuid.New(), Name: "Acme"}
	idle := models.Client{ID: uuid.New(), Name: "Idle Co"}

	invoices := []models.Invoice{
		{ClientID: active.ID, Amount: 2000},
	}
	expenses := []models.Expense{
		{ClientID: active.ID, Amount: 500},
	}
	entries := []models.TimeEntry{
		entry(uuid.New(), active.ID, 4*3600),
	}

	rows := billing.ClientProfitability(
		[]models.Client{active, idle}, invoices, expenses, entries)

	// Clients with no activity are skipped
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].Name)
	assert.Equal(t, 2000.0, rows[0].Revenue)
	assert.Equal(t, 500.0, rows[0].Expenses)
	assert.Equal(t, 1500.0, rows[0].Profit)
	assert.InDelta(t, 4.0, rows[0].Hours, 1e-9)
	assert.InDelta(t, 500.0, rows[0].EffectiveRate, 1e-9)
}

func TestProjectProfitability_AttributesByReference(t *testing.T) {
	project := models.Project{ID: uuid.New(), Name: "Website"}
	other := models.Project{ID: uuid.New(), Name: "Unrelated"}

	invoices := []models.Invoice{
		{Amount: 3000, ProjectIDs: models.StringList{project.ID.String()}},
		{Amount: 7000, ProjectIDs: models.StringList{uuid.New().String()}},
	}
	entries := []models.TimeEntry{
		entry(project.ID, uuid.New(), 10*3600),
	}

	rows := billing.ProjectProfitability(
		[]models.Project{project, other}, invoices, nil, entries)

	require.Len(t, rows, 1)
	assert.Equal(t, "Website", rows[0].Name)
	assert.Equal(t, 3000.0, rows[0].Revenue)
	assert.InDelta(t, 300.0, rows[0].EffectiveRate, 1e-9)
}

func TestProfitability_NoHoursMeansZeroEffectiveRate(t *testing.T) {
	client := models.Client{ID: uuid.New(), Name: "Acme"}
	invoices := []models.Invoice{{ClientID: client.ID, Amount: 1000}}

	rows := billing.ClientProfitability([]models.Client{client}, invoices, nil, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].EffectiveRate)
}
