// Package billing holds the aggregation and invoice-assembly engine.
//
// Every function is a pure reduction over slices handed in by the caller;
// the package knows nothing about the database or HTTP layer. Controllers
// fetch the collections and pass them down.
package billing

import (
	"math"
	"strconv"
	"strings"
	"time"

	"freelanceflow-backend/models"

	"github.com/google/uuid"
)

const (
	BudgetStateOK       = "ok"
	BudgetStateWarning  = "warning"
	BudgetStateExceeded = "exceeded"

	budgetWarningRatio = 0.8
)

// SafeAmount coerces NaN and infinities to 0 so a single bad value cannot
// poison every downstream sum.
func SafeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseAmount parses a user-supplied numeric string, returning 0 on any
// failure. Form-level validation reports the error to the user; this keeps
// the aggregates safe regardless.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return SafeAmount(v)
}

// HoursFor sums the duration of matching entries, in hours.
func HoursFor(entries []models.TimeEntry, match func(models.TimeEntry) bool) float64 {
	var seconds float64
	for _, e := range entries {
		if match == nil || match(e) {
			seconds += SafeAmount(float64(e.Duration))
		}
	}
	return seconds / 3600
}

// ByProject matches time entries and expenses belonging to a project.
// Expenses without a project never match.
func ByProject(projectID uuid.UUID) func(models.TimeEntry) bool {
	return func(e models.TimeEntry) bool { return e.ProjectID == projectID }
}

func ByClient(clientID uuid.UUID) func(models.TimeEntry) bool {
	return func(e models.TimeEntry) bool { return e.ClientID == clientID }
}

// ExpenseTotalFor sums the base amount of matching expenses.
func ExpenseTotalFor(expenses []models.Expense, match func(models.Expense) bool) float64 {
	var total float64
	for _, x := range expenses {
		if match == nil || match(x) {
			total += SafeAmount(x.Amount)
		}
	}
	return total
}

func ExpenseByProject(projectID uuid.UUID) func(models.Expense) bool {
	return func(x models.Expense) bool {
		return x.ProjectID != nil && *x.ProjectID == projectID
	}
}

func ExpenseByClient(clientID uuid.UUID) func(models.Expense) bool {
	return func(x models.Expense) bool { return x.ClientID == clientID }
}

// BudgetUsed computes how much of a project's budget is consumed. Hourly
// budgets burn down with logged hours at the project rate plus expenses;
// fixed-bid budgets count expenses only, hours are informational.
func BudgetUsed(p models.Project, hours, expenses float64) float64 {
	if p.BudgetType == models.BudgetTypeHourly {
		return hours*SafeAmount(p.HourlyRate) + expenses
	}
	return expenses
}

// BudgetState classifies budget consumption. Both thresholds are
// inclusive: exactly 80% is a warning, exactly 100% is exceeded.
func BudgetState(used, budget float64) string {
	if budget <= 0 {
		return BudgetStateOK
	}
	ratio := used / budget
	switch {
	case ratio >= 1.0:
		return BudgetStateExceeded
	case ratio >= budgetWarningRatio:
		return BudgetStateWarning
	default:
		return BudgetStateOK
	}
}

// MilestoneProgress is the percentage of completed milestones, rounded.
// A project with no milestones is 0% complete.
func MilestoneProgress(milestones []models.Milestone) int {
	if len(milestones) == 0 {
		return 0
	}
	completed := 0
	for _, m := range milestones {
		if m.Status == models.MilestoneStatusCompleted {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(milestones))))
}

// FinancialSummary aggregates invoices and expenses over an issue-date
// range (inclusive on both ends).
type FinancialSummary struct {
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
	Margin   float64 `json:"margin"` // percent, 0 when revenue is 0
}

func Summary(invoices []models.Invoice, expenses []models.Expense, from, to time.Time) FinancialSummary {
	var s FinancialSummary
	for _, inv := range invoices {
		if inRange(inv.IssueDate, from, to) {
			s.Revenue += SafeAmount(inv.Amount)
		}
	}
	for _, x := range expenses {
		if inRange(x.Date, from, to) {
			s.Expenses += SafeAmount(x.Amount)
		}
	}
	s.Profit = s.Revenue - s.Expenses
	if s.Revenue > 0 {
		s.Margin = s.Profit / s.Revenue * 100
	}
	return s
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// MonthRow is one month of the revenue/expense breakdown.
type MonthRow struct {
	Month    string  `json:"month"` // 2006-01
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// MonthlyBreakdown rolls invoices and expenses up per calendar month
// within the range, in chronological order. Months without activity are
// included so charts have no gaps.
func MonthlyBreakdown(invoices []models.Invoice, expenses []models.Expense, from, to time.Time) []MonthRow {
	if to.Before(from) {
		return nil
	}
	var rows []MonthRow
	cur := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location())
	for !cur.After(end) {
		next := cur.AddDate(0, 1, 0)
		row := MonthRow{Month: cur.Format("2006-01")}
		for _, inv := range invoices {
			if !inv.IssueDate.Before(cur) && inv.IssueDate.Before(next) {
				row.Revenue += SafeAmount(inv.Amount)
			}
		}
		for _, x := range expenses {
			if !x.Date.Before(cur) && x.Date.Before(next) {
				row.Expenses += SafeAmount(x.Amount)
			}
		}
		row.Profit = row.Revenue - row.Expenses
		rows = append(rows, row)
		cur = next
	}
	return rows
}

// ProfitabilityRow reports revenue, cost and effective rate for one
// client or project.
type ProfitabilityRow struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Hours    float64   `json:"hours"`
	Revenue  float64   `json:"revenue"`
	Expenses float64   `json:"expenses"`
	Profit   float64   `json:"profit"`
	// Revenue per logged hour; 0 when no hours are logged.
	EffectiveRate float64 `json:"effectiveRate"`
}

// ClientProfitability computes a row per client, skipping clients with no
// financial activity.
func ClientProfitability(clients []models.Client, invoices []models.Invoice, expenses []models.Expense, entries []models.TimeEntry) []ProfitabilityRow {
	var rows []ProfitabilityRow
	for _, c := range clients {
		row := ProfitabilityRow{ID: c.ID, Name: c.Name}
		for _, inv := range invoices {
			if inv.ClientID == c.ID {
				row.Revenue += SafeAmount(inv.Amount)
			}
		}
		row.Expenses = ExpenseTotalFor(expenses, ExpenseByClient(c.ID))
		row.Hours = HoursFor(entries, ByClient(c.ID))
		row.Profit = row.Revenue - row.Expenses
		if row.Hours > 0 {
			row.EffectiveRate = row.Revenue / row.Hours
		}
		if row.Revenue > 0 || row.Expenses > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

// ProjectProfitability computes a row per project. Invoice revenue is
// attributed to a project when the invoice references it.
func ProjectProfitability(projects []models.Project, invoices []models.Invoice, expenses []models.Expense, entries []models.TimeEntry) []ProfitabilityRow {
	var rows []ProfitabilityRow
	for _, p := range projects {
		row := ProfitabilityRow{ID: p.ID, Name: p.Name}
		for _, inv := range invoices {
			if invoiceReferences(inv, p.ID) {
				row.Revenue += SafeAmount(inv.Amount)
			}
		}
		row.Expenses = ExpenseTotalFor(expenses, ExpenseByProject(p.ID))
		row.Hours = HoursFor(entries, ByProject(p.ID))
		row.Profit = row.Revenue - row.Expenses
		if row.Hours > 0 {
			row.EffectiveRate = row.Revenue / row.Hours
		}
		if row.Revenue > 0 || row.Expenses > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

func invoiceReferences(inv models.Invoice, projectID uuid.UUID) bool {
	id := projectID.String()
	for _, s := range inv.ProjectIDs {
		if s == id {
			return true
		}
	}
	return false
}
