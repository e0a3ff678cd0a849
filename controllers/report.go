package controllers

import (
	"net/http"
	"time"

	"freelanceflow-backend/billing"
	"freelanceflow-backend/config"
	"freelanceflow-backend/models"
	"freelanceflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectBudgetRow is the budget health line for one project.
type ProjectBudgetRow struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	BudgetType        string    `json:"budgetType"`
	BudgetAmount      float64   `json:"budgetAmount"`
	BudgetUsed        float64   `json:"budgetUsed"`
	BudgetState       string    `json:"budgetState"`
	HoursLogged       float64   `json:"hoursLogged"`
	MilestoneProgress int       `json:"milestoneProgress"`
}

// GetReportAnalytics builds the full analytics payload for a date range
// (?from= and ?to=, defaulting to the current calendar year): financial
// summary, monthly breakdown, profitability per client and per project,
// and budget health per project.
func GetReportAnalytics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	now := time.Now()
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	to := utils.EndOfDay(now)

	if t, ok := queryTime(c, "from"); ok {
		from = t
	} else if c.Query("from") != "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid from filter")
		return
	}
	if t, ok := queryTime(c, "to"); ok {
		to = utils.EndOfDay(t)
	} else if c.Query("to") != "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid to filter")
		return
	}
	if to.Before(from) {
		utils.RespondWithError(c, http.StatusBadRequest, "Range end before start")
		return
	}

	var clients []models.Client
	if err := config.DB.Where("user_id = ?", userID).Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load clients")
		return
	}
	var projects []models.Project
	if err := config.DB.Preload("Milestones").Where("user_id = ?", userID).
		Find(&projects).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load projects")
		return
	}
	var invoices []models.Invoice
	if err := config.DB.Where("user_id = ?", userID).Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load invoices")
		return
	}
	var expenses []models.Expense
	if err := config.DB.Where("user_id = ?", userID).Find(&expenses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load expenses")
		return
	}
	var entries []models.TimeEntry
	if err := config.DB.Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load time entries")
		return
	}

	// Profitability and budget views look at the range too
	rangeInvoices := invoicesInRange(invoices, from, to)
	rangeExpenses := expensesInRange(expenses, from, to)
	rangeEntries := entriesInRange(entries, from, to)

	budgets := make([]ProjectBudgetRow, 0, len(projects))
	for _, p := range projects {
		// Budget burn-down is lifetime, not range-scoped
		hours := billing.HoursFor(entries, billing.ByProject(p.ID))
		expenseTotal := billing.ExpenseTotalFor(expenses, billing.ExpenseByProject(p.ID))
		used := billing.BudgetUsed(p, hours, expenseTotal)
		budgets = append(budgets, ProjectBudgetRow{
			ID:                p.ID,
			Name:              p.Name,
			BudgetType:        p.BudgetType,
			BudgetAmount:      p.BudgetAmount,
			BudgetUsed:        used,
			BudgetState:       billing.BudgetState(used, p.BudgetAmount),
			HoursLogged:       hours,
			MilestoneProgress: billing.MilestoneProgress(p.Milestones),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"from":                 from,
		"to":                   to,
		"summary":              billing.Summary(invoices, expenses, from, to),
		"monthlyBreakdown":     billing.MonthlyBreakdown(invoices, expenses, from, to),
		"clientProfitability":  billing.ClientProfitability(clients, rangeInvoices, rangeExpenses, rangeEntries),
		"projectProfitability": billing.ProjectProfitability(projects, rangeInvoices, rangeExpenses, rangeEntries),
		"projectBudgets":       budgets,
	})
}

func invoicesInRange(invoices []models.Invoice, from, to time.Time) []models.Invoice {
	out := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if !inv.IssueDate.Before(from) && !inv.IssueDate.After(to) {
			out = append(out, inv)
		}
	}
	return out
}

func expensesInRange(expenses []models.Expense, from, to time.Time) []models.Expense {
	out := make([]models.Expense, 0, len(expenses))
	for _, x := range expenses {
		if !x.Date.Before(from) && !x.Date.After(to) {
			out = append(out, x)
		}
	}
	return out
}

func entriesInRange(entries []models.TimeEntry, from, to time.Time) []models.TimeEntry {
	out := make([]models.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if !e.StartTime.Before(from) && !e.StartTime.After(to) {
			out = append(out, e)
		}
	}
	return out
}
