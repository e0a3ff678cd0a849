package controllers

import (
	"fmt"
	"net/http"
	"time"

	"freelanceflow-backend/billing"
	"freelanceflow-backend/config"
	"freelanceflow-backend/models"
	"freelanceflow-backend/utils"

	"github.com/gin-gonic/gin"
)

type RecentActivity struct {
	Type        string `json:"type"` // time_entry, expense, invoice
	Description string `json:"description"`
	When        string `json:"when"` // e.g. "Today", "Yesterday", "3 days ago"
}

// GetDashboardOverview aggregates the home-screen numbers: client and
// project counts, hours this month, monthly revenue, what is outstanding
// and what is overdue, plus a short recent-activity feed.
func GetDashboardOverview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	now := time.Now()
	firstOfMonth := utils.BeginningOfMonth(now)

	// Total Clients
	var totalClients int64
	config.DB.Model(&models.Client{}).
		Where("user_id = ? AND deleted_at IS NULL", userID).Count(&totalClients)

	// Active Projects
	var activeProjects int64
	config.DB.Model(&models.Project{}).
		Where("user_id = ? AND status = ? AND deleted_at IS NULL", userID, models.ProjectStatusActive).
		Count(&activeProjects)

	// Hours tracked this month
	var secondsThisMonth int64
	config.DB.Model(&models.TimeEntry{}).
		Where("user_id = ? AND start_time >= ? AND deleted_at IS NULL", userID, firstOfMonth).
		Select("COALESCE(SUM(duration), 0)").Scan(&secondsThisMonth)
	hoursThisMonth := billing.SafeAmount(float64(secondsThisMonth) / 3600)

	// Revenue this month (paid invoices issued this month)
	var monthlyRevenue float64
	config.DB.Model(&models.Invoice{}).
		Where("user_id = ? AND status = ? AND issue_date >= ?", userID, models.InvoiceStatusPaid, firstOfMonth).
		Select("COALESCE(SUM(amount), 0)").Scan(&monthlyRevenue)

	// Outstanding: everything billed but not yet paid
	var outstandingAmount float64
	config.DB.Model(&models.Invoice{}).
		Where("user_id = ? AND status IN ?", userID,
			[]string{models.InvoiceStatusSent, models.InvoiceStatusOverdue}).
		Select("COALESCE(SUM(amount), 0)").Scan(&outstandingAmount)

	var overdueCount int64
	config.DB.Model(&models.Invoice{}).
		Where("user_id = ? AND status = ?", userID, models.InvoiceStatusOverdue).
		Count(&overdueCount)

	response := gin.H{
		"totalClients":      totalClients,
		"activeProjects":    activeProjects,
		"hoursThisMonth":    hoursThisMonth,
		"monthlyRevenue":    billing.SafeAmount(monthlyRevenue),
		"outstandingAmount": billing.SafeAmount(outstandingAmount),
		"overdueInvoices":   overdueCount,
		"recentActivity":    recentActivity(userID.String()),
	}

	c.JSON(http.StatusOK, response)
}

// recentActivity merges the latest time entries, expenses and invoices into
// one feed, newest first, capped at 10 items.
func recentActivity(userID string) []RecentActivity {
	type activityRow struct {
		Type        string
		Description string
		HappenedAt  time.Time
	}

	var rows []activityRow
	config.DB.Raw(`
        SELECT * FROM (
            SELECT 'time_entry' AS type,
                   description AS description,
                   start_time AS happened_at
            FROM time_entries
            WHERE user_id = ? AND deleted_at IS NULL
            UNION ALL
            SELECT 'expense' AS type,
                   category || ': ' || description AS description,
                   date AS happened_at
            FROM expenses
            WHERE user_id = ? AND deleted_at IS NULL
            UNION ALL
            SELECT 'invoice' AS type,
                   invoice_number || ' (' || status || ')' AS description,
                   issue_date AS happened_at
            FROM invoices
            WHERE user_id = ?
        ) activity
        ORDER BY happened_at DESC
        LIMIT 10
    `, userID, userID, userID).Scan(&rows)

	activity := make([]RecentActivity, 0, len(rows))
	for _, r := range rows {
		activity = append(activity, RecentActivity{
			Type:        r.Type,
			Description: r.Description,
			When:        relativeDay(r.HappenedAt),
		})
	}
	return activity
}

func relativeDay(t time.Time) string {
	daysAgo := utils.DaysBetween(t, time.Now())
	switch daysAgo {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	default:
		return fmt.Sprintf("%d days ago", daysAgo)
	}
}
