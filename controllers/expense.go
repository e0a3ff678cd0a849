package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"freelanceflow-backend/billing"
	"freelanceflow-backend/config"
	"freelanceflow-backend/models"
	"freelanceflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateExpenseInput defines the expected JSON structure for creating an
// expense. Tax and total are derived server-side, never accepted as input.
type CreateExpenseInput struct {
	ClientID    uuid.UUID  `json:"clientId" binding:"required"`
	ProjectID   *uuid.UUID `json:"projectId"`
	Date        time.Time  `json:"date" binding:"required"`
	Amount      float64    `json:"amount" binding:"required,min=0"`
	Category    string     `json:"category" binding:"required"`
	Description string     `json:"description"`
	Billable    *bool      `json:"billable"`
	TaxRate     float64    `json:"taxRate" binding:"min=0"`
	Tags        []string   `json:"tags"`
}

// UpdateExpenseInput defines the expected JSON structure for updating an expense
type UpdateExpenseInput struct {
	ProjectID   *uuid.UUID `json:"projectId"`
	Date        *time.Time `json:"date"`
	Amount      *float64   `json:"amount" binding:"omitempty,min=0"`
	Category    *string    `json:"category"`
	Description *string    `json:"description"`
	Billable    *bool      `json:"billable"`
	TaxRate     *float64   `json:"taxRate" binding:"omitempty,min=0"`
	Tags        *[]string  `json:"tags"`
}

// CreateExpense records a new expense
func CreateExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.Where("user_id = ? AND id = ?", userID, input.ClientID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ProjectID != nil {
		var project models.Project
		if err := config.DB.Where("user_id = ? AND id = ?", userID, *input.ProjectID).
			First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Project not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
	}

	billable := true
	if input.Billable != nil {
		billable = *input.Billable
	}

	taxAmount, totalAmount := billing.ExpenseTax(input.Amount, input.TaxRate)

	expense := models.Expense{
		ID:          uuid.New(),
		UserID:      userID,
		ClientID:    input.ClientID,
		ProjectID:   input.ProjectID,
		Date:        input.Date,
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
		Billable:    billable,
		TaxRate:     input.TaxRate,
		TaxAmount:   taxAmount,
		TotalAmount: totalAmount,
		Tags:        input.Tags,
	}

	if err := config.DB.Create(&expense).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// GetExpenses retrieves expenses, newest first. Filters: ?clientId=,
// ?projectId=, ?category=, ?from=, ?to=.
func GetExpenses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query, ok := expenseQuery(c, userID)
	if !ok {
		return
	}

	var expenses []models.Expense
	if err := query.Order("date DESC").Find(&expenses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// GetExpense retrieves a specific expense by ID
func GetExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	expenseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var expense models.Expense
	if err := config.DB.Where("user_id = ? AND id = ?", userID, expenseID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, expense)
}

// UpdateExpense edits an expense, re-deriving tax and total whenever the
// amount or rate changes.
func UpdateExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	expenseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var expense models.Expense
	if err := config.DB.Where("user_id = ? AND id = ?", userID, expenseID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ProjectID != nil {
		var project models.Project
		if err := config.DB.Where("user_id = ? AND id = ?", userID, *input.ProjectID).
			First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Project not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		expense.ProjectID = input.ProjectID
	}
	if input.Date != nil {
		expense.Date = *input.Date
	}
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}
	if input.Category != nil {
		expense.Category = *input.Category
	}
	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.Billable != nil {
		expense.Billable = *input.Billable
	}
	if input.TaxRate != nil {
		expense.TaxRate = *input.TaxRate
	}
	if input.Tags != nil {
		expense.Tags = *input.Tags
	}

	expense.TaxAmount, expense.TotalAmount = billing.ExpenseTax(expense.Amount, expense.TaxRate)

	if err := config.DB.Save(&expense).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update expense")
		return
	}

	c.JSON(http.StatusOK, expense)
}

// DeleteExpense soft deletes an expense
func DeleteExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	expenseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, expenseID).
		Delete(&models.Expense{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete expense")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// ExportExpensesCSV streams the current expense list as CSV, honoring the
// same filters as GetExpenses.
func ExportExpensesCSV(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query, ok := expenseQuery(c, userID)
	if !ok {
		return
	}

	var expenses []models.Expense
	if err := query.Order("date DESC").Find(&expenses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}

	filename := "expenses-" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	w := csv.NewWriter(c.Writer)
	for _, record := range expenseCSVRecords(expenses) {
		if err := w.Write(record); err != nil {
			return
		}
	}
	w.Flush()
}

// expenseCSVRecords renders the export rows, header first. The csv writer
// handles quote escaping for descriptions and tags.
func expenseCSVRecords(expenses []models.Expense) [][]string {
	records := [][]string{
		{"Date", "Category", "Description", "Amount", "Tax Rate", "Tax Amount", "Total", "Billable", "Tags"},
	}
	for _, x := range expenses {
		billable := "No"
		if x.Billable {
			billable = "Yes"
		}
		records = append(records, []string{
			x.Date.Format("2006-01-02"),
			x.Category,
			x.Description,
			fmt.Sprintf("%.2f", billing.SafeAmount(x.Amount)),
			fmt.Sprintf("%.2f%%", billing.SafeAmount(x.TaxRate)*100),
			fmt.Sprintf("%.2f", billing.SafeAmount(x.TaxAmount)),
			fmt.Sprintf("%.2f", billing.SafeAmount(x.TotalAmount)),
			billable,
			strings.Join([]string(x.Tags), ", "),
		})
	}
	return records
}

func expenseQuery(c *gin.Context, userID uuid.UUID) (*gorm.DB, bool) {
	query := config.DB.Where("user_id = ?", userID)

	if clientID := c.Query("clientId"); clientID != "" {
		id, err := uuid.Parse(clientID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid clientId filter")
			return nil, false
		}
		query = query.Where("client_id = ?", id)
	}
	if projectID := c.Query("projectId"); projectID != "" {
		id, err := uuid.Parse(projectID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid projectId filter")
			return nil, false
		}
		query = query.Where("project_id = ?", id)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if from, ok := queryTime(c, "from"); ok {
		query = query.Where("date >= ?", from)
	} else if c.Query("from") != "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid from filter")
		return nil, false
	}
	if to, ok := queryTime(c, "to"); ok {
		query = query.Where("date <= ?", utils.EndOfDay(to))
	} else if c.Query("to") != "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid to filter")
		return nil, false
	}

	return query, true
}
