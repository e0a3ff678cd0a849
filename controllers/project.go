package controllers

import (
	"errors"
	"net/http"

	"freelanceflow-backend/billing"
	"freelanceflow-backend/config"
	"freelanceflow-backend/models"
	"freelanceflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateProjectInput defines the expected JSON structure for creating a project
type CreateProjectInput struct {
	ClientID     uuid.UUID `json:"clientId" binding:"required"`
	Name         string    `json:"name" binding:"required"`
	Description  string    `json:"description"`
	HourlyRate   float64   `json:"hourlyRate" binding:"min=0"`
	BudgetAmount float64   `json:"budgetAmount" binding:"min=0"`
	BudgetType   string    `json:"budgetType" binding:"omitempty,oneof=fixed hourly"`
}

// UpdateProjectInput defines the expected JSON structure for updating a project
type UpdateProjectInput struct {
	ClientID     *uuid.UUID `json:"clientId"`
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status" binding:"omitempty,oneof=active on_hold completed"`
	HourlyRate   *float64   `json:"hourlyRate" binding:"omitempty,min=0"`
	BudgetAmount *float64   `json:"budgetAmount" binding:"omitempty,min=0"`
	BudgetType   *string    `json:"budgetType" binding:"omitempty,oneof=fixed hourly"`
}

// ProjectView decorates a project with its derived budget/progress numbers.
type ProjectView struct {
	models.Project
	HoursLogged       float64 `json:"hoursLogged"`
	BudgetUsed        float64 `json:"budgetUsed"`
	BudgetState       string  `json:"budgetState"`
	MilestoneProgress int     `json:"milestoneProgress"`
}

// CreateProject creates a new project for the account
func CreateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate client exists for this account
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

	budgetType := input.BudgetType
	if budgetType == "" {
		budgetType = models.BudgetTypeHourly
	}

	project := models.Project{
		ID:           uuid.New(),
		UserID:       userID,
		ClientID:     input.ClientID,
		Name:         input.Name,
		Description:  input.Description,
		Status:       models.ProjectStatusActive,
		HourlyRate:   input.HourlyRate,
		BudgetAmount: input.BudgetAmount,
		BudgetType:   budgetType,
	}

	if err := config.DB.Create(&project).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProjects retrieves all projects for the account, with derived budget
// consumption and milestone progress. Pass ?clientId= to scope to a client.
func GetProjects(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Milestones").Where("user_id = ?", userID)
	if clientID := c.Query("clientId"); clientID != "" {
		id, err := uuid.Parse(clientID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid clientId filter")
			return
		}
		query = query.Where("client_id = ?", id)
	}

	var projects []models.Project
	if err := query.Order("name").Find(&projects).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve projects")
		return
	}

	var entries []models.TimeEntry
	if err := config.DB.Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve time entries")
		return
	}
	var expenses []models.Expense
	if err := config.DB.Where("user_id = ?", userID).Find(&expenses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}

	views := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, projectView(p, entries, expenses))
	}

	c.JSON(http.StatusOK, views)
}

// GetProject retrieves a specific project by ID
func GetProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var project models.Project
	if err := config.DB.Preload("Milestones").
		Where("user_id = ? AND id = ?", userID, projectID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Project not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var entries []models.TimeEntry
	if err := config.DB.Where("user_id = ? AND project_id = ?", userID, project.ID).
		Find(&entries).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve time entries")
		return
	}
	var expenses []models.Expense
	if err := config.DB.Where("user_id = ? AND project_id = ?", userID, project.ID).
		Find(&expenses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}

	c.JSON(http.StatusOK, projectView(project, entries, expenses))
}

// UpdateProject updates an existing project
func UpdateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var project models.Project
	if err := config.DB.Where("user_id = ? AND id = ?", userID, projectID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Project not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ClientID != nil {
		var client models.Client
		if err := config.DB.Where("user_id = ? AND id = ?", userID, *input.ClientID).
			First(&client).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Client not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		project.ClientID = *input.ClientID
	}
	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.HourlyRate != nil {
		project.HourlyRate = *input.HourlyRate
	}
	if input.BudgetAmount != nil {
		project.BudgetAmount = *input.BudgetAmount
	}
	if input.BudgetType != nil {
		project.BudgetType = *input.BudgetType
	}

	if err := config.DB.Save(&project).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject soft deletes a project and its milestones
func DeleteProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var project models.Project
	if err := tx.Where("user_id = ? AND id = ?", userID, projectID).
		First(&project).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Project not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := tx.Where("project_id = ?", project.ID).Delete(&models.Milestone{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete milestones")
		return
	}

	if err := tx.Delete(&project).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete project")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func projectView(p models.Project, entries []models.TimeEntry, expenses []models.Expense) ProjectView {
	hours := billing.HoursFor(entries, billing.ByProject(p.ID))
	spent := billing.ExpenseTotalFor(expenses, billing.ExpenseByProject(p.ID))
	used := billing.BudgetUsed(p, hours, spent)

	return ProjectView{
		Project:           p,
		HoursLogged:       hours,
		BudgetUsed:        used,
		BudgetState:       billing.BudgetState(used, p.BudgetAmount),
		MilestoneProgress: billing.MilestoneProgress(p.Milestones),
	}
}
