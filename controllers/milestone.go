package controllers

import (
	"errors"
	"net/http"
	"time"

	"freelanceflow-backend/billing"
	"freelanceflow-backend/config"
	"freelanceflow-backend/models"
	"freelanceflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateMilestoneInput defines the expected JSON structure
type CreateMilestoneInput struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Amount      float64    `json:"amount" binding:"min=0"`
}

// UpdateMilestoneInput defines the expected JSON structure
type UpdateMilestoneInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Amount      *float64   `json:"amount" binding:"omitempty,min=0"`
}

type MilestoneStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress completed"`
}

// CreateMilestone adds a milestone to a project
func CreateMilestone(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input CreateMilestoneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Milestones are owned by exactly one project; validate it first
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

	milestone := models.Milestone{
		ProjectID:   project.ID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Amount:      input.Amount,
		Status:      models.MilestoneStatusPending,
	}

	if err := config.DB.Create(&milestone).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create milestone")
		return
	}

	c.JSON(http.StatusCreated, milestone)
}

// UpdateMilestone edits milestone fields (not status; see UpdateMilestoneStatus)
func UpdateMilestone(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	milestoneID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateMilestoneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	milestone, ok := findMilestone(c, userID, milestoneID)
	if !ok {
		return
	}

	if input.Title != nil {
		milestone.Title = *input.Title
	}
	if input.Description != nil {
		milestone.Description = *input.Description
	}
	if input.DueDate != nil {
		milestone.DueDate = input.DueDate
	}
	if input.Amount != nil {
		milestone.Amount = *input.Amount
	}

	if err := config.DB.Save(&milestone).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update milestone")
		return
	}

	c.JSON(http.StatusOK, milestone)
}

// UpdateMilestoneStatus applies a state-machine transition:
// pending -> in_progress -> completed, with in_progress -> pending as reopen.
func UpdateMilestoneStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	milestoneID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input MilestoneStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	milestone, ok := findMilestone(c, userID, milestoneID)
	if !ok {
		return
	}

	if err := billing.CheckMilestoneTransition(milestone.Status, input.Status); err != nil {
		utils.RespondWithError(c, http.StatusConflict,
			"Cannot move milestone from "+milestone.Status+" to "+input.Status)
		return
	}

	milestone.Status = input.Status
	if err := config.DB.Save(&milestone).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update milestone status")
		return
	}

	c.JSON(http.StatusOK, milestone)
}

// DeleteMilestone removes a milestone from its project
func DeleteMilestone(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	milestoneID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	milestone, ok := findMilestone(c, userID, milestoneID)
	if !ok {
		return
	}

	if err := config.DB.Delete(&milestone).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete milestone")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Milestone deleted successfully"})
}

// findMilestone loads a milestone and checks its project belongs to the user.
func findMilestone(c *gin.Context, userID, milestoneID uuid.UUID) (models.Milestone, bool) {
	var milestone models.Milestone
	err := config.DB.
		Joins("JOIN projects ON projects.id = milestones.project_id").
		Where("milestones.id = ? AND projects.user_id = ? AND projects.deleted_at IS NULL",
			milestoneID, userID).
		First(&milestone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Milestone not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return models.Milestone{}, false
	}
	return milestone, true
}
