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

// CreateTimeEntryInput defines the expected JSON structure for logging time.
// Duration is never accepted as input; it is derived from the timestamps.
type CreateTimeEntryInput struct {
	ClientID    uuid.UUID `json:"clientId" binding:"required"`
	ProjectID   uuid.UUID `json:"projectId" binding:"required"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
	Description string    `json:"description"`
	HourlyRate  *float64  `json:"hourlyRate" binding:"omitempty,min=0"`
	Billable    *bool     `json:"billable"`
}

// UpdateTimeEntryInput defines the expected JSON structure for editing an entry
type UpdateTimeEntryInput struct {
	ProjectID   *uuid.UUID `json:"projectId"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Description *string    `json:"description"`
	HourlyRate  *float64   `json:"hourlyRate" binding:"omitempty,min=0"`
	Billable    *bool      `json:"billable"`
}

// CreateTimeEntry logs a new time entry. The hourly rate defaults to the
// project's current rate and is stored as a snapshot on the entry.
func CreateTimeEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateTimeEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Reject the range before computing anything from it
	duration, err := billing.EntryDuration(input.StartTime, input.EndTime)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "End time must be after start time")
		return
	}

	var project models.Project
	if err := config.DB.Where("user_id = ? AND id = ?", userID, input.ProjectID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Project not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	rate := project.HourlyRate
	if input.HourlyRate != nil {
		rate = *input.HourlyRate
	}

	billable := true
	if input.Billable != nil {
		billable = *input.Billable
	}

	entry := models.TimeEntry{
		ID:          uuid.New(),
		UserID:      userID,
		ClientID:    input.ClientID,
		ProjectID:   input.ProjectID,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Duration:    duration,
		Description: input.Description,
		HourlyRate:  rate,
		Billable:    billable,
	}

	if err := config.DB.Create(&entry).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create time entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetTimeEntries retrieves time entries, newest first. Filters:
// ?clientId=, ?projectId=, ?from=, ?to= (RFC 3339 or yyyy-mm-dd).
func GetTimeEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Where("user_id = ?", userID)

	if clientID := c.Query("clientId"); clientID != "" {
		id, err := uuid.Parse(clientID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid clientId filter")
			return
		}
		query = query.Where("client_id = ?", id)
	}
	if projectID := c.Query("projectId"); projectID != "" {
		id, err := uuid.Parse(projectID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid projectId filter")
			return
		}
		query = query.Where("project_id = ?", id)
	}
	if from, ok := queryTime(c, "from"); ok {
		query = query.Where("start_time >= ?", from)
	} else if c.Query("from") != "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid from filter")
		return
	}
	if to, ok := queryTime(c, "to"); ok {
		query = query.Where("start_time <= ?", utils.EndOfDay(to))
	} else if c.Query("to") != "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid to filter")
		return
	}

	var entries []models.TimeEntry
	if err := query.Order("start_time DESC").Find(&entries).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve time entries")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetTimeEntry retrieves a specific time entry by ID
func GetTimeEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var entry models.TimeEntry
	if err := config.DB.Where("user_id = ? AND id = ?", userID, entryID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Time entry not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

// UpdateTimeEntry edits an entry, recomputing duration when either
// timestamp changes.
func UpdateTimeEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateTimeEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var entry models.TimeEntry
	if err := config.DB.Where("user_id = ? AND id = ?", userID, entryID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Time entry not found")
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
		entry.ProjectID = *input.ProjectID
		entry.ClientID = project.ClientID
	}

	start := entry.StartTime
	end := entry.EndTime
	if input.StartTime != nil {
		start = *input.StartTime
	}
	if input.EndTime != nil {
		end = *input.EndTime
	}
	duration, err := billing.EntryDuration(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "End time must be after start time")
		return
	}
	entry.StartTime = start
	entry.EndTime = end
	entry.Duration = duration

	if input.Description != nil {
		entry.Description = *input.Description
	}
	if input.HourlyRate != nil {
		entry.HourlyRate = *input.HourlyRate
	}
	if input.Billable != nil {
		entry.Billable = *input.Billable
	}

	if err := config.DB.Save(&entry).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update time entry")
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteTimeEntry soft deletes a time entry
func DeleteTimeEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, entryID).
		Delete(&models.TimeEntry{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete time entry")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Time entry not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Time entry deleted successfully"})
}

// queryTime parses a query date, accepting RFC 3339 or plain dates.
func queryTime(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
