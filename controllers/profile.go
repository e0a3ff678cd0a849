package controllers

import (
	"net/http"

	"freelanceflow-backend/config"
	"freelanceflow-backend/models"
	"freelanceflow-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	BusinessName    *string `json:"businessName"`
	BusinessAddress *string `json:"businessAddress"`
}

func GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":            user.Name,
		"email":           user.Email,
		"phone":           user.Phone,
		"businessName":    user.BusinessName,
		"businessAddress": user.BusinessAddress,
		"invoiceSettings": user.InvoiceSettings,
	})
}

func UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.BusinessName != nil {
		user.BusinessName = *input.BusinessName
	}
	if input.BusinessAddress != nil {
		user.BusinessAddress = *input.BusinessAddress
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// UpdateInvoiceSettings merges the submitted keys into the stored settings
// jsonb so partial updates keep the rest intact.
func UpdateInvoiceSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		InvoiceSettings models.JSONB `json:"invoiceSettings" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	settings := user.InvoiceSettings
	if settings == nil {
		settings = models.JSONB{}
	}
	for k, v := range input.InvoiceSettings {
		settings[k] = v
	}

	if err := config.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("invoice_settings", settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoiceSettings": settings})
}
