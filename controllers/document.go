package controllers

import (
	"errors"
	"net/http"
	"time"

	"freelanceflow-backend/config"
	"freelanceflow-backend/models"
	"freelanceflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateDocumentInput defines the expected JSON structure for registering
// a document. The first version is created alongside it.
type CreateDocumentInput struct {
	Name        string   `json:"name" binding:"required"`
	FolderID    string   `json:"folderId"`
	Tags        []string `json:"tags"`
	AccessLevel string   `json:"accessLevel" binding:"omitempty,oneof=private shared public"`
	Encrypted   bool     `json:"encrypted"`
	Size        int64    `json:"size" binding:"min=0"`
	Uploader    string   `json:"uploader"`
	Notes       string   `json:"notes"`
}

type UpdateDocumentInput struct {
	Name        *string   `json:"name"`
	FolderID    *string   `json:"folderId"`
	Tags        *[]string `json:"tags"`
	AccessLevel *string   `json:"accessLevel" binding:"omitempty,oneof=private shared public"`
	Encrypted   *bool     `json:"encrypted"`
}

type AddVersionInput struct {
	Size     int64  `json:"size" binding:"min=0"`
	Uploader string `json:"uploader"`
	Notes    string `json:"notes"`
}

type CreateFolderInput struct {
	Name     string `json:"name" binding:"required"`
	ParentID string `json:"parentId"`
}

type UpdateFolderInput struct {
	Name     *string `json:"name"`
	ParentID *string `json:"parentId"`
}

// CreateDocument registers a document and its initial version
func CreateDocument(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	folderID := input.FolderID
	if folderID == "" {
		folderID = models.RootFolderID
	}
	if !folderExists(userID, folderID) {
		utils.RespondWithError(c, http.StatusBadRequest, "Folder not found")
		return
	}

	accessLevel := input.AccessLevel
	if accessLevel == "" {
		accessLevel = models.AccessLevelPrivate
	}

	document := models.Document{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        input.Name,
		FolderID:    folderID,
		Tags:        input.Tags,
		AccessLevel: accessLevel,
		Encrypted:   input.Encrypted,
	}

	version := models.DocumentVersion{
		ID:         uuid.New(),
		DocumentID: document.ID,
		UploadedAt: time.Now(),
		Size:       input.Size,
		Uploader:   input.Uploader,
		Notes:      input.Notes,
	}
	document.Versions = []models.DocumentVersion{version}
	document.CurrentVersionID = &version.ID

	if err := config.DB.Create(&document).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create document")
		return
	}

	c.JSON(http.StatusCreated, document)
}

// GetDocuments lists documents, optionally scoped to ?folderId= or ?tag=
func GetDocuments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Versions").Where("user_id = ?", userID)
	if folderID := c.Query("folderId"); folderID != "" {
		query = query.Where("folder_id = ?", folderID)
	}

	var documents []models.Document
	if err := query.Order("name").Find(&documents).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve documents")
		return
	}

	// Tag filtering stays in memory; tags live in a jsonb list
	if tag := c.Query("tag"); tag != "" {
		filtered := documents[:0]
		for _, d := range documents {
			for _, t := range d.Tags {
				if t == tag {
					filtered = append(filtered, d)
					break
				}
			}
		}
		documents = filtered
	}

	c.JSON(http.StatusOK, documents)
}

// GetDocument retrieves one document with its version history
func GetDocument(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	documentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var document models.Document
	if err := config.DB.Preload("Versions", func(db *gorm.DB) *gorm.DB {
		return db.Order("document_versions.uploaded_at DESC")
	}).Where("user_id = ? AND id = ?", userID, documentID).
		First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Document not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, document)
}

// UpdateDocument edits document metadata
func UpdateDocument(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	documentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var document models.Document
	if err := config.DB.Where("user_id = ? AND id = ?", userID, documentID).
		First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Document not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		document.Name = *input.Name
	}
	if input.FolderID != nil {
		if !folderExists(userID, *input.FolderID) {
			utils.RespondWithError(c, http.StatusBadRequest, "Folder not found")
			return
		}
		document.FolderID = *input.FolderID
	}
	if input.Tags != nil {
		document.Tags = *input.Tags
	}
	if input.AccessLevel != nil {
		document.AccessLevel = *input.AccessLevel
	}
	if input.Encrypted != nil {
		document.Encrypted = *input.Encrypted
	}

	if err := config.DB.Save(&document).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update document")
		return
	}

	c.JSON(http.StatusOK, document)
}

// AddDocumentVersion appends a version and moves the current pointer to it
func AddDocumentVersion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	documentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input AddVersionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var document models.Document
	if err := config.DB.Where("user_id = ? AND id = ?", userID, documentID).
		First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Document not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	version := models.DocumentVersion{
		ID:         uuid.New(),
		DocumentID: document.ID,
		UploadedAt: time.Now(),
		Size:       input.Size,
		Uploader:   input.Uploader,
		Notes:      input.Notes,
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&version).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add version")
		return
	}

	if err := tx.Model(&document).Update("current_version_id", version.ID).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update current version")
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, version)
}

// DeleteDocument soft deletes a document
func DeleteDocument(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	documentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, documentID).
		Delete(&models.Document{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete document")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Document not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}

// CreateFolder adds a folder under parentId (or the root)
func CreateFolder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateFolderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	parentID := input.ParentID
	if parentID == "" {
		parentID = models.RootFolderID
	}
	if !folderExists(userID, parentID) {
		utils.RespondWithError(c, http.StatusBadRequest, "Parent folder not found")
		return
	}

	folder := models.Folder{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     input.Name,
		ParentID: parentID,
	}

	if err := config.DB.Create(&folder).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create folder")
		return
	}

	c.JSON(http.StatusCreated, folder)
}

// GetFolders lists all folders for the account
func GetFolders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var folders []models.Folder
	if err := config.DB.Where("user_id = ?", userID).Order("name").Find(&folders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve folders")
		return
	}

	c.JSON(http.StatusOK, folders)
}

// UpdateFolder renames or moves a folder
func UpdateFolder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	folderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateFolderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var folder models.Folder
	if err := config.DB.Where("user_id = ? AND id = ?", userID, folderID).
		First(&folder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Folder not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		folder.Name = *input.Name
	}
	if input.ParentID != nil {
		if *input.ParentID == folder.ID.String() {
			utils.RespondWithError(c, http.StatusBadRequest, "Folder cannot be its own parent")
			return
		}
		if !folderExists(userID, *input.ParentID) {
			utils.RespondWithError(c, http.StatusBadRequest, "Parent folder not found")
			return
		}
		folder.ParentID = *input.ParentID
	}

	if err := config.DB.Save(&folder).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update folder")
		return
	}

	c.JSON(http.StatusOK, folder)
}

// DeleteFolder removes a folder. Only empty folders can be deleted.
func DeleteFolder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	folderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var documentCount int64
	config.DB.Model(&models.Document{}).
		Where("user_id = ? AND folder_id = ? AND deleted_at IS NULL", userID, folderID.String()).
		Count(&documentCount)

	var childCount int64
	config.DB.Model(&models.Folder{}).
		Where("user_id = ? AND parent_id = ? AND deleted_at IS NULL", userID, folderID.String()).
		Count(&childCount)

	if documentCount > 0 || childCount > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Folder is not empty")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, folderID).
		Delete(&models.Folder{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete folder")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Folder not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Folder deleted successfully"})
}

// folderExists accepts the root sentinel or any folder owned by the user.
func folderExists(userID uuid.UUID, folderID string) bool {
	if folderID == models.RootFolderID {
		return true
	}
	id, err := uuid.Parse(folderID)
	if err != nil {
		return false
	}
	var count int64
	config.DB.Model(&models.Folder{}).
		Where("user_id = ? AND id = ? AND deleted_at IS NULL", userID, id).
		Count(&count)
	return count > 0
}
