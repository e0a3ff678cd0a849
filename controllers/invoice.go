// controllers/invoice.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"freelanceflow-backend/billing"
	"freelanceflow-backend/config"
	"freelanceflow-backend/models"
	"freelanceflow-backend/services"
	"freelanceflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceItemInput is a free-form (manual) line item
type InvoiceItemInput struct {
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"min=0"`
	Rate        float64 `json:"rate" binding:"min=0"`
}

// CreateInvoiceInput defines the expected JSON structure for creating an
// invoice. Selected time entries become one line item each; manual items
// are appended as given.
type CreateInvoiceInput struct {
	ClientID     uuid.UUID          `json:"clientId" binding:"required"`
	TimeEntryIDs []uuid.UUID        `json:"timeEntryIds"`
	Items        []InvoiceItemInput `json:"items"`
	IssueDate    *time.Time         `json:"issueDate"`
	DueDate      *time.Time         `json:"dueDate"`
	Notes        string             `json:"notes"`
	Template     string             `json:"template"`
}

// UpdateInvoiceInput defines the expected JSON structure for updating a
// draft invoice. Replacing items recomputes the total.
type UpdateInvoiceInput struct {
	IssueDate *time.Time          `json:"issueDate"`
	DueDate   *time.Time          `json:"dueDate"`
	Items     *[]InvoiceItemInput `json:"items"`
	Notes     *string             `json:"notes"`
	Template  *string             `json:"template"`
}

// CreateInvoice assembles and stores a new draft invoice
func CreateInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if len(input.TimeEntryIDs) == 0 && len(input.Items) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invoice needs at least one time entry or item")
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

	items, projectIDs, ok := assembleEntryItems(c, userID, input.TimeEntryIDs)
	if !ok {
		return
	}

	for _, it := range input.Items {
		items = append(items, billing.ManualItem(it.Description, it.Quantity, it.Rate))
	}

	issueDate := time.Now()
	if input.IssueDate != nil {
		issueDate = *input.IssueDate
	}
	dueDate := issueDate.AddDate(0, 0, invoiceDueDays(userID))
	if input.DueDate != nil {
		dueDate = *input.DueDate
	}

	template := input.Template
	if template == "" {
		template = "standard"
	}

	invoice := models.Invoice{
		ID:            uuid.New(),
		UserID:        userID,
		InvoiceNumber: billing.NewInvoiceNumber(time.Now()),
		ClientID:      input.ClientID,
		ProjectIDs:    projectIDs,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Status:        models.InvoiceStatusDraft,
		Amount:        billing.InvoiceTotal(items),
		Notes:         input.Notes,
		Template:      template,
		Items:         items,
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices retrieves invoices. Filters: ?clientId=, ?status=, ?from=,
// ?to= (issue date range).
func GetInvoices(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Items").Where("user_id = ?", userID)

	if clientID := c.Query("clientId"); clientID != "" {
		id, err := uuid.Parse(clientID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid clientId filter")
			return
		}
		query = query.Where("client_id = ?", id)
	}
	if status := c.Query("status"); status != "" {
		if !utils.ValidStatus("invoice", status) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status filter")
			return
		}
		query = query.Where("status = ?", status)
	}
	if from, ok := queryTime(c, "from"); ok {
		query = query.Where("issue_date >= ?", from)
	} else if c.Query("from") != "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid from filter")
		return
	}
	if to, ok := queryTime(c, "to"); ok {
		query = query.Where("issue_date <= ?", utils.EndOfDay(to))
	} else if c.Query("to") != "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid to filter")
		return
	}

	var invoices []models.Invoice
	if err := query.Order("issue_date DESC").Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a specific invoice by ID
func GetInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	invoiceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	invoice, ok := findInvoice(c, userID, invoiceID, true)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoice edits a draft invoice. Sent and paid invoices are
// immutable; status moves only through the send/pay endpoints.
func UpdateInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	invoiceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var invoice models.Invoice
	if err := tx.Preload("Items").
		Where("user_id = ? AND id = ?", userID, invoiceID).
		First(&invoice).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !billing.InvoiceEditable(invoice.Status) {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, billing.ErrInvoiceLocked.Error())
		return
	}

	if input.IssueDate != nil {
		invoice.IssueDate = *input.IssueDate
	}
	if input.DueDate != nil {
		invoice.DueDate = *input.DueDate
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}
	if input.Template != nil {
		invoice.Template = *input.Template
	}

	// Replacing items makes the new list the source of truth; the stored
	// amount is recomputed from it, never patched independently.
	if input.Items != nil {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing items")
			return
		}

		newItems := make([]models.InvoiceItem, 0, len(*input.Items))
		for _, it := range *input.Items {
			item := billing.ManualItem(it.Description, it.Quantity, it.Rate)
			item.InvoiceID = invoice.ID
			newItems = append(newItems, item)
		}
		invoice.Items = newItems
		invoice.Amount = billing.InvoiceTotal(newItems)
	}

	if err := tx.Save(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, invoice)
}

// SendInvoice moves a draft invoice to sent
func SendInvoice(c *gin.Context) {
	transitionInvoice(c, models.InvoiceStatusSent, "Invoice sent")
}

// PayInvoice marks a sent or overdue invoice as paid
func PayInvoice(c *gin.Context) {
	transitionInvoice(c, models.InvoiceStatusPaid, "Invoice marked as paid")
}

func transitionInvoice(c *gin.Context, target, message string) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	invoiceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	invoice, ok := findInvoice(c, userID, invoiceID, false)
	if !ok {
		return
	}

	if err := billing.CheckInvoiceTransition(invoice.Status, target); err != nil {
		utils.RespondWithError(c, http.StatusConflict,
			"Cannot move invoice from "+invoice.Status+" to "+target)
		return
	}

	invoice.Status = target
	if err := config.DB.Save(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "invoice": invoice})
}

// DownloadInvoicePDF renders the invoice as a PDF document
func DownloadInvoicePDF(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	invoiceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	invoice, ok := findInvoice(c, userID, invoiceID, true)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load account")
		return
	}

	var client models.Client
	if err := config.DB.Where("user_id = ? AND id = ?", userID, invoice.ClientID).
		First(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load client")
		return
	}

	pdfBytes, err := services.GenerateInvoicePDF(invoice, user, client)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+invoice.InvoiceNumber+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// DeleteInvoice deletes an invoice and its items
func DeleteInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	invoiceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var invoice models.Invoice
	if err := tx.Where("user_id = ? AND id = ?", userID, invoiceID).
		First(&invoice).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice items")
		return
	}

	if err := tx.Delete(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}

// assembleEntryItems converts the selected time entries into line items,
// one item per entry, and collects the distinct project ids involved.
func assembleEntryItems(c *gin.Context, userID uuid.UUID, entryIDs []uuid.UUID) ([]models.InvoiceItem, models.StringList, bool) {
	if len(entryIDs) == 0 {
		return nil, models.StringList{}, true
	}

	var entries []models.TimeEntry
	if err := config.DB.Where("user_id = ? AND id IN ?", userID, entryIDs).
		Find(&entries).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve time entries")
		return nil, nil, false
	}
	if len(entries) != len(entryIDs) {
		utils.RespondWithError(c, http.StatusBadRequest, "One or more time entries not found")
		return nil, nil, false
	}

	// Resolve project names for the item descriptions
	projectNames := make(map[uuid.UUID]string)
	var projects []models.Project
	if err := config.DB.Where("user_id = ?", userID).Find(&projects).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve projects")
		return nil, nil, false
	}
	for _, p := range projects {
		projectNames[p.ID] = p.Name
	}

	items := make([]models.InvoiceItem, 0, len(entries))
	projectIDs := models.StringList{}
	seen := make(map[uuid.UUID]bool)
	for _, entry := range entries {
		items = append(items, billing.ItemFromTimeEntry(entry, projectNames[entry.ProjectID]))
		if !seen[entry.ProjectID] {
			seen[entry.ProjectID] = true
			projectIDs = append(projectIDs, entry.ProjectID.String())
		}
	}

	return items, projectIDs, true
}

func findInvoice(c *gin.Context, userID, invoiceID uuid.UUID, withItems bool) (models.Invoice, bool) {
	query := config.DB.Where("user_id = ? AND id = ?", userID, invoiceID)
	if withItems {
		query = query.Preload("Items")
	}

	var invoice models.Invoice
	if err := query.First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return models.Invoice{}, false
	}
	return invoice, true
}

// invoiceDueDays reads the account's default payment window, falling back
// to 15 days.
func invoiceDueDays(userID uuid.UUID) int {
	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 15
	}
	if v, ok := user.InvoiceSettings["dueDays"].(float64); ok && v > 0 {
		return int(v)
	}
	return 15
}
