package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nebenscan/internal/service"
)

// BillHandler handles bill upload and retrieval endpoints.
type BillHandler struct {
	billService service.BillService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billService service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// Upload handles POST /api/v1/bills
// @Summary Upload a utility bill
// @Description Upload a Betriebskostenabrechnung (PDF, JPG, PNG, max 10MB); queues it for extraction
// @Tags bills
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Bill document (PDF, JPG, or PNG)"
// @Param contact_email formData string false "Email to notify when the report is ready"
// @Success 201 {object} APIResponse "Bill uploaded and queued"
// @Failure 400 {object} APIResponse "Missing file or unsupported type"
// @Failure 413 {object} APIResponse "File too large"
// @Router /bills [post]
func (h *BillHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	bill, err := h.billService.Upload(c.Request.Context(), service.BillUploadInput{
		File:         file,
		Header:       header,
		ContactEmail: c.PostForm("contact_email"),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, bill)
}

// List handles GET /api/v1/bills
// @Summary List bills
// @Description List uploaded bills with pagination
// @Tags bills
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} APIResponse "List of bills"
// @Router /bills [get]
func (h *BillHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	bills, total, err := h.billService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, bills, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/bills/:id
// @Summary Get bill by ID
// @Description Get bill details and a presigned download URL for the original document
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID (UUID)"
// @Success 200 {object} APIResponse "Bill with download URL"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Bill not found"
// @Router /bills/{id} [get]
func (h *BillHandler) GetByID(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill ID")
		return
	}

	bill, err := h.billService.GetByID(c.Request.Context(), billID)
	if err != nil {
		HandleError(c, err)
		return
	}

	downloadURL, err := h.billService.GetDownloadURL(c.Request.Context(), billID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"bill":         bill,
		"download_url": downloadURL,
	})
}
