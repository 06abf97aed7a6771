package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nebenscan/internal/letter"
	"nebenscan/internal/service"
)

// ReportHandler handles preview, report, letter, and export endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Preview handles GET /api/v1/bills/:id/preview
// @Summary Free report preview
// @Description Aggregate findings (error counts, refund estimate) without per-item details; no payment required
// @Tags reports
// @Produce json
// @Param id path string true "Bill ID (UUID)"
// @Success 200 {object} APIResponse "Preview"
// @Failure 400 {object} APIResponse "Bill not analyzed"
// @Failure 404 {object} APIResponse "Bill not found"
// @Router /bills/{id}/preview [get]
func (h *ReportHandler) Preview(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill ID")
		return
	}

	preview, err := h.reportService.Preview(c.Request.Context(), billID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, preview)
}

// Report handles GET /api/v1/bills/:id/report
// @Summary Full report
// @Description Complete analysis with every line item and verified bill data; requires payment
// @Tags reports
// @Produce json
// @Param id path string true "Bill ID (UUID)"
// @Success 200 {object} APIResponse "Full report"
// @Failure 402 {object} APIResponse "Payment required"
// @Failure 404 {object} APIResponse "Bill not found"
// @Router /bills/{id}/report [get]
func (h *ReportHandler) Report(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill ID")
		return
	}

	report, err := h.reportService.FullReport(c.Request.Context(), billID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// Letter handles GET /api/v1/bills/:id/letter
// @Summary Objection letter
// @Description Templated objection letter as plain text; lang=de (default) or en; requires payment
// @Tags reports
// @Produce plain
// @Param id path string true "Bill ID (UUID)"
// @Param lang query string false "Letter language (de or en)" default(de)
// @Success 200 {string} string "Letter text"
// @Failure 400 {object} APIResponse "Unsupported language"
// @Failure 402 {object} APIResponse "Payment required"
// @Router /bills/{id}/letter [get]
func (h *ReportHandler) Letter(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill ID")
		return
	}

	lang := letter.Language(c.DefaultQuery("lang", string(letter.LanguageGerman)))
	if lang != letter.LanguageGerman && lang != letter.LanguageEnglish {
		RespondError(c, http.StatusBadRequest, "INVALID_LANGUAGE", "lang must be de or en")
		return
	}

	text, err := h.reportService.Letter(c.Request.Context(), billID, lang)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

// Export handles GET /api/v1/bills/:id/export
// @Summary Export line items
// @Description Export the analyzed line items; format=csv (default) or xlsx; requires payment
// @Tags reports
// @Produce octet-stream
// @Param id path string true "Bill ID (UUID)"
// @Param format query string false "Export format (csv or xlsx)" default(csv)
// @Success 200 {file} file "Export file"
// @Failure 400 {object} APIResponse "Unsupported format"
// @Failure 402 {object} APIResponse "Payment required"
// @Router /bills/{id}/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill ID")
		return
	}

	format := c.DefaultQuery("format", "csv")

	// Buffer the export so failures can still produce a JSON error response.
	var buf bytes.Buffer
	var filename, contentType string

	switch format {
	case "csv":
		contentType = "text/csv; charset=utf-8"
		filename, err = h.reportService.ExportCSV(c.Request.Context(), billID, &buf)
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename, err = h.reportService.ExportXLSX(c.Request.Context(), billID, &buf)
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
