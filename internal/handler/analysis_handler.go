package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nebenscan/internal/domain"
	"nebenscan/internal/service"
)

// AnalysisHandler handles extraction and verification endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Extract handles POST /api/v1/bills/:id/extract
// @Summary Queue a bill for extraction
// @Description (Re)queue a bill for LLM extraction; a no-op when already queued or extracting
// @Tags analysis
// @Produce json
// @Param id path string true "Bill ID (UUID)"
// @Success 200 {object} APIResponse "Bill queued"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Bill not found"
// @Router /bills/{id}/extract [post]
func (h *AnalysisHandler) Extract(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill ID")
		return
	}

	bill, err := h.analysisService.RequeueExtraction(c.Request.Context(), billID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bill)
}

// Verify handles PUT /api/v1/bills/:id/verify
// @Summary Verify extracted data and run analysis
// @Description Confirm or correct the extracted bill-level fields; runs the analysis engine and completes the bill
// @Tags analysis
// @Accept json
// @Produce json
// @Param id path string true "Bill ID (UUID)"
// @Param body body domain.VerifiedBill true "Verified bill fields"
// @Success 200 {object} APIResponse "Bill with analysis result"
// @Failure 400 {object} APIResponse "Invalid ID, body, or bill state"
// @Failure 404 {object} APIResponse "Bill not found"
// @Router /bills/{id}/verify [put]
func (h *AnalysisHandler) Verify(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill ID")
		return
	}

	var verified domain.VerifiedBill
	if err := c.ShouldBindJSON(&verified); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be valid verified bill JSON")
		return
	}

	bill, result, err := h.analysisService.VerifyAndAnalyze(c.Request.Context(), billID, verified)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"bill":   bill,
		"result": result,
	})
}
