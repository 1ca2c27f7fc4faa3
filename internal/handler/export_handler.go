package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edurank/teacher-directory-api/internal/service"
	"github.com/edurank/teacher-directory-api/pkg/response"
)

// ExportHandler serves downloadable reports.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs a new ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// TopInstructors godoc
// @Summary Download the top-instructors report
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "Report format (csv or pdf)"
// @Param limit query int false "Leaderboard size"
// @Success 200 {file} file
// @Router /exports/top-instructors [get]
func (h *ExportHandler) TopInstructors(c *gin.Context) {
	format := c.DefaultQuery("format", service.FormatCSV)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	result, err := h.exports.TopInstructors(format, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
