package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edurank/teacher-directory-api/internal/service"
	appErrors "github.com/edurank/teacher-directory-api/pkg/errors"
	"github.com/edurank/teacher-directory-api/pkg/response"
)

// ReviewHandler serves individual reviews and their vote transitions.
type ReviewHandler struct {
	directory *service.DirectoryService
}

// NewReviewHandler constructs a new ReviewHandler.
func NewReviewHandler(directory *service.DirectoryService) *ReviewHandler {
	return &ReviewHandler{directory: directory}
}

// Get godoc
// @Summary Get review detail
// @Tags Reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} response.Envelope
// @Router /reviews/{id} [get]
func (h *ReviewHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "review id must be an integer"))
		return
	}
	review, err := h.directory.GetReview(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, review, nil)
}

// Vote godoc
// @Summary Apply a vote transition
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Param payload body service.VoteRequest true "Vote payload"
// @Success 200 {object} response.Envelope
// @Router /reviews/{id}/votes [post]
func (h *ReviewHandler) Vote(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "review id must be an integer"))
		return
	}
	var req service.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid vote payload"))
		return
	}
	result, err := h.directory.Vote(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
