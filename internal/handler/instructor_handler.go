package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edurank/teacher-directory-api/internal/service"
	appErrors "github.com/edurank/teacher-directory-api/pkg/errors"
	"github.com/edurank/teacher-directory-api/pkg/response"
)

// InstructorHandler wires the directory service to HTTP routes.
type InstructorHandler struct {
	directory *service.DirectoryService
}

// NewInstructorHandler constructs a new InstructorHandler.
func NewInstructorHandler(directory *service.DirectoryService) *InstructorHandler {
	return &InstructorHandler{directory: directory}
}

// List godoc
// @Summary List instructors
// @Tags Instructors
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /instructors [get]
func (h *InstructorHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	instructors, pagination, err := h.directory.List(page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructors, pagination)
}

// Get godoc
// @Summary Get instructor detail
// @Tags Instructors
// @Produce json
// @Param id path int true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /instructors/{id} [get]
func (h *InstructorHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "instructor id must be an integer"))
		return
	}
	instructor, err := h.directory.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructor, nil)
}

// Create godoc
// @Summary Add instructor
// @Tags Instructors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateInstructorRequest true "Instructor payload"
// @Success 201 {object} response.Envelope
// @Router /instructors [post]
func (h *InstructorHandler) Create(c *gin.Context) {
	var req service.CreateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid instructor payload"))
		return
	}
	instructor, err := h.directory.AddInstructor(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, instructor)
}

// Top godoc
// @Summary Top rated instructors
// @Tags Instructors
// @Produce json
// @Param limit query int false "Leaderboard size"
// @Success 200 {object} response.Envelope
// @Router /instructors/top [get]
func (h *InstructorHandler) Top(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	response.JSON(c, http.StatusOK, h.directory.Top(limit), nil)
}

// ListReviews godoc
// @Summary List instructor reviews
// @Tags Reviews
// @Produce json
// @Param id path int true "Instructor ID"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /instructors/{id}/reviews [get]
func (h *InstructorHandler) ListReviews(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "instructor id must be an integer"))
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	reviews, pagination, err := h.directory.Reviews(id, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reviews, pagination)
}

// CreateReview godoc
// @Summary Submit a review
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path int true "Instructor ID"
// @Param payload body service.CreateReviewRequest true "Review payload"
// @Success 201 {object} response.Envelope
// @Router /instructors/{id}/reviews [post]
func (h *InstructorHandler) CreateReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "instructor id must be an integer"))
		return
	}
	var req service.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid review payload"))
		return
	}
	review, err := h.directory.AddReview(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, review)
}

// Search godoc
// @Summary Search instructors
// @Tags Search
// @Produce json
// @Param q query string true "Query text"
// @Param user_id query string false "Requesting user id for the query journal"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /search [get]
func (h *InstructorHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	userID := c.DefaultQuery("user_id", "anonymous")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	results, pagination, err := h.directory.Search(userID, query, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, pagination)
}
