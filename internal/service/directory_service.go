package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edurank/teacher-directory-api/internal/directory"
	"github.com/edurank/teacher-directory-api/internal/models"
	"github.com/edurank/teacher-directory-api/internal/paging"
	"github.com/edurank/teacher-directory-api/internal/search"
	appErrors "github.com/edurank/teacher-directory-api/pkg/errors"
	"github.com/edurank/teacher-directory-api/pkg/jobs"
)

type directoryStore interface {
	AddInstructor(ctx context.Context, input directory.AddInstructorInput) (models.Instructor, error)
	InstructorByID(id int) (models.Instructor, error)
	ReviewByID(reviewID int) (models.ReviewDetail, error)
	AddReview(ctx context.Context, instructorID int, userID string, rating int, comment string) (int, error)
	Vote(ctx context.Context, reviewID int, userID string, intent models.VoteIntent) (models.VoteState, error)
	Instructors(page, pageSize int) ([]models.Instructor, int)
	Reviews(instructorID, page, pageSize int) ([]models.Review, int, error)
	Top(limit int) []models.Instructor
	All() []models.Instructor
}

type ranker interface {
	Rank(query string, corpus []models.Instructor) []search.Match
}

// CreateInstructorRequest is the payload for adding an instructor.
type CreateInstructorRequest struct {
	Surname    string   `json:"surname" validate:"required"`
	Name       string   `json:"name" validate:"required"`
	Middlename string   `json:"middlename" validate:"required"`
	Institute  string   `json:"institute"`
	Department string   `json:"department"`
	Title      string   `json:"title"`
	Subjects   []string `json:"subjects" validate:"omitempty,dive,required"`
}

// CreateReviewRequest is the payload for submitting a review. Rating
// bounds are enforced here; the store below stays permissive.
type CreateReviewRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// VoteRequest is the payload for a like/dislike/clear transition.
type VoteRequest struct {
	UserID string            `json:"user_id" validate:"required"`
	Intent models.VoteIntent `json:"intent" validate:"required,oneof=like dislike clear"`
}

// VoteResult reports the transition outcome. Changed is false when the
// requested vote matched the already-active one; the data layer treats
// that as a no-op and callers decide how to surface it.
type VoteResult struct {
	ReviewID int                 `json:"review_id"`
	Previous models.VoteState    `json:"previous_vote,omitempty"`
	Changed  bool                `json:"changed"`
	Review   models.ReviewDetail `json:"review"`
}

// SearchResult is one ranked search hit.
type SearchResult struct {
	Instructor models.Instructor `json:"instructor"`
	Score      float64           `json:"score"`
}

// DirectoryOptions carries listing defaults.
type DirectoryOptions struct {
	InstructorsPage int
	ReviewsPage     int
	TopLimit        int
}

// DirectoryService orchestrates the instructor corpus, the ranking engine
// and the search-request log.
type DirectoryService struct {
	store     directoryStore
	engine    ranker
	queryJobs *jobs.Queue
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	opts      DirectoryOptions
}

// NewDirectoryService constructs a DirectoryService. queryJobs and metrics
// may be nil when the query log or instrumentation is disabled.
func NewDirectoryService(store directoryStore, engine ranker, queryJobs *jobs.Queue, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, opts DirectoryOptions) *DirectoryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.InstructorsPage <= 0 {
		opts.InstructorsPage = 6
	}
	if opts.ReviewsPage <= 0 {
		opts.ReviewsPage = 5
	}
	if opts.TopLimit <= 0 {
		opts.TopLimit = 5
	}
	return &DirectoryService{
		store:     store,
		engine:    engine,
		queryJobs: queryJobs,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		opts:      opts,
	}
}

// AddInstructor registers a new instructor record.
func (s *DirectoryService) AddInstructor(ctx context.Context, req CreateInstructorRequest) (models.Instructor, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Instructor{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid instructor payload")
	}
	instructor, err := s.store.AddInstructor(ctx, directory.AddInstructorInput{
		Surname:    req.Surname,
		Name:       req.Name,
		Middlename: req.Middlename,
		Institute:  req.Institute,
		Department: req.Department,
		Title:      req.Title,
		Subjects:   req.Subjects,
	})
	if err != nil {
		return models.Instructor{}, s.mapStoreError(err, "failed to add instructor")
	}
	s.logger.Info("instructor added", zap.Int("id", instructor.ID), zap.String("surname", instructor.Surname))
	return instructor, nil
}

// Get returns an instructor by id.
func (s *DirectoryService) Get(id int) (models.Instructor, error) {
	instructor, err := s.store.InstructorByID(id)
	if err != nil {
		return models.Instructor{}, s.mapStoreError(err, "failed to load instructor")
	}
	return instructor, nil
}

// List returns one page of the corpus in insertion order.
func (s *DirectoryService) List(page, pageSize int) ([]models.Instructor, *models.Pagination, error) {
	page, pageSize = s.normalizePage(page, pageSize, s.opts.InstructorsPage)
	instructors, total := s.store.Instructors(page, pageSize)
	return instructors, s.pagination(page, pageSize, total), nil
}

// Top returns the highest-rated instructors with at least one review.
func (s *DirectoryService) Top(limit int) []models.Instructor {
	if limit <= 0 {
		limit = s.opts.TopLimit
	}
	return s.store.Top(limit)
}

// Reviews returns one page of an instructor's reviews in insertion order.
func (s *DirectoryService) Reviews(instructorID, page, pageSize int) ([]models.Review, *models.Pagination, error) {
	page, pageSize = s.normalizePage(page, pageSize, s.opts.ReviewsPage)
	reviews, total, err := s.store.Reviews(instructorID, page, pageSize)
	if err != nil {
		return nil, nil, s.mapStoreError(err, "failed to list reviews")
	}
	return reviews, s.pagination(page, pageSize, total), nil
}

// AddReview validates and appends a review, returning the stored copy.
func (s *DirectoryService) AddReview(ctx context.Context, instructorID int, req CreateReviewRequest) (models.ReviewDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.ReviewDetail{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}
	reviewID, err := s.store.AddReview(ctx, instructorID, req.UserID, req.Rating, req.Comment)
	if err != nil {
		return models.ReviewDetail{}, s.mapStoreError(err, "failed to add review")
	}
	s.metrics.RecordReview()
	s.logger.Info("review added", zap.Int("instructor_id", instructorID), zap.Int("review_id", reviewID))

	detail, err := s.store.ReviewByID(reviewID)
	if err != nil {
		return models.ReviewDetail{}, s.mapStoreError(err, "failed to load review")
	}
	return detail, nil
}

// GetReview returns a detached review copy with its owning instructor id.
func (s *DirectoryService) GetReview(reviewID int) (models.ReviewDetail, error) {
	detail, err := s.store.ReviewByID(reviewID)
	if err != nil {
		return models.ReviewDetail{}, s.mapStoreError(err, "failed to load review")
	}
	return detail, nil
}

// Vote applies a vote transition and reports whether anything changed.
func (s *DirectoryService) Vote(ctx context.Context, reviewID int, req VoteRequest) (VoteResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return VoteResult{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid vote payload")
	}
	previous, err := s.store.Vote(ctx, reviewID, req.UserID, req.Intent)
	if err != nil {
		return VoteResult{}, s.mapStoreError(err, "failed to apply vote")
	}
	s.metrics.RecordVote(string(req.Intent))

	detail, err := s.store.ReviewByID(reviewID)
	if err != nil {
		return VoteResult{}, s.mapStoreError(err, "failed to load review")
	}

	changed := string(previous) != string(req.Intent)
	if req.Intent == models.IntentClear {
		changed = previous != ""
	}
	return VoteResult{
		ReviewID: reviewID,
		Previous: previous,
		Changed:  changed,
		Review:   detail,
	}, nil
}

// Search ranks the corpus against the query and returns one page of hits.
// The request is journaled asynchronously so logging never blocks the
// search path.
func (s *DirectoryService) Search(userID, query string, page, pageSize int) ([]SearchResult, *models.Pagination, error) {
	page, pageSize = s.normalizePage(page, pageSize, s.opts.InstructorsPage)

	matches := s.engine.Rank(query, s.store.All())
	s.metrics.RecordSearch()
	s.recordQuery(userID, query)

	total := len(matches)
	pageMatches := paging.Page(matches, page, pageSize)
	results := make([]SearchResult, len(pageMatches))
	for i, m := range pageMatches {
		results[i] = SearchResult{Instructor: m.Instructor, Score: m.Score}
	}
	return results, s.pagination(page, pageSize, total), nil
}

func (s *DirectoryService) recordQuery(userID, query string) {
	if s.queryJobs == nil {
		return
	}
	err := s.queryJobs.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    "query_log",
		Payload: QueryLogPayload{UserID: userID, Query: query},
	})
	if err != nil {
		s.logger.Warn("query log enqueue failed", zap.Error(err))
	}
}

// QueryLogPayload is the job payload for journaling one search request.
type QueryLogPayload struct {
	UserID string
	Query  string
}

func (s *DirectoryService) normalizePage(page, pageSize, defaultSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = defaultSize
	}
	return page, pageSize
}

func (s *DirectoryService) pagination(page, pageSize, total int) *models.Pagination {
	return &models.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		PageCount:  paging.PageCount(total, pageSize),
	}
}

func (s *DirectoryService) mapStoreError(err error, message string) error {
	switch {
	case errors.Is(err, directory.ErrInstructorNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
	case errors.Is(err, directory.ErrReviewNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, "review not found")
	case errors.Is(err, directory.ErrPersist):
		return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, appErrors.ErrPersistence.Message)
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
	}
}

// NewQueryLogQueue builds the background queue that journals search
// requests through the provided recorder.
func NewQueryLogQueue(recorder interface {
	Record(ctx context.Context, userID, query string) (int, error)
}, workers, buffer int, logger *zap.Logger) *jobs.Queue {
	return jobs.NewQueue("query-log", func(ctx context.Context, job jobs.Job) error {
		payload, ok := job.Payload.(QueryLogPayload)
		if !ok {
			return nil
		}
		_, err := recorder.Record(ctx, payload.UserID, payload.Query)
		return err
	}, jobs.QueueConfig{
		Workers:    workers,
		BufferSize: buffer,
		RetryDelay: time.Second,
		Logger:     logger,
	})
}
