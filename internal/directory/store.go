// Package directory holds the instructor corpus: an in-memory, single-writer
// record set persisted as a whole snapshot after every mutation.
package directory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/edurank/teacher-directory-api/internal/models"
	"github.com/edurank/teacher-directory-api/internal/paging"
	"github.com/edurank/teacher-directory-api/internal/snapshot"
)

// Sentinel errors surfaced to the service layer.
var (
	ErrInstructorNotFound = errors.New("directory: instructor not found")
	ErrReviewNotFound     = errors.New("directory: review not found")
	ErrPersist            = errors.New("directory: snapshot write failed")
)

// Options tunes corpus numbering and wiring.
type Options struct {
	BaseInstructorID int
	BaseReviewID     int
	Logger           *zap.Logger
	Now              func() time.Time
}

// Store owns the corpus. All access goes through one RWMutex; every
// mutation clones the corpus, applies the change, persists the snapshot
// and only then swaps the clone in, so a failed write leaves the
// in-memory state untouched.
type Store struct {
	mu     sync.RWMutex
	snap   snapshot.Store
	data   models.Corpus
	logger *zap.Logger
	now    func() time.Time
}

// NewStore loads the last persisted snapshot, initialising an empty corpus
// when the backend holds none yet.
func NewStore(ctx context.Context, snap snapshot.Store, opts Options) (*Store, error) {
	if opts.BaseInstructorID < 1 {
		opts.BaseInstructorID = 1
	}
	if opts.BaseReviewID < 1 {
		opts.BaseReviewID = 1
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Store{snap: snap, logger: opts.Logger, now: opts.Now}

	err := snap.Load(ctx, &s.data)
	switch {
	case errors.Is(err, snapshot.ErrEmpty):
		s.data = models.Corpus{
			NextInstructorID: opts.BaseInstructorID,
			NextReviewID:     opts.BaseReviewID,
		}
	case err != nil:
		return nil, fmt.Errorf("load directory snapshot: %w", err)
	}
	if s.data.NextInstructorID < opts.BaseInstructorID {
		s.data.NextInstructorID = opts.BaseInstructorID
	}
	if s.data.NextReviewID < opts.BaseReviewID {
		s.data.NextReviewID = opts.BaseReviewID
	}

	s.logger.Info("directory loaded",
		zap.Int("instructors", len(s.data.Instructors)),
		zap.Int("next_instructor_id", s.data.NextInstructorID),
		zap.Int("next_review_id", s.data.NextReviewID),
	)
	return s, nil
}

// AddInstructorInput carries the fields of a new instructor record.
type AddInstructorInput struct {
	Surname    string
	Name       string
	Middlename string
	Institute  string
	Department string
	Title      string
	Subjects   []string
}

// AddInstructor assigns the next sequential id, zero-initialises rating and
// reviews, appends the record and persists.
func (s *Store) AddInstructor(ctx context.Context, input AddInstructorInput) (models.Instructor, error) {
	var created models.Instructor
	err := s.mutate(ctx, func(data *models.Corpus) error {
		subjects := make([]string, len(input.Subjects))
		copy(subjects, input.Subjects)

		created = models.Instructor{
			ID:         data.NextInstructorID,
			Surname:    input.Surname,
			Name:       input.Name,
			Middlename: input.Middlename,
			Institute:  input.Institute,
			Department: input.Department,
			Title:      input.Title,
			Subjects:   subjects,
			Rating:     models.Rating{Total: []int{}},
			Reviews:    []models.Review{},
		}
		data.Instructors = append(data.Instructors, created)
		data.NextInstructorID++
		return nil
	})
	if err != nil {
		return models.Instructor{}, err
	}
	return created.Clone(), nil
}

// InstructorByID returns a detached copy of the instructor.
func (s *Store) InstructorByID(id int) (models.Instructor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.data.Instructors {
		if s.data.Instructors[i].ID == id {
			return s.data.Instructors[i].Clone(), nil
		}
	}
	return models.Instructor{}, ErrInstructorNotFound
}

// ReviewByID returns a detached review copy annotated with the owning
// instructor id. Callers must mutate through AddReview or Vote.
func (s *Store) ReviewByID(reviewID int) (models.ReviewDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.data.Instructors {
		for j := range s.data.Instructors[i].Reviews {
			if s.data.Instructors[i].Reviews[j].ReviewID == reviewID {
				return models.ReviewDetail{
					Review:       s.data.Instructors[i].Reviews[j].Clone(),
					InstructorID: s.data.Instructors[i].ID,
				}, nil
			}
		}
	}
	return models.ReviewDetail{}, ErrReviewNotFound
}

// AddReview appends a review with a freshly assigned global id, then folds
// the rating into the instructor aggregate and persists.
func (s *Store) AddReview(ctx context.Context, instructorID int, userID string, rating int, comment string) (int, error) {
	var reviewID int
	err := s.mutate(ctx, func(data *models.Corpus) error {
		instructor := findInstructor(data, instructorID)
		if instructor == nil {
			return ErrInstructorNotFound
		}

		reviewID = data.NextReviewID
		instructor.Reviews = append(instructor.Reviews, models.Review{
			ReviewID: reviewID,
			UserID:   userID,
			Rating:   rating,
			Comment:  comment,
			Date:     s.now().Format(models.ReviewDateLayout),
			Votes:    map[string]models.VoteState{},
		})
		applyRating(&instructor.Rating, rating)
		data.NextReviewID++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return reviewID, nil
}

// Vote applies a like/dislike/clear transition for one (review, user) pair
// and returns the user's previous vote state ("" when none). Repeating the
// active vote is a silent no-op on the counters; callers that want to
// surface "already voted" compare the returned state with the intent.
func (s *Store) Vote(ctx context.Context, reviewID int, userID string, intent models.VoteIntent) (models.VoteState, error) {
	var previous models.VoteState
	err := s.mutate(ctx, func(data *models.Corpus) error {
		review := findReview(data, reviewID)
		if review == nil {
			return ErrReviewNotFound
		}
		if review.Votes == nil {
			review.Votes = map[string]models.VoteState{}
		}

		previous = review.Votes[userID]
		switch previous {
		case models.VoteLike:
			if review.Likes > 0 {
				review.Likes--
			}
		case models.VoteDislike:
			if review.Dislikes > 0 {
				review.Dislikes--
			}
		}

		switch intent {
		case models.IntentLike:
			review.Likes++
			review.Votes[userID] = models.VoteLike
		case models.IntentDislike:
			review.Dislikes++
			review.Votes[userID] = models.VoteDislike
		case models.IntentClear:
			delete(review.Votes, userID)
		default:
			return fmt.Errorf("directory: unknown vote intent %q", intent)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return previous, nil
}

// Instructors returns one page of the corpus in insertion order plus the
// total count.
func (s *Store) Instructors(page, pageSize int) ([]models.Instructor, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slice := paging.Page(s.data.Instructors, page, pageSize)
	result := make([]models.Instructor, len(slice))
	for i := range slice {
		result[i] = slice[i].Clone()
	}
	return result, len(s.data.Instructors)
}

// Reviews returns one page of an instructor's reviews in insertion order
// plus the total count.
func (s *Store) Reviews(instructorID, page, pageSize int) ([]models.Review, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reviews []models.Review
	found := false
	for i := range s.data.Instructors {
		if s.data.Instructors[i].ID == instructorID {
			reviews = s.data.Instructors[i].Reviews
			found = true
			break
		}
	}
	if !found {
		return nil, 0, ErrInstructorNotFound
	}

	slice := paging.Page(reviews, page, pageSize)
	result := make([]models.Review, len(slice))
	for i := range slice {
		result[i] = slice[i].Clone()
	}
	return result, len(reviews), nil
}

// Top returns up to limit instructors with at least one review, ordered by
// average rating descending. The sort is stable so ties keep corpus order.
func (s *Store) Top(limit int) []models.Instructor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rated := make([]models.Instructor, 0, len(s.data.Instructors))
	for i := range s.data.Instructors {
		if s.data.Instructors[i].Rating.Count > 0 {
			rated = append(rated, s.data.Instructors[i].Clone())
		}
	}
	sort.SliceStable(rated, func(a, b int) bool {
		return rated[a].Rating.Average > rated[b].Rating.Average
	})
	if limit > 0 && len(rated) > limit {
		rated = rated[:limit]
	}
	return rated
}

// All returns a detached copy of the full corpus in insertion order.
func (s *Store) All() []models.Instructor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Instructor, len(s.data.Instructors))
	for i := range s.data.Instructors {
		result[i] = s.data.Instructors[i].Clone()
	}
	return result
}

// Count returns the corpus size.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.Instructors)
}

// mutate clones the corpus, applies fn, persists the clone and swaps it in.
// When the snapshot write fails the previous in-memory state stays active
// and the operation reports ErrPersist.
func (s *Store) mutate(ctx context.Context, fn func(*models.Corpus) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := s.snap.Save(ctx, next); err != nil {
		s.logger.Error("directory snapshot write failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	s.data = next
	return nil
}

// applyRating folds one review rating into the aggregate. The average is
// recomputed from the full total list on every append.
func applyRating(rating *models.Rating, value int) {
	rating.Total = append(rating.Total, value)
	rating.Count = len(rating.Total)

	sum := 0
	for _, v := range rating.Total {
		sum += v
	}
	rating.Average = float64(sum) / float64(rating.Count)
}

func findInstructor(data *models.Corpus, id int) *models.Instructor {
	for i := range data.Instructors {
		if data.Instructors[i].ID == id {
			return &data.Instructors[i]
		}
	}
	return nil
}

func findReview(data *models.Corpus, reviewID int) *models.Review {
	for i := range data.Instructors {
		for j := range data.Instructors[i].Reviews {
			if data.Instructors[i].Reviews[j].ReviewID == reviewID {
				return &data.Instructors[i].Reviews[j]
			}
		}
	}
	return nil
}
