package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edurank/teacher-directory-api/internal/directory"
	"github.com/edurank/teacher-directory-api/internal/search"
	"github.com/edurank/teacher-directory-api/internal/service"
	"github.com/edurank/teacher-directory-api/internal/snapshot"
)

// discardSnapshot keeps everything in memory so handler tests exercise the
// real store without touching disk.
type discardSnapshot struct{}

func (discardSnapshot) Load(_ context.Context, _ interface{}) error { return snapshot.ErrEmpty }
func (discardSnapshot) Save(_ context.Context, _ interface{}) error { return nil }

type envelope struct {
	Data       json.RawMessage `json:"data"`
	Error      *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Pagination *struct {
		Page       int `json:"page"`
		PageSize   int `json:"page_size"`
		TotalCount int `json:"total_count"`
		PageCount  int `json:"page_count"`
	} `json:"pagination"`
}

func newDirectoryService(t *testing.T) *service.DirectoryService {
	t.Helper()
	store, err := directory.NewStore(context.Background(), discardSnapshot{}, directory.Options{})
	require.NoError(t, err)
	return service.NewDirectoryService(store, search.New(2), nil, nil, nil, nil, service.DirectoryOptions{})
}

func doRequest(t *testing.T, method, target string, body interface{}, fn gin.HandlerFunc, params gin.Params) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = params

	fn(c)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func seedInstructor(t *testing.T, svc *service.DirectoryService, surname string) int {
	t.Helper()
	ins, err := svc.AddInstructor(context.Background(), service.CreateInstructorRequest{
		Surname:    surname,
		Name:       "Ivan",
		Middlename: "Ivanovich",
		Department: "Physics",
	})
	require.NoError(t, err)
	return ins.ID
}

func TestInstructorHandlerCreateAndGet(t *testing.T) {
	svc := newDirectoryService(t)
	h := NewInstructorHandler(svc)

	w, env := doRequest(t, http.MethodPost, "/instructors", service.CreateInstructorRequest{
		Surname:    "Ivanov",
		Name:       "Ivan",
		Middlename: "Ivanovich",
	}, h.Create, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotZero(t, created.ID)

	w, env = doRequest(t, http.MethodGet, "/instructors/1", nil, h.Get, gin.Params{{Key: "id", Value: "1"}})
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Surname string `json:"surname"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Ivanov", got.Surname)
}

func TestInstructorHandlerCreateInvalidPayload(t *testing.T) {
	h := NewInstructorHandler(newDirectoryService(t))

	w, env := doRequest(t, http.MethodPost, "/instructors", map[string]string{"surname": "Only"}, h.Create, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
}

func TestInstructorHandlerGetUnknown(t *testing.T) {
	h := NewInstructorHandler(newDirectoryService(t))

	w, env := doRequest(t, http.MethodGet, "/instructors/99", nil, h.Get, gin.Params{{Key: "id", Value: "99"}})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestInstructorHandlerGetBadID(t *testing.T) {
	h := NewInstructorHandler(newDirectoryService(t))

	w, _ := doRequest(t, http.MethodGet, "/instructors/abc", nil, h.Get, gin.Params{{Key: "id", Value: "abc"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInstructorHandlerListPaginates(t *testing.T) {
	svc := newDirectoryService(t)
	h := NewInstructorHandler(svc)
	for i := 0; i < 7; i++ {
		seedInstructor(t, svc, "Ivanov")
	}

	w, env := doRequest(t, http.MethodGet, "/instructors?page=2&limit=6", nil, h.List, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 7, env.Pagination.TotalCount)
	assert.Equal(t, 2, env.Pagination.PageCount)

	var items []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 1)
}

func TestInstructorHandlerReviewLifecycle(t *testing.T) {
	svc := newDirectoryService(t)
	h := NewInstructorHandler(svc)
	rh := NewReviewHandler(svc)
	id := seedInstructor(t, svc, "Ivanov")
	params := gin.Params{{Key: "id", Value: "1"}}

	w, env := doRequest(t, http.MethodPost, "/instructors/1/reviews", service.CreateReviewRequest{
		UserID: "u1",
		Rating: 5,
		Comment: "great lectures",
	}, h.CreateReview, params)
	require.Equal(t, http.StatusCreated, w.Code)

	var review struct {
		ReviewID     int `json:"review_id"`
		InstructorID int `json:"instructor_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &review))
	assert.Equal(t, id, review.InstructorID)
	require.NotZero(t, review.ReviewID)

	w, env = doRequest(t, http.MethodPost, "/reviews/1/votes", service.VoteRequest{
		UserID: "u2",
		Intent: "like",
	}, rh.Vote, gin.Params{{Key: "id", Value: "1"}})
	require.Equal(t, http.StatusOK, w.Code)

	var vote struct {
		Changed bool `json:"changed"`
		Review  struct {
			Likes int `json:"review_likes"`
		} `json:"review"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &vote))
	assert.True(t, vote.Changed)
	assert.Equal(t, 1, vote.Review.Likes)

	w, env = doRequest(t, http.MethodGet, "/instructors/1/reviews", nil, h.ListReviews, params)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.TotalCount)
}

func TestInstructorHandlerReviewOutOfRangeRating(t *testing.T) {
	svc := newDirectoryService(t)
	h := NewInstructorHandler(svc)
	seedInstructor(t, svc, "Ivanov")

	w, _ := doRequest(t, http.MethodPost, "/instructors/1/reviews", service.CreateReviewRequest{
		UserID: "u1",
		Rating: 9,
	}, h.CreateReview, gin.Params{{Key: "id", Value: "1"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewHandlerGetUnknown(t *testing.T) {
	rh := NewReviewHandler(newDirectoryService(t))

	w, _ := doRequest(t, http.MethodGet, "/reviews/5", nil, rh.Get, gin.Params{{Key: "id", Value: "5"}})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestInstructorHandlerSearch(t *testing.T) {
	svc := newDirectoryService(t)
	h := NewInstructorHandler(svc)
	seedInstructor(t, svc, "Ivanov")
	seedInstructor(t, svc, "Petrov")

	w, env := doRequest(t, http.MethodGet, "/search?q=ivanov", nil, h.Search, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var results []struct {
		Instructor struct {
			Surname string `json:"surname"`
		} `json:"instructor"`
		Score float64 `json:"score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Ivanov", results[0].Instructor.Surname)
	assert.GreaterOrEqual(t, results[0].Score, float64(100))
}

func TestInstructorHandlerSearchShortQuery(t *testing.T) {
	svc := newDirectoryService(t)
	h := NewInstructorHandler(svc)
	seedInstructor(t, svc, "Ivanov")

	w, env := doRequest(t, http.MethodGet, "/search?q=i", nil, h.Search, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var results []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Empty(t, results)
}

func TestInstructorHandlerTop(t *testing.T) {
	svc := newDirectoryService(t)
	h := NewInstructorHandler(svc)
	seedInstructor(t, svc, "Ivanov")
	_, err := svc.AddReview(context.Background(), 1, service.CreateReviewRequest{UserID: "u1", Rating: 5})
	require.NoError(t, err)
	seedInstructor(t, svc, "Unrated")

	w, env := doRequest(t, http.MethodGet, "/instructors/top", nil, h.Top, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var top []struct {
		Surname string `json:"surname"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &top))
	require.Len(t, top, 1)
	assert.Equal(t, "Ivanov", top[0].Surname)
}
