package snapshot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edurank/teacher-directory-api/internal/models"
)

func TestFileStoreLoadMissing(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "directory.json"))
	require.NoError(t, err)

	var corpus models.Corpus
	err = store.Load(context.Background(), &corpus)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "directory.json"))
	require.NoError(t, err)

	original := models.Corpus{
		NextInstructorID: 3,
		NextReviewID:     2,
		Instructors: []models.Instructor{
			{
				ID:         1,
				Surname:    "Ivanov",
				Name:       "Ivan",
				Middlename: "Ivanovich",
				Institute:  "Institute of Mathematics",
				Department: "Algebra",
				Title:      "Professor",
				Subjects:   []string{"Linear Algebra", "Calculus"},
				Rating:     models.Rating{Average: 4, Count: 1, Total: []int{4}},
				Reviews: []models.Review{
					{
						ReviewID: 1,
						UserID:   "u1",
						Rating:   4,
						Comment:  "clear lectures",
						Date:     "01.09.2025",
						Likes:    1,
						Votes:    map[string]models.VoteState{"u2": models.VoteLike},
					},
				},
			},
			{ID: 2, Surname: "Petrova", Name: "Anna", Middlename: "Sergeevna"},
		},
	}
	require.NoError(t, store.Save(context.Background(), original))

	var reloaded models.Corpus
	require.NoError(t, store.Load(context.Background(), &reloaded))
	assert.Equal(t, original, reloaded)
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "directory.json"))
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), models.Corpus{NextInstructorID: 1, NextReviewID: 1}))
	require.NoError(t, store.Save(context.Background(), models.Corpus{NextInstructorID: 7, NextReviewID: 9}))

	var reloaded models.Corpus
	require.NoError(t, store.Load(context.Background(), &reloaded))
	assert.Equal(t, 7, reloaded.NextInstructorID)
	assert.Equal(t, 9, reloaded.NextReviewID)
}
