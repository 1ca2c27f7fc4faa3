package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edurank/teacher-directory-api/internal/models"
)

func instructor(id int, surname, name, middlename string) models.Instructor {
	return models.Instructor{
		ID:         id,
		Surname:    surname,
		Name:       name,
		Middlename: middlename,
	}
}

func withRating(ins models.Instructor, count int, average float64) models.Instructor {
	ins.Rating = models.Rating{Count: count, Average: average}
	return ins
}

func TestRankShortQueryYieldsNothing(t *testing.T) {
	engine := New(2)
	corpus := []models.Instructor{instructor(1, "Ivanov", "Ivan", "Ivanovich")}

	assert.Empty(t, engine.Rank("a", corpus))
	assert.Empty(t, engine.Rank("  i  ", corpus))
	assert.Empty(t, engine.Rank("", corpus))
}

func TestRankCascadeTiers(t *testing.T) {
	engine := New(2)
	ins := models.Instructor{
		ID:         1,
		Surname:    "Ivanov",
		Name:       "Boris",
		Middlename: "Petrovich",
		Department: "Applied Mathematics",
		Subjects:   []string{"Databases", "Operating Systems"},
	}
	corpus := []models.Instructor{ins}

	cases := []struct {
		query string
		rule  string
		base  float64
	}{
		{"ivanov", "surname-exact", 100},
		{"Boris Ivanov", "name-surname-exact", 95},
		{"ivanov b", "surname-initial", 90},
		{"ivano", "surname-prefix", 80},
		{"vano", "surname-contains", 70},
		{"ivanov boris petrovich", "full-name-contains", 60},
		{"boris petrovich", "full-name-contains", 60},
		// a bare first or middle name is captured by the full-name tier
		// before the exact-name tiers can fire
		{"boris", "full-name-contains", 60},
		{"petrovich", "full-name-contains", 60},
		{"mathematics", "department-or-subject", 30},
		{"operating", "department-or-subject", 30},
	}

	for _, tc := range cases {
		matches := engine.Rank(tc.query, corpus)
		require.Len(t, matches, 1, "query %q", tc.query)
		assert.Equal(t, tc.rule, matches[0].Rule, "query %q", tc.query)
		assert.Equal(t, tc.base, matches[0].Base, "query %q", tc.query)
	}
}

func TestRankExcludesNonMatches(t *testing.T) {
	engine := New(2)
	corpus := []models.Instructor{
		instructor(1, "Ivanov", "Ivan", "Ivanovich"),
		instructor(2, "Sidorov", "Pavel", "Olegovich"),
	}

	matches := engine.Rank("ivanov", corpus)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Instructor.ID)
}

func TestRankCaseInsensitiveAndTrimmed(t *testing.T) {
	engine := New(2)
	corpus := []models.Instructor{instructor(1, "Ivanov", "Ivan", "Ivanovich")}

	matches := engine.Rank("  IVANOV  ", corpus)
	require.Len(t, matches, 1)
	assert.Equal(t, "surname-exact", matches[0].Rule)
}

func TestRankBonusesApplied(t *testing.T) {
	engine := New(2)
	corpus := []models.Instructor{
		withRating(instructor(1, "Ivanov", "Ivan", "Ivanovich"), 50, 5.0),
	}

	matches := engine.Rank("ivanov", corpus)
	require.Len(t, matches, 1)
	// base 100 + capped popularity 20 + rating 10
	assert.Equal(t, 130.0, matches[0].Score)
}

func TestRankPopularityBonusCapped(t *testing.T) {
	engine := New(2)
	light := withRating(instructor(1, "Ivanov", "Ivan", "Ivanovich"), 3, 0)
	heavy := withRating(instructor(2, "Ivanov", "Petr", "Olegovich"), 500, 0)

	matches := engine.Rank("ivanov", []models.Instructor{light, heavy})
	require.Len(t, matches, 2)
	assert.Equal(t, 106.0, matchScore(matches, 1))
	assert.Equal(t, 120.0, matchScore(matches, 2))
}

func TestRankExactSurnameBeatsPopularPartialMatch(t *testing.T) {
	engine := New(2)
	exact := instructor(1, "Ivanov", "Ivan", "Ivanovich") // no reviews
	partial := withRating(instructor(2, "Ivanova", "Anna", "Sergeevna"), 50, 5.0)

	matches := engine.Rank("ivanov", []models.Instructor{partial, exact})
	require.Len(t, matches, 2)
	assert.Equal(t, exact.ID, matches[0].Instructor.ID)
	assert.Equal(t, partial.ID, matches[1].Instructor.ID)
}

func TestRankBonusesBreakTiesWithinTier(t *testing.T) {
	engine := New(2)
	plain := instructor(1, "Ivanov", "Ivan", "Ivanovich")
	rated := withRating(instructor(2, "Ivanov", "Petr", "Olegovich"), 10, 4.5)

	matches := engine.Rank("ivanov", []models.Instructor{plain, rated})
	require.Len(t, matches, 2)
	assert.Equal(t, rated.ID, matches[0].Instructor.ID)
}

func TestRankStableOrderOnFullTie(t *testing.T) {
	engine := New(2)
	first := instructor(1, "Ivanov", "Ivan", "Ivanovich")
	second := instructor(2, "Ivanov", "Igor", "Ivanovich")

	matches := engine.Rank("ivanov", []models.Instructor{first, second})
	require.Len(t, matches, 2)
	assert.Equal(t, first.ID, matches[0].Instructor.ID)
	assert.Equal(t, second.ID, matches[1].Instructor.ID)
}

func TestRankCyrillicQueries(t *testing.T) {
	engine := New(2)
	corpus := []models.Instructor{instructor(1, "Иванов", "Иван", "Иванович")}

	matches := engine.Rank("Иванов И", corpus)
	require.Len(t, matches, 1)
	assert.Equal(t, "surname-initial", matches[0].Rule)

	assert.Empty(t, engine.Rank("и", corpus))
}

func TestInstructorsStripsScores(t *testing.T) {
	engine := New(2)
	corpus := []models.Instructor{
		instructor(1, "Ivanov", "Ivan", "Ivanovich"),
		instructor(2, "Ivanova", "Anna", "Sergeevna"),
	}

	result := engine.Instructors("ivanov", corpus)
	require.Len(t, result, 2)
	assert.Equal(t, 1, result[0].ID)
}

func matchScore(matches []Match, id int) float64 {
	for _, m := range matches {
		if m.Instructor.ID == id {
			return m.Score
		}
	}
	return -1
}
