// Package search ranks the instructor corpus against a free-form query.
//
// A query matches through an ordered rule cascade: rules are evaluated in
// priority order and only the first matching rule contributes the base
// score. Popularity and rating act as fine-grained bonuses (max +20 and
// +10) that can reorder instructors inside one tier but never across the
// 10-point tier gaps.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/edurank/teacher-directory-api/internal/models"
)

// DefaultMinQueryLength is the shortest query (in runes) the engine ranks.
const DefaultMinQueryLength = 2

const maxPopularityBonus = 20

// fields holds the lower-cased match targets of one instructor.
type fields struct {
	surname    string
	name       string
	middlename string
	full       string
	department string
	subjects   []string
}

// rule is one step of the cascade: first match wins.
type rule struct {
	name  string
	base  float64
	match func(query string, f fields) bool
}

var cascade = []rule{
	{"surname-exact", 100, func(q string, f fields) bool {
		return f.surname == q
	}},
	{"name-surname-exact", 95, func(q string, f fields) bool {
		return f.name+" "+f.surname == q
	}},
	{"surname-initial", 90, func(q string, f fields) bool {
		initial, ok := firstRune(f.name)
		return ok && f.surname+" "+initial == q
	}},
	{"surname-prefix", 80, func(q string, f fields) bool {
		return strings.HasPrefix(f.surname, q)
	}},
	{"surname-contains", 70, func(q string, f fields) bool {
		return strings.Contains(f.surname, q)
	}},
	{"full-name-contains", 60, func(q string, f fields) bool {
		return strings.Contains(f.full, q)
	}},
	{"name-exact", 50, func(q string, f fields) bool {
		return f.name == q
	}},
	{"middlename-exact", 40, func(q string, f fields) bool {
		return f.middlename == q
	}},
	{"department-or-subject", 30, func(q string, f fields) bool {
		if strings.Contains(f.department, q) {
			return true
		}
		for _, subject := range f.subjects {
			if strings.Contains(subject, q) {
				return true
			}
		}
		return false
	}},
}

// Engine ranks instructors by name relevance, popularity and rating.
type Engine struct {
	minQueryLength int
}

// New returns an engine; minQueryLength falls back to the default when
// not positive.
func New(minQueryLength int) *Engine {
	if minQueryLength < 1 {
		minQueryLength = DefaultMinQueryLength
	}
	return &Engine{minQueryLength: minQueryLength}
}

// Match pairs an instructor with its computed score. Base is the tier
// score of the first matching rule; Score adds the bonuses.
type Match struct {
	Instructor models.Instructor
	Base       float64
	Score      float64
	Rule       string
}

// Rank filters corpus to instructors matching the query and orders them
// tier-first: base score descending, then final score descending. Bonuses
// therefore break ties inside a tier but never lift an instructor past a
// more precise name match. Remaining ties keep corpus order (stable sort).
// Queries shorter than the minimum length yield no results.
func (e *Engine) Rank(query string, corpus []models.Instructor) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(query) < e.minQueryLength {
		return nil
	}

	matches := make([]Match, 0, len(corpus))
	for _, instructor := range corpus {
		f := fieldsOf(instructor)
		for _, r := range cascade {
			if !r.match(query, f) {
				continue
			}
			matches = append(matches, Match{
				Instructor: instructor,
				Base:       r.base,
				Score:      r.base + popularityBonus(instructor) + ratingBonus(instructor),
				Rule:       r.name,
			})
			break
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].Base != matches[b].Base {
			return matches[a].Base > matches[b].Base
		}
		return matches[a].Score > matches[b].Score
	})
	return matches
}

// Instructors is Rank stripped to the ordered instructor list.
func (e *Engine) Instructors(query string, corpus []models.Instructor) []models.Instructor {
	matches := e.Rank(query, corpus)
	result := make([]models.Instructor, len(matches))
	for i, m := range matches {
		result[i] = m.Instructor
	}
	return result
}

func fieldsOf(instructor models.Instructor) fields {
	surname := strings.ToLower(instructor.Surname)
	name := strings.ToLower(instructor.Name)
	middlename := strings.ToLower(instructor.Middlename)

	subjects := make([]string, len(instructor.Subjects))
	for i, subject := range instructor.Subjects {
		subjects[i] = strings.ToLower(subject)
	}

	return fields{
		surname:    surname,
		name:       name,
		middlename: middlename,
		full:       surname + " " + name + " " + middlename,
		department: strings.ToLower(instructor.Department),
		subjects:   subjects,
	}
}

// popularityBonus rewards review volume, capped so it stays below the
// smallest tier gap together with the rating bonus.
func popularityBonus(instructor models.Instructor) float64 {
	bonus := instructor.Rating.Count * 2
	if bonus > maxPopularityBonus {
		bonus = maxPopularityBonus
	}
	return float64(bonus)
}

// ratingBonus contributes up to +10 for a perfect 5.0 average.
func ratingBonus(instructor models.Instructor) float64 {
	return instructor.Rating.Average * 2
}

func firstRune(s string) (string, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError && size < 2 {
		return "", false
	}
	return string(r), true
}
