package models

// ReviewDateLayout is the display-oriented timestamp carried on reviews.
const ReviewDateLayout = "02.01.2006"

// Rating is the running aggregate over all review ratings of an instructor.
// Average is always recomputed from Total, never adjusted incrementally.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
	Total   []int   `json:"total"`
}

// Clone returns a deep copy of the aggregate.
func (r Rating) Clone() Rating {
	cp := r
	if r.Total != nil {
		cp.Total = make([]int, len(r.Total))
		copy(cp.Total, r.Total)
	}
	return cp
}

// Instructor is a searchable directory entry with an embedded review list.
type Instructor struct {
	ID         int      `json:"id"`
	Surname    string   `json:"surname"`
	Name       string   `json:"name"`
	Middlename string   `json:"middlename"`
	Institute  string   `json:"institute"`
	Department string   `json:"department"`
	Title      string   `json:"title"`
	Subjects   []string `json:"subjects"`
	Rating     Rating   `json:"overall_rating"`
	Reviews    []Review `json:"reviews"`
}

// Clone returns a deep copy of the instructor including reviews and ledgers.
func (i Instructor) Clone() Instructor {
	cp := i
	if i.Subjects != nil {
		cp.Subjects = make([]string, len(i.Subjects))
		copy(cp.Subjects, i.Subjects)
	}
	cp.Rating = i.Rating.Clone()
	if i.Reviews != nil {
		cp.Reviews = make([]Review, len(i.Reviews))
		for idx, rv := range i.Reviews {
			cp.Reviews[idx] = rv.Clone()
		}
	}
	return cp
}

// Corpus is the whole durable state of the directory: the ordered
// instructor list plus the id counters. It is persisted as one snapshot.
type Corpus struct {
	Instructors      []Instructor `json:"instructors"`
	NextInstructorID int          `json:"next_instructor_id"`
	NextReviewID     int          `json:"next_review_id"`
}

// Clone returns a deep copy of the corpus.
func (c Corpus) Clone() Corpus {
	cp := c
	if c.Instructors != nil {
		cp.Instructors = make([]Instructor, len(c.Instructors))
		for idx, ins := range c.Instructors {
			cp.Instructors[idx] = ins.Clone()
		}
	}
	return cp
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	PageCount  int `json:"page_count"`
}
