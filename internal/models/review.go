package models

// VoteState is a user's active vote recorded in a review ledger.
type VoteState string

const (
	VoteLike    VoteState = "like"
	VoteDislike VoteState = "dislike"
)

// VoteIntent is a requested vote transition. Clear removes the active vote.
type VoteIntent string

const (
	IntentLike    VoteIntent = "like"
	IntentDislike VoteIntent = "dislike"
	IntentClear   VoteIntent = "clear"
)

// Valid reports whether the intent is one of the three known transitions.
func (v VoteIntent) Valid() bool {
	switch v {
	case IntentLike, IntentDislike, IntentClear:
		return true
	}
	return false
}

// Review is a single user-submitted rating and comment. Likes and Dislikes
// are a denormalized cache of the Votes ledger and must stay in lock-step
// with it on every mutation.
type Review struct {
	ReviewID int                  `json:"review_id"`
	UserID   string               `json:"user_id"`
	Rating   int                  `json:"rating"`
	Comment  string               `json:"comment"`
	Date     string               `json:"date"`
	Likes    int                  `json:"review_likes"`
	Dislikes int                  `json:"review_dislikes"`
	Votes    map[string]VoteState `json:"user_votes"`
}

// Clone returns a deep copy of the review including its vote ledger.
func (r Review) Clone() Review {
	cp := r
	if r.Votes != nil {
		cp.Votes = make(map[string]VoteState, len(r.Votes))
		for user, state := range r.Votes {
			cp.Votes[user] = state
		}
	}
	return cp
}

// ReviewDetail is a detached review copy annotated with its owning
// instructor. Mutating it never affects storage.
type ReviewDetail struct {
	Review
	InstructorID int `json:"instructor_id"`
}
