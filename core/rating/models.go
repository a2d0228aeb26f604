package rating

import (
	"github.com/peertutor/peertutor/core"
)

// AverageRating is the backend's per-tutor aggregate. The backend
// owns uniqueness of (student, tutor) pairs; the client only averages
// what it is given.
type AverageRating struct {
	TutorID int     `json:"tutorId"`
	Average float64 `json:"averageRating"`
}

// LeaderboardEntry is one ranked row: an average joined to the
// tutor's identity.
type LeaderboardEntry struct {
	TutorID  int     `json:"tutorId"`
	Rating   float64 `json:"rating"`
	FullName string  `json:"fullName"`
}

// NewRating is a student's score for a tutor. Zero means "unset" and
// is rejected before any network call.
type NewRating struct {
	Rating int `json:"rating" validate:"required,gte=1,lte=5"`
}

func (nr NewRating) Validate() error {
	return core.Validate.Struct(nr)
}
