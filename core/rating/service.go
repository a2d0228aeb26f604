package rating

import (
	"sort"

	"github.com/peertutor/peertutor/core"
	"github.com/peertutor/peertutor/core/tutor"
)

type (
	Backend interface {
		QueryAverageRatings() ([]AverageRating, error)
		RateTutor(studentID, tutorID, rating int) (string, error)
	}

	// TutorDirectory is the slice of the tutor backend the
	// leaderboard needs for the identity join.
	TutorDirectory interface {
		QueryAllTutors() ([]tutor.Tutor, error)
	}

	Service struct {
		backend Backend
		tutors  TutorDirectory
	}
)

func NewService(backend Backend, tutors TutorDirectory) *Service {
	return &Service{backend: backend, tutors: tutors}
}

// SubmitRating scores a tutor 1..5 and returns the backend's
// confirmation text. An unset rating never reaches the network.
func (svc *Service) SubmitRating(studentID, tutorID, rating int) (string, error) {
	if err := (NewRating{Rating: rating}).Validate(); err != nil {
		return "", err
	}
	return svc.backend.RateTutor(studentID, tutorID, rating)
}

// Leaderboard fetches averages and tutors and returns the ranked
// top-limit (config default when limit <= 0).
func (svc *Service) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = core.Conf.LeaderboardSize
	}
	ratings, err := svc.backend.QueryAverageRatings()
	if err != nil {
		return nil, err
	}
	tutors, err := svc.tutors.QueryAllTutors()
	if err != nil {
		return nil, err
	}
	return ComputeLeaderboard(ratings, tutors, limit), nil
}

// ComputeLeaderboard left-joins averages to tutors by tutor ID,
// drops averages whose tutor record is gone, sorts by rating
// descending and truncates to limit. Ties keep input order: the sort
// is stable and no secondary key exists, on purpose.
func ComputeLeaderboard(ratings []AverageRating, tutors []tutor.Tutor, limit int) []LeaderboardEntry {
	byID := make(map[int]tutor.Tutor, len(tutors))
	for _, t := range tutors {
		byID[t.ID] = t
	}

	entries := make([]LeaderboardEntry, 0, len(ratings))
	for _, r := range ratings {
		t, ok := byID[r.TutorID]
		if !ok {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			TutorID:  r.TutorID,
			Rating:   r.Average,
			FullName: t.DisplayName(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Rating > entries[j].Rating })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
