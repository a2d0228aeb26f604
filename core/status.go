package core

// Status is the decision state shared by tutor applications and sessions.
// Both only ever move PENDING -> {APPROVED, REJECTED} and are terminal
// once non-PENDING.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}
