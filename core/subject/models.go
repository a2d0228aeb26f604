package subject

import (
	"github.com/peertutor/peertutor/core"
)

type Subject struct {
	ID          int    `json:"subjectId"`
	Name        string `json:"subjectName"`
	Description string `json:"subjectDescription"`
}

// NewSubject contains information needed to add a Subject to the catalog.
type NewSubject struct {
	Name        string `json:"subjectName" validate:"required"`
	Description string `json:"subjectDescription" validate:"required"`
}

func (ns *NewSubject) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Description = core.CleanString(ns.Description)
	return core.Validate.Struct(ns)
}
