// Package session implements the auth reconciliation layer: it merges the
// remote session provider's view of the current user with the local key-value
// mirror, and exposes a single observable session state.
package session

import (
	"github.com/unihire/unihire/internal/app/models"
)

// Mirror keys in the key-value store. They hold the serialized current user
// and role profiles so a restart or provider outage can still resolve a
// usable session.
const (
	KeyUser             = "user"
	KeyStudentProfile   = "studentProfile"
	KeyRecruiterProfile = "recruiterProfile"
)

// Source records which identity source produced the current state.
type Source string

const (
	SourceNone   Source = ""
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// State is the single current-auth-state object consumed by the rest of the
// application. Seq increases monotonically with every applied change; a state
// carrying a lower Seq than one already seen is stale.
type State struct {
	User             *models.User             `json:"user"`
	StudentProfile   *models.StudentProfile   `json:"studentProfile,omitempty"`
	RecruiterProfile *models.RecruiterProfile `json:"recruiterProfile,omitempty"`
	Loading          bool                     `json:"loading"`
	Err              string                   `json:"error,omitempty"`
	Source           Source                   `json:"source,omitempty"`
	Seq              uint64                   `json:"seq"`
}

// Authenticated reports whether a user is present.
func (s State) Authenticated() bool {
	return s.User != nil
}
