package models

import "time"

// WorkStatus represents a student's availability for work
type WorkStatus string

const (
	WorkStatusAvailable    WorkStatus = "available"
	WorkStatusEmployed     WorkStatus = "employed"
	WorkStatusNotAvailable WorkStatus = "not_available"
)

// Valid reports whether the work status is one of the known values.
func (w WorkStatus) Valid() bool {
	switch w {
	case WorkStatusAvailable, WorkStatusEmployed, WorkStatusNotAvailable:
		return true
	}
	return false
}

// StudentProfile defines the role-specific profile of a student account.
// One-to-one with a User of role student.
type StudentProfile struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"userId"` // ID of the owning user account
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	Age                int        `json:"age"`
	Department         string     `json:"department"`
	Year               int        `json:"year"`
	Semester           int        `json:"semester"`
	PhoneNumber        string     `json:"phoneNumber"`
	CollegeEmail       string     `json:"collegeEmail"`
	CommunicationEmail *string    `json:"communicationEmail,omitempty"`
	ProfilePicture     *string    `json:"profilePicture,omitempty"`
	Resume             *string    `json:"resume,omitempty"`
	Certificates       []string   `json:"certificates,omitempty"`
	Experience         string     `json:"experience"`
	WorkStatus         WorkStatus `json:"workStatus"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}
