package models

import "time"

// OfferType represents the kind of employment offered
type OfferType string

const (
	OfferTypeFullTime   OfferType = "full-time"
	OfferTypePartTime   OfferType = "part-time"
	OfferTypeInternship OfferType = "internship"
	OfferTypeContract   OfferType = "contract"
)

// Valid reports whether the offer type is one of the known values.
func (t OfferType) Valid() bool {
	switch t {
	case OfferTypeFullTime, OfferTypePartTime, OfferTypeInternship, OfferTypeContract:
		return true
	}
	return false
}

// OfferStatus represents the lifecycle state of a job offer
type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "pending"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusDeclined OfferStatus = "declined"
)

// Valid reports whether the status is one of the known values.
func (s OfferStatus) Valid() bool {
	switch s {
	case OfferStatusPending, OfferStatusAccepted, OfferStatusDeclined:
		return true
	}
	return false
}

// JobOffer is an offer a recruiter extends to a single student. Status moves
// pending -> accepted or pending -> declined and is then terminal. CompanyName
// is snapshotted from the recruiter profile at creation time.
type JobOffer struct {
	ID          string      `json:"id"`
	RecruiterID string      `json:"recruiterId"`
	StudentID   string      `json:"studentId"`
	Position    string      `json:"position"`
	Description string      `json:"description"`
	Salary      *string     `json:"salary,omitempty"`
	Location    string      `json:"location"`
	Type        OfferType   `json:"type"`
	Status      OfferStatus `json:"status"`
	CompanyName string      `json:"companyName"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
