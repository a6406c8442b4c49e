package dto

import "github.com/unihire/unihire/internal/app/models"

// CreateJobOfferRequest carries the fields a recruiter supplies when extending
// an offer. Status, company name and timestamps are set by the service.
type CreateJobOfferRequest struct {
	StudentID   string           `json:"studentId" binding:"required"`
	Position    string           `json:"position" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Salary      *string          `json:"salary,omitempty"`
	Location    string           `json:"location" binding:"required"`
	Type        models.OfferType `json:"type" binding:"required"`
}

// UpdateOfferStatusRequest carries a student's accept/decline decision
type UpdateOfferStatusRequest struct {
	Status models.OfferStatus `json:"status" binding:"required"`
}
