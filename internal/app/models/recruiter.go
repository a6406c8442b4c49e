package models

import "time"

// RecruiterProfile defines the role-specific profile of a recruiter account.
// One-to-one with a User of role recruiter. Approved starts false and is only
// flipped by an administrative action.
type RecruiterProfile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"` // ID of the owning user account
	CompanyName string    `json:"companyName"`
	Industry    string    `json:"industry"`
	Website     string    `json:"website"`
	LogoURL     *string   `json:"logoUrl,omitempty"`
	Description *string   `json:"description,omitempty"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
