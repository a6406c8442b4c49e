package dto

import "github.com/unihire/unihire/internal/app/models"

// StudentProfileUpdate is a partial student profile payload. Nil fields are
// left untouched by the merge; ID is required.
type StudentProfileUpdate struct {
	ID                 string             `json:"id" binding:"required"`
	FirstName          *string            `json:"firstName,omitempty"`
	LastName           *string            `json:"lastName,omitempty"`
	Age                *int               `json:"age,omitempty"`
	Department         *string            `json:"department,omitempty"`
	Year               *int               `json:"year,omitempty"`
	Semester           *int               `json:"semester,omitempty"`
	PhoneNumber        *string            `json:"phoneNumber,omitempty"`
	CommunicationEmail *string            `json:"communicationEmail,omitempty"`
	ProfilePicture     *string            `json:"profilePicture,omitempty"`
	Resume             *string            `json:"resume,omitempty"`
	Certificates       []string           `json:"certificates,omitempty"`
	Experience         *string            `json:"experience,omitempty"`
	WorkStatus         *models.WorkStatus `json:"workStatus,omitempty"`
}

// RecruiterProfileUpdate is a partial recruiter profile payload. Nil fields
// are left untouched by the merge; ID is required.
type RecruiterProfileUpdate struct {
	ID          string  `json:"id" binding:"required"`
	CompanyName *string `json:"companyName,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	Website     *string `json:"website,omitempty"`
	LogoURL     *string `json:"logoUrl,omitempty"`
	Description *string `json:"description,omitempty"`
}

// StudentSearchRequest carries the list filters for browsing students
type StudentSearchRequest struct {
	Search     string `form:"search"`
	Department string `form:"department"`
	WorkStatus string `form:"workStatus"`
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"pageSize,default=12"`
}
