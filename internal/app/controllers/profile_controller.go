package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/unihire/unihire/internal/app/models/dto"
	"github.com/unihire/unihire/internal/app/services"
	"github.com/unihire/unihire/internal/middleware"
	"github.com/unihire/unihire/internal/session"
)

// ProfileController exposes profile update endpoints. Updates that touch the
// active session's own profile are routed through the session manager so the
// local mirror stays in sync with the stored record.
type ProfileController struct {
	sessions       *session.Manager
	profileService *services.ProfileService
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(sessions *session.Manager, profileService *services.ProfileService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{sessions: sessions, profileService: profileService, logger: logger}
}

func forbidden(ctx *gin.Context) {
	detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "You can only update your own profile")
	ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(detail))
}

// UpdateStudentProfile handles PUT /profiles/student
func (c *ProfileController) UpdateStudentProfile(ctx *gin.Context) {
	var req dto.StudentProfileUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profile data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	existing, err := c.profileService.GetStudentByID(ctx.Request.Context(), req.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if existing.UserID != ctx.GetString(middleware.ContextUserID) {
		forbidden(ctx)
		return
	}

	state := c.sessions.State()
	if state.User != nil && state.User.ID == existing.UserID {
		if err := c.sessions.UpdateStudentProfile(ctx.Request.Context(), &req); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.APIResponse{
			Data:      c.sessions.State().StudentProfile,
			Message:   "Profile updated successfully",
			Timestamp: time.Now(),
		})
		return
	}

	updated, err := c.profileService.UpdateStudentProfile(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: updated, Message: "Profile updated successfully", Timestamp: time.Now()})
}

// UpdateRecruiterProfile handles PUT /profiles/recruiter
func (c *ProfileController) UpdateRecruiterProfile(ctx *gin.Context) {
	var req dto.RecruiterProfileUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profile data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	existing, err := c.profileService.GetRecruiterByID(ctx.Request.Context(), req.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if existing.UserID != ctx.GetString(middleware.ContextUserID) {
		forbidden(ctx)
		return
	}

	state := c.sessions.State()
	if state.User != nil && state.User.ID == existing.UserID {
		if err := c.sessions.UpdateRecruiterProfile(ctx.Request.Context(), &req); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.APIResponse{
			Data:      c.sessions.State().RecruiterProfile,
			Message:   "Profile updated successfully",
			Timestamp: time.Now(),
		})
		return
	}

	updated, err := c.profileService.UpdateRecruiterProfile(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: updated, Message: "Profile updated successfully", Timestamp: time.Now()})
}
