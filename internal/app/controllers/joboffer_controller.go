package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/unihire/unihire/internal/app/models/dto"
	"github.com/unihire/unihire/internal/app/services"
	"github.com/unihire/unihire/internal/middleware"
)

// JobOfferController exposes the job offer lifecycle endpoints.
type JobOfferController struct {
	offersService *services.JobOffersService
	logger        zerolog.Logger
}

// NewJobOfferController creates a new JobOfferController
func NewJobOfferController(offersService *services.JobOffersService, logger zerolog.Logger) *JobOfferController {
	return &JobOfferController{offersService: offersService, logger: logger}
}

// CreateOffer handles POST /offers. Recruiter only; the recruiter id is taken
// from the authenticated caller, never from the payload.
func (c *JobOfferController) CreateOffer(ctx *gin.Context) {
	var req dto.CreateJobOfferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid offer data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	recruiterID := ctx.GetString(middleware.ContextUserID)
	offer, err := c.offersService.CreateJobOffer(ctx.Request.Context(), recruiterID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: offer, Timestamp: time.Now()})
}

// GetMyStudentOffers handles GET /offers/student
func (c *JobOfferController) GetMyStudentOffers(ctx *gin.Context) {
	offers, err := c.offersService.GetStudentOffers(ctx.Request.Context(), ctx.GetString(middleware.ContextUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: offers, Timestamp: time.Now()})
}

// GetMyRecruiterOffers handles GET /offers/recruiter
func (c *JobOfferController) GetMyRecruiterOffers(ctx *gin.Context) {
	offers, err := c.offersService.GetRecruiterOffers(ctx.Request.Context(), ctx.GetString(middleware.ContextUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: offers, Timestamp: time.Now()})
}

// GetOfferByID handles GET /offers/:id. Only the two parties of the offer may
// read it.
func (c *JobOfferController) GetOfferByID(ctx *gin.Context) {
	offer, err := c.offersService.GetOfferByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	callerID := ctx.GetString(middleware.ContextUserID)
	if offer.StudentID != callerID && offer.RecruiterID != callerID {
		detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "You do not have access to this offer")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(detail))
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: offer, Timestamp: time.Now()})
}

// UpdateOfferStatus handles PATCH /offers/:id/status. Only the student the
// offer targets may accept or decline it.
func (c *JobOfferController) UpdateOfferStatus(ctx *gin.Context) {
	var req dto.UpdateOfferStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	offerID := ctx.Param("id")
	offer, err := c.offersService.GetOfferByID(ctx.Request.Context(), offerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if offer.StudentID != ctx.GetString(middleware.ContextUserID) {
		detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Only the offer's recipient can respond to it")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(detail))
		return
	}

	updated, err := c.offersService.UpdateOfferStatus(ctx.Request.Context(), offerID, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: updated, Timestamp: time.Now()})
}

// DeleteOffer handles DELETE /offers/:id. Only the recruiter who extended the
// offer may withdraw it.
func (c *JobOfferController) DeleteOffer(ctx *gin.Context) {
	offerID := ctx.Param("id")
	offer, err := c.offersService.GetOfferByID(ctx.Request.Context(), offerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if offer.RecruiterID != ctx.GetString(middleware.ContextUserID) {
		detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Only the offer's sender can withdraw it")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(detail))
		return
	}

	if err := c.offersService.DeleteOffer(ctx.Request.Context(), offerID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Message: "Offer withdrawn", Timestamp: time.Now()})
}
