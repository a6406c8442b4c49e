package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/unihire/unihire/internal/app/models"
	"github.com/unihire/unihire/internal/app/models/dto"
	"github.com/unihire/unihire/internal/app/repositories"
	"github.com/unihire/unihire/internal/app/services"
	"github.com/unihire/unihire/internal/middleware"
)

// StudentController exposes the student browsing endpoints recruiters use.
type StudentController struct {
	profileService *services.ProfileService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(profileService *services.ProfileService, logger zerolog.Logger) *StudentController {
	return &StudentController{profileService: profileService, logger: logger}
}

// GetAllStudents handles GET /students
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	var req dto.StudentSearchRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 12
	}

	filters := repositories.StudentFilters{
		Search:     req.Search,
		Department: req.Department,
		WorkStatus: models.WorkStatus(req.WorkStatus),
	}
	students, err := c.profileService.GetAllStudents(ctx.Request.Context(), filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	total := len(students)
	totalPages := (total + req.PageSize - 1) / req.PageSize
	start := (req.Page - 1) * req.PageSize
	if start > total {
		start = total
	}
	end := start + req.PageSize
	if end > total {
		end = total
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      students[start:end],
			Page:       req.Page,
			PageSize:   req.PageSize,
			TotalItems: total,
			TotalPages: totalPages,
		},
		Timestamp: time.Now(),
	})
}

// GetStudentByID handles GET /students/:id
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	student, err := c.profileService.GetStudentByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: student, Timestamp: time.Now()})
}
