package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unihire/unihire/internal/app/controllers"
	"github.com/unihire/unihire/internal/app/models"
	"github.com/unihire/unihire/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	profileController *controllers.ProfileController,
	jobOfferController *controllers.JobOfferController,
	notificationController *controllers.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
		auth.GET("/session", authController.GetSession)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/resend-verification", authController.ResendVerification)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	students := authenticated.Group("/students")
	{
		students.GET("", studentController.GetAllStudents)
		students.GET("/:id", studentController.GetStudentByID)
	}

	profiles := authenticated.Group("/profiles")
	{
		profiles.PUT("/student", authMiddleware.RoleRequired(string(models.RoleStudent)), profileController.UpdateStudentProfile)
		profiles.PUT("/recruiter", authMiddleware.RoleRequired(string(models.RoleRecruiter)), profileController.UpdateRecruiterProfile)
	}

	offers := authenticated.Group("/offers")
	{
		offers.POST("", authMiddleware.RoleRequired(string(models.RoleRecruiter)), jobOfferController.CreateOffer)
		offers.GET("/student", authMiddleware.RoleRequired(string(models.RoleStudent)), jobOfferController.GetMyStudentOffers)
		offers.GET("/recruiter", authMiddleware.RoleRequired(string(models.RoleRecruiter)), jobOfferController.GetMyRecruiterOffers)
		offers.GET("/:id", jobOfferController.GetOfferByID)
		offers.PATCH("/:id/status", authMiddleware.RoleRequired(string(models.RoleStudent)), jobOfferController.UpdateOfferStatus)
		offers.DELETE("/:id", authMiddleware.RoleRequired(string(models.RoleRecruiter)), jobOfferController.DeleteOffer)
	}

	notifications := authenticated.Group("/notifications")
	{
		notifications.GET("", notificationController.ListNotifications)
		notifications.GET("/unread-count", notificationController.UnreadCount)
		notifications.PATCH("/:id/read", notificationController.MarkRead)
		notifications.PATCH("/read-all", notificationController.MarkAllRead)
	}
}
