package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartgains/trainer-app/internal/service"
)

// SetupRoutes wires every handler onto the router. Everything except
// registration, login and the health check sits behind the JWT middleware.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	trainerService service.TrainerService,
	clientService service.ClientService,
	questionService service.QuestionService,
	planService service.PlanService,
	generationService service.GenerationService,
	progressService service.ProgressService,
	intakeService service.IntakeService,
	exerciseService service.ExerciseService,
	emailService *service.EmailService,
) {
	authHandler := NewAuthHandler(authService)
	trainerHandler := NewTrainerHandler(trainerService, clientService, planService)
	clientHandler := NewClientHandler(clientService)
	questionHandler := NewQuestionHandler(questionService)
	planHandler := NewPlanHandler(planService, clientService, generationService, emailService)
	progressHandler := NewProgressHandler(progressService, clientService, emailService)
	intakeHandler := NewIntakeHandler(intakeService)
	exerciseHandler := NewExerciseHandler(exerciseService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		// --- Trainer account, profile, dashboard ---
		protected.GET("/me", trainerHandler.Me)
		protected.GET("/dashboard", trainerHandler.Dashboard)
		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", trainerHandler.GetProfile)
			profileGroup.PUT("", trainerHandler.UpdateProfile)
			profileGroup.POST("/photo/upload-url", trainerHandler.PhotoUploadURL)
			profileGroup.GET("/photo/download-url", trainerHandler.PhotoDownloadURL)
		}

		// --- Intake questions: resolved set + overlays ---
		questionGroup := protected.Group("/questions")
		{
			questionGroup.GET("", questionHandler.Resolve)
			questionGroup.GET("/overlays", questionHandler.Overlays)
			questionGroup.POST("/overlays", questionHandler.SaveOverlay)
			questionGroup.DELETE("/:key", questionHandler.Remove)
		}

		// --- Client roster ---
		clientGroup := protected.Group("/clients")
		{
			clientGroup.POST("", clientHandler.Create)
			clientGroup.GET("", clientHandler.List)
			clientGroup.GET("/:clientId", clientHandler.Get)
			clientGroup.PUT("/:clientId", clientHandler.Update)
			clientGroup.DELETE("/:clientId", clientHandler.Delete)

			// Plan generation and per-client plan listings.
			clientGroup.POST("/:clientId/plans/quick", planHandler.GenerateQuick)
			clientGroup.POST("/:clientId/plans/generate", planHandler.Generate)
			clientGroup.GET("/:clientId/plans/:kind", planHandler.ListByClient)
			clientGroup.GET("/:clientId/plans/:kind/latest", planHandler.LatestByClient)

			// Session log, per client.
			clientGroup.POST("/:clientId/progress", progressHandler.Log)
			clientGroup.GET("/:clientId/progress", progressHandler.ListByClient)
			clientGroup.GET("/:clientId/progress/single-day", progressHandler.SingleDayGenerated)
			clientGroup.GET("/:clientId/progress/multi-day", progressHandler.MultiDay)

			// Intake questionnaires, one row per client.
			clientGroup.POST("/:clientId/forms", intakeHandler.CreateForm)
			clientGroup.GET("/:clientId/forms", intakeHandler.FormsByClient)
			clientGroup.PUT("/:clientId/consultation", intakeHandler.SaveConsultation)
			clientGroup.GET("/:clientId/consultation", intakeHandler.GetConsultation)
			clientGroup.PUT("/:clientId/medical-history", intakeHandler.SaveMedicalHistory)
			clientGroup.GET("/:clientId/medical-history", intakeHandler.GetMedicalHistory)
			clientGroup.PUT("/:clientId/assessments/flexibility", intakeHandler.SaveFlexibility)
			clientGroup.PUT("/:clientId/assessments/beginner", intakeHandler.SaveBeginner)
			clientGroup.PUT("/:clientId/assessments/advanced", intakeHandler.SaveAdvanced)
			clientGroup.GET("/:clientId/assessments", intakeHandler.Assessments)
			clientGroup.PUT("/:clientId/nutrition", intakeHandler.SaveNutritionProfile)
			clientGroup.GET("/:clientId/nutrition", intakeHandler.GetNutritionProfile)
		}

		// --- Intake form answers ---
		formGroup := protected.Group("/forms")
		{
			formGroup.PUT("/:formId/answers", intakeHandler.SaveAnswers)
			formGroup.GET("/:formId/answers", intakeHandler.FormAnswers)
		}

		// --- Plans, addressed by kind ("generated" or "demo") ---
		// Registered outside /plans so the static segment does not collide
		// with the :kind wildcard.
		protected.GET("/pinned-plans", planHandler.Pinned)
		planGroup := protected.Group("/plans/:kind/:planId")
		{
			planGroup.GET("", planHandler.Get)
			planGroup.PUT("", planHandler.Update)
			planGroup.DELETE("", planHandler.Delete)
			planGroup.POST("/complete-day", planHandler.MarkDayComplete)
			planGroup.POST("/pin", planHandler.Pin)
			planGroup.DELETE("/pin", planHandler.Unpin)
			planGroup.GET("/pin", planHandler.PinStatus)
			planGroup.GET("/completion", planHandler.CompletionStatus)
			planGroup.GET("/progress", progressHandler.ListByPlan)
			planGroup.POST("/log-day", progressHandler.LogPlanDay)
			planGroup.POST("/email", planHandler.Email)
		}

		// --- Session log, addressed by session ---
		progressGroup := protected.Group("/progress")
		{
			progressGroup.PUT("/:progressId", progressHandler.Update)
			progressGroup.DELETE("/:progressId", progressHandler.Delete)
			progressGroup.POST("/:progressId/recap-email", progressHandler.EmailRecap)
		}

		// --- Exercise library ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.List)
			exerciseGroup.GET("/grouped", exerciseHandler.Grouped)
			exerciseGroup.POST("/import", exerciseHandler.Import)
		}
	}
}
