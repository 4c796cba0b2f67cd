package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter собирает gin движок со всеми маршрутами
func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = 32 << 20
	router.Use(gin.Recovery(), RequestLogger(logger), Metrics())

	RegisterRoutes(router, h)
	return router
}

// RegisterRoutes регистрирует маршруты API
func RegisterRoutes(router *gin.Engine, h *Handler) {
	router.GET("/healthz", Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api", Session(h.auth, h.logger))
	{
		// ===== Auth =====
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)
		api.POST("/logout", h.Logout)
		api.GET("/user", RequireUser(), h.Me)

		// ===== Schedules (анонимно тоже) =====
		api.GET("/schedules", h.ListSchedules)
		api.GET("/schedules/board.png", h.ScheduleBoard)

		// ===== Reservations =====
		reservations := api.Group("/reservations", RequireUser())
		{
			reservations.POST("", h.CreateReservation)
			reservations.GET("/mine", h.MyReservations)
			reservations.GET("/history", h.MyReservations)
			reservations.GET("", RequireTeacher(), h.AllReservations)
			reservations.PATCH("/:id", h.UpdateReservation)
			reservations.DELETE("/:id", h.DeleteReservation)
		}

		api.POST("/upload", RequireUser(), h.Upload)

		// ===== Admin =====
		admin := api.Group("/admin", RequireTeacher())
		{
			admin.GET("/allowed-students", h.ListAllowedStudents)
			admin.POST("/allowed-students", h.AddAllowedStudent)
		}
	}
}

// Health GET /healthz
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
