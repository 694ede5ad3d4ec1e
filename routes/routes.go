package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hotel-reservations/controllers"
	"hotel-reservations/logger"
	"hotel-reservations/metrics"
	"hotel-reservations/middleware"
)

// availableRoutes ส่งกลับใน 404 เพื่อช่วย client ที่เรียก path ผิด
var availableRoutes = []string{
	"GET /health",
	"GET /health/ready",
	"GET /metrics",
	"GET /api/status",
	"GET /api/statistics",
	"GET /api/reservations",
	"GET /api/reservations/email/:email",
	"POST /api/reservations",
	"PUT /api/reservations/:id",
	"DELETE /api/reservations/:id",
}

// RouterDeps คือ dependency ที่ router ต้องใช้
type RouterDeps struct {
	Reservations *controllers.ReservationController
	Health       *controllers.HealthController
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
	Log          logger.Logger
	CORSOrigins  []string
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

// ParseCorsOrigins แยก CORS_ORIGINS ("a,b,c"); ว่าง = "*"
func ParseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(deps.Log))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(cors.New(corsConfig(deps.CORSOrigins)))

	r.GET("/health", deps.Health.Liveness)
	r.GET("/health/ready", deps.Health.Readiness)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		api.GET("/status", deps.Health.Status)
		api.GET("/statistics", deps.Reservations.GetStatistics)

		reservations := api.Group("/reservations")
		{
			reservations.GET("", deps.Reservations.GetReservations)
			reservations.POST("", deps.Reservations.CreateReservation)

			// ต้องอยู่ก่อน /:id
			reservations.GET("/email/:email", deps.Reservations.GetReservationsByEmail)

			reservations.PUT("/:id", deps.Reservations.UpdateReservationStatus)
			reservations.DELETE("/:id", deps.Reservations.CancelReservation)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success":          false,
			"error":            "route not found: " + c.Request.URL.Path,
			"timestamp":        time.Now().UTC().Format(time.RFC3339),
			"available_routes": availableRoutes,
		})
	})
	return r
}
