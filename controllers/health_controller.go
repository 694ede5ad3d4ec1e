package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-reservations/services"
)

// HealthController ตรวจสถานะฐานข้อมูลแบบสดทุก request (ไม่ใช้ flag ตอน start)
type HealthController struct {
	ReservationSvc *services.ReservationService
	ServerName     string
	Port           string
	startTime      time.Time
}

func NewHealthController(svc *services.ReservationService, serverName, port string) *HealthController {
	return &HealthController{
		ReservationSvc: svc,
		ServerName:     serverName,
		Port:           port,
		startTime:      time.Now(),
	}
}

// Liveness (GET /health)
func (ctrl *HealthController) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness (GET /health/ready) -> 503 ถ้าฐานข้อมูลไม่ตอบ
func (ctrl *HealthController) Readiness(c *gin.Context) {
	if !ctrl.ReservationSvc.StoreReachable(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "database": "disconnected"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "database": "connected"})
}

// Status (GET /api/status) - endpoint ทดสอบ API สำหรับหน้าเว็บ ตอบ 200 เสมอ
func (ctrl *HealthController) Status(c *gin.Context) {
	database := "disconnected"
	if ctrl.ReservationSvc.StoreReachable(c.Request.Context()) {
		database = "connected"
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "API is running",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"server":         ctrl.ServerName,
		"database":       database,
		"port":           ctrl.Port,
		"uptime_seconds": int64(time.Since(ctrl.startTime).Seconds()),
	})
}
