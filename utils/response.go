package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data, "timestamp": timestamp()})
}

// JSONMessage เหมือน JSONSuccess แต่แนบข้อความสำหรับ operation ที่เขียนข้อมูล
func JSONMessage(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, gin.H{"success": true, "message": message, "data": data, "timestamp": timestamp()})
}

// JSONError ทุก error response มีเหตุผลที่อ่านได้ + timestamp
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message, "timestamp": timestamp()})
}
