package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const serviceVersion = "1.0.0"

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "taskforge",
		"version":   serviceVersion,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
