package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nebs-hr/noticeboard/pkg/response"
)

// Health reports liveness plus a database ping for readiness checks.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "ok"
		if db != nil {
			sqlDB, err := db.DB()
			if err != nil {
				dbStatus = "unreachable"
			} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
				dbStatus = "unreachable"
			}
		}

		code := http.StatusOK
		status := "ok"
		if dbStatus != "ok" {
			code = http.StatusServiceUnavailable
			status = "degraded"
		}

		response.Success(c, code, gin.H{"status": status, "database": dbStatus})
	}
}
