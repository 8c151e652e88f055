package api

import (
	"github.com/gin-gonic/gin"

	"github.com/nebs-hr/noticeboard/internal/handlers"
)

func registerNoticeRoutes(api *gin.RouterGroup, handler *handlers.NoticeHandler) {
	group := api.Group("/notices")
	{
		group.POST("", handler.Create)
		group.GET("", handler.List)
		group.GET("/:id", handler.Get)
		group.PATCH("/:id", handler.Update)
		group.DELETE("/:id", handler.Delete)
	}
}
