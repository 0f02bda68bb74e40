package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes. Creating and reading own
// bookings requires any authenticated user; the full listing, status
// changes and statistics require an admin.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(authMiddleware)
	{
		group.POST("", h.Create)
		group.GET("/my", h.My)
		group.GET("/:id", h.Get)

		group.GET("", adminMiddleware, h.List)
		group.GET("/stats", adminMiddleware, h.Stats)
		group.PUT("/:id/status", adminMiddleware, h.UpdateStatus)
	}
}
