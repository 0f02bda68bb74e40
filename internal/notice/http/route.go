package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers notice routes. Listing is open to authenticated
// users; publishing and editing require an admin.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/notices")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)

		group.POST("", adminMiddleware, h.Create)
		group.PATCH("/:id", adminMiddleware, h.Update)
		group.DELETE("/:id", adminMiddleware, h.Delete)
	}
}
