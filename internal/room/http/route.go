package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers room routes. Reads are open to any authenticated
// user; inventory management requires an admin. cacheMiddleware is applied
// to the listing only.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware, cacheMiddleware gin.HandlerFunc) {
	group := g.Group("/rooms")
	group.Use(authMiddleware)
	{
		group.GET("", cacheMiddleware, h.List)
		group.GET("/:id", h.Get)
		group.GET("/:id/photo", h.GetPhoto)

		group.POST("", adminMiddleware, h.Create)
		group.PATCH("/:id", adminMiddleware, h.Update)
		group.DELETE("/:id", adminMiddleware, h.Delete)
		group.POST("/:id/photo", adminMiddleware, h.UploadPhoto)
	}
}
