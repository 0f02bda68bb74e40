package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/roomdesk/conference-booking-backend/internal/auth"
	"github.com/roomdesk/conference-booking-backend/internal/booking"
	bookingHttp "github.com/roomdesk/conference-booking-backend/internal/booking/http"
	"github.com/roomdesk/conference-booking-backend/internal/notice"
	noticeHttp "github.com/roomdesk/conference-booking-backend/internal/notice/http"
	"github.com/roomdesk/conference-booking-backend/internal/pkg/mw"
	"github.com/roomdesk/conference-booking-backend/internal/room"
	roomHttp "github.com/roomdesk/conference-booking-backend/internal/room/http"
	"github.com/roomdesk/conference-booking-backend/internal/user"
	userHttp "github.com/roomdesk/conference-booking-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UserService    user.Service
	RoomService    room.Service
	BookingService booking.Service
	NoticeService  notice.Service
	JWTManager     *auth.JWTManager
}

// NewRouter assembles middleware (CORS, rate limiting, auth) and registers
// routes for all modules under /v1.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:5173", // local frontend dev server
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 20 req/s with bursts of 40, per client IP.
	r.Use(mw.RateLimit(rate.Limit(20), 40))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := RequireAdmin(cfg.UserService)

	// The room listing is hot and read-mostly; cache responses briefly.
	roomListCache := gocache.New(10*time.Second, time.Minute)
	roomCacheMiddleware := mw.Cache(roomListCache, 10*time.Second)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	roomHandler := roomHttp.NewHandler(cfg.RoomService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.UserService)
	noticeHandler := noticeHttp.NewHandler(cfg.NoticeService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware, adminMiddleware, roomCacheMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
		noticeHttp.RegisterRoutes(v1, noticeHandler, authMiddleware, adminMiddleware)
	}

	return r
}
