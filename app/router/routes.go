// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/app/handlers"
	"github.com/khabarhub/newsads/app/middleware"
	"github.com/khabarhub/newsads/config"
	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// Handlers bundles every handler the router mounts
type Handlers struct {
	Auth       handlers.AuthHandlerInterface
	News       handlers.NewsHandlerInterface
	PublicNews handlers.PublicNewsHandlerInterface
	PublicAds  handlers.PublicAdsHandlerInterface
	AdsAdmin   handlers.AdsAdminHandlerInterface
	Category   handlers.CategoryHandlerInterface
	Tag        handlers.TagHandlerInterface
	Media      handlers.MediaHandlerInterface
	User       handlers.UserHandlerInterface
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app       *fiber.App
	cfg       *config.ProductionConfig
	h         Handlers
	auth      *middleware.AuthMiddleware
	rateLimit *middleware.RateLimitMiddleware
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(cfg *config.ProductionConfig, h Handlers, auth *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) Router {
	app := fiber.New(fiber.Config{
		AppName:      "NewsAds API",
		ServerHeader: "newsads",
		ErrorHandler: errorHandler,
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:       app,
		cfg:       cfg,
		h:         h,
		auth:      auth,
		rateLimit: rateLimit,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	r.setupMiddleware()

	// Health and metrics sit outside the versioned API and rate limits
	r.app.Get("/health", r.healthCheck)
	if r.cfg.Metrics.Enabled {
		r.app.Get("/metrics", func(c fiber.Ctx) error {
			handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
			handler(c.RequestCtx())
			return nil
		})
	}

	api := r.app.Group("/api/v1")

	// Public content endpoints
	public := api.Group("/public")
	public.Use(r.rateLimit.Limit("public", utils.PublicRateLimit, utils.PublicRateLimitWindow))
	public.Get("/news", r.h.PublicNews.ListNews)
	public.Get("/news/:slug", r.h.PublicNews.GetNewsBySlug)
	public.Get("/categories", r.h.PublicNews.ListCategories)
	public.Get("/tags", r.h.PublicNews.ListTags)

	// Ad serving gets its own, larger budget: every page view hits it
	ads := api.Group("/public/ads")
	ads.Use(r.rateLimit.Limit("ads", utils.AdsRateLimit, utils.AdsRateLimitWindow))
	ads.Get("/:code", r.h.PublicAds.ResolveAd)

	// Auth endpoints
	auth := api.Group("/auth")
	auth.Post("/login",
		r.rateLimit.Limit("login", utils.LoginRateLimit, utils.LoginRateLimitWindow),
		r.h.Auth.Login)
	auth.Post("/logout", r.auth.Authenticate(), r.h.Auth.Logout)
	auth.Post("/password", r.auth.Authenticate(), r.h.Auth.ChangePassword)

	// Admin endpoints require authentication
	admin := api.Group("/admin", r.auth.Authenticate())

	news := admin.Group("/news")
	news.Post("/", r.h.News.CreateNews)
	news.Get("/", r.h.News.ListNews)
	news.Get("/:id", r.h.News.GetNews)
	news.Put("/:id", r.h.News.UpdateNews)
	news.Post("/:id/status", r.h.News.ChangeStatus)
	news.Delete("/:id", r.h.News.SoftDeleteNews)
	news.Post("/:id/restore", r.h.News.RestoreNews)
	news.Delete("/:id/purge", r.auth.RequireRole(models.UserRoleAdmin), r.h.News.HardDeleteNews)
	news.Get("/:id/history", r.h.News.GetHistory)

	categories := admin.Group("/categories", r.auth.RequireRole(models.UserRoleAdmin, models.UserRoleEditor))
	categories.Post("/", r.h.Category.CreateCategory)
	categories.Get("/", r.h.Category.ListCategories)
	categories.Get("/:id", r.h.Category.GetCategory)
	categories.Put("/:id", r.h.Category.UpdateCategory)
	categories.Delete("/:id", r.h.Category.DeleteCategory)

	tags := admin.Group("/tags", r.auth.RequireRole(models.UserRoleAdmin, models.UserRoleEditor))
	tags.Post("/", r.h.Tag.CreateTag)
	tags.Get("/", r.h.Tag.ListTags)
	tags.Put("/:id", r.h.Tag.UpdateTag)
	tags.Delete("/:id", r.h.Tag.DeleteTag)

	users := admin.Group("/users", r.auth.RequireRole(models.UserRoleAdmin))
	users.Post("/", r.h.User.CreateUser)
	users.Get("/", r.h.User.ListUsers)
	users.Post("/:id/active", r.h.User.SetUserActive)
	users.Delete("/:id", r.h.User.DeleteUser)

	media := admin.Group("/media")
	media.Post("/", r.h.Media.UploadMedia)
	media.Get("/", r.h.Media.ListMedia)
	media.Get("/:id", r.h.Media.GetMedia)
	media.Delete("/:id", r.h.Media.DeleteMedia)

	adsAdmin := admin.Group("/ads", r.auth.RequireRole(models.UserRoleAdmin, models.UserRoleEditor))
	adsAdmin.Post("/campaigns", r.h.AdsAdmin.CreateCampaign)
	adsAdmin.Get("/campaigns", r.h.AdsAdmin.ListCampaigns)
	adsAdmin.Get("/campaigns/:id", r.h.AdsAdmin.GetCampaign)
	adsAdmin.Put("/campaigns/:id", r.h.AdsAdmin.UpdateCampaign)
	adsAdmin.Post("/campaigns/:id/creatives", r.h.AdsAdmin.CreateCreative)
	adsAdmin.Get("/campaigns/:id/creatives", r.h.AdsAdmin.ListCreativesByCampaign)
	adsAdmin.Put("/creatives/:id", r.h.AdsAdmin.UpdateCreative)
	adsAdmin.Post("/placements", r.h.AdsAdmin.CreatePlacement)
	adsAdmin.Get("/placements", r.h.AdsAdmin.ListPlacements)
	adsAdmin.Put("/placements/:id", r.h.AdsAdmin.UpdatePlacement)
	adsAdmin.Get("/placements/:id/assignments", r.h.AdsAdmin.ListAssignmentsByPlacement)
	adsAdmin.Post("/assignments", r.h.AdsAdmin.CreateAssignment)
	adsAdmin.Put("/assignments/:id", r.h.AdsAdmin.UpdateAssignment)
	adsAdmin.Delete("/assignments/:id", r.h.AdsAdmin.DeleteAssignment)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	// Security headers middleware
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		XDNSPrefetchControl:   "off",
		XDownloadOptions:      "noopen",
		XPermittedCrossDomain: "none",
	}))

	// CORS middleware
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.cfg.Server.CORSAllowedOrigins,
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Requested-With",
			"X-Request-ID",
			"Cache-Control",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		AllowCredentials: true,
		MaxAge:           utils.CORSMaxAge,
	}))

	// Compression middleware for performance
	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		Next: func(c fiber.Ctx) bool {
			contentType := c.Get("Content-Type")
			return contains(contentType, "image/") ||
				contains(contentType, "video/") ||
				contains(contentType, "audio/")
		},
	}))

	// Prometheus metrics
	if r.cfg.Metrics.Enabled {
		r.app.Use(middleware.Metrics())
	}

	// Structured request logging
	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent}}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))

	// Recovery middleware with custom error handling
	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":    "ok",
			"timestamp": utils.UTCNow().Unix(),
			"service":   "newsads-api",
		},
	})
}

// notFoundHandler handles requests that matched no route
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	requestID := c.Locals("requestid")

	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestID,
			},
		},
	})
}

// errorHandler is the global fiber error handler
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error %d: %v", code, err)

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: "An error occurred while processing the request",
		Error: dto.ErrorDetail{
			Code: "INTERNAL_ERROR",
			Details: fiber.Map{
				"request_id": c.Locals("requestid"),
			},
		},
	})
}

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(bytes)
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
