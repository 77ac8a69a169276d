package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eusluer/bosphorus-fellas-api/internal/config"
	"github.com/eusluer/bosphorus-fellas-api/internal/middleware"
	"github.com/eusluer/bosphorus-fellas-api/internal/models"
	"github.com/eusluer/bosphorus-fellas-api/internal/repository"
	"github.com/eusluer/bosphorus-fellas-api/internal/service"
	"github.com/eusluer/bosphorus-fellas-api/internal/storage"
)

type HandlerSet struct {
	log        zerolog.Logger
	cfg        *config.AppConfig
	db         *pgxpool.Pool
	cache      *redis.Client
	members    repository.MemberRepository
	auth       *service.AuthService
	membership *service.MembershipService
	content    *service.ContentService
	events     *service.EventService
	uploads    *service.UploadService
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	adminRepo := repository.NewAdminRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	sponsorRepo := repository.NewSponsorRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	eventRepo := repository.NewEventRepository(db)

	return HandlerSet{
		log:        log,
		cfg:        cfg,
		db:         db,
		cache:      cache,
		members:    memberRepo,
		auth:       service.NewAuthService(adminRepo, memberRepo, cache, cfg, log),
		membership: service.NewMembershipService(applicationRepo, memberRepo, cfg, log),
		content:    service.NewContentService(sponsorRepo, newsRepo, log),
		events:     service.NewEventService(eventRepo, log),
		uploads:    service.NewUploadService(store, cfg, log),
	}
}

// EventService exposes the event service for the background scheduler.
func (h HandlerSet) EventService() *service.EventService {
	return h.events
}

func (h HandlerSet) Register(router *gin.Engine) {
	router.GET("/health", h.Health)

	api := router.Group("/api")

	api.POST("/login", h.Login)
	api.POST("/applications", h.SubmitApplication)
	api.GET("/applications/:id", h.ApplicationStatus)
	api.GET("/landing/events", h.LandingEvents)

	authed := api.Group("")
	authed.Use(middleware.Auth(h.cfg, h.members))

	authed.GET("/profile", h.Profile)
	authed.PUT("/profile/password", h.ChangePassword)
	authed.POST("/uploads", h.Upload)
	authed.DELETE("/uploads", h.DeleteUpload)
	authed.GET("/sponsors", h.Sponsors)
	authed.GET("/news", h.News)
	authed.GET("/events", h.Events)

	memberOnly := authed.Group("")
	memberOnly.Use(middleware.RequireRole(models.RoleMember))
	memberOnly.PUT("/profile", h.UpdateProfile)
	memberOnly.POST("/events/join", h.JoinEvent)
	memberOnly.DELETE("/events/:id/leave", h.LeaveEvent)

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.GET("/applications", h.AdminApplications)
	admin.GET("/applications/:id", h.AdminApplicationDetail)
	admin.POST("/applications/decision", h.AdminApplicationDecision)
	admin.GET("/members", h.AdminMembers)
	admin.GET("/members/:id", h.AdminMemberDetail)
	admin.POST("/members/status", h.AdminMemberStatus)
	admin.POST("/sponsors", h.AdminCreateSponsor)
	admin.GET("/sponsors/:id", h.AdminSponsorDetail)
	admin.PUT("/sponsors/:id", h.AdminUpdateSponsor)
	admin.POST("/news", h.AdminCreateNews)
	admin.GET("/news/:id", h.AdminNewsDetail)
	admin.PUT("/news/:id", h.AdminUpdateNews)
	admin.POST("/events", h.AdminCreateEvent)
	admin.GET("/events/:id", h.AdminEventDetail)
	admin.PUT("/events/:id", h.AdminUpdateEvent)
	admin.GET("/events/:id/participants", h.AdminEventParticipants)
}
