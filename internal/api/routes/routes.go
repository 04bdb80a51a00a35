package routes

import (
	"fmt"
	"time"

	"study-archive-backend/internal/api/handlers"
	"study-archive-backend/internal/api/middleware"
	"study-archive-backend/internal/auth"
	"study-archive-backend/internal/config"
	"study-archive-backend/internal/kvstore"
	"study-archive-backend/internal/linkcheck"
	"study-archive-backend/internal/logger"
	"study-archive-backend/internal/repository"
	"study-archive-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application. kv may be nil,
// in which case directory operations report the store as unavailable.
func SetupRoutes(db *gorm.DB, kv kvstore.Store, cfg *config.Config) (*gin.Engine, error) {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := service.NewValidator()

	// Initialize repositories
	groupRepo := repository.NewGroupRepository(kv, cfg.GroupsKey)
	suggestionRepo := repository.NewSuggestionRepository(db)

	// Initialize services
	groupService := service.NewGroupService(groupRepo, validator)
	suggestionService := service.NewSuggestionService(suggestionRepo, groupRepo, validator)
	sweepService, err := NewSweepService(kv, cfg)
	if err != nil {
		return nil, err
	}

	authService, err := auth.NewAuthService(auth.NewAuthConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	authMiddleware := auth.NewAuthMiddleware(authService)
	if !authService.CronSecretRequired() {
		logger.New().Warn("CRON_SECRET is not set; the sweep trigger is unauthenticated")
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, kv)
	groupHandler := handlers.NewGroupHandler(groupService)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionService)
	cronHandler := handlers.NewCronHandler(sweepService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public API
	v1 := router.Group("/api/v1")
	{
		v1.GET("/groups", groupHandler.ListGroups)

		submit := []gin.HandlerFunc{}
		if cfg.SuggestionRatePerMinute > 0 {
			limiter := middleware.NewIPRateLimiter(cfg.SuggestionRatePerMinute, cfg.SuggestionRateBurst)
			submit = append(submit, middleware.RateLimit(limiter))
		}
		submit = append(submit, suggestionHandler.SubmitSuggestion)
		v1.POST("/suggestions", submit...)

		// Moderation routes require an admin token
		admin := v1.Group("/admin")
		admin.Use(authMiddleware.RequireAdmin())
		{
			groups := admin.Group("/groups")
			{
				groups.GET("", groupHandler.ListAllGroups)
				groups.POST("", groupHandler.CreateGroup)
				groups.PUT("/:id", groupHandler.UpdateGroup)
				groups.DELETE("/:id", groupHandler.DeleteGroup)
			}

			suggestions := admin.Group("/suggestions")
			{
				suggestions.GET("", suggestionHandler.ListSuggestions)
				suggestions.POST("/:id/approve", suggestionHandler.ApproveSuggestion)
				suggestions.DELETE("/:id", suggestionHandler.RejectSuggestion)
			}
		}
	}

	// Scheduled jobs
	cron := router.Group("/api/cron")
	cron.Use(authMiddleware.RequireCronSecret())
	{
		cron.GET("/check-groups", cronHandler.CheckGroups)
		cron.POST("/check-groups", cronHandler.CheckGroups)
	}

	return router, nil
}

// NewLinkChecker builds the link checker from configuration. Rules from
// LINKCHECK_RULES_FILE are merged over the built-in platform rules.
func NewLinkChecker(cfg *config.Config) (*linkcheck.Checker, error) {
	rules := linkcheck.DefaultRules()
	if cfg.LinkCheckRulesFile != "" {
		extra, err := linkcheck.LoadRules(cfg.LinkCheckRulesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load link check rules: %w", err)
		}
		rules = linkcheck.MergeRules(rules, extra)
	}

	return linkcheck.New(linkcheck.Config{
		Timeout:   time.Duration(cfg.LinkCheckTimeoutSec) * time.Second,
		UserAgent: cfg.LinkCheckUserAgent,
		Rules:     rules,
	}), nil
}

// NewSweepService wires the sweep job against the directory in kv
func NewSweepService(kv kvstore.Store, cfg *config.Config) (*service.SweepService, error) {
	checker, err := NewLinkChecker(cfg)
	if err != nil {
		return nil, err
	}

	groupRepo := repository.NewGroupRepository(kv, cfg.GroupsKey)
	delay := time.Duration(cfg.SweepDelayMS) * time.Millisecond
	return service.NewSweepService(groupRepo, checker, delay), nil
}
