package server

import (
	"os"
	"strings"
	"time"

	"learnly.id/gamification/internal/middleware"

	achievementHttp "learnly.id/gamification/internal/modules/achievement/delivery/http"
	achievementRepo "learnly.id/gamification/internal/modules/achievement/repository"
	achievementService "learnly.id/gamification/internal/modules/achievement/service"

	authHttp "learnly.id/gamification/internal/modules/auth/delivery/http"
	authRepo "learnly.id/gamification/internal/modules/auth/repository"
	authService "learnly.id/gamification/internal/modules/auth/service"

	gamificationHttp "learnly.id/gamification/internal/modules/gamification/delivery/http"
	gamificationRepo "learnly.id/gamification/internal/modules/gamification/repository"
	gamificationService "learnly.id/gamification/internal/modules/gamification/service"

	leaderboardHttp "learnly.id/gamification/internal/modules/leaderboard/delivery/http"
	leaderboardRepo "learnly.id/gamification/internal/modules/leaderboard/repository"
	leaderboardService "learnly.id/gamification/internal/modules/leaderboard/service"

	notiHttp "learnly.id/gamification/internal/modules/notification/delivery/http"
	notifRepo "learnly.id/gamification/internal/modules/notification/repository"
	notifService "learnly.id/gamification/internal/modules/notification/service"

	searchService "learnly.id/gamification/internal/modules/search/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"learnly.id/gamification/internal/config"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	studentRepo := authRepo.NewStudentRepository(db)

	// Meilisearch is optional, everything search-related falls back to the
	// database when it is not reachable.
	var meiliSvc searchService.SearchService
	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	if cfg.MeiliMasterKey != "" {
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		meiliSvc = searchService.NewSearchService(meiliClient)
	}

	authSvc := authService.NewAuthService(studentRepo)
	authHandler := authHttp.NewAuthHandler(authSvc)

	// Notification Module
	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, redisClient)

	// Achievement catalog
	achievementRepository := achievementRepo.NewAchievementRepository(db)
	achievementSvc := achievementService.NewAchievementService(achievementRepository, meiliSvc)
	achievementHandler := achievementHttp.NewAchievementHandler(achievementSvc)

	// Gamification engine
	profileRepository := gamificationRepo.NewProfileRepository(db)
	gamificationSvc := gamificationService.NewGamificationService(profileRepository, achievementRepository, notificationSvc)
	gamificationHandler := gamificationHttp.NewGamificationHandler(gamificationSvc)

	// Leaderboards
	leaderboardRepository := leaderboardRepo.NewLeaderboardRepository(db)
	leaderboardSvc := leaderboardService.NewLeaderboardService(leaderboardRepository, profileRepository, notificationSvc, redisClient, cfg.LeaderboardRefresh)
	leaderboardHandler := leaderboardHttp.NewLeaderboardHandler(leaderboardSvc)

	leaderboardSvc.StartRefreshWorker(cfg.LeaderboardRefresh)

	router := gin.New()

	setupCORS(router)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(studentRepo)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	api.GET("/gamification/leaderboard", leaderboardHandler.GetLeaderboard)
	api.GET("/gamification/level/:level", gamificationHandler.GetLevelInfo)
	api.GET("/achievements", achievementHandler.List)
	api.GET("/achievements/:id", achievementHandler.GetByID)

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.POST("/achievements", achievementHandler.Create)
			adminGroup.PUT("/achievements/:id", achievementHandler.Update)
			adminGroup.DELETE("/achievements/:id", achievementHandler.Delete)
			adminGroup.POST("/award", gamificationHandler.AdminAwardPoints)
		}

		// Gamification routes
		protected.POST("/gamification/award", gamificationHandler.AwardPoints)
		protected.GET("/gamification/profile", gamificationHandler.GetProfile)
		protected.GET("/gamification/rank", leaderboardHandler.GetMyRank)
		protected.GET("/gamification/achievements/progress", gamificationHandler.GetAchievementsProgress)
		protected.GET("/gamification/statistics", gamificationHandler.GetStatistics)
		protected.GET("/gamification/streak", gamificationHandler.GetStreak)
		protected.GET("/gamification/activity", gamificationHandler.GetRecentActivity)
		protected.GET("/gamification/challenges/daily", gamificationHandler.GetDailyChallenges)
		protected.GET("/gamification/dashboard", gamificationHandler.GetDashboard)
		protected.PUT("/gamification/preferences", gamificationHandler.UpdatePreferences)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine) {
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
