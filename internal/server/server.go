package server

import (
	"log"
	"strings"
	"time"

	"anoa.com/magangmatch/internal/config"
	"anoa.com/magangmatch/internal/handler"
	"anoa.com/magangmatch/internal/middleware"
	"anoa.com/magangmatch/internal/model"
	"anoa.com/magangmatch/internal/repository"
	"anoa.com/magangmatch/internal/service"
	"anoa.com/magangmatch/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	resumeStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		// Resume upload degrades to unavailable; everything else still works.
		log.Printf("cloudinary storage unavailable: %v", err)
		resumeStorage = nil
	}

	// Initialize Meilisearch
	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchSvc := service.NewSearchService(meiliClient)

	// Repositories
	postingRepo := repository.NewPostingRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	chatRepo := repository.NewChatRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	notificationSvc := service.NewNotificationService(notificationRepo, redisClient, cfg.MessageDedupWindow)
	chatSvc := service.NewChatService(chatRepo, notificationSvc, redisClient)
	postingSvc := service.NewPostingService(postingRepo, searchSvc)
	profileSvc := service.NewProfileService(profileRepo, resumeStorage, cfg.CloudinaryUploadFolder)
	applicationSvc := service.NewApplicationService(applicationRepo, postingRepo, profileRepo, chatSvc, notificationSvc)

	// Handlers
	postingHandler := handler.NewPostingHandler(postingSvc, applicationSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	applicationHandler := handler.NewApplicationHandler(applicationSvc)
	chatHandler := handler.NewChatHandler(chatSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, redisClient)

	router := gin.New()

	setupCORS(router, cfg)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware()

	api := router.Group("/api")

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		companyOnly := authMiddleware.RequireRole(model.RoleCompany)
		candidateOnly := authMiddleware.RequireRole(model.RoleCandidate)

		// Posting routes
		protected.POST("/postings", companyOnly, postingHandler.CreatePosting)
		protected.GET("/postings", postingHandler.GetAllPostings)
		protected.GET("/postings/company", companyOnly, postingHandler.GetMyPostings)
		protected.GET("/postings/:id", postingHandler.GetPosting)
		protected.PUT("/postings/:id", companyOnly, postingHandler.UpdatePosting)
		protected.PUT("/postings/:id/lifecycle", companyOnly, postingHandler.SetLifecycle)
		protected.GET("/postings/:id/candidates", companyOnly, postingHandler.GetCandidates)
		protected.GET("/postings/:id/score", candidateOnly, postingHandler.GetScore)

		// Profile routes
		protected.GET("/profile/me", candidateOnly, profileHandler.GetCurrentProfile)
		protected.PUT("/profile", candidateOnly, profileHandler.UpdateProfile)
		protected.POST("/profile/resume", candidateOnly, profileHandler.UploadResume)

		// Application routes
		protected.POST("/applications", candidateOnly, applicationHandler.Apply)
		protected.GET("/applications/me", candidateOnly, applicationHandler.GetMyApplications)
		protected.PUT("/applications/status", companyOnly, applicationHandler.SetStatus)
		protected.DELETE("/applications", candidateOnly, applicationHandler.Withdraw)

		// Chat routes
		protected.GET("/chats", chatHandler.GetThreads)
		protected.GET("/chats/:id/messages", chatHandler.GetMessages)
		protected.POST("/chats/:id/messages", chatHandler.SendMessage)

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

func setupCORS(router *gin.Engine, cfg *config.Config) {
	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
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
