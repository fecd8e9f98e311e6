package server

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"tuiter/internal/config"
	"tuiter/internal/handler"
	"tuiter/internal/middleware"
	"tuiter/internal/repository"
	"tuiter/internal/search"
	"tuiter/internal/service"
	"tuiter/pkg/storage"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}

	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchSvc := search.NewMeiliSearchService(meiliClient)
	searchHandler := handler.NewSearchHandler(searchSvc)

	userRepo := repository.NewUserRepository(db)
	tuitRepo := repository.NewTuitRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	followRepo := repository.NewFollowRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	authSvc := service.NewAuthService(userRepo, redisClient, searchSvc, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := handler.NewAuthHandler(authSvc)

	userSvc := service.NewUserService(userRepo, searchSvc)
	userHandler := handler.NewUserHandler(userSvc)

	tuitSvc := service.NewTuitService(tuitRepo, userRepo, imageStorage, searchSvc)
	tuitHandler := handler.NewTuitHandler(tuitSvc)

	reactionSvc := service.NewReactionService(reactionRepo, redisClient)
	reactionHandler := handler.NewReactionHandler(reactionSvc)

	followSvc := service.NewFollowService(followRepo, userRepo)
	followHandler := handler.NewFollowHandler(followSvc)

	bookmarkSvc := service.NewBookmarkService(bookmarkRepo, tuitRepo)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkSvc)

	messageSvc := service.NewMessageService(messageRepo, userRepo, redisClient)
	messageHandler := handler.NewMessageHandler(messageSvc, redisClient)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.POST("/auth/profile", authHandler.Profile)

		// User routes
		protected.POST("/users", userHandler.CreateUser)
		protected.GET("/users", userHandler.GetAllUsers)
		protected.GET("/users/username/:username", userHandler.GetUserByUsername)
		protected.GET("/users/:uid", userHandler.GetUser)
		protected.PUT("/users/:uid", userHandler.UpdateUser)
		protected.DELETE("/users/:uid", userHandler.DeleteUser)

		// Tuit routes
		protected.GET("/tuits", tuitHandler.GetAllTuits)
		protected.GET("/tuits/:tid", tuitHandler.GetTuit)
		protected.PUT("/tuits/:tid", tuitHandler.UpdateTuit)
		protected.DELETE("/tuits/:tid", tuitHandler.DeleteTuit)
		protected.POST("/users/:uid/tuits", tuitHandler.CreateTuit)
		protected.GET("/users/:uid/tuits", tuitHandler.GetTuitsByUser)

		// Reaction routes
		protected.PUT("/users/:uid/likes/:tid", reactionHandler.ToggleLike)
		protected.PUT("/users/:uid/dislikes/:tid", reactionHandler.ToggleDislike)
		protected.GET("/users/:uid/likes", reactionHandler.GetTuitsLikedByUser)
		protected.GET("/users/:uid/dislikes", reactionHandler.GetTuitsDislikedByUser)
		protected.GET("/tuits/:tid/likes", reactionHandler.GetUsersWhoLiked)
		protected.GET("/tuits/:tid/dislikes", reactionHandler.GetUsersWhoDisliked)
		protected.GET("/tuits/:tid/likes/count", reactionHandler.CountLikes)
		protected.GET("/tuits/:tid/dislikes/count", reactionHandler.CountDislikes)

		// Follow routes
		protected.POST("/users/:uid/follows/:ouid", followHandler.Follow)
		protected.DELETE("/users/:uid/follows/:ouid", followHandler.Unfollow)
		protected.GET("/users/:uid/following", followHandler.GetFollowing)
		protected.GET("/users/:uid/followed", followHandler.GetFollowers)

		// Bookmark routes
		protected.POST("/users/:uid/bookmarks/:tid", bookmarkHandler.Bookmark)
		protected.DELETE("/users/:uid/bookmarks/:tid", bookmarkHandler.Unbookmark)
		protected.GET("/users/:uid/bookmarks", bookmarkHandler.GetBookmarks)

		// Message routes
		protected.POST("/users/:uid/messages/:ruid", messageHandler.SendMessage)
		protected.GET("/users/:uid/messages/:ruid", messageHandler.GetConversation)
		protected.GET("/users/:uid/messages", messageHandler.GetReceived)
		protected.GET("/users/:uid/messages/sent", messageHandler.GetSent)
		protected.GET("/users/:uid/messages/received", messageHandler.GetReceived)
		protected.DELETE("/messages/:mid", messageHandler.DeleteMessage)
		protected.GET("/messages/ws", messageHandler.HandleWebSocket)

		// Search
		protected.GET("/search", searchHandler.Search)
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

func setupCORS(router *gin.Engine, allowedOrigins string) {
	origins := []string{"http://localhost:3000"}
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
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
