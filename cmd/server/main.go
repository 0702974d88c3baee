package main

import (
	"log"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/config"
	"github.com/BilalK61/saticim.com.tr-sub001/internal/database"
	"github.com/BilalK61/saticim.com.tr-sub001/internal/handlers"
	"github.com/BilalK61/saticim.com.tr-sub001/internal/middleware"
	"github.com/BilalK61/saticim.com.tr-sub001/internal/models"
	"github.com/BilalK61/saticim.com.tr-sub001/internal/services"
	"github.com/BilalK61/saticim.com.tr-sub001/internal/ws"

	_ "github.com/BilalK61/saticim.com.tr-sub001/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Saticim Marketplace API
// @version         1.0
// @description     Classifieds marketplace with moderation, notifications and a price-guessing game
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect(cfg)
	database.AutoMigrate(db)
	database.SeedLookups(db)

	hub := ws.NewHub()

	notificationService := services.NewNotificationService(db)
	authService := services.NewAuthService(db, cfg.JWTSecret, notificationService)
	lookupService := services.NewLookupService(db)
	listingService := services.NewListingService(db, hub)
	scoringService := services.NewScoringService()
	gameService := services.NewGameService(db, scoringService, lookupService)
	leaderboardService := services.NewLeaderboardService(db)
	userAdminService := services.NewUserAdminService(db, notificationService)
	chatService := services.NewChatService(cfg.ChatAPIKey, cfg.ChatAPIURL, cfg.ChatModel, listingService, lookupService)

	authHandler := handlers.NewAuthHandler(authService)
	listingHandler := handlers.NewListingHandler(listingService, notificationService)
	gameHandler := handlers.NewGameHandler(gameService, leaderboardService)
	userAdminHandler := handlers.NewUserAdminHandler(userAdminService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	chatHandler := handlers.NewChatHandler(chatService)
	lookupHandler := handlers.NewLookupHandler(lookupService)
	uploadHandler := handlers.NewUploadHandler(cfg.UploadDir)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Telemetry())

	r.Static("/uploads", cfg.UploadDir)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws/changes/:table", wsHandler.HandleChanges)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.JWTAuth(authService), authHandler.Me)
			auth.PUT("/password", middleware.JWTAuth(authService), authHandler.UpdatePassword)
		}

		listings := api.Group("/listings")
		{
			listings.GET("", listingHandler.Search)
			listings.GET("/mine", middleware.JWTAuth(authService), listingHandler.ListMine)
			listings.GET("/:id", listingHandler.Get)
			listings.POST("", middleware.JWTAuth(authService), listingHandler.Create)
			listings.PUT("/:id", middleware.JWTAuth(authService), listingHandler.Update)
			listings.DELETE("/:id", middleware.JWTAuth(authService), listingHandler.Delete)
		}

		upload := api.Group("/upload")
		upload.Use(middleware.JWTAuth(authService))
		{
			upload.POST("", uploadHandler.Upload)
		}

		game := api.Group("/game")
		game.Use(middleware.OptionalAuth(authService))
		{
			game.POST("/start", gameHandler.Start)
			game.POST("/guess", gameHandler.Guess)
			game.POST("/next", gameHandler.Next)
			game.POST("/again", gameHandler.PlayAgain)
			game.GET("/state", gameHandler.State)
			game.GET("/leaderboard", gameHandler.Leaderboard)
		}

		notifications := api.Group("/notifications")
		notifications.Use(middleware.JWTAuth(authService))
		{
			notifications.GET("", notificationHandler.List)
			notifications.GET("/unread", notificationHandler.UnreadCount)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.JWTAuth(authService), middleware.RequireRoles(models.RoleModerator, models.RoleAdmin))
		{
			admin.GET("/listings", listingHandler.ListByStatus)
			admin.POST("/listings/:id/approve", listingHandler.Approve)
			admin.POST("/listings/:id/reject", listingHandler.Reject)

			admin.GET("/users", userAdminHandler.List)
			admin.POST("/users/:id/role", userAdminHandler.ChangeRole)
			admin.POST("/users/role/confirm", userAdminHandler.ConfirmRoleChange)
			admin.DELETE("/users/role/:verification_id", userAdminHandler.CancelRoleChange)
			admin.POST("/users/:id/ban", userAdminHandler.Ban)
			admin.POST("/users/:id/unban", userAdminHandler.Unban)
			admin.DELETE("/users/:id", userAdminHandler.Delete)
		}

		api.POST("/chat", chatHandler.Chat)

		lookups := api.Group("/lookups")
		{
			lookups.GET("/categories", lookupHandler.Categories)
			lookups.GET("/cities", lookupHandler.Cities)
			lookups.GET("/districts", lookupHandler.Districts)
			lookups.GET("/neighborhoods", lookupHandler.Neighborhoods)
			lookups.GET("/vehicle-makes", lookupHandler.VehicleMakes)
			lookups.GET("/vehicle-models", lookupHandler.VehicleModels)
			lookups.GET("/phone-brands", lookupHandler.PhoneBrands)
			lookups.GET("/phone-models", lookupHandler.PhoneModels)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
