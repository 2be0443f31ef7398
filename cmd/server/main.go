package main

import (
	"log"

	"github.com/sloppysaint/mcqSurgery/internal/config"
	"github.com/sloppysaint/mcqSurgery/internal/database"
	"github.com/sloppysaint/mcqSurgery/internal/handlers"
	"github.com/sloppysaint/mcqSurgery/internal/jobs"
	"github.com/sloppysaint/mcqSurgery/internal/middleware"
	"github.com/sloppysaint/mcqSurgery/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title           mcqSurgery API
// @version         1.0
// @description     MCQ practice and mock test backend for surgical exam preparation
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	authService := services.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)
	mcqService := services.NewMCQService(db)
	scoringService := services.NewScoringService()
	testService := services.NewMockTestService(db, scoringService)
	subscriptionService := services.NewSubscriptionService(db)
	userService := services.NewUserService(db)
	discussionService := services.NewDiscussionService(db)

	authHandler := handlers.NewAuthHandler(authService)
	mcqHandler := handlers.NewMCQHandler(mcqService)
	testHandler := handlers.NewMockTestHandler(testService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	userHandler := handlers.NewUserHandler(userService)
	discussionHandler := handlers.NewDiscussionHandler(discussionService)

	scheduler := jobs.New(db)
	scheduler.Start()
	defer scheduler.Stop()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		mcqs := api.Group("/mcqs")
		{
			mcqs.GET("", middleware.OptionalAuth(authService), mcqHandler.ListMCQs)
			mcqs.POST("", middleware.Auth(authService), mcqHandler.CreateMCQ)
			mcqs.GET("/random", middleware.OptionalAuth(authService), mcqHandler.GetRandomMCQs)
			mcqs.GET("/bookmarked", middleware.Auth(authService), mcqHandler.GetBookmarkedMCQs)
			mcqs.GET("/:id", middleware.OptionalAuth(authService), mcqHandler.GetMCQ)
			mcqs.PUT("/:id", middleware.Auth(authService), mcqHandler.UpdateMCQ)
			mcqs.DELETE("/:id", middleware.Auth(authService), mcqHandler.DeleteMCQ)
			mcqs.POST("/:id/submit", middleware.Auth(authService), mcqHandler.SubmitAnswer)
			mcqs.POST("/:id/bookmark", middleware.Auth(authService), mcqHandler.BookmarkMCQ)
			mcqs.DELETE("/:id/bookmark", middleware.Auth(authService), mcqHandler.RemoveBookmark)
		}

		tests := api.Group("/mock-tests")
		{
			tests.GET("", middleware.OptionalAuth(authService), testHandler.ListMockTests)
			tests.POST("", middleware.Auth(authService), testHandler.CreateMockTest)
			tests.GET("/:id", middleware.OptionalAuth(authService), testHandler.GetMockTest)
			tests.PUT("/:id", middleware.Auth(authService), testHandler.UpdateMockTest)
			tests.DELETE("/:id", middleware.Auth(authService), testHandler.DeleteMockTest)
			tests.POST("/:id/start", middleware.Auth(authService), testHandler.StartMockTest)
			tests.POST("/:id/submit", middleware.Auth(authService), testHandler.SubmitMockTest)
			tests.GET("/:id/results", middleware.Auth(authService), testHandler.GetMockTestResults)
			tests.GET("/:id/leaderboard", testHandler.GetLeaderboard)
		}

		subscription := api.Group("/subscription")
		{
			subscription.GET("/plans", subscriptionHandler.GetPlans)
			subscription.GET("/status", middleware.Auth(authService), subscriptionHandler.GetStatus)
			subscription.POST("/subscribe", middleware.Auth(authService), subscriptionHandler.Subscribe)
			subscription.POST("/renew", middleware.Auth(authService), subscriptionHandler.Renew)
			subscription.POST("/cancel", middleware.Auth(authService), subscriptionHandler.Cancel)
		}

		user := api.Group("/user")
		user.Use(middleware.Auth(authService))
		{
			user.GET("/profile", userHandler.GetProfile)
			user.PUT("/profile", userHandler.UpdateProfile)
			user.GET("/dashboard", userHandler.GetDashboard)
			user.GET("/progress", userHandler.GetProgress)
			user.GET("/attempts", userHandler.GetAttempts)
			user.GET("/mock-test-history", userHandler.GetTestHistory)
		}

		discussion := api.Group("/discussion")
		{
			discussion.GET("", middleware.OptionalAuth(authService), discussionHandler.ListDiscussions)
			discussion.POST("", middleware.Auth(authService), discussionHandler.CreateDiscussion)
			discussion.GET("/groups", discussionHandler.GetGroupLinks)
			discussion.GET("/:id", middleware.OptionalAuth(authService), discussionHandler.GetDiscussion)
			discussion.PUT("/:id", middleware.Auth(authService), discussionHandler.UpdateDiscussion)
			discussion.DELETE("/:id", middleware.Auth(authService), discussionHandler.DeleteDiscussion)
			discussion.POST("/:id/reply", middleware.Auth(authService), discussionHandler.AddReply)
			discussion.POST("/:id/like", middleware.Auth(authService), discussionHandler.LikeDiscussion)
			discussion.DELETE("/:id/like", middleware.Auth(authService), discussionHandler.UnlikeDiscussion)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "success", "message": "ok"})
	})

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
