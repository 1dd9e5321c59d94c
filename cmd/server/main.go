package main

import (
	"log"
	"strconv"
	"time"

	"vidquest/config"
	"vidquest/controllers"
	"vidquest/db"
	"vidquest/middlewares"
	"vidquest/routes"
	"vidquest/services"
	"vidquest/utils"
	"vidquest/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Sessions with no heartbeat for this long are abandoned tabs.
const staleSessionIdle = 5 * time.Minute
const staleSweepInterval = time.Minute

func main() {
	cfg, err := config.LoadConfig("./config/config.prod.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTConfig(cfg.JWT.Secret, cfg.JWT.ExpiryMinutes)

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	if err := db.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Printf("Redis unavailable, like fast path disabled: %v", err)
	}

	if err := services.InitGeminiService(cfg.Gemini.ApiKey); err != nil {
		log.Printf("Gemini unavailable, learning materials disabled: %v", err)
	}

	utils.PopulateTestUsers()

	controllers.InitControllers(db.NewStores(db.MongoDatabase))

	go sweepStaleSessions()

	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func sweepStaleSessions() {
	ticker := time.NewTicker(staleSweepInterval)
	defer ticker.Stop()
	for range ticker.C {
		controllers.SessionManager().SweepStale(staleSessionIdle)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	origins := cfg.CORS.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Public routes for authentication
	router.POST("/signup", routes.SignUpRouteHandler)
	router.POST("/login", routes.LoginRouteHandler)

	// Protected routes (JWT auth)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/actions", routes.ReportActionRouteHandler)

		auth.POST("/videos/:id/like", routes.LikeVideoRouteHandler)
		auth.GET("/videos/:id/like", routes.GetVideoLikeRouteHandler)
		auth.GET("/videos/:id/materials/:kind", routes.GetLearningMaterialRouteHandler)

		auth.POST("/watch/start", routes.StartWatchSessionRouteHandler)
		auth.POST("/watch/heartbeat", routes.WatchSessionHeartbeatRouteHandler)
		auth.POST("/watch/end", routes.EndWatchSessionRouteHandler)
		auth.POST("/watch/bonus", routes.ClaimWatchBonusRouteHandler)

		auth.GET("/progress", routes.GetProgressRouteHandler)
		auth.GET("/achievements", routes.GetAchievementsRouteHandler)
		auth.GET("/leaderboard", routes.GetLeaderboardRouteHandler)

		// Live gamification events (XP, level ups, achievement unlocks)
		auth.GET("/ws", websocket.GamificationWebSocketHandler)
	}

	return router
}
