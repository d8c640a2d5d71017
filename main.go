package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"main/handler"
	"main/middleware"
	"main/model"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxRequestBody = 1 << 20 // 1 MiB

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"PORT",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()
}

func setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(maxRequestBody))

	todosRepo := repository.GetTodosRepo(utils.MongoClient)
	countersRepo := repository.GetCountersRepo(utils.MongoClient)
	userRepo := repository.GetUserRepo(utils.MongoClient)
	sessionRepo := repository.GetSessionRepo(utils.MongoClient)

	todoService := usecase.NewTodoService(todosRepo, countersRepo)
	statsService := usecase.NewStatsService(todosRepo)
	userService := usecase.NewUserService(userRepo, sessionRepo)
	adminService := usecase.NewAdminService(todosRepo, userRepo)

	todoHandler := handler.NewTodoHandler(todoService)
	statsHandler := handler.NewStatsHandler(statsService)
	authHandler := handler.NewAuthHandler(userService)
	adminHandler := handler.NewAdminHandler(adminService, todoService)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		account := protected.Group("/auth")
		{
			account.GET("/me", authHandler.Me)
			account.PUT("/profile", authHandler.UpdateProfile)
			account.GET("/sessions", authHandler.Sessions)
		}

		todos := protected.Group("/todos")
		{
			todos.GET("", todoHandler.ListTodos)
			todos.POST("", todoHandler.CreateTodo)
			todos.GET("/categories", todoHandler.GetCategories)
			todos.GET("/notifications", todoHandler.GetNotifications)
			todos.GET("/:id", todoHandler.GetTodo)
			todos.PUT("/:id", todoHandler.UpdateTodo)
			todos.PATCH("/:id/toggle", todoHandler.ToggleTodo)
			todos.DELETE("/:id", todoHandler.DeleteTodo)
		}

		stats := protected.Group("/stats")
		{
			stats.GET("/overview", statsHandler.GetOverview)
			stats.GET("/breakdown", statsHandler.GetBreakdown)
			stats.GET("/trend", statsHandler.GetTrend)
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.PATCH("/users/:id/role", adminHandler.UpdateUserRole)
			admin.GET("/stats", adminHandler.GetStats)
			admin.GET("/analytics", adminHandler.GetAnalytics)
			admin.GET("/todos", adminHandler.ListTodos)
			admin.PATCH("/todos/:id/toggle", adminHandler.ToggleTodo)
			admin.DELETE("/todos/:id", adminHandler.DeleteTodo)
		}
	}

	return router
}

func main() {
	if err := repository.SetupIndexes(utils.MongoClient); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go utils.StartSystemMetrics(ctx, 15*time.Second)

	// Background due-item watcher: checks once immediately, then on an
	// interval; each due todo toasts once per server session. The de-dup
	// set lives in redis when REDIS_URL is set, so a restart within the
	// TTL does not re-toast items already surfaced.
	todosRepo := repository.GetTodosRepo(utils.MongoClient)
	dedup := usecase.DedupStoreForSession(
		os.Getenv("REDIS_URL"),
		utils.GetEnvAsString("NOTIFIED_SESSION", "server"),
		utils.GetEnvAsDuration("NOTIFIED_TTL", 24*time.Hour),
	)
	poller := usecase.NewNotificationPoller(func(ctx context.Context) ([]*model.Todo, error) {
		return todosRepo.DueBefore(ctx, time.Now())
	}, dedup, usecase.LogToaster{})
	poller.Interval = utils.GetEnvAsDuration("NOTIFICATION_POLL_INTERVAL", time.Minute)
	go poller.Run(ctx)

	router := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := utils.MongoClient.Disconnect(shutdownCtx); err != nil {
		log.Printf("Mongo disconnect error: %v", err)
	}
	log.Println("Server shutdown complete")
}
