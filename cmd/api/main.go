package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/taskdock/taskdock-go/internal/config"
	"github.com/taskdock/taskdock-go/internal/handler"
	"github.com/taskdock/taskdock-go/internal/middleware"
	"github.com/taskdock/taskdock-go/internal/repository"
	"github.com/taskdock/taskdock-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		slog.Warn("unique index bootstrap failed, registration uniqueness is best-effort", "error", err)
	}
	cancel()

	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	authHandler := handler.NewAuthHandler(authService)

	taskRepo := repository.NewTaskRepository(db)
	taskService := service.NewTaskService(taskRepo)
	taskHandler := handler.NewTaskHandler(taskService)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/registeruser", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))

		r.Get("/task", taskHandler.HandleListTasks)
		r.Get("/task/{id}", taskHandler.HandleGetTask)
		r.Post("/addtask", taskHandler.HandleAddTask)
		r.Put("/updatetask/{id}", taskHandler.HandleUpdateTask)
		r.Delete("/deletetask/{id}", taskHandler.HandleDeleteTask)
		r.Put("/markcompleted/{id}", taskHandler.HandleMarkCompleted)
		r.Put("/markincomplete/{id}", taskHandler.HandleMarkIncomplete)

		r.Get("/users", authHandler.HandleListUsers)
	})

	if _, err := os.Stat(cfg.StaticDir); err == nil {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
