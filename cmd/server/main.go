package main

import (
	"log"
	"net/http"

	_ "studenthub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"studenthub/internal/auth"
	"studenthub/internal/cache"
	"studenthub/internal/config"
	"studenthub/internal/db"
	"studenthub/internal/handler"
	"studenthub/internal/model"
	"studenthub/internal/repository"
	"studenthub/internal/router"
	"studenthub/internal/service"
)

// @title Student Hub API
// @version 1.0
// @description Student account backend with registration, JWT login, and profile CRUD.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, cacheClient)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	router.Register(e, cfg, authHandler, userHandler)

	log.Printf("Swagger documentation available at: %s", cfg.SwaggerURL())

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
