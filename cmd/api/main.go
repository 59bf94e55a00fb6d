package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/NavalhaLabs/navalha-agenda/internal/config"
	dbpkg "github.com/NavalhaLabs/navalha-agenda/internal/db"
	"github.com/NavalhaLabs/navalha-agenda/internal/logger"
	"github.com/NavalhaLabs/navalha-agenda/internal/middleware"
	"github.com/NavalhaLabs/navalha-agenda/internal/routes"
)

func main() {
	_ = godotenv.Load()

	logger.Init()
	defer logger.L().Sync()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	logger.L().Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.L().Fatal("failed to start server", zap.Error(err))
	}
}
