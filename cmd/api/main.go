package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/studiotrim/agenda-api/internal/config"
	"github.com/studiotrim/agenda-api/internal/db"
	"github.com/studiotrim/agenda-api/internal/logging"
	"github.com/studiotrim/agenda-api/internal/middleware"
	"github.com/studiotrim/agenda-api/internal/routes"
)

func main() {
	cfg := config.Load()

	log := logging.New(cfg.IsProduction())
	defer log.Sync()

	database := db.NewDB(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, database, cfg, log)

	log.Info("servidor iniciado", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("servidor encerrou com erro", zap.Error(err))
	}
}
