package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/workcafe/workcafe-api/internal/config"
	dbpkg "github.com/workcafe/workcafe-api/internal/db"
	"github.com/workcafe/workcafe-api/internal/logging"
	"github.com/workcafe/workcafe-api/internal/middleware"
	"github.com/workcafe/workcafe-api/internal/routes"
)

func main() {

	logging.Setup()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
