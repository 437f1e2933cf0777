package main

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/c14220110/klinik-apotek-backend/config"
	"github.com/c14220110/klinik-apotek-backend/internal/common/middlewares"
	"github.com/c14220110/klinik-apotek-backend/internal/routes"
	"github.com/c14220110/klinik-apotek-backend/pkg/logger"
	"github.com/c14220110/klinik-apotek-backend/pkg/storage/mariadb"
)

func main() {
	cfg := config.LoadConfig()
	log := logger.New(cfg.LogLevel)
	db := mariadb.Connect()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middlewares.RequestLogger(log))

	routes.Init(e, db, log)

	log.Info().Str("port", cfg.Port).Msg("server klinik-apotek berjalan")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server berhenti")
	}
}
