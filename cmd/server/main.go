package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fashionforward/psp-router/internal/catalog"
	"github.com/fashionforward/psp-router/internal/config"
	"github.com/fashionforward/psp-router/internal/engine"
	"github.com/fashionforward/psp-router/internal/handler"
	"github.com/fashionforward/psp-router/internal/middleware"
	"github.com/fashionforward/psp-router/internal/service"
	"github.com/fashionforward/psp-router/internal/simulator"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg := config.Load()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	setupRoutes(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func setupRoutes(router *gin.Engine) {
	cat := catalog.New()
	eng := engine.New(cat, simulator.New())

	routingSvc := service.NewRoutingService(eng)
	reportSvc := service.NewReportService(eng)

	authorizeHandler := handler.NewAuthorizeHandler(routingSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	healthHandler := handler.NewHealthHandler(cat)

	router.GET("/health", healthHandler.Health)

	api := router.Group("/api/v1")
	{
		api.POST("/authorize", authorizeHandler.Authorize)
		api.POST("/authorize/batch", authorizeHandler.AuthorizeBatch)
		api.POST("/reports/performance", reportHandler.GetReport)
	}
}
