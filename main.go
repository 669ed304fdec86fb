package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/CorrelAid/svg_converter/handlers"
	"github.com/CorrelAid/svg_converter/inits"
	"github.com/CorrelAid/svg_converter/middleware"
	"github.com/CorrelAid/svg_converter/models"
	"github.com/CorrelAid/svg_converter/operations"
	"github.com/CorrelAid/svg_converter/routines"
	"github.com/CorrelAid/svg_converter/vectorize"
	"github.com/gin-gonic/gin"
)

func main() {
	inits.LoadEnv(".env")

	cfg, err := inits.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("Error preparing scratch directory: %v", err)
	}

	db, err := inits.DBInit()
	if err != nil {
		log.Fatalf("Error creating scratch registry: %v", err)
	}
	scratch := operations.NewScratch(db, cfg.ScratchDir, cfg.ScratchTTL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go routines.StartCleanupRoutine(ctx, scratch, cfg.CleanupInterval)

	converter := vectorize.WithTimeout(vectorize.NewVTracer(cfg.VTracerPath), cfg.ConversionTimeout)
	h := handlers.NewConvertHandler(converter, scratch, models.DefaultConversionOptions(), cfg.MaxFileSize)

	router := gin.Default()
	// Set a lower memory limit for multipart forms (default is 32 MiB)
	router.MaxMultipartMemory = 8 << 20 // 8 MiB
	if len(cfg.AllowedHosts) > 0 {
		router.Use(middleware.DomainWhitelistMiddleware(cfg.AllowedHosts))
	}
	handlers.RegisterRoutes(router, h, middleware.RateLimitMiddleware(cfg.RateLimitPerMinute))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Image to Vector Converter listening: addr=%s scratch=%s", srv.Addr, cfg.ScratchDir)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
