package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"readiness/internal/analyzer"
	"readiness/internal/config"
	"readiness/internal/decoder"
	"readiness/internal/handler"
	"readiness/internal/port"
	"readiness/internal/repository/sqlstore"
	"readiness/internal/router"
	"readiness/internal/schema"
	"readiness/internal/service"
	"readiness/internal/storage/noop"
	s3storage "readiness/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	target, err := schema.Load(cfg.Schema.Path)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}
	log.Printf("Loaded schema %s v%s (%d fields)", target.Name(), target.Version(), target.Len())

	db, err := sqlstore.NewDB(&cfg.Storage, &cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	uploadRepo := sqlstore.NewUploadRepo(db)
	reportRepo := sqlstore.NewReportRepo(db)

	// Initialize storage
	var archive port.ObjectStorage
	if cfg.S3.Enabled {
		archive, err = s3storage.NewArchive(context.Background(), &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		log.Printf("Archiving uploads to s3://%s", cfg.S3.Bucket)
	} else {
		archive = noop.NewArchive()
	}

	// Initialize services
	engine := analyzer.New(target, cfg.Storage.Backend)
	uploadSvc := service.NewUploadService(uploadRepo, decoder.New(cfg.Upload.MaxRows), archive, &cfg.Upload, &cfg.S3)
	analysisSvc := service.NewAnalysisService(uploadRepo, reportRepo, engine)
	reportSvc := service.NewReportService(reportRepo, &cfg.Reports)

	// Setup router
	r := router.Setup(router.Handlers{
		Upload:   handler.NewUploadHandler(uploadSvc),
		Analysis: handler.NewAnalysisHandler(analysisSvc),
		Report:   handler.NewReportHandler(reportSvc),
		Schema:   handler.NewSchemaHandler(target),
		Health:   handler.NewHealthHandler(db),
	}, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (storage: %s)", cfg.Server.Port, cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("Server stopped")
	return nil
}
