package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"asistencia/internal/config"
	"asistencia/internal/email/noop"
	"asistencia/internal/email/ses"
	"asistencia/internal/handler"
	"asistencia/internal/pdfexport"
	"asistencia/internal/port"
	"asistencia/internal/repository/memory"
	"asistencia/internal/repository/postgres"
	"asistencia/internal/router"
	"asistencia/internal/service"
	s3storage "asistencia/internal/storage/s3"
)

const shutdownGrace = 10 * time.Second

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

	log.SetFlags(logFlags(cfg.Log))
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize stores and renderer
	store := memory.NewSheetStore()
	renderer := pdfexport.NewGenerator(pdfexport.Options{
		LogoPath: cfg.PDF.LogoPath,
		Compress: cfg.PDF.Compress,
		Author:   cfg.PDF.Author,
	})

	// Optional issued-document archive
	var archiveSvc service.ArchiveService
	if cfg.Archive.Enabled {
		db, svc, err := newArchive(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		archiveSvc = svc
		log.Printf("archive enabled (bucket=%s)", cfg.S3.Bucket)
	}

	// Initialize services
	sessionSvc := service.NewSessionService(cfg.Session)
	sheetSvc := service.NewSheetService(store, sessionSvc, renderer, archiveSvc, cfg.Import.MaxBytes())

	sweeper := service.NewSheetSweeper(store, service.SheetSweeperConfig{
		Interval:    cfg.Session.SweepInterval,
		IdleTimeout: cfg.Session.Expiry,
	})
	go sweeper.Start(ctx)

	// Initialize handlers
	sheetH := handler.NewSheetHandler(sheetSvc)
	adminH := handler.NewAdminHandler(archiveSvc)
	healthH := handler.NewHealthHandler(archiveSvc)

	// Setup router
	opts := router.Options{CORSOrigins: cfg.CORS.AllowedOrigins}
	if cfg.Archive.Enabled {
		opts.AdminKeyHash = cfg.Archive.AdminKeyHash
	}
	r := router.Setup(sessionSvc, sheetH, adminH, healthH, opts)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Printf("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// logFlags picks the standard logger flags. The plain format drops the
// timestamp for platforms that stamp log lines themselves.
func logFlags(cfg config.LogConfig) int {
	flags := log.LstdFlags
	if cfg.Format == "plain" {
		flags = 0
	}
	if cfg.Level == "debug" {
		flags |= log.Lshortfile
	}
	return flags
}

func newArchive(cfg *config.Config) (*sqlx.DB, service.ArchiveService, error) {
	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	var sender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		sender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		sender = noop.NewNoopSender()
	}

	repo := postgres.NewIssuedDocumentRepo(db)
	svc := service.NewArchiveService(repo, s3Client, sender, service.ArchiveConfig{
		Bucket:        cfg.S3.Bucket,
		PresignExpiry: cfg.S3.PresignExpiry,
		NotifyAddress: cfg.Archive.NotifyAddress,
	})
	return db, svc, nil
}
