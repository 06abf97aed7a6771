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

	"nebenscan/internal/analysis"
	"nebenscan/internal/config"
	"nebenscan/internal/email/noop"
	"nebenscan/internal/email/ses"
	"nebenscan/internal/extractor"
	"nebenscan/internal/extractor/openai"
	"nebenscan/internal/handler"
	"nebenscan/internal/payment/stripe"
	"nebenscan/internal/port"
	"nebenscan/internal/repository/postgres"
	"nebenscan/internal/router"
	"nebenscan/internal/service"
	s3storage "nebenscan/internal/storage/s3"
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

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	billRepo := postgres.NewBillRepo(db)
	itemRepo := postgres.NewLineItemRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize the vision extractor
	extractor.RegisterProvider("openai", func(cfg *config.ExtractorConfig) (port.BillExtractor, error) {
		return openai.NewExtractor(cfg), nil
	})
	billExtractor, err := extractor.NewExtractor(&cfg.Extractor)
	if err != nil {
		return fmt.Errorf("failed to initialize extractor: %w", err)
	}

	// Load the benchmark catalogue
	catalogue, err := loadCatalogue(&cfg.Analysis)
	if err != nil {
		return fmt.Errorf("failed to load benchmark catalogue: %w", err)
	}
	analyzer := analysis.NewAnalyzer(catalogue)

	// Initialize email delivery
	emailSender, err := newEmailSender(&cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize payment provider
	paymentProvider := stripe.NewClient(&cfg.Payment)

	// Initialize services
	billSvc := service.NewBillService(billRepo, s3Client, &cfg.S3)
	analysisSvc := service.NewAnalysisService(billRepo, itemRepo, s3Client, billExtractor, analyzer)
	reportSvc := service.NewReportService(billRepo, itemRepo)
	paymentSvc := service.NewPaymentService(billRepo, paymentProvider, emailSender)

	// Initialize handlers
	billH := handler.NewBillHandler(billSvc)
	analysisH := handler.NewAnalysisHandler(analysisSvc)
	reportH := handler.NewReportHandler(reportSvc)
	paymentH := handler.NewPaymentHandler(paymentSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(&cfg.CORS, billH, analysisH, reportH, paymentH, healthH)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the extraction queue worker
	worker := service.NewExtractQueueWorker(billRepo, analysisSvc, service.ExtractQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	// Wait for in-flight extractions to finish
	<-workerDone

	log.Println("Shutdown complete")
	return nil
}

func loadCatalogue(cfg *config.AnalysisConfig) (*analysis.Catalogue, error) {
	if cfg.BenchmarksPath != "" {
		log.Printf("Loading benchmark catalogue from %s", cfg.BenchmarksPath)
		return analysis.LoadCatalogueFile(cfg.BenchmarksPath)
	}
	return analysis.DefaultCatalogue()
}

func newEmailSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName, cfg.FrontendURL)
	default:
		return noop.NewNoopSender(cfg.FrontendURL), nil
	}
}
