package service

import (
	"context"
	"log"
	"sync"
	"time"

	"nebenscan/internal/port"
)

// ExtractQueueConfig holds settings for the extract queue worker.
type ExtractQueueConfig struct {
	PollInterval time.Duration
	MaxRetries   int
	Concurrency  int
}

// ExtractQueueWorker polls for queued bills and dispatches them for
// extraction.
type ExtractQueueWorker struct {
	billRepo        port.BillRepository
	analysisService AnalysisService
	cfg             ExtractQueueConfig
	wg              sync.WaitGroup
}

// NewExtractQueueWorker creates a new ExtractQueueWorker.
func NewExtractQueueWorker(billRepo port.BillRepository, analysisService AnalysisService, cfg ExtractQueueConfig) *ExtractQueueWorker {
	return &ExtractQueueWorker{
		billRepo:        billRepo,
		analysisService: analysisService,
		cfg:             cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight extractions have finished.
func (w *ExtractQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("extractQueueWorker: started (poll=%s, concurrency=%d, maxRetries=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxRetries)

	for {
		select {
		case <-ctx.Done():
			log.Printf("extractQueueWorker: shutting down, waiting for in-flight extractions...")
			w.wg.Wait()
			log.Printf("extractQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			bills, err := w.billRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					// Context canceled during poll, exit gracefully
					continue
				}
				log.Printf("extractQueueWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range bills {
				bill := bills[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight extractions complete even during shutdown.
					extractCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
					defer cancel()

					log.Printf("extractQueueWorker: dispatching bill %s (attempt %d)", bill.ID, bill.ExtractAttempts)
					w.analysisService.ExtractBill(extractCtx, &bill, w.cfg.MaxRetries)
				}()
			}
		}
	}
}
