// Package processing runs extraction over uploaded documents, either on
// demand or from a background polling loop.
package processing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/qikCode/marithon-project/internal/config"
	"github.com/qikCode/marithon-project/internal/document"
	"github.com/qikCode/marithon-project/internal/extraction"
	"github.com/qikCode/marithon-project/internal/storage/sqlite"
	"github.com/qikCode/marithon-project/pkg/logger"
)

// Worker picks up unprocessed documents, runs the extraction pipeline and
// persists the results.
type Worker struct {
	ctx       context.Context
	cancel    context.CancelFunc
	documents *sqlite.DocumentStorage
	events    *sqlite.EventStorage
	extractor *extraction.Service
	files     *document.Processor
	logger    *logger.Logger
	config    config.ProcessingConfig
	interval  time.Duration
	wg        sync.WaitGroup
}

// NewWorker creates a new processing worker
func NewWorker(
	ctx context.Context,
	documents *sqlite.DocumentStorage,
	events *sqlite.EventStorage,
	extractor *extraction.Service,
	files *document.Processor,
	cfg config.ProcessingConfig,
	log *logger.Logger,
) *Worker {
	workerCtx, workerCancel := context.WithCancel(ctx)

	return &Worker{
		ctx:       workerCtx,
		cancel:    workerCancel,
		documents: documents,
		events:    events,
		extractor: extractor,
		files:     files,
		logger:    log.Named("processing"),
		config:    cfg,
		interval:  time.Duration(cfg.IntervalSeconds) * time.Second,
	}
}

// Start starts the background processing loop
func (w *Worker) Start() error {
	if !w.config.Enabled {
		w.logger.Info("Background processing is disabled, not starting")
		return nil
	}

	w.logger.Info("Starting processing loop",
		logger.Int("interval_seconds", w.config.IntervalSeconds),
		logger.Int("batch_size", w.config.BatchSize))

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				w.logger.Info("Processing loop stopped due to context cancellation")
				return
			case <-ticker.C:
				if err := w.ProcessNextBatch(); err != nil {
					w.logger.Error("Error processing batch", logger.Error(err))
				}
			}
		}
	}()
	return nil
}

// Stop stops the background processing loop
func (w *Worker) Stop() error {
	w.logger.Info("Stopping processing loop")
	w.cancel()
	w.wg.Wait()
	return nil
}

// ProcessNextBatch processes the next batch of unprocessed documents
func (w *Worker) ProcessNextBatch() error {
	records, err := w.documents.GetUnprocessed(w.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to get unprocessed documents: %w", err)
	}

	if len(records) == 0 {
		w.logger.Debug("No unprocessed documents found")
		return nil
	}

	w.logger.Debug("Processing batch of documents", logger.Int("count", len(records)))

	for _, record := range records {
		select {
		case <-w.ctx.Done():
			return nil
		default:
		}

		if _, err := w.ProcessDocument(record); err != nil {
			w.logger.Error("Failed to process document",
				logger.Int64("id", record.ID),
				logger.String("filename", record.Filename),
				logger.Error(err))
		}
	}

	return nil
}

// ProcessDocument runs extraction over one document and persists the events.
// Failures are recorded on the document so it is not retried forever.
func (w *Worker) ProcessDocument(record *sqlite.DocumentRecord) ([]extraction.Event, error) {
	if err := w.documents.UpdateStatus(record.ID, sqlite.StatusProcessing, ""); err != nil {
		return nil, fmt.Errorf("failed to mark document processing: %w", err)
	}

	text, err := w.files.ExtractText(record.StoredPath)
	if err != nil {
		w.markFailed(record.ID, err)
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	events := w.extractor.Extract(text)

	if err := w.events.StoreEvents(record.ID, events); err != nil {
		w.markFailed(record.ID, err)
		return nil, fmt.Errorf("failed to store events: %w", err)
	}

	if err := w.documents.SetProcessed(record.ID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to mark document processed: %w", err)
	}

	w.logger.Info("Processed document",
		logger.Int64("id", record.ID),
		logger.String("filename", record.Filename),
		logger.Int("events", len(events)))

	return events, nil
}

func (w *Worker) markFailed(id int64, cause error) {
	if err := w.documents.UpdateStatus(id, sqlite.StatusFailed, cause.Error()); err != nil {
		w.logger.Error("Failed to mark document as failed",
			logger.Int64("id", id),
			logger.Error(err))
	}
}
