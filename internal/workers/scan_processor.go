// internal/workers/scan_processor.go
package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/fridge-be/internal/adapters/storage"
	"github.com/ammerola/fridge-be/internal/core/domain"
	"github.com/ammerola/fridge-be/internal/core/ports"
)

const (
	TypeReceiptScan      = "scan:receipt"
	TypeCleanupTempFiles = "cleanup:temp_files"
)

// Scan job lifecycle states persisted in scan_jobs.status.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// ScanJobPayload represents the payload for receipt scan jobs
type ScanJobPayload struct {
	JobID    string `json:"job_id"`
	UID      string `json:"uid"`
	FilePath string `json:"file_path"`
}

// ScanJobResult represents the result of a completed scan
type ScanJobResult struct {
	ItemsAdded     int    `json:"items_added"`
	TotalItems     int    `json:"total_items"`
	ProcessingTime string `json:"processing_time"`
}

// NewScanTask builds the asynq task for a receipt scan job.
func NewScanTask(payload ScanJobPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scan payload: %w", err)
	}
	return asynq.NewTask(TypeReceiptScan, data), nil
}

// ScanProcessor turns uploaded receipts into fridge updates.
type ScanProcessor struct {
	scanner ports.ReceiptScanner
	service ports.FridgeService
	db      ports.Database
	archive storage.ReceiptStore // optional, nil disables archival
	logger  *slog.Logger
}

// NewScanProcessor creates a new scan processor
func NewScanProcessor(scanner ports.ReceiptScanner, service ports.FridgeService, db ports.Database, archive storage.ReceiptStore, logger *slog.Logger) *ScanProcessor {
	return &ScanProcessor{
		scanner: scanner,
		service: service,
		db:      db,
		archive: archive,
		logger:  logger.With(slog.String("processor", "scan")),
	}
}

// ProcessReceipt scans a receipt file, merges its items into the owning
// fridge, and records the outcome on the scan_jobs row. Scan and validation
// failures are permanent; store failures are returned to asynq for retry.
func (p *ScanProcessor) ProcessReceipt(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var payload ScanJobPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	p.logger.InfoContext(ctx, "processing receipt",
		slog.String("job_id", payload.JobID),
		slog.String("uid", payload.UID))

	_ = p.updateJobStatus(ctx, payload.JobID, StatusProcessing, nil)

	batch, err := p.scanner.Scan(ctx, payload.FilePath)
	if err != nil {
		return p.failJob(ctx, payload, fmt.Errorf("scan failed: %w", err))
	}

	report, err := p.service.Update(ctx, payload.UID, batch)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return p.failJob(ctx, payload, fmt.Errorf("scanned batch rejected: %w", err))
		}
		// Store outage: leave the job in processing and let asynq retry.
		return fmt.Errorf("update fridge %s: %w", payload.UID, err)
	}

	p.archiveReceipt(ctx, payload)
	p.cleanupTempFile(payload.FilePath)

	result := ScanJobResult{
		ItemsAdded:     report.ItemsAdded,
		TotalItems:     len(report.Inventory),
		ProcessingTime: time.Since(start).String(),
	}
	resultJSON, _ := json.Marshal(result)
	_ = p.updateJobResult(ctx, payload.JobID, StatusCompleted, resultJSON)

	p.logger.InfoContext(ctx, "receipt processed",
		slog.String("job_id", payload.JobID),
		slog.Int("items_added", result.ItemsAdded))

	return nil
}

// failJob marks the job failed and tells asynq not to retry. Bad input does
// not get better on the second attempt.
func (p *ScanProcessor) failJob(ctx context.Context, payload ScanJobPayload, cause error) error {
	msg := cause.Error()
	_ = p.updateJobStatus(ctx, payload.JobID, StatusFailed, &msg)
	p.cleanupTempFile(payload.FilePath)

	p.logger.WarnContext(ctx, "receipt scan failed permanently",
		slog.String("job_id", payload.JobID),
		"err", cause)

	return fmt.Errorf("%v: %w", cause, asynq.SkipRetry)
}

func (p *ScanProcessor) archiveReceipt(ctx context.Context, payload ScanJobPayload) {
	if p.archive == nil {
		return
	}

	data, err := os.ReadFile(payload.FilePath)
	if err != nil {
		p.logger.WarnContext(ctx, "failed to read receipt for archival",
			slog.String("file_path", payload.FilePath),
			"err", err)
		return
	}

	key := storage.ReceiptKey(payload.UID, payload.JobID)
	if _, err := p.archive.Upload(ctx, key, bytes.NewReader(data), "application/pdf"); err != nil {
		p.logger.WarnContext(ctx, "failed to archive receipt",
			slog.String("key", key),
			"err", err)
	}
}

func (p *ScanProcessor) cleanupTempFile(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}

func (p *ScanProcessor) updateJobStatus(ctx context.Context, jobID string, status string, errorMsg *string) error {
	query := `
		UPDATE scan_jobs
		SET status = $2, error = $3, updated_at = now()
		WHERE job_id = $1`

	_, err := p.db.Exec(ctx, query, jobID, status, errorMsg)
	if err != nil {
		p.logger.WarnContext(ctx, "failed to update scan job status",
			slog.String("job_id", jobID),
			slog.String("status", status),
			"err", err)
	}
	return err
}

func (p *ScanProcessor) updateJobResult(ctx context.Context, jobID string, status string, result json.RawMessage) error {
	query := `
		UPDATE scan_jobs
		SET status = $2, result = $3, updated_at = now()
		WHERE job_id = $1`

	_, err := p.db.Exec(ctx, query, jobID, status, result)
	if err != nil {
		p.logger.WarnContext(ctx, "failed to record scan job result",
			slog.String("job_id", jobID),
			"err", err)
	}
	return err
}

// CleanupProcessor removes stale files from the upload directory.
type CleanupProcessor struct {
	uploadDir string
	maxAge    time.Duration
	logger    *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(uploadDir string, maxAge time.Duration, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		uploadDir: uploadDir,
		maxAge:    maxAge,
		logger:    logger.With(slog.String("processor", "cleanup")),
	}
}

// ProcessCleanup deletes upload-dir files older than maxAge.
func (p *CleanupProcessor) ProcessCleanup(ctx context.Context, t *asynq.Task) error {
	entries, err := os.ReadDir(p.uploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read upload dir: %w", err)
	}

	cutoff := time.Now().Add(-p.maxAge)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(p.uploadDir + string(os.PathSeparator) + entry.Name()); err == nil {
				removed++
			}
		}
	}

	if removed > 0 {
		p.logger.InfoContext(ctx, "cleaned up stale uploads",
			slog.Int("removed", removed))
	}
	return nil
}
