// internal/handlers/scan.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/fridge-be/internal/core/ports"
	"github.com/ammerola/fridge-be/internal/workers"
)

// ScanHandler accepts receipt uploads and exposes scan job status.
type ScanHandler struct {
	asynqClient *asynq.Client
	db          ports.Database
	logger      *slog.Logger
	maxFileSize int64
	uploadDir   string
}

// NewScanHandler creates a new scan handler
func NewScanHandler(asynqClient *asynq.Client, db ports.Database, logger *slog.Logger, maxFileSize int64, uploadDir string) *ScanHandler {
	return &ScanHandler{
		asynqClient: asynqClient,
		db:          db,
		logger:      logger.With(slog.String("handler", "scan")),
		maxFileSize: maxFileSize,
		uploadDir:   uploadDir,
	}
}

// CreateScan handles POST /api/v1/scans
func (h *ScanHandler) CreateScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		h.respondError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if header.Header.Get("Content-Type") != "application/pdf" {
		h.respondError(w, http.StatusBadRequest, "Only PDF receipts are allowed")
		return
	}

	uid := r.FormValue("uid")
	if uid == "" {
		h.respondError(w, http.StatusBadRequest, "uid is required")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.logger.ErrorContext(ctx, "failed to create upload directory", "err", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to prepare upload")
		return
	}

	jobID := uuid.New().String()
	tempFile := filepath.Join(h.uploadDir, fmt.Sprintf("%s_%s", jobID, filepath.Base(header.Filename)))
	dst, err := os.Create(tempFile)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create temp file", "err", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to save upload")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(tempFile)
		h.logger.ErrorContext(ctx, "failed to save file", "err", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to save upload")
		return
	}

	if err := h.createScanJob(ctx, jobID, uid, tempFile); err != nil {
		os.Remove(tempFile)
		h.logger.ErrorContext(ctx, "failed to create scan job record", "err", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create scan job")
		return
	}

	task, err := workers.NewScanTask(workers.ScanJobPayload{
		JobID:    jobID,
		UID:      uid,
		FilePath: tempFile,
	})
	if err != nil {
		os.Remove(tempFile)
		h.logger.ErrorContext(ctx, "failed to build scan task", "err", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to queue scan job")
		return
	}

	info, err := h.asynqClient.Enqueue(task,
		asynq.Queue("default"),
		asynq.MaxRetry(3),
		asynq.Retention(24*time.Hour))
	if err != nil {
		os.Remove(tempFile)
		h.logger.ErrorContext(ctx, "failed to enqueue scan task", "err", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to queue scan job")
		return
	}

	h.logger.InfoContext(ctx, "receipt scan queued",
		slog.String("job_id", jobID),
		slog.String("task_id", info.ID),
		slog.String("uid", uid))

	h.respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id":  jobID,
		"status":  workers.StatusPending,
		"message": "Receipt has been queued for scanning",
	})
}

// GetScan handles GET /api/v1/scans/{id}
func (h *ScanHandler) GetScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobID := r.PathValue("id")

	if _, err := uuid.Parse(jobID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid scan job ID format")
		return
	}

	status, err := h.getScanJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			h.respondError(w, http.StatusNotFound, "Scan job not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get scan job",
			slog.String("job_id", jobID),
			"err", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to get scan job")
		return
	}

	h.respondJSON(w, http.StatusOK, status)
}

func (h *ScanHandler) createScanJob(ctx context.Context, jobID, uid, filePath string) error {
	query := `
		INSERT INTO scan_jobs (job_id, uid, file_path, status)
		VALUES ($1, $2, $3, $4)`

	_, err := h.db.Exec(ctx, query, jobID, uid, filePath, workers.StatusPending)
	return err
}

// ScanJobStatus is the API shape of one scan_jobs row.
type ScanJobStatus struct {
	JobID     string          `json:"job_id"`
	UID       string          `json:"uid"`
	Status    string          `json:"status"`
	Error     *string         `json:"error,omitempty"`
	Result    json.RawMessage `json:"result,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (h *ScanHandler) getScanJob(ctx context.Context, jobID string) (*ScanJobStatus, error) {
	query := `
		SELECT job_id, uid, status, error, result, created_at, updated_at
		FROM scan_jobs
		WHERE job_id = $1`

	var status ScanJobStatus
	err := h.db.QueryRow(ctx, query, jobID).Scan(
		&status.JobID,
		&status.UID,
		&status.Status,
		&status.Error,
		&status.Result,
		&status.CreatedAt,
		&status.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (h *ScanHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *ScanHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
