package workers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/fridge-be/internal/core/domain"
	"github.com/ammerola/fridge-be/internal/workers"
	"github.com/ammerola/fridge-be/test/helpers"
	"github.com/ammerola/fridge-be/test/mocks"
)

func pgconnTag() pgconn.CommandTag {
	return pgconn.NewCommandTag("UPDATE 1")
}

func scanTask(t *testing.T, payload workers.ScanJobPayload) *asynq.Task {
	t.Helper()
	task, err := workers.NewScanTask(payload)
	require.NoError(t, err)
	return task
}

func tempReceipt(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "receipt.pdf")
	require.NoError(t, os.WriteFile(path, []byte("pdf bytes"), 0o600))
	return path
}

func TestScanProcessor_ProcessReceipt_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockScanner := mocks.NewMockReceiptScanner(ctrl)
	mockService := mocks.NewMockFridgeService(ctrl)
	mockDB := mocks.NewMockDatabase(ctrl)

	path := tempReceipt(t)
	batch := helpers.BatchOf(map[string][2]string{"milk": {"2", "3.50"}})

	mockScanner.EXPECT().Scan(gomock.Any(), path).Return(batch, nil)
	mockService.EXPECT().
		Update(gomock.Any(), "u1", batch).
		Return(&domain.UpdateReport{ItemsAdded: 1, Inventory: domain.Inventory{}}, nil)

	// One status transition to processing, then the completed result.
	mockDB.EXPECT().
		Exec(gomock.Any(), gomock.Any(), "job-1", workers.StatusProcessing, gomock.Any()).
		Return(pgconnTag(), nil)
	mockDB.EXPECT().
		Exec(gomock.Any(), gomock.Any(), "job-1", workers.StatusCompleted, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, args ...interface{}) (pgconn.CommandTag, error) {
			var result workers.ScanJobResult
			require.NoError(t, json.Unmarshal(args[2].(json.RawMessage), &result))
			assert.Equal(t, 1, result.ItemsAdded)
			return pgconnTag(), nil
		})

	p := workers.NewScanProcessor(mockScanner, mockService, mockDB, nil, helpers.TestLogger())
	err := p.ProcessReceipt(context.Background(), scanTask(t, workers.ScanJobPayload{
		JobID: "job-1", UID: "u1", FilePath: path,
	}))
	require.NoError(t, err)

	// Temp file removed after a successful run.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestScanProcessor_ProcessReceipt_ScanFailureIsPermanent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockScanner := mocks.NewMockReceiptScanner(ctrl)
	mockService := mocks.NewMockFridgeService(ctrl)
	mockDB := mocks.NewMockDatabase(ctrl)

	path := tempReceipt(t)

	mockScanner.EXPECT().
		Scan(gomock.Any(), path).
		Return(nil, &domain.ScanError{Kind: domain.ScanParseError, Path: path})

	mockDB.EXPECT().
		Exec(gomock.Any(), gomock.Any(), "job-2", workers.StatusProcessing, gomock.Any()).
		Return(pgconnTag(), nil)
	mockDB.EXPECT().
		Exec(gomock.Any(), gomock.Any(), "job-2", workers.StatusFailed, gomock.Any()).
		Return(pgconnTag(), nil)

	p := workers.NewScanProcessor(mockScanner, mockService, mockDB, nil, helpers.TestLogger())
	err := p.ProcessReceipt(context.Background(), scanTask(t, workers.ScanJobPayload{
		JobID: "job-2", UID: "u1", FilePath: path,
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestScanProcessor_ProcessReceipt_ValidationFailureIsPermanent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockScanner := mocks.NewMockReceiptScanner(ctrl)
	mockService := mocks.NewMockFridgeService(ctrl)
	mockDB := mocks.NewMockDatabase(ctrl)

	path := tempReceipt(t)
	batch := helpers.BatchOf(map[string][2]string{"milk": {"0", "3.50"}})

	mockScanner.EXPECT().Scan(gomock.Any(), path).Return(batch, nil)
	mockService.EXPECT().
		Update(gomock.Any(), "u1", batch).
		Return(nil, &domain.ValidationError{
			Kind: domain.ValidationNonPositiveQuantity, Item: "milk", Field: "quantity",
		})

	mockDB.EXPECT().
		Exec(gomock.Any(), gomock.Any(), "job-3", workers.StatusProcessing, gomock.Any()).
		Return(pgconnTag(), nil)
	mockDB.EXPECT().
		Exec(gomock.Any(), gomock.Any(), "job-3", workers.StatusFailed, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, args ...interface{}) (pgconn.CommandTag, error) {
			errMsg := args[2].(*string)
			require.NotNil(t, errMsg)
			assert.Contains(t, *errMsg, "quantity")
			return pgconnTag(), nil
		})

	p := workers.NewScanProcessor(mockScanner, mockService, mockDB, nil, helpers.TestLogger())
	err := p.ProcessReceipt(context.Background(), scanTask(t, workers.ScanJobPayload{
		JobID: "job-3", UID: "u1", FilePath: path,
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestScanProcessor_ProcessReceipt_StoreOutageRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockScanner := mocks.NewMockReceiptScanner(ctrl)
	mockService := mocks.NewMockFridgeService(ctrl)
	mockDB := mocks.NewMockDatabase(ctrl)

	path := tempReceipt(t)
	batch := helpers.BatchOf(map[string][2]string{"milk": {"2", "3.50"}})

	mockScanner.EXPECT().Scan(gomock.Any(), path).Return(batch, nil)
	mockService.EXPECT().
		Update(gomock.Any(), "u1", batch).
		Return(nil, fmt.Errorf("%w: connection refused", domain.ErrStoreUnavailable))

	mockDB.EXPECT().
		Exec(gomock.Any(), gomock.Any(), "job-4", workers.StatusProcessing, gomock.Any()).
		Return(pgconnTag(), nil)

	p := workers.NewScanProcessor(mockScanner, mockService, mockDB, nil, helpers.TestLogger())
	err := p.ProcessReceipt(context.Background(), scanTask(t, workers.ScanJobPayload{
		JobID: "job-4", UID: "u1", FilePath: path,
	}))
	require.Error(t, err)

	// Retryable: must not carry SkipRetry, and the file must survive.
	assert.False(t, errors.Is(err, asynq.SkipRetry))
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestScanProcessor_ProcessReceipt_BadPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := workers.NewScanProcessor(
		mocks.NewMockReceiptScanner(ctrl),
		mocks.NewMockFridgeService(ctrl),
		mocks.NewMockDatabase(ctrl),
		nil,
		helpers.TestLogger(),
	)

	err := p.ProcessReceipt(context.Background(), asynq.NewTask(workers.TypeReceiptScan, []byte("{broken")))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestCleanupProcessor_RemovesStaleFiles(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "stale.pdf")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o600))
	// Backdate the stale file past the cleanup cutoff.
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	fresh := filepath.Join(dir, "fresh.pdf")
	require.NoError(t, os.WriteFile(fresh, []byte("new"), 0o600))

	p := workers.NewCleanupProcessor(dir, 24*time.Hour, helpers.TestLogger())
	err := p.ProcessCleanup(context.Background(), asynq.NewTask(workers.TypeCleanupTempFiles, nil))
	require.NoError(t, err)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}
