package processing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qikCode/marithon-project/internal/config"
	"github.com/qikCode/marithon-project/internal/document"
	"github.com/qikCode/marithon-project/internal/extraction"
	"github.com/qikCode/marithon-project/internal/storage/sqlite"
	"github.com/qikCode/marithon-project/pkg/logger"
)

type testEnv struct {
	worker    *Worker
	documents *sqlite.DocumentStorage
	events    *sqlite.EventStorage
	uploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.NewNop()
	docs := sqlite.NewDocumentStorage(db, log)
	events := sqlite.NewEventStorage(db, log)

	docsCfg := config.Default().Documents
	docsCfg.UploadDir = t.TempDir()
	files := document.NewProcessor(docsCfg, log)

	worker := NewWorker(
		context.Background(),
		docs,
		events,
		extraction.NewService(log),
		files,
		config.Default().Processing,
		log,
	)

	return &testEnv{worker: worker, documents: docs, events: events, uploadDir: docsCfg.UploadDir}
}

func (e *testEnv) storeDocument(t *testing.T, body string) *sqlite.DocumentRecord {
	t.Helper()

	path := filepath.Join(e.uploadDir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	record := &sqlite.DocumentRecord{
		Filename:   "doc.txt",
		StoredPath: path,
		SizeBytes:  int64(len(body)),
		SHA256:     "abc123",
		Status:     sqlite.StatusUploaded,
	}
	id, err := e.documents.StoreDocument(record)
	require.NoError(t, err)
	record.ID = id
	return record
}

func TestProcessDocument(t *testing.T) {
	env := newTestEnv(t)
	record := env.storeDocument(t, "Pilot embarked at 08:30. Loading commenced at 11:00.")

	events, err := env.worker.ProcessDocument(record)
	require.NoError(t, err)
	require.Len(t, events, 2)

	got, err := env.documents.GetDocument(record.ID)
	require.NoError(t, err)
	assert.Equal(t, sqlite.StatusProcessed, got.Status)
	assert.NotNil(t, got.ProcessedAt)

	stored, err := env.events.GetEventsByDocument(record.ID, "")
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	assert.Equal(t, extraction.EventPilot, stored[0].Type)
}

func TestProcessDocumentMissingFile(t *testing.T) {
	env := newTestEnv(t)
	record := env.storeDocument(t, "Pilot embarked at 08:30.")
	require.NoError(t, os.Remove(record.StoredPath))

	_, err := env.worker.ProcessDocument(record)
	require.Error(t, err)

	got, err := env.documents.GetDocument(record.ID)
	require.NoError(t, err)
	assert.Equal(t, sqlite.StatusFailed, got.Status)
	assert.NotEmpty(t, got.Error)
}

func TestProcessNextBatch(t *testing.T) {
	env := newTestEnv(t)
	env.storeDocument(t, "Vessel arrived at Singapore anchorage on 15/03/2024 at 06:45.")

	require.NoError(t, env.worker.ProcessNextBatch())

	unprocessed, err := env.documents.GetUnprocessed(10)
	require.NoError(t, err)
	assert.Empty(t, unprocessed)
}

func TestProcessNextBatchEmpty(t *testing.T) {
	env := newTestEnv(t)
	assert.NoError(t, env.worker.ProcessNextBatch())
}

func TestWorkerStartDisabled(t *testing.T) {
	env := newTestEnv(t)
	env.worker.config.Enabled = false

	require.NoError(t, env.worker.Start())
	assert.NoError(t, env.worker.Stop())
}

func TestProcessDocumentRewriteIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	record := env.storeDocument(t, "Pilot embarked at 08:30.")

	_, err := env.worker.ProcessDocument(record)
	require.NoError(t, err)
	_, err = env.worker.ProcessDocument(record)
	require.NoError(t, err)

	stored, err := env.events.GetEventsByDocument(record.ID, "")
	require.NoError(t, err)
	assert.Len(t, stored, 1, "reprocessing must not duplicate events")
}
