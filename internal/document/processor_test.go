package document

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qikCode/marithon-project/internal/config"
	"github.com/qikCode/marithon-project/pkg/logger"
)

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	cfg := config.Default().Documents
	cfg.UploadDir = t.TempDir()
	return NewProcessor(cfg, logger.NewNop())
}

func TestValidateFilename(t *testing.T) {
	p := newTestProcessor(t)

	assert.NoError(t, p.ValidateFilename("sof_voyage_12.txt"))
	assert.NoError(t, p.ValidateFilename("PORT-CALL.SOF"))
	assert.Error(t, p.ValidateFilename("report.pdf"))
	assert.Error(t, p.ValidateFilename("noextension"))
	assert.Error(t, p.ValidateFilename("../escape.txt"))
	assert.Error(t, p.ValidateFilename("dir/nested.txt"))
	assert.Error(t, p.ValidateFilename(""))
}

func TestSaveUpload(t *testing.T) {
	p := newTestProcessor(t)

	body := "Vessel arrived at anchorage on 15/03/2024 at 06:45\r\nPilot embarked at 08:30\r\n"
	up, err := p.SaveUpload("voyage.txt", strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, "voyage.txt", up.Filename)
	assert.Equal(t, int64(len(body)), up.SizeBytes)
	assert.Len(t, up.SHA256, 64)
	assert.False(t, up.TextTruncated)
	assert.NotContains(t, up.Text, "\r", "line endings are normalized")
	assert.FileExists(t, up.StoredPath)
	assert.True(t, strings.HasSuffix(up.StoredPath, ".txt"))
}

func TestSaveUploadHashIsStable(t *testing.T) {
	p := newTestProcessor(t)

	a, err := p.SaveUpload("a.txt", strings.NewReader("same content at 06:45"))
	require.NoError(t, err)
	b, err := p.SaveUpload("b.txt", strings.NewReader("same content at 06:45"))
	require.NoError(t, err)

	assert.Equal(t, a.SHA256, b.SHA256)
	assert.NotEqual(t, a.StoredPath, b.StoredPath)
}

func TestSaveUploadSizeCap(t *testing.T) {
	cfg := config.Default().Documents
	cfg.UploadDir = t.TempDir()
	cfg.MaxUploadBytes = 16
	p := NewProcessor(cfg, logger.NewNop())

	_, err := p.SaveUpload("big.txt", strings.NewReader(strings.Repeat("x", 17)))
	require.Error(t, err)

	entries, err := os.ReadDir(cfg.UploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected upload must not leave a file behind")
}

func TestSaveUploadRejectsBinary(t *testing.T) {
	p := newTestProcessor(t)

	_, err := p.SaveUpload("binary.txt", strings.NewReader("\xff\xfe\x00garbage"))
	assert.Error(t, err)
}

func TestTextTruncation(t *testing.T) {
	cfg := config.Default().Documents
	cfg.UploadDir = t.TempDir()
	cfg.MaxTextChars = 10
	p := NewProcessor(cfg, logger.NewNop())

	up, err := p.SaveUpload("long.txt", strings.NewReader("0123456789abcdef"))
	require.NoError(t, err)
	assert.True(t, up.TextTruncated)
	assert.Equal(t, "0123456789", up.Text)
}

func TestRemoveTolerantOfMissing(t *testing.T) {
	p := newTestProcessor(t)

	up, err := p.SaveUpload("gone.txt", strings.NewReader("arrived at 06:45"))
	require.NoError(t, err)
	require.NoError(t, p.Remove(up.StoredPath))
	assert.NoError(t, p.Remove(up.StoredPath))
}
