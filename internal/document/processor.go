// Package document handles uploaded statement-of-facts files: validation,
// persistence to the upload directory, and plain-text extraction.
package document

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/qikCode/marithon-project/internal/config"
	"github.com/qikCode/marithon-project/pkg/logger"
)

// Processor validates and stores uploads and extracts their text content.
type Processor struct {
	cfg    config.DocumentsConfig
	logger *logger.Logger
}

// Upload describes a stored file, ready for database registration.
type Upload struct {
	Filename      string
	StoredPath    string
	SizeBytes     int64
	SHA256        string
	Text          string
	TextTruncated bool
}

func NewProcessor(cfg config.DocumentsConfig, log *logger.Logger) *Processor {
	return &Processor{
		cfg:    cfg,
		logger: log.Named("document"),
	}
}

// ValidateFilename rejects names with disallowed extensions or path
// components. The allow-list comparison is case-insensitive.
func (p *Processor) ValidateFilename(name string) error {
	base := filepath.Base(name)
	if base == "." || base == ".." || base == "" || base != name {
		return fmt.Errorf("invalid filename %q", name)
	}

	ext := strings.ToLower(filepath.Ext(base))
	for _, allowed := range p.cfg.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}
	return fmt.Errorf("file type %q not allowed", ext)
}

// SaveUpload streams the file to the upload directory under a generated name,
// hashing and extracting text as it goes. The reader is expected to already be
// size-capped by the HTTP layer; the cap here is a second line of defense.
func (p *Processor) SaveUpload(filename string, r io.Reader) (*Upload, error) {
	if err := p.ValidateFilename(filename); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(p.cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}

	stored := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(p.cfg.UploadDir, stored)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating upload file: %w", err)
	}
	defer f.Close()

	hash := sha256.New()
	limited := io.LimitReader(r, p.cfg.MaxUploadBytes+1)
	size, err := io.Copy(io.MultiWriter(f, hash), limited)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("writing upload: %w", err)
	}
	if size > p.cfg.MaxUploadBytes {
		os.Remove(path)
		return nil, fmt.Errorf("file exceeds %d bytes", p.cfg.MaxUploadBytes)
	}

	text, truncated, err := p.extractText(path)
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	p.logger.Info("Stored upload",
		logger.String("filename", filename),
		logger.String("stored", stored),
		logger.Int64("size_bytes", size))

	return &Upload{
		Filename:      filename,
		StoredPath:    path,
		SizeBytes:     size,
		SHA256:        hex.EncodeToString(hash.Sum(nil)),
		Text:          text,
		TextTruncated: truncated,
	}, nil
}

// ExtractText re-reads a previously stored file's text, applying the same
// character cap as ingestion.
func (p *Processor) ExtractText(path string) (string, error) {
	text, _, err := p.extractText(path)
	return text, err
}

func (p *Processor) extractText(path string) (string, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("reading document: %w", err)
	}
	if !utf8.Valid(raw) {
		return "", false, fmt.Errorf("document is not valid UTF-8 text")
	}

	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if p.cfg.MaxTextChars > 0 && len(text) > p.cfg.MaxTextChars {
		return truncateUTF8(text, p.cfg.MaxTextChars), true, nil
	}
	return text, false, nil
}

// truncateUTF8 cuts at the last rune boundary at or before n bytes.
func truncateUTF8(s string, n int) string {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// Remove deletes a stored file, tolerating one that is already gone.
func (p *Processor) Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
