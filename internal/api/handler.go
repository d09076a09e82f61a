package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/qikCode/marithon-project/internal/chat"
	"github.com/qikCode/marithon-project/internal/config"
	"github.com/qikCode/marithon-project/internal/document"
	"github.com/qikCode/marithon-project/internal/export"
	"github.com/qikCode/marithon-project/internal/ports"
	"github.com/qikCode/marithon-project/internal/processing"
	"github.com/qikCode/marithon-project/internal/storage/sqlite"
	"github.com/qikCode/marithon-project/pkg/logger"
)

// Handler contains the HTTP handlers for the API
type Handler struct {
	documents *sqlite.DocumentStorage
	events    *sqlite.EventStorage
	files     *document.Processor
	worker    *processing.Worker
	chat      *chat.Service
	config    *config.Config
	logger    *logger.Logger
	startedAt time.Time
}

// NewHandler creates a new API handler
func NewHandler(
	documents *sqlite.DocumentStorage,
	events *sqlite.EventStorage,
	files *document.Processor,
	worker *processing.Worker,
	chatService *chat.Service,
	cfg *config.Config,
	log *logger.Logger,
) *Handler {
	return &Handler{
		documents: documents,
		events:    events,
		files:     files,
		worker:    worker,
		chat:      chatService,
		config:    cfg,
		logger:    log.Named("api-handler"),
		startedAt: time.Now().UTC(),
	}
}

// GetHealth returns service health information
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
	})
}

// UploadDocument accepts a multipart upload, stores the file and registers
// the document. Re-uploads of identical content return the existing record.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.Documents.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.config.Documents.MaxUploadBytes); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	upload, err := h.files.SaveUpload(header.Filename, file)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if existing, err := h.documents.GetDocumentBySHA256(upload.SHA256); err == nil && existing != nil {
		if rmErr := h.files.Remove(upload.StoredPath); rmErr != nil {
			h.logger.Warn("Failed to remove duplicate upload", logger.Error(rmErr))
		}
		h.logger.Info("Duplicate upload",
			logger.String("filename", upload.Filename),
			logger.Int64("existing_id", existing.ID))
		h.respondJSON(w, http.StatusOK, map[string]any{
			"document":  existing,
			"duplicate": true,
		})
		return
	}

	record := &sqlite.DocumentRecord{
		Filename:   upload.Filename,
		StoredPath: upload.StoredPath,
		SizeBytes:  upload.SizeBytes,
		SHA256:     upload.SHA256,
		Status:     sqlite.StatusUploaded,
		UploadedAt: time.Now().UTC(),
	}
	id, err := h.documents.StoreDocument(record)
	if err != nil {
		h.logger.Error("Failed to store document", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to store document")
		return
	}
	record.ID = id

	h.respondJSON(w, http.StatusCreated, map[string]any{
		"document":  record,
		"duplicate": false,
	})
}

// ListDocuments returns stored documents, newest first
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	if limit < 1 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	records, err := h.documents.ListDocuments(limit, offset)
	if err != nil {
		h.logger.Error("Failed to list documents", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"documents": records,
		"count":     len(records),
	})
}

// GetDocument returns one document by ID
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	record, ok := h.lookupDocument(w, r)
	if !ok {
		return
	}
	h.respondJSON(w, http.StatusOK, record)
}

// DeleteDocument removes a document, its events and its stored file
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	record, ok := h.lookupDocument(w, r)
	if !ok {
		return
	}

	if err := h.events.DeleteEventsByDocument(record.ID); err != nil {
		h.logger.Error("Failed to delete events", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to delete document")
		return
	}
	if err := h.documents.DeleteDocument(record.ID); err != nil {
		h.logger.Error("Failed to delete document", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to delete document")
		return
	}
	if err := h.files.Remove(record.StoredPath); err != nil {
		h.logger.Warn("Failed to remove stored file",
			logger.String("path", record.StoredPath),
			logger.Error(err))
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"deleted": record.ID})
}

// ProcessDocument runs extraction synchronously and returns the events
func (h *Handler) ProcessDocument(w http.ResponseWriter, r *http.Request) {
	record, ok := h.lookupDocument(w, r)
	if !ok {
		return
	}

	events, err := h.worker.ProcessDocument(record)
	if err != nil {
		h.logger.Error("Failed to process document",
			logger.Int64("id", record.ID),
			logger.Error(err))
		h.respondError(w, http.StatusUnprocessableEntity, "processing failed: "+err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"document_id": record.ID,
		"events":      events,
		"count":       len(events),
	})
}

// GetDocumentEvents returns a document's extracted events, optionally
// filtered with ?type=
func (h *Handler) GetDocumentEvents(w http.ResponseWriter, r *http.Request) {
	record, ok := h.lookupDocument(w, r)
	if !ok {
		return
	}

	eventType := r.URL.Query().Get("type")
	records, err := h.events.GetEventsByDocument(record.ID, eventType)
	if err != nil {
		h.logger.Error("Failed to load events", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to load events")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"document_id": record.ID,
		"events":      records,
		"count":       len(records),
	})
}

// GetDocumentSummary returns derived statistics for a document's events
func (h *Handler) GetDocumentSummary(w http.ResponseWriter, r *http.Request) {
	record, ok := h.lookupDocument(w, r)
	if !ok {
		return
	}

	records, err := h.events.GetEventsByDocument(record.ID, "")
	if err != nil {
		h.logger.Error("Failed to load events", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to load events")
		return
	}

	summary := chat.Summarize(records)
	h.respondJSON(w, http.StatusOK, map[string]any{
		"document_id":         record.ID,
		"status":              record.Status,
		"total_events":        summary.TotalEvents,
		"events_by_type":      summary.ByType,
		"avg_confidence":      summary.AvgConfidence,
		"loading_hours":       summary.LoadingHours,
		"weather_delay_hours": summary.WeatherDelayHours,
		"first_event":         summary.FirstStart,
		"last_event":          summary.LastStart,
	})
}

// ExportDocument streams the document's events as CSV or JSON
func (h *Handler) ExportDocument(w http.ResponseWriter, r *http.Request) {
	record, ok := h.lookupDocument(w, r)
	if !ok {
		return
	}

	records, err := h.events.GetEventsByDocument(record.ID, "")
	if err != nil {
		h.logger.Error("Failed to load events", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to load events")
		return
	}

	q := r.URL.Query()
	opts := export.Options{
		IncludeConfidence: queryBool(q.Get("confidence"), true),
		IncludeRemarks:    queryBool(q.Get("remarks"), true),
		IncludeMetadata:   queryBool(q.Get("metadata"), false),
	}

	switch q.Get("format") {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(record.Filename, "json")))
		if err := export.WriteJSON(w, record, records, opts); err != nil {
			h.logger.Error("JSON export failed", logger.Error(err))
		}
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(record.Filename, "csv")))
		if err := export.WriteCSV(w, record, records, opts); err != nil {
			h.logger.Error("CSV export failed", logger.Error(err))
		}
	default:
		h.respondError(w, http.StatusBadRequest, "unsupported format, want csv or json")
	}
}

// chatRequest is the POST /chat payload
type chatRequest struct {
	DocumentID int64  `json:"document_id"`
	Message    string `json:"message"`
}

// Chat answers a question about a document's events
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" {
		h.respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	response, err := h.chat.Respond(req.DocumentID, req.Message)
	if err != nil {
		h.logger.Error("Chat failed", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to generate response")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"document_id": req.DocumentID,
		"response":    response,
	})
}

// GetChatHistory returns retained chat exchanges, oldest first
func (h *Handler) GetChatHistory(w http.ResponseWriter, r *http.Request) {
	history := h.chat.History()
	h.respondJSON(w, http.StatusOK, map[string]any{
		"exchanges": history,
		"count":     len(history),
	})
}

// GetPort returns registry information for a port name
func (h *Handler) GetPort(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	port := ports.Lookup(name)
	h.respondJSON(w, http.StatusOK, map[string]any{
		"port":  port,
		"known": ports.Known(name),
	})
}

// lookupDocument resolves the {id} URL parameter to a stored document,
// writing the error response itself when it cannot.
func (h *Handler) lookupDocument(w http.ResponseWriter, r *http.Request) (*sqlite.DocumentRecord, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid document id")
		return nil, false
	}

	record, err := h.documents.GetDocument(id)
	if err != nil {
		h.logger.Error("Failed to load document", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to load document")
		return nil, false
	}
	if record == nil {
		h.respondError(w, http.StatusNotFound, "document not found")
		return nil, false
	}
	return record, true
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func queryBool(v string, fallback bool) bool {
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func exportFilename(original, ext string) string {
	base := original
	if i := len(base) - len(".txt"); i > 0 && (base[i:] == ".txt" || base[i:] == ".sof") {
		base = base[:i]
	}
	return base + "_events." + ext
}
