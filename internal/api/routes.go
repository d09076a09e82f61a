package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qikCode/marithon-project/internal/chat"
	"github.com/qikCode/marithon-project/internal/config"
	"github.com/qikCode/marithon-project/internal/document"
	"github.com/qikCode/marithon-project/internal/processing"
	"github.com/qikCode/marithon-project/internal/storage/sqlite"
	"github.com/qikCode/marithon-project/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(
	documents *sqlite.DocumentStorage,
	events *sqlite.EventStorage,
	files *document.Processor,
	worker *processing.Worker,
	chatService *chat.Service,
	cfg *config.Config,
	log *logger.Logger,
) *Router {
	return &Router{
		handler:    NewHandler(documents, events, files, worker, chatService, cfg, log),
		middleware: NewMiddleware(log),
		config:     cfg,
		logger:     log.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		// Document routes
		router.Post("/documents", r.handler.UploadDocument)
		router.Get("/documents", r.handler.ListDocuments)
		router.Get("/documents/{id}", r.handler.GetDocument)
		router.Delete("/documents/{id}", r.handler.DeleteDocument)
		router.Post("/documents/{id}/process", r.handler.ProcessDocument)

		// Event routes
		router.Get("/documents/{id}/events", r.handler.GetDocumentEvents)
		router.Get("/documents/{id}/summary", r.handler.GetDocumentSummary)
		router.Get("/documents/{id}/export", r.handler.ExportDocument)

		// Chat routes
		router.Post("/chat", r.handler.Chat)
		router.Get("/chat/history", r.handler.GetChatHistory)

		// Port lookup
		router.Get("/ports/{name}", r.handler.GetPort)

		// Health check
		router.Get("/health", r.handler.GetHealth)
	})

	// Serve static files from the configured directory
	staticHandler := NewStaticFileHandler(r.config.Server.StaticDir, r.logger)
	router.Handle("/*", staticHandler)

	return router
}
