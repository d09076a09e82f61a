package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/qikCode/marithon-project/pkg/logger"
)

// StaticFileHandler serves the web UI from a directory, falling back to
// index.html for the root path.
type StaticFileHandler struct {
	dir    string
	fs     http.Handler
	logger *logger.Logger
}

// NewStaticFileHandler creates a new static file handler
func NewStaticFileHandler(dir string, log *logger.Logger) *StaticFileHandler {
	return &StaticFileHandler{
		dir:    dir,
		fs:     http.FileServer(http.Dir(dir)),
		logger: log.Named("static"),
	}
}

func (h *StaticFileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.URL.Path, "..") {
		http.NotFound(w, r)
		return
	}

	path := r.URL.Path
	if path == "/" {
		path = "/index.html"
	}

	if _, err := os.Stat(filepath.Join(h.dir, filepath.FromSlash(path))); err != nil {
		h.logger.Debug("Static file not found", logger.String("path", path))
		http.NotFound(w, r)
		return
	}

	h.fs.ServeHTTP(w, r)
}
