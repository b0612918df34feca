package handlers

import (
	"io"
	"net/http"
	"strings"

	"treinai_backend/internal/logger"
	"treinai_backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// FileHandler streams stored objects back to the client. Only mounted
// for local storage; R2 serves its own public URLs.
type FileHandler struct {
	store storage.Storage
}

func NewFileHandler(store storage.Storage) *FileHandler {
	return &FileHandler{store: store}
}

func (h *FileHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/files/*filepath", h.Serve)
}

func (h *FileHandler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("filepath"), "/")
	if key == "" || strings.Contains(key, "..") {
		c.Status(http.StatusBadRequest)
		return
	}

	reader, err := h.store.Get(c.Request.Context(), key)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	defer reader.Close()

	if _, err := io.Copy(c.Writer, reader); err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to stream file", err, "key", key)
	}
}
