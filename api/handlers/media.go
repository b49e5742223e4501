package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// Media отдает картинку из хранилища
func (h *Handlers) Media(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	rc, err := h.files.Read(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, mimetype.Detect(data).String(), data)
}
