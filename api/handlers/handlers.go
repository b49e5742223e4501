// Package handlers - gin-обработчики HTTP API.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"yatube/api/middleware"
	"yatube/logger"
	"yatube/services"
	"yatube/storage"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	svc   *services.Services
	files storage.Storage
	ws    *services.WSConnManager
}

func New(svc *services.Services, files storage.Storage, ws *services.WSConnManager) *Handlers {
	if ws == nil {
		ws = services.NewWSConnManager()
	}
	return &Handlers{svc: svc, files: files, ws: ws}
}

// respondError переводит ошибки сервисов в HTTP-коды
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrNotFollowing),
		errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrAlreadyFollowing),
		errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrGroupExists):
		status = http.StatusConflict
	case errors.Is(err, services.ErrSelfFollow),
		errors.Is(err, services.ErrEmptyText),
		errors.Is(err, services.ErrInvalidImage),
		errors.Is(err, services.ErrInvalidGroup):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		logger.Ctx(c.Request.Context()).Error().Err(err).Msg("request failed")
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

func currentUserID(c *gin.Context) (int64, bool) {
	id := middleware.CurrentUserID(c)
	if id == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return id, true
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
