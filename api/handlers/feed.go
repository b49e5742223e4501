package handlers

import (
	"net/http"

	"yatube/api/middleware"
	"yatube/feed"

	"github.com/gin-gonic/gin"
)

// Index - главная лента, отдается из кеша страниц
func (h *Handlers) Index(c *gin.Context) {
	page := feed.ParsePageNumber(c.Query("page"))
	data, err := h.svc.Feed.IndexPage(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *Handlers) GroupPosts(c *gin.Context) {
	page := feed.ParsePageNumber(c.Query("page"))
	view, err := h.svc.Feed.GroupPage(c.Request.Context(), c.Param("slug"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handlers) Profile(c *gin.Context) {
	page := feed.ParsePageNumber(c.Query("page"))
	viewer := middleware.CurrentUserID(c)
	view, err := h.svc.Feed.ProfilePage(c.Request.Context(), c.Param("username"), viewer, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// FollowIndex - посты авторов, на которых подписан текущий пользователь
func (h *Handlers) FollowIndex(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page := feed.ParsePageNumber(c.Query("page"))
	view, err := h.svc.Feed.FollowPage(c.Request.Context(), userID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ClearCache сбрасывает кеш главной ленты
func (h *Handlers) ClearCache(c *gin.Context) {
	if err := h.svc.Feed.InvalidateIndex(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
