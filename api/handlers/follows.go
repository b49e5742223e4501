package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) ProfileFollow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	author, err := h.svc.Users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.svc.Follows.Follow(c.Request.Context(), userID, author.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "following", "author": author.Username})
}

func (h *Handlers) ProfileUnfollow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	author, err := h.svc.Users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.svc.Follows.Unfollow(c.Request.Context(), userID, author.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unfollowed", "author": author.Username})
}
