package handlers

import (
	"net/http"

	"yatube/services"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) GroupList(c *gin.Context) {
	groups, err := h.svc.Groups.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (h *Handlers) GroupCreate(c *gin.Context) {
	var req services.GroupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	group, err := h.svc.Groups.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}
