package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"yatube/services"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 10 << 20

type postRequest struct {
	Text  string `json:"text"`
	Group *int64 `json:"group"`
}

// bindPost читает пост из JSON или из multipart-формы с картинкой в поле image
func bindPost(c *gin.Context) (services.PostInput, error) {
	var in services.PostInput
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var req postRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return in, err
		}
		return services.PostInput{Text: req.Text, GroupID: req.Group}, nil
	}

	in.Text = c.PostForm("text")
	if raw := strings.TrimSpace(c.PostForm("group")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return in, fmt.Errorf("invalid group: %w", err)
		}
		in.GroupID = &id
	}

	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil
	}
	if err != nil {
		return in, err
	}
	if fh.Size > maxImageSize {
		return in, fmt.Errorf("image is larger than %d bytes", maxImageSize)
	}
	f, err := fh.Open()
	if err != nil {
		return in, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxImageSize))
	if err != nil {
		return in, err
	}
	in.Image = &services.ImageUpload{Filename: fh.Filename, Data: data}
	return in, nil
}

func (h *Handlers) PostDetail(c *gin.Context) {
	postID, ok := paramID(c, "post_id")
	if !ok {
		return
	}
	view, err := h.svc.Feed.PostDetail(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handlers) PostCreate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	in, err := bindPost(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	post, err := h.svc.Posts.Create(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := h.svc.Feed.PostDetail(c.Request.Context(), post.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// PostEditForm отдает пост автору для редактирования
func (h *Handlers) PostEditForm(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := paramID(c, "post_id")
	if !ok {
		return
	}
	post, err := h.svc.Posts.Get(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	if post.AuthorID != userID {
		respondError(c, services.ErrForbidden)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post, "is_edit": true})
}

func (h *Handlers) PostEdit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := paramID(c, "post_id")
	if !ok {
		return
	}
	in, err := bindPost(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if _, err := h.svc.Posts.Edit(c.Request.Context(), userID, postID, in); err != nil {
		respondError(c, err)
		return
	}
	view, err := h.svc.Feed.PostDetail(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handlers) PostDelete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := paramID(c, "post_id")
	if !ok {
		return
	}
	if err := h.svc.Posts.Delete(c.Request.Context(), userID, postID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handlers) AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := paramID(c, "post_id")
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text" form:"text"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	comment, err := h.svc.Comments.Add(c.Request.Context(), userID, postID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
