package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"yatube/db"
	"yatube/logger"
	"yatube/models"

	"gorm.io/gorm"
)

type CommentService struct {
	orm *gorm.DB
	now func() time.Time
}

func NewCommentService(orm *gorm.DB, now func() time.Time) *CommentService {
	if now == nil {
		now = time.Now
	}
	return &CommentService{orm: orm, now: now}
}

// Add добавляет комментарий к существующему посту
func (s *CommentService) Add(ctx context.Context, authorID, postID int64, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	var count int64
	if err := db.ReadOnly(ctx, s.orm).Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrPostNotFound
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
		Created:  s.now().UTC(),
	}
	if err := db.Write(ctx, s.orm).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	logger.Ctx(ctx).Info().Int64(logger.FieldPostID, postID).Int64("comment_id", comment.ID).Msg("comment added")
	return comment, nil
}

// ListForPost - комментарии поста от старых к новым
func (s *CommentService) ListForPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := db.ReadOnly(ctx, s.orm).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created ASC").
		Order("id ASC").
		Find(&comments).Error
	return comments, err
}
