package services

import (
	"context"
	"errors"
	"fmt"

	"yatube/db"
	"yatube/logger"
	"yatube/models"

	"gorm.io/gorm"
)

type FollowService struct {
	orm *gorm.DB
}

func NewFollowService(orm *gorm.DB) *FollowService {
	return &FollowService{orm: orm}
}

// Follow подписывает userID на authorID
func (s *FollowService) Follow(ctx context.Context, userID, authorID int64) error {
	if userID == authorID {
		return ErrSelfFollow
	}

	// проверяем, что автор существует
	var authorCount int64
	err := db.ReadOnly(ctx, s.orm).Model(&models.User{}).Where("id = ?", authorID).Count(&authorCount).Error
	if err != nil {
		return fmt.Errorf("error checking author: %w", err)
	}
	if authorCount == 0 {
		return ErrUserNotFound
	}

	ok, err := s.IsFollowing(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if ok {
		return ErrAlreadyFollowing
	}

	follow := &models.Follow{UserID: userID, AuthorID: authorID}
	if err := db.Write(ctx, s.orm).Create(follow).Error; err != nil {
		// гонка двух одинаковых запросов ловится уникальным индексом
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFollowing
		}
		return fmt.Errorf("failed to create follow: %w", err)
	}

	logger.Ctx(ctx).Info().
		Int64(logger.FieldUserID, userID).
		Int64(logger.FieldAuthor, authorID).
		Msg("follow created")
	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, userID, authorID int64) error {
	res := db.Write(ctx, s.orm).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete follow: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

func (s *FollowService) IsFollowing(ctx context.Context, userID, authorID int64) (bool, error) {
	var count int64
	err := db.ReadOnly(ctx, s.orm).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FollowerIDs - кто подписан на автора
func (s *FollowService) FollowerIDs(ctx context.Context, authorID int64) ([]int64, error) {
	var ids []int64
	err := db.ReadOnly(ctx, s.orm).Model(&models.Follow{}).
		Where("author_id = ?", authorID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get followers: %w", err)
	}
	return ids, nil
}

// Count возвращает число подписчиков автора и число его подписок
func (s *FollowService) Count(ctx context.Context, userID int64) (followers int64, following int64, err error) {
	q := db.ReadOnly(ctx, s.orm).Model(&models.Follow{})
	if err = q.Where("author_id = ?", userID).Count(&followers).Error; err != nil {
		return 0, 0, err
	}
	q = db.ReadOnly(ctx, s.orm).Model(&models.Follow{})
	if err = q.Where("user_id = ?", userID).Count(&following).Error; err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
