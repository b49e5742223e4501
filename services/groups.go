package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yatube/db"
	"yatube/models"

	"gorm.io/gorm"
)

type GroupInput struct {
	Slug        string `json:"slug" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type GroupService struct {
	orm *gorm.DB
}

func NewGroupService(orm *gorm.DB) *GroupService {
	return &GroupService{orm: orm}
}

func (s *GroupService) Create(ctx context.Context, in GroupInput) (*models.Group, error) {
	group := &models.Group{
		Slug:        strings.TrimSpace(in.Slug),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
	}
	if group.Slug == "" || group.Title == "" {
		return nil, ErrInvalidGroup
	}
	if err := db.Write(ctx, s.orm).Create(group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrGroupExists
		}
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

func (s *GroupService) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	err := db.ReadOnly(ctx, s.orm).Where("slug = ?", slug).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := db.ReadOnly(ctx, s.orm).Order("title").Find(&groups).Error
	return groups, err
}
