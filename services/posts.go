package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"yatube/db"
	"yatube/feed"
	"yatube/logger"
	"yatube/models"
	"yatube/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const imagePrefix = "posts/"

// растровые форматы; svg не принимается, файлы отдаются с того же origin
var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// ImageUpload - загруженный файл картинки
type ImageUpload struct {
	Filename string
	Data     []byte
}

// PostInput - данные формы поста. GroupID == nil - пост без группы.
type PostInput struct {
	Text    string       `json:"text"`
	GroupID *int64       `json:"group"`
	Image   *ImageUpload `json:"-"`
}

type PostService struct {
	orm       *gorm.DB
	files     storage.Storage
	follows   *FollowService
	notifier  FeedNotifier
	paginator feed.Paginator
	now       func() time.Time

	fanout sync.WaitGroup
}

type PostOption func(*PostService)

// WithClock подменяет источник времени публикации
func WithClock(now func() time.Time) PostOption {
	return func(s *PostService) { s.now = now }
}

func WithNotifier(n FeedNotifier) PostOption {
	return func(s *PostService) { s.notifier = n }
}

func WithPageSize(size int) PostOption {
	return func(s *PostService) { s.paginator = feed.NewPaginator(size) }
}

func NewPostService(orm *gorm.DB, files storage.Storage, follows *FollowService, opts ...PostOption) *PostService {
	s := &PostService{
		orm:       orm,
		files:     files,
		follows:   follows,
		paginator: feed.NewPaginator(feed.DefaultPageSize),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PostService) validate(ctx context.Context, in PostInput) (PostInput, error) {
	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		return in, ErrEmptyText
	}
	if in.GroupID != nil {
		var count int64
		if err := db.ReadOnly(ctx, s.orm).Model(&models.Group{}).Where("id = ?", *in.GroupID).Count(&count).Error; err != nil {
			return in, err
		}
		if count == 0 {
			return in, ErrGroupNotFound
		}
	}
	return in, nil
}

// saveImage проверяет содержимое и сохраняет его как posts/<имя файла>
func (s *PostService) saveImage(ctx context.Context, img *ImageUpload) (string, error) {
	if len(img.Data) == 0 {
		return "", ErrInvalidImage
	}
	if s.files == nil {
		return "", fmt.Errorf("media storage is not configured")
	}
	mt := mimetype.Detect(img.Data)
	if !mimetype.EqualsAny(mt.String(), allowedImageTypes...) {
		return "", ErrInvalidImage
	}

	name := path.Base(strings.ReplaceAll(img.Filename, "\\", "/"))
	if name == "" || name == "." || name == "/" {
		name = "image" + mt.Extension()
	}
	key := imagePrefix + name
	exists, err := s.files.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if exists {
		key = imagePrefix + uuid.NewString()[:8] + "_" + name
	}

	if err := s.files.Write(ctx, key, bytes.NewReader(img.Data), int64(len(img.Data)), mt.String()); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return key, nil
}

func (s *PostService) Create(ctx context.Context, authorID int64, in PostInput) (*models.Post, error) {
	in, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     in.Text,
		PubDate:  s.now().UTC(),
		AuthorID: authorID,
		GroupID:  in.GroupID,
	}
	if in.Image != nil {
		if post.Image, err = s.saveImage(ctx, in.Image); err != nil {
			return nil, err
		}
	}

	if err := db.Write(ctx, s.orm).Create(post).Error; err != nil {
		if post.Image != "" {
			_ = s.files.Delete(ctx, post.Image)
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	logger.Ctx(ctx).Info().
		Int64(logger.FieldPostID, post.ID).
		Int64(logger.FieldAuthor, authorID).
		Msg("post created")

	s.notifyFollowers(ctx, post)
	return post, nil
}

// notifyFollowers рассылает событие подписчикам в фоне
func (s *PostService) notifyFollowers(ctx context.Context, post *models.Post) {
	if s.notifier == nil || s.follows == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	s.fanout.Add(1)
	go func() {
		defer s.fanout.Done()
		l := logger.Ctx(ctx)

		ids, err := s.follows.FollowerIDs(ctx, post.AuthorID)
		if err != nil {
			l.Error().Err(err).Int64(logger.FieldPostID, post.ID).Msg("failed to load followers")
			return
		}
		for _, event := range newFeedEvents(post, ids) {
			if err := s.notifier.Publish(ctx, event); err != nil {
				l.Error().Err(err).Int64(logger.FieldUserID, event.UserID).Msg("failed to publish feed event")
			}
		}
	}()
}

// Wait дожидается завершения фоновых рассылок
func (s *PostService) Wait() {
	s.fanout.Wait()
}

func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := db.ReadOnly(ctx, s.orm).Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// getOwned возвращает пост, если его автор - userID
func (s *PostService) getOwned(ctx context.Context, userID, postID int64) (*models.Post, error) {
	var post models.Post
	err := db.Write(ctx, s.orm).First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, ErrForbidden
	}
	return &post, nil
}

// Edit меняет текст, группу и картинку. Без новой картинки старая сохраняется.
// Дата публикации не меняется.
func (s *PostService) Edit(ctx context.Context, userID, postID int64, in PostInput) (*models.Post, error) {
	post, err := s.getOwned(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if in, err = s.validate(ctx, in); err != nil {
		return nil, err
	}

	oldImage := post.Image
	newImage := ""
	if in.Image != nil {
		if newImage, err = s.saveImage(ctx, in.Image); err != nil {
			return nil, err
		}
		post.Image = newImage
	}
	post.Text = in.Text
	post.GroupID = in.GroupID

	err = db.Write(ctx, s.orm).Model(post).
		Select("text", "group_id", "image").
		Updates(map[string]interface{}{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error
	if err != nil {
		if newImage != "" {
			if derr := s.files.Delete(ctx, newImage); derr != nil {
				logger.Ctx(ctx).Warn().Err(derr).Str("image", newImage).Msg("failed to delete orphaned image")
			}
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	if oldImage != "" && oldImage != post.Image {
		if err := s.files.Delete(ctx, oldImage); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("image", oldImage).Msg("failed to delete replaced image")
		}
	}
	logger.Ctx(ctx).Info().Int64(logger.FieldPostID, post.ID).Msg("post edited")
	return s.Get(ctx, post.ID)
}

func (s *PostService) Delete(ctx context.Context, userID, postID int64) error {
	post, err := s.getOwned(ctx, userID, postID)
	if err != nil {
		return err
	}

	err = db.Write(ctx, s.orm).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, post.ID).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if post.Image != "" {
		if err := s.files.Delete(ctx, post.Image); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("image", post.Image).Msg("failed to delete image")
		}
	}
	logger.Ctx(ctx).Info().Int64(logger.FieldPostID, post.ID).Msg("post deleted")
	return nil
}

// Feed возвращает страницу ленты f. Номер страницы приводится к допустимому.
// Bounds считает границы страницы по текущему числу постов ленты
func (s *PostService) Bounds(ctx context.Context, f feed.Filter, page int) (feed.PageInfo, error) {
	var total int64
	if err := feed.Where(db.ReadOnly(ctx, s.orm).Model(&models.Post{}), f).Count(&total).Error; err != nil {
		return feed.PageInfo{}, fmt.Errorf("failed to count posts: %w", err)
	}
	return s.paginator.Bounds(total, page), nil
}

func (s *PostService) Feed(ctx context.Context, f feed.Filter, page int) (feed.Page[models.Post], error) {
	info, err := s.Bounds(ctx, f, page)
	if err != nil {
		return feed.Page[models.Post]{}, err
	}
	posts := make([]models.Post, 0, info.Limit)
	if info.Limit > 0 {
		err := db.ReadOnly(ctx, s.orm).Model(&models.Post{}).
			Scopes(feed.Scope(f)).
			Preload("Author").
			Preload("Group").
			Offset(info.Offset).
			Limit(info.Limit).
			Find(&posts).Error
		if err != nil {
			return feed.Page[models.Post]{}, fmt.Errorf("failed to load posts: %w", err)
		}
	}

	logger.Ctx(ctx).Debug().
		Str(logger.FieldFilter, f.String()).
		Int(logger.FieldPage, info.Number).
		Int("items", len(posts)).
		Msg("feed page composed")
	return feed.Page[models.Post]{Items: posts, PageInfo: info}, nil
}

func (s *PostService) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := db.ReadOnly(ctx, s.orm).Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}
