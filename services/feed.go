package services

import (
	"context"
	"encoding/json"
	"fmt"

	"yatube/cache"
	"yatube/feed"
	"yatube/models"
	"yatube/storage"

	"golang.org/x/sync/errgroup"
)

// IndexKey - ключ кеша страницы главной ленты
func IndexKey(page int) string {
	if page < 1 {
		page = 1
	}
	return fmt.Sprintf("index:%d", page)
}

// FeedService собирает страницы лент для API.
// Кешируется только главная лента; остальные строятся на каждый запрос.
type FeedService struct {
	posts    *PostService
	users    *UserService
	groups   *GroupService
	follows  *FollowService
	comments *CommentService
	files    storage.Storage
	cache    *cache.PageCache
}

// IndexPage возвращает готовый JSON страницы главной ленты.
// Пока запись в кеше жива, новые, измененные и удаленные посты на ответ не влияют.
// Ключ строится по номеру после приведения к границам ленты, поэтому номера
// за последней страницей делят одну запись.
func (s *FeedService) IndexPage(ctx context.Context, page int) ([]byte, error) {
	info, err := s.posts.Bounds(ctx, feed.All(), page)
	if err != nil {
		return nil, err
	}
	compute := func(ctx context.Context) ([]byte, error) {
		p, err := s.posts.Feed(ctx, feed.All(), info.Number)
		if err != nil {
			return nil, err
		}
		return json.Marshal(feedPageView(p, s.files))
	}
	if s.cache == nil {
		return compute(ctx)
	}
	return s.cache.GetOrCompute(ctx, IndexKey(info.Number), compute)
}

// InvalidateIndex сбрасывает все закешированные страницы главной ленты
func (s *FeedService) InvalidateIndex(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateAll(ctx)
}

func (s *FeedService) GroupPage(ctx context.Context, slug string, page int) (*GroupPageView, error) {
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	p, err := s.posts.Feed(ctx, feed.ByGroup(slug), page)
	if err != nil {
		return nil, err
	}
	return &GroupPageView{Group: groupView(*group), FeedPageView: feedPageView(p, s.files)}, nil
}

// ProfilePage - посты автора; viewerID == 0 для анонимного запроса
func (s *FeedService) ProfilePage(ctx context.Context, username string, viewerID int64, page int) (*ProfileView, error) {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	p, err := s.posts.Feed(ctx, feed.ByAuthor(author.ID), page)
	if err != nil {
		return nil, err
	}
	followers, followings, err := s.follows.Count(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{
		Author:       authorView(*author),
		PostCount:    p.TotalItems,
		Followers:    followers,
		Followings:   followings,
		FeedPageView: feedPageView(p, s.files),
	}
	if viewerID != 0 && viewerID != author.ID {
		if view.Following, err = s.follows.IsFollowing(ctx, viewerID, author.ID); err != nil {
			return nil, err
		}
	}
	return view, nil
}

// FollowPage - посты авторов, на которых подписан userID
func (s *FeedService) FollowPage(ctx context.Context, userID int64, page int) (*FeedPageView, error) {
	p, err := s.posts.Feed(ctx, feed.ByFollowedAuthorsOf(userID), page)
	if err != nil {
		return nil, err
	}
	view := feedPageView(p, s.files)
	return &view, nil
}

// PostDetail - пост, число постов автора и комментарии
func (s *FeedService) PostDetail(ctx context.Context, postID int64) (*PostDetailView, error) {
	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	var (
		count    int64
		comments []models.Comment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		count, err = s.posts.CountByAuthor(gctx, post.AuthorID)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.comments.ListForPost(gctx, post.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &PostDetailView{
		Post:            postView(*post, s.files),
		AuthorPostCount: count,
		Comments:        commentViews(comments),
	}, nil
}
