// Package services - бизнес-логика: пользователи, группы, посты, подписки и ленты.
package services

import (
	"time"

	"yatube/cache"
	"yatube/storage"

	"gorm.io/gorm"
)

// Services - все сервисы приложения поверх одного подключения к БД
type Services struct {
	Users    *UserService
	Groups   *GroupService
	Posts    *PostService
	Comments *CommentService
	Follows  *FollowService
	Feed     *FeedService
}

type Options struct {
	Files     storage.Storage
	PageCache *cache.PageCache
	Notifier  FeedNotifier
	PageSize  int
	// Now - источник времени для дат публикации и комментариев
	Now func() time.Time
}

func New(orm *gorm.DB, opts Options) *Services {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	users := NewUserService(orm)
	groups := NewGroupService(orm)
	follows := NewFollowService(orm)
	comments := NewCommentService(orm, opts.Now)

	postOpts := []PostOption{WithClock(opts.Now)}
	if opts.Notifier != nil {
		postOpts = append(postOpts, WithNotifier(opts.Notifier))
	}
	if opts.PageSize > 0 {
		postOpts = append(postOpts, WithPageSize(opts.PageSize))
	}
	posts := NewPostService(orm, opts.Files, follows, postOpts...)

	return &Services{
		Users:    users,
		Groups:   groups,
		Posts:    posts,
		Comments: comments,
		Follows:  follows,
		Feed: &FeedService{
			posts:    posts,
			users:    users,
			groups:   groups,
			follows:  follows,
			comments: comments,
			files:    opts.Files,
			cache:    opts.PageCache,
		},
	}
}
