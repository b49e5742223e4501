package services

import (
	"time"

	"yatube/feed"
	"yatube/models"
	"yatube/storage"
)

type AuthorView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type GroupView struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type PostView struct {
	ID      int64      `json:"id"`
	Text    string     `json:"text"`
	PubDate time.Time  `json:"pub_date"`
	Author  AuthorView `json:"author"`
	Group   *GroupView `json:"group,omitempty"`
	Image   string     `json:"image,omitempty"`
}

type CommentView struct {
	ID      int64      `json:"id"`
	Text    string     `json:"text"`
	Created time.Time  `json:"created"`
	Author  AuthorView `json:"author"`
}

// FeedPageView - страница ленты в том виде, в каком ее отдает API
type FeedPageView struct {
	Posts []PostView    `json:"posts"`
	Page  feed.PageInfo `json:"page"`
}

type GroupPageView struct {
	Group GroupView `json:"group"`
	FeedPageView
}

type ProfileView struct {
	Author     AuthorView `json:"author"`
	PostCount  int64      `json:"post_count"`
	Followers  int64      `json:"followers"`
	Followings int64      `json:"followings"`
	// Following - подписан ли текущий пользователь на автора
	Following bool `json:"following"`
	FeedPageView
}

type PostDetailView struct {
	Post            PostView      `json:"post"`
	AuthorPostCount int64         `json:"author_post_count"`
	Comments        []CommentView `json:"comments"`
}

func authorView(u models.User) AuthorView {
	return AuthorView{ID: u.ID, Username: u.Username, FullName: u.FullName()}
}

func groupView(g models.Group) GroupView {
	return GroupView{ID: g.ID, Slug: g.Slug, Title: g.Title, Description: g.Description}
}

func postView(p models.Post, files storage.Storage) PostView {
	v := PostView{
		ID:      p.ID,
		Text:    p.Text,
		PubDate: p.PubDate,
		Author:  authorView(p.Author),
	}
	if p.Group != nil {
		g := groupView(*p.Group)
		g.Description = ""
		v.Group = &g
	}
	if p.Image != "" && files != nil {
		v.Image = files.URL(p.Image)
	}
	return v
}

func feedPageView(p feed.Page[models.Post], files storage.Storage) FeedPageView {
	posts := make([]PostView, 0, len(p.Items))
	for _, item := range p.Items {
		posts = append(posts, postView(item, files))
	}
	return FeedPageView{Posts: posts, Page: p.PageInfo}
}

func commentViews(comments []models.Comment) []CommentView {
	out := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentView{ID: c.ID, Text: c.Text, Created: c.Created, Author: authorView(c.Author)})
	}
	return out
}
