package models

import (
	"time"
)

const postTitleLen = 15

// Group - сообщество, к которому может относиться пост
type Group struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug        string `gorm:"size:50;uniqueIndex;not null" json:"slug"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
}

func (Group) TableName() string {
	return "post_groups"
}

func (g Group) String() string {
	return g.Title
}

// Post - запись пользователя. ID растет монотонно и служит порядковым номером создания.
type Post struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"index;not null" json:"pub_date"`
	AuthorID int64     `gorm:"index;not null" json:"author_id"`
	Author   User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	GroupID  *int64    `gorm:"index" json:"group_id,omitempty"`
	Group    *Group    `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Image    string    `gorm:"size:255" json:"image,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

// String возвращает первые 15 символов текста
func (p Post) String() string {
	r := []rune(p.Text)
	if len(r) > postTitleLen {
		return string(r[:postTitleLen])
	}
	return p.Text
}

// Comment - комментарий к посту, только добавление
type Comment struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID   int64     `gorm:"index;not null" json:"post_id"`
	Post     Post      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AuthorID int64     `gorm:"index;not null" json:"author_id"`
	Author   User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Created  time.Time `gorm:"index;not null" json:"created"`
}

func (Comment) TableName() string {
	return "comments"
}
