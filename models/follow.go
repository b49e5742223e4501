package models

import "time"

// Follow - подписка UserID на посты автора AuthorID.
// Пара (user_id, author_id) уникальна.
type Follow struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"uniqueIndex:uidx_follow_pair;not null" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  int64     `gorm:"uniqueIndex:uidx_follow_pair;index;not null" json:"author_id"`
	Author    User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}
