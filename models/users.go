package models

import (
	"time"
)

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	FirstName string    `gorm:"size:150" json:"first_name"`
	LastName  string    `gorm:"size:150" json:"last_name"`
	Password  string    `gorm:"size:255" json:"-"`
	IsStaff   bool      `gorm:"default:false" json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// FullName возвращает имя для отображения, если оно задано, иначе username
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

type UserTokens struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"index" json:"user_id"`
	Token     string    `gorm:"size:255;uniqueIndex" json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserTokens) TableName() string {
	return "user_tokens"
}
