package feed

import (
	"yatube/models"

	"gorm.io/gorm"
)

// Scope - тот же отбор и порядок, что у Compose, но в виде условия gorm-запроса к posts
func Scope(f Filter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return Where(tx, f).Order("posts.pub_date DESC").Order("posts.id DESC")
	}
}

// Where добавляет только условие фильтра, без сортировки (для COUNT)
func Where(tx *gorm.DB, f Filter) *gorm.DB {
	sub := tx.Session(&gorm.Session{NewDB: true})

	switch f.Kind {
	case KindAll:
		return tx
	case KindGroup:
		return tx.Where("posts.group_id IN (?)",
			sub.Model(&models.Group{}).Select("id").Where("slug = ?", f.GroupSlug))
	case KindAuthor:
		return tx.Where("posts.author_id = ?", f.UserID)
	case KindFollowed:
		return tx.Where("posts.author_id IN (?)",
			sub.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", f.UserID))
	default:
		return tx.Where("1 = 0")
	}
}
