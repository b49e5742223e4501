// Package feed отбирает посты для лент, упорядочивает их и режет на страницы.
package feed

import "fmt"

// Kind - вид фильтра ленты
type Kind int

const (
	KindAll Kind = iota
	KindGroup
	KindAuthor
	KindFollowed
)

// Filter - какие посты попадают в ленту. Значимо только поле, соответствующее Kind.
type Filter struct {
	Kind      Kind
	GroupSlug string
	UserID    int64
}

// All - все посты
func All() Filter {
	return Filter{Kind: KindAll}
}

// ByGroup - посты группы со слагом slug
func ByGroup(slug string) Filter {
	return Filter{Kind: KindGroup, GroupSlug: slug}
}

// ByAuthor - посты автора
func ByAuthor(authorID int64) Filter {
	return Filter{Kind: KindAuthor, UserID: authorID}
}

// ByFollowedAuthorsOf - посты авторов, на которых подписан userID
func ByFollowedAuthorsOf(userID int64) Filter {
	return Filter{Kind: KindFollowed, UserID: userID}
}

func (f Filter) String() string {
	switch f.Kind {
	case KindAll:
		return "all"
	case KindGroup:
		return "group:" + f.GroupSlug
	case KindAuthor:
		return fmt.Sprintf("author:%d", f.UserID)
	case KindFollowed:
		return fmt.Sprintf("followed:%d", f.UserID)
	default:
		return fmt.Sprintf("unknown(%d)", f.Kind)
	}
}
