package feed

import (
	"sort"

	"yatube/models"
)

// Snapshot - данные, по которым собирается лента в памяти
type Snapshot struct {
	Posts   []models.Post
	Groups  []models.Group
	Follows []models.Follow
}

// Newer сообщает, должен ли a стоять в ленте раньше b:
// сначала более поздняя дата публикации, при равенстве - более поздняя вставка.
func Newer(a, b models.Post) bool {
	if !a.PubDate.Equal(b.PubDate) {
		return a.PubDate.After(b.PubDate)
	}
	return a.ID > b.ID
}

// Compose возвращает посты, подходящие под фильтр, в порядке ленты.
// Входные срезы не изменяются. Неизвестная группа или автор дают пустую ленту.
func Compose(s Snapshot, f Filter) []models.Post {
	match := matcher(s, f)

	out := make([]models.Post, 0, len(s.Posts))
	for _, p := range s.Posts {
		if match(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return Newer(out[i], out[j])
	})
	return out
}

func matcher(s Snapshot, f Filter) func(models.Post) bool {
	switch f.Kind {
	case KindAll:
		return func(models.Post) bool { return true }

	case KindGroup:
		groupID, ok := int64(0), false
		for _, g := range s.Groups {
			if g.Slug == f.GroupSlug {
				groupID, ok = g.ID, true
				break
			}
		}
		if !ok {
			return func(models.Post) bool { return false }
		}
		return func(p models.Post) bool {
			return p.GroupID != nil && *p.GroupID == groupID
		}

	case KindAuthor:
		return func(p models.Post) bool { return p.AuthorID == f.UserID }

	case KindFollowed:
		authors := make(map[int64]struct{})
		for _, fl := range s.Follows {
			if fl.UserID == f.UserID {
				authors[fl.AuthorID] = struct{}{}
			}
		}
		return func(p models.Post) bool {
			_, ok := authors[p.AuthorID]
			return ok
		}
	}
	return func(models.Post) bool { return false }
}
