package feed

import (
	"testing"
	"time"

	"yatube/models"

	"github.com/stretchr/testify/require"
)

var base = time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC)

func groupID(id int64) *int64 { return &id }

func ids(posts []models.Post) []int64 {
	out := make([]int64, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func fixture() Snapshot {
	return Snapshot{
		Groups: []models.Group{{ID: 1, Slug: "cats"}, {ID: 2, Slug: "dogs"}},
		Posts: []models.Post{
			{ID: 1, AuthorID: 10, GroupID: groupID(1), PubDate: base},
			{ID: 2, AuthorID: 11, GroupID: groupID(2), PubDate: base.Add(time.Minute)},
			{ID: 3, AuthorID: 10, PubDate: base.Add(2 * time.Minute)},
			// одинаковая дата - выше тот, кто вставлен позже
			{ID: 4, AuthorID: 12, GroupID: groupID(1), PubDate: base.Add(2 * time.Minute)},
			{ID: 5, AuthorID: 11, GroupID: groupID(1), PubDate: base.Add(-time.Hour)},
		},
		Follows: []models.Follow{
			{UserID: 20, AuthorID: 10},
			{UserID: 20, AuthorID: 12},
			{UserID: 21, AuthorID: 11},
		},
	}
}

func TestComposeAllOrdering(t *testing.T) {
	got := Compose(fixture(), All())
	require.Equal(t, []int64{4, 3, 2, 1, 5}, ids(got))
	for i := 1; i < len(got); i++ {
		require.True(t, Newer(got[i-1], got[i]), "posts %d and %d out of order", got[i-1].ID, got[i].ID)
	}
}

func TestComposeFilters(t *testing.T) {
	s := fixture()
	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{"group", ByGroup("cats"), []int64{4, 1, 5}},
		{"other group", ByGroup("dogs"), []int64{2}},
		{"unknown group", ByGroup("birds"), []int64{}},
		{"author", ByAuthor(10), []int64{3, 1}},
		{"unknown author", ByAuthor(999), []int64{}},
		{"followed", ByFollowedAuthorsOf(20), []int64{4, 3, 1}},
		{"followed single", ByFollowedAuthorsOf(21), []int64{2, 5}},
		{"follows nobody", ByFollowedAuthorsOf(22), []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ids(Compose(s, tt.filter)))
		})
	}
}

func TestComposeFollowIsNotTransitive(t *testing.T) {
	s := fixture()
	// 10 подписан на 11, но 20 подписан только на 10 и 12
	s.Follows = append(s.Follows, models.Follow{UserID: 10, AuthorID: 11})

	for _, p := range Compose(s, ByFollowedAuthorsOf(20)) {
		require.NotEqual(t, int64(11), p.AuthorID)
	}
}

func TestComposeDoesNotMutateInput(t *testing.T) {
	s := fixture()
	before := ids(s.Posts)
	_ = Compose(s, All())
	require.Equal(t, before, ids(s.Posts))
}

func TestFilterString(t *testing.T) {
	require.Equal(t, "all", All().String())
	require.Equal(t, "group:cats", ByGroup("cats").String())
	require.Equal(t, "author:3", ByAuthor(3).String())
	require.Equal(t, "followed:4", ByFollowedAuthorsOf(4).String())
}
