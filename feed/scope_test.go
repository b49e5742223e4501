package feed

import (
	"fmt"
	"testing"
	"time"

	"yatube/db"
	"yatube/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSnapshot(t *testing.T) (*gorm.DB, Snapshot) {
	orm, err := db.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), "silent")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(orm))

	for _, id := range []int64{10, 11, 12, 20, 21, 22} {
		require.NoError(t, orm.Create(&models.User{ID: id, Username: fmt.Sprintf("u%d", id)}).Error)
	}

	s := fixture()
	require.NoError(t, orm.Create(&s.Groups).Error)
	require.NoError(t, orm.Create(&s.Posts).Error)
	require.NoError(t, orm.Create(&s.Follows).Error)
	return orm, s
}

func TestScopeMatchesCompose(t *testing.T) {
	orm, s := seedSnapshot(t)

	filters := []Filter{
		All(),
		ByGroup("cats"),
		ByGroup("birds"),
		ByAuthor(11),
		ByAuthor(999),
		ByFollowedAuthorsOf(20),
		ByFollowedAuthorsOf(22),
	}
	for _, f := range filters {
		t.Run(f.String(), func(t *testing.T) {
			var got []models.Post
			require.NoError(t, orm.Model(&models.Post{}).Scopes(Scope(f)).Find(&got).Error)
			require.Equal(t, ids(Compose(s, f)), ids(got))

			var count int64
			require.NoError(t, Where(orm.Model(&models.Post{}), f).Count(&count).Error)
			require.EqualValues(t, len(got), count)
		})
	}
}

func TestScopeTieBreakByInsertion(t *testing.T) {
	orm, _ := seedSnapshot(t)

	same := base.Add(time.Hour)
	a := models.Post{Text: "a", AuthorID: 10, PubDate: same}
	b := models.Post{Text: "b", AuthorID: 10, PubDate: same}
	require.NoError(t, orm.Create(&a).Error)
	require.NoError(t, orm.Create(&b).Error)

	var got []models.Post
	require.NoError(t, orm.Model(&models.Post{}).Scopes(Scope(All())).Limit(2).Find(&got).Error)
	require.Equal(t, []int64{b.ID, a.ID}, ids(got))
}
