package main

import (
	"context"
	"fmt"
	"testing"

	"yatube/db"
	"yatube/feed"
	"yatube/models"
	"yatube/services"

	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	orm, err := db.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), "silent")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(orm))

	svc := services.New(orm, services.Options{})
	st, err := seed(context.Background(), svc, 5, 2, 30, 3)
	require.NoError(t, err)
	require.Equal(t, 2, st.groups)
	require.Equal(t, 30, st.posts)
	require.Positive(t, st.users)

	var count int64
	require.NoError(t, orm.Model(&models.Post{}).Count(&count).Error)
	require.EqualValues(t, 30, count)

	page, err := svc.Posts.Feed(context.Background(), feed.All(), 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 10)
	require.Equal(t, 3, page.TotalPages)

	// self-follow и повторы отбрасываются
	var self int64
	require.NoError(t, orm.Model(&models.Follow{}).Where("user_id = author_id").Count(&self).Error)
	require.Zero(t, self)
}

func TestPromoteStaff(t *testing.T) {
	orm, err := db.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), "silent")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(orm))

	ctx := context.Background()
	svc := services.New(orm, services.Options{})
	_, err = svc.Users.Register(ctx, services.RegisterInput{Username: "admin", Password: "secret-password"})
	require.NoError(t, err)

	require.NoError(t, promoteStaff(ctx, svc, "admin"))
	user, err := svc.Users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.True(t, user.IsStaff)

	require.ErrorIs(t, promoteStaff(ctx, svc, "nobody"), services.ErrUserNotFound)
}
