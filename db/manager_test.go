package db

import (
	"context"
	"fmt"
	"testing"

	"yatube/config"
	"yatube/models"

	"github.com/stretchr/testify/require"
)

func memoryDSN(t *testing.T) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
}

func TestConnectDBSQLite(t *testing.T) {
	conf := &config.ConfigSchema{}
	conf.Databases.Driver = "sqlite"
	conf.Databases.FilePath = memoryDSN(t)
	config.ApplyDefaults(conf)

	orm, err := ConnectDB(conf)
	require.NoError(t, err)

	for _, m := range Models {
		require.True(t, orm.Migrator().HasTable(m), "table for %T", m)
	}
}

func TestConnectDBUnknownDriver(t *testing.T) {
	conf := &config.ConfigSchema{}
	conf.Databases.Driver = "oracle"

	orm, err := ConnectDB(conf)
	require.Error(t, err)
	require.Nil(t, orm)
}

func TestConnectDBPostgresWithoutMaster(t *testing.T) {
	conf := &config.ConfigSchema{}
	conf.Databases.Driver = "postgres"

	_, err := ConnectDB(conf)
	require.ErrorContains(t, err, "master database configuration is missing")
}

func TestReadWriteHelpers(t *testing.T) {
	orm, err := OpenSQLite(memoryDSN(t), "silent")
	require.NoError(t, err)
	require.NoError(t, Migrate(orm))

	ctx := context.Background()
	user := models.User{Username: "reader"}
	require.NoError(t, Write(ctx, orm).Create(&user).Error)

	var got models.User
	require.NoError(t, ReadOnly(ctx, orm).First(&got, user.ID).Error)
	require.Equal(t, "reader", got.Username)
}
