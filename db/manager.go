package db

import (
	"context"
	"fmt"

	"yatube/config"
	"yatube/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

// Models - все таблицы приложения в порядке миграции
var Models = []interface{}{
	&models.User{},
	&models.UserTokens{},
	&models.Group{},
	&models.Post{},
	&models.Comment{},
	&models.Follow{},
}

func dsnFromConfig(dbConf config.DBConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.Port, dbConf.User, dbConf.Password, dbConf.DBName,
	)
}

func gormConfig(level string) *gorm.Config {
	return &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormLogLevel(level)),
	}
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// ConnectDB открывает подключение по конфигу, регистрирует реплики и выполняет миграции
func ConnectDB(conf *config.ConfigSchema) (*gorm.DB, error) {
	if conf == nil {
		return nil, fmt.Errorf("AppConfig is not loaded")
	}

	var (
		orm *gorm.DB
		err error
	)
	switch conf.Databases.Driver {
	case "postgres":
		orm, err = openPostgres(conf.Databases)
	case "sqlite":
		orm, err = OpenSQLite(conf.Databases.FilePath, conf.Databases.LogLevel)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", conf.Databases.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(orm); err != nil {
		return nil, err
	}

	return orm, nil
}

func openPostgres(conf config.DatabasesConfig) (*gorm.DB, error) {
	if conf.Master.Host == "" {
		return nil, fmt.Errorf("master database configuration is missing")
	}

	orm, err := gorm.Open(postgres.Open(dsnFromConfig(conf.Master)), gormConfig(conf.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to master: %w", err)
	}

	replicas := make([]gorm.Dialector, 0, len(conf.Replicas))
	for _, r := range conf.Replicas {
		replicas = append(replicas, postgres.Open(dsnFromConfig(r)))
	}
	if len(replicas) > 0 {
		err = orm.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("failed to register replicas: %w", err)
		}
	}
	return orm, nil
}

// OpenSQLite открывает SQLite-базу (файл или ":memory:"/"file:...?mode=memory")
func OpenSQLite(path string, logLevel string) (*gorm.DB, error) {
	orm, err := gorm.Open(sqlite.Open(path), gormConfig(logLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	// внешние ключи в SQLite выключены по умолчанию
	if err := orm.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return orm, nil
}

// Migrate создает таблицы всех моделей
func Migrate(orm *gorm.DB) error {
	if err := orm.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// ReadOnly возвращает подключение для чтения (реплики, если они есть)
func ReadOnly(ctx context.Context, orm *gorm.DB) *gorm.DB {
	return orm.WithContext(ctx).Clauses(dbresolver.Read)
}

// Write возвращает подключение для записи (мастер)
func Write(ctx context.Context, orm *gorm.DB) *gorm.DB {
	return orm.WithContext(ctx).Clauses(dbresolver.Write)
}
