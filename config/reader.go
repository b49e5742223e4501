package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// DBConfig - параметры подключения к одной базе данных
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
}

type DatabasesConfig struct {
	// Driver: "postgres" или "sqlite"
	Driver   string     `yaml:"driver"`
	FilePath string     `yaml:"file_path"`
	LogLevel string     `yaml:"log_level"`
	Master   DBConfig   `yaml:"master"`
	Replicas []DBConfig `yaml:"replicas"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CacheConfig - настройки кеша главной страницы
type CacheConfig struct {
	// Backend: "memory" или "redis"
	Backend   string        `yaml:"backend"`
	IndexTTL  time.Duration `yaml:"index_ttl"`
	KeyPrefix string        `yaml:"key_prefix"`
}

type PaginateConfig struct {
	PageSize int `yaml:"page_size"`
}

type LocalMediaConfig struct {
	BasePath string `yaml:"base_path"`
}

type S3MediaConfig struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UsePathStyle    bool   `yaml:"use_path_style"`
}

// MediaConfig - хранилище картинок постов
type MediaConfig struct {
	// Backend: "local" или "s3"
	Backend string           `yaml:"backend"`
	Local   LocalMediaConfig `yaml:"local"`
	S3      S3MediaConfig    `yaml:"s3"`
}

type RabbitMQConfig struct {
	URL   string `yaml:"url"`
	Queue string `yaml:"queue"`
}

type ConfigSchema struct {
	Databases DatabasesConfig `yaml:"db"`
	Redis     RedisConfig     `yaml:"redis"`
	Cache     CacheConfig     `yaml:"cache"`
	Paginate  PaginateConfig  `yaml:"paginate"`
	Media     MediaConfig     `yaml:"media"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	Backend   struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"backend"`
	Logs struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logs"`
}

var AppConfig *ConfigSchema

// LoadConfig читает YAML-файл, применяет переменные окружения и значения по умолчанию
func LoadConfig(filePath string) error {
	conf, err := Read(filePath)
	if err != nil {
		return err
	}
	AppConfig = conf
	return nil
}

// Read разбирает конфиг без изменения глобального AppConfig.
// Файл .env рядом с конфигом дополняет окружение, уже заданные переменные не перезаписываются.
func Read(filePath string) (*ConfigSchema, error) {
	if err := loadDotenv(filepath.Join(filepath.Dir(filePath), ".env")); err != nil {
		return nil, err
	}
	conf := &ConfigSchema{}
	data, err := os.ReadFile(filePath)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, conf); err != nil {
			return nil, err
		}
	}
	applyEnv(conf)
	ApplyDefaults(conf)
	return conf, nil
}

func loadDotenv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

func applyEnv(conf *ConfigSchema) {
	if v := os.Getenv("DB_DRIVER"); v != "" {
		conf.Databases.Driver = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		conf.Redis.Addr = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		conf.RabbitMQ.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		conf.Logs.Level = v
	}
}

// ApplyDefaults заполняет незаданные поля
func ApplyDefaults(conf *ConfigSchema) {
	if conf.Databases.Driver == "" {
		conf.Databases.Driver = "sqlite"
	}
	if conf.Databases.FilePath == "" {
		conf.Databases.FilePath = "yatube.db"
	}
	if conf.Databases.LogLevel == "" {
		conf.Databases.LogLevel = "warn"
	}
	if conf.Databases.Master.Port == 0 {
		conf.Databases.Master.Port = 5432
	}
	for i := range conf.Databases.Replicas {
		if conf.Databases.Replicas[i].Port == 0 {
			conf.Databases.Replicas[i].Port = 5432
		}
	}
	if conf.Cache.Backend == "" {
		conf.Cache.Backend = "memory"
	}
	if conf.Cache.IndexTTL == 0 {
		conf.Cache.IndexTTL = 20 * time.Second
	}
	if conf.Cache.KeyPrefix == "" {
		conf.Cache.KeyPrefix = "yatube:page:"
	}
	if conf.Paginate.PageSize <= 0 {
		conf.Paginate.PageSize = 10
	}
	if conf.Media.Backend == "" {
		conf.Media.Backend = "local"
	}
	if conf.Media.Local.BasePath == "" {
		conf.Media.Local.BasePath = "media"
	}
	if conf.RabbitMQ.Queue == "" {
		conf.RabbitMQ.Queue = "feed_events_push"
	}
	if conf.Backend.Port == 0 {
		conf.Backend.Port = 8080
	}
	if conf.Logs.Level == "" {
		conf.Logs.Level = "info"
	}
}
