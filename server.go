package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yatube/api/handlers"
	"yatube/api/routes"
	"yatube/cache"
	"yatube/config"
	"yatube/db"
	"yatube/logger"
	"yatube/services"
	"yatube/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const serviceName = "yatube"

// app - собранное приложение и ресурсы, которые нужно закрыть при остановке
type app struct {
	router *gin.Engine
	svc    *services.Services
	redis  *redis.Client
	rabbit *services.RabbitPublisher
	cancel context.CancelFunc
}

// newPageStore - redis, если он настроен и доступен, иначе память процесса
func newPageStore(ctx context.Context, conf *config.ConfigSchema) (cache.Store, *redis.Client) {
	if conf.Cache.Backend != "redis" {
		return cache.NewMemoryStore(), nil
	}
	client, err := services.InitRedis(ctx, conf.Redis)
	if err != nil {
		logger.L().Warn().Err(err).Msg("redis unavailable, page cache falls back to memory")
		return cache.NewMemoryStore(), nil
	}
	return cache.NewRedisStore(client, conf.Cache.KeyPrefix), client
}

// newNotifier - RabbitMQ, если задан URL, иначе события сразу уходят в websocket
func newNotifier(ctx context.Context, conf *config.ConfigSchema, ws *services.WSConnManager) (services.FeedNotifier, *services.RabbitPublisher) {
	if conf.RabbitMQ.URL == "" {
		return services.NewDirectNotifier(ws), nil
	}
	pub, err := services.NewRabbitPublisher(conf.RabbitMQ.URL)
	if err != nil {
		logger.L().Warn().Err(err).Msg("rabbitmq unavailable, feed events are pushed directly")
		return services.NewDirectNotifier(ws), nil
	}
	if err := pub.StartConsumer(ctx, conf.RabbitMQ.Queue, ws); err != nil {
		logger.L().Warn().Err(err).Msg("failed to start feed event consumer")
	}
	return pub, pub
}

func newApp(conf *config.ConfigSchema) (*app, error) {
	ctx, cancel := context.WithCancel(context.Background())

	orm, err := db.ConnectDB(conf)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	files, err := storage.New(ctx, conf.Media)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to init media storage: %w", err)
	}

	store, redisClient := newPageStore(ctx, conf)
	ws := services.NewWSConnManager()
	notifier, rabbit := newNotifier(ctx, conf, ws)

	svc := services.New(orm, services.Options{
		Files:     files,
		PageCache: cache.NewPageCache(store, conf.Cache.IndexTTL),
		Notifier:  notifier,
		PageSize:  conf.Paginate.PageSize,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(logger.GinMiddleware(*logger.L()))
	routes.Register(router, handlers.New(svc, files, ws), svc.Users, serviceName)

	return &app{router: router, svc: svc, redis: redisClient, rabbit: rabbit, cancel: cancel}, nil
}

func (a *app) Close() {
	a.cancel()
	a.svc.Posts.Wait()
	if a.rabbit != nil {
		_ = a.rabbit.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	if err := config.LoadConfig(configPath); err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	conf := config.AppConfig

	logger.Init(logger.Config{
		Level:       conf.Logs.Level,
		Pretty:      conf.Logs.Pretty,
		ServiceName: serviceName,
	})
	if logger.ParseLevel(conf.Logs.Level) > 0 {
		gin.SetMode(gin.ReleaseMode)
	}
	l := logger.L()

	a, err := newApp(conf)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to start")
	}
	defer a.Close()

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", conf.Backend.Host, conf.Backend.Port),
		Handler:      a.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		l.Info().
			Str("addr", server.Addr).
			Str("db", conf.Databases.Driver).
			Str("cache", conf.Cache.Backend).
			Dur("index_ttl", conf.Cache.IndexTTL).
			Msg("yatube listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("server forced to shutdown")
	}
}
