// seed наполняет базу пользователями, группами, постами и подписками.
// С флагом -staff только выдает права администратора существующему пользователю.
package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"yatube/config"
	"yatube/db"
	"yatube/logger"
	"yatube/services"
	"yatube/storage"

	"github.com/brianvoe/gofakeit/v7"
)

func main() {
	var (
		configPath string
		users      int
		groups     int
		posts      int
		follows    int
		staff      string
	)
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.IntVar(&users, "users", 20, "Number of users")
	flag.IntVar(&groups, "groups", 5, "Number of groups")
	flag.IntVar(&posts, "posts", 200, "Number of posts")
	flag.IntVar(&follows, "follows", 5, "Follows per user")
	flag.StringVar(&staff, "staff", "", "Grant staff rights to this username and exit")
	flag.Parse()

	if err := config.LoadConfig(configPath); err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	logger.Init(logger.Config{Level: config.AppConfig.Logs.Level, Pretty: true, ServiceName: "seed"})
	l := logger.L()

	orm, err := db.ConnectDB(config.AppConfig)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to connect to the database")
	}
	ctx := context.Background()

	if staff != "" {
		svc := services.New(orm, services.Options{})
		if err := promoteStaff(ctx, svc, staff); err != nil {
			l.Fatal().Err(err).Str("username", staff).Msg("failed to grant staff rights")
		}
		l.Info().Str("username", staff).Msg("staff rights granted")
		return
	}

	files, err := storage.New(ctx, config.AppConfig.Media)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to init media storage")
	}

	// даты публикации раскиданы по последнему году
	start := time.Now().AddDate(-1, 0, 0)
	svc := services.New(orm, services.Options{
		Files: files,
		Now: func() time.Time {
			return gofakeit.DateRange(start, time.Now())
		},
	})

	stats, err := seed(ctx, svc, users, groups, posts, follows)
	if err != nil {
		l.Fatal().Err(err).Msg("seeding failed")
	}
	l.Info().
		Int("users", stats.users).
		Int("groups", stats.groups).
		Int("posts", stats.posts).
		Int("follows", stats.follows).
		Msg("database seeded, default password is the username")
}

func promoteStaff(ctx context.Context, svc *services.Services, username string) error {
	user, err := svc.Users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	return svc.Users.SetStaff(ctx, user.ID, true)
}

type seedStats struct {
	users, groups, posts, follows int
}

func seed(ctx context.Context, svc *services.Services, users, groups, posts, follows int) (seedStats, error) {
	var st seedStats

	userIDs := make([]int64, 0, users)
	for i := 0; i < users; i++ {
		name := strings.ToLower(gofakeit.FirstName())
		username := fmt.Sprintf("%s_%s", name, gofakeit.Numerify("####"))
		u, err := svc.Users.Register(ctx, services.RegisterInput{
			Username:  username,
			Password:  username,
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
		})
		if err != nil {
			// совпадение случайных имен не останавливает наполнение
			logger.L().Warn().Err(err).Str("username", username).Msg("skip user")
			continue
		}
		userIDs = append(userIDs, u.ID)
		st.users++
	}
	if len(userIDs) == 0 {
		return st, fmt.Errorf("no users created")
	}

	groupIDs := make([]int64, 0, groups)
	for i := 0; i < groups; i++ {
		word := strings.ToLower(gofakeit.Word())
		g, err := svc.Groups.Create(ctx, services.GroupInput{
			Slug:        fmt.Sprintf("%s-%d", word, i+1),
			Title:       strings.ToUpper(word[:1]) + word[1:],
			Description: gofakeit.HackerPhrase(),
		})
		if err != nil {
			return st, err
		}
		groupIDs = append(groupIDs, g.ID)
		st.groups++
	}

	for i := 0; i < posts; i++ {
		in := services.PostInput{Text: gofakeit.HackerPhrase()}
		if len(groupIDs) > 0 && gofakeit.Bool() {
			id := groupIDs[gofakeit.Number(0, len(groupIDs)-1)]
			in.GroupID = &id
		}
		author := userIDs[gofakeit.Number(0, len(userIDs)-1)]
		if _, err := svc.Posts.Create(ctx, author, in); err != nil {
			return st, err
		}
		st.posts++
	}

	for _, userID := range userIDs {
		for j := 0; j < follows; j++ {
			author := userIDs[gofakeit.Number(0, len(userIDs)-1)]
			if err := svc.Follows.Follow(ctx, userID, author); err != nil {
				continue
			}
			st.follows++
		}
	}
	return st, nil
}
