package app

import (
	"context"
	"log"
	"time"

	"sukasamasuka/internal/config"
	"sukasamasuka/internal/database"
	"sukasamasuka/internal/database/migration"
	dbpostgres "sukasamasuka/internal/database/postgres"
	"sukasamasuka/internal/database/seeder"
	"sukasamasuka/internal/delivery/http/handler"
	"sukasamasuka/internal/delivery/http/middleware"
	"sukasamasuka/internal/delivery/http/routes"
	v1 "sukasamasuka/internal/delivery/http/routes/v1"
	"sukasamasuka/internal/infrastructure/cache"
	"sukasamasuka/internal/notifier"
	"sukasamasuka/internal/pkg/jwt"
	"sukasamasuka/internal/repository"
	"sukasamasuka/internal/usecase"
	"sukasamasuka/internal/ws"
)

type Container struct {
	Config   config.Config
	DB       database.DB
	Cache    *cache.Redis
	Registry *routes.Registry
	Notify   *usecase.Notify

	users *repository.PostgresUserRepository
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{Dir: "migrations"}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.App.SeedDemoData {
		if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Printf("[Seed] demo data seeded")
	}

	redis := cache.NewRedis(cfg.Redis, logger)

	users, err := repository.NewPostgresUserRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	posts := repository.NewPostgresJobPostRepository(db)
	connects := repository.NewPostgresConnectRequestRepository(db)
	profiles := repository.NewPostgresProfileRepository(db)
	chats := repository.NewPostgresChatRepository(db)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	matchUC := usecase.NewMatchUsecase(posts, redis, logger)
	authUC := usecase.NewAuthUsecase(users, jwtSvc)
	postUC := usecase.NewJobPostUsecase(posts, matchUC, logger)
	connectUC := usecase.NewConnectUsecase(connects, chats, profiles, logger)
	profileUC := usecase.NewProfileUsecase(profiles, users)
	chatUC := usecase.NewChatUsecase(chats, connects, redis, logger)
	notifyUC := usecase.NewNotifyUsecase(
		posts, users, profiles, redis,
		notifier.NewSMTPClient(cfg.SMTP), cfg.SMTP, logger,
	)

	hub := ws.NewHub(redis, logger)
	wsHandler := ws.NewHandler(hub, chatUC, jwtSvc, logger)

	handlers := v1.Handlers{
		Auth:    handler.NewAuthHandler(authUC),
		Catalog: handler.NewCatalogHandler(),
		JobPost: handler.NewJobPostHandler(postUC),
		Match:   handler.NewMatchHandler(matchUC, notifyUC),
		Connect: handler.NewConnectHandler(connectUC),
		Profile: handler.NewProfileHandler(profileUC),
		Chat:    handler.NewChatHandler(chatUC),
	}
	registry := routes.NewRegistry(
		handlers,
		handler.NewHealthHandler(db, redis),
		wsHandler,
		middleware.NewAuthMiddleware(jwtSvc),
	)

	return &Container{
		Config:   cfg,
		DB:       db,
		Cache:    redis,
		Registry: registry,
		Notify:   notifyUC,
		users:    users,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var firstErr error
	if c.users != nil {
		if err := c.users.Close(); err != nil {
			firstErr = err
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
