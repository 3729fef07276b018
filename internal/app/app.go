// Package app wires the service together: config, database, repos,
// services, handlers and router, all constructor-injected.
package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/freddy-ai/freddy-backend/internal/db"
	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/middleware"
	"github.com/freddy-ai/freddy-backend/internal/server"
)

type App struct {
	Cfg      *Config
	Log      *logger.Logger
	DB       *db.PostgresService
	Repos    *Repos
	Services *Services
	Handlers *Handlers
	Router   *gin.Engine
}

func New(ctx context.Context) (*App, error) {
	bootstrapLog, err := logger.New("development")
	if err != nil {
		return nil, err
	}
	cfg, err := LoadConfig(bootstrapLog)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Mode)
	if err != nil {
		return nil, err
	}

	pg, err := db.NewPostgresService(log)
	if err != nil {
		return nil, err
	}
	if err := pg.AutoMigrateAll(); err != nil {
		return nil, err
	}

	repos := wireRepos(pg.DB(), log)
	svcs, err := wireServices(ctx, pg.DB(), repos, cfg, log)
	if err != nil {
		return nil, err
	}
	hs := wireHandlers(svcs, log)
	authMiddleware := middleware.NewAuthMiddleware(svcs.Auth, log)

	router := server.NewRouter(server.RouterConfig{
		AllowOrigins:   cfg.AllowOrigins,
		AuthMiddleware: authMiddleware,
		Healthcheck:    hs.Healthcheck,
		Auth:           hs.Auth,
		User:           hs.User,
		Conversation:   hs.Conversation,
		Message:        hs.Message,
		Goal:           hs.Goal,
		Lesson:         hs.Lesson,
		Session:        hs.Session,
		Event:          hs.Event,
		Dashboard:      hs.Dashboard,
		Chat:           hs.Chat,
		Avatar:         hs.Avatar,
		Document:       hs.Document,
	})

	return &App{
		Cfg:      cfg,
		Log:      log,
		DB:       pg,
		Repos:    repos,
		Services: svcs,
		Handlers: hs,
		Router:   router,
	}, nil
}

func (a *App) Run() error {
	a.Log.Info("Starting server", "port", a.Cfg.Port)
	return a.Router.Run(":" + a.Cfg.Port)
}
