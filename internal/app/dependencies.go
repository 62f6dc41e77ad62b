package app

import (
	"database/sql"
	"time"

	"github.com/inkpace/inkpace/internal/config"
	"github.com/inkpace/inkpace/internal/event_bus"
	"github.com/inkpace/inkpace/internal/utils"
	"github.com/inkpace/inkpace/pkg/document"
	"github.com/inkpace/inkpace/pkg/goal"
	"github.com/inkpace/inkpace/pkg/google"
	"github.com/inkpace/inkpace/pkg/history"
	"github.com/inkpace/inkpace/pkg/progress"
	"github.com/inkpace/inkpace/pkg/project"
	"github.com/inkpace/inkpace/pkg/user"
	"github.com/redis/go-redis/v9"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	UserService user.Service
	UserHandler *user.Handler

	GoogleAuth    *google.GoogleAuth
	GoogleService google.Service
	GoogleHandler *google.Handler

	ProjectRepo    project.Repository
	ProjectService *project.ServiceImpl
	ProjectHandler *project.Handler

	DocumentRepo    document.Repository
	DocumentService *document.ServiceImpl
	DocumentHandler *document.Handler

	GoalRepo    goal.Repository
	GoalService *goal.ServiceImpl
	GoalHandler *goal.Handler

	ProgressService progress.Service
	ProgressHandler *progress.Handler

	HistoryService     *history.ServiceImpl
	HistoryCsvRenderer *history.CsvRendererImpl
	HistoryHandler     *history.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.GoogleAuth = google.NewGoogleAuth(db, deps.UserService, cfg)
	deps.GoogleService = google.NewService(deps.GoogleAuth)
	deps.GoogleHandler = google.NewHandler(deps.GoogleService)

	deps.ProjectRepo = project.NewRepository(db)
	deps.ProjectService = project.NewService(deps.ProjectRepo)
	deps.ProjectHandler = project.NewHandler(deps.ProjectService)

	deps.DocumentRepo = document.NewRepository(db)
	deps.DocumentService = document.NewService(deps.DocumentRepo, deps.GoogleService, deps.Clock, deps.EventBus)
	deps.DocumentHandler = document.NewHandler(deps.DocumentService)

	deps.GoalRepo = goal.NewRepository(db)
	deps.GoalService = goal.NewService(deps.GoalRepo, deps.Clock, deps.EventBus)
	deps.GoalHandler = goal.NewHandler(deps.GoalService)

	deps.ProgressService = progress.NewService(deps.ProjectService, deps.GoalService, deps.DocumentService, deps.Clock, deps.EventBus)
	if cfg.Redis.Enabled {
		cache := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ttl := time.Duration(cfg.Redis.TTLSeconds) * time.Second
		deps.ProgressService = progress.NewCachedService(deps.ProgressService, cache, ttl, deps.EventBus)
	}
	deps.ProgressHandler = progress.NewHandler(deps.ProgressService)

	deps.HistoryService = history.NewService(deps.ProjectService, deps.GoalService)
	deps.HistoryCsvRenderer = history.NewCsvRenderer()
	deps.HistoryHandler = history.NewHandler(deps.HistoryService, deps.HistoryCsvRenderer)

	return deps
}
