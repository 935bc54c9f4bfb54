package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/tasklight/tasklight/config"
	"github.com/tasklight/tasklight/internal/adapters/sessiontoken"
	"github.com/tasklight/tasklight/internal/data"
	"github.com/tasklight/tasklight/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth     *service.AuthService
	Accounts *service.AccountService
	Tasks    *service.TaskService
	Reaper   *service.Reaper

	AccountRepo *data.AccountRepo
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	DB     *sql.DB
	Logger *slog.Logger
}

// NewServices wires repositories, the token codec, and the service layer.
func NewServices(deps ServiceDeps) (ServiceContainer, error) {
	cfg := deps.Config

	accountRepo := data.NewAccountRepo(deps.DB, data.AccountRepoConfig{
		BcryptCost: cfg.Auth.BcryptCost,
	})
	taskRepo := data.NewTaskRepo(deps.DB)

	codec, err := sessiontoken.NewCodec(cfg.Auth.SessionSecret, cfg.Auth.TokenIssuer)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build session codec: %w", err)
	}

	authSvc, err := service.NewAuthService(service.AuthServiceOptions{
		Accounts: accountRepo,
		Tokens:   codec,
		Logger:   deps.Logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build auth service: %w", err)
	}

	accountSvc, err := service.NewAccountService(service.AccountServiceOptions{
		Accounts:              accountRepo,
		Logger:                deps.Logger,
		DefaultUserTTLMinutes: cfg.Auth.DefaultUserTTLMinutes,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build account service: %w", err)
	}

	taskSvc, err := service.NewTaskService(service.TaskServiceOptions{Tasks: taskRepo})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build task service: %w", err)
	}

	reaper, err := service.NewReaper(service.ReaperOptions{
		Accounts: accountRepo,
		Logger:   deps.Logger,
		Interval: cfg.Reaper.Interval,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build reaper: %w", err)
	}

	return ServiceContainer{
		Auth:        authSvc,
		Accounts:    accountSvc,
		Tasks:       taskSvc,
		Reaper:      reaper,
		AccountRepo: accountRepo,
	}, nil
}
