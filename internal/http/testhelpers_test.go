package httpx

import (
	"context"
	"io"
	"log/slog"

	domainauth "github.com/tasklight/tasklight/internal/domain/auth"
	"github.com/tasklight/tasklight/internal/domain/model"
	"github.com/tasklight/tasklight/internal/service"
)

// Hand-written stubs for the narrow handler-facing interfaces. Service
// behavior itself is covered by the service package tests; here we only
// exercise transport concerns.

type stubResolver struct {
	res service.Resolution
	err error
}

func (s *stubResolver) Resolve(context.Context, string) (service.Resolution, error) {
	return s.res, s.err
}

type stubLoginService struct {
	result *service.LoginResult
	err    error
}

func (s *stubLoginService) Login(context.Context, string, string) (*service.LoginResult, error) {
	return s.result, s.err
}

type stubTasksService struct {
	createFn     func(ctx context.Context, actor domainauth.Identity, params model.CreateTaskParams) (*model.Task, error)
	listFn       func(ctx context.Context, actor domainauth.Identity) ([]model.TaskWithAccess, error)
	getContentFn func(ctx context.Context, id int64) (string, error)
	toggleFn     func(ctx context.Context, actor domainauth.Identity, id int64) (*model.Task, error)
	deleteFn     func(ctx context.Context, actor domainauth.Identity, id int64) error
}

func (s *stubTasksService) Create(ctx context.Context, actor domainauth.Identity, params model.CreateTaskParams) (*model.Task, error) {
	return s.createFn(ctx, actor, params)
}

func (s *stubTasksService) List(ctx context.Context, actor domainauth.Identity) ([]model.TaskWithAccess, error) {
	return s.listFn(ctx, actor)
}

func (s *stubTasksService) GetContent(ctx context.Context, id int64) (string, error) {
	return s.getContentFn(ctx, id)
}

func (s *stubTasksService) Toggle(ctx context.Context, actor domainauth.Identity, id int64) (*model.Task, error) {
	return s.toggleFn(ctx, actor, id)
}

func (s *stubTasksService) Delete(ctx context.Context, actor domainauth.Identity, id int64) error {
	return s.deleteFn(ctx, actor, id)
}

type stubAccountsService struct {
	provisionFn func(ctx context.Context, actor domainauth.Identity, params model.CreateAccountParams) (*model.Account, error)
	listFn      func(ctx context.Context, actor domainauth.Identity) ([]*model.Account, error)
	deleteFn    func(ctx context.Context, actor domainauth.Identity, id string) error
}

func (s *stubAccountsService) Provision(ctx context.Context, actor domainauth.Identity, params model.CreateAccountParams) (*model.Account, error) {
	return s.provisionFn(ctx, actor, params)
}

func (s *stubAccountsService) List(ctx context.Context, actor domainauth.Identity) ([]*model.Account, error) {
	return s.listFn(ctx, actor)
}

func (s *stubAccountsService) Delete(ctx context.Context, actor domainauth.Identity, id string) error {
	return s.deleteFn(ctx, actor, id)
}

var (
	testAdmin = domainauth.Identity{ID: "adm-1", Username: "root", Role: domainauth.RoleAdmin}
	testUser  = domainauth.Identity{ID: "usr-1", Username: "alice", Role: domainauth.RoleUser}
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
