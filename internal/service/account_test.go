package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tasklight/tasklight/internal/data"
	domainauth "github.com/tasklight/tasklight/internal/domain/auth"
	"github.com/tasklight/tasklight/internal/domain/model"
	apperrors "github.com/tasklight/tasklight/internal/errors"
	"github.com/tasklight/tasklight/internal/mocks"
)

var (
	adminActor = domainauth.Identity{ID: "adm-1", Username: "root", Role: domainauth.RoleAdmin}
	userActor  = domainauth.Identity{ID: "usr-1", Username: "alice", Role: domainauth.RoleUser}
)

func newTestAccountService(t *testing.T, accounts *mocks.MockAccountRepository) *AccountService {
	t.Helper()
	svc, err := NewAccountService(AccountServiceOptions{
		Accounts:              accounts,
		DefaultUserTTLMinutes: 1,
	})
	require.NoError(t, err)
	return svc
}

func TestNewAccountService_RequiredDependency(t *testing.T) {
	_, err := NewAccountService(AccountServiceOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccountRepository is required")
}

func TestAccountService_Provision_DefaultUserTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := mocks.NewMockAccountRepository(ctrl)
	svc := newTestAccountService(t, accounts)

	ctx := context.Background()
	accounts.EXPECT().GetByUsername(ctx, "bob").Return(nil, data.ErrAccountNotFound)
	accounts.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, params *model.CreateAccountParams) (*model.Account, error) {
			require.NotNil(t, params.TTLMinutes)
			assert.Equal(t, 1, *params.TTLMinutes)
			return &model.Account{ID: "new-id", Username: params.Username, Role: params.Role}, nil
		})

	account, err := svc.Provision(ctx, adminActor, model.CreateAccountParams{
		Username: "bob",
		Password: "pw",
		Role:     domainauth.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, "new-id", account.ID)
}

func TestAccountService_Provision_AdminDefaultsPermanent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := mocks.NewMockAccountRepository(ctrl)
	svc := newTestAccountService(t, accounts)

	ctx := context.Background()
	accounts.EXPECT().GetByUsername(ctx, "backup-admin").Return(nil, data.ErrAccountNotFound)
	accounts.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, params *model.CreateAccountParams) (*model.Account, error) {
			assert.Nil(t, params.TTLMinutes)
			return &model.Account{ID: "new-id", Username: params.Username, Role: params.Role}, nil
		})

	_, err := svc.Provision(ctx, adminActor, model.CreateAccountParams{
		Username: "backup-admin",
		Password: "pw",
		Role:     domainauth.RoleAdmin,
	})
	require.NoError(t, err)
}

func TestAccountService_Provision_ExplicitTTLWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := mocks.NewMockAccountRepository(ctrl)
	svc := newTestAccountService(t, accounts)

	ctx := context.Background()
	ttl := 90
	accounts.EXPECT().GetByUsername(ctx, "temp-admin").Return(nil, data.ErrAccountNotFound)
	accounts.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, params *model.CreateAccountParams) (*model.Account, error) {
			require.NotNil(t, params.TTLMinutes)
			assert.Equal(t, 90, *params.TTLMinutes)
			return &model.Account{ID: "new-id"}, nil
		})

	_, err := svc.Provision(ctx, adminActor, model.CreateAccountParams{
		Username:   "temp-admin",
		Password:   "pw",
		Role:       domainauth.RoleAdmin,
		TTLMinutes: &ttl,
	})
	require.NoError(t, err)
}

func TestAccountService_Provision_NonPositiveTTLFallsBackToPolicy(t *testing.T) {
	tests := []struct {
		name     string
		role     domainauth.Role
		ttl      int
		expected *int
	}{
		{name: "zero TTL user gets default", role: domainauth.RoleUser, ttl: 0, expected: intRef(1)},
		{name: "negative TTL user gets default", role: domainauth.RoleUser, ttl: -5, expected: intRef(1)},
		{name: "zero TTL admin stays permanent", role: domainauth.RoleAdmin, ttl: 0, expected: nil},
		{name: "negative TTL admin stays permanent", role: domainauth.RoleAdmin, ttl: -5, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accounts := mocks.NewMockAccountRepository(ctrl)
			svc := newTestAccountService(t, accounts)

			ctx := context.Background()
			accounts.EXPECT().GetByUsername(ctx, "bob").Return(nil, data.ErrAccountNotFound)
			accounts.EXPECT().
				Create(ctx, gomock.Any()).
				DoAndReturn(func(_ context.Context, params *model.CreateAccountParams) (*model.Account, error) {
					if tt.expected == nil {
						assert.Nil(t, params.TTLMinutes)
					} else {
						require.NotNil(t, params.TTLMinutes)
						assert.Equal(t, *tt.expected, *params.TTLMinutes)
					}
					return &model.Account{ID: "new-id", Username: params.Username, Role: params.Role}, nil
				})

			ttl := tt.ttl
			_, err := svc.Provision(ctx, adminActor, model.CreateAccountParams{
				Username:   "bob",
				Password:   "pw",
				Role:       tt.role,
				TTLMinutes: &ttl,
			})
			require.NoError(t, err)
		})
	}
}

func intRef(n int) *int { return &n }

func TestAccountService_Provision_DuplicatePrecheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := mocks.NewMockAccountRepository(ctrl)
	svc := newTestAccountService(t, accounts)

	ctx := context.Background()
	// Existing account; Create must never be called.
	accounts.EXPECT().GetByUsername(ctx, "alice").Return(&model.Account{ID: "usr-1"}, nil)

	_, err := svc.Provision(ctx, adminActor, model.CreateAccountParams{
		Username: "alice",
		Password: "pw",
		Role:     domainauth.RoleUser,
	})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestAccountService_Provision_DuplicateRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := mocks.NewMockAccountRepository(ctrl)
	svc := newTestAccountService(t, accounts)

	ctx := context.Background()
	// Precheck misses, but the insert loses the race to the constraint.
	accounts.EXPECT().GetByUsername(ctx, "alice").Return(nil, data.ErrAccountNotFound)
	accounts.EXPECT().Create(ctx, gomock.Any()).Return(nil, data.ErrUsernameTaken)

	_, err := svc.Provision(ctx, adminActor, model.CreateAccountParams{
		Username: "alice",
		Password: "pw",
		Role:     domainauth.RoleUser,
	})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestAccountService_Provision_NonAdminForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newTestAccountService(t, mocks.NewMockAccountRepository(ctrl))

	for _, actor := range []domainauth.Identity{userActor, domainauth.Anonymous()} {
		_, err := svc.Provision(context.Background(), actor, model.CreateAccountParams{
			Username: "bob",
			Password: "pw",
			Role:     domainauth.RoleUser,
		})
		assert.ErrorIs(t, err, ErrForbidden)
	}
}

func TestAccountService_Provision_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newTestAccountService(t, mocks.NewMockAccountRepository(ctrl))

	_, err := svc.Provision(context.Background(), adminActor, model.CreateAccountParams{
		Username: "",
		Password: "pw",
		Role:     domainauth.RoleUser,
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestAccountService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := mocks.NewMockAccountRepository(ctrl)
	svc := newTestAccountService(t, accounts)

	ctx := context.Background()
	expected := []*model.Account{{ID: "a"}, {ID: "b"}}
	accounts.EXPECT().List(ctx).Return(expected, nil)

	got, err := svc.List(ctx, adminActor)
	require.NoError(t, err)
	assert.Equal(t, expected, got)

	_, err = svc.List(ctx, userActor)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAccountService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := mocks.NewMockAccountRepository(ctrl)
	svc := newTestAccountService(t, accounts)

	ctx := context.Background()
	accounts.EXPECT().Delete(ctx, "usr-9").Return(true, nil)
	require.NoError(t, svc.Delete(ctx, adminActor, "usr-9"))

	accounts.EXPECT().Delete(ctx, "missing").Return(false, nil)
	assert.ErrorIs(t, svc.Delete(ctx, adminActor, "missing"), data.ErrAccountNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, userActor, "usr-9"), ErrForbidden)
}
