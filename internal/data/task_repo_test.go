package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domainauth "github.com/tasklight/tasklight/internal/domain/auth"
	"github.com/tasklight/tasklight/internal/domain/model"
	"github.com/tasklight/tasklight/internal/testutil"
)

func createTestOwner(t *testing.T, db *sql.DB, username string) *model.Account {
	t.Helper()
	repo := NewAccountRepo(db, AccountRepoConfig{BcryptCost: bcrypt.MinCost})
	account, err := repo.Create(context.Background(), &model.CreateAccountParams{
		Username: username,
		Password: "pw",
		Role:     domainauth.RoleUser,
	})
	require.NoError(t, err)
	return account
}

func TestTaskRepo_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	owner := createTestOwner(t, db, "alice")
	repo := NewTaskRepo(db)
	ctx := context.Background()

	task, err := repo.Create(ctx, &model.CreateTaskParams{
		Content: "  buy milk  ",
		OwnerID: &owner.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "buy milk", task.Content)
	assert.False(t, task.Completed)
	require.NotNil(t, task.OwnerID)
	assert.Equal(t, owner.ID, *task.OwnerID)

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Content, got.Content)

	_, err = repo.GetByID(ctx, task.ID+1000)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskRepo_List_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	owner := createTestOwner(t, db, "alice")
	now := time.Now().UTC().Truncate(time.Millisecond)
	clock := NewFixedTimeProvider(now)
	repo := NewTaskRepoWithTimeProvider(db, clock)
	ctx := context.Background()

	for i, content := range []string{"first", "second", "third"} {
		clock.SetTime(now.Add(time.Duration(i) * time.Minute))
		_, err := repo.Create(ctx, &model.CreateTaskParams{Content: content, OwnerID: &owner.ID})
		require.NoError(t, err)
	}

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "third", tasks[0].Content)
	assert.Equal(t, "second", tasks[1].Content)
	assert.Equal(t, "first", tasks[2].Content)
}

func TestTaskRepo_ToggleAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	owner := createTestOwner(t, db, "alice")
	repo := NewTaskRepo(db)
	ctx := context.Background()

	task, err := repo.Create(ctx, &model.CreateTaskParams{Content: "toggle me", OwnerID: &owner.ID})
	require.NoError(t, err)

	toggled, err := repo.Toggle(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled)

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	toggled, err = repo.Toggle(ctx, task.ID+1000)
	require.NoError(t, err)
	assert.False(t, toggled)

	deleted, err := repo.Delete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestTaskRepo_OwnerDeletionOrphansTask(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	owner := createTestOwner(t, db, "ephemeral")
	taskRepo := NewTaskRepo(db)
	accountRepo := NewAccountRepo(db, AccountRepoConfig{BcryptCost: bcrypt.MinCost})
	ctx := context.Background()

	task, err := taskRepo.Create(ctx, &model.CreateTaskParams{Content: "outlives owner", OwnerID: &owner.ID})
	require.NoError(t, err)

	deleted, err := accountRepo.Delete(ctx, owner.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	// ON DELETE SET NULL: the task survives as ownerless.
	got, err := taskRepo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.OwnerID)
}
