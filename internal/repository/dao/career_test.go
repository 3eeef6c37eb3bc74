package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB starts a throwaway postgres container. Tests are skipped
// when Docker is not available.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker not available: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=clave_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	dsn := fmt.Sprintf("postgres://test:secret@%v/clave_test?sslmode=disable", resource.GetHostPort("5432/tcp"))

	var db *gorm.DB
	require.NoError(t, pool.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if openErr != nil {
			return openErr
		}

		sqlDB, openErr := db.DB()
		if openErr != nil {
			return openErr
		}

		return sqlDB.Ping()
	}))

	require.NoError(t, InitTables(db))

	return db
}

func TestCareerDAO_GetOrCreate(t *testing.T) {
	db := setupTestDB(t)
	d := NewCareerDAO(db)
	ctx := context.Background()

	created, err := d.GetOrCreate(ctx, 1, "2026-1")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 0, created.Fans)

	again, err := d.GetOrCreate(ctx, 1, "2026-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	otherSeason, err := d.GetOrCreate(ctx, 1, "2026-2")
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, otherSeason.ID)
}

func TestCareerDAO_SaveWithTransactions_TrimsLedger(t *testing.T) {
	db := setupTestDB(t)
	d := NewCareerDAO(db)
	ctx := context.Background()

	career, err := d.GetOrCreate(ctx, 1, "2026-1")
	require.NoError(t, err)

	const historyCap = 5
	for i := 0; i < historyCap+3; i++ {
		career.Fans += 50
		career, err = d.SaveWithTransactions(ctx, career, []FanTransaction{{
			EventID:   uuid.NewString(),
			StudentID: 1,
			SeasonID:  "2026-1",
			Amount:    50,
			Reason:    fmt.Sprintf("entry %d", i),
			CreatedAt: time.Now(),
		}}, historyCap)
		require.NoError(t, err)
	}

	txns, err := d.ListTransactions(ctx, 1, "2026-1", 50)
	require.NoError(t, err)
	require.Len(t, txns, historyCap)

	// Newest first, oldest entries evicted.
	assert.Equal(t, "entry 7", txns[0].Reason)
	assert.Equal(t, "entry 3", txns[historyCap-1].Reason)
}

func TestCareerDAO_ListLapsed(t *testing.T) {
	db := setupTestDB(t)
	d := NewCareerDAO(db)
	ctx := context.Background()

	old := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)
	fresh := time.Date(2026, 2, 28, 21, 0, 0, 0, time.UTC)

	lapsed, err := d.GetOrCreate(ctx, 1, "2026-1")
	require.NoError(t, err)
	lapsed.CurrentStreak = 4
	lapsed.LastActiveDate = &old
	_, err = d.SaveWithTransactions(ctx, lapsed, nil, 50)
	require.NoError(t, err)

	active, err := d.GetOrCreate(ctx, 2, "2026-1")
	require.NoError(t, err)
	active.CurrentStreak = 2
	active.LastActiveDate = &fresh
	_, err = d.SaveWithTransactions(ctx, active, nil, 50)
	require.NoError(t, err)

	idle, err := d.GetOrCreate(ctx, 3, "2026-1")
	require.NoError(t, err)
	idle.LastActiveDate = &old
	_, err = d.SaveWithTransactions(ctx, idle, nil, 50)
	require.NoError(t, err)

	cutoff := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	result, err := d.ListLapsed(ctx, "2026-1", cutoff)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, uint(1), result[0].StudentID)
}

func TestUserDAO_Insert_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	d := NewUserDAO(db)
	ctx := context.Background()

	_, err := d.Insert(ctx, User{Email: "ana@example.com", Password: "x", Name: "Ana", Role: "student"})
	require.NoError(t, err)

	_, err = d.Insert(ctx, User{Email: "ana@example.com", Password: "y", Name: "Ana", Role: "student"})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}
