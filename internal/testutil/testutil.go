// Package testutil provides a migrated throwaway database for tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/EvgrafovDR/todolist-clone/internal/db"
	"github.com/EvgrafovDR/todolist-clone/internal/model"
	"github.com/EvgrafovDR/todolist-clone/internal/repository"
)

// NewDB opens a file-backed SQLite database in a per-test temp directory and
// runs all migrations on it. A shared in-memory database does not survive the
// connection pool, so tests get a real file instead.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Init("sqlite", path+"?_pragma=foreign_keys(1)")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = database.Close()
	})

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	return database
}

// CreateUser inserts a user row directly. The password hash is a placeholder;
// use AuthService.Signup in tests that exercise credentials.
func CreateUser(t *testing.T, database *sqlx.DB, username string) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: "not-a-real-hash",
		CreatedAt:    time.Now(),
	}

	err := repository.NewUserRepository(database).Create(user)
	require.NoError(t, err)

	return user
}
