package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func getTestDB(t *testing.T) (*sql.DB, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)

	cleanup := func() {
		_ = db.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return db, cleanup
}

func getMigrationsPath(t *testing.T) string {
	projectRoot, err := filepath.Abs("../..")
	require.NoError(t, err)

	migrationsPath := filepath.Join(projectRoot, "migrations")
	t.Logf("Migrations path: %s", migrationsPath)
	return migrationsPath
}

func TestRunMigrations(t *testing.T) {
	db, cleanup := getTestDB(t)
	defer cleanup()

	migrationsPath := getMigrationsPath(t)

	err := Run(db, migrationsPath)
	require.NoError(t, err)

	var exists bool
	err = db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = 'users'
		)
	`).Scan(&exists)
	require.NoError(t, err)
	require.True(t, exists, "Table 'users' should exist")

	err = db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = 'posts'
		)
	`).Scan(&exists)
	require.NoError(t, err)
	require.True(t, exists, "Table 'posts' should exist")

	err = db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM pg_indexes
			WHERE schemaname = 'public'
			AND tablename = 'users'
			AND indexname = 'idx_users_email'
		)
	`).Scan(&exists)
	require.NoError(t, err)
	require.True(t, exists, "Index should exist")

	var seededCount int
	err = db.QueryRow("SELECT COUNT(*) FROM posts WHERE is_published = TRUE").Scan(&seededCount)
	require.NoError(t, err)
	require.Equal(t, 2, seededCount, "Should have two seeded posts")
}

func TestMigrationIdempotency(t *testing.T) {
	db, cleanup := getTestDB(t)
	defer cleanup()

	migrationsPath := getMigrationsPath(t)

	err := Run(db, migrationsPath)
	require.NoError(t, err)

	err = Run(db, migrationsPath)
	require.NoError(t, err, "Running migrations twice should not fail")

	var seededCount int
	err = db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&seededCount)
	require.NoError(t, err)
	require.Equal(t, 2, seededCount, "Should still have two seeded posts after second run")
}
