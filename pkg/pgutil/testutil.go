package pgutil

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"

	"github.com/chainsafe/wallet-console/pkg/config"
)

const (
	testUser     = "console"
	testPassword = "console"
	testDatabase = "console_test"
)

// RequireDocker skips the test when no docker daemon socket answers.
func RequireDocker(t *testing.T) {
	t.Helper()

	candidates := []string{
		"/var/run/docker.sock",
		filepath.Join(os.Getenv("HOME"), ".docker/run/docker.sock"),
	}
	if host := os.Getenv("DOCKER_HOST"); host != "" {
		return
	}
	for _, sock := range candidates {
		if _, err := os.Stat(sock); err != nil {
			continue
		}
		conn, err := (&net.Dialer{}).DialContext(context.Background(), "unix", sock)
		if err == nil {
			_ = conn.Close()
			return
		}
	}
	t.Skip("docker daemon socket is not accessible; skipping postgres-backed test")
}

// SetupTestDB starts a PostgreSQL container and returns a connection to it.
// The container is terminated through t.Cleanup as well as the returned func.
func SetupTestDB(t *testing.T) (*bun.DB, func()) {
	t.Helper()
	RequireDocker(t)
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase(testDatabase),
		postgres.WithUsername(testUser),
		postgres.WithPassword(testPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	terminate := func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	host, err := container.Host(ctx)
	if err != nil {
		terminate()
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		terminate()
		t.Fatalf("failed to get container port: %v", err)
	}

	cfg := &config.DatabaseConfig{
		Enabled:  true,
		Host:     host,
		Port:     port.Int(),
		User:     testUser,
		Password: testPassword,
		Database: testDatabase,
		SSLMode:  "disable",
	}

	var db *bun.DB
	backoff := 100 * time.Millisecond
	for attempt := 1; ; attempt++ {
		db, err = ConnectDB(ctx, cfg, nil)
		if err == nil {
			break
		}
		if attempt == 8 {
			terminate()
			t.Fatalf("failed to connect to test database after %d attempts: %v", attempt, err)
		}
		time.Sleep(backoff)
		backoff *= 2
	}

	var once bool
	cleanup := func() {
		if once {
			return
		}
		once = true
		_ = db.Close()
		terminate()
	}
	t.Cleanup(cleanup)
	return db, cleanup
}

// AssertTableExists fails the test when the table is missing.
func AssertTableExists(t *testing.T, db *bun.DB, table string) {
	t.Helper()
	if !tableExists(t, db, table) {
		t.Errorf("table %s does not exist", table)
	}
}

// AssertTableNotExists fails the test when the table is present.
func AssertTableNotExists(t *testing.T, db *bun.DB, table string) {
	t.Helper()
	if tableExists(t, db, table) {
		t.Errorf("table %s should not exist but it does", table)
	}
}

// AssertIndexExists fails the test when the index is missing.
func AssertIndexExists(t *testing.T, db *bun.DB, index string) {
	t.Helper()

	var exists bool
	err := db.NewSelect().
		ColumnExpr("EXISTS (SELECT 1 FROM pg_indexes WHERE schemaname = ? AND indexname = ?)", "public", index).
		Scan(context.Background(), &exists)
	if err != nil {
		t.Fatalf("failed to check if index %s exists: %v", index, err)
	}
	if !exists {
		t.Errorf("index %s does not exist", index)
	}
}

// AssertRowCount fails the test when the table row count differs.
func AssertRowCount(t *testing.T, db *bun.DB, table string, expected int) {
	t.Helper()

	var count int
	err := db.NewSelect().
		TableExpr("?", bun.Ident(table)).
		ColumnExpr("COUNT(*)").
		Scan(context.Background(), &count)
	if err != nil {
		t.Fatalf("failed to count rows in table %s: %v", table, err)
	}
	if count != expected {
		t.Errorf("table %s: expected %d rows, got %d", table, expected, count)
	}
}

func tableExists(t *testing.T, db *bun.DB, table string) bool {
	t.Helper()

	var exists bool
	err := db.NewSelect().
		ColumnExpr("EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = ? AND table_name = ?)", "public", table).
		Scan(context.Background(), &exists)
	if err != nil {
		t.Fatalf("failed to check if table %s exists: %v", table, err)
	}
	return exists
}
