// Package dbtest provides shared PostgreSQL test setup for the Cognitive
// Record Store's integration tests.
package dbtest

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/madeengine/memoryd/internal/store"
)

var (
	sharedConnStr string
	containerOnce sync.Once
	containerErr  error
)

// NewClient returns a store.Client backed by CI_DATABASE_URL if set, or a
// shared local postgres testcontainer otherwise (started once per test
// binary). The underlying connection pool is closed via t.Cleanup.
func NewClient(t *testing.T) *store.Client {
	ctx := context.Background()

	var connStr string
	if ciURL := os.Getenv("CI_DATABASE_URL"); ciURL != "" {
		t.Log("using external PostgreSQL from CI_DATABASE_URL")
		connStr = ciURL
	} else {
		connStr = getOrCreateSharedContainer(t)
	}

	client, err := store.NewClientFromDSN(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func getOrCreateSharedContainer(t *testing.T) string {
	containerOnce.Do(func() {
		ctx := context.Background()
		t.Log("starting shared PostgreSQL testcontainer")

		pgContainer, err := postgres.Run(ctx,
			"postgres:17-alpine",
			postgres.WithDatabase("test"),
			postgres.WithUsername("test"),
			postgres.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			containerErr = err
			return
		}

		connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			containerErr = err
			return
		}
		sharedConnStr = connStr
	})

	require.NoError(t, containerErr, "failed to start shared postgres test container")
	return sharedConnStr
}
