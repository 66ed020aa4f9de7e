package persistence

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/config"
)

func TestMigrationFilesSorted(t *testing.T) {
	fsys := fstest.MapFS{
		"002_index.sql":         {Data: []byte("SELECT 2;")},
		"001_session_audit.sql": {Data: []byte("SELECT 1;")},
		"README.md":             {Data: []byte("notes")},
		"archive/000_old.sql":   {Data: []byte("SELECT 0;")},
	}

	names, err := migrationFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_session_audit.sql", "002_index.sql"}, names)
}

func TestRunMigrationsWithoutPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, fstest.MapFS{}, zap.NewNop()))
}

func TestPostgresDisabled(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, pg.Enabled())
	assert.ErrorIs(t, pg.Ping(context.Background()), ErrPostgresDisabled)
	assert.Nil(t, pg.PoolHandle())
	pg.Close()
}

func TestRedisPing(t *testing.T) {
	srv := miniredis.RunT(t)
	r := NewRedis(context.Background(), config.RedisConfig{Addr: srv.Addr()}, zap.NewNop())
	defer r.Close()

	assert.NoError(t, r.Ping(context.Background()))
	assert.NotNil(t, r.Handle())

	var missing *Redis
	assert.Error(t, missing.Ping(context.Background()))
	assert.Nil(t, missing.Handle())
}
