package entrypoint

import (
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/gatekeeper/internal/auth"
	"github.com/mrlokans/gatekeeper/internal/config"
	"github.com/mrlokans/gatekeeper/internal/database"
)

func setupDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "entry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewSessionStore(t *testing.T) {
	db := setupDB(t)
	mr := miniredis.RunT(t)

	tests := []struct {
		kind config.SessionStoreKind
		want any
	}{
		{config.SessionStoreMemory, &auth.MemorySessionStore{}},
		{"", &auth.MemorySessionStore{}},
		{config.SessionStoreSQLite, &auth.SCSSessionStore{}},
		{config.SessionStoreRedis, &auth.RedisSessionStore{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			store, closer, err := NewSessionStore(config.Auth{
				SessionStore: tt.kind,
				RedisAddr:    mr.Addr(),
				RedisPrefix:  "test:",
			}, db)
			require.NoError(t, err)
			assert.IsType(t, tt.want, store)
			if closer != nil {
				assert.NoError(t, closer.Close())
			}
		})
	}

	_, _, err := NewSessionStore(config.Auth{SessionStore: "etcd"}, db)
	assert.Error(t, err)
}

func TestNewSessionStore_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := NewSessionStore(config.Auth{SessionStore: config.SessionStoreRedis, RedisAddr: addr}, setupDB(t))
	assert.Error(t, err)
}

func TestBuildRouterConfig(t *testing.T) {
	db := setupDB(t)
	cfg := &config.Config{Auth: config.Auth{BcryptCost: 4, MaxConcurrentHashes: 1, SessionName: "sid"}}

	cfg.Auth.Type = config.AuthTypeBasic
	routerCfg, err := BuildRouterConfig(cfg, db, nil, "test")
	require.NoError(t, err)
	assert.IsType(t, &auth.BasicAuth{}, routerCfg.Authenticator)
	assert.Nil(t, routerCfg.SessionAuth)

	cfg.Auth.Type = config.AuthTypeSession
	_, err = BuildRouterConfig(cfg, db, nil, "test")
	assert.Error(t, err)

	routerCfg, err = BuildRouterConfig(cfg, db, auth.NewMemorySessionStore(), "test")
	require.NoError(t, err)
	require.NotNil(t, routerCfg.SessionAuth)
	assert.Equal(t, "sid", routerCfg.SessionAuth.SessionName())

	cfg.Auth.Type = "oauth"
	_, err = BuildRouterConfig(cfg, db, nil, "test")
	assert.Error(t, err)
}
