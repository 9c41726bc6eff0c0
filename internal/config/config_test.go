package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://admin.example.com")
	t.Setenv("APP_MIGRATE", "true")
	t.Setenv("RATE_RPS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"http://localhost:5173", "https://admin.example.com"}, cfg.CORSOrigins)
	assert.True(t, cfg.Migrate)
	assert.Equal(t, 100, cfg.RateRPS)
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	assert.True(t, p.Allows("books", OpList, "user"))
	assert.True(t, p.Allows("books", OpGet, "user"))
	assert.False(t, p.Allows("books", OpCreate, "user"))
	assert.True(t, p.Allows("books", OpDelete, "superadmin"))
	assert.True(t, p.Allows("authors", OpList, "user"))
	assert.False(t, p.Allows("authors", OpGet, "user"))
	assert.False(t, p.Allows("logs", OpList, "user"))
	assert.True(t, p.Allows("export", OpExport, "admin"))
	assert.False(t, p.Allows("unknown", OpList, "admin"))
}

func TestLoadPolicy(t *testing.T) {
	p, err := LoadPolicy(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), p)

	path := filepath.Join(t.TempDir(), "roles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logs:\n  list: [superadmin]\n"), 0o600))

	p, err = LoadPolicy(path)
	require.NoError(t, err)
	assert.False(t, p.Allows("logs", OpList, "admin"))
	assert.True(t, p.Allows("logs", OpList, "superadmin"))
	assert.True(t, p.Allows("books", OpList, "user"), "entries not in the file keep their defaults")

	require.NoError(t, os.WriteFile(path, []byte("logs: [oops"), 0o600))
	_, err = LoadPolicy(path)
	assert.Error(t, err)
}
