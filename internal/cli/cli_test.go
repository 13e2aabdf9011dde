package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryEnv configures the in-memory store with no file, secrets or redis
func memoryEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("RH_ENV", "test")
	for _, name := range []string{"REDIS_URL", "REDIS_ADDR", "SEED_SOURCE", "LOG_FORMAT", "SERVER_PORT", "RATE_LIMIT_PER_MINUTE"} {
		t.Setenv(name, "")
	}
	t.Setenv("RH_CONFIG", "")
	os.Unsetenv("RH_CONFIG")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootListsCommands(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	for _, name := range []string{"serve", "migrate", "seed"} {
		assert.Contains(t, out, name)
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "test")
}

func TestSeedBundledIntoMemory(t *testing.T) {
	memoryEnv(t)
	out, err := run(t, "seed")
	require.NoError(t, err)
	assert.Equal(t, "seeded 12 recipes\n", out)
}

func TestSeedFromFile(t *testing.T) {
	memoryEnv(t)
	path := filepath.Join(t.TempDir(), "recipes.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Tomato Soup","servings":2,"vegetarian":true}]`), 0o644))
	t.Setenv("SEED_SOURCE", path)

	out, err := run(t, "seed")
	require.NoError(t, err)
	assert.Equal(t, "seeded 1 recipes\n", out)
}

func TestSeedBadSource(t *testing.T) {
	memoryEnv(t)
	t.Setenv("SEED_SOURCE", filepath.Join(t.TempDir(), "missing.json"))

	_, err := run(t, "seed")
	assert.Error(t, err)
}

func TestMigrateNeedsMongo(t *testing.T) {
	memoryEnv(t)
	_, err := run(t, "migrate")
	assert.ErrorContains(t, err, "migrate needs the mongo store driver")
}

func TestServeRejectsInvalidConfig(t *testing.T) {
	memoryEnv(t)
	t.Setenv("SERVER_PORT", "not-a-port")

	_, err := run(t, "serve")
	assert.ErrorContains(t, err, "SERVER_PORT")
}

func TestServeRejectsArgs(t *testing.T) {
	_, err := run(t, "serve", "extra")
	assert.Error(t, err)
}
