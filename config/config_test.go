package config

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points secrets at an empty directory and clears the variables LoadConfig reads
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	for _, name := range []string{
		"RH_ENV", "ENV", "SERVER_HOST", "SERVER_PORT", "STORE_DRIVER", "MONGO_URI", "MONGO_DATABASE",
		"MONGO_COLLECTION", "REDIS_URL", "REDIS_ADDR", "REDIS_PASSWORD", "LOG_LEVEL", "LOG_FORMAT",
		"SEED_SOURCE", "RATE_LIMIT_PER_MINUTE", "CORS_ORIGINS",
	} {
		t.Setenv(name, "")
	}
	// Setenv registers the restore; unset so the optional default path applies
	t.Setenv("RH_CONFIG", "")
	os.Unsetenv("RH_CONFIG")
	return dir
}

func TestLoadConfig(t *testing.T) {
	isolate(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, http://frontend:5173")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
	assert.Equal(t, "recipeharbor", cfg.MongoDatabase)
	assert.Equal(t, "recipes", cfg.MongoCollection)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, []string{"http://localhost:5173", "http://frontend:5173"}, cfg.CORSOrigins)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
serverPort: "7070"
storeDriver: memory
logFormat: json
seedSource: s3://recipes-bucket/seed/recipes.json
`), 0o644))
	t.Setenv("RH_CONFIG", path)
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.ServerPort)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "text", cfg.LogFormat, "env overrides the file")
	assert.Equal(t, "s3://recipes-bucket/seed/recipes.json", cfg.SeedSource)
}

func TestLoadConfigExplicitFileMissing(t *testing.T) {
	dir := isolate(t)
	t.Setenv("RH_CONFIG", filepath.Join(dir, "nope.yaml"))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigSecrets(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mongo_uri"), []byte("mongodb://secret-host:27017\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "redis_password"), []byte("hunter2"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://secret-host:27017", cfg.MongoURI)
	assert.Equal(t, "hunter2", cfg.RedisPassword)
}

func TestLoadConfigSecretsWinInProduction(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CI", "")
	t.Setenv("RH_ENV", "production")
	t.Setenv("MONGO_URI", "mongodb://from-env:27017")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mongo_uri"), []byte("mongodb://from-secret:27017"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Production, cfg.Environment)
	assert.Equal(t, "mongodb://from-secret:27017", cfg.MongoURI)
}

func TestValidateConfigCollectsProblems(t *testing.T) {
	cfg := Defaults()
	cfg.ServerPort = "http"
	cfg.StoreDriver = "postgres"
	cfg.RedisURL = "localhost:6379"
	cfg.LogFormat = "xml"

	err := ValidateConfig(cfg)
	require.Error(t, err)

	var fields []string
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var verr ValidationError
		require.True(t, errors.As(e, &verr))
		fields = append(fields, verr.Field)
	}
	assert.ElementsMatch(t, []string{"SERVER_PORT", "STORE_DRIVER", "REDIS_URL", "LOG_FORMAT"}, fields)
}

func TestValidateConfigMongoRequiresURI(t *testing.T) {
	cfg := Defaults()
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")

	cfg.MongoURI = "postgres://localhost"
	assert.Error(t, ValidateConfig(cfg))

	cfg.MongoURI = "mongodb+srv://cluster.example.net"
	assert.NoError(t, ValidateConfig(cfg))
}

func TestMemoryDriverRejectedInProduction(t *testing.T) {
	cfg := Defaults()
	cfg.StoreDriver = DriverMemory
	assert.NoError(t, ValidateConfig(cfg))

	cfg.Environment = Production
	assert.Error(t, ValidateConfig(cfg))
}

func TestParseS3URI(t *testing.T) {
	bucket, key, ok := ParseS3URI("s3://recipes-bucket/seed/recipes.json")
	assert.True(t, ok)
	assert.Equal(t, "recipes-bucket", bucket)
	assert.Equal(t, "seed/recipes.json", key)

	for _, bad := range []string{"", "recipes.json", "s3://bucket", "s3://bucket/", "s3:///key"} {
		_, _, ok := ParseS3URI(bad)
		assert.False(t, ok, bad)
	}
}

type fakeGetter struct {
	body  string
	input *s3.GetObjectInput
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.input = in
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewBufferString(f.body))}, nil
}

func TestS3Fetch(t *testing.T) {
	getter := &fakeGetter{body: `[{"name":"Pesto Pasta"}]`}
	s := &S3Config{Client: getter}

	data, err := s.Fetch(context.Background(), "recipes-bucket", "seed/recipes.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Pesto Pasta"}]`, string(data))
	assert.Equal(t, "recipes-bucket", *getter.input.Bucket)
	assert.Equal(t, "seed/recipes.json", *getter.input.Key)
}
