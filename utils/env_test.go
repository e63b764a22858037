package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("NOTEFUL_INT", "42")
	t.Setenv("NOTEFUL_BAD_INT", "forty-two")
	t.Setenv("NOTEFUL_UINT", "100")
	t.Setenv("NOTEFUL_FLOAT", "2.5")
	t.Setenv("NOTEFUL_BOOL", "false")
	t.Setenv("NOTEFUL_DURATION", "250ms")
	t.Setenv("NOTEFUL_SECONDS", "60")
	t.Setenv("NOTEFUL_EMPTY", "")
	t.Setenv("NOTEFUL_LIST", " http://a.test, ,http://b.test ")

	assert.Equal(t, 42, GetEnvAsInt("NOTEFUL_INT", 1))
	assert.Equal(t, 1, GetEnvAsInt("NOTEFUL_BAD_INT", 1))
	assert.Equal(t, 7, GetEnvAsInt("NOTEFUL_UNSET", 7))
	assert.Equal(t, uint64(100), GetEnvAsUint64("NOTEFUL_UINT", 1))
	assert.Equal(t, 2.5, GetEnvAsFloat("NOTEFUL_FLOAT", 0))
	assert.False(t, GetEnvAsBool("NOTEFUL_BOOL", true))
	assert.Equal(t, 250*time.Millisecond, GetEnvAsDuration("NOTEFUL_DURATION", time.Second))
	assert.Equal(t, time.Minute, GetEnvAsDuration("NOTEFUL_SECONDS", time.Second))
	assert.Equal(t, "fallback", GetEnvAsString("NOTEFUL_EMPTY", "fallback"))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, GetEnvAsStringSlice("NOTEFUL_LIST", nil))
	assert.Equal(t, []string{"*"}, GetEnvAsStringSlice("NOTEFUL_UNSET", []string{"*"}))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("NOTEFUL_FROM_FILE=yes\n"), 0o600))

	t.Setenv("NOTEFUL_FROM_FILE", "")
	os.Unsetenv("NOTEFUL_FROM_FILE")

	require.NoError(t, LoadEnvFile(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "yes", os.Getenv("NOTEFUL_FROM_FILE"))
}
