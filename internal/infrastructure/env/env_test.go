package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvService_Getters(t *testing.T) {
	t.Setenv("HARNESS_TEST_STR", "value")
	t.Setenv("HARNESS_TEST_BOOL", "true")
	t.Setenv("HARNESS_TEST_BAD_BOOL", "nope")
	t.Setenv("HARNESS_TEST_INT", "42")
	t.Setenv("HARNESS_TEST_DUR", "1500ms")
	t.Setenv("HARNESS_TEST_SECS", "30")

	e := &EnvService{}

	assert.Equal(t, "value", e.Get("HARNESS_TEST_STR"))
	assert.Equal(t, "value", e.GetWithDefault("HARNESS_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", e.GetWithDefault("HARNESS_TEST_MISSING", "fallback"))

	assert.True(t, e.GetBool("HARNESS_TEST_BOOL", false))
	assert.True(t, e.GetBool("HARNESS_TEST_BAD_BOOL", true))
	assert.False(t, e.GetBool("HARNESS_TEST_MISSING", false))

	assert.Equal(t, 42, e.GetInt("HARNESS_TEST_INT", 0))
	assert.Equal(t, 7, e.GetInt("HARNESS_TEST_STR", 7))

	assert.Equal(t, 1500*time.Millisecond, e.GetDuration("HARNESS_TEST_DUR", time.Second))
	assert.Equal(t, 30*time.Second, e.GetDuration("HARNESS_TEST_SECS", time.Second))
	assert.Equal(t, time.Second, e.GetDuration("HARNESS_TEST_STR", time.Second))
}

func TestNewEnvService_OverlaysAppEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HARNESS_OVERLAY=base\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.ci"), []byte("HARNESS_OVERLAY=ci\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		_ = os.Unsetenv("HARNESS_OVERLAY")
	})
	t.Setenv("HARNESS_ENV", "ci")

	e := NewEnvService()
	assert.Equal(t, "ci", e.Stage())
	assert.Equal(t, "ci", e.Get("HARNESS_OVERLAY"))
}

func TestNewEnvService_DefaultStageWithoutFiles(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HARNESS_ENV", "")

	e := NewEnvService()
	assert.Equal(t, "local", e.Stage())
}

func TestEnvService_BlankIsUnset(t *testing.T) {
	t.Setenv("HARNESS_TEST_BLANK", "   ")
	t.Setenv("HARNESS_TEST_PADDED", " 9 ")

	e := &EnvService{}
	assert.Equal(t, "fallback", e.GetWithDefault("HARNESS_TEST_BLANK", "fallback"))
	assert.True(t, e.GetBool("HARNESS_TEST_BLANK", true))
	assert.Equal(t, 9, e.GetInt("HARNESS_TEST_PADDED", 0))
	assert.Equal(t, "local", e.Stage())
}
