package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) }) //nolint:errcheck
}

func TestLoadWithoutEnvFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "data/college_enrollments.db", cfg.Database.Path)
	assert.Equal(t, 1, cfg.Database.MaxOpenConns)
	assert.Equal(t, int64(6), cfg.Courses.MaxCredits)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
}

func TestLoadEnvVarsOverrideDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("COURSE_MAX_CREDITS", "12")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, http://example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, int64(12), cfg.Courses.MaxCredits)
	assert.Equal(t, []string{"http://localhost:3000", "http://example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=8222\nDB_PATH=store/app.db\n"), 0o644))
	chdir(t, dir)
	// godotenv exports the file into the process environment.
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("DB_PATH")
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8222, cfg.Port)
	assert.Equal(t, "store/app.db", cfg.Database.Path)
}
