package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "catalogd", cfg.System.Appid)
	assert.Equal(t, 1816, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "https://cdn.contentful.com", cfg.Contentful.BaseURL)
	assert.Equal(t, "master", cfg.Contentful.Environment)
	assert.Equal(t, 100, cfg.Contentful.PageLimit)
	assert.Equal(t, "@hourly", cfg.Sync.Cron)
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "catalogd.yml")
	content := `
web:
  port: 9090
contentful:
  space_id: spaceX
  access_token: tokenX
  page_limit: 50
sync:
  cron: "@every 10m"
`
	require.NoError(t, os.WriteFile(cfile, []byte(content), 0o644))

	cfg, err := LoadConfig(cfile)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "spaceX", cfg.Contentful.SpaceID)
	assert.Equal(t, "tokenX", cfg.Contentful.AccessToken)
	assert.Equal(t, 50, cfg.Contentful.PageLimit)
	assert.Equal(t, "@every 10m", cfg.Sync.Cron)
	// untouched sections keep their defaults
	assert.Equal(t, "0.0.0.0", cfg.Web.Host)
	assert.Equal(t, "postgres", cfg.Database.Type)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("CATALOGD_DB_PWD", "secret-pw")
	t.Setenv("CONTENTFUL_SPACE_ID", "env-space")
	t.Setenv("CONTENTFUL_ACCESS_TOKEN", "env-token")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "secret-pw", cfg.Database.Passwd)
	assert.Equal(t, "env-space", cfg.Contentful.SpaceID)
	assert.Equal(t, "env-token", cfg.Contentful.AccessToken)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
