package ytclient_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/effective-security/youtrack-mcp/pkg/ytclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadConfig(t *testing.T) {
	t.Setenv("YOUTRACK_URL", "")
	t.Setenv("YOUTRACK_API_TOKEN", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "youtrack.yaml")
	cfgYaml := `
url: https://example.youtrack.cloud
token: perm:file
timeout: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(cfgYaml), 0o600))

	cfg, err := ytclient.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.youtrack.cloud", cfg.BaseURL)
	assert.Equal(t, "perm:file", cfg.Token)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func Test_LoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("YOUTRACK_URL", "https://env.youtrack.cloud")
	t.Setenv("YOUTRACK_API_TOKEN", "perm:env")

	cfg, err := ytclient.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "https://env.youtrack.cloud", cfg.BaseURL)
	assert.Equal(t, "perm:env", cfg.Token)
	assert.Equal(t, ytclient.DefaultTimeout, cfg.Timeout)
}

func Test_LoadConfig_MissingFile(t *testing.T) {
	_, err := ytclient.LoadConfig("/nonexistent/youtrack.yaml")
	assert.ErrorContains(t, err, "failed to read config file")
}
