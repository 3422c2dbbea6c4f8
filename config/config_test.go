package config_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/gitinsight/config"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		description string
		content     string
		expect      func() *config.Config
		expectErr   bool
	}{
		{
			description: "overrides defaults",
			content: `port: 8080
staticDir: public
github:
  timeout: 10s
openai:
  chatModel: gpt-4o
timeouts:
  analyze: 2m30s
`,
			expect: func() *config.Config {
				ret := config.DefaultConfig()
				ret.Port = 8080
				ret.StaticDir = "public"
				ret.GitHub.Timeout = config.Duration(10 * time.Second)
				ret.OpenAI.ChatModel = "gpt-4o"
				ret.Timeouts.Analyze = config.Duration(150 * time.Second)
				return ret
			},
		},
		{
			description: "empty document",
			content:     "",
			expect:      config.DefaultConfig,
		},
		{
			description: "invalid duration",
			content:     "timeouts:\n  chat: soon\n",
			expectErr:   true,
		},
	}

	fs := afs.New()
	ctx := context.Background()
	for i, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			URL := "mem://localhost/gitinsight/config" + string(rune('a'+i)) + ".yaml"
			require.NoError(t, fs.Upload(ctx, URL, file.DefaultFileOsMode, strings.NewReader(tc.content)))
			actual, err := config.Load(ctx, URL)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, tc.expect(), actual)
		})
	}

	_, err := config.Load(ctx, "mem://localhost/gitinsight/missing.yaml")
	assert.Error(t, err)
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv(config.EnvGitHubToken, "ghp_token")
	t.Setenv(config.EnvOpenAIKey, "sk-test")
	t.Setenv(config.EnvOpenAIBaseURL, "http://localhost:9999/v1")
	t.Setenv(config.EnvPort, "4000")

	cfg := config.DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "ghp_token", cfg.Repository().Token)
	assert.Equal(t, 30*time.Second, cfg.Repository().Timeout)
	assert.Equal(t, "sk-test", cfg.Assistant().APIKey)
	assert.Equal(t, "http://localhost:9999/v1", cfg.Assistant().BaseURL)
	assert.Equal(t, 10, cfg.Assistant().HistoryLimit)

	t.Setenv(config.EnvPort, "http")
	assert.Error(t, config.DefaultConfig().ApplyEnv())
}

func TestLoadDotEnv(t *testing.T) {
	location := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(location, []byte("GITINSIGHT_TEST_VALUE=from-file\nGITINSIGHT_TEST_KEPT=from-file\n"), 0o600))
	t.Setenv("GITINSIGHT_TEST_KEPT", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("GITINSIGHT_TEST_VALUE") })

	require.NoError(t, config.LoadDotEnv(location, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("GITINSIGHT_TEST_VALUE"))
	assert.Equal(t, "from-env", os.Getenv("GITINSIGHT_TEST_KEPT"))
}

func TestConfig_Validate(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.NoError(t, cfg.Validate())
	cfg.Port = 70000
	assert.Error(t, cfg.Validate())
}
