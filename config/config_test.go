package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  env: test
  log:
    level: info
http:
  port: 8080
secretKey:
  session: from-yaml
auth:
  tokenTTL: 2d
  bcryptCost: 4
oauth:
  frontendURL: http://app.example.com/
  github:
    clientID: gh-id
`

func writeConfig(t *testing.T, name, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o600))
	t.Chdir(dir)
}

func TestLoadWithEnv_YAMLAndEnvOverrides(t *testing.T) {
	writeConfig(t, "keeper", testYAML)
	t.Setenv("AUTH_BCRYPTCOST", "12")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadWithEnv[Config]("keeper")
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 48*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "from-env", cfg.SecretKey.Session)
	assert.Equal(t, "gh-id", cfg.OAuth.GitHub.ClientID)
	assert.True(t, cfg.OAuth.GitHub.Enabled())
	assert.False(t, cfg.OAuth.Google.Enabled())
}

func TestLoadWithEnv_DeploymentAliases(t *testing.T) {
	writeConfig(t, "keeper", testYAML)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "keeper")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("DB_NAME", "notes_app")

	cfg, err := LoadWithEnv[Config]("keeper")
	require.NoError(t, err)

	require.NotNil(t, cfg.Postgres)
	assert.Equal(t, "db.internal", cfg.Postgres.Master.Host)
	assert.Equal(t, "6543", cfg.Postgres.Master.Port)
	assert.Equal(t, "keeper", cfg.Postgres.Master.UserName)
	assert.Equal(t, "s3cret", cfg.Postgres.Master.Password)
	assert.Equal(t, "notes_app", cfg.Postgres.Database)
}

func TestApplyFrontendOrigin(t *testing.T) {
	writeConfig(t, "keeper", strings.Replace(testYAML, "  port: 8080\n", "  port: 8080\n  allowOrigins:\n    - http://yaml.example.com\n", 1))
	t.Setenv("FRONTEND_URL", "https://notes.example.com/")

	cfg, err := LoadWithEnv[Config]("keeper")
	require.NoError(t, err)
	require.Equal(t, []string{"http://yaml.example.com"}, cfg.HTTP.AllowOrigins)
	cfg.applyDefaults()
	cfg.applyFrontendOrigin()

	assert.Equal(t, "https://notes.example.com", cfg.OAuth.FrontendURL)
	assert.Equal(t, []string{"https://notes.example.com"}, cfg.HTTP.AllowOrigins)
}

func TestApplyFrontendOrigin_ExplicitOriginsWin(t *testing.T) {
	t.Setenv("FRONTEND_URL", "https://notes.example.com")
	t.Setenv("HTTP_ALLOWORIGINS", "https://other.example.com")
	cfg := &Config{}
	cfg.HTTP.AllowOrigins = []string{"https://other.example.com"}
	cfg.applyDefaults()

	cfg.applyFrontendOrigin()

	assert.Equal(t, []string{"https://other.example.com"}, cfg.HTTP.AllowOrigins)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.OAuth = &OAuthConfig{FrontendURL: "http://app.example.com/"}

	cfg.applyDefaults()

	assert.Equal(t, defaultPort, cfg.HTTP.Port)
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.Auth.StateTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 6, cfg.Auth.MinPasswordLength)
	assert.Equal(t, "http://app.example.com", cfg.OAuth.FrontendURL)
	assert.Equal(t, []string{"http://app.example.com"}, cfg.HTTP.AllowOrigins)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	require.ErrorContains(t, cfg.Validate(), "secretKey.session")

	cfg.SecretKey.Session = "secret"
	require.ErrorContains(t, cfg.Validate(), "postgres")
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "7d", want: 7 * 24 * time.Hour},
		{in: " 1d ", want: 24 * time.Hour},
		{in: "90m", want: 90 * time.Minute},
		{in: "1h30m", want: 90 * time.Minute},
		{in: "xd", wantErr: true},
		{in: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
