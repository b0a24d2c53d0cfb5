package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultPort               = 5000
	defaultFrontendURL        = "http://localhost:5173"
	defaultTokenTTL           = 7 * 24 * time.Hour
	defaultStateTTL           = 10 * time.Minute
	defaultBcryptCost         = 10
	defaultMinPasswordLength  = 6
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
		// AllowOrigins falls back to OAuth.FrontendURL when empty.
		AllowOrigins []string `json:"allowOrigins" yaml:"allowOrigins"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Migration struct {
		AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"`
	} `json:"migration" yaml:"migration"`

	SecretKey struct {
		Session string `json:"session" yaml:"session"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	OAuth *OAuthConfig `json:"oauth" yaml:"oauth"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	TokenTTL          time.Duration `json:"tokenTTL" yaml:"tokenTTL"`
	StateTTL          time.Duration `json:"stateTTL" yaml:"stateTTL"`
	BcryptCost        int           `json:"bcryptCost" yaml:"bcryptCost"`
	MinPasswordLength int           `json:"minPasswordLength" yaml:"minPasswordLength"`
}

// OAuthConfig holds the frontend redirect target and per-provider client settings.
type OAuthConfig struct {
	FrontendURL string              `json:"frontendURL" yaml:"frontendURL"`
	Google      OAuthProviderConfig `json:"google" yaml:"google"`
	GitHub      OAuthProviderConfig `json:"github" yaml:"github"`
}

// OAuthProviderConfig is a standard OAuth2 client registration.
// A provider with an empty ClientID is not registered.
type OAuthProviderConfig struct {
	ClientID     string `json:"clientID" yaml:"clientID"`
	ClientSecret string `json:"clientSecret" yaml:"clientSecret"`
	RedirectURI  string `json:"redirectURI" yaml:"redirectURI"`
}

// Enabled reports whether the provider has client credentials.
func (c OAuthProviderConfig) Enabled() bool {
	return strings.TrimSpace(c.ClientID) != ""
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// envAliases maps conventional deployment variable names (PORT, JWT_SECRET,
// DB_*, provider credentials) onto config paths.
var envAliases = map[string]string{
	"PORT":                 "http.port",
	"JWT_SECRET":           "secretKey.session",
	"JWT_EXPIRE":           "auth.tokenTTL",
	"FRONTEND_URL":         "oauth.frontendURL",
	"GOOGLE_CLIENT_ID":     "oauth.google.clientID",
	"GOOGLE_CLIENT_SECRET": "oauth.google.clientSecret",
	"GOOGLE_CALLBACK_URL":  "oauth.google.redirectURI",
	"GITHUB_CLIENT_ID":     "oauth.github.clientID",
	"GITHUB_CLIENT_SECRET": "oauth.github.clientSecret",
	"GITHUB_CALLBACK_URL":  "oauth.github.redirectURI",
	"DB_HOST":              "postgres.master.host",
	"DB_PORT":              "postgres.master.port",
	"DB_USER":              "postgres.master.userName",
	"DB_PASSWORD":          "postgres.master.password",
	"DB_NAME":              "postgres.database",
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			if alias, ok := envAliases[k]; ok {
				return alias, v
			}

			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringToDayDurationHookFunc(),
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env failed")
	}

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.applyFrontendOrigin()

	if cfg.Postgres != nil {
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = defaultPort
	}

	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = defaultTokenTTL
	}
	if c.Auth.StateTTL == 0 {
		c.Auth.StateTTL = defaultStateTTL
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = defaultBcryptCost
	}
	if c.Auth.MinPasswordLength == 0 {
		c.Auth.MinPasswordLength = defaultMinPasswordLength
	}

	if c.OAuth == nil {
		c.OAuth = &OAuthConfig{}
	}
	if strings.TrimSpace(c.OAuth.FrontendURL) == "" {
		c.OAuth.FrontendURL = defaultFrontendURL
	}
	c.OAuth.FrontendURL = strings.TrimRight(c.OAuth.FrontendURL, "/")

	if len(c.HTTP.AllowOrigins) == 0 {
		c.HTTP.AllowOrigins = []string{c.OAuth.FrontendURL}
	}
}

// applyFrontendOrigin makes FRONTEND_URL the only CORS origin unless
// HTTP_ALLOWORIGINS is set explicitly.
func (c *Config) applyFrontendOrigin() {
	if _, ok := os.LookupEnv("FRONTEND_URL"); !ok {
		return
	}
	if _, ok := os.LookupEnv("HTTP_ALLOWORIGINS"); ok {
		return
	}

	c.HTTP.AllowOrigins = []string{c.OAuth.FrontendURL}
}

// Validate reports settings the service cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SecretKey.Session) == "" {
		return errors.New("secretKey.session is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.Errorf("auth.tokenTTL must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Auth.StateTTL <= 0 {
		return errors.Errorf("auth.stateTTL must be positive, got %s", c.Auth.StateTTL)
	}
	if c.Postgres == nil {
		return errors.New("postgres config is required")
	}

	return nil
}

// ParseDuration extends time.ParseDuration with a whole-day unit ("7d").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid day duration %q", s)
		}

		return time.Duration(n) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid duration %q", s)
	}

	return d, nil
}

func stringToDayDurationHookFunc() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))

	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != durationType {
			return data, nil
		}

		raw, _ := data.(string)
		if !strings.HasSuffix(strings.TrimSpace(raw), "d") {
			return data, nil
		}

		return ParseDuration(raw)
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
