package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIURL       = "http://127.0.0.1:8000"
	DefaultLogLevel     = "debug"
	DefaultDBFileName   = ".paste.db"
	DefaultBackend      = "sqlite"
	DefaultRedisPrefix  = "paste:"
	DefaultTheme        = "monokai"
	DefaultMaxBodyBytes = int64(10 << 20)

	configFileName           = ".paste.toml"
	configDirEnvKey          = "PASTE_CONFIG_DIR"
	trustProjectConfigEnvKey = "PASTE_TRUST_PROJECT_CONFIG"
)

// StorageConfig selects and configures the paste storage backend.
type StorageConfig struct {
	Backend     string `toml:"backend"`
	DBPath      string `toml:"db_path"`
	PostgresDSN string `toml:"postgres_dsn"`
	RedisAddr   string `toml:"redis_addr"`
	RedisPrefix string `toml:"redis_prefix"`
}

// HighlightConfig configures terminal rendering of pastes.
type HighlightConfig struct {
	Theme string `toml:"theme"`
}

// Config defines runtime configuration for paste.
type Config struct {
	APIURL                   string          `toml:"api_url"`
	LogLevel                 string          `toml:"log_level"`
	MaxBodyBytes             int64           `toml:"max_body_bytes"`
	CORSOrigins              []string        `toml:"cors_origins"`
	Storage                  StorageConfig   `toml:"storage"`
	Highlight                HighlightConfig `toml:"highlight"`
	TrustedProjectConfigPath string          `toml:"-"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		APIURL:       DefaultAPIURL,
		LogLevel:     DefaultLogLevel,
		MaxBodyBytes: DefaultMaxBodyBytes,
		Storage: StorageConfig{
			Backend:     DefaultBackend,
			RedisPrefix: DefaultRedisPrefix,
		},
		Highlight: HighlightConfig{
			Theme: DefaultTheme,
		},
	}
}

func loadFile(path string, cfg *Config) error {
	_, err := loadFileIfExists(path, cfg)
	return err
}

func loadFileIfExists(path string, cfg *Config) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return true, nil
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, configFileName), true
}

func trustProjectConfig() bool {
	raw := strings.TrimSpace(os.Getenv(trustProjectConfigEnvKey))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}

var allowedKeys = []string{
	"api_url",
	"log_level",
	"max_body_bytes",
	"cors_origins",
	"storage.backend",
	"storage.db_path",
	"storage.postgres_dsn",
	"storage.redis_addr",
	"storage.redis_prefix",
	"highlight.theme",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "log_level":
		return c.LogLevel, nil
	case "max_body_bytes":
		return strconv.FormatInt(c.MaxBodyBytes, 10), nil
	case "cors_origins":
		return strings.Join(c.CORSOrigins, ","), nil
	case "storage.backend":
		return c.Storage.Backend, nil
	case "storage.db_path":
		return c.Storage.DBPath, nil
	case "storage.postgres_dsn":
		return c.Storage.PostgresDSN, nil
	case "storage.redis_addr":
		return c.Storage.RedisAddr, nil
	case "storage.redis_prefix":
		return c.Storage.RedisPrefix, nil
	case "highlight.theme":
		return c.Highlight.Theme, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// GlobalPath returns the path to the global config file.
func GlobalPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// ProjectPath returns the path to the project config file.
func ProjectPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, configFileName), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	parsedValue, err := parseSetValue(key, value)
	if err != nil {
		return err
	}
	if err := setNestedKey(data, strings.Split(key, "."), parsedValue); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

// Load reads config from trusted files and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	if overridePath, ok := overrideConfigPath(); ok {
		if err := loadFile(overridePath, &cfg); err != nil {
			return nil, err
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			if err := loadFile(filepath.Join(home, configFileName), &cfg); err != nil {
				return nil, err
			}
		}

		if trustProjectConfig() {
			if cwd, err := os.Getwd(); err == nil {
				projectPath := filepath.Join(cwd, configFileName)
				info, statErr := os.Stat(projectPath)
				switch {
				case statErr == nil && !info.IsDir():
					if err := loadFile(projectPath, &cfg); err != nil {
						return nil, err
					}
					cfg.TrustedProjectConfigPath = projectPath
				case statErr != nil && !os.IsNotExist(statErr):
					return nil, statErr
				}
			}
		}
	}

	if cfg.Storage.DBPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfg.Storage.DBPath = filepath.Join(cwd, DefaultDBFileName)
		}
	}

	if apiURL := os.Getenv("PASTE_API_URL"); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if dbPath := os.Getenv("PASTE_DB"); dbPath != "" {
		cfg.Storage.DBPath = dbPath
	}
	if backend := strings.TrimSpace(os.Getenv("PASTE_BACKEND")); backend != "" {
		cfg.Storage.Backend = backend
	}
	if dsn := os.Getenv("PASTE_POSTGRES_DSN"); dsn != "" {
		cfg.Storage.PostgresDSN = dsn
	}
	if addr := os.Getenv("PASTE_REDIS_ADDR"); addr != "" {
		cfg.Storage.RedisAddr = addr
	}
	if raw := strings.TrimSpace(os.Getenv("PASTE_CORS_ORIGINS")); raw != "" {
		cfg.CORSOrigins = splitCSV(raw)
	}

	cfg.normalizeDefaults()

	return &cfg, nil
}

func parseSetValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "max_body_bytes":
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer", key)
		}
		return parsed, nil
	case "cors_origins":
		return splitCSV(value), nil
	case "storage.backend":
		backend := strings.ToLower(value)
		switch backend {
		case "sqlite", "postgres", "redis", "memory":
			return backend, nil
		default:
			return nil, fmt.Errorf("%s must be one of sqlite, postgres, redis, memory", key)
		}
	default:
		return value, nil
	}
}

func setNestedKey(data map[string]any, parts []string, value any) error {
	if len(parts) == 0 {
		return fmt.Errorf("invalid config key")
	}
	if len(parts) == 1 {
		data[parts[0]] = value
		return nil
	}
	childRaw, ok := data[parts[0]]
	if !ok {
		child := map[string]any{}
		data[parts[0]] = child
		return setNestedKey(child, parts[1:], value)
	}
	child, ok := childRaw.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot set nested key %q", strings.Join(parts, "."))
	}
	return setNestedKey(child, parts[1:], value)
}

func splitCSV(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func (c *Config) normalizeDefaults() {
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if strings.TrimSpace(c.Storage.Backend) == "" {
		c.Storage.Backend = DefaultBackend
	}
	if c.Storage.RedisPrefix == "" {
		c.Storage.RedisPrefix = DefaultRedisPrefix
	}
	if strings.TrimSpace(c.Highlight.Theme) == "" {
		c.Highlight.Theme = DefaultTheme
	}
}
