// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	ConfigFileName = "config.yaml"
	ConfigDirName  = "strata"
	EnvPrefix      = "STRATA"
)

type APIConfig struct {
	BaseURL        string        `mapstructure:"base_url" validate:"required,url"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxConcurrency int           `mapstructure:"max_concurrency" validate:"gte=0"`
}

type AuthConfig struct {
	CredentialsFile string        `mapstructure:"credentials_file" validate:"required"`
	TokenTTL        time.Duration `mapstructure:"token_ttl" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=auto text json"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" validate:"oneof=table yaml json"`
}

type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Log    LogConfig    `mapstructure:"log"`
	Output OutputConfig `mapstructure:"output"`
}

func defaults(dir string) map[string]any {
	return map[string]any{
		"api.base_url":          "http://localhost:8080/api",
		"api.timeout":           "30s",
		"api.max_concurrency":   0,
		"auth.credentials_file": filepath.Join(dir, "credentials.yaml"),
		"auth.token_ttl":        "2h",
		"log.level":             "info",
		"log.format":            "auto",
		"output.format":         "table",
	}
}

// ConfigManager layers defaults, the config file and STRATA_* environment variables.
// Only values explicitly set through SetValue are written back to the file.
type ConfigManager struct {
	path     string
	defaults map[string]any
	merged   *viper.Viper
	file     *viper.Viper
	validate *validator.Validate
}

// NewConfigManager uses ~/.config/strata/config.yaml
func NewConfigManager() (*ConfigManager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("error getting user home directory: %w", err)
	}
	return NewConfigManagerAt(filepath.Join(homeDir, ".config", ConfigDirName, ConfigFileName))
}

func NewConfigManagerAt(path string) (*ConfigManager, error) {
	m := &ConfigManager{
		path:     path,
		defaults: defaults(filepath.Dir(path)),
		validate: validator.New(),
	}
	if err := m.reload(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *ConfigManager) Path() string {
	return m.path
}

func (m *ConfigManager) reload() error {
	file := viper.New()
	file.SetConfigType("yaml")
	if _, err := os.Stat(m.path); err == nil {
		file.SetConfigFile(m.path)
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error checking config file: %w", err)
	}

	m.file = file
	m.merged = m.layered(file.AllSettings())
	return nil
}

func (m *ConfigManager) layered(settings map[string]any) *viper.Viper {
	v := viper.New()
	for key, value := range m.defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.MergeConfigMap(settings)
	return v
}

// LoadConfig decodes and validates the effective configuration
func (m *ConfigManager) LoadConfig() (*Config, error) {
	return m.decode(m.merged)
}

func (m *ConfigManager) decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Auth.CredentialsFile = expandHome(cfg.Auth.CredentialsFile)

	if err := m.validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// IsKnownKey reports whether key is a supported setting
func (m *ConfigManager) IsKnownKey(key string) bool {
	_, ok := m.defaults[key]
	return ok
}

// KnownKeys lists every supported setting in sorted order
func (m *ConfigManager) KnownKeys() []string {
	keys := make([]string, 0, len(m.defaults))
	for k := range m.defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetValue persists key=value after checking that the resulting configuration is valid
func (m *ConfigManager) SetValue(key, value string) error {
	if !m.IsKnownKey(key) {
		return fmt.Errorf("unknown config key: %s. Supported keys: %s", key, strings.Join(m.KnownKeys(), ", "))
	}

	candidate := viper.New()
	_ = candidate.MergeConfigMap(m.file.AllSettings())
	candidate.Set(key, value)
	settings := candidate.AllSettings()

	if _, err := m.decode(m.layered(settings)); err != nil {
		return err
	}
	return m.save(settings)
}

// GetValue returns the effective value of key, including defaults and environment overrides
func (m *ConfigManager) GetValue(key string) (string, bool) {
	if !m.IsKnownKey(key) || !m.merged.IsSet(key) {
		return "", false
	}
	return fmt.Sprintf("%v", m.merged.Get(key)), true
}

// DeleteValue removes key from the config file so the default applies again.
// It reports false when the file did not set the key.
func (m *ConfigManager) DeleteValue(key string) (bool, error) {
	if !m.file.IsSet(key) {
		return false, nil
	}

	settings := m.file.AllSettings()
	if !deleteNested(settings, strings.Split(key, ".")) {
		return false, nil
	}
	if err := m.save(settings); err != nil {
		return false, err
	}
	return true, nil
}

// GetAllSettings returns the effective nested settings map
func (m *ConfigManager) GetAllSettings() map[string]any {
	return m.merged.AllSettings()
}

func (m *ConfigManager) save(settings map[string]any) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return m.reload()
}

func deleteNested(settings map[string]any, path []string) bool {
	if len(path) == 1 {
		if _, ok := settings[path[0]]; !ok {
			return false
		}
		delete(settings, path[0])
		return true
	}

	child, ok := settings[path[0]].(map[string]any)
	if !ok {
		return false
	}
	if !deleteNested(child, path[1:]) {
		return false
	}
	if len(child) == 0 {
		delete(settings, path[0])
	}
	return true
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
