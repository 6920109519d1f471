package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/folio/internal/auth"
	"github.com/mesh-intelligence/folio/internal/uploads"
	"github.com/mesh-intelligence/folio/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "FOLIO"
)

// Config keys.
const (
	cfgKeyBackend        = "backend"
	cfgKeyDataDir        = "data_dir"
	cfgKeyListen         = "listen"
	cfgKeyUploadsDir     = "uploads_dir"
	cfgKeyMaxUploadBytes = "max_upload_bytes"
	cfgKeyAdminUsername  = "admin_username"
	cfgKeyAdminPassword  = "admin_password"
	cfgKeySessionSecret  = "session_secret"
	cfgKeySessionTTL     = "session_ttl"
	cfgKeySecureCookies  = "secure_cookies"
	cfgKeyFallbackFile   = "fallback_file"
	cfgKeyLogLevel       = "log_level"
)

const defaultListen = ":8080"

// envKeys are overridable as FOLIO_<KEY>. data_dir is absent: its env
// variable ranks below config.yaml and is handled by paths.ResolveDataDir.
var envKeys = []string{
	cfgKeyBackend,
	cfgKeyListen,
	cfgKeyUploadsDir,
	cfgKeyMaxUploadBytes,
	cfgKeyAdminUsername,
	cfgKeyAdminPassword,
	cfgKeySessionSecret,
	cfgKeySessionTTL,
	cfgKeySecureCookies,
	cfgKeyFallbackFile,
	cfgKeyLogLevel,
}

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend    string `yaml:"backend"`
	DataDir    string `yaml:"data_dir,omitempty"`
	Listen     string `yaml:"listen"`
	SessionTTL string `yaml:"session_ttl"`
	LogLevel   string `yaml:"log_level"`
}

const configHeader = `# Folio configuration
# Credentials and secrets are best set through FOLIO_ADMIN_USERNAME,
# FOLIO_ADMIN_PASSWORD and FOLIO_SESSION_SECRET.
`

// settings is the decoded configuration used by the commands.
type settings struct {
	Backend        string
	DataDir        string
	Listen         string
	UploadsDir     string
	MaxUploadBytes int64
	AdminUsername  string
	AdminPassword  string
	SessionSecret  string
	SessionTTL     time.Duration
	SecureCookies  bool
	FallbackFile   string
	LogLevel       string
}

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run, recording dataDir when
// it is not empty. A missing config.yaml is not an error.
func loadConfig(configDir, dataDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt), dataDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyListen, defaultListen)
	v.SetDefault(cfgKeyMaxUploadBytes, int64(uploads.DefaultMaxBytes))
	v.SetDefault(cfgKeySessionTTL, auth.DefaultTTL.String())
	v.SetDefault(cfgKeyLogLevel, "info")

	v.SetEnvPrefix(envPrefix)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// settingsFrom decodes v and checks the values a command cannot run without.
func settingsFrom(v *viper.Viper) (settings, error) {
	s := settings{
		Backend:        v.GetString(cfgKeyBackend),
		DataDir:        v.GetString(cfgKeyDataDir),
		Listen:         v.GetString(cfgKeyListen),
		UploadsDir:     v.GetString(cfgKeyUploadsDir),
		MaxUploadBytes: v.GetInt64(cfgKeyMaxUploadBytes),
		AdminUsername:  v.GetString(cfgKeyAdminUsername),
		AdminPassword:  v.GetString(cfgKeyAdminPassword),
		SessionSecret:  v.GetString(cfgKeySessionSecret),
		SecureCookies:  v.GetBool(cfgKeySecureCookies),
		FallbackFile:   v.GetString(cfgKeyFallbackFile),
		LogLevel:       v.GetString(cfgKeyLogLevel),
	}

	ttl, err := time.ParseDuration(v.GetString(cfgKeySessionTTL))
	if err != nil {
		return settings{}, fmt.Errorf("%s: %w", cfgKeySessionTTL, err)
	}
	if ttl <= 0 {
		return settings{}, fmt.Errorf("%s must be positive, got %s", cfgKeySessionTTL, ttl)
	}
	s.SessionTTL = ttl

	if s.MaxUploadBytes <= 0 {
		return settings{}, fmt.Errorf("%s must be positive, got %d", cfgKeyMaxUploadBytes, s.MaxUploadBytes)
	}
	if err := (types.Config{Backend: s.Backend}).Validate(); err != nil {
		return settings{}, fmt.Errorf("%s: %w", cfgKeyBackend, err)
	}
	return s, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path, dataDir string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{
		Backend:    types.BackendSQLite,
		DataDir:    dataDir,
		Listen:     defaultListen,
		SessionTTL: auth.DefaultTTL.String(),
		LogLevel:   "info",
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}
