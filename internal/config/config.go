package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"nexventory/internal/eventbus"
)

const (
	// AppName names the config directory and env prefix
	AppName = "nexventory"
	// FileName is the config file inside the config directory
	FileName = "config.toml"
	// CurrentVersion is written into new config files
	CurrentVersion = 1
)

// Config represents the application configuration
type Config struct {
	Version  int        `toml:"version" mapstructure:"version"`
	DataFile string     `toml:"data_file" mapstructure:"data_file"` // directory seed (.toml, .json, .jsonc)
	LogFile  string     `toml:"log_file" mapstructure:"log_file"`
	LogLevel string     `toml:"log_level" mapstructure:"log_level"`
	Operator string     `toml:"operator" mapstructure:"operator"` // name recorded on the session
	Language string     `toml:"language" mapstructure:"language"`
	UI       UISettings `toml:"ui" mapstructure:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	IncludeInactive bool `toml:"include_inactive" mapstructure:"include_inactive"` // offer inactive permissions/regions
	PageSize        int  `toml:"page_size" mapstructure:"page_size"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Path() string
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// Dir returns the nexventory config directory, honouring XDG_CONFIG_HOME
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, AppName)
}

// NewConfigService creates a config service for path, or for the default
// location when path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = filepath.Join(Dir(), FileName)
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the service's config file; a missing file yields defaults
func (cs *configService) Load() (*Config, error) {
	cfg, err := load(cs.filePath, false)
	if err != nil {
		return nil, err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, DataFile: cfg.DataFile})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path, which must exist
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	return load(path, true)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func load(path string, mustExist bool) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	} else if mustExist {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.UI.PageSize <= 0 {
		cfg.UI.PageSize = DefaultConfig().UI.PageSize
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("data_file", d.DataFile)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("operator", d.Operator)
	v.SetDefault("language", d.Language)
	v.SetDefault("ui.include_inactive", d.UI.IncludeInactive)
	v.SetDefault("ui.page_size", d.UI.PageSize)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	operator := os.Getenv("USER")
	if operator == "" {
		operator = "admin"
	}
	return &Config{
		Version:  CurrentVersion,
		DataFile: "directory.toml",
		LogFile:  "nexventory.log",
		LogLevel: "info",
		Operator: operator,
		Language: "en",
		UI: UISettings{
			IncludeInactive: false,
			PageSize:        10,
		},
	}
}
