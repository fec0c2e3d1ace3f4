package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/arcanaland/greetcard/internal/card"
)

// AppName names the config and data directories
const AppName = "greetcard"

// ErrUnknownKey is returned by Set for keys it does not manage
var ErrUnknownKey = errors.New("unknown config key")

// Config represents the application configuration
type Config struct {
	DefaultType     string   `toml:"default_type" validate:"omitempty,card_type"`
	DefaultTheme    string   `toml:"default_theme" validate:"omitempty,card_theme"`
	Pack            string   `toml:"pack"`
	LogLevel        string   `toml:"log_level" validate:"omitempty,log_level"`
	DecorationCount int      `toml:"decoration_count" validate:"gte=0,lte=200"`
	Google          Provider `toml:"google"`
	Zhipu           Provider `toml:"zhipu"`
	Photos          Photos   `toml:"photos"`
}

// Provider holds the endpoint settings of an AI provider. Keys live in the
// credentials file, never here.
type Provider struct {
	BaseURL string `toml:"base_url" validate:"omitempty,url"`
	Model   string `toml:"model"`
}

// Photos holds the keyword photo service settings
type Photos struct {
	BaseURL string `toml:"base_url" validate:"omitempty,url"`
}

// Default returns the configuration written on first use
func Default() *Config {
	return &Config{
		DefaultType:     string(card.Birthday),
		DefaultTheme:    string(card.Elegant),
		LogLevel:        "warn",
		DecorationCount: 20,
	}
}

// CardType returns the configured default card type, or birthday
func (c *Config) CardType() card.Type {
	if t, err := card.ParseType(c.DefaultType); err == nil {
		return t
	}
	return card.Birthday
}

// Theme returns the configured default theme, or elegant
func (c *Config) Theme() card.Theme {
	if t, err := card.ParseTheme(c.DefaultTheme); err == nil {
		return t
	}
	return card.Elegant
}

// Validate checks the configuration against its field rules
func (c *Config) Validate() error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: %q fails %s", fe.Namespace(), fmt.Sprint(fe.Value()), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigDir returns the directory holding config and credentials
func GetConfigDir() string {
	return filepath.Join(GetXDGConfigHome(), AppName)
}

// GetPackLibraryPath returns the directory searched for named content packs
func GetPackLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), AppName, "packs")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetConfigDir(), "config.toml")
}

// LoadConfig loads the config file, creating it with defaults on first use
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return createDefaultConfig()
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	return config, nil
}

func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := Save(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Save writes config to the config file
func Save(config *Config) error {
	configPath := GetConfigFilePath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// Set updates one top-level key and saves the config if it stays valid
func Set(key, value string) (*Config, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	switch key {
	case "default_type":
		config.DefaultType = value
	case "default_theme":
		config.DefaultTheme = value
	case "pack":
		config.Pack = value
	case "log_level":
		config.LogLevel = value
	case "decoration_count":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("decoration_count: %w", err)
		}
		config.DecorationCount = n
	case "google.base_url":
		config.Google.BaseURL = value
	case "google.model":
		config.Google.Model = value
	case "zhipu.base_url":
		config.Zhipu.BaseURL = value
	case "zhipu.model":
		config.Zhipu.Model = value
	case "photos.base_url":
		config.Photos.BaseURL = value
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := Save(config); err != nil {
		return nil, err
	}
	return config, nil
}

// GetPackPath returns the path to a pack, either in the pack library or a relative path
func GetPackPath(name string) (string, error) {
	candidates := []string{
		filepath.Join(GetPackLibraryPath(), name),
		filepath.Join(GetPackLibraryPath(), name+".toml"),
		name,
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("pack not found: %s", name)
}
