// Package credentials keeps AI provider keys in a private file in the
// config directory, with environment variables taking precedence.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/arcanaland/greetcard/internal/config"
)

// FileName is the credentials file inside the config directory
const FileName = "credentials.toml"

const fileMode = 0o600

// ErrUnknownProvider is returned for provider names without a key slot
var ErrUnknownProvider = errors.New("unknown provider")

// Source tells where a key came from
type Source string

const (
	SourceNone Source = "none"
	SourceFile Source = "file"
	SourceEnv  Source = "env"
)

// envVars maps provider names to the variables that override the file
var envVars = map[string]string{
	"google": "GOOGLE_API_KEY",
	"zhipu":  "ZHIPU_API_KEY",
}

// File is the on-disk layout
type File struct {
	GoogleAPIKey string `toml:"google_api_key,omitempty"`
	ZhipuAPIKey  string `toml:"zhipu_api_key,omitempty"`
}

func (f *File) slot(provider string) (*string, error) {
	switch provider {
	case "google":
		return &f.GoogleAPIKey, nil
	case "zhipu":
		return &f.ZhipuAPIKey, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
}

// Store reads and writes the credentials file
type Store struct {
	mu   sync.Mutex
	path string
	file File
}

// DefaultPath returns the credentials file location
func DefaultPath() string {
	return filepath.Join(config.GetConfigDir(), FileName)
}

// Providers lists the provider names with a key slot, sorted
func Providers() []string {
	names := make([]string, 0, len(envVars))
	for name := range envVars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EnvVar returns the environment variable that overrides a provider's key
func EnvVar(provider string) string {
	return envVars[provider]
}

// Open loads the credentials file at path. A missing file is an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s.file); err != nil {
		return nil, fmt.Errorf("error decoding credentials file: %w", err)
	}
	return s, nil
}

// Path returns the file backing the store
func (s *Store) Path() string {
	return s.path
}

// Get returns the key for provider. A non-empty environment variable wins over the file.
func (s *Store) Get(provider string) (string, Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, err := s.file.slot(provider)
	if err != nil {
		return "", SourceNone, err
	}
	if v := strings.TrimSpace(os.Getenv(envVars[provider])); v != "" {
		return v, SourceEnv, nil
	}
	if *slot != "" {
		return *slot, SourceFile, nil
	}
	return "", SourceNone, nil
}

// Set stores key for provider and writes the file
func (s *Store) Set(provider, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("api key is empty")
	}
	return s.update(provider, key)
}

// Clear removes the stored key for provider and writes the file. Environment
// variables are left alone.
func (s *Store) Clear(provider string) error {
	return s.update(provider, "")
}

func (s *Store) update(provider, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, err := s.file.slot(provider)
	if err != nil {
		return err
	}
	previous := *slot
	*slot = key
	if err := s.write(); err != nil {
		*slot = previous
		return err
	}
	return nil
}

// write replaces the file atomically, keeping it private to the user
func (s *Store) write() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("error creating credentials directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*.toml")
	if err != nil {
		return fmt.Errorf("error creating credentials file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("error securing credentials file: %w", err)
	}
	if err := toml.NewEncoder(tmp).Encode(s.file); err != nil {
		tmp.Close()
		return fmt.Errorf("error encoding credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing credentials: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("error replacing credentials file: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from a .env file without overriding ones already
// set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

// Mask shortens a key for display
func Mask(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", 4) + key[len(key)-4:]
}
