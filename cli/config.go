package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	upyun "github.com/upyun-contrib/upyun-go"
)

// Profile holds connection settings for a single bucket.
type Profile struct {
	Name     string `yaml:"name"`
	Bucket   string `yaml:"bucket"`
	Operator string `yaml:"operator"`
	Password string `yaml:"password,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`
	UseHTTPS bool   `yaml:"use_https,omitempty"`
	Default  bool   `yaml:"default,omitempty"`
}

// ConfigFile holds the full config file structure with multiple profiles.
type ConfigFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// GetProfile returns the profile by name.
// If name is empty, returns the default profile.
func (c *ConfigFile) GetProfile(name string) (*Profile, error) {
	if len(c.Profiles) == 0 {
		return nil, ErrNoProfiles
	}

	if name == "" {
		return c.GetDefaultProfile()
	}

	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
}

// GetDefaultProfile returns the profile marked as default, or the first
// profile when none is marked.
func (c *ConfigFile) GetDefaultProfile() (*Profile, error) {
	if len(c.Profiles) == 0 {
		return nil, ErrNoProfiles
	}

	for i := range c.Profiles {
		if c.Profiles[i].Default {
			return &c.Profiles[i], nil
		}
	}

	return &c.Profiles[0], nil
}

// AddProfile adds a new profile. Returns ErrProfileExists if a profile with
// the same name already exists.
func (c *ConfigFile) AddProfile(p Profile) error {
	for i := range c.Profiles {
		if c.Profiles[i].Name == p.Name {
			return fmt.Errorf("%w: %s", ErrProfileExists, p.Name)
		}
	}
	c.Profiles = append(c.Profiles, p)
	return nil
}

// RemoveProfile removes a profile by name.
func (c *ConfigFile) RemoveProfile(name string) error {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			c.Profiles = append(c.Profiles[:i], c.Profiles[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
}

// SetDefault sets the default profile by name and clears the flag from all
// other profiles.
func (c *ConfigFile) SetDefault(name string) error {
	found := false
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			c.Profiles[i].Default = true
			found = true
		} else {
			c.Profiles[i].Default = false
		}
	}

	if !found {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return nil
}

// ProfileNames returns the names of all profiles.
func (c *ConfigFile) ProfileNames() []string {
	names := make([]string, len(c.Profiles))
	for i := range c.Profiles {
		names[i] = c.Profiles[i].Name
	}
	return names
}

// Save writes the config to the specified path, creating the parent
// directory if needed.
func (c *ConfigFile) Save(path string) error {
	cleanPath := filepath.Clean(path)

	dir := filepath.Dir(cleanPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(cleanPath, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// LoadConfigFile loads the config file from the specified path.
func LoadConfigFile(path string) (*ConfigFile, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) //#nosec G304 -- path is user-provided config file
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg ConfigFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &cfg, nil
}

// DefaultConfigPath returns the default config file path (~/.upx/config.yaml).
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".upx", "config.yaml")
}

// Config holds resolved connection settings after profile, environment, and
// flag merging.
type Config struct {
	Bucket   string `validate:"required"`
	Operator string `validate:"required"`
	Password string `validate:"required"`
	Endpoint string `validate:"omitempty,oneof=auto telecom cnc ctt"`
	UseHTTPS bool
}

var validate = validator.New()

// Validate checks that required fields are set and the endpoint name is
// known.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// ClientConfig converts the resolved settings into a client configuration.
func (c *Config) ClientConfig() (*upyun.Config, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	endpoint, err := upyun.ParseEndpoint(c.Endpoint)
	if err != nil {
		return nil, err
	}

	return &upyun.Config{
		Bucket:   c.Bucket,
		Operator: c.Operator,
		Password: c.Password,
		Endpoint: endpoint,
		UseHTTPS: c.UseHTTPS,
	}, nil
}

// ConfigFromProfile creates a Config from a Profile.
func ConfigFromProfile(p *Profile) *Config {
	if p == nil {
		return &Config{}
	}
	return &Config{
		Bucket:   p.Bucket,
		Operator: p.Operator,
		Password: p.Password,
		Endpoint: p.Endpoint,
		UseHTTPS: p.UseHTTPS,
	}
}

// ConfigFromEnv loads config from UPYUN_* environment variables.
func ConfigFromEnv() *Config {
	return &Config{
		Bucket:   os.Getenv("UPYUN_BUCKET"),
		Operator: os.Getenv("UPYUN_OPERATOR"),
		Password: os.Getenv("UPYUN_PASSWORD"),
		Endpoint: os.Getenv("UPYUN_ENDPOINT"),
		UseHTTPS: os.Getenv("UPYUN_HTTPS") == "true",
	}
}

// ProfileFromEnv returns the profile name from UPYUN_PROFILE.
func ProfileFromEnv() string {
	return os.Getenv("UPYUN_PROFILE")
}

// MergeConfig merges multiple configs, with later configs taking precedence.
// Empty values in later configs do not override earlier ones.
func MergeConfig(configs ...*Config) *Config {
	result := &Config{}
	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		if cfg.Bucket != "" {
			result.Bucket = cfg.Bucket
		}
		if cfg.Operator != "" {
			result.Operator = cfg.Operator
		}
		if cfg.Password != "" {
			result.Password = cfg.Password
		}
		if cfg.Endpoint != "" {
			result.Endpoint = cfg.Endpoint
		}
		if cfg.UseHTTPS {
			result.UseHTTPS = true
		}
	}
	return result
}
