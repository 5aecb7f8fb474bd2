package report

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config contains the engine-wide configuration options.
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `yaml:"log_level"`
	// DefinitionCacheSize is the maximum number of report templates kept by a
	// DefinitionCache. 0 disables caching.
	DefinitionCacheSize int `yaml:"definition_cache_size"`
	// DefinitionCacheTTL is the time-to-live of cached templates. 0 means no expiration.
	DefinitionCacheTTL time.Duration `yaml:"definition_cache_ttl"`
	// StrictStructure makes ValidateDefinition report warnings as errors.
	StrictStructure bool `yaml:"strict_structure"`
	// Locale is the default locale of new master reports.
	Locale string `yaml:"locale"`
	// EnvironmentProperties seed the ReportEnvironment of new master reports.
	EnvironmentProperties map[string]string `yaml:"environment"`
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:            "info",
		DefinitionCacheSize: 32,
		DefinitionCacheTTL:  0,
		StrictStructure:     false,
		Locale:              "en_US",
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	// REPORT_LOG_LEVEL
	if val := os.Getenv("REPORT_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	// REPORT_DEFINITION_CACHE_SIZE
	if val := os.Getenv("REPORT_DEFINITION_CACHE_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			config.DefinitionCacheSize = size
		}
	}

	// REPORT_DEFINITION_CACHE_TTL
	if val := os.Getenv("REPORT_DEFINITION_CACHE_TTL"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			config.DefinitionCacheTTL = duration
		}
	}

	// REPORT_STRICT_STRUCTURE
	if val := os.Getenv("REPORT_STRICT_STRUCTURE"); val != "" {
		config.StrictStructure = parseBool(val)
	}

	// REPORT_LOCALE
	if val := os.Getenv("REPORT_LOCALE"); val != "" {
		config.Locale = val
	}

	return config
}

// LoadConfigFile reads a YAML configuration file on top of the defaults.
// A missing file yields the defaults.
func LoadConfigFile(path string) (*Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.DefinitionCacheSize < 0 {
		return errors.New("definition cache size cannot be negative")
	}

	if c.DefinitionCacheTTL < 0 {
		return errors.New("definition cache TTL cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}

	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.Locale == "" {
		return errors.New("locale must not be empty")
	}

	return nil
}

// GetGlobalConfig returns a copy of the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	configCopy := *globalConfig
	if globalConfig.EnvironmentProperties != nil {
		configCopy.EnvironmentProperties = make(map[string]string, len(globalConfig.EnvironmentProperties))
		for k, v := range globalConfig.EnvironmentProperties {
			configCopy.EnvironmentProperties[k] = v
		}
	}
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Update logger based on new config (outside the lock to avoid deadlock)
	UpdateLoggerFromConfig()
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
