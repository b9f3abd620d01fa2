package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// Missing href policies
const (
	MissingHrefSkip = "skip"
	MissingHrefFail = "fail"
)

// Config holds everything a single scrape run needs
type Config struct {
	BaseURL     string        `yaml:"base_url" env:"TAGLINKS_BASE_URL" env-description:"Wiki root prefixed to every link"`
	TargetPath  string        `yaml:"target_path" env:"TAGLINKS_TARGET_PATH" env-description:"Path of the reference page under the wiki root"`
	OutputPath  string        `yaml:"output" env:"TAGLINKS_OUTPUT" env-description:"Properties file to overwrite"`
	UserAgent   string        `yaml:"user_agent" env:"TAGLINKS_USER_AGENT" env-description:"User-Agent header sent with the request"`
	Timeout     time.Duration `yaml:"timeout" env:"TAGLINKS_TIMEOUT" env-description:"Request timeout"`
	MissingHref string        `yaml:"missing_href" env:"TAGLINKS_MISSING_HREF" env-description:"What to do with anchors lacking href: skip or fail"`
	Escape      bool          `yaml:"escape" env:"TAGLINKS_ESCAPE" env-description:"Escape properties delimiters in keys and values"`
}

// LoadConfig loads configuration from a YAML file on top of the defaults,
// then applies environment overrides. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	cfg := GetDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return cfg, nil
}

// GetDefaultConfig returns the configuration the wiki scrape has always used
func GetDefaultConfig() *Config {
	return &Config{
		BaseURL:     "https://wiki.wesnoth.org",
		TargetPath:  "/ReferenceWML",
		OutputPath:  "src/main/resources/taglinks.properties",
		UserAgent:   "wml-taglinks/1.0",
		Timeout:     30 * time.Second,
		MissingHref: MissingHrefSkip,
		Escape:      false,
	}
}

// TargetURL returns the page to fetch. Plain concatenation, no URL joining.
func (c *Config) TargetURL() string {
	return c.BaseURL + c.TargetPath
}

// Validate checks the configuration before any network or disk access
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base URL %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base URL %q: missing host", c.BaseURL)
	}
	if c.OutputPath == "" {
		return errors.New("output path must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch c.MissingHref {
	case MissingHrefSkip, MissingHrefFail:
	default:
		return fmt.Errorf("unknown missing_href policy %q (want %q or %q)", c.MissingHref, MissingHrefSkip, MissingHrefFail)
	}
	return nil
}

// EnvHelp describes the environment variables LoadConfig honours
func EnvHelp() string {
	header := "Environment variables:"
	desc, err := cleanenv.GetDescription(&Config{}, &header)
	if err != nil {
		return ""
	}
	return desc
}
