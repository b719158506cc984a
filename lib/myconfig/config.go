package myconfig

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort            = "8080"
	DefaultAPIVersion      = "2024-10"
	DefaultCatalogCacheTTL = 5 * time.Minute
)

type Storefront struct {
	Endpoint    string `yaml:"endpoint"`
	AccessToken string `yaml:"accessToken"`
	APIVersion  string `yaml:"apiVersion"`
}

type Config struct {
	Port            string        `yaml:"port"`
	BaseURL         string        `yaml:"baseURL"`
	Environment     string        `yaml:"environment"`
	Storefront      Storefront    `yaml:"storefront"`
	RedisAddr       string        `yaml:"redisAddr"`
	CatalogCacheTTL time.Duration `yaml:"catalogCacheTTL"`
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads the optional yaml file and lets environment variables win.
func Load(filename string) (Config, error) {
	cfg := Config{}

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %w", filename, err)
		}
		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("error parsing config file %s: %w", filename, err)
		}
	}

	overrideFromEnv(&cfg.Port, "PORT")
	overrideFromEnv(&cfg.BaseURL, "BASE_URL")
	overrideFromEnv(&cfg.Environment, "ENVIRONMENT")
	overrideFromEnv(&cfg.Storefront.Endpoint, "STOREFRONT_ENDPOINT")
	overrideFromEnv(&cfg.Storefront.AccessToken, "STOREFRONT_ACCESS_TOKEN")
	overrideFromEnv(&cfg.Storefront.APIVersion, "STOREFRONT_API_VERSION")
	overrideFromEnv(&cfg.RedisAddr, "REDIS_ADDR")

	if ttl := os.Getenv("CATALOG_CACHE_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CATALOG_CACHE_TTL %q: %w", ttl, err)
		}
		cfg.CatalogCacheTTL = d
	}

	applyDefaults(&cfg)

	return cfg, cfg.validate()
}

func overrideFromEnv(field *string, envName string) {
	if v := os.Getenv(envName); v != "" {
		*field = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.Storefront.APIVersion == "" {
		cfg.Storefront.APIVersion = DefaultAPIVersion
	}
	if cfg.CatalogCacheTTL == 0 {
		cfg.CatalogCacheTTL = DefaultCatalogCacheTTL
	}
	cfg.Storefront.Endpoint = strings.TrimSuffix(cfg.Storefront.Endpoint, "/")
}

func (c Config) validate() error {
	if c.Storefront.Endpoint == "" {
		return fmt.Errorf("missing storefront endpoint (STOREFRONT_ENDPOINT)")
	}
	if c.Storefront.AccessToken == "" {
		return fmt.Errorf("missing storefront access token (STOREFRONT_ACCESS_TOKEN)")
	}
	if c.CatalogCacheTTL < 0 {
		return fmt.Errorf("catalog cache ttl must not be negative")
	}
	return nil
}
