package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App         App         `mapstructure:"app"`
	Feeds       Feeds       `mapstructure:"feeds"`
	Fetch       Fetch       `mapstructure:"fetch"`
	Translator  Translator  `mapstructure:"translator"`
	Correlation Correlation `mapstructure:"correlation"`
	Ingest      Ingest      `mapstructure:"ingest"`
}

// App holds general application configuration.
type App struct {
	Debug      bool   `mapstructure:"debug"`
	LogLevel   string `mapstructure:"log_level"`
	DataDir    string `mapstructure:"data_dir"`
	ConfigFile string `mapstructure:"config_file"`
}

// Feeds holds feed polling configuration.
type Feeds struct {
	UserAgent       string `mapstructure:"user_agent"`
	Timeout         string `mapstructure:"timeout"`
	MaxItemsPerFeed int    `mapstructure:"max_items_per_feed"`
}

// Fetch holds single-page fetch configuration for the manual URL path.
type Fetch struct {
	UserAgent string `mapstructure:"user_agent"`
	Timeout   string `mapstructure:"timeout"`
	MaxURLs   int    `mapstructure:"max_urls"`
}

// Translator holds translation configuration.
type Translator struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration for the external
// translation path.
type GeminiConfig struct {
	APIKey       string `mapstructure:"api_key"`
	Model        string `mapstructure:"model"`
	ChunkSize    int    `mapstructure:"chunk_size"`
	ChunkTimeout string `mapstructure:"chunk_timeout"`
}

// Correlation holds correlation engine tuning parameters.
type Correlation struct {
	Window              int     `mapstructure:"window"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
}

// Ingest holds ingestion orchestrator configuration.
type Ingest struct {
	MaxConcurrency int `mapstructure:"max_concurrency"`
}

var globalConfig *Config

// Load loads the configuration from the config file, environment and
// defaults, in that order of precedence.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".intelwire")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.App.ConfigFile = viper.ConfigFileUsed()

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.data_dir", ".intelwire")

	viper.SetDefault("feeds.user_agent", "intelwire/1.0")
	viper.SetDefault("feeds.timeout", "10s")
	viper.SetDefault("feeds.max_items_per_feed", 50)

	viper.SetDefault("fetch.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	viper.SetDefault("fetch.timeout", "10s")
	viper.SetDefault("fetch.max_urls", 50)

	viper.SetDefault("translator.gemini.model", "gemini-flash-lite-latest")
	viper.SetDefault("translator.gemini.chunk_size", 4000)
	viper.SetDefault("translator.gemini.chunk_timeout", "60s")

	viper.SetDefault("correlation.window", 50)
	viper.SetDefault("correlation.similarity_threshold", 0.1)

	viper.SetDefault("ingest.max_concurrency", 1)
}

// bindEnvironmentVariables sets up flexible environment variable binding.
func bindEnvironmentVariables() {
	bindEnvKeys("translator.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})
}

// bindEnvKeys binds a config key to multiple possible environment variables.
func bindEnvKeys(configKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if err := viper.BindEnv(configKey, envKey); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to bind %s: %v\n", envKey, err)
		}
	}
}

// FeedTimeout returns the feed fetch timeout as a duration.
func (c *Config) FeedTimeout() time.Duration {
	return parseDuration(c.Feeds.Timeout, 10*time.Second)
}

// FetchTimeout returns the page fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return parseDuration(c.Fetch.Timeout, 10*time.Second)
}

// ChunkTimeout returns the per-chunk translation timeout as a duration.
func (c *Config) ChunkTimeout() time.Duration {
	return parseDuration(c.Translator.Gemini.ChunkTimeout, 60*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
