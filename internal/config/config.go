package config

import (
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:147.0) Gecko/20100101 Firefox/147.0"

// RandomUserAgent makes the HTTP client pick a fresh browser User-Agent for every request.
const RandomUserAgent = "random"

// DefaultTempDir is the shared working directory for uploads and tool outputs.
const DefaultTempDir = "/tmp/video_processing"

type Config struct {
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s", "1h", etc.
	UserAgent             string `mapstructure:"user_agent"`
	TempDir               string `mapstructure:"temp_dir"`
	FFmpegBinary          string `mapstructure:"ffmpeg_binary"`
	YtDlpBinary           string `mapstructure:"ytdlp_binary"`
	Server                struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	Transcription struct {
		URL      string `mapstructure:"url"`
		Language string `mapstructure:"language"`
		Timeout  string `mapstructure:"timeout"` // Go duration string
	} `mapstructure:"transcription"`
	LogLevel string `mapstructure:"log_level"`
	Metrics  struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Cache struct {
		Provider string `mapstructure:"provider"` // "memory" or "redis"
		Size     int    `mapstructure:"size"`     // Maximum number of entries in the LRU cache
		TTL      string `mapstructure:"ttl"`      // Go duration string like "1h", "24h", etc.
		Redis    struct {
			Address  string `mapstructure:"address"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"cache"`
	Sentry struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Logs go to stderr so CLI result lines on stdout stay machine readable
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	level := zerolog.InfoLevel
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)

	logger.Debug().Str("level", level.String()).Msg("Logging configured")
	globalConfig = config
}

// LoadConfig reads config.yaml from the working directory (or ./config) and applies
// APP_* environment overrides on top of the defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.TempDir == "" {
		config.TempDir = DefaultTempDir
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 8100)
	v.SetDefault("temp_dir", DefaultTempDir)
	v.SetDefault("ffmpeg_binary", "ffmpeg")
	v.SetDefault("ytdlp_binary", "yt-dlp")
	v.SetDefault("transcription.url", "")
	v.SetDefault("transcription.language", "en")
	v.SetDefault("transcription.timeout", "300s")
	v.SetDefault("client_timeout", "")
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("proxy_connection_string", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("cache.provider", "memory")
	v.SetDefault("cache.size", 100)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.redis.address", "")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "production")
}

// ParseDuration parses a Go duration string from the config, falling back to def
// (with a warning) when the value is empty or invalid.
func ParseDuration(key, value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Str("value", value).Dur("default", def).Msg("Invalid duration, using default")
		return def
	}
	return parsed
}

func GetConfig() *Config {
	return globalConfig
}

func GetLogger() zerolog.Logger {
	return logger
}
