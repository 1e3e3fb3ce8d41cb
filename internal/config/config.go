package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API        *APIConfig        `mapstructure:"api"`
	Gin        *GinConfig        `mapstructure:"gin"`
	Log        *LogConfig        `mapstructure:"log"`
	Postgres   *PostgresConfig   `mapstructure:"postgres"`
	Redis      *RedisConfig      `mapstructure:"redis"`
	Mailer     *MailerConfig     `mapstructure:"mailer"`
	Gemini     *GeminiConfig     `mapstructure:"gemini"`
	Uploads    *UploadsConfig    `mapstructure:"uploads"`
	Scan       *ScanConfig       `mapstructure:"scan"`
	Rewards    *RewardsConfig    `mapstructure:"rewards"`
	Newsletter *NewsletterConfig `mapstructure:"newsletter"`
	RateLimit  *RateLimitConfig  `mapstructure:"rate_limit"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	BackendURL         string        `mapstructure:"backend_url"`
	FrontendURL        string        `mapstructure:"frontend_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	JWTTTL             time.Duration `mapstructure:"jwt_ttl"`
}

func (c *APIConfig) IsProduction() bool {
	return c.Environment == "production"
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode,
	)
}

// RedisConfig enables the shared rate limiter when Addr is set.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MailerConfig struct {
	Provider    string           `mapstructure:"provider"`
	FromAddress string           `mapstructure:"from_address"`
	FromName    string           `mapstructure:"from_name"`
	SES         *MailerSESConfig `mapstructure:"ses"`
}

type MailerSESConfig struct {
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

type GeminiConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	Model      string        `mapstructure:"model"`
	BaseURL    string        `mapstructure:"base_url"`
	APIVersion string        `mapstructure:"api_version"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type UploadsConfig struct {
	Dir         string `mapstructure:"dir"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
}

// ScanConfig locates the pin detector. The command is run as
// `<command> <script> <model> <image> <confidence> <mode>` from WorkDir.
type ScanConfig struct {
	Command    string        `mapstructure:"command"`
	Script     string        `mapstructure:"script"`
	Model      string        `mapstructure:"model"`
	WorkDir    string        `mapstructure:"work_dir"`
	Confidence float64       `mapstructure:"confidence"`
	Mode       string        `mapstructure:"mode"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type RewardsConfig struct {
	CheckInPoints int `mapstructure:"check_in_points"`
}

type NewsletterConfig struct {
	Concurrency int           `mapstructure:"concurrency"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

// Load reads the yml file at path. Environment variables override any key,
// with "." replaced by "_" (API_JWT_SIGNING_KEY overrides api.jwt_signing_key).
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		level := v.GetString("log.level")
		zap.L().Info("config file changed", zap.String("file", e.Name), zap.String("log_level", level))
		if onLogLevelChange != nil {
			onLogLevelChange(level)
		}
	})
	v.WatchConfig()

	return conf, nil
}

var onLogLevelChange func(level string)

// OnLogLevelChange registers fn to run when log.level changes in the watched file.
func OnLogLevelChange(fn func(level string)) {
	onLogLevelChange = fn
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "5000")
	v.SetDefault("api.jwt_ttl", 7*24*time.Hour)
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("log.level", "info")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("mailer.provider", "noop")
	v.SetDefault("mailer.ses.region", "us-east-1")
	v.SetDefault("gemini.model", "gemini-2.0-flash-exp")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/")
	v.SetDefault("gemini.api_version", "v1")
	v.SetDefault("gemini.timeout", 30*time.Second)
	v.SetDefault("uploads.dir", "./uploads")
	v.SetDefault("uploads.max_file_size", 10<<20)
	v.SetDefault("scan.command", "python")
	v.SetDefault("scan.script", "scripts/detect_and_ocr.py")
	v.SetDefault("scan.model", "runs/detect/train/weights/best.pt")
	v.SetDefault("scan.work_dir", ".")
	v.SetDefault("scan.confidence", 0.25)
	v.SetDefault("scan.mode", "ocr")
	v.SetDefault("scan.timeout", 60*time.Second)
	v.SetDefault("rewards.check_in_points", 50)
	v.SetDefault("newsletter.concurrency", 10)
	v.SetDefault("newsletter.timeout", 5*time.Minute)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.limit", 20)
	v.SetDefault("rate_limit.window", time.Minute)
}

func (c *AppConfig) validate() error {
	if c.API == nil || c.API.JWTSigningKey == "" {
		return fmt.Errorf("api.jwt_signing_key is required")
	}
	if c.API.JWTTTL <= 0 {
		return fmt.Errorf("api.jwt_ttl must be positive")
	}
	if c.Newsletter == nil || c.Newsletter.Concurrency <= 0 {
		return fmt.Errorf("newsletter.concurrency must be positive")
	}

	return nil
}
