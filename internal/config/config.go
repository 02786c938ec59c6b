package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Google   GoogleConfig
	Mapbox   MapboxConfig
	Storage  StorageConfig
	Events   EventsConfig
	Mail     MailConfig
	Admin    AdminConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	PlaceCacheTTL time.Duration
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// GoogleConfig - Google Maps Platform (geocoding, place details, distance matrix)
type GoogleConfig struct {
	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration
	RateLimit      float64
	Region         string
	// DistanceProvider selects the routing backend: "google" or "mapbox"
	DistanceProvider string
}

type MapboxConfig struct {
	AccessToken    string
	BaseURL        string
	DrivingProfile string
	RequestTimeout int
}

type StorageConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Bucket       string
	Region       string
	UseSSL       bool
	MaxFileBytes int64
}

type EventsConfig struct {
	// Broker - "redis" (streams) or "kafka"
	Broker       string
	KafkaBrokers []string
	EnquiryTopic string
}

type MailConfig struct {
	SMTPHost   string
	SMTPPort   int
	Username   string
	Password   string
	From       string
	FromName   string
	Recipients []string
	RateLimit  float64
}

type AdminConfig struct {
	Username     string
	PasswordHash string
	JWTSecret    string
	TokenTTL     time.Duration
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
}

func Load() (*Config, error) {
	// .env is optional: in containers the environment is already populated
	_ = godotenv.Load()
	viper.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host:        viper.GetString("API_HOST"),
			Port:        viper.GetInt("API_PORT"),
			Env:         viper.GetString("API_ENV"),
			CORSOrigins: viper.GetString("CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			PlaceCacheTTL: time.Duration(viper.GetInt("PLACE_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level:      viper.GetString("LOG_LEVEL"),
			File:       viper.GetString("LOG_FILE"),
			MaxSizeMB:  viper.GetInt("LOG_FILE_MAX_SIZE_MB"),
			MaxBackups: viper.GetInt("LOG_FILE_MAX_BACKUPS"),
		},
		Google: GoogleConfig{
			APIKey:           viper.GetString("GOOGLE_MAPS_API_KEY"),
			BaseURL:          viper.GetString("GOOGLE_MAPS_BASE_URL"),
			RequestTimeout:   time.Duration(viper.GetInt("GEOCODE_TIMEOUT")) * time.Second,
			RateLimit:        viper.GetFloat64("GOOGLE_MAPS_RATE_LIMIT"),
			Region:           viper.GetString("GOOGLE_MAPS_REGION"),
			DistanceProvider: strings.ToLower(viper.GetString("MAPS_DISTANCE_PROVIDER")),
		},
		Mapbox: MapboxConfig{
			AccessToken:    viper.GetString("MAPBOX_ACCESS_TOKEN"),
			BaseURL:        viper.GetString("MAPBOX_BASE_URL"),
			DrivingProfile: viper.GetString("MAPBOX_DRIVING_PROFILE"),
			RequestTimeout: viper.GetInt("MAPBOX_REQUEST_TIMEOUT"),
		},
		Storage: StorageConfig{
			Endpoint:     viper.GetString("STORAGE_ENDPOINT"),
			AccessKey:    viper.GetString("STORAGE_ACCESS_KEY"),
			SecretKey:    viper.GetString("STORAGE_SECRET_KEY"),
			Bucket:       viper.GetString("STORAGE_BUCKET"),
			Region:       viper.GetString("STORAGE_REGION"),
			UseSSL:       viper.GetBool("STORAGE_USE_SSL"),
			MaxFileBytes: viper.GetInt64("STORAGE_MAX_FILE_BYTES"),
		},
		Events: EventsConfig{
			Broker:       strings.ToLower(viper.GetString("EVENTS_BROKER")),
			KafkaBrokers: parseList(viper.GetString("KAFKA_BROKERS")),
			EnquiryTopic: viper.GetString("KAFKA_ENQUIRY_TOPIC"),
		},
		Mail: MailConfig{
			SMTPHost:   viper.GetString("SMTP_HOST"),
			SMTPPort:   viper.GetInt("SMTP_PORT"),
			Username:   viper.GetString("SMTP_USERNAME"),
			Password:   viper.GetString("SMTP_PASSWORD"),
			From:       viper.GetString("MAIL_FROM"),
			FromName:   viper.GetString("MAIL_FROM_NAME"),
			Recipients: parseList(viper.GetString("NOTIFY_RECIPIENTS")),
			RateLimit:  viper.GetFloat64("MAIL_RATE_LIMIT"),
		},
		Admin: AdminConfig{
			Username:     viper.GetString("ADMIN_USERNAME"),
			PasswordHash: viper.GetString("ADMIN_PASSWORD_HASH"),
			JWTSecret:    viper.GetString("ADMIN_JWT_SECRET"),
			TokenTTL:     time.Duration(viper.GetInt("ADMIN_TOKEN_TTL")) * time.Second,
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
		},
	}

	applyDefaults(cfg)

	if cfg.Admin.JWTSecret == "" {
		return nil, fmt.Errorf("ADMIN_JWT_SECRET is required")
	}

	return cfg, nil
}

// Set default values if not provided
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.CORSOrigins == "" {
		cfg.Server.CORSOrigins = "http://localhost:3000"
	}
	if cfg.Cache.PlaceCacheTTL == 0 {
		cfg.Cache.PlaceCacheTTL = 24 * time.Hour
	}
	if cfg.Google.BaseURL == "" {
		cfg.Google.BaseURL = "https://maps.googleapis.com/maps/api"
	}
	if cfg.Google.RequestTimeout == 0 {
		cfg.Google.RequestTimeout = 10 * time.Second
	}
	if cfg.Google.RateLimit == 0 {
		cfg.Google.RateLimit = 20
	}
	if cfg.Google.Region == "" {
		cfg.Google.Region = "in"
	}
	if cfg.Google.DistanceProvider == "" {
		cfg.Google.DistanceProvider = "google"
	}
	if cfg.Mapbox.BaseURL == "" {
		cfg.Mapbox.BaseURL = "https://api.mapbox.com"
	}
	if cfg.Mapbox.DrivingProfile == "" {
		cfg.Mapbox.DrivingProfile = "mapbox/driving"
	}
	if cfg.Mapbox.RequestTimeout == 0 {
		cfg.Mapbox.RequestTimeout = 10
	}
	if cfg.Storage.MaxFileBytes == 0 {
		cfg.Storage.MaxFileBytes = 10 * 1024 * 1024
	}
	if cfg.Events.Broker == "" {
		cfg.Events.Broker = "redis"
	}
	if cfg.Events.EnquiryTopic == "" {
		cfg.Events.EnquiryTopic = "enquiries.created"
	}
	if cfg.Mail.SMTPPort == 0 {
		cfg.Mail.SMTPPort = 587
	}
	if cfg.Mail.FromName == "" {
		cfg.Mail.FromName = "ODC Estimate"
	}
	if cfg.Mail.RateLimit == 0 {
		cfg.Mail.RateLimit = 10
	}
	if cfg.Admin.TokenTTL == 0 {
		cfg.Admin.TokenTTL = 12 * time.Hour
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "enquiry-notification-workers"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 100
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 5
	}
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
