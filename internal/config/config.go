package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// MySQL holds the forum tables
	Database DatabaseConfig `json:"database"`

	// MongoDB holds user accounts and media blobs
	MongoDB MongoDBConfig `json:"mongodb"`

	Auth AuthConfig `json:"auth"`

	Notification NotificationConfig `json:"notification"`

	Media MediaConfig `json:"media"`

	Logging LoggingConfig `json:"logging"`
}

type ServerConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	HealthPort   string `json:"health_port"` // gRPC health probe
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	Environment  string `json:"environment"` // development, staging, production
	MediaBaseURL string `json:"media_base_url"`
}

type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

type MongoDBConfig struct {
	Host            string `json:"host"`
	Port            string `json:"port"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	Database        string `json:"database"`
	UsersCollection string `json:"users_collection"`
	MediaBucket     string `json:"media_bucket"`
}

type AuthConfig struct {
	JWTSecret string `json:"-"`
}

type NotificationConfig struct {
	Workers           int `json:"workers"`
	ChannelBufferSize int `json:"channel_buffer_size"`
}

type MediaConfig struct {
	MaxUploadMB int `json:"max_upload_mb"`
}

type LoggingConfig struct {
	Level string `json:"level"` // silent, error, warn, info
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			HealthPort:   getEnv("HEALTH_GRPC_PORT", "7010"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			Environment:  getEnv("ENVIRONMENT", "development"),
			MediaBaseURL: os.Getenv("MEDIA_BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("MYSQL_HOST", "localhost"),
			Port:         getEnv("MYSQL_PORT", "3306"),
			Username:     getEnv("MYSQL_USERNAME", "forum"),
			Password:     getEnv("MYSQL_PASSWORD", "forum123"),
			DatabaseName: getEnv("MYSQL_DATABASE", "forum"),
			MaxOpenConns: getEnvAsInt("MYSQL_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("MYSQL_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoDBConfig{
			Host:            getEnv("MONGO_HOST", "localhost"),
			Port:            getEnv("MONGO_PORT", "27017"),
			Username:        os.Getenv("MONGO_USERNAME"),
			Password:        os.Getenv("MONGO_PASSWORD"),
			Database:        getEnv("MONGO_DATABASE", "parentapp"),
			UsersCollection: getEnv("MONGO_USERS_COLLECTION", "users"),
			MediaBucket:     getEnv("MONGO_MEDIA_BUCKET", "forum_media"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Notification: NotificationConfig{
			Workers:           getEnvAsInt("NOTIF_WORKERS", 5),
			ChannelBufferSize: getEnvAsInt("NOTIF_BUFFER", 1000),
		},
		Media: MediaConfig{
			MaxUploadMB: getEnvAsInt("MEDIA_MAX_UPLOAD_MB", 10),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.Server.MediaBaseURL == "" {
		host := cfg.Server.Host
		if host == "0.0.0.0" {
			host = "localhost"
		}
		cfg.Server.MediaBaseURL = fmt.Sprintf("http://%s:%s/media/", host, cfg.Server.Port)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET is not set, every request will be rejected")
	}

	return cfg
}

func (cfg *Config) DSN() string {
	host := cfg.Database.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Database.Port
	if port == "" {
		port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.Database.Username,
		cfg.Database.Password,
		host,
		port,
		cfg.Database.DatabaseName,
	)
}

func (cfg *Config) MongoURI() string {
	m := cfg.MongoDB
	if m.Username != "" && m.Password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=admin",
			m.Username, m.Password, m.Host, m.Port, m.Database)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s", m.Host, m.Port, m.Database)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Invalid integer for %s=%q, using %d", key, value, defaultValue)
	}
	return defaultValue
}
