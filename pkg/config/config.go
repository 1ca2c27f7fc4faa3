package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Snapshot backends supported by the directory store.
const (
	SnapshotBackendFile     = "file"
	SnapshotBackendPostgres = "postgres"
	SnapshotBackendRedis    = "redis"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Snapshot  SnapshotConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Log       LogConfig
	Directory DirectoryConfig
	Search    SearchConfig
	QueryLog  QueryLogConfig
	Exports   ExportsConfig
}

// SnapshotConfig selects and parameterises the snapshot persistence backend.
type SnapshotConfig struct {
	Backend      string
	FilePath     string
	QueryLogPath string
	RedisKey     string
	QueryLogKey  string
	PostgresKey  string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig holds admin credentials and token settings. AdminPasswordHash
// is a bcrypt hash; plaintext never appears in config.
type AuthConfig struct {
	AdminUser         string
	AdminPasswordHash string
	JWTSecret         string
	TokenTTL          time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DirectoryConfig tunes corpus numbering and listing defaults.
type DirectoryConfig struct {
	BaseInstructorID int
	BaseReviewID     int
	InstructorsPage  int
	ReviewsPage      int
	TopLimit         int
}

// SearchConfig tunes the ranking engine.
type SearchConfig struct {
	MinQueryLength int
}

// QueryLogConfig governs the background search-request log.
type QueryLogConfig struct {
	Enabled    bool
	Workers    int
	BufferSize int
}

// ExportsConfig toggles report exports and their on-disk archive.
type ExportsConfig struct {
	Enabled bool
	Dir     string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Snapshot = SnapshotConfig{
		Backend:      strings.ToLower(v.GetString("SNAPSHOT_BACKEND")),
		FilePath:     v.GetString("SNAPSHOT_FILE_PATH"),
		QueryLogPath: v.GetString("SNAPSHOT_QUERYLOG_PATH"),
		RedisKey:     v.GetString("SNAPSHOT_REDIS_KEY"),
		QueryLogKey:  v.GetString("SNAPSHOT_QUERYLOG_REDIS_KEY"),
		PostgresKey:  v.GetString("SNAPSHOT_POSTGRES_KEY"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{
		AdminUser:         v.GetString("ADMIN_USER"),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		TokenTTL:          parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Directory = DirectoryConfig{
		BaseInstructorID: v.GetInt("DIRECTORY_BASE_INSTRUCTOR_ID"),
		BaseReviewID:     v.GetInt("DIRECTORY_BASE_REVIEW_ID"),
		InstructorsPage:  v.GetInt("DIRECTORY_INSTRUCTORS_PAGE_SIZE"),
		ReviewsPage:      v.GetInt("DIRECTORY_REVIEWS_PAGE_SIZE"),
		TopLimit:         v.GetInt("DIRECTORY_TOP_LIMIT"),
	}

	cfg.Search = SearchConfig{
		MinQueryLength: v.GetInt("SEARCH_MIN_QUERY_LENGTH"),
	}

	cfg.QueryLog = QueryLogConfig{
		Enabled:    v.GetBool("ENABLE_QUERY_LOG"),
		Workers:    v.GetInt("QUERY_LOG_WORKERS"),
		BufferSize: v.GetInt("QUERY_LOG_BUFFER"),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
		Dir:     v.GetString("EXPORTS_DIR"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("SNAPSHOT_BACKEND", SnapshotBackendFile)
	v.SetDefault("SNAPSHOT_FILE_PATH", "./data/directory.json")
	v.SetDefault("SNAPSHOT_QUERYLOG_PATH", "./data/queries.json")
	v.SetDefault("SNAPSHOT_REDIS_KEY", "teacher-directory:snapshot")
	v.SetDefault("SNAPSHOT_QUERYLOG_REDIS_KEY", "teacher-directory:queries")
	v.SetDefault("SNAPSHOT_POSTGRES_KEY", "directory")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "teacher_directory")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ADMIN_USER", "admin")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DIRECTORY_BASE_INSTRUCTOR_ID", 1)
	v.SetDefault("DIRECTORY_BASE_REVIEW_ID", 1)
	v.SetDefault("DIRECTORY_INSTRUCTORS_PAGE_SIZE", 6)
	v.SetDefault("DIRECTORY_REVIEWS_PAGE_SIZE", 5)
	v.SetDefault("DIRECTORY_TOP_LIMIT", 5)

	v.SetDefault("SEARCH_MIN_QUERY_LENGTH", 2)

	v.SetDefault("ENABLE_QUERY_LOG", true)
	v.SetDefault("QUERY_LOG_WORKERS", 1)
	v.SetDefault("QUERY_LOG_BUFFER", 64)

	v.SetDefault("ENABLE_EXPORTS", false)
	v.SetDefault("EXPORTS_DIR", "./exports")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
