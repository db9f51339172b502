package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Db     DbConfig
	TG     TgConfig
	Game   GameConfig
	Bot    BotConfig
	Logger LogConfig
}

type DbConfig struct {
	Dsn             string
	MaxAttempts     int
	Delay           time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type TgConfig struct {
	Token   string
	OwnerID int64
}

type GameConfig struct {
	RatingFile      string
	PhotosDir       string
	RoundTimeout    time.Duration
	MaxRounds       int
	PromptTTL       time.Duration
	AllowAnyoneStop bool
}

type BotConfig struct {
	DropOldMessagesAfter time.Duration
}

type LogConfig struct {
	Level  slog.Level
	AppEnv string
}

// Logging
func GetLogConfig() LogConfig {

	appEnv := os.Getenv("APP_ENV")

	if appEnv != "local" {
		appEnv = "prod"
	}

	return LogConfig{
		Level:  levelFromEnv(),
		AppEnv: appEnv,
	}
}

func levelFromEnv() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Bot
func GetBotConfig() BotConfig {
	return BotConfig{
		DropOldMessagesAfter: envDuration("BOT_DROP_OLD_TIMEOUT", 10*time.Second),
	}
}

// Game
func GetGameConfig() GameConfig {
	return GameConfig{
		RatingFile:      envString("RATING_FILE", "db.json"),
		PhotosDir:       envString("PHOTOS_DIR", "assets/photos"),
		RoundTimeout:    envDuration("ROUND_TIMEOUT", 120*time.Second),
		MaxRounds:       envInt("MAX_ROUNDS", 30),
		PromptTTL:       envDuration("CATEGORY_PROMPT_TTL", 6*time.Second),
		AllowAnyoneStop: envBool("ALLOW_ANYONE_STOP", true),
	}
}

// GetDbConfig - настройки опциональной базы статистики.
func GetDbConfig() (DbConfig, error) {
	dsn, err := GetDsn()
	if err != nil {
		return DbConfig{}, err
	}

	return DbConfig{
		Dsn:             dsn,
		Delay:           envDuration("DB_DELAY_CONNECTION", 2*time.Second),
		MaxAttempts:     envInt("DB_MAX_ATTEMPTS", 5),
		MaxOpenConns:    envInt("DB_MAX_OPEN_CONN", 10),
		MaxIdleConns:    envInt("DB_MAX_IDLE_CONN", 5),
		ConnMaxLifetime: envDuration("DB_MAX_LIFETIME_CONN", 30*time.Minute),
	}, nil
}

func GetDsn() (string, error) {
	env := os.Getenv("APP_ENV")

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "localhost"
		if env == "docker" {
			host = "postgres"
		}
	}

	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	port := os.Getenv("DB_PORT")
	name := os.Getenv("DB_NAME")

	if user == "" || pass == "" || port == "" || name == "" {
		return "", fmt.Errorf("db env is not set полностью: DB_USER, DB_PASSWORD, DB_PORT, DB_NAME are required")
	}

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&TimeZone=UTC",
		user, pass, host, port, name,
	)
	return dsn, nil
}

func GetTgConfig() (TgConfig, error) {
	token := os.Getenv("TELEGRAM_TOKEN")
	if token == "" {
		return TgConfig{}, fmt.Errorf("TELEGRAM_TOKEN not set")
	}

	var ownerID int64
	if raw := strings.TrimSpace(os.Getenv("OWNER_ID")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return TgConfig{}, fmt.Errorf("OWNER_ID is not a number: %w", err)
		}
		ownerID = id
	}

	return TgConfig{Token: token, OwnerID: ownerID}, nil
}

func LoadConfig() (*Config, error) {
	if os.Getenv("APP_ENV") != "docker" {
		_ = godotenv.Load() // тихо; отсутствие .env - норм
	}

	tgCfg, err := GetTgConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		TG:     tgCfg,
		Game:   GetGameConfig(),
		Bot:    GetBotConfig(),
		Logger: GetLogConfig(),
	}

	// База - опциональная, её отсутствие обрабатывает вызывающий.
	if dbCfg, err := GetDbConfig(); err == nil {
		cfg.Db = dbCfg
	}

	return cfg, nil
}

// helper for duration
func envDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envString(key, def string) string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	return raw
}

func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}
