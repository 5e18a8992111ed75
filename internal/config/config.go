package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"bfv-tracker/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	RobotAPIURL       string
	BFBanAPIURL       string
	ServerPort        string
	LogLevel          string
	FetchTimeout      time.Duration
	DisplayTimezone   string
	DisplayLocation   *time.Location
	ServerSearchLimit int
	TelegramToken     string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		RobotAPIURL:     strings.TrimRight(getEnv("ROBOT_API_URL", "https://api.bfvrobot.net"), "/"),
		BFBanAPIURL:     strings.TrimRight(getEnv("BFBAN_API_URL", "https://api.bfban.com"), "/"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DisplayTimezone: getEnv("DISPLAY_TIMEZONE", constants.DefaultDisplayTimezone),
		TelegramToken:   getEnv("TELEGRAM_TOKEN", ""),
	}

	timeout, err := time.ParseDuration(getEnv("FETCH_TIMEOUT", constants.ExternalAPITimeout.String()))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %q", os.Getenv("FETCH_TIMEOUT"))
	}
	cfg.FetchTimeout = timeout

	limit, err := strconv.Atoi(getEnv("SERVER_SEARCH_LIMIT", strconv.Itoa(constants.ServerSearchLimit)))
	if err != nil || limit <= 0 {
		return nil, fmt.Errorf("invalid SERVER_SEARCH_LIMIT: %q", os.Getenv("SERVER_SEARCH_LIMIT"))
	}
	cfg.ServerSearchLimit = limit

	if cfg.RobotAPIURL == "" || cfg.BFBanAPIURL == "" {
		return nil, fmt.Errorf("ROBOT_API_URL and BFBAN_API_URL must not be empty")
	}

	cfg.DisplayLocation = loadLocation(cfg.DisplayTimezone, logger)

	logger.Info().
		Str("robot_api_url", cfg.RobotAPIURL).
		Str("bfban_api_url", cfg.BFBanAPIURL).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("fetch_timeout", cfg.FetchTimeout).
		Str("display_timezone", cfg.DisplayTimezone).
		Bool("telegram_enabled", cfg.TelegramToken != "").
		Msg("configuration loaded")

	return cfg, nil
}

// loadLocation falls back to a fixed UTC+8 zone when the tz database has no
// entry for name.
func loadLocation(name string, logger zerolog.Logger) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn().Err(err).Str("timezone", name).Msg("unknown timezone, falling back to UTC+8")
		return time.FixedZone("UTC+8", constants.DefaultDisplayOffset)
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
