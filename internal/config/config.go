package config

import (
	"os"
	"strconv"
	"time"

	"rewards_wheel/internal/wheel"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string // optional, built-in catalogs are used without it
	LogLevel    string
	LogJSON     bool
	Version     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AllowedOrigin string

	// Wheel animation
	SpinDuration    time.Duration
	ExtraTurns      int
	TickIntervalDeg float64
	FrameInterval   time.Duration
	IdleTimeout     time.Duration

	// Limits
	APIRateLimit        int
	APIRateWindow       time.Duration
	SpinRateLimit       int
	SpinRateWindow      time.Duration
	WSSpinsPerSecond    float64
	WSUpgradesPerSecond float64
	WSUpgradeBurst      int
}

// Default returns the configuration used when no variable is set.
func Default() *Config {
	return &Config{
		AppPort:  "8080",
		LogLevel: "info",
		Version:  "dev",

		SpinDuration:    wheel.DefaultSpinDuration,
		ExtraTurns:      wheel.DefaultExtraTurns,
		TickIntervalDeg: wheel.DefaultTickIntervalDeg,
		FrameInterval:   16 * time.Millisecond,
		IdleTimeout:     30 * time.Minute,

		APIRateLimit:        120,
		APIRateWindow:       time.Minute,
		SpinRateLimit:       30,
		SpinRateWindow:      time.Minute,
		WSSpinsPerSecond:    1,
		WSUpgradesPerSecond: 1,
		WSUpgradeBurst:      5,
	}
}

// Load reads configuration from the environment (and .env when present).
func Load() *Config {
	_ = godotenv.Load()

	d := Default()
	return &Config{
		AppPort:     envString("APP_PORT", d.AppPort),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    envString("LOG_LEVEL", d.LogLevel),
		LogJSON:     os.Getenv("LOG_JSON") == "true",
		Version:     envString("APP_VERSION", d.Version),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),

		SpinDuration:    envMillis("SPIN_DURATION_MS", d.SpinDuration),
		ExtraTurns:      envInt("SPIN_EXTRA_TURNS", d.ExtraTurns),
		TickIntervalDeg: envFloat("TICK_INTERVAL_DEG", d.TickIntervalDeg),
		FrameInterval:   envMillis("FRAME_INTERVAL_MS", d.FrameInterval),
		IdleTimeout:     envSeconds("WS_IDLE_TIMEOUT_SECONDS", d.IdleTimeout),

		APIRateLimit:        envInt("API_RATE_LIMIT", d.APIRateLimit),
		APIRateWindow:       envSeconds("API_RATE_WINDOW_SECONDS", d.APIRateWindow),
		SpinRateLimit:       envInt("SPIN_RATE_LIMIT", d.SpinRateLimit),
		SpinRateWindow:      envSeconds("SPIN_RATE_WINDOW_SECONDS", d.SpinRateWindow),
		WSSpinsPerSecond:    envFloat("WS_SPINS_PER_SECOND", d.WSSpinsPerSecond),
		WSUpgradesPerSecond: envFloat("WS_UPGRADES_PER_SECOND", d.WSUpgradesPerSecond),
		WSUpgradeBurst:      envInt("WS_UPGRADE_BURST", d.WSUpgradeBurst),
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt keeps the default for missing, malformed or non-positive values,
// except for keys where zero is meaningful (REDIS_DB).
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || (n == 0 && key != "REDIS_DB") {
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || !(f > 0) {
		return def
	}
	return f
}

func envMillis(key string, def time.Duration) time.Duration {
	return time.Duration(envInt(key, int(def.Milliseconds()))) * time.Millisecond
}

func envSeconds(key string, def time.Duration) time.Duration {
	return time.Duration(envInt(key, int(def.Seconds()))) * time.Second
}
