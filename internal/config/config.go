package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath       string
	OutputDir    string
	ManifestPath string

	RegistryBaseURL      string
	RegistryRateLimitRPS int
	RegistryTimeoutMs    int
	RegistryMinBodyBytes int

	CrossRefsEnabled bool

	WatchIntervalSec int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:       getEnv("DB_PATH", filepath.Join(cwd, "data", "actdex.db")),
		OutputDir:    getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		ManifestPath: getEnv("MANIFEST_PATH", filepath.Join(cwd, "data", "manifest.json")),

		RegistryBaseURL:      getEnv("REGISTRY_BASE_URL", "https://www.legislation.gov.au/Details"),
		RegistryRateLimitRPS: getEnvInt("REGISTRY_RATE_LIMIT_RPS", 2),
		RegistryTimeoutMs:    getEnvInt("REGISTRY_TIMEOUT_MS", 30000),
		RegistryMinBodyBytes: getEnvInt("REGISTRY_MIN_BODY_BYTES", 2048),

		CrossRefsEnabled: getEnvBool("CROSSREFS_ENABLED", false),

		WatchIntervalSec: getEnvInt("WATCH_INTERVAL_SEC", 3600),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
