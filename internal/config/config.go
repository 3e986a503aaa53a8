package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	SnapshotPath    string
	DepartmentsFile string

	TTSAPIKey  string
	TTSModel   string
	TTSTimeout time.Duration

	DisplayRecentLimit int
	RateLimitPerMinute int
	RateLimitBurst     int
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	snapshotPath := os.Getenv("SNAPSHOT_PATH")
	if snapshotPath == "" {
		snapshotPath = "queue_state.db"
	}

	return Config{
		Port:            port,
		SnapshotPath:    snapshotPath,
		DepartmentsFile: os.Getenv("DEPARTMENTS_FILE"),

		TTSAPIKey:  os.Getenv("GEMINI_API_KEY"),
		TTSModel:   os.Getenv("TTS_MODEL"),
		TTSTimeout: readDurationSeconds("TTS_TIMEOUT_SECONDS", 30),

		DisplayRecentLimit: readInt("DISPLAY_RECENT_LIMIT", 6),
		RateLimitPerMinute: readInt("RATE_LIMIT_PER_MIN", 120),
		RateLimitBurst:     readInt("RATE_LIMIT_BURST", 30),
	}
}

func readDurationSeconds(key string, fallback int) time.Duration {
	value := readInt(key, fallback)
	if value <= 0 {
		return 0
	}
	return time.Duration(value) * time.Second
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
