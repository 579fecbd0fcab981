package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port            string
	DataAPIURL      string
	TrackingBaseURL string
	RedisAddr       string
	AMQPURL         string
	CORSOrigins     []string

	HTTPTimeout     time.Duration
	OrderCacheTTL   time.Duration
	StatsDebounce   time.Duration
	StatsHeartbeat  time.Duration
	ShutdownTimeout time.Duration
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8081"),
		DataAPIURL:      getEnv("DATA_API_URL", "http://localhost:5000/api/v1"),
		TrackingBaseURL: getEnv("TRACKING_BASE_URL", "https://eppingfoodcourt.co.uk/track"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		AMQPURL:         os.Getenv("AMQP_URL"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS",
			"http://localhost:5173,https://eppingfoodcourt.co.uk,https://admin.eppingfoodcourt.co.uk")),

		HTTPTimeout:     getDuration("HTTP_TIMEOUT", 15*time.Second),
		OrderCacheTTL:   getDuration("ORDER_CACHE_TTL", 5*time.Second),
		StatsDebounce:   getDuration("STATS_DEBOUNCE", 250*time.Millisecond),
		StatsHeartbeat:  getDuration("STATS_HEARTBEAT", 10*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
