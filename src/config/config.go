package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config collects every runtime knob of the service. Values come from
// defaults overridden by environment variables (dots become
// underscores: server.port is SERVER_PORT, log.level is LOG_LEVEL).
type Config struct {
	Server       ServerConfig
	Log          LogConfig
	RateLimit    RateLimitConfig
	Availability AvailabilityConfig
	Book         BookConfig
	Feed         FeedConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level          string
	Format         string
	File           string
	RequestLogging bool
}

type RateLimitConfig struct {
	Disabled bool
	Max      int
	Window   time.Duration
}

type AvailabilityConfig struct {
	// MaxInFlight bounds concurrent requests into the service; beyond
	// it callers get 503 as the explicit backpressure signal. 0 means
	// unbounded.
	MaxInFlight int64
}

type BookConfig struct {
	DefaultDepth int
	MaxDepth     int
}

type FeedConfig struct {
	Brokers []string // empty disables the trade feed
	Topic   string
}

func Load() *Config {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.request_logging", true)

	v.SetDefault("rate_limit.disabled", false)
	v.SetDefault("rate_limit.max", 100)
	v.SetDefault("rate_limit.window", "1s")

	v.SetDefault("availability.max_in_flight", 1024)

	v.SetDefault("book.default_depth", 10)
	v.SetDefault("book.max_depth", 1000)

	v.SetDefault("feed.brokers", "")
	v.SetDefault("feed.topic", "orderbook.trades")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{
		Server: ServerConfig{
			Port:            v.GetString("server.port"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Log: LogConfig{
			Level:          v.GetString("log.level"),
			Format:         v.GetString("log.format"),
			File:           v.GetString("log.file"),
			RequestLogging: v.GetBool("log.request_logging"),
		},
		RateLimit: RateLimitConfig{
			Disabled: v.GetBool("rate_limit.disabled"),
			Max:      v.GetInt("rate_limit.max"),
			Window:   v.GetDuration("rate_limit.window"),
		},
		Availability: AvailabilityConfig{
			MaxInFlight: v.GetInt64("availability.max_in_flight"),
		},
		Book: BookConfig{
			DefaultDepth: v.GetInt("book.default_depth"),
			MaxDepth:     v.GetInt("book.max_depth"),
		},
		Feed: FeedConfig{
			Brokers: splitBrokers(v.GetString("feed.brokers")),
			Topic:   v.GetString("feed.topic"),
		},
	}
}

func splitBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
