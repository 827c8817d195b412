package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got: %s", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("Expected 10s shutdown timeout, got: %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Unexpected log defaults: %+v", cfg.Log)
	}
	if cfg.RateLimit.Disabled {
		t.Error("Rate limiting should default to enabled")
	}
	if cfg.RateLimit.Max != 100 || cfg.RateLimit.Window != time.Second {
		t.Errorf("Unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
	if cfg.Availability.MaxInFlight != 1024 {
		t.Errorf("Expected max in flight 1024, got: %d", cfg.Availability.MaxInFlight)
	}
	if cfg.Book.DefaultDepth != 10 || cfg.Book.MaxDepth != 1000 {
		t.Errorf("Unexpected book defaults: %+v", cfg.Book)
	}
	if len(cfg.Feed.Brokers) != 0 {
		t.Errorf("Feed should default to disabled, got brokers: %v", cfg.Feed.Brokers)
	}
	if cfg.Feed.Topic != "orderbook.trades" {
		t.Errorf("Unexpected feed topic: %s", cfg.Feed.Topic)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_MAX", "25")
	t.Setenv("RATE_LIMIT_DISABLED", "true")
	t.Setenv("BOOK_DEFAULT_DEPTH", "20")
	t.Setenv("FEED_BROKERS", "kafka-1:9092, kafka-2:9092")

	cfg := Load()

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got: %s", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected debug level, got: %s", cfg.Log.Level)
	}
	if cfg.RateLimit.Max != 25 || !cfg.RateLimit.Disabled {
		t.Errorf("Unexpected rate limit config: %+v", cfg.RateLimit)
	}
	if cfg.Book.DefaultDepth != 20 {
		t.Errorf("Expected default depth 20, got: %d", cfg.Book.DefaultDepth)
	}
	if len(cfg.Feed.Brokers) != 2 || cfg.Feed.Brokers[0] != "kafka-1:9092" || cfg.Feed.Brokers[1] != "kafka-2:9092" {
		t.Errorf("Brokers should be split and trimmed, got: %v", cfg.Feed.Brokers)
	}
}

func TestSplitBrokers(t *testing.T) {
	if got := splitBrokers(""); got != nil {
		t.Errorf("Empty string should yield nil, got: %v", got)
	}
	got := splitBrokers("a:1,, b:2 ,")
	if len(got) != 2 || got[0] != "a:1" || got[1] != "b:2" {
		t.Errorf("Expected [a:1 b:2], got: %v", got)
	}
}
