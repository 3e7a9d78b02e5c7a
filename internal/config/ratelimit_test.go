package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Fatal("limiter should default to enabled")
	}
	if cfg.Capacity < 1 || cfg.RefillTokens < 1 || cfg.RefillInterval <= 0 {
		t.Fatalf("invalid defaults: %+v", cfg)
	}
	if cfg.TTL < 5*cfg.RefillInterval {
		t.Fatalf("TTL %v shorter than five refill intervals", cfg.TTL)
	}
}

func TestLoadRateLimitConfigClampsBadValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "0s")
	t.Setenv("RATE_LIMIT_TTL", "1ms")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Fatalf("capacity not clamped: %d", cfg.Capacity)
	}
	if cfg.RefillInterval != time.Second {
		t.Fatalf("interval not clamped: %v", cfg.RefillInterval)
	}
	if cfg.TTL < 5*cfg.RefillInterval {
		t.Fatalf("TTL not clamped: %v", cfg.TTL)
	}
}
