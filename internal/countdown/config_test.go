package countdown

import (
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	if cfg.Countdown != 15*time.Minute {
		t.Fatalf("expected 15m countdown, got %v", cfg.Countdown)
	}
	if cfg.Step != time.Second {
		t.Fatalf("expected 1s step, got %v", cfg.Step)
	}
	if cfg.Threshold != 2*time.Minute {
		t.Fatalf("expected 2m threshold, got %v", cfg.Threshold)
	}
	if cfg.Minutes != 15.0 {
		t.Fatalf("expected derived minutes 15, got %v", cfg.Minutes)
	}
}

func TestNewConfigExplicitZeroIsHonored(t *testing.T) {
	// An explicit zero is a real value, not "use the default".
	cfg := NewConfig(WithCountdown(0), WithThreshold(0))
	if cfg.Countdown != 0 {
		t.Fatalf("explicit zero countdown replaced by default: %v", cfg.Countdown)
	}
	if cfg.Threshold != 0 {
		t.Fatalf("explicit zero threshold replaced by default: %v", cfg.Threshold)
	}
	if cfg.Step != time.Second {
		t.Fatalf("omitted step should default, got %v", cfg.Step)
	}
	if cfg.Minutes != 0 {
		t.Fatalf("expected derived minutes 0, got %v", cfg.Minutes)
	}
}

func TestNewConfigPartialOverride(t *testing.T) {
	cfg := NewConfig(WithCountdown(90*time.Second), WithStep(500*time.Millisecond))
	if cfg.Countdown != 90*time.Second {
		t.Fatalf("countdown override lost: %v", cfg.Countdown)
	}
	if cfg.Step != 500*time.Millisecond {
		t.Fatalf("step override lost: %v", cfg.Step)
	}
	if cfg.Threshold != 2*time.Minute {
		t.Fatalf("threshold should default, got %v", cfg.Threshold)
	}
	if cfg.Minutes != 1.5 {
		t.Fatalf("expected derived minutes 1.5, got %v", cfg.Minutes)
	}
}
