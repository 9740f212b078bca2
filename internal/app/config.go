package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls runtime behavior for the TUI app. Fields can be set from
// flags, from SCRUMCLOCK_* environment variables, or both; flags win because
// they are applied after LoadEnv.
type Config struct {
	Profile    string `env:"SCRUMCLOCK_PROFILE"`
	ProfileDir string `env:"SCRUMCLOCK_PROFILE_DIR"`
	Team       string `env:"SCRUMCLOCK_TEAM"`
	DataDir    string `env:"SCRUMCLOCK_DATA_DIR"`
	EventLog   string `env:"SCRUMCLOCK_EVENT_LOG"`
	Debug      bool   `env:"SCRUMCLOCK_DEBUG"`

	// Timing overrides. Zero means "use the profile's value"; the underlying
	// engine accepts explicit zero but the app surface treats zero as unset
	// so a profile cannot be accidentally clobbered by a default flag value.
	Countdown time.Duration `env:"SCRUMCLOCK_COUNTDOWN"`
	Step      time.Duration `env:"SCRUMCLOCK_STEP"`
	Threshold time.Duration `env:"SCRUMCLOCK_THRESHOLD"`

	UI UIConfig
}

type UIConfig struct {
	StyleVariant string `env:"SCRUMCLOCK_STYLE"`
	MotionLevel  string `env:"SCRUMCLOCK_MOTION"`
}

func DefaultConfig() Config {
	return Config{
		Profile: "scrum",
		UI: UIConfig{
			StyleVariant: "boardroom",
			MotionLevel:  "full",
		},
	}
}

// LoadEnv overlays SCRUMCLOCK_* environment variables onto the config.
func (c *Config) LoadEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Profile == "" {
		c.Profile = "scrum"
	}
	if c.Countdown < 0 || c.Step < 0 || c.Threshold < 0 {
		return errors.New("timing overrides must not be negative")
	}

	switch c.UI.StyleVariant {
	case "", "boardroom", "retro_terminal":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "boardroom"
	}
	switch c.UI.MotionLevel {
	case "", "off", "full":
	default:
		return fmt.Errorf("invalid ui motion level %q", c.UI.MotionLevel)
	}
	if c.UI.MotionLevel == "" {
		c.UI.MotionLevel = "full"
	}

	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "scrumclock")
	}
	if c.ProfileDir == "" {
		c.ProfileDir = filepath.Join(c.DataDir, "profiles")
	}

	return nil
}
