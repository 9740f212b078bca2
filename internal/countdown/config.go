package countdown

import "time"

// Defaults for a 15-minute Scrum timebox: one-second ticks and a two-minute
// warning threshold.
const (
	DefaultCountdown = 15 * time.Minute
	DefaultStep      = time.Second
	DefaultThreshold = 2 * time.Minute
)

// Config describes one countdown run. Minutes is the derived whole-and-
// fractional minute count of the full countdown; the per-tick update rewrites
// the displayed minutes and seconds from the remaining duration, so no initial
// seconds derivation is kept here.
type Config struct {
	Countdown time.Duration
	Step      time.Duration
	Threshold time.Duration
	Minutes   float64
}

// Option overrides one Config field. An explicitly supplied zero is honored;
// only fields with no option at all fall back to the defaults.
type Option func(*Config)

func WithCountdown(d time.Duration) Option { return func(c *Config) { c.Countdown = d } }
func WithStep(d time.Duration) Option      { return func(c *Config) { c.Step = d } }
func WithThreshold(d time.Duration) Option { return func(c *Config) { c.Threshold = d } }

// NewConfig builds a Config from the defaults plus opts. No validation is
// performed: negative, zero, and non-divisible combinations are accepted as-is
// and behave exactly as the tick algorithm dictates.
func NewConfig(opts ...Option) Config {
	c := Config{
		Countdown: DefaultCountdown,
		Step:      DefaultStep,
		Threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(&c)
	}
	c.Minutes = c.Countdown.Minutes()
	return c
}
