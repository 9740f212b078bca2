package profiles

import (
	"fmt"
	"regexp"
	"time"

	"scrumclock/internal/countdown"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// Profile is one named meeting preset. Timing fields are milliseconds to match
// the historical configuration surface; a field left at zero means "use the
// engine default" (an explicit zero is not expressible in a profile file — use
// the countdown options directly for that).
type Profile struct {
	Name        string `yaml:"name"`
	Team        string `yaml:"team"`
	CountdownMS int64  `yaml:"countdown_ms"`
	StepMS      int64  `yaml:"step_ms"`
	ThresholdMS int64  `yaml:"threshold_ms"`
	AgendaMD    string `yaml:"agenda_md"`

	Path string `yaml:"-"`
}

func (p Profile) Validate() error {
	if !namePattern.MatchString(p.Name) {
		return fmt.Errorf("invalid profile name %q", p.Name)
	}
	if p.CountdownMS < 0 {
		return fmt.Errorf("countdown_ms must be >= 0")
	}
	if p.StepMS < 0 {
		return fmt.Errorf("step_ms must be >= 0")
	}
	if p.ThresholdMS < 0 {
		return fmt.Errorf("threshold_ms must be >= 0")
	}
	return nil
}

// Options converts the set timing fields into countdown options.
func (p Profile) Options() []countdown.Option {
	var opts []countdown.Option
	if p.CountdownMS > 0 {
		opts = append(opts, countdown.WithCountdown(time.Duration(p.CountdownMS)*time.Millisecond))
	}
	if p.StepMS > 0 {
		opts = append(opts, countdown.WithStep(time.Duration(p.StepMS)*time.Millisecond))
	}
	if p.ThresholdMS > 0 {
		opts = append(opts, countdown.WithThreshold(time.Duration(p.ThresholdMS)*time.Millisecond))
	}
	return opts
}

// Default is the built-in 15-minute Scrum preset used when no profile files
// are installed.
func Default() Profile {
	return Profile{
		Name: "scrum",
		Team: "Scrum",
		AgendaMD: "# Daily Scrum\n\n" +
			"- What moved since yesterday?\n" +
			"- What moves today?\n" +
			"- What is blocked?\n",
	}
}
