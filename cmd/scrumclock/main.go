package main

import (
	"flag"
	"fmt"
	"os"

	"scrumclock/internal/app"

	clog "github.com/charmbracelet/log"
)

var version = "dev"

func main() {
	cfg := app.DefaultConfig()
	if err := cfg.LoadEnv(); err != nil {
		fatal(err)
	}

	showVersion := flag.Bool("version", false, "print version and exit")
	flag.StringVar(&cfg.Profile, "profile", cfg.Profile, "meeting profile name")
	flag.StringVar(&cfg.ProfileDir, "profile-dir", cfg.ProfileDir, "directory of profile YAML files")
	flag.StringVar(&cfg.Team, "team", cfg.Team, "team name shown in the message line")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for the run database")
	flag.StringVar(&cfg.EventLog, "event-log", cfg.EventLog, "append NDJSON events to this file")
	flag.StringVar(&cfg.UI.StyleVariant, "style", cfg.UI.StyleVariant, "ui style variant (boardroom, retro_terminal)")
	flag.StringVar(&cfg.UI.MotionLevel, "motion", cfg.UI.MotionLevel, "ui motion level (off, full)")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")
	flag.DurationVar(&cfg.Countdown, "countdown", cfg.Countdown, "override the profile countdown (e.g. 15m)")
	flag.DurationVar(&cfg.Step, "step", cfg.Step, "override the tick step (e.g. 1s)")
	flag.DurationVar(&cfg.Threshold, "threshold", cfg.Threshold, "override the warning threshold (e.g. 2m)")
	flag.Parse()

	if *showVersion {
		fmt.Println("scrumclock", version)
		return
	}

	a, err := app.New(cfg)
	if err != nil {
		fatal(err)
	}
	runErr := a.Run()
	if err := a.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		fatal(runErr)
	}
}

func fatal(err error) {
	clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "scrumclock"}).Fatal(err)
}
