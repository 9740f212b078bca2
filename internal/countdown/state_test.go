package countdown

import (
	"testing"
	"time"
)

func TestAdvanceDefaultRun(t *testing.T) {
	st := NewTimerState(NewConfig())

	var (
		ticks       int
		warnTick    = -1
		hurryTick   = -1
		overTick    = -1
		lastOrdinal = 0
		minutesText string
		secondsText string
	)

	for ticks < 2000 {
		remainingBefore := st.Remaining
		up := st.Advance()

		for _, tr := range up.Transitions {
			if tr.To.Ordinal() < lastOrdinal {
				t.Fatalf("level regressed to %s at tick %d", tr.To, ticks)
			}
			lastOrdinal = tr.To.Ordinal()
			switch tr.To {
			case Warn:
				warnTick = ticks
				if remainingBefore != 2*time.Minute {
					t.Fatalf("warn fired with remaining %v", remainingBefore)
				}
			case Hurry:
				hurryTick = ticks
			case GameOver:
				overTick = ticks
			}
		}
		if up.MinutesSet {
			minutesText = up.MinutesText
		}
		secondsText = up.SecondsText

		if ticks == 0 {
			if minutesText != "14" {
				t.Fatalf("first tick minutes = %q, want 14", minutesText)
			}
			if secondsText != "59" {
				t.Fatalf("first tick seconds = %q, want 59", secondsText)
			}
		}
		if ticks == 59 {
			// Remaining just hit 840000ms; display still shows 14.
			if st.Remaining != 14*time.Minute {
				t.Fatalf("tick 59 remaining = %v", st.Remaining)
			}
			if minutesText != "14" {
				t.Fatalf("minutes after first minute elapsed = %q, want 14", minutesText)
			}
			if secondsText != "00" {
				t.Fatalf("seconds at minute end = %q, want 00", secondsText)
			}
		}
		if ticks == 60 {
			if minutesText != "13" {
				t.Fatalf("minutes at second boundary = %q, want 13", minutesText)
			}
			if secondsText != "59" {
				t.Fatalf("seconds should reset to 59 on rollover, got %q", secondsText)
			}
		}

		ticks++
		if up.Done {
			break
		}
	}

	if overTick == -1 {
		t.Fatalf("countdown never completed")
	}
	if ticks != 900 {
		t.Fatalf("expected exactly 900 ticks to completion, got %d", ticks)
	}
	if warnTick != 780 {
		t.Fatalf("warn transition at tick %d, want 780", warnTick)
	}
	if hurryTick != 840 {
		t.Fatalf("hurry transition at tick %d, want 840", hurryTick)
	}
	if minutesText != "00" {
		t.Fatalf("final minutes = %q, want 00", minutesText)
	}
	if st.Level != GameOver {
		t.Fatalf("final level = %s, want game_over", st.Level)
	}
}

func TestAdvanceHurryCoincidesWithZeroMinutes(t *testing.T) {
	st := NewTimerState(NewConfig())
	for i := 0; ; i++ {
		up := st.Advance()
		hurried := false
		for _, tr := range up.Transitions {
			if tr.To == Hurry {
				hurried = true
			}
		}
		if hurried {
			if !up.MinutesSet || up.MinutesText != "00" {
				t.Fatalf("hurry tick minutes = %q (set=%v), want 00", up.MinutesText, up.MinutesSet)
			}
			return
		}
		if up.Done || i > 2000 {
			t.Fatalf("hurry transition never observed")
		}
	}
}

func TestAdvanceSecondsCycle(t *testing.T) {
	st := NewTimerState(NewConfig(WithCountdown(2*time.Minute), WithThreshold(0)))
	want := []string{"59", "58", "57"}
	for i, w := range want {
		up := st.Advance()
		if up.SecondsText != w {
			t.Fatalf("tick %d seconds = %q, want %q", i, up.SecondsText, w)
		}
	}
	// Skip to the end of the first minute.
	for i := 3; i < 59; i++ {
		st.Advance()
	}
	if up := st.Advance(); up.SecondsText != "00" {
		t.Fatalf("seconds at minute end = %q, want 00", up.SecondsText)
	}
	if up := st.Advance(); up.SecondsText != "59" {
		t.Fatalf("seconds at rollover = %q, want 59", up.SecondsText)
	}
}

func TestAdvanceImmediateWarnThenHurry(t *testing.T) {
	// Threshold above the whole countdown: warn immediately, hurry on the
	// same first tick since that tick is also a minute boundary leaving
	// less than a minute.
	st := NewTimerState(NewConfig(WithCountdown(time.Minute), WithThreshold(2*time.Minute)))
	up := st.Advance()
	if len(up.Transitions) != 2 {
		t.Fatalf("expected warn+hurry on first tick, got %v", up.Transitions)
	}
	if up.Transitions[0].To != Warn || up.Transitions[1].To != Hurry {
		t.Fatalf("unexpected transition order: %v", up.Transitions)
	}
}

func TestAdvanceDirectCalmToGameOver(t *testing.T) {
	st := NewTimerState(NewConfig(WithCountdown(time.Second), WithThreshold(0)))
	up := st.Advance()
	if !up.Done {
		t.Fatalf("one-second countdown should finish on the first tick")
	}
	if len(up.Transitions) != 1 {
		t.Fatalf("expected a single transition, got %v", up.Transitions)
	}
	tr := up.Transitions[0]
	if tr.From != Calm || tr.To != GameOver {
		t.Fatalf("expected calm->game_over, got %s->%s", tr.From, tr.To)
	}
}

func TestAdvanceGameOverFromWarn(t *testing.T) {
	// Default threshold covers the whole one-second countdown, so the run
	// ends from Warn with warn's tag added and then removed.
	st := NewTimerState(NewConfig(WithCountdown(time.Second)))
	up := st.Advance()
	if !up.Done {
		t.Fatalf("expected completion on first tick")
	}
	if len(up.Transitions) != 2 || up.Transitions[0].To != Warn || up.Transitions[1].To != GameOver {
		t.Fatalf("expected warn then game_over, got %v", up.Transitions)
	}
	if up.Transitions[1].From != Warn {
		t.Fatalf("game_over should leave warn, got from=%s", up.Transitions[1].From)
	}
}

func TestExactTickCountForMultipleStepConfigs(t *testing.T) {
	tests := []struct {
		name      string
		countdown time.Duration
		step      time.Duration
		want      int
	}{
		{"default", 15 * time.Minute, time.Second, 900},
		{"two minutes", 2 * time.Minute, time.Second, 120},
		{"half-second step", 30 * time.Second, 500 * time.Millisecond, 60},
		{"coarse step", time.Minute, 15 * time.Second, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewTimerState(NewConfig(WithCountdown(tt.countdown), WithStep(tt.step)))
			ticks := 0
			for {
				up := st.Advance()
				ticks++
				if up.Done {
					break
				}
				if ticks > tt.want*2+10 {
					t.Fatalf("no completion after %d ticks", ticks)
				}
			}
			if ticks != tt.want {
				t.Fatalf("completed after %d ticks, want %d", ticks, tt.want)
			}
		})
	}
}

func TestLevelIdentityAndTags(t *testing.T) {
	if Calm.StyleTag() != "" {
		t.Fatalf("calm should carry no style tag")
	}
	if Warn.StyleTag() != "warn-ya" || Hurry.StyleTag() != "hurry-up" || GameOver.StyleTag() != "all-ends" {
		t.Fatalf("style tag vocabulary changed: %q %q %q", Warn.StyleTag(), Hurry.StyleTag(), GameOver.StyleTag())
	}
	if GameOver.Message() != "G.A.M.E. O.V.E.R.!" {
		t.Fatalf("game over message changed: %q", GameOver.Message())
	}
	copyOfWarn := &Level{ordinal: 1, message: "is running out of time!", styleTag: "warn-ya"}
	if copyOfWarn == Warn {
		t.Fatalf("structurally equal level must not be identical to the canonical one")
	}
}

func TestPadClock(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00"}, {7, "07"}, {10, "10"}, {59, "59"}, {-1, "-1"},
	}
	for _, tt := range tests {
		if got := padClock(tt.in); got != tt.want {
			t.Fatalf("padClock(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
