package countdown

// Level is one of four ordered severity states governing displayed styling and
// text. The four canonical levels below are the only instances; code compares
// levels by identity, never by ordinal, so a structurally equal copy is never
// mistaken for the real thing.
type Level struct {
	ordinal  int
	message  string
	styleTag string
}

var (
	Calm     = &Level{ordinal: 0, message: "is cool!"}
	Warn     = &Level{ordinal: 1, message: "is running out of time!", styleTag: "warn-ya"}
	Hurry    = &Level{ordinal: 2, message: "is WAR!!", styleTag: "hurry-up"}
	GameOver = &Level{ordinal: 3, message: "G.A.M.E. O.V.E.R.!", styleTag: "all-ends"}
)

// StressTag is the extra tag applied to the text sink when the countdown
// completes, on top of the GameOver style tag on the container.
const StressTag = "stress"

func (l *Level) Ordinal() int { return l.ordinal }

// Message is the literal text pushed to the text sink when this level is
// entered. Part of the compatibility surface.
func (l *Level) Message() string { return l.message }

// StyleTag is the tag added to the container when this level is entered and
// removed when it is left. Empty for Calm.
func (l *Level) StyleTag() string { return l.styleTag }

func (l *Level) String() string {
	switch l {
	case Calm:
		return "calm"
	case Warn:
		return "warn"
	case Hurry:
		return "hurry"
	case GameOver:
		return "game_over"
	}
	return "unknown"
}
