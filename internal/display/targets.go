package display

// Well-known sink names used when resolving defaults from a Document.
const (
	NameMinutes      = "minutes"
	NameSeconds      = "seconds"
	NameMilliseconds = "milliseconds"
	NameDescription  = "description"
)

// Targets holds the five output sinks the engine writes to. Any field may be
// nil; mutations against a nil sink are skipped silently and uniformly by the
// apply helpers below. The engine never creates or destroys sinks.
type Targets struct {
	Container    Sink
	Minutes      Sink
	Seconds      Sink
	Milliseconds Sink
	Text         Sink
}

// Resolve fills the unset fields of overrides from doc, looking up the
// well-known names and using the document body as the container. A nil doc
// leaves absent fields nil. No validation is performed.
func Resolve(doc Document, overrides Targets) Targets {
	out := overrides
	if doc == nil {
		return out
	}
	if out.Container == nil {
		out.Container = doc.Body()
	}
	if out.Minutes == nil {
		out.Minutes = doc.Lookup(NameMinutes)
	}
	if out.Seconds == nil {
		out.Seconds = doc.Lookup(NameSeconds)
	}
	if out.Milliseconds == nil {
		out.Milliseconds = doc.Lookup(NameMilliseconds)
	}
	if out.Text == nil {
		out.Text = doc.Lookup(NameDescription)
	}
	return out
}

// SetText writes text to s, skipping absent sinks.
func SetText(s Sink, text string) {
	if s != nil {
		s.SetText(text)
	}
}

// AddTag adds tag to s, skipping absent sinks.
func AddTag(s Sink, tag string) {
	if s != nil {
		s.AddTag(tag)
	}
}

// RemoveTag removes tag from s, skipping absent sinks.
func RemoveTag(s Sink, tag string) {
	if s != nil {
		s.RemoveTag(tag)
	}
}
