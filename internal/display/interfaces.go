package display

// Sink is an output target the countdown engine mutates: a text payload plus a
// set of named style tags. Terminal views map tags to styles the way a web page
// would map CSS classes.
type Sink interface {
	SetText(text string)
	AddTag(tag string)
	RemoveTag(tag string)
}

// Document resolves default sinks from a host display by well-known name.
// Body returns the top-level container sink.
type Document interface {
	Body() Sink
	Lookup(name string) Sink
}
