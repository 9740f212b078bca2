package display

import "sync"

// MemorySink is a thread-safe in-memory Sink. The UI builds its panes on top
// of it and tests use it to observe engine output.
type MemorySink struct {
	mu       sync.Mutex
	text     string
	tags     []string
	onChange func()
}

func NewMemorySink() *MemorySink { return &MemorySink{} }

// OnChange registers fn to run after every mutation. Used by views to request
// a redraw. Must be set before the sink is shared.
func (s *MemorySink) OnChange(fn func()) { s.onChange = fn }

func (s *MemorySink) SetText(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
	s.changed()
}

func (s *MemorySink) AddTag(tag string) {
	s.mu.Lock()
	found := false
	for _, t := range s.tags {
		if t == tag {
			found = true
			break
		}
	}
	if !found {
		s.tags = append(s.tags, tag)
	}
	s.mu.Unlock()
	s.changed()
}

func (s *MemorySink) RemoveTag(tag string) {
	s.mu.Lock()
	out := s.tags[:0]
	for _, t := range s.tags {
		if t != tag {
			out = append(out, t)
		}
	}
	s.tags = out
	s.mu.Unlock()
	s.changed()
}

func (s *MemorySink) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Tags returns the tags currently applied, in application order.
func (s *MemorySink) Tags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tags...)
}

func (s *MemorySink) HasTag(tag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (s *MemorySink) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// MemoryDocument is an in-memory Document with a body container and the four
// well-known sub-displays pre-registered.
type MemoryDocument struct {
	body  *MemorySink
	named map[string]*MemorySink
}

func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{
		body: NewMemorySink(),
		named: map[string]*MemorySink{
			NameMinutes:      NewMemorySink(),
			NameSeconds:      NewMemorySink(),
			NameMilliseconds: NewMemorySink(),
			NameDescription:  NewMemorySink(),
		},
	}
}

func (d *MemoryDocument) Body() Sink { return d.body }

// Lookup returns the named sink, or nil when no such element exists. A nil
// result matches how a missing host element resolves.
func (d *MemoryDocument) Lookup(name string) Sink {
	s, ok := d.named[name]
	if !ok {
		return nil
	}
	return s
}

// Sink returns the named MemorySink for direct inspection, nil when absent.
func (d *MemoryDocument) Sink(name string) *MemorySink { return d.named[name] }

// BodySink returns the body container for direct inspection.
func (d *MemoryDocument) BodySink() *MemorySink { return d.body }

var (
	_ Sink     = (*MemorySink)(nil)
	_ Document = (*MemoryDocument)(nil)
)
