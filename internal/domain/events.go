package domain

type EventType string

const (
	EventStatus   EventType = "status"
	EventCitation EventType = "citation"
	EventArtifact EventType = "artifact"
)

// Event is a notification payload handed back to the host for rendering in
// the conversation UI (status lines, error citations, artifact panels).
type Event struct {
	Type EventType      `json:"type"`
	Data map[string]any `json:"data"`
}

func StatusEvent(description string, done bool) Event {
	return Event{
		Type: EventStatus,
		Data: map[string]any{"description": description, "done": done},
	}
}

func ErrorCitationEvent(source string, err error) Event {
	return Event{
		Type: EventCitation,
		Data: map[string]any{
			"source":   map[string]any{"name": source},
			"document": []string{err.Error()},
		},
	}
}

func ArtifactEvent(title, content string) Event {
	return Event{
		Type: EventArtifact,
		Data: map[string]any{"title": title, "content": content},
	}
}

// Notifier delivers events back to the host.
type Notifier interface {
	Notify(e Event)
}

// EventBuffer collects events during one hook invocation; handlers return the
// buffered events in the hook response for the host to render.
type EventBuffer struct {
	events []Event
}

func (b *EventBuffer) Notify(e Event) {
	b.events = append(b.events, e)
}

// Events returns the collected events, never nil.
func (b *EventBuffer) Events() []Event {
	if b.events == nil {
		return []Event{}
	}
	return b.events
}
