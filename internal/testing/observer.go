package testing

import (
	"fmt"
	"maps"
	"sync"

	"github.com/harborwave/harbor-wave/internal/provisioning"
)

// RecordingObserver keeps every event it receives. Observers derived with
// WithFields share the same sink.
type RecordingObserver struct {
	sink   *eventSink
	fields map[string]string
}

type eventSink struct {
	mu     sync.Mutex
	events []provisioning.Event
	lines  []string
}

var _ provisioning.Observer = (*RecordingObserver)(nil)

// NewRecordingObserver returns an empty recorder.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{sink: &eventSink{}, fields: map[string]string{}}
}

// Printf implements provisioning.Logger.
func (o *RecordingObserver) Printf(format string, v ...interface{}) {
	o.sink.mu.Lock()
	defer o.sink.mu.Unlock()
	o.sink.lines = append(o.sink.lines, fmt.Sprintf(format, v...))
}

// Event implements provisioning.Observer.
func (o *RecordingObserver) Event(event provisioning.Event) {
	fields := make(map[string]string, len(o.fields)+len(event.Fields))
	maps.Copy(fields, o.fields)
	maps.Copy(fields, event.Fields)
	event.Fields = fields

	o.sink.mu.Lock()
	defer o.sink.mu.Unlock()
	o.sink.events = append(o.sink.events, event)
}

// Progress implements provisioning.Observer.
func (o *RecordingObserver) Progress(phase string, current, total int) {
	o.Event(provisioning.Event{
		Type:    provisioning.EventProgress,
		Phase:   phase,
		Message: fmt.Sprintf("progress %d/%d", current, total),
	})
}

// WithFields implements provisioning.Observer.
func (o *RecordingObserver) WithFields(fields map[string]string) provisioning.Observer {
	merged := make(map[string]string, len(o.fields)+len(fields))
	maps.Copy(merged, o.fields)
	maps.Copy(merged, fields)
	return &RecordingObserver{sink: o.sink, fields: merged}
}

// Events returns a copy of everything recorded so far.
func (o *RecordingObserver) Events() []provisioning.Event {
	o.sink.mu.Lock()
	defer o.sink.mu.Unlock()
	return append([]provisioning.Event(nil), o.sink.events...)
}

// EventsOfType returns recorded events of type t.
func (o *RecordingObserver) EventsOfType(t provisioning.EventType) []provisioning.Event {
	var out []provisioning.Event
	for _, e := range o.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Lines returns the Printf output.
func (o *RecordingObserver) Lines() []string {
	o.sink.mu.Lock()
	defer o.sink.mu.Unlock()
	return append([]string(nil), o.sink.lines...)
}
