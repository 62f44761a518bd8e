package provisioning

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/go-logr/logr"
)

// Logger is the minimal printf-style logging surface.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during provisioning.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a phase
	Progress(phase string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "create", "dns")
	Message   string            // Human-readable message
	Resource  string            // Resource name/ID if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
	Err       error             // Cause, for failure and warning events
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceUpdated indicates an existing resource was rewritten.
	EventResourceUpdated EventType = "resource.updated"
	// EventResourceFailed indicates an operation on a resource failed.
	EventResourceFailed EventType = "resource.failed"
	// EventResourceDeleting indicates a resource is being deleted.
	EventResourceDeleting EventType = "resource.deleting"
	// EventResourceDeleted indicates a resource was deleted successfully.
	EventResourceDeleted EventType = "resource.deleted"

	// EventWarning indicates a non-fatal problem; the operation continues.
	EventWarning EventType = "warning"

	// EventProgress indicates progress in a long-running operation.
	EventProgress EventType = "progress"
)

// IsFailure reports whether the event type records an error.
func (t EventType) IsFailure() bool {
	return t == EventPhaseFailed || t == EventResourceFailed
}

// LogObserver implements Observer on top of a logr.Logger.
type LogObserver struct {
	logger        logr.Logger
	contextFields map[string]string
}

// NewLogObserver creates an observer writing to logger.
func NewLogObserver(logger logr.Logger) *LogObserver {
	return &LogObserver{
		logger:        logger,
		contextFields: make(map[string]string),
	}
}

// NewDiscardObserver creates an observer that drops everything.
func NewDiscardObserver() *LogObserver {
	return NewLogObserver(logr.Discard())
}

// Printf implements Logger.
func (o *LogObserver) Printf(format string, v ...interface{}) {
	o.logger.V(1).Info(fmt.Sprintf(format, v...))
}

// Event implements Observer interface.
func (o *LogObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	fields := make(map[string]string, len(o.contextFields)+len(event.Fields))
	maps.Copy(fields, o.contextFields)
	maps.Copy(fields, event.Fields)

	kv := []interface{}{"event", string(event.Type)}
	if event.Phase != "" {
		kv = append(kv, "phase", event.Phase)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		kv = append(kv, k, fields[k])
	}

	switch {
	case event.Type.IsFailure():
		o.logger.Error(event.Err, event.Message, kv...)
	case event.Type == EventWarning:
		if event.Err != nil {
			kv = append(kv, "error", event.Err.Error())
		}
		o.logger.Info(event.Message, kv...)
	case event.Type == EventProgress, event.Type == EventPhaseStarted, event.Type == EventPhaseCompleted:
		o.logger.V(1).Info(event.Message, kv...)
	default:
		o.logger.Info(event.Message, kv...)
	}
}

// Progress implements Observer interface.
func (o *LogObserver) Progress(phase string, current, total int) {
	percentage := 0
	if total > 0 {
		percentage = (current * 100) / total
	}
	o.Event(Event{
		Type:    EventProgress,
		Phase:   phase,
		Message: fmt.Sprintf("progress %d/%d", current, total),
		Fields:  map[string]string{"percent": fmt.Sprint(percentage)},
	})
}

// WithFields implements Observer interface.
func (o *LogObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	maps.Copy(newFields, o.contextFields)
	maps.Copy(newFields, fields)
	return &LogObserver{
		logger:        o.logger,
		contextFields: newFields,
	}
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: "phase failed",
		Err:     err,
	})
}

// LogResourceCreating logs a resource creation start event.
func LogResourceCreating(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceCreating,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("creating %s", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceCreated logs a successful resource creation event.
func LogResourceCreated(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s created", resourceType),
		Fields: map[string]string{
			"type": resourceType,
			"id":   resourceID,
		},
	})
}

// LogResourceUpdated logs an in-place update of an existing resource.
func LogResourceUpdated(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceUpdated,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s updated", resourceType),
		Fields: map[string]string{
			"type": resourceType,
			"id":   resourceID,
		},
	})
}

// LogResourceFailed logs a failed operation on one resource.
func LogResourceFailed(observer Observer, phase, resourceType, resourceName string, err error) {
	observer.Event(Event{
		Type:     EventResourceFailed,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s failed", resourceType),
		Fields:   map[string]string{"type": resourceType},
		Err:      err,
	})
}

// LogResourceDeleting logs a resource deletion start event.
func LogResourceDeleting(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceDeleting,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("deleting %s", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceDeleted logs a successful resource deletion event.
func LogResourceDeleted(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceDeleted,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s deleted", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogWarning logs a non-fatal problem.
func LogWarning(observer Observer, phase, resourceName, message string, err error) {
	observer.Event(Event{
		Type:     EventWarning,
		Phase:    phase,
		Resource: resourceName,
		Message:  message,
		Err:      err,
	})
}
