package ui

import (
	"github.com/harborwave/harbor-wave/internal/provisioning"
)

// Observer prints provisioning events as status lines and forwards every
// event to next.
type Observer struct {
	printer *Printer
	next    provisioning.Observer
}

var _ provisioning.Observer = (*Observer)(nil)

// NewObserver returns an observer printing through p. A nil next discards.
func NewObserver(p *Printer, next provisioning.Observer) *Observer {
	if next == nil {
		next = provisioning.NewDiscardObserver()
	}
	return &Observer{printer: p, next: next}
}

// Printf implements provisioning.Logger. Free-form lines go to the log only.
func (o *Observer) Printf(format string, v ...interface{}) {
	o.next.Printf(format, v...)
}

// Event implements provisioning.Observer.
func (o *Observer) Event(e provisioning.Event) {
	o.next.Event(e)

	p := o.printer
	switch e.Type {
	case provisioning.EventPhaseStarted:
		p.Message("%s", e.Phase)
	case provisioning.EventResourceCreated, provisioning.EventResourceUpdated, provisioning.EventResourceDeleted:
		line := e.Resource + ": " + e.Message
		if id := e.Fields["id"]; id != "" {
			line += " (" + id + ")"
		}
		p.Submsg("%s", p.styles.OK.Render(line))
	case provisioning.EventResourceFailed:
		if e.Err != nil {
			p.Error("%s: %s: %v", e.Resource, e.Message, e.Err)
			return
		}
		p.Error("%s: %s", e.Resource, e.Message)
	case provisioning.EventPhaseFailed:
		p.Error("%s: %v", e.Phase, e.Err)
	case provisioning.EventWarning:
		if e.Err != nil {
			p.Warn("%s: %s: %v", e.Resource, e.Message, e.Err)
			return
		}
		p.Warn("%s: %s", e.Resource, e.Message)
	}
}

// Progress implements provisioning.Observer.
func (o *Observer) Progress(phase string, current, total int) {
	o.next.Progress(phase, current, total)
}

// WithFields implements provisioning.Observer.
func (o *Observer) WithFields(fields map[string]string) provisioning.Observer {
	return &Observer{printer: o.printer, next: o.next.WithFields(fields)}
}
