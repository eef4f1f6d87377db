package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a pipeline phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration // set on PhaseEnd
}

// PhaseObserver receives phase events from Compile and Execute.
type PhaseObserver func(PhaseEvent)

func (o PhaseObserver) emit(ev PhaseEvent) {
	if o != nil {
		o(ev)
	}
}
