package driver

// FileStatus is the state of one file in a CheckFiles run.
type FileStatus uint8

const (
	FileQueued FileStatus = iota
	FileWorking
	FileDone
	FileFailed
)

func (s FileStatus) String() string {
	switch s {
	case FileQueued:
		return "queued"
	case FileWorking:
		return "working"
	case FileDone:
		return "done"
	case FileFailed:
		return "error"
	default:
		return "unknown"
	}
}

// FileEvent reports progress of one file. Phase is set while working.
type FileEvent struct {
	Path   string
	Phase  string
	Status FileStatus
}

// ProgressSink receives FileEvents from concurrent workers and must be
// goroutine-safe.
type ProgressSink interface {
	FileProgress(ev FileEvent)
}

// ChannelSink forwards events to Ch.
type ChannelSink struct {
	Ch chan<- FileEvent
}

func (s ChannelSink) FileProgress(ev FileEvent) { s.Ch <- ev }

func notify(sink ProgressSink, ev FileEvent) {
	if sink != nil {
		sink.FileProgress(ev)
	}
}
