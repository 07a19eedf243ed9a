package engine

import "time"

// Stage describes a high-level pipeline phase for one file.
type Stage string

const (
	// StageLoad is the file discovery and loading stage.
	StageLoad Stage = "load"
	// StageParse is the lexing and parsing stage.
	StageParse Stage = "parse"
	// StageCheck is the rule dispatch stage.
	StageCheck Stage = "check"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is currently being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the file finished, diagnostics or not.
	StatusDone Status = "done"
	// StatusError indicates the file could not be processed to the end.
	StatusError Status = "error"
)

// Event reports progress for a single file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent calls; events for different files arrive from different
// goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}
