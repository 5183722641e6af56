package anim

import "errors"

// Recording-lifecycle errors.
var (
	ErrNotRecording     = errors.New("animation log is not recording")
	ErrAlreadyRecording = errors.New("animation log is already recording")
)

// LogState tracks where the log sits in the record/playback lifecycle.
type LogState int

const (
	// LogIdle means no operation has started yet.
	LogIdle LogState = iota
	// LogRecording means an operation is appending items.
	LogRecording
	// LogReady means a finished log is waiting for playback.
	LogReady
)

// Log is the ordered, append-only item sequence for one user-triggered
// operation. Begin clears it; Stop freezes it for playback. Only the log
// mutates after recording: appended items never change.
type Log struct {
	items []Item
	state LogState
}

// NewLog returns an idle, empty log.
func NewLog() *Log {
	return &Log{}
}

// State returns the current lifecycle state.
func (l *Log) State() LogState {
	return l.state
}

// Begin clears the log and enters the recording state.
func (l *Log) Begin() error {
	if l.state == LogRecording {
		return ErrAlreadyRecording
	}
	l.items = l.items[:0]
	l.state = LogRecording
	return nil
}

// Append adds an item. The item's side effect has already run; the log
// only remembers it.
func (l *Log) Append(item Item) error {
	if l.state != LogRecording {
		return ErrNotRecording
	}
	l.items = append(l.items, item)
	return nil
}

// Stop finalizes recording. The log becomes Ready even when empty.
func (l *Log) Stop() error {
	if l.state != LogRecording {
		return ErrNotRecording
	}
	l.state = LogReady
	return nil
}

// Len reports the number of recorded items.
func (l *Log) Len() int {
	return len(l.items)
}

// Items returns the recorded sequence in log order. Callers must not
// mutate the returned slice.
func (l *Log) Items() []Item {
	return l.items
}
