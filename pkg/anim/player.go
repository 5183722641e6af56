package anim

import (
	"context"
	"errors"
	"image"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vanderheijden86/treescope/pkg/debug"
	"github.com/vanderheijden86/treescope/pkg/render"
)

// ErrBusy is returned when playback is requested while already playing.
var ErrBusy = errors.New("player is already playing")

// Sink receives rendered playback frames. Implementations own the live
// surface; the player never touches it directly.
type Sink interface {
	Display(img image.Image, message string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(img image.Image, message string)

// Display calls f.
func (f SinkFunc) Display(img image.Image, message string) { f(img, message) }

// PlayerState is the playback half of the operation state machine.
type PlayerState int

const (
	// PlayerReady means the cursor is parked and playback may start.
	PlayerReady PlayerState = iota
	// PlayerPlaying means items are being dispatched.
	PlayerPlaying
)

// Player replays a finished log against a sink.
//
// Items dispatch strictly in log order (reverse order for reverse
// playback) on whichever goroutine calls Play; each item blocks for its
// scaled duration before the next starts. The waits between frames are the
// only cancellation points: cancelling truncates the remaining visual
// playback but never rolls back state, which was mutated at recording
// time.
type Player struct {
	cfg  render.Config
	log  *Log
	sink Sink

	// speed divides every item duration; stored as float64 bits so it can
	// change mid-playback and take effect on the next dispatched item.
	speed atomic.Uint64

	mu     sync.Mutex
	state  PlayerState
	cursor int
}

// NewPlayer wires a player to a log, a canvas geometry and a sink.
func NewPlayer(log *Log, cfg render.Config, sink Sink) *Player {
	p := &Player{cfg: cfg, log: log, sink: sink}
	p.speed.Store(math.Float64bits(1))
	return p
}

// SetSpeed sets the global duration divisor. Values <= 0 are ignored.
// Takes effect on the next dispatched item, not retroactively.
func (p *Player) SetSpeed(speed float64) {
	if speed > 0 {
		p.speed.Store(math.Float64bits(speed))
	}
}

// Speed returns the current duration divisor.
func (p *Player) Speed() float64 {
	return math.Float64frombits(p.speed.Load())
}

// State returns the playback state.
func (p *Player) State() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Cursor returns the index of the next item to dispatch.
func (p *Player) Cursor() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// Rewind parks the cursor at the start of the log.
func (p *Player) Rewind() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == PlayerReady {
		p.cursor = 0
	}
}

// Play dispatches items from the cursor to the end of the log. Blocks the
// calling goroutine until done or cancelled.
func (p *Player) Play(ctx context.Context) error {
	return p.run(ctx, true, len(p.log.Items()))
}

// Reverse dispatches items from the cursor back to the start of the log.
// Each item re-displays its forward frames; reverse playback is a replay,
// not an undo.
func (p *Player) Reverse(ctx context.Context) error {
	return p.run(ctx, false, len(p.log.Items()))
}

// Step dispatches a single item forward.
func (p *Player) Step(ctx context.Context) error {
	return p.run(ctx, true, 1)
}

// StepBack dispatches a single item in reverse.
func (p *Player) StepBack(ctx context.Context) error {
	return p.run(ctx, false, 1)
}

func (p *Player) run(ctx context.Context, forward bool, limit int) error {
	p.mu.Lock()
	if p.state == PlayerPlaying {
		p.mu.Unlock()
		return ErrBusy
	}
	p.state = PlayerPlaying
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.state = PlayerReady
		p.mu.Unlock()
	}()

	items := p.log.Items()
	for dispatched := 0; dispatched < limit; dispatched++ {
		p.mu.Lock()
		idx := p.cursor
		if !forward {
			idx = p.cursor - 1
		}
		if idx < 0 || idx >= len(items) {
			p.mu.Unlock()
			return nil
		}
		p.mu.Unlock()

		if err := p.dispatch(ctx, items[idx]); err != nil {
			return err
		}

		p.mu.Lock()
		if forward {
			p.cursor = idx + 1
		} else {
			p.cursor = idx
		}
		p.mu.Unlock()
	}
	return nil
}

// dispatch paints an item's frames in order, waiting an even share of the
// scaled duration after each. The timer wait is the suspension point where
// cancellation is observed.
func (p *Player) dispatch(ctx context.Context, item Item) error {
	if len(item.Frames) == 0 {
		return nil
	}
	scaled := time.Duration(float64(item.Duration) / p.Speed())
	perFrame := scaled / time.Duration(len(item.Frames))

	debug.Log("dispatch %s %q frames=%d wait=%v", item.Kind, item.Message, len(item.Frames), perFrame)

	for _, frame := range item.Frames {
		p.sink.Display(render.Frame(p.cfg, frame), item.Message)

		timer := time.NewTimer(perFrame)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
