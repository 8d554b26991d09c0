package voice

import (
	"context"
	"strings"
)

type State int

const (
	Idle State = iota
	Recording
	AwaitingConfirmation
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case AwaitingConfirmation:
		return "awaiting-confirmation"
	default:
		return "unknown"
	}
}

// Run identifies one recognizer session. The recognizer itself blocks
// off-loop; its completion is reported back with the generation it
// belongs to, so a completion from a cancelled run is discarded.
type Run struct {
	Ctx context.Context
	Gen uint64
}

// Capture is the voice-capture state machine. Like the interview
// controller it is single-goroutine: every method runs on the UI event
// loop, while the recognizer blocks inside Run.Ctx elsewhere.
type Capture struct {
	rec        Recognizer
	locked     func() bool
	state      State
	transcript string
	gen        uint64
	cancel     context.CancelFunc
}

// NewCapture builds a capture over rec. locked is the shared input
// lock; while it reports true, recording cannot start. rec may be nil
// when the host has no recognizer.
func NewCapture(rec Recognizer, locked func() bool) *Capture {
	return &Capture{rec: rec, locked: locked}
}

func (c *Capture) State() State { return c.state }

// Transcript returns the text waiting for confirmation.
func (c *Capture) Transcript() string { return c.transcript }

// Available reports whether a recognizer is configured at all.
func (c *Capture) Available() bool { return c.rec != nil }

// Start begins a one-shot recognition. It is a no-op while already
// recording or awaiting confirmation, refuses to run while the input
// lock is held, and fails fast when no recognizer exists. The caller
// runs rec.Recognize(run.Ctx) off-loop and feeds the outcome to
// HandleResult or HandleError.
func (c *Capture) Start() (Run, error) {
	if c.state != Idle {
		return Run{}, nil
	}
	if c.locked != nil && c.locked() {
		return Run{}, ErrInputLocked
	}
	if c.rec == nil {
		return Run{}, ErrUnavailable
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.gen++
	c.state = Recording
	return Run{Ctx: ctx, Gen: c.gen}, nil
}

// Recognizer returns the recognizer for the caller to run off-loop.
func (c *Capture) Recognizer() Recognizer { return c.rec }

// Stop cancels an in-progress recording. Nothing is retained; a late
// completion of the cancelled run will carry a stale generation and be
// ignored.
func (c *Capture) Stop() {
	if c.state != Recording {
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state = Idle
}

// HandleResult moves recording -> awaiting-confirmation with the final
// transcript. Stale generations and blank transcripts leave the machine
// idle.
func (c *Capture) HandleResult(gen uint64, transcript string) {
	if gen != c.gen || c.state != Recording {
		return
	}
	c.release()
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		c.state = Idle
		return
	}
	c.transcript = transcript
	c.state = AwaitingConfirmation
}

// HandleError returns to idle with no transcript. Stale generations are
// no-ops, which covers the recognizer's late end after a Stop.
func (c *Capture) HandleError(gen uint64) {
	if gen != c.gen || c.state != Recording {
		return
	}
	c.release()
	c.state = Idle
}

// Confirm hands the transcript to the caller for committing into the
// pending-input buffer and returns to idle. ok is false outside the
// confirmation gate.
func (c *Capture) Confirm() (transcript string, ok bool) {
	if c.state != AwaitingConfirmation {
		return "", false
	}
	transcript = c.transcript
	c.transcript = ""
	c.state = Idle
	return transcript, true
}

// Cancel discards the transcript. The pending-input buffer is never
// touched on this path.
func (c *Capture) Cancel() {
	if c.state != AwaitingConfirmation {
		return
	}
	c.transcript = ""
	c.state = Idle
}

func (c *Capture) release() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
