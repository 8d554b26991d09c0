package interview

import (
	"errors"
	"strings"
	"time"
)

// Phase is the session lifecycle. Ended is terminal: a finished
// controller is thrown away and a new one built for the next interview.
type Phase int

const (
	NotStarted Phase = iota
	Starting
	Active
	Ended
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not-started"
	case Starting:
		return "starting"
	case Active:
		return "active"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

var (
	ErrAlreadyStarted = errors.New("interview: session already started")
	ErrBlankRole      = errors.New("interview: no job role selected")
	ErrNotStarting    = errors.New("interview: no session start in flight")
	ErrNotActive      = errors.New("interview: session is not active")
	ErrBlankMessage   = errors.New("interview: message is blank")
	ErrSendInFlight   = errors.New("interview: a reply is still pending")
	ErrNothingToEnd   = errors.New("interview: no session to end")
)

// Controller drives one interview session. It performs no IO itself:
// Begin* methods validate a transition and hand the caller what the
// network call needs, Finish*/Fail* report the outcome back. All
// methods must be called from a single goroutine (the UI event loop).
type Controller struct {
	phase    Phase
	role     string
	session  Session
	timeline Timeline
	pending  string
	sending  bool
	ids      *idGenerator
	now      func() time.Time
}

func NewController() *Controller {
	return &Controller{
		ids: newIDGenerator(),
		now: time.Now,
	}
}

func (c *Controller) Phase() Phase { return c.phase }

func (c *Controller) Role() string { return c.role }

// Session returns the active session. ok is false before a successful
// start and after End.
func (c *Controller) Session() (Session, bool) {
	if c.phase != Active {
		return Session{}, false
	}
	return c.session, true
}

// Messages returns the timeline in insertion order.
func (c *Controller) Messages() []Message { return c.timeline.All() }

func (c *Controller) TimelineLen() int { return c.timeline.Len() }

// LastMessage returns the newest timeline entry, if any.
func (c *Controller) LastMessage() (Message, bool) { return c.timeline.Last() }

// Sending reports whether a chat request is in flight. While true the
// input control and the voice-start affordance stay disabled; a second
// concurrent send would break the single-in-flight guarantee.
func (c *Controller) Sending() bool { return c.sending }

func (c *Controller) Pending() string { return c.pending }

// SetPending replaces the pending-input buffer. Ignored while a send is
// in flight; the input control is disabled then.
func (c *Controller) SetPending(text string) {
	if c.sending {
		return
	}
	c.pending = text
}

// AppendPending commits confirmed voice text into the buffer, separated
// from existing text by a single space.
func (c *Controller) AppendPending(text string) {
	if text == "" {
		return
	}
	if c.pending == "" {
		c.pending = text
		return
	}
	c.pending = c.pending + " " + text
}

// SelectRole picks the job role for the upcoming session. Only valid
// before the session starts; blank roles are rejected.
func (c *Controller) SelectRole(role string) error {
	if c.phase != NotStarted {
		return ErrAlreadyStarted
	}
	if strings.TrimSpace(role) == "" {
		return ErrBlankRole
	}
	c.role = strings.TrimSpace(role)
	return nil
}

// BeginStart transitions NotStarted -> Starting. The caller then issues
// the create-session request and reports back with FinishStart or
// FailStart.
func (c *Controller) BeginStart() error {
	if c.phase != NotStarted {
		return ErrAlreadyStarted
	}
	if c.role == "" {
		return ErrBlankRole
	}
	c.phase = Starting
	return nil
}

// FinishStart stores the created session and replaces the timeline with
// the fetched history (the greeting, at minimum). A late completion
// after End is a no-op error.
func (c *Controller) FinishStart(s Session, history []Message) error {
	if c.phase != Starting {
		return ErrNotStarting
	}
	c.session = s
	c.timeline.Replace(history)
	c.phase = Active
	return nil
}

// FailStart reverts Starting -> NotStarted so the user can retry.
func (c *Controller) FailStart() {
	if c.phase == Starting {
		c.phase = NotStarted
	}
}

// BeginSend commits the pending input as an optimistic user message:
// the message is on the timeline before any network call happens. The
// returned message carries the content for the chat request.
func (c *Controller) BeginSend() (Message, error) {
	if c.phase != Active {
		return Message{}, ErrNotActive
	}
	if c.sending {
		return Message{}, ErrSendInFlight
	}
	if strings.TrimSpace(c.pending) == "" {
		return Message{}, ErrBlankMessage
	}

	now := c.now()
	msg := Message{
		ID:        c.ids.next(now),
		Sender:    SenderUser,
		Content:   c.pending,
		Timestamp: now,
	}
	c.timeline.Append(msg)
	c.pending = ""
	c.sending = true
	return msg, nil
}

// FinishSend appends the assistant reply and clears the in-flight flag.
// If the session ended while the request was out, the reply is dropped.
func (c *Controller) FinishSend(reply Message) {
	if !c.sending {
		return
	}
	c.sending = false
	if c.phase == Active {
		c.timeline.Append(reply)
	}
}

// FailSend clears the in-flight flag. The optimistic user message stays
// on the timeline, unanswered; retrying means composing a new send.
func (c *Controller) FailSend() {
	c.sending = false
}

// End terminates the session locally. No network call: the backend is
// not told, matching the product's design. Ended is terminal.
func (c *Controller) End() error {
	if c.phase != Starting && c.phase != Active {
		return ErrNothingToEnd
	}
	c.phase = Ended
	c.session = Session{}
	c.timeline.Replace(nil)
	c.pending = ""
	c.sending = false
	return nil
}
