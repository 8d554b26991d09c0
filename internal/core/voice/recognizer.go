// Package voice wraps a one-shot speech recognizer in an explicit state
// machine with a confirm/cancel gate, so dictated text never reaches the
// message buffer without the user signing off on it.
package voice

import (
	"context"
	"errors"
)

// Lang is the only recognition language the product supports.
const Lang = "en-US"

// ErrUnavailable means the host has no recognizer configured; rendered
// as a one-shot notice, never a crash.
var ErrUnavailable = errors.New("voice: no recognizer available")

// ErrInputLocked means a chat request is in flight and the shared input
// lock forbids starting a recording.
var ErrInputLocked = errors.New("voice: input is locked while a reply is pending")

// Recognizer runs one recognition end to end: it returns the final
// transcript (no interim results, single alternative) or an error.
// Cancelling the context is the stop signal.
type Recognizer interface {
	Recognize(ctx context.Context) (string, error)
}
