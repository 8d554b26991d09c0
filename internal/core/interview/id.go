package interview

import (
	"crypto/rand"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
)

// MessageID is either a LocalID or a ServerID. The two spaces are
// disjoint on purpose: an optimistic local message is never reconciled
// against a server-assigned id, so nothing should ever compare one kind
// against the other.
type MessageID interface {
	String() string
	messageID()
}

// LocalID identifies an optimistically inserted user message. It exists
// only for this session's lifetime.
type LocalID string

func (LocalID) messageID() {}

func (id LocalID) String() string { return string(id) }

// ServerID identifies a message the backend created.
type ServerID int64

func (ServerID) messageID() {}

func (id ServerID) String() string { return strconv.FormatInt(int64(id), 10) }

// idGenerator mints LocalIDs. Monotonic entropy keeps ids unique and
// ordered even when two sends land in the same millisecond.
type idGenerator struct {
	entropy *ulid.MonotonicEntropy
}

func newIDGenerator() *idGenerator {
	return &idGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (g *idGenerator) next(now time.Time) LocalID {
	id := ulid.MustNew(ulid.Timestamp(now), g.entropy)
	return LocalID(id.String())
}
