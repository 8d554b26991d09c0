//go:build unix

package voice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExecRecognizer_Transcript(t *testing.T) {
	r := FromCommand(`printf '  hello from the mic  \n'`)
	require.NotNil(t, r)

	text, err := r.Recognize(context.Background())
	require.NoError(t, err)
	require.Equal(t, "hello from the mic", text)
}

func TestExecRecognizer_FailureIncludesStderr(t *testing.T) {
	r := FromCommand(`echo 'no microphone' >&2; exit 1`)

	_, err := r.Recognize(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no microphone")
}

func TestExecRecognizer_CancelStops(t *testing.T) {
	r := FromCommand(`sleep 10`)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := r.Recognize(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestFromCommand_Empty(t *testing.T) {
	require.Nil(t, FromCommand(""))
	require.Nil(t, FromCommand("   "))
}
