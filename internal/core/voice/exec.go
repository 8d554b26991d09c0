package voice

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ExecRecognizer runs a user-configured command that records from the
// microphone, transcribes once, and prints the transcript to stdout
// (for example a whisper-cli wrapper script). Killing the process is
// the stop signal.
type ExecRecognizer struct {
	Command string
}

// FromCommand returns a recognizer for the configured command, or nil
// when none is configured (the capture layer turns nil into
// ErrUnavailable).
func FromCommand(command string) Recognizer {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil
	}
	return &ExecRecognizer{Command: command}
}

func (r *ExecRecognizer) Recognize(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", r.Command)
	cmd.Env = append(os.Environ(), "VOICE_LANG="+Lang)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("voice command: %s: %w", msg, err)
		}
		return "", fmt.Errorf("voice command: %w", err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
