package protocol

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ProcessRunner runs a binary to completion and returns what it wrote.
// Tests replace it to avoid spawning plugins.
type ProcessRunner interface {
	Run(ctx context.Context, path string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs binaries with os/exec.
type ExecRunner struct{}

// Run executes path with args. Stderr is captured whether or not the process
// fails. A process killed by ctx reports the context error.
func (ExecRunner) Run(ctx context.Context, path string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...) // #nosec G204 -- path is a configured plugin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil && ctx.Err() != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("no answer within %s: %w", detectTimeout, ctx.Err())
		} else {
			err = ctx.Err()
		}
	}
	return stdout.Bytes(), stderr.Bytes(), err
}
