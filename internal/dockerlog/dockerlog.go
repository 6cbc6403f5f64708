package dockerlog

import (
	"context"
	"os/exec"
	"strconv"
	"time"
)

// Collector captures auxiliary log text for the report. Failures are the
// caller's to downgrade: a missing container must never fail a run.
type Collector interface {
	Collect(ctx context.Context, containerID string) (string, error)
}

// CLI shells out to the docker binary; the tool has no daemon API
// dependency. The run function is injectable for tests.
type CLI struct {
	Tail    int
	Timeout time.Duration

	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

func NewCLI(tail int) *CLI {
	if tail <= 0 {
		tail = 200
	}
	return &CLI{
		Tail:    tail,
		Timeout: 10 * time.Second,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			// docker logs writes to both streams; keep them interleaved.
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
}

func (c *CLI) Collect(ctx context.Context, containerID string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	out, err := c.run(cctx, "docker", "logs", "--tail", strconv.Itoa(c.Tail), containerID)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
