// Package git records checkpoints of a data directory with the git binary.
package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// LockFile is created in the work tree while a checkpoint runs.
const LockFile = ".timedpad.lock"

// ErrNothingToCommit is returned by Checkpoint when the snapshot files are unchanged.
var ErrNothingToCommit = errors.New("nothing to commit")

// Client runs git commands in a work tree, serialised across processes by a lock file.
type Client struct {
	WorkDir string
	Logger  *slog.Logger
}

// NewClient creates a client for workDir.
func NewClient(workDir string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{WorkDir: workDir, Logger: logger}
}

// Lock acquires the lock file, polling until ctx is done.
func (c *Client) Lock(ctx context.Context) (func(), error) {
	path := filepath.Join(c.WorkDir, LockFile)
	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL, 0o666)
		if err == nil {
			_ = f.Close()
			return func() { _ = os.Remove(path) }, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to acquire lock: %w", ctx.Err())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// Run executes git with args in the work tree and returns its trimmed output.
func (c *Client) Run(ctx context.Context, args ...string) (string, error) {
	c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.WorkDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("git %s failed: %w\nOutput: %s", args[0], err, out)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsRepo reports whether the work tree already has a .git directory.
func (c *Client) IsRepo() bool {
	_, err := os.Stat(filepath.Join(c.WorkDir, ".git"))
	return err == nil
}

// Init creates the repository. Re-running it is harmless.
func (c *Client) Init(ctx context.Context) error {
	_, err := c.Run(ctx, "init")
	return err
}

// Add stages files.
func (c *Client) Add(ctx context.Context, files ...string) error {
	if len(files) == 0 {
		return nil
	}
	_, err := c.Run(ctx, append([]string{"add", "--"}, files...)...)
	return err
}

// Commit records the staged changes. Identity falls back to a local one so
// checkpoints work on machines without a global git config.
func (c *Client) Commit(ctx context.Context, msg string) error {
	_, err := c.Run(ctx,
		"-c", "user.name=timedpad", "-c", "user.email=timedpad@localhost",
		"commit", "-m", msg,
	)
	return err
}

// Status returns the porcelain status limited to files, or the whole tree.
func (c *Client) Status(ctx context.Context, files ...string) (string, error) {
	args := []string{"status", "--porcelain"}
	if len(files) > 0 {
		args = append(append(args, "--"), files...)
	}
	return c.Run(ctx, args...)
}

// Checkpoint commits the given files, initialising the repository on first use.
// It returns ErrNothingToCommit when none of them changed.
func (c *Client) Checkpoint(ctx context.Context, msg string, files ...string) error {
	unlock, err := c.Lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if !c.IsRepo() {
		c.Logger.Info("initialising git repository", "dir", c.WorkDir)
		if err := c.Init(ctx); err != nil {
			return err
		}
	}

	status, err := c.Status(ctx, files...)
	if err != nil {
		return err
	}
	if status == "" {
		return ErrNothingToCommit
	}

	if err := c.Add(ctx, files...); err != nil {
		return err
	}
	return c.Commit(ctx, msg)
}
