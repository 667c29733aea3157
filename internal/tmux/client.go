package tmux

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

type commander interface {
	Output() ([]byte, error)
}

type realCommander struct {
	cmd *exec.Cmd
}

func (r realCommander) Output() ([]byte, error) {
	return r.cmd.Output()
}

var (
	runExecCommand = func(name string, args ...string) commander {
		return realCommander{cmd: exec.Command(name, args...)}
	}

	lookPath = exec.LookPath
)

// Client invokes tmux against a fixed socket. An empty socket path targets
// the default tmux server.
type Client struct {
	socketPath string
}

func NewClient(socketPath string) *Client {
	return &Client{socketPath: strings.TrimSpace(socketPath)}
}

// Available reports whether a tmux binary can be found on PATH. It is probed
// once at startup; the UI never starts without it.
func Available() bool {
	_, err := lookPath("tmux")
	return err == nil
}

// AttachArgs returns the argv used to exec-replace this process with tmux
// taking over the terminal for the given target.
func (c *Client) AttachArgs(target string) []string {
	return append([]string{"tmux"}, c.args("attach-session", "-t", target)...)
}

func (c *Client) args(extra ...string) []string {
	args := make([]string, 0, len(extra)+2)
	if c.socketPath != "" {
		args = append(args, "-S", c.socketPath)
	}
	return append(args, extra...)
}

// run executes a tmux subcommand and returns its stdout together with the
// trimmed stderr captured on failure.
func (c *Client) run(extra ...string) (string, string, error) {
	out, err := runExecCommand("tmux", c.args(extra...)...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), strings.TrimSpace(string(exitErr.Stderr)), err
		}
		return string(out), "", err
	}
	return string(out), "", nil
}

func commandFailure(op, stderr string, err error) error {
	if stderr != "" {
		return fmt.Errorf("%s: %s", op, stderr)
	}
	return fmt.Errorf("%s: %w", op, err)
}
