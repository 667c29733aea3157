package tmux

import (
	"fmt"
	"strings"
)

// NewSession creates a detached session with the given name.
func (c *Client) NewSession(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("session name required")
	}
	if _, stderr, err := c.run("new-session", "-d", "-s", trimmed); err != nil {
		return commandFailure("create session", stderr, err)
	}
	return nil
}

// RenameSession renames the target session.
func (c *Client) RenameSession(target, newName string) error {
	trimmedTarget := strings.TrimSpace(target)
	if trimmedTarget == "" {
		return fmt.Errorf("session target required")
	}
	trimmedName := strings.TrimSpace(newName)
	if trimmedName == "" {
		return fmt.Errorf("session name required")
	}
	if _, stderr, err := c.run("rename-session", "-t", trimmedTarget, trimmedName); err != nil {
		return commandFailure("rename session", stderr, err)
	}
	return nil
}

// KillSession terminates the target session.
func (c *Client) KillSession(target string) error {
	trimmed := strings.TrimSpace(target)
	if trimmed == "" {
		return fmt.Errorf("session target required")
	}
	if _, stderr, err := c.run("kill-session", "-t", trimmed); err != nil {
		return commandFailure("kill session", stderr, err)
	}
	return nil
}
