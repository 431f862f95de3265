package config

import (
	"os"
	"path/filepath"
	"strings"
)

// CLIConfig configures the console-admin command line tool.
type CLIConfig struct {
	// StateDir holds the CLI's token files. Defaults to $XDG_CONFIG_HOME/haulmatch-admin.
	StateDir string `env:"STATE_DIR"`
}

// Sanitize resolves the default state directory.
func (c *CLIConfig) Sanitize() {
	c.StateDir = strings.TrimSpace(c.StateDir)
	if c.StateDir != "" {
		return
	}
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	c.StateDir = filepath.Join(base, "haulmatch-admin")
}
