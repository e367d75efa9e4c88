package config

import "github.com/flourish-sh/flourish/internal/policy"

// Config holds all persisted configuration, including the command policy
// lists. Values in the config file override defaults, including explicit zero
// values; missing keys keep their defaults, except the policy lists which
// default to empty whenever a config file exists (the seeded blacklist only
// applies when no file has ever been written).
type Config struct {
	Model     string      `json:"model"`
	Allowlist []string    `json:"allowlist"`
	Blacklist []string    `json:"blacklist"`
	Agent     AgentConfig `json:"agent"`
}

// AgentConfig tunes the agent loop and command execution.
type AgentConfig struct {
	MaxIterations       int `json:"max_iterations"`        // Default: 20
	ShellTimeoutSeconds int `json:"default_shell_timeout"` // Default: 600 (10 minutes)
	GracefulShutdownMs  int `json:"graceful_shutdown_ms"`  // Default: 2000
}

// DefaultConfig returns the default configuration with the seeded
// destructive-command blacklist.
func DefaultConfig() *Config {
	return &Config{
		Model:     "gemini-2.0-flash",
		Allowlist: []string{},
		Blacklist: policy.DefaultBlacklist(),
		Agent: AgentConfig{
			MaxIterations:       20,
			ShellTimeoutSeconds: 600,
			GracefulShutdownMs:  2000,
		},
	}
}
