// Copyright (c) 2019-2022 Wibowo Arindrarto <contact@arindrarto.dev>
// SPDX-License-Identifier: BSD-3-Clause

package wait

import (
	"os"
	"strconv"
	"strings"
)

// Names of the environment variables read by ConfigFromEnv.
const (
	EnvHosts      = "WAIT_HOSTS"
	EnvTimeout    = "WAIT_HOSTS_TIMEOUT"
	EnvWaitBefore = "WAIT_BEFORE_HOSTS"
	EnvWaitAfter  = "WAIT_AFTER_HOSTS"
)

// DefaultTimeout is the number of failed attempts tolerated when no timeout is configured.
const DefaultTimeout uint64 = 30

// Config is the input of a single wait operation.
type Config struct {
	// Hosts is a comma-separated list of host identifiers, conventionally host:port. An empty
	// (or whitespace-only) value means there is nothing to check.
	Hosts string
	// Timeout is the number of failed polling attempts tolerated before giving up. Attempts are
	// spaced one second apart, so this is roughly, but not exactly, a number of seconds.
	Timeout uint64
	// WaitBefore is the number of seconds to sleep before polling.
	WaitBefore uint64
	// WaitAfter is the number of seconds to sleep after all hosts are reachable.
	WaitAfter uint64
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{Timeout: DefaultTimeout}
}

// HostList splits Hosts on commas and trims every entry. It returns nil when there are no hosts.
// Empty entries in the middle of the list are kept, so that "a,,b" yields three identifiers.
func (cfg Config) HostList() []string {
	trimmed := strings.TrimSpace(cfg.Hosts)
	if trimmed == "" {
		return nil
	}

	parts := strings.Split(trimmed, ",")
	hosts := make([]string, len(parts))
	for i, part := range parts {
		hosts[i] = strings.TrimSpace(part)
	}

	return hosts
}

// ConfigFromEnv builds a Config from the WAIT_* environment variables, using DefaultConfig for
// anything unset or invalid.
func ConfigFromEnv() Config {
	return ConfigFromEnvWith(DefaultConfig())
}

// ConfigFromEnvWith is like ConfigFromEnv, but falls back to the values of base instead of the
// built-in defaults.
func ConfigFromEnvWith(base Config) Config {
	return Config{
		Hosts:      EnvVar(EnvHosts, base.Hosts),
		Timeout:    ParseUint(EnvVar(EnvTimeout, ""), base.Timeout),
		WaitBefore: ParseUint(EnvVar(EnvWaitBefore, ""), base.WaitBefore),
		WaitAfter:  ParseUint(EnvVar(EnvWaitAfter, ""), base.WaitAfter),
	}
}

// EnvVar returns the value of the named environment variable, or def when it is not set.
func EnvVar(name, def string) string {
	if value, isSet := os.LookupEnv(name); isSet {
		return value
	}
	return def
}

// ParseUint parses s as a base-10 non-negative integer. Empty, non-numeric, negative and
// out-of-range strings all yield def.
func ParseUint(s string, def uint64) uint64 {
	value, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return def
	}
	return value
}
