package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/DK-Hostmaster/docker-compose-wait/wait"
)

// loadConfig layers the configuration sources: built-in defaults, the config file, the dotenv
// file, the process environment and finally explicitly set flags.
func loadConfig(flagSet *pflag.FlagSet, opts *options) (wait.Config, error) {
	cfg := wait.DefaultConfig()

	if opts.configPath != "" {
		var err error
		if cfg, err = wait.LoadConfigFile(opts.configPath, cfg); err != nil {
			return wait.Config{}, err
		}
	}

	if err := loadEnvFile(opts.envFile, flagSet.Changed("env-file")); err != nil {
		return wait.Config{}, err
	}

	cfg = wait.ConfigFromEnvWith(cfg)

	if flagSet.Changed("hosts") {
		cfg.Hosts = opts.hosts
	}
	if flagSet.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if flagSet.Changed("before") {
		cfg.WaitBefore = opts.before
	}
	if flagSet.Changed("after") {
		cfg.WaitAfter = opts.after
	}

	return cfg, nil
}

// loadEnvFile loads path into the process environment without overriding variables that are
// already set. A missing file is only an error when it was asked for explicitly.
func loadEnvFile(path string, isExplicit bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !isExplicit {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}
