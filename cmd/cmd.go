// Package cmd provides the command line interface for the
// https://pkg.go.dev/github.com/DK-Hostmaster/docker-compose-wait/wait package.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/DK-Hostmaster/docker-compose-wait/wait"
)

const (
	name = "wait"
	desc = "Wait until TCP server(s) are ready to accept connections"

	defaultEnvFile = ".env"
)

var (
	// These are meant to be overidden at built time using ldflags -X.
	buildTime = "?"
	version   = "dev"
	gitCommit = "?"
)

// options holds the values of all command line flags.
type options struct {
	hosts          string
	timeout        uint64
	before         uint64
	after          uint64
	configPath     string
	envFile        string
	concurrent     bool
	maxConcurrency int
	isQuiet        bool
	isVerbose      bool
	isJSON         bool
}

// Execute peforms the actual CLI argument parsing and launches the wait operation.
func Execute() error {
	var opts options
	return newCommand(&opts).Execute()
}

// newCommand creates the root command, binding its flags to opts.
func newCommand(opts *options) *cobra.Command {
	ver := fmt.Sprintf("%s (build time: %s, commit: %s)", version, buildTime, gitCommit)

	cmd := &cobra.Command{
		Use:                   name + " [FLAGS] [-- COMMAND [ARGS...]]",
		Short:                 desc,
		Long:                  longDesc,
		Version:               ver,
		DisableFlagsInUseLine: true,
		SilenceErrors:         true,
		SilenceUsage:          true,

		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && cmd.ArgsLenAtDash() != 0 {
				return fmt.Errorf("unexpected argument %q; put the command to run after --", args[0])
			}
			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), opts)
			if err != nil {
				return err
			}

			logger := newLogger(os.Stderr, opts.isQuiet, opts.isVerbose, opts.isJSON)
			waiter := &wait.Waiter{
				Sleeper:        wait.SystemSleeper{},
				Probe:          wait.TCPProbe{Logger: logger},
				Logger:         logger,
				MaxConcurrency: opts.maxConcurrency,
			}
			if opts.concurrent {
				waiter.Mode = wait.ModeConcurrent
			}

			exitCode := run(cfg, waiter, args, logger)
			if exitCode != 0 {
				os.Exit(exitCode) // nolint: revive
			}
			return nil
		},
	}

	flagSet := cmd.Flags()
	flagSet.SortFlags = false
	flagSet.StringVarP(&opts.hosts, "hosts", "H", "", "comma-separated hosts to wait for (env "+wait.EnvHosts+")")
	flagSet.Uint64VarP(
		&opts.timeout,
		"timeout",
		"t",
		wait.DefaultTimeout,
		"set number of failed attempts tolerated (env "+wait.EnvTimeout+")",
	)
	flagSet.Uint64VarP(&opts.before, "before", "b", 0, "set seconds to sleep before checking (env "+wait.EnvWaitBefore+")")
	flagSet.Uint64VarP(&opts.after, "after", "a", 0, "set seconds to sleep after checking (env "+wait.EnvWaitAfter+")")
	flagSet.StringVarP(&opts.configPath, "config", "c", "", "read settings from a YAML or TOML file")
	flagSet.StringVarP(&opts.envFile, "env-file", "e", defaultEnvFile, "load environment variables from a dotenv file")
	flagSet.BoolVar(&opts.concurrent, "concurrent", false, "check all hosts at the same time")
	flagSet.IntVar(&opts.maxConcurrency, "max-concurrency", 0, "limit simultaneous checks with --concurrent")
	flagSet.BoolVarP(&opts.isQuiet, "quiet", "q", false, "suppress waiting messages")
	flagSet.BoolVarP(&opts.isVerbose, "verbose", "v", false, "show the reason for every failed attempt")
	flagSet.BoolVar(&opts.isJSON, "json", false, "write log messages as JSON")

	return cmd
}

const longDesc = `Wait until TCP server(s) are ready to accept connections.

Hosts are given as host:port, proto://host or proto://host:port and are checked
one after another, once per second. The timeout is the number of failed
attempts tolerated across all hosts. Settings are read, in increasing order of
precedence, from a config file, a dotenv file, the environment and flags.

When a command is given after --, it is executed once all hosts are reachable
and its exit code becomes the exit code of wait.`

// run calls the actual function for waiting, and then the gated command if there is one.
func run(cfg wait.Config, waiter *wait.Waiter, command []string, logger *slog.Logger) int {
	var (
		startTime = time.Now()
		timedOut  bool
	)

	waiter.Wait(cfg, func() { timedOut = true })
	if timedOut {
		return 1
	}
	logger.Info("all hosts ready", "elapsed", fmtElapsedTime(time.Since(startTime)))

	if len(command) == 0 {
		return 0
	}

	return runCommand(command, logger)
}

// runCommand executes command with the standard streams of the current process and returns its
// exit code.
func runCommand(command []string, logger *slog.Logger) int {
	logger.Debug("starting command", "command", command)

	c := exec.Command(command[0], command[1:]...)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr

	err := c.Run()
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// A negative code means the command was terminated by a signal.
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
		return 1
	}

	logger.Error("failed to start command", "command", command[0], "err", err)
	return 127
}
