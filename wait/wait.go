// Copyright (c) 2019-2022 Wibowo Arindrarto <contact@arindrarto.dev>
// SPDX-License-Identifier: BSD-3-Clause

package wait

import (
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Mode selects how hosts are polled.
type Mode int

const (
	// ModeSequential checks hosts one after another, in the given order. All hosts draw from a
	// single attempt budget: a host that is slow to come up leaves fewer attempts for the hosts
	// after it.
	ModeSequential Mode = iota
	// ModeConcurrent checks all pending hosts at the same time in rounds, one second apart. A
	// round in which any host is still unreachable counts as one failed attempt.
	ModeConcurrent
)

func (m Mode) String() string {
	return [...]string{"sequential", "concurrent"}[m]
}

// Waiter runs wait operations. The zero value is ready to use: it sleeps for real, probes over
// TCP, discards its log output and polls sequentially.
type Waiter struct {
	Sleeper Sleeper
	Probe   Probe
	Logger  *slog.Logger
	Mode    Mode
	// MaxConcurrency limits the number of simultaneous probes in ModeConcurrent. Zero or a
	// negative value means no limit.
	MaxConcurrency int
}

// Wait sleeps cfg.WaitBefore seconds, polls every host in cfg.Hosts over TCP until it is
// reachable, then sleeps cfg.WaitAfter seconds. If more than cfg.Timeout failed attempts are made
// in total, onTimeout is called once and Wait returns immediately, skipping any remaining hosts
// and the final sleep.
func Wait(sleeper Sleeper, cfg Config, onTimeout func()) {
	w := &Waiter{Sleeper: sleeper}
	w.Wait(cfg, onTimeout)
}

// Wait is like the package-level Wait, using the collaborators configured on w.
func (w *Waiter) Wait(cfg Config, onTimeout func()) {
	var (
		sleeper = w.Sleeper
		logger  = loggerOrDiscard(w.Logger)
	)
	if sleeper == nil {
		sleeper = SystemSleeper{}
	}
	if onTimeout == nil {
		onTimeout = func() {}
	}

	if cfg.WaitBefore > 0 {
		logger.Info("waiting before checking host availability", "seconds", cfg.WaitBefore)
		sleeper.Sleep(cfg.WaitBefore)
	}

	if hosts := cfg.HostList(); len(hosts) > 0 {
		var allReady bool
		switch w.Mode {
		case ModeConcurrent:
			allReady = w.pollConcurrent(hosts, cfg.Timeout, sleeper, logger)
		default:
			allReady = w.pollSequential(hosts, cfg.Timeout, sleeper, logger)
		}
		if !allReady {
			onTimeout()
			return
		}
	}

	if cfg.WaitAfter > 0 {
		logger.Info("waiting after host availability", "seconds", cfg.WaitAfter)
		sleeper.Sleep(cfg.WaitAfter)
	}
}

func (w *Waiter) probe() Probe {
	if w.Probe != nil {
		return w.Probe
	}
	return TCPProbe{Logger: w.Logger}
}

// pollSequential returns false once the number of failed attempts, counted across all hosts,
// exceeds timeout.
func (w *Waiter) pollSequential(
	hosts []string,
	timeout uint64,
	sleeper Sleeper,
	logger *slog.Logger,
) bool {

	var (
		probe    = w.probe()
		attempts uint64
	)

	for _, host := range hosts {
		logger.Info("checking host availability", "host", host, "status", Waiting)

		for !probe.IsReachable(host) {
			attempts++
			logger.Info("host not yet available", "host", host, "attempt", attempts)

			if attempts > timeout {
				logger.Error(
					"timeout: some hosts are still not reachable",
					"host", host,
					"timeout", timeout,
					"status", Failed,
				)
				return false
			}
			sleeper.Sleep(1)
		}

		logger.Info("host is now available", "host", host, "status", Ready)
	}

	return true
}

// pollConcurrent probes all pending hosts in parallel once per round. It returns false once the
// number of rounds that left some host unreachable exceeds timeout.
func (w *Waiter) pollConcurrent(
	hosts []string,
	timeout uint64,
	sleeper Sleeper,
	logger *slog.Logger,
) bool {

	var (
		probe    = w.probe()
		pending  = newPendingSet(hosts)
		attempts uint64
	)

	for _, host := range pending.Members() {
		logger.Info("checking host availability", "host", host, "status", Waiting)
	}

	for {
		var g errgroup.Group
		if w.MaxConcurrency > 0 {
			g.SetLimit(w.MaxConcurrency)
		}

		for _, host := range pending.Members() {
			host := host
			g.Go(func() error {
				if probe.IsReachable(host) {
					pending.Remove(host)
					logger.Info("host is now available", "host", host, "status", Ready)
				}
				return nil
			})
		}
		// Probes report unreachability as false, never as an error.
		_ = g.Wait()

		if pending.IsEmpty() {
			return true
		}

		attempts++
		remaining := pending.Members()
		for _, host := range remaining {
			logger.Info("host not yet available", "host", host, "attempt", attempts)
		}

		if attempts > timeout {
			logger.Error(
				"timeout: some hosts are still not reachable",
				"pending", remaining,
				"timeout", timeout,
				"status", Failed,
			)
			return false
		}
		sleeper.Sleep(1)
	}
}
