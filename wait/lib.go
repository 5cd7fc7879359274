// Copyright (c) 2019-2022 Wibowo Arindrarto <contact@arindrarto.dev>
// SPDX-License-Identifier: BSD-3-Clause

// Package wait is a library for gating process startup on network dependencies. It sleeps for an
// optional duration, polls one or more hosts until they accept TCP connections, and sleeps again
// before returning. When the hosts do not become reachable within the configured number of
// attempts, a caller-supplied callback is invoked instead.
//
// The polling loop is deterministic given its collaborators: both the Sleeper and the Probe are
// interfaces, so the loop can be driven without real elapsed time or network access.
package wait
