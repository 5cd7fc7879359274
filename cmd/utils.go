// Copyright (c) 2019-2022 Wibowo Arindrarto <contact@arindrarto.dev>
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import "time"

// fmtElapsedTime creates a string representation of the given elapsed time that is more
// human-readable (max 2 digits after decimal).
func fmtElapsedTime(et time.Duration) string {
	switch {
	case et < time.Microsecond:
		return et.String()
	case et < time.Millisecond:
		return et.Round(10 * time.Nanosecond).String()
	case et < time.Second:
		return et.Round(10 * time.Microsecond).String()
	default:
		return et.Round(10 * time.Millisecond).String()
	}
}
