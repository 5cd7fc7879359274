package wait

import "time"

// Sleeper pauses execution for a whole number of seconds.
type Sleeper interface {
	Sleep(seconds uint64)
}

// SleeperFunc adapts an ordinary function to the Sleeper interface.
type SleeperFunc func(seconds uint64)

// Sleep calls f(seconds).
func (f SleeperFunc) Sleep(seconds uint64) {
	f(seconds)
}

// SystemSleeper blocks the calling goroutine using time.Sleep.
type SystemSleeper struct{}

// Sleep blocks for the given number of seconds. A zero value returns immediately.
func (SystemSleeper) Sleep(seconds uint64) {
	if seconds == 0 {
		return
	}
	time.Sleep(time.Duration(seconds) * time.Second)
}

// NoopSleeper never blocks.
type NoopSleeper struct{}

func (NoopSleeper) Sleep(uint64) {}
