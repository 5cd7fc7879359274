package wait

import (
	"log/slog"
	"sync"
)

// Status enumerates the states a host goes through while being waited on.
type Status int

const (
	Waiting Status = iota
	Ready
	Failed
)

func (s Status) String() string {
	return [...]string{"waiting", "ready", "failed"}[s]
}

// LogValue implements slog.LogValuer so that statuses show up as text in both text and JSON logs.
func (s Status) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// pendingSet is an ordered set of hosts that have not yet been confirmed reachable.
type pendingSet struct {
	order   []string
	members map[string]bool
	mux     sync.Mutex
}

// newPendingSet creates a set containing the given hosts. Duplicates are collapsed.
func newPendingSet(hosts []string) *pendingSet {
	members := make(map[string]bool, len(hosts))
	order := make([]string, 0, len(hosts))
	for _, host := range hosts {
		if members[host] {
			continue
		}
		members[host] = true
		order = append(order, host)
	}

	return &pendingSet{order: order, members: members}
}

// Remove removes the given host from the set. It is safe to use concurrently. The given host may
// or may not exist prior to removal.
func (ps *pendingSet) Remove(host string) {
	ps.mux.Lock()
	defer ps.mux.Unlock()

	delete(ps.members, host)
}

// IsEmpty checks whether the set is empty or not. It is safe to use concurrently.
func (ps *pendingSet) IsEmpty() bool {
	ps.mux.Lock()
	defer ps.mux.Unlock()

	return len(ps.members) == 0
}

// Members returns the hosts still in the set, in the order they were first given. It is safe to
// use concurrently.
func (ps *pendingSet) Members() []string {
	ps.mux.Lock()
	defer ps.mux.Unlock()

	members := make([]string, 0, len(ps.members))
	for _, host := range ps.order {
		if ps.members[host] {
			members = append(members, host)
		}
	}

	return members
}
