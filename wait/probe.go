package wait

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"regexp"
	"strings"
	"syscall"
	"time"
)

// DefaultDialTimeout is how long a TCPProbe waits for a single connection attempt.
const DefaultDialTimeout = 1 * time.Second

var (
	addrPattern = regexp.MustCompile(
		"^(?:(?P<proto>[A-Za-z][A-Za-z0-9+.-]*)://)?(?P<host>.+)$",
	)
	protoPort = map[string]string{
		"amqp":     "5672",
		"amqps":    "5671",
		"http":     "80",
		"https":    "443",
		"imap":     "143",
		"mysql":    "3306",
		"ldap":     "389",
		"ldaps":    "636",
		"psql":     "5432",
		"postgres": "5432",
		"redis":    "6379",
		"smtp":     "25",
	}
)

// Probe checks whether a host currently accepts connections.
type Probe interface {
	// IsReachable reports whether a connection to host could be established. It never fails for
	// ordinary unreachability: malformed identifiers, DNS failures and refused connections all
	// yield false.
	IsReachable(host string) bool
}

// ProbeFunc adapts an ordinary function to the Probe interface.
type ProbeFunc func(host string) bool

// IsReachable returns f(host).
func (f ProbeFunc) IsReachable(host string) bool {
	return f(host)
}

// TCPSpec is a parsed host identifier.
type TCPSpec struct {
	// Host is the hostname or IP address being waited.
	Host string
	// Port is the port number for the connection.
	Port string
}

// Addr returns the spec in host:port form, suitable for net.Dial.
func (spec *TCPSpec) Addr() string {
	return net.JoinHostPort(spec.Host, spec.Port)
}

// ParseTCPSpec parses a host identifier. It accepts host:port, proto://host and proto://host:port
// where proto is one of a set of well-known protocols whose default port is used when no explicit
// port is given.
func ParseTCPSpec(addr string) (*TCPSpec, error) {
	matches := addrPattern.FindStringSubmatch(strings.TrimSpace(addr))
	if matches == nil {
		return nil, fmt.Errorf("empty address")
	}

	groups := make(map[string]string)
	for i, name := range addrPattern.SubexpNames() {
		groups[name] = matches[i]
	}

	var (
		proto   = groups["proto"]
		rawHost = groups["host"]
		spec    = &TCPSpec{}
	)

	if strings.ContainsRune(rawHost, ':') {
		host, port, err := net.SplitHostPort(rawHost)
		if err != nil {
			return nil, err
		}
		spec.Host, spec.Port = host, port
	} else if port, knownProto := protoPort[strings.ToLower(proto)]; knownProto {
		spec.Host, spec.Port = rawHost, port
	} else if proto == "" {
		return nil, fmt.Errorf("neither port nor protocol is given")
	} else {
		return nil, fmt.Errorf("port not given and protocol is unknown: %q", proto)
	}

	if spec.Host == "" {
		return nil, fmt.Errorf("host is missing in address %q", addr)
	}
	if spec.Port == "" {
		return nil, fmt.Errorf("port is missing in address %q", addr)
	}

	return spec, nil
}

// isTransient checks that a given dial error represents a condition that is expected while a
// server is starting up: I/O timeouts and refused connections. Note that this has only been
// tested on POSIX systems.
func isTransient(err error) bool {
	if os.IsTimeout(err) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED)
}

// TCPProbe is a Probe that attempts a TCP connection.
type TCPProbe struct {
	// DialTimeout bounds each connection attempt. Zero means DefaultDialTimeout.
	DialTimeout time.Duration
	// Logger receives the reason for every failed attempt at debug level. It may be nil.
	Logger *slog.Logger
}

// IsReachable implements Probe.
func (p TCPProbe) IsReachable(host string) bool {
	logger := loggerOrDiscard(p.Logger)

	spec, err := ParseTCPSpec(host)
	if err != nil {
		logger.Debug("invalid host identifier", "host", host, "err", err)
		return false
	}

	timeout := p.DialTimeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}

	conn, err := net.DialTimeout("tcp", spec.Addr(), timeout)
	if err != nil {
		if isTransient(err) {
			logger.Debug("connection not accepted", "host", host, "err", err)
		} else {
			logger.Debug("connection failed", "host", host, "err", err)
		}
		return false
	}
	conn.Close()

	return true
}
