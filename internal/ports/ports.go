package ports

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// DefaultRange is the window of host ports this tool is allowed to publish
// on. Creation aborts rather than guessing when every port in it is taken.
var DefaultRange = Range{First: 18080, Last: 18150}

// ErrNoFreePort means the whole range is occupied.
var ErrNoFreePort = errors.New("no free port in range")

// Range is a closed interval of TCP ports, scanned in ascending order.
type Range struct {
	First int
	Last  int
}

// Prober reports whether a TCP port is already bound on a host. The live
// implementation dials the port; tests substitute a scripted one.
type Prober interface {
	InUse(host string, port int) bool
}

// DialProber probes by attempting a TCP connection: a completed connect
// means something is listening. Any dial failure is treated as free, which
// is the best a remote check can do without shell access to the host.
type DialProber struct {
	Timeout time.Duration
}

func (p DialProber) InUse(host string, port int) bool {
	timeout := p.Timeout
	if timeout == 0 {
		timeout = 2 * time.Second
	}
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, fmt.Sprintf("%d", port)), timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// FindFree scans the range in ascending order and returns the first port
// with no active listener. The lowest-free-wins ordering is part of the
// contract, not an accident of implementation.
func FindFree(host string, rng Range, prober Prober) (int, error) {
	for port := rng.First; port <= rng.Last; port++ {
		if !prober.InUse(host, port) {
			return port, nil
		}
	}
	return 0, fmt.Errorf("%w %d-%d on %s", ErrNoFreePort, rng.First, rng.Last, host)
}
