package ports

import (
	"errors"
	"net"
	"testing"
)

type fakeProber struct {
	occupied map[int]bool
	probed   []int
}

func (f *fakeProber) InUse(host string, port int) bool {
	f.probed = append(f.probed, port)
	return f.occupied[port]
}

func TestFindFreeReturnsLowestFree(t *testing.T) {
	occupied := make(map[int]bool)
	for p := 18080; p <= 18099; p++ {
		occupied[p] = true
	}
	prober := &fakeProber{occupied: occupied}

	port, err := FindFree("panel.example.com", DefaultRange, prober)
	if err != nil {
		t.Fatalf("FindFree failed: %v", err)
	}
	if port != 18100 {
		t.Errorf("port = %d, want 18100", port)
	}

	// Ascending scan: every occupied port below the answer was probed, in order.
	if len(prober.probed) != 21 {
		t.Fatalf("probed %d ports, want 21", len(prober.probed))
	}
	for i, p := range prober.probed {
		if p != 18080+i {
			t.Fatalf("probe %d hit port %d, want %d", i, p, 18080+i)
		}
	}
}

func TestFindFreeExhausted(t *testing.T) {
	occupied := make(map[int]bool)
	for p := DefaultRange.First; p <= DefaultRange.Last; p++ {
		occupied[p] = true
	}
	prober := &fakeProber{occupied: occupied}

	_, err := FindFree("panel.example.com", DefaultRange, prober)
	if !errors.Is(err, ErrNoFreePort) {
		t.Fatalf("expected ErrNoFreePort, got %v", err)
	}
}

func TestDialProber(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	prober := DialProber{}

	if !prober.InUse("127.0.0.1", port) {
		t.Errorf("expected port %d to be reported in use", port)
	}

	ln.Close()
	if prober.InUse("127.0.0.1", port) {
		t.Errorf("expected closed port %d to be reported free", port)
	}
}
