package launch

import (
	"math/rand"
	"net"
)

// findAvailablePort asks the OS for a free TCP port for the worker
// rendezvous. If the probe fails it falls back to a random port from the
// dynamic range.
func findAvailablePort() int {
	if a, err := net.ResolveTCPAddr("tcp", "localhost:0"); err == nil {
		if l, err := net.ListenTCP("tcp", a); err == nil {
			port := l.Addr().(*net.TCPAddr).Port
			l.Close()
			return port
		}
	}
	return rand.Intn(65535-49152) + 49152
}
