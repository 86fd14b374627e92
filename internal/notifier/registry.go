package notifier

import "sync"

// Conn is one live fulfillment-machine connection.
type Conn interface {
	// Send delivers one marshalled notice. At-most-once: a failed send is
	// the machine's loss, never retried.
	Send(message []byte) error
}

// Registry tracks live machine connections. Membership changes on
// connect/disconnect; broadcasts iterate a snapshot so a machine
// disconnecting mid-broadcast cannot corrupt the set.
type Registry struct {
	mu    sync.Mutex
	conns map[Conn]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[Conn]struct{})}
}

// Register adds a connection on machine connect.
func (r *Registry) Register(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[conn] = struct{}{}
}

// Deregister removes a connection on disconnect. Unknown connections are
// ignored.
func (r *Registry) Deregister(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, conn)
}

// Snapshot returns the live connections at this instant.
func (r *Registry) Snapshot() []Conn {
	r.mu.Lock()
	defer r.mu.Unlock()
	conns := make([]Conn, 0, len(r.conns))
	for conn := range r.conns {
		conns = append(conns, conn)
	}
	return conns
}

// Len reports current membership size.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}
