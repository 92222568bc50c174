package core

// Registry tracks open connections and the user identity that joined on
// each of them. It is owned by the hub and mutated only on the hub
// goroutine, so it needs no locking. It is empty at process start and
// simply discarded at process end; nothing persists.
type Registry struct {
	users map[*Client]User
	conns []*Client
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		users: make(map[*Client]User),
	}
}

// Track records a newly opened connection so broadcasts reach it even
// before a join. Tracking twice is a no-op.
func (r *Registry) Track(c *Client) {
	for _, existing := range r.conns {
		if existing == c {
			return
		}
	}
	r.conns = append(r.conns, c)
}

// Join associates a user with a connection, unconditionally overwriting any
// prior user on that connection. Two connections may carry the same user id
// simultaneously; no cross-connection dedup is attempted.
func (r *Registry) Join(c *Client, u User) {
	r.Track(c)
	r.users[c] = u
}

// Lookup returns the user that joined on the connection, if any.
func (r *Registry) Lookup(c *Client) (User, bool) {
	u, ok := r.users[c]
	return u, ok
}

// Leave removes the connection entirely and returns the departing user if
// the connection had joined. Leaving an unknown connection is a no-op.
func (r *Registry) Leave(c *Client) (User, bool) {
	for i, existing := range r.conns {
		if existing == c {
			r.conns = append(r.conns[:i], r.conns[i+1:]...)
			break
		}
	}
	u, ok := r.users[c]
	if ok {
		delete(r.users, c)
	}
	return u, ok
}

// Connections returns all tracked connections in establishment order. The
// order is an implementation detail callers must not rely on.
func (r *Registry) Connections() []*Client {
	return r.conns
}

// Len reports the number of tracked connections.
func (r *Registry) Len() int {
	return len(r.conns)
}
