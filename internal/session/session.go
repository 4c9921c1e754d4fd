// Package session is the gate between the sync core and whatever
// authentication flow sits outside it. The core only ever consumes the signal
// "authenticated as user U" or "anonymous".
package session

import "sync"

// Identity names an authenticated user. A nil *Identity means anonymous.
type Identity struct {
	UserID string
}

// Gate holds the current identity and notifies subscribers when it changes.
// It is constructed once per process and passed by reference to every
// consumer; there is no ambient singleton.
type Gate struct {
	mu      sync.Mutex
	current *Identity
	nextSub int
	subs    map[int]func(*Identity)
}

// NewGate returns an anonymous gate.
func NewGate() *Gate {
	return &Gate{subs: map[int]func(*Identity){}}
}

// Current returns the signed-in identity, or nil when anonymous.
func (g *Gate) Current() *Identity {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// Set installs a new identity (or nil for sign-out) and notifies every
// subscriber. Setting the same user again still notifies: the remote
// subscriptions must be re-established per session, not per user.
func (g *Gate) Set(id *Identity) {
	g.mu.Lock()
	g.current = id
	subs := make([]func(*Identity), 0, len(g.subs))
	for _, fn := range g.subs {
		subs = append(subs, fn)
	}
	g.mu.Unlock()

	for _, fn := range subs {
		fn(id)
	}
}

// Subscribe registers a callback for identity changes and returns a function
// that removes it.
func (g *Gate) Subscribe(fn func(*Identity)) func() {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.nextSub
	g.nextSub++
	g.subs[n] = fn
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.subs, n)
	}
}
