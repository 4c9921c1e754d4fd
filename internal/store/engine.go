package store

import (
	"context"

	"github.com/lifeos/lifeos-sync/internal/session"
)

// Start loads every collection for the gate's current identity and follows
// the gate from then on: each identity change tears down the active change
// feed subscriptions and re-runs the fetch/subscribe sequence for the new
// identity. Call Close to stop following the gate.
func (s *Store) Start(ctx context.Context) {
	s.ctlMu.Lock()
	if s.unsubGate == nil {
		s.unsubGate = s.gate.Subscribe(func(id *session.Identity) {
			s.restart(ctx, id)
		})
	}
	s.ctlMu.Unlock()

	s.restart(ctx, s.gate.Current())
}

// Close detaches from the session gate and releases the change feed
// subscriptions. In-flight remote requests are not cancelled; their results
// are simply no longer acted upon.
func (s *Store) Close() {
	s.ctlMu.Lock()
	defer s.ctlMu.Unlock()
	if s.unsubGate != nil {
		s.unsubGate()
		s.unsubGate = nil
	}
	if s.watchCancel != nil {
		s.watchCancel()
		s.watchCancel = nil
	}
}

// restart brings every collection from Loading to Ready for the given
// identity. The anonymous path restores device-local snapshots (sample data
// when none exist); the authenticated path fetches remote state and opens
// one change feed subscription per collection, scoped to the identity.
func (s *Store) restart(ctx context.Context, identity *session.Identity) {
	s.ctlMu.Lock()
	if s.watchCancel != nil {
		s.watchCancel()
		s.watchCancel = nil
	}
	s.ctlMu.Unlock()

	for _, c := range s.cols {
		c.setState(Loading)
	}

	if identity == nil || s.remote == nil {
		for _, c := range s.cols {
			c.loadLocalOrSample()
			c.setState(Ready)
		}
		s.log.Info("Store ready on local path")
		return
	}

	watchCtx, cancel := context.WithCancel(ctx)
	s.ctlMu.Lock()
	s.watchCancel = cancel
	s.ctlMu.Unlock()

	for _, c := range s.cols {
		rows, err := s.remote.FetchAll(ctx, c.Name(), identity.UserID)
		if err != nil {
			// Deliberate degrade-to-empty: no retry loop, no propagation.
			s.log.WithError(err).WithField("collection", c.Name()).Error("Initial fetch failed, starting empty")
			rows = nil
		}
		c.loadFromRemote(rows)
		c.setState(Ready)

		feed, err := s.remote.Watch(watchCtx, c.Name(), identity.UserID)
		if err != nil {
			s.log.WithError(err).WithField("collection", c.Name()).Error("Change feed subscription failed")
			continue
		}
		go func(col syncable, feed <-chan ChangeEvent) {
			for ev := range feed {
				col.applyRemote(ev)
			}
		}(c, feed)
	}

	s.log.WithField("user_id", identity.UserID).Info("Store ready on remote path")
}

// SubscribeChanges returns a channel of local change broadcasts and a
// release function. Slow consumers drop notifications rather than stall
// mutations.
func (s *Store) SubscribeChanges() (<-chan Change, func()) {
	ch := make(chan Change, 16)
	s.subMu.Lock()
	n := s.nextSub
	s.nextSub++
	s.subs[n] = ch
	s.subMu.Unlock()

	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if c, ok := s.subs[n]; ok {
			delete(s.subs, n)
			close(c)
		}
	}
}

func (s *Store) notify(change Change) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- change:
		default:
		}
	}
}
