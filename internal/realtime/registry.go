package realtime

import (
	"sync"
)

// Registry is the process-wide table of live push channels, at most
// one per user. It is safe for concurrent use from any number of
// request handlers; per-user operations are last-write-wins.
//
// A dispatch racing a register or evict on the same user may hit the
// old channel, the new one, or none. That is accepted: delivery is
// best-effort on top of the durable alarm record.
type Registry struct {
	conns sync.Map // map[int64]*Channel
}

// NewRegistry creates an empty registry. One instance is created at
// process start and shared by the connect handler and the dispatcher.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register stores ch as the live channel for userID, replacing any
// previous entry. The displaced channel, if any, is returned so the
// caller can close it; the registry itself does not close channels.
func (r *Registry) Register(userID int64, ch *Channel) *Channel {
	prev, loaded := r.conns.Swap(userID, ch)
	if !loaded {
		return nil
	}
	return prev.(*Channel)
}

// Lookup returns the live channel for userID, if any.
func (r *Registry) Lookup(userID int64) (*Channel, bool) {
	v, ok := r.conns.Load(userID)
	if !ok {
		return nil, false
	}
	return v.(*Channel), true
}

// Evict removes the entry for userID. No-op if absent.
func (r *Registry) Evict(userID int64) {
	r.conns.Delete(userID)
}

// EvictChannel removes the entry for userID only if ch is still the
// registered channel. This keeps a dispatcher that detected a broken
// push from evicting a replacement connection that registered in the
// meantime. Reports whether an entry was removed.
func (r *Registry) EvictChannel(userID int64, ch *Channel) bool {
	return r.conns.CompareAndDelete(userID, ch)
}

// Len returns the number of live channels.
func (r *Registry) Len() int {
	n := 0
	r.conns.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// CloseAll closes and removes every channel. Used at shutdown so that
// streaming handlers unblock before the HTTP server drains.
func (r *Registry) CloseAll() {
	r.conns.Range(func(key, value any) bool {
		r.conns.Delete(key)
		value.(*Channel).Close()
		return true
	})
}
