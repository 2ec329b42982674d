package viewport

// ResizeFunc receives a new surface size.
type ResizeFunc func(width, height int)

type subscription struct {
	id int
	fn ResizeFunc
}

// ResizeWatcher forwards surface size changes to its subscribers. It drops
// sizes with no area and repeats of the last size, so subscribers only see
// valid changes.
type ResizeWatcher struct {
	subs   []subscription
	nextID int

	lastW, lastH int
}

// NewResizeWatcher creates a watcher with no subscribers.
func NewResizeWatcher() *ResizeWatcher {
	return &ResizeWatcher{}
}

// Subscribe registers fn. The returned cancel func is idempotent.
func (rw *ResizeWatcher) Subscribe(fn ResizeFunc) (cancel func()) {
	id := rw.nextID
	rw.nextID++
	rw.subs = append(rw.subs, subscription{id: id, fn: fn})
	return func() { rw.unsubscribe(id) }
}

func (rw *ResizeWatcher) unsubscribe(id int) {
	kept := make([]subscription, 0, len(rw.subs))
	for _, s := range rw.subs {
		if s.id != id {
			kept = append(kept, s)
		}
	}
	rw.subs = kept
}

// Observe reports the current surface size. It returns true when the size
// was forwarded.
func (rw *ResizeWatcher) Observe(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if width == rw.lastW && height == rw.lastH {
		return false
	}
	rw.lastW, rw.lastH = width, height
	// Callbacks may cancel subscriptions; iterate the set taken at entry.
	subs := rw.subs
	for _, s := range subs {
		s.fn(width, height)
	}
	return true
}

// Close drops every subscriber.
func (rw *ResizeWatcher) Close() {
	rw.subs = nil
}
