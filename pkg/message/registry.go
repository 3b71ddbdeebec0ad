package message

// Listener receives the parameters of a dispatched event.
// A non-nil error is a listener failure and is returned to whoever caused
// the dispatch (Trigger or Start).
type Listener func(params any) error

// listenerEntry is one (id, callback) pair captured for a dispatch.
type listenerEntry struct {
	id string
	fn Listener
}

// listenerSet holds the listeners of one event type.
// ids keeps first-registration order; overwriting an id keeps its slot.
type listenerSet struct {
	ids []string
	fns map[string]Listener
}

// registry maps event type -> listener id -> Listener.
// Absent keys read as empty. Not safe for concurrent use; Bus guards it.
type registry struct {
	byType map[string]*listenerSet
}

func newRegistry() *registry {
	return &registry{byType: make(map[string]*listenerSet)}
}

func (r *registry) set(eventType, id string, fn Listener) {
	ls, ok := r.byType[eventType]
	if !ok {
		ls = &listenerSet{fns: make(map[string]Listener)}
		r.byType[eventType] = ls
	}
	if _, exists := ls.fns[id]; !exists {
		ls.ids = append(ls.ids, id)
	}
	ls.fns[id] = fn
}

func (r *registry) remove(eventType, id string) {
	ls, ok := r.byType[eventType]
	if !ok {
		return
	}
	if _, exists := ls.fns[id]; !exists {
		return
	}
	delete(ls.fns, id)
	for i, existing := range ls.ids {
		if existing == id {
			ls.ids = append(ls.ids[:i], ls.ids[i+1:]...)
			break
		}
	}
	if len(ls.ids) == 0 {
		delete(r.byType, eventType)
	}
}

// snapshot returns the listeners for eventType in fan-out order.
// The result is detached from the registry, so callbacks may mutate it.
func (r *registry) snapshot(eventType string) []listenerEntry {
	ls, ok := r.byType[eventType]
	if !ok {
		return nil
	}
	out := make([]listenerEntry, 0, len(ls.ids))
	for _, id := range ls.ids {
		out = append(out, listenerEntry{id: id, fn: ls.fns[id]})
	}
	return out
}

func (r *registry) ids(eventType string) []string {
	ls, ok := r.byType[eventType]
	if !ok {
		return []string{}
	}
	out := make([]string, len(ls.ids))
	copy(out, ls.ids)
	return out
}
