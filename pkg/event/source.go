package event

// Source is a list of listeners for events of type T.
// The zero value is ready to use.
type Source[T any] struct {
	subs []*Subscription
	fns  map[*Subscription]func(T)
}

// Subscription identifies a registered listener.
type Subscription struct {
	cancel func() bool
}

// Cancel removes the listener from its source. It reports whether the
// listener was still registered.
func (s *Subscription) Cancel() bool {
	if s == nil || s.cancel == nil {
		return false
	}
	return s.cancel()
}

// Add registers fn and returns its subscription handle.
func (s *Source[T]) Add(fn func(T)) *Subscription {
	if s.fns == nil {
		s.fns = make(map[*Subscription]func(T))
	}
	sub := &Subscription{}
	sub.cancel = func() bool { return s.Remove(sub) }
	s.subs = append(s.subs, sub)
	s.fns[sub] = fn
	return sub
}

// Remove unregisters sub. It reports whether sub was registered.
func (s *Source[T]) Remove(sub *Subscription) bool {
	if _, ok := s.fns[sub]; !ok {
		return false
	}
	delete(s.fns, sub)
	for i, x := range s.subs {
		if x == sub {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			break
		}
	}
	return true
}

// Fire delivers v to every listener registered at call time. Listeners removed
// during delivery are skipped.
func (s *Source[T]) Fire(v T) {
	if len(s.subs) == 0 {
		return
	}
	snapshot := append([]*Subscription(nil), s.subs...)
	for _, sub := range snapshot {
		fn, ok := s.fns[sub]
		if !ok {
			continue
		}
		fn(v)
	}
}

// Len returns the number of registered listeners.
func (s *Source[T]) Len() int {
	return len(s.subs)
}
