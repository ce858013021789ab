package session

// Subscribe returns a channel of frames, starting with the current one once
// the loop gets to it. Slow subscribers only ever see the latest frame. The
// channel is closed by cancel or when the session stops.
func (s *Session) Subscribe() (<-chan Frame, func()) {
	ch := make(chan Frame, 1)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	n := len(s.subs)
	s.mu.Unlock()
	s.metrics.SetFrameSubscribers(n)

	var cancelled bool
	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if cancelled {
			return
		}
		cancelled = true
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
		s.metrics.SetFrameSubscribers(len(s.subs))
	}

	if !s.loop.Post(func() { s.send(ch, s.render()) }) {
		cancel()
	}
	return ch, cancel
}

// publish renders once and fans the frame out. It runs on the loop.
func (s *Session) publish() {
	if s.subscriberCount() == 0 {
		return
	}
	f := s.render()

	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		replaceLatest(ch, f)
	}
}

// send delivers f to one subscriber if it is still registered
func (s *Session) send(ch chan Frame, f Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[ch]; ok {
		replaceLatest(ch, f)
	}
}

// replaceLatest puts f in ch, evicting an unread older frame
func replaceLatest(ch chan Frame, f Frame) {
	select {
	case ch <- f:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- f:
	default:
	}
}

func (s *Session) subscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *Session) closeSubscribers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
	s.metrics.SetFrameSubscribers(0)
}
