package feedback

import (
	"sync"
	"time"
)

type fakeTimer struct {
	s       *fakeScheduler
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// fakeScheduler fires callbacks only when Advance moves its clock past them.
type fakeScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	pending []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{s: s, at: s.now + d, f: f}
	s.pending = append(s.pending, t)
	return t
}

func (s *fakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		var next *fakeTimer
		for _, t := range s.pending {
			if t.stopped || t.fired || t.at > target {
				continue
			}
			if next == nil || t.at < next.at {
				next = t
			}
		}
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.at
		next.fired = true
		s.mu.Unlock()

		next.f()
	}
}

type recordingRenderer struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingRenderer) record(kind string, t *Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, kind+":"+t.Message)
}

func (r *recordingRenderer) Mount(t *Toast)   { r.record("mount", t) }
func (r *recordingRenderer) Fade(t *Toast)    { r.record("fade", t) }
func (r *recordingRenderer) Unmount(t *Toast) { r.record("unmount", t) }

func (r *recordingRenderer) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func newTestNotifier() (*Notifier, *fakeScheduler, *recordingRenderer) {
	sched := &fakeScheduler{}
	rec := &recordingRenderer{}
	return NewNotifier(rec, WithScheduler(sched)), sched, rec
}
