package app

import (
	"sync"

	"exam-paper-service/internal/domain"
)

// PaperFeed fans paper library events out to subscribers.
type PaperFeed struct {
	mu          sync.Mutex
	subscribers map[chan domain.PaperEvent]struct{}
}

func NewPaperFeed() *PaperFeed {
	return &PaperFeed{subscribers: make(map[chan domain.PaperEvent]struct{})}
}

// Subscribe returns a channel of events. The caller must invoke the returned
// cancel function to avoid leaks.
func (f *PaperFeed) Subscribe() (<-chan domain.PaperEvent, func()) {
	ch := make(chan domain.PaperEvent, 8)

	f.mu.Lock()
	f.subscribers[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subscribers[ch]; ok {
			delete(f.subscribers, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish never blocks; a full subscriber loses its oldest pending event.
func (f *PaperFeed) Publish(ev domain.PaperEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers {
		select {
		case ch <- ev:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}

// Subscribers reports how many subscriptions are open.
func (f *PaperFeed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers)
}
