package progress

import (
	"context"
	"sync"
)

const subscriberBuffer = 16

// Tracker holds one current status message per session. Writers overwrite the
// slot, last write wins, no history. Subscribers get the current message on
// subscribing and after that only changes.
type Tracker struct {
	mu       sync.Mutex
	messages map[string]string
	subs     map[string]map[chan string]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{
		messages: make(map[string]string),
		subs:     make(map[string]map[chan string]struct{}),
	}
}

// Set overwrites the slot for a session. Subscribers are only notified when
// the value actually changed.
func (t *Tracker) Set(session, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.messages[session] == message {
		return
	}
	t.messages[session] = message

	for ch := range t.subs[session] {
		select {
		case ch <- message:
		default:
			// subscriber is not keeping up, drop the event
		}
	}
}

// Subscribe returns a channel of status messages for a session. The channel
// never closes on its own, only when ctx ends.
func (t *Tracker) Subscribe(ctx context.Context, session string) <-chan string {
	ch := make(chan string, subscriberBuffer)

	t.mu.Lock()
	if current, ok := t.messages[session]; ok && current != "" {
		ch <- current
	}
	if t.subs[session] == nil {
		t.subs[session] = make(map[chan string]struct{})
	}
	t.subs[session][ch] = struct{}{}
	t.mu.Unlock()

	go func() {
		<-ctx.Done()
		t.mu.Lock()
		delete(t.subs[session], ch)
		if len(t.subs[session]) == 0 {
			delete(t.subs, session)
		}
		close(ch)
		t.mu.Unlock()
	}()

	return ch
}
