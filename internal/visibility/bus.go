// Package visibility broadcasts "hidden" and "visible" signals to every
// subscribed panel. In the terminal, losing focus means hidden and regaining
// it means visible.
package visibility

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Signal is a visibility change.
type Signal int

const (
	// Hidden means the dashboard is no longer being looked at
	Hidden Signal = iota
	// Visible means the dashboard is being looked at again
	Visible
)

// String returns a human-readable string for the signal.
func (s Signal) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Visible:
		return "visible"
	default:
		return "unknown"
	}
}

// Handler reacts to a signal and may return a command for the event loop.
type Handler func(Signal) tea.Cmd

type subscription struct {
	id      string
	handler Handler
}

// Bus delivers signals to subscribers in subscription order.
// Publish runs handlers on the caller's goroutine, so publishing from a
// Bubble Tea Update keeps delivery ordered with every other message.
type Bus struct {
	mu   sync.Mutex
	subs []subscription
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	id := uuid.NewString()

	b.mu.Lock()
	b.subs = append(b.subs, subscription{id: id, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.subs)
}

// Publish delivers sig to every subscriber and batches the commands they
// return.
func (b *Bus) Publish(sig Signal) tea.Cmd {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	var cmds []tea.Cmd
	for _, s := range subs {
		if cmd := s.handler(sig); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

// FromMsg translates terminal focus reports into signals.
func FromMsg(msg tea.Msg) (Signal, bool) {
	switch msg.(type) {
	case tea.BlurMsg:
		return Hidden, true
	case tea.FocusMsg:
		return Visible, true
	default:
		return 0, false
	}
}
