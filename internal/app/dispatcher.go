package app

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// dispatchMsg carries a closure to run inside Update.
type dispatchMsg struct {
	fn func()
}

// ProgramDispatcher runs submitted closures on the Bubble Tea update loop by
// sending them to the program as messages. Closures submitted before Bind are
// held and sent once a program is bound.
type ProgramDispatcher struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	pending []func()
}

// NewProgramDispatcher returns an unbound dispatcher.
func NewProgramDispatcher() *ProgramDispatcher {
	return &ProgramDispatcher{}
}

// Bind sets the send function, normally (*tea.Program).Send.
func (d *ProgramDispatcher) Bind(send func(tea.Msg)) {
	d.mu.Lock()
	d.send = send
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()

	for _, fn := range pending {
		go send(dispatchMsg{fn: fn})
	}
}

// Submit never blocks. Program.Send waits for the loop to receive, and cache
// hits submit from inside Update, so the send happens on its own goroutine.
func (d *ProgramDispatcher) Submit(fn func()) {
	d.mu.Lock()
	send := d.send
	if send == nil {
		d.pending = append(d.pending, fn)
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	go send(dispatchMsg{fn: fn})
}
