package app

import (
	"sync"

	"contactex.klederson.com/internal/bluetooth"
	"contactex.klederson.com/internal/contacts"
	tea "github.com/charmbracelet/bubbletea"
)

// relay forwards messages to the program in order without ever blocking the
// caller. Observable callbacks may fire from inside Update (for example when
// a key press stops the scan), and tea.Program.Send blocks until Update
// returns, so they cannot call Send directly.
type relay struct {
	mu    sync.Mutex
	queue []tea.Msg
	wake  chan struct{}
	stop  chan struct{}
	once  sync.Once
}

func newRelay() *relay {
	return &relay{
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
	}
}

func (r *relay) push(msg tea.Msg) {
	r.mu.Lock()
	r.queue = append(r.queue, msg)
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// run delivers queued messages to send until close is called.
func (r *relay) run(send func(tea.Msg)) {
	for {
		select {
		case <-r.stop:
			return
		case <-r.wake:
		}

		r.mu.Lock()
		batch := r.queue
		r.queue = nil
		r.mu.Unlock()

		for _, msg := range batch {
			send(msg)
		}
	}
}

func (r *relay) close() {
	r.once.Do(func() { close(r.stop) })
}

// subscribe bridges every observable the screens render into relay messages
// and returns a func that removes the subscriptions.
func subscribe(r *relay, scanner *bluetooth.Scanner, book *contacts.Book) func() {
	cancels := []func(){
		scanner.PoweredOn().Subscribe(func(on bool) { r.push(PoweredOnMsg(on)) }),
		scanner.Scanning().Subscribe(func(on bool) { r.push(ScanningMsg(on)) }),
		scanner.Discovered().Subscribe(func(ps []bluetooth.Peripheral) { r.push(PeripheralsMsg(ps)) }),
		book.Phone().Subscribe(func(l []contacts.Contact) { r.push(ContactsMsg{Source: contacts.Phone, List: l}) }),
		book.Sample().Subscribe(func(l []contacts.Contact) { r.push(ContactsMsg{Source: contacts.Sample, List: l}) }),
		book.Order().Subscribe(func(f contacts.SortField) { r.push(SortOrderMsg(f)) }),
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}
