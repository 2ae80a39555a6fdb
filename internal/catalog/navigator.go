package catalog

import "sync"

// Ticket identifies one page request. Seq increases with every request.
type Ticket struct {
	Page int
	Seq  uint64
}

// Navigator tracks the most recent page request so that responses for
// superseded requests can be discarded. The zero value is ready to use.
type Navigator struct {
	mu     sync.Mutex
	latest Ticket
}

// Request records page as the wanted page and returns its ticket.
func (n *Navigator) Request(page int) Ticket {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.latest = Ticket{Page: page, Seq: n.latest.Seq + 1}
	return n.latest
}

// Current reports whether t is still the most recent request. A response
// carrying a ticket that is not current must not be applied.
func (n *Navigator) Current(t Ticket) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	return t.Seq != 0 && t == n.latest
}

// Latest returns the most recent ticket, or the zero Ticket before any request.
func (n *Navigator) Latest() Ticket {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.latest
}
