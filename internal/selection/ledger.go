package selection

import (
	"sort"

	"github.com/rs/zerolog"
)

// HeaderState is the tri-state of a page's "select all" checkbox.
type HeaderState int

const (
	// HeaderNone means no row on the page is selected (or the page is empty).
	HeaderNone HeaderState = iota
	// HeaderSome means at least one but not every row on the page is selected.
	HeaderSome
	// HeaderAll means every row on a non-empty page is selected.
	HeaderAll
)

// String returns a short label for logs.
func (h HeaderState) String() string {
	switch h {
	case HeaderAll:
		return "all"
	case HeaderSome:
		return "some"
	default:
		return "none"
	}
}

// Ledger is the authoritative selection state for a browse session.
type Ledger struct {
	included *orderedSet
	excluded map[int]struct{}
	logger   zerolog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger attaches a logger that receives a debug snapshot after every mutation.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger.With().Str("component", "selection").Logger()
	}
}

// NewLedger creates an empty ledger.
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		included: newOrderedSet(),
		excluded: make(map[int]struct{}),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsSelected reports whether id is effectively selected. Exclusion always wins.
func (l *Ledger) IsSelected(id int) bool {
	if _, gone := l.excluded[id]; gone {
		return false
	}
	return l.included.Has(id)
}

// EffectiveCount returns |included - excluded|. It is recomputed on every call.
func (l *Ledger) EffectiveCount() int {
	effective := make(map[int]struct{}, l.included.Len())
	for _, id := range l.included.IDs() {
		effective[id] = struct{}{}
	}
	for id := range l.excluded {
		delete(effective, id)
	}
	return len(effective)
}

// EffectiveIDs returns the effectively selected ids, first-selected first.
func (l *Ledger) EffectiveIDs() []int {
	ids := l.included.IDs()
	out := ids[:0]
	for _, id := range ids {
		if _, gone := l.excluded[id]; !gone {
			out = append(out, id)
		}
	}
	return out
}

// AreAllSelected reports whether the page is non-empty and every id on it is selected.
func (l *Ledger) AreAllSelected(pageIDs []int) bool {
	if len(pageIDs) == 0 {
		return false
	}
	for _, id := range pageIDs {
		if !l.IsSelected(id) {
			return false
		}
	}
	return true
}

// AreSomeSelected reports whether some, but not all, ids on the page are selected.
func (l *Ledger) AreSomeSelected(pageIDs []int) bool {
	n := l.countSelected(pageIDs)
	return n > 0 && n < len(pageIDs)
}

// HeaderState derives the tri-state header checkbox for the page.
func (l *Ledger) HeaderState(pageIDs []int) HeaderState {
	switch n := l.countSelected(pageIDs); {
	case n == 0:
		return HeaderNone
	case n == len(pageIDs):
		return HeaderAll
	default:
		return HeaderSome
	}
}

func (l *Ledger) countSelected(pageIDs []int) int {
	n := 0
	for _, id := range pageIDs {
		if l.IsSelected(id) {
			n++
		}
	}
	return n
}

// Reset clears both sets.
func (l *Ledger) Reset() {
	l.included.Clear()
	l.excluded = make(map[int]struct{})
}

// Snapshot is a copy of the raw ledger sets.
type Snapshot struct {
	Included []int `json:"included"`
	Excluded []int `json:"excluded"`
}

// Snapshot copies the ledger state. Included keeps insertion order, Excluded is sorted.
func (l *Ledger) Snapshot() Snapshot {
	excluded := make([]int, 0, len(l.excluded))
	for id := range l.excluded {
		excluded = append(excluded, id)
	}
	sort.Ints(excluded)
	return Snapshot{Included: l.included.IDs(), Excluded: excluded}
}

// setEffective is the single write primitive behind every policy operation.
func (l *Ledger) setEffective(id int, want bool) {
	if want {
		l.included.Add(id)
		delete(l.excluded, id)
		return
	}
	l.included.Remove(id)
	l.excluded[id] = struct{}{}
}

func (l *Ledger) logMutation(op string) {
	if l.logger.GetLevel() > zerolog.DebugLevel {
		return
	}
	snap := l.Snapshot()
	l.logger.Debug().
		Str("operation", op).
		Ints("included", snap.Included).
		Ints("excluded", snap.Excluded).
		Int("effective_count", l.EffectiveCount()).
		Msg("selection changed")
}
