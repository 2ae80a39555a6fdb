package selection

import "fmt"

// SelectResult describes the outcome of SelectFirstN.
type SelectResult struct {
	// Requested is the count the caller asked for.
	Requested int
	// Selected is the effective selection count after the operation.
	Selected int
	// Added is the number of page rows newly selected.
	Added int
	// Removed is the number of previously selected rows dropped by truncation.
	Removed int
	// Shortfall is how many rows could not be selected because the loaded
	// page ran out of unselected rows.
	Shortfall int
}

// Partial reports whether the request was only partly fulfilled.
func (r SelectResult) Partial() bool {
	return r.Shortfall > 0
}

// String renders the informational message shown to the user.
func (r SelectResult) String() string {
	if r.Partial() {
		return fmt.Sprintf("Only able to select %d additional rows from current page. Total now: %d",
			r.Added, r.Selected)
	}
	return fmt.Sprintf("Selected %d rows", r.Selected)
}

// ToggleRow flips the effective state of a single row.
func (l *Ledger) ToggleRow(id int) {
	l.setEffective(id, !l.IsSelected(id))
	l.logMutation("toggle_row")
}

// ToggleAllOnPage deselects the page when every row on it is selected and
// selects every row otherwise, so a partially selected page becomes fully
// selected. An empty page is left alone.
func (l *Ledger) ToggleAllOnPage(pageIDs []int) {
	if len(pageIDs) == 0 {
		return
	}
	want := !l.AreAllSelected(pageIDs)
	for _, id := range pageIDs {
		l.setEffective(id, want)
	}
	l.logMutation("toggle_all_on_page")
}

// SelectFirstN makes the selection hold count rows using only what is known:
// the current effective selection and the rows of the loaded page.
//
// Shrinking keeps the first count rows in selection order. Dropped rows that
// are on the loaded page are simply unselected; dropped rows from other pages
// become durable exclusions. Growing selects unselected page rows in page
// order and stops when the page runs out, reporting the shortfall.
func (l *Ledger) SelectFirstN(count int, pageIDs []int, total int) (SelectResult, error) {
	if count < 0 || count > total {
		return SelectResult{}, &ValidationError{Count: count, Total: total}
	}

	effective := l.EffectiveIDs()
	res := SelectResult{Requested: count}

	if count <= len(effective) {
		res.Removed = l.truncate(effective, count, pageIDs)
		res.Selected = l.EffectiveCount()
		l.logMutation("select_first_n")
		return res, nil
	}

	needed := count - len(effective)
	for _, id := range pageIDs {
		if res.Added == needed {
			break
		}
		if l.IsSelected(id) {
			continue
		}
		l.setEffective(id, true)
		res.Added++
	}
	res.Shortfall = needed - res.Added
	res.Selected = l.EffectiveCount()
	if res.Partial() {
		l.logger.Info().
			Int("requested", count).
			Int("added", res.Added).
			Int("shortfall", res.Shortfall).
			Msg("current page could not satisfy selection request")
	}
	l.logMutation("select_first_n")
	return res, nil
}

// truncate keeps the first keep ids of effective and returns how many were dropped.
func (l *Ledger) truncate(effective []int, keep int, pageIDs []int) int {
	onPage := make(map[int]struct{}, len(pageIDs))
	for _, id := range pageIDs {
		onPage[id] = struct{}{}
	}

	l.included.Clear()
	for _, id := range effective[:keep] {
		l.included.Add(id)
	}
	dropped := effective[keep:]
	for _, id := range dropped {
		if _, visible := onPage[id]; !visible {
			l.excluded[id] = struct{}{}
		}
	}
	return len(dropped)
}

// ResetSelections clears the whole selection.
func (l *Ledger) ResetSelections() {
	l.Reset()
	l.logMutation("reset")
}
