// Package selection reconciles a user's row selection across pages of a
// remote catalog when only one page of records is ever held in memory.
//
// The Ledger tracks two sparse override sets instead of the record universe:
//   - included: ids the user explicitly selected, in first-selected-first order
//   - excluded: ids the user explicitly deselected (durable exclusions)
//
// A row is selected when it is included and not excluded. The policy
// operations (ToggleRow, ToggleAllOnPage, SelectFirstN, ResetSelections) are
// the only mutators and are always given the ids of the currently loaded page;
// none of them needs records from pages that are not loaded.
//
// A Ledger is not safe for concurrent use. The presentation layer owns one
// instance per session and mutates it from its event loop only.
package selection
