package engine

// Selection models the click sequence used to pick a date range on the grid:
// no selection, start chosen, then start and end chosen. The next click after
// a complete range restarts the sequence at the clicked date. The state lives
// per editing session; hosts reset it on navigation.
type Selection struct {
	Start   string
	End     string
	Editing bool
}

// Click advances the selection with the clicked ISO date. While only the
// start is chosen, clicking an earlier date swaps the roles: the earlier
// date becomes the start and the previous start becomes the end. While an
// entry is being edited a click collapses to a single-day range; the host
// widens it through direct field edits.
func (sel *Selection) Click(iso string) {
	if sel.Editing {
		sel.Start, sel.End = iso, iso
		return
	}
	switch {
	case sel.Start == "":
		sel.Start = iso
	case sel.End == "":
		if iso < sel.Start {
			sel.End = sel.Start
			sel.Start = iso
		} else {
			sel.End = iso
		}
	default:
		sel.Start, sel.End = iso, ""
	}
}

// BeginEdit switches to editing mode with the entry's range preselected.
func (sel *Selection) BeginEdit(start, end string) {
	sel.Start, sel.End, sel.Editing = start, end, true
}

// Reset clears the selection and leaves editing mode. Called when editing
// stops or the user navigates to another month or year.
func (sel *Selection) Reset() {
	sel.Start, sel.End, sel.Editing = "", "", false
}

// Covers reports whether iso falls inside the current highlight: the single
// start day while incomplete, or the inclusive range once complete.
func (sel *Selection) Covers(iso string) bool {
	switch {
	case sel.Start == "":
		return false
	case sel.End == "":
		return iso == sel.Start
	default:
		return sel.Start <= iso && iso <= sel.End
	}
}
