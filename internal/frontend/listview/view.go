// Package listview holds the state behind the admin lead table: the search
// query and its debounced twin, the filtered rows, and the selection used for
// bulk deletes.
package listview

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
)

// DefaultQuietPeriod is how long typing must pause before the filter runs.
const DefaultQuietPeriod = 500 * time.Millisecond

// Source supplies the leads the view filters.
type Source interface {
	All() []leadsdk.Lead
}

// DeleteFunc removes leads by id, typically through the lead API.
type DeleteFunc func(ctx context.Context, ids []string) leadsdk.Result[struct{}]

// Row is one rendered table line.
type Row struct {
	Lead     leadsdk.Lead
	Selected bool
	Created  string
}

type View struct {
	source    Source
	debouncer *Debouncer

	mu         sync.Mutex
	query      string
	debounced  string
	filtered   []leadsdk.Lead
	selected   []string
	allChecked bool
	recomputes int
	listeners  []func()
}

// New creates a view over src. A non-positive quiet period means DefaultQuietPeriod.
func New(src Source, quiet time.Duration) *View {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}

	v := &View{
		source:    src,
		debouncer: NewDebouncer(quiet),
	}
	v.filtered = Filter(src.All(), "")
	return v
}

// OnChange registers fn to run after every recompute of the filtered rows.
// fn runs outside the view's lock and may call back into the view.
func (v *View) OnChange(fn func()) {
	v.mu.Lock()
	v.listeners = append(v.listeners, fn)
	v.mu.Unlock()
}

// Type records a keystroke. The filter catches up once typing pauses for the
// quiet period; every earlier pending update is discarded.
func (v *View) Type(q string) {
	v.mu.Lock()
	v.query = q
	v.mu.Unlock()

	v.debouncer.Debounce(func() { v.apply(q) })
}

// Commit sets the query and filters immediately, dropping any pending
// debounced update. Used where the input was already debounced upstream.
func (v *View) Commit(q string) {
	v.debouncer.Cancel()

	v.mu.Lock()
	v.query = q
	v.mu.Unlock()

	v.apply(q)
}

// Flush applies a pending debounced query now. It reports whether one was pending.
func (v *View) Flush() bool {
	return v.debouncer.Flush()
}

// Refresh re-runs the filter with the current debounced query, e.g. after the
// underlying collection changed.
func (v *View) Refresh() {
	v.mu.Lock()
	q := v.debounced
	v.mu.Unlock()

	v.apply(q)
}

func (v *View) apply(q string) {
	leads := v.source.All()

	v.mu.Lock()
	v.debounced = q
	v.filtered = Filter(leads, q)
	v.recomputes++
	v.pruneSelectionLocked()
	listeners := slices.Clone(v.listeners)
	v.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// pruneSelectionLocked drops selected ids that are no longer visible.
func (v *View) pruneSelectionLocked() {
	visible := make(map[string]struct{}, len(v.filtered))
	for _, l := range v.filtered {
		if l.HasID() {
			visible[l.ID] = struct{}{}
		}
	}

	v.selected = slices.DeleteFunc(v.selected, func(id string) bool {
		_, ok := visible[id]
		return !ok
	})
	v.deriveAllCheckedLocked()
}

func (v *View) selectableLocked() int {
	n := 0
	for _, l := range v.filtered {
		if l.HasID() {
			n++
		}
	}
	return n
}

func (v *View) deriveAllCheckedLocked() {
	n := v.selectableLocked()
	v.allChecked = n > 0 && len(v.selected) == n
}

// Toggle flips the selection of the row with id. Rows that are not visible or
// have no id are ignored. It returns whether the row is now selected.
func (v *View) Toggle(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if id == "" || !slices.ContainsFunc(v.filtered, func(l leadsdk.Lead) bool { return l.ID == id }) {
		return false
	}

	selected := true
	if i := slices.Index(v.selected, id); i >= 0 {
		v.selected = slices.Delete(v.selected, i, i+1)
		selected = false
	} else {
		v.selected = append(v.selected, id)
	}

	v.deriveAllCheckedLocked()
	return selected
}

// ToggleAll selects every visible row, or clears the selection when all of
// them already are.
func (v *View) ToggleAll() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.allChecked {
		v.selected = nil
		v.allChecked = false
		return
	}

	v.selected = v.selected[:0]
	for _, l := range v.filtered {
		if l.HasID() {
			v.selected = append(v.selected, l.ID)
		}
	}
	v.allChecked = len(v.selected) > 0
}

// Delete hands the selected ids to fn and then clears the selection whatever
// the result was. With nothing selected fn is not called and ok is false.
func (v *View) Delete(ctx context.Context, fn DeleteFunc) (res leadsdk.Result[struct{}], ok bool) {
	ids := v.Selected()
	if len(ids) == 0 {
		return res, false
	}

	res = fn(ctx, ids)

	v.mu.Lock()
	v.selected = nil
	v.allChecked = false
	v.mu.Unlock()

	return res, true
}

// Reset clears query, selection and any pending update.
func (v *View) Reset() {
	v.debouncer.Cancel()

	v.mu.Lock()
	v.query = ""
	v.selected = nil
	v.allChecked = false
	v.mu.Unlock()

	v.apply("")
}

// Close stops the pending debounce timer, if any.
func (v *View) Close() {
	v.debouncer.Cancel()
}

func (v *View) Query() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

func (v *View) DebouncedQuery() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.debounced
}

// Pending reports whether a typed query has not been applied yet.
func (v *View) Pending() bool {
	return v.debouncer.Pending()
}

// Filtered returns a copy of the visible leads.
func (v *View) Filtered() []leadsdk.Lead {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.filtered)
}

// Selected returns the selected ids in the order they were selected.
func (v *View) Selected() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.selected)
}

func (v *View) IsSelected(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Contains(v.selected, id)
}

// AllSelected is the state of the "select all" checkbox.
func (v *View) AllSelected() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.allChecked
}

// Recomputes counts how many times the filter has run.
func (v *View) Recomputes() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.recomputes
}

// Rows returns the visible leads ready for rendering.
func (v *View) Rows() []Row {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows := make([]Row, 0, len(v.filtered))
	for _, l := range v.filtered {
		rows = append(rows, Row{
			Lead:     l,
			Selected: l.HasID() && slices.Contains(v.selected, l.ID),
			Created:  FormatDate(l.CreatedAt),
		})
	}
	return rows
}
