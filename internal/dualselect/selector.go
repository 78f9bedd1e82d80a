package dualselect

import (
	"errors"

	"github.com/charmbracelet/log"
)

// ErrNotOpen is returned by Save when there is no open lifecycle.
var ErrNotOpen = errors.New("dualselect: selector is not open")

// Option is an entry in the selectable universe.
type Option struct {
	ID    ID
	Label string
}

// List names one of the two rendered lists.
type List int

const (
	Available List = iota
	Selected
)

func (l List) String() string {
	switch l {
	case Available:
		return "available"
	case Selected:
		return "selected"
	default:
		return "unknown"
	}
}

// Other returns the opposite list.
func (l List) Other() List {
	if l == Available {
		return Selected
	}
	return Available
}

// State is the lifecycle state of a selector.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Result is what Save hands back to the host.
type Result struct {
	// Selected is the final selection in the host's own id representation.
	Selected []ID `json:"selected" yaml:"selected"`
	// Added and Removed are relative to the ids the lifecycle was opened with.
	Added   []ID `json:"added" yaml:"added"`
	Removed []ID `json:"removed" yaml:"removed"`
}

// Changed reports whether the selection differs from the baseline.
func (r Result) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// selection is the per-lifecycle working state.
type selection struct {
	options         []Option
	optionKeys      *IDSet
	baseline        *IDSet
	selectedIDs     *IDSet
	markedAvailable *IDSet
	markedSelected  *IDSet
}

// Selector moves options between an available and a selected pool through
// explicit mark-then-commit actions. It is not safe for concurrent use; a
// host that needs two selectors at once creates two instances.
type Selector struct {
	logger *log.Logger
	cur    *selection
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithLogger routes diagnostics about malformed input to logger.
func WithLogger(logger *log.Logger) SelectorOption {
	return func(s *Selector) {
		s.logger = logger
	}
}

// New creates a closed selector.
func New(opts ...SelectorOption) *Selector {
	s := &Selector{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open starts a fresh lifecycle over allOptions with initialSelected as the
// baseline. Any previous lifecycle is discarded.
func (s *Selector) Open(allOptions []Option, initialSelected []ID) {
	sel := &selection{
		optionKeys:      &IDSet{},
		selectedIDs:     NewIDSet(initialSelected...),
		markedAvailable: &IDSet{},
		markedSelected:  &IDSet{},
	}
	sel.options = make([]Option, 0, len(allOptions))
	for _, opt := range allOptions {
		if !sel.optionKeys.Insert(opt.ID) {
			s.debug("dropping duplicate option", "id", opt.ID.Key(), "label", opt.Label)
			continue
		}
		sel.options = append(sel.options, opt)
	}
	for _, id := range sel.selectedIDs.List() {
		if !sel.optionKeys.Has(id) {
			s.debug("initial selection references unknown option", "id", id.Key())
		}
	}
	sel.baseline = sel.selectedIDs.Clone()
	s.cur = sel
}

// State returns the lifecycle state.
func (s *Selector) State() State {
	if s.cur == nil {
		return Closed
	}
	return Open
}

// IsOpen reports whether a lifecycle is in progress.
func (s *Selector) IsOpen() bool {
	return s.cur != nil
}

// Available returns the options not currently selected, in option order.
func (s *Selector) Available() []Option {
	return s.partition(false)
}

// Selected returns the options currently selected, in option order.
func (s *Selector) Selected() []Option {
	return s.partition(true)
}

// Items returns the rendered options of list.
func (s *Selector) Items(list List) []Option {
	return s.partition(list == Selected)
}

func (s *Selector) partition(selected bool) []Option {
	if s.cur == nil {
		return nil
	}
	var out []Option
	for _, opt := range s.cur.options {
		if s.cur.selectedIDs.Has(opt.ID) == selected {
			out = append(out, opt)
		}
	}
	return out
}

// inList reports whether id is an option currently rendered in list.
func (s *Selector) inList(id ID, list List) bool {
	if !s.cur.optionKeys.Has(id) {
		return false
	}
	return s.cur.selectedIDs.Has(id) == (list == Selected)
}

func (s *Selector) marks(list List) *IDSet {
	if list == Selected {
		return s.cur.markedSelected
	}
	return s.cur.markedAvailable
}

// ToggleMark flips the mark on id in list and reports whether id is marked
// afterwards. Ids not rendered in list cannot be marked.
func (s *Selector) ToggleMark(id ID, list List) bool {
	if s.cur == nil {
		return false
	}
	marks := s.marks(list)
	if marks.Delete(id) {
		return false
	}
	if !s.inList(id, list) {
		return false
	}
	// Store the option's own representation rather than the caller's.
	canonical, _ := s.cur.optionKeys.Get(id.Key())
	marks.Insert(canonical)
	return true
}

// IsMarked reports whether id is marked in list.
func (s *Selector) IsMarked(id ID, list List) bool {
	if s.cur == nil {
		return false
	}
	return s.marks(list).Has(id)
}

// MarkedAvailable returns the ids staged for CommitAdd.
func (s *Selector) MarkedAvailable() []ID {
	if s.cur == nil {
		return nil
	}
	return s.cur.markedAvailable.List()
}

// MarkedSelected returns the ids staged for CommitRemove.
func (s *Selector) MarkedSelected() []ID {
	if s.cur == nil {
		return nil
	}
	return s.cur.markedSelected.List()
}

// SelectedIDs returns the working selection, unknown ids included.
func (s *Selector) SelectedIDs() []ID {
	if s.cur == nil {
		return nil
	}
	return s.cur.selectedIDs.List()
}

// CanCommitAdd reports whether CommitAdd would move anything.
func (s *Selector) CanCommitAdd() bool {
	return s.cur != nil && s.cur.markedAvailable.Len() > 0
}

// CanCommitRemove reports whether CommitRemove would move anything.
func (s *Selector) CanCommitRemove() bool {
	return s.cur != nil && s.cur.markedSelected.Len() > 0
}

// CommitAdd moves every marked available option into the selection and
// returns how many ids were added.
func (s *Selector) CommitAdd() int {
	if !s.CanCommitAdd() {
		return 0
	}
	moved := 0
	for _, id := range s.cur.markedAvailable.List() {
		if s.cur.selectedIDs.Insert(id) {
			moved++
		}
	}
	s.cur.markedAvailable.Clear()
	s.prune()
	return moved
}

// CommitRemove drops every marked selected option from the selection and
// returns how many ids were removed.
func (s *Selector) CommitRemove() int {
	if !s.CanCommitRemove() {
		return 0
	}
	moved := 0
	for _, id := range s.cur.markedSelected.List() {
		if s.cur.selectedIDs.Delete(id) {
			moved++
		}
	}
	s.cur.markedSelected.Clear()
	s.prune()
	return moved
}

// prune drops marks that no longer point into their list.
func (s *Selector) prune() {
	s.cur.markedAvailable.Retain(func(id ID) bool { return s.inList(id, Available) })
	s.cur.markedSelected.Retain(func(id ID) bool { return s.inList(id, Selected) })
}

// Save returns the final selection and closes the selector.
func (s *Selector) Save() (Result, error) {
	if s.cur == nil {
		return Result{}, ErrNotOpen
	}
	res := Result{Selected: s.cur.selectedIDs.List()}
	for _, id := range res.Selected {
		if !s.cur.baseline.Has(id) {
			res.Added = append(res.Added, id)
		}
	}
	for _, id := range s.cur.baseline.List() {
		if !s.cur.selectedIDs.Has(id) {
			res.Removed = append(res.Removed, id)
		}
	}
	s.cur = nil
	return res, nil
}

// Cancel discards the lifecycle without producing a result.
func (s *Selector) Cancel() {
	s.cur = nil
}

func (s *Selector) debug(msg string, keyvals ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, keyvals...)
	}
}
