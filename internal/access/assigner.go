// Package access connects the user directory to dual-list selectors so an
// operator can grant permissions and regions.
package access

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"nexventory/internal/directory"
	"nexventory/internal/domain"
	"nexventory/internal/dualselect"
	"nexventory/internal/eventbus"
	"nexventory/internal/session"
)

// ErrUserNotFound is returned when the target user is not in the directory
var ErrUserNotFound = directory.ErrUserNotFound

// ErrNotOpen is returned when saving a kind whose selector is closed
var ErrNotOpen = dualselect.ErrNotOpen

// Options tunes which catalogue entries are offered
type Options struct {
	IncludeInactive bool
}

// Assigner owns one selector per access kind so permission and region
// edits never share marks
type Assigner struct {
	store     directory.Store
	bus       eventbus.EventBus
	session   *session.Session
	logger    *log.Logger
	opts      Options
	selectors map[domain.AccessKind]*dualselect.Selector
	targets   map[domain.AccessKind]string // user id per open selector
}

// NewAssigner creates an assigner over store
func NewAssigner(store directory.Store, bus eventbus.EventBus, sess *session.Session, logger *log.Logger, opts Options) *Assigner {
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix("access")
	a := &Assigner{
		store:     store,
		bus:       bus,
		session:   sess,
		logger:    logger,
		opts:      opts,
		selectors: make(map[domain.AccessKind]*dualselect.Selector),
		targets:   make(map[domain.AccessKind]string),
	}
	for _, kind := range []domain.AccessKind{domain.AccessPermissions, domain.AccessRegions} {
		a.selectors[kind] = dualselect.New(dualselect.WithLogger(logger.With("kind", kind)))
	}
	return a
}

// Selector returns the live selector for kind
func (a *Assigner) Selector(kind domain.AccessKind) *dualselect.Selector {
	return a.selectors[kind]
}

// Target returns the user whose access the open selector for kind edits
func (a *Assigner) Target(kind domain.AccessKind) (string, bool) {
	id, ok := a.targets[kind]
	return id, ok
}

// OptionsFor builds the selectable universe for kind
func (a *Assigner) OptionsFor(kind domain.AccessKind) ([]dualselect.Option, error) {
	var opts []dualselect.Option
	switch kind {
	case domain.AccessPermissions:
		for _, p := range a.store.Permissions() {
			if !p.Active && !a.opts.IncludeInactive {
				continue
			}
			opts = append(opts, dualselect.Option{ID: dualselect.StringID(p.Name), Label: p.Name})
		}
	case domain.AccessRegions:
		for _, r := range a.store.Regions() {
			if !r.Active && !a.opts.IncludeInactive {
				continue
			}
			opts = append(opts, dualselect.Option{ID: dualselect.StringID(r.Code), Label: r.Name})
		}
	default:
		return nil, fmt.Errorf("unknown access kind %q", kind)
	}
	return opts, nil
}

// Open starts a selector lifecycle for the user's current list of kind
func (a *Assigner) Open(kind domain.AccessKind, userID string) error {
	sel, ok := a.selectors[kind]
	if !ok {
		return fmt.Errorf("unknown access kind %q", kind)
	}
	user, ok := a.store.User(userID)
	if !ok {
		return fmt.Errorf("open %s for %q: %w", kind, userID, ErrUserNotFound)
	}
	opts, err := a.OptionsFor(kind)
	if err != nil {
		return err
	}

	current := user.Access(kind)
	sel.Open(opts, dualselect.IDs(current...))
	a.targets[kind] = userID

	a.logger.Info("selector opened", "kind", kind, "user", user.Username, "options", len(opts), "selected", len(current), "session", a.sessionID())
	a.publish(domain.SelectorOpenedEvent{UserID: userID, Kind: kind, Options: len(opts), Selected: len(current)})
	return nil
}

// Save closes the selector for kind and writes the result onto the user.
// The selector is closed even when the update fails.
func (a *Assigner) Save(kind domain.AccessKind) (dualselect.Result, error) {
	sel, ok := a.selectors[kind]
	if !ok {
		return dualselect.Result{}, fmt.Errorf("unknown access kind %q", kind)
	}
	userID := a.targets[kind]
	res, err := sel.Save()
	if err != nil {
		return res, err
	}
	delete(a.targets, kind)

	user, ok := a.store.User(userID)
	if !ok {
		err := fmt.Errorf("save %s for %q: %w", kind, userID, ErrUserNotFound)
		a.fail("failed to save access", err)
		return res, err
	}
	user.SetAccess(kind, keys(res.Selected))
	if err := a.store.UpdateUser(user); err != nil {
		err = fmt.Errorf("save %s for %q: %w", kind, userID, err)
		a.fail("failed to save access", err)
		return res, err
	}

	a.logger.Info("access saved", "kind", kind, "user", user.Username,
		"added", keys(res.Added), "removed", keys(res.Removed), "session", a.sessionID())
	a.publish(domain.UserUpdatedEvent{User: user})
	if res.Changed() {
		a.publish(domain.AccessChangedEvent{
			UserID:  userID,
			Kind:    kind,
			Added:   keys(res.Added),
			Removed: keys(res.Removed),
		})
	}
	return res, nil
}

// Cancel discards the open selector for kind
func (a *Assigner) Cancel(kind domain.AccessKind) {
	sel, ok := a.selectors[kind]
	if !ok || !sel.IsOpen() {
		return
	}
	userID := a.targets[kind]
	sel.Cancel()
	delete(a.targets, kind)
	a.logger.Debug("selector cancelled", "kind", kind, "user", userID)
	a.publish(domain.SelectorCancelledEvent{UserID: userID, Kind: kind})
}

// Apply runs one whole lifecycle without a UI: mark add and remove in their
// lists, commit both, save. Ids that are not in the expected list are
// reported back as skipped.
func (a *Assigner) Apply(kind domain.AccessKind, userID string, add, remove []string) (dualselect.Result, []string, error) {
	if err := a.Open(kind, userID); err != nil {
		return dualselect.Result{}, nil, err
	}
	sel := a.selectors[kind]

	var skipped []string
	for _, id := range dualselect.NewIDSet(dualselect.IDs(add...)...).List() {
		if !sel.ToggleMark(id, dualselect.Available) {
			skipped = append(skipped, id.Key())
		}
	}
	sel.CommitAdd()
	for _, id := range dualselect.NewIDSet(dualselect.IDs(remove...)...).List() {
		if !sel.ToggleMark(id, dualselect.Selected) {
			skipped = append(skipped, id.Key())
		}
	}
	sel.CommitRemove()

	res, err := a.Save(kind)
	return res, skipped, err
}

func (a *Assigner) publish(e domain.DomainEvent) {
	if a.bus != nil {
		a.bus.Publish(e)
	}
}

func (a *Assigner) fail(msg string, err error) {
	a.logger.Error(msg, "err", err)
	a.publish(domain.ErrorEvent{Message: msg, Err: err})
}

func (a *Assigner) sessionID() string {
	if a.session == nil {
		return ""
	}
	return a.session.ShortID()
}

func keys(ids []dualselect.ID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Key())
	}
	return out
}

// IsNotFound reports whether err means the user is missing
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}
