package input

import (
	"nexventory/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
}

// CurrentIndex returns the current selected index
func (c *ModelContext) CurrentIndex() int {
	return c.State.SelectedIndex
}

// TotalItems returns the number of visible users
func (c *ModelContext) TotalItems() int {
	return len(c.State.VisibleUsers)
}

// CurrentUserID returns the id of the user under the cursor
func (c *ModelContext) CurrentUserID() string {
	if u := c.State.CurrentUser(); u != nil {
		return u.ID
	}
	return ""
}

// FilterQuery returns the active filter
func (c *ModelContext) FilterQuery() string {
	return c.State.FilterQuery
}

// CurrentSort returns the key of the active sort
func (c *ModelContext) CurrentSort() string {
	return c.State.Sort.Key()
}
