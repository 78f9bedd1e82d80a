package logic

// Navigator keeps a cursor inside a scrolling viewport over a flat list
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	totalItems     int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 1}
}

// UpdateState updates the navigator's state
func (n *Navigator) UpdateState(selectedIndex, viewportOffset, viewportHeight, totalItems int) {
	n.selectedIndex = selectedIndex
	n.viewportOffset = viewportOffset
	n.viewportHeight = viewportHeight
	n.totalItems = totalItems
}

// GetSelectedIndex returns the current selected index
func (n *Navigator) GetSelectedIndex() int {
	return n.selectedIndex
}

// GetViewportOffset returns the current viewport offset
func (n *Navigator) GetViewportOffset() int {
	return n.viewportOffset
}

// GetMaxIndex returns the maximum selectable index, -1 for an empty list
func (n *Navigator) GetMaxIndex() int {
	return n.totalItems - 1
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	n.selectedIndex = index
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// Move shifts the cursor by delta, clamped to the list
func (n *Navigator) Move(delta int) (int, int) {
	return n.SetSelectedIndex(n.selectedIndex + delta)
}

// PageSize is the jump used by page up and page down
func (n *Navigator) PageSize() int {
	size := n.viewportHeight - 2 // Leave some overlap
	if size < 1 {
		size = 1
	}
	return size
}

// ensureSelectedVisible clamps the cursor and scrolls the viewport to it
func (n *Navigator) ensureSelectedVisible() {
	if n.totalItems <= 0 {
		n.selectedIndex = 0
		n.viewportOffset = 0
		return
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
	if n.selectedIndex > n.GetMaxIndex() {
		n.selectedIndex = n.GetMaxIndex()
	}

	height := n.viewportHeight
	if height < 1 {
		height = 1
	}
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	if n.selectedIndex >= n.viewportOffset+height {
		n.viewportOffset = n.selectedIndex - height + 1
	}

	// Don't leave blank rows at the bottom when the list shrank
	maxOffset := n.totalItems - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
