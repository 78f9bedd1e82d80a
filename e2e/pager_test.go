//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHelpPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, startWithDirectory(tf), "Failed to start app")

	initialOutput := tf.Snapshot()
	require.Greater(t, len(initialOutput), 100, "Should have initial TUI content")

	// Open help pager (? key)
	tf.SendKeys("?")
	require.True(t, tf.OutputContainsPlain("Nexventory Help", 3*time.Second), "Help pager should open")
	require.True(t, tf.SeePlain("Filter examples"), "Pager should carry the whole help text")

	// Press 'q' to exit pager
	mark := tf.MarkOutput()
	tf.Quit()
	require.True(t, tf.SeePlainSince(mark, "ana"), "Should return to main TUI after closing help pager")
}
