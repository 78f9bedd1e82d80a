//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterFunctionality(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, startWithDirectory(tf), "Failed to start app")
	require.True(t, tf.SeePlain("3/3 users"), "Should show every user initially")

	// Enter filter mode with 'F'
	require.NoError(t, tf.SendKeys("F"))
	require.True(t, tf.SeePlain("Filter:"), "Filter prompt should appear")

	// Filter as you type
	require.NoError(t, tf.Type("bru"))
	require.True(t, tf.SeePlain("1/3 users"), "Live filter should narrow the table")

	// Submit keeps the filter and shows it in the title
	mark := tf.MarkOutput()
	tf.Enter()
	require.True(t, tf.SeePlainSince(mark, "[Filter: bru]"), "Title should show the active filter")

	// Esc in normal mode clears the filter
	mark = tf.MarkOutput()
	tf.Esc()
	require.True(t, tf.SeePlainSince(mark, "3/3 users"), "Esc should clear the filter")
}

func TestFilterByStatus(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, startWithDirectory(tf), "Failed to start app")

	tf.SendKeys("F")
	require.NoError(t, tf.Type("status:inactive"))
	mark := tf.MarkOutput()
	tf.Enter()
	require.True(t, tf.SeePlainSince(mark, "1/3 users"), "Only carla is inactive")
	require.True(t, tf.SeePlainSince(mark, "carla"))
}
