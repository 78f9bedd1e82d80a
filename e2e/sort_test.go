//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortByRole(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, startWithDirectory(tf,
		testUser{ID: 1, Username: "ana", FirstName: "Ana", Role: "USER", Active: true},
		testUser{ID: 2, Username: "bruno", FirstName: "Bruno", Role: "ADMIN", Active: true},
	), "Failed to start app")

	// Enter sort mode with 's'; username is the default sort
	require.NoError(t, tf.SendKeys("s"))
	require.True(t, tf.SeePlain("Sort by: Username"), "Sort picker should start on the active sort")

	// Name, then Role
	tf.Down()
	mark := tf.MarkOutput()
	tf.Down()
	require.True(t, tf.SeePlainSince(mark, "Sort by: Role"), "Second step should be Role")
	tf.Enter()

	// The admin now sorts first, so the last row is ana
	tf.SendKeys("G")
	mark = tf.MarkOutput()
	tf.OpenRegions()
	require.True(t, tf.SeePlainSince(mark, "ana (Ana)"), "USER should sort after ADMIN")
	tf.Esc()
}

func TestSortCancelRestores(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	// Username order is adam, zoe; name order is zoe (Ana), adam (Zed)
	require.NoError(t, startWithDirectory(tf,
		testUser{ID: 1, Username: "zoe", FirstName: "Ana", Role: "USER", Active: true},
		testUser{ID: 2, Username: "adam", FirstName: "Zed", Role: "USER", Active: true},
	), "Failed to start app")

	tf.SendKeys("s")
	require.True(t, tf.SeePlain("Sort by:"), "Sort picker should open")

	mark := tf.MarkOutput()
	tf.Down()
	require.True(t, tf.SeePlainSince(mark, "Sort by: Name"), "Picker previews the highlighted sort")
	tf.Esc()

	tf.SendKeys("G")
	mark = tf.MarkOutput()
	tf.OpenRegions()
	require.True(t, tf.SeePlainSince(mark, "zoe (Ana)"), "Esc should restore the username sort")
	tf.Esc()
}
