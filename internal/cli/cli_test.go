package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"nexventory/internal/directory"
	"nexventory/internal/domain"
)

// fixture writes a small directory and isolates config and log files
func fixture(t *testing.T) (dir, data string) {
	t.Helper()
	dir = t.TempDir()
	data = filepath.Join(dir, "directory.toml")

	seed := &directory.Seed{
		Permissions: []domain.Permission{
			{ID: 1, Name: "supply.read", Active: true},
			{ID: 2, Name: "supply.write", Active: true},
		},
		Regions: []domain.Region{
			{Code: "GRU", Name: "Guarulhos", Active: true},
			{Code: "BSB", Name: "Brasilia", Active: true},
		},
		Users: []domain.User{
			{ID: "17", Username: "carla", FirstName: "Carla", Role: domain.RoleSupervisor, Active: true, Regions: []string{"BSB"}, Permissions: []string{"supply.read"}},
			{ID: "18", Username: "ana", FirstName: "Ana", Role: domain.RoleAdmin, Active: true},
		},
	}
	encoded, err := directory.Encode(seed, directory.FormatTOML)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(data, encoded, 0644))

	t.Setenv("NEXVENTORY_LOG_FILE", filepath.Join(dir, "nexventory.log"))
	return dir, data
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestUsersTable(t *testing.T) {
	dir, data := fixture(t)

	out, err := run(t, "users", "--config", filepath.Join(dir, "config.toml"), "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "USERNAME")
	assert.Contains(t, out, "carla")
	assert.Contains(t, out, "ana")
	assert.Less(t, bytes.Index([]byte(out), []byte("ana")), bytes.Index([]byte(out), []byte("carla")))
}

func TestUsersFilteredJSON(t *testing.T) {
	dir, data := fixture(t)

	out, err := run(t, "users", "--config", filepath.Join(dir, "config.toml"), "--data", data,
		"--output", "json", "--filter", "region:bsb")
	require.NoError(t, err)

	var users []domain.User
	require.NoError(t, json.Unmarshal([]byte(out), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "carla", users[0].Username)
}

func TestUsersYAMLSortedByRole(t *testing.T) {
	dir, data := fixture(t)

	out, err := run(t, "users", "--config", filepath.Join(dir, "config.toml"), "--data", data,
		"-o", "yaml", "--sort", "role")
	require.NoError(t, err)

	var users []domain.User
	require.NoError(t, yaml.Unmarshal([]byte(out), &users))
	require.Len(t, users, 2)
	assert.Equal(t, "ana", users[0].Username)
}

func TestUsersRejectsUnknownOutput(t *testing.T) {
	dir, data := fixture(t)
	_, err := run(t, "users", "--config", filepath.Join(dir, "config.toml"), "--data", data, "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestAssignAddsAndExports(t *testing.T) {
	dir, data := fixture(t)
	exported := filepath.Join(dir, "out", "directory.json")

	out, err := run(t, "assign", "--config", filepath.Join(dir, "config.toml"), "--data", data,
		"--user", "17", "--kind", "regions", "--add", "GRU,NOPE", "--remove", "BSB", "--export", exported)
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, "17", report["user"])
	assert.Equal(t, "regions", report["kind"])
	assert.Equal(t, []any{"GRU"}, report["selected"])
	assert.Equal(t, []any{"GRU"}, report["added"])
	assert.Equal(t, []any{"BSB"}, report["removed"])
	assert.Equal(t, []any{"NOPE"}, report["skipped"])

	seed, err := directory.LoadFile(exported)
	require.NoError(t, err)
	for _, u := range seed.Users {
		if u.ID == "17" {
			assert.Equal(t, []string{"GRU"}, u.Regions)
		}
	}

	original, err := directory.LoadFile(data)
	require.NoError(t, err)
	for _, u := range original.Users {
		if u.ID == "17" {
			assert.Equal(t, []string{"BSB"}, u.Regions, "the source file is only written on export")
		}
	}
}

func TestAssignErrors(t *testing.T) {
	dir, data := fixture(t)
	cfg := filepath.Join(dir, "config.toml")

	_, err := run(t, "assign", "--config", cfg, "--data", data, "--user", "99", "--kind", "regions")
	assert.ErrorIs(t, err, directory.ErrUserNotFound)

	_, err = run(t, "assign", "--config", cfg, "--data", data, "--user", "17", "--kind", "groups")
	assert.ErrorContains(t, err, "unknown access kind")

	_, err = run(t, "assign", "--config", cfg, "--data", data, "--kind", "regions")
	assert.Error(t, err, "--user is required")
}

func TestAdm(t *testing.T) {
	out, err := run(t, "adm", "/adm 120 /r gru /te OUT /ts btp /d 2025-01-10")
	require.NoError(t, err)

	var tx map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &tx))
	assert.Equal(t, 120, tx["qty"])
	assert.Equal(t, "GRU", tx["region"])
	assert.Equal(t, "OUT", tx["type_entry"])
	assert.Equal(t, "BTP", tx["supply_code"])
	assert.Equal(t, "2025-01-10", tx["date"])

	out, err = run(t, "adm", "/ADM", "/r", "rec")
	require.NoError(t, err)
	assert.Equal(t, "region: REC\n", out)

	_, err = run(t, "adm", "/admin", "5")
	assert.Error(t, err)
}

func TestConfigInitAndShow(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nested", "config.toml")

	out, err := run(t, "config", "init", "--config", cfgPath, "--data", "inventory.jsonc")
	require.NoError(t, err)
	assert.Contains(t, out, cfgPath)
	assert.FileExists(t, cfgPath)

	_, err = run(t, "config", "init", "--config", cfgPath)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "config", "init", "--config", cfgPath, "--force")
	require.NoError(t, err)

	out, err = run(t, "config", "show", "--config", cfgPath, "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, "# "+cfgPath)
	assert.Regexp(t, `data_file = ['"]directory\.toml['"]`, out, "--force rewrote the defaults")
	assert.Regexp(t, `log_level = ['"]debug['"]`, out)
}
