//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// testUser is a directory entry written into the workspace seed
type testUser struct {
	ID          int
	Username    string
	FirstName   string
	Role        string
	Active      bool
	Regions     []string
	Permissions []string
}

// defaultUsers is the directory most scenarios start from
var defaultUsers = []testUser{
	{ID: 1, Username: "ana", FirstName: "Ana", Role: "ADMIN", Active: true, Regions: []string{"GRU"}, Permissions: []string{"supply.read"}},
	{ID: 2, Username: "bruno", FirstName: "Bruno", Role: "USER", Active: true},
	{ID: 3, Username: "carla", FirstName: "Carla", Role: "MANAGER", Active: false, Regions: []string{"BSB"}},
}

const catalogueTOML = `[[permissions]]
id = 1
permission_name = "supply.read"
is_active = true

[[permissions]]
id = 2
permission_name = "supply.write"
is_active = true

[[regions]]
region_code = "GRU"
region_name = "Guarulhos"
is_active = true

[[regions]]
region_code = "BSB"
region_name = "Brasilia"
is_active = true
`

// CreateTestWorkspace creates a temporary directory for the config, log
// and directory files
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// DataFile is the directory file the app is started with
func (tf *TUITestFramework) DataFile() string {
	return filepath.Join(tf.workspace, "directory.toml")
}

// WriteDirectory writes users and the fixed catalogue to the data file
func (tf *TUITestFramework) WriteDirectory(users ...testUser) error {
	if tf.workspace == "" {
		return fmt.Errorf("workspace not created")
	}
	if len(users) == 0 {
		users = defaultUsers
	}

	var b strings.Builder
	b.WriteString(catalogueTOML)
	for _, u := range users {
		fmt.Fprintf(&b, "\n[[users]]\nid = %d\nusername = %q\nfirst_name = %q\nrole = %q\nis_active = %t\n",
			u.ID, u.Username, u.FirstName, u.Role, u.Active)
		fmt.Fprintf(&b, "regions = %s\npermissions = %s\n", tomlList(u.Regions), tomlList(u.Permissions))
	}
	return os.WriteFile(tf.DataFile(), []byte(b.String()), 0644)
}

func tomlList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// ReadDirectory returns the raw contents of the data file
func (tf *TUITestFramework) ReadDirectory() (string, error) {
	data, err := os.ReadFile(tf.DataFile())
	return string(data), err
}

// startWithDirectory is the common prologue: workspace, seed, app, first frame
func startWithDirectory(tf *TUITestFramework, users ...testUser) error {
	if _, err := tf.CreateTestWorkspace(); err != nil {
		return err
	}
	if err := tf.WriteDirectory(users...); err != nil {
		return err
	}
	if err := tf.StartApp(); err != nil {
		return err
	}
	if !tf.Ready() {
		return fmt.Errorf("app did not render its first frame")
	}
	return nil
}
