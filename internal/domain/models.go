package domain

import (
	"fmt"
	"strings"
	"time"
)

// User is an account in the Nexventory directory
type User struct {
	ID                    string    `json:"id" toml:"id" yaml:"id"`
	Username              string    `json:"username" toml:"username" yaml:"username"`
	Email                 string    `json:"email" toml:"email" yaml:"email"`
	FirstName             string    `json:"first_name" toml:"first_name" yaml:"first_name"`
	LastName              string    `json:"last_name" toml:"last_name" yaml:"last_name"`
	Phone                 string    `json:"phone,omitempty" toml:"phone,omitempty" yaml:"phone,omitempty"`
	Role                  Role      `json:"role" toml:"role" yaml:"role"`
	Active                bool      `json:"is_active" toml:"is_active" yaml:"is_active"`
	NotTemporary          bool      `json:"is_not_temporary" toml:"is_not_temporary" yaml:"is_not_temporary"`
	AccountNonExpired     bool      `json:"account_non_expired" toml:"account_non_expired" yaml:"account_non_expired"`
	AccountNonLocked      bool      `json:"account_non_locked" toml:"account_non_locked" yaml:"account_non_locked"`
	CredentialsNonExpired bool      `json:"credentials_non_expired" toml:"credentials_non_expired" yaml:"credentials_non_expired"`
	CreatedBy             string    `json:"created_by,omitempty" toml:"created_by,omitempty" yaml:"created_by,omitempty"`
	CreatedAt             time.Time `json:"created_at" toml:"created_at" yaml:"created_at"`
	Regions               []string  `json:"regions" toml:"regions" yaml:"regions"`
	Permissions           []string  `json:"permissions" toml:"permissions" yaml:"permissions"`
}

// FullName joins first and last name, falling back to the username
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Access returns the user's current list for kind
func (u *User) Access(kind AccessKind) []string {
	switch kind {
	case AccessPermissions:
		return u.Permissions
	case AccessRegions:
		return u.Regions
	}
	return nil
}

// SetAccess replaces the user's list for kind
func (u *User) SetAccess(kind AccessKind, values []string) {
	switch kind {
	case AccessPermissions:
		u.Permissions = values
	case AccessRegions:
		u.Regions = values
	}
}

// Clone returns a deep copy of the user
func (u *User) Clone() *User {
	c := *u
	c.Regions = append([]string(nil), u.Regions...)
	c.Permissions = append([]string(nil), u.Permissions...)
	return &c
}

// Permission is a grantable capability, referenced from users by name
type Permission struct {
	ID          int64  `json:"id" toml:"id" yaml:"id"`
	Name        string `json:"permission_name" toml:"permission_name" yaml:"permission_name"`
	Description string `json:"description" toml:"description" yaml:"description"`
	Active      bool   `json:"is_active" toml:"is_active" yaml:"is_active"`
}

// Region is a stock location, referenced from users by code
type Region struct {
	Code    string `json:"region_code" toml:"region_code" yaml:"region_code"`
	Name    string `json:"region_name" toml:"region_name" yaml:"region_name"`
	City    string `json:"city_name,omitempty" toml:"city_name,omitempty" yaml:"city_name,omitempty"`
	State   string `json:"state_name,omitempty" toml:"state_name,omitempty" yaml:"state_name,omitempty"`
	Country string `json:"country_name,omitempty" toml:"country_name,omitempty" yaml:"country_name,omitempty"`
	Active  bool   `json:"is_active" toml:"is_active" yaml:"is_active"`
}

// Role is a user's coarse authorization level
type Role string

const (
	RoleMaster     Role = "MASTER"
	RoleAdmin      Role = "ADMIN"
	RoleUser       Role = "USER"
	RoleManager    Role = "MANAGER"
	RoleSupervisor Role = "SUPERVISOR"
)

// Roles lists every known role in display order
var Roles = []Role{RoleMaster, RoleAdmin, RoleUser, RoleManager, RoleSupervisor}

// ParseRole accepts a role name in any case
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// AccessKind selects which of a user's access lists is being edited
type AccessKind string

const (
	AccessPermissions AccessKind = "permissions"
	AccessRegions     AccessKind = "regions"
)

// ParseAccessKind accepts "permissions"/"perm"/"p" and "regions"/"region"/"r"
func ParseAccessKind(s string) (AccessKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "permissions", "permission", "perm", "p":
		return AccessPermissions, nil
	case "regions", "region", "r":
		return AccessRegions, nil
	}
	return "", fmt.Errorf("unknown access kind %q (want permissions or regions)", s)
}

// Title is the heading shown above the selector
func (k AccessKind) Title() string {
	switch k {
	case AccessPermissions:
		return "Set Permissions"
	case AccessRegions:
		return "Set Regions"
	}
	return "Manage Items"
}
