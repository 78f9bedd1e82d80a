package logic

import (
	"sort"
	"strings"

	"nexventory/internal/domain"
)

// SortMode represents different sort modes
type SortMode int

const (
	SortByUsername SortMode = iota
	SortByName
	SortByRole
	SortByStatus
	SortByCreated
)

var sortKeys = map[SortMode]string{
	SortByUsername: "username",
	SortByName:     "name",
	SortByRole:     "role",
	SortByStatus:   "status",
	SortByCreated:  "created",
}

// Key is the short name used by the sort picker
func (m SortMode) Key() string {
	if k, ok := sortKeys[m]; ok {
		return k
	}
	return "username"
}

// ParseSortMode maps a sort key (or its first letter) to a mode
func ParseSortMode(s string) (SortMode, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for mode, key := range sortKeys {
		if s == key || (len(s) == 1 && strings.HasPrefix(key, s)) {
			return mode, true
		}
	}
	return SortByUsername, false
}

// SortUsers orders users in place; ties fall back to username
func SortUsers(users []*domain.User, mode SortMode) {
	sort.SliceStable(users, func(i, j int) bool {
		a, b := users[i], users[j]
		switch mode {
		case SortByName:
			if na, nb := strings.ToLower(a.FullName()), strings.ToLower(b.FullName()); na != nb {
				return na < nb
			}
		case SortByRole:
			if ra, rb := RolePriority(a.Role), RolePriority(b.Role); ra != rb {
				return ra < rb
			}
		case SortByStatus:
			if sa, sb := GetStatusPriority(a), GetStatusPriority(b); sa != sb {
				return sa > sb // Higher priority first
			}
		case SortByCreated:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		return strings.ToLower(a.Username) < strings.ToLower(b.Username)
	})
}

// RolePriority ranks roles in the order they are declared; unknown roles sort last
func RolePriority(r domain.Role) int {
	for i, known := range domain.Roles {
		if r == known {
			return i
		}
	}
	return len(domain.Roles)
}

// GetStatusPriority returns a priority value for sorting by status
func GetStatusPriority(u *domain.User) int {
	if !u.Active {
		return 3 // inactive accounts first
	}
	if !u.AccountNonLocked {
		return 2
	}
	if !u.AccountNonExpired || !u.CredentialsNonExpired {
		return 1
	}
	return 0
}
