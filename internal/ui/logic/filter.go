package logic

import (
	"strings"

	"nexventory/internal/domain"
)

// UserFilter matches users against a filter query. A query is a list of
// space separated terms that must all match; a term is either free text or
// one of the prefixed forms role:, region:, perm: and status:.
type UserFilter struct{}

// NewUserFilter creates a new user filter
func NewUserFilter() *UserFilter {
	return &UserFilter{}
}

// Apply returns the users that match query, keeping their order
func (f *UserFilter) Apply(users []*domain.User, query string) []*domain.User {
	out := make([]*domain.User, 0, len(users))
	for _, u := range users {
		if f.MatchesFilter(u, query) {
			out = append(out, u)
		}
	}
	return out
}

// MatchesFilter checks if a user matches the given filter query
func (f *UserFilter) MatchesFilter(u *domain.User, filterQuery string) bool {
	for _, term := range strings.Fields(strings.ToLower(filterQuery)) {
		if !f.matchesTerm(u, term) {
			return false
		}
	}
	return true
}

func (f *UserFilter) matchesTerm(u *domain.User, term string) bool {
	switch {
	case strings.HasPrefix(term, "status:"):
		return f.MatchesStatusFilter(u, strings.TrimPrefix(term, "status:"))
	case strings.HasPrefix(term, "role:"):
		return strings.HasPrefix(strings.ToLower(string(u.Role)), strings.TrimPrefix(term, "role:"))
	case strings.HasPrefix(term, "region:"):
		return containsFold(u.Regions, strings.TrimPrefix(term, "region:"))
	case strings.HasPrefix(term, "perm:"):
		return containsFold(u.Permissions, strings.TrimPrefix(term, "perm:"))
	}

	return strings.Contains(strings.ToLower(u.Username), term) ||
		strings.Contains(strings.ToLower(u.FullName()), term) ||
		strings.Contains(strings.ToLower(u.Email), term) ||
		strings.Contains(strings.ToLower(u.ID), term)
}

// MatchesStatusFilter checks if a user matches the given status filter
func (f *UserFilter) MatchesStatusFilter(u *domain.User, filter string) bool {
	switch filter {
	case "active":
		return u.Active
	case "inactive":
		return !u.Active
	case "locked":
		return !u.AccountNonLocked
	case "expired":
		return !u.AccountNonExpired || !u.CredentialsNonExpired
	case "temporary", "temp":
		return !u.NotTemporary
	default:
		return false
	}
}

// containsFold reports whether any value contains needle, ignoring case
func containsFold(values []string, needle string) bool {
	if needle == "" {
		return len(values) > 0
	}
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}
