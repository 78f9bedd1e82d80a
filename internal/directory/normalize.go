package directory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"nexventory/internal/domain"
	"nexventory/internal/dualselect"
)

// record is one raw object as it arrived from a seed file
type record map[string]any

// pick returns the first present field among names. Callers list the
// snake_case spelling first so it wins when both are present.
func (r record) pick(names ...string) (any, bool) {
	for _, n := range names {
		if v, ok := r[n]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (r record) str(names ...string) string {
	v, ok := r.pick(names...)
	if !ok {
		return ""
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	default:
		return dualselect.NewID(x).Key()
	}
}

func (r record) boolean(def bool, names ...string) (bool, error) {
	v, ok := r.pick(names...)
	if !ok {
		return def, nil
	}
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return def, fmt.Errorf("field %s: %w", names[0], err)
		}
		return b, nil
	}
	return def, fmt.Errorf("field %s: expected boolean, got %T", names[0], v)
}

// list accepts ["A", "B"] or [{"<field>": "A"}, ...]
func (r record) list(objectField string, names ...string) ([]string, error) {
	v, ok := r.pick(names...)
	if !ok {
		return []string{}, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("field %s: expected list, got %T", names[0], v)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch x := item.(type) {
		case map[string]any:
			s := record(x).str(objectField, snakeToCamel(objectField), "name", "code")
			if s == "" {
				return nil, fmt.Errorf("field %s: object without %s", names[0], objectField)
			}
			out = append(out, s)
		case nil:
		default:
			out = append(out, dualselect.NewID(x).Key())
		}
	}
	return out, nil
}

var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

func (r record) time(names ...string) (time.Time, error) {
	v, ok := r.pick(names...)
	if !ok {
		return time.Time{}, nil
	}
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case toml.LocalDateTime:
		return x.AsTime(time.UTC), nil
	case toml.LocalDate:
		return x.AsTime(time.UTC), nil
	case string:
		if x == "" {
			return time.Time{}, nil
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, x); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("field %s: unrecognised time %q", names[0], x)
	}
	return time.Time{}, fmt.Errorf("field %s: expected time, got %T", names[0], v)
}

// snakeToCamel turns first_name into firstName
func snakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// names expands each snake_case field into its snake and camel spellings
func names(fields ...string) []string {
	out := make([]string, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f)
		if c := snakeToCamel(f); c != f {
			out = append(out, c)
		}
	}
	return out
}

// normalizeUser maps a raw user record onto the canonical domain.User
func normalizeUser(r record) (*domain.User, error) {
	u := &domain.User{
		ID:        r.str("id"),
		Username:  r.str("username"),
		Email:     r.str("email"),
		FirstName: r.str(names("first_name")...),
		LastName:  r.str(names("last_name")...),
		Phone:     r.str("phone"),
		CreatedBy: r.str(names("created_by")...),
	}
	if u.ID == "" {
		return nil, fmt.Errorf("user %q: missing id", u.Username)
	}
	if u.Username == "" {
		return nil, fmt.Errorf("user %s: missing username", u.ID)
	}

	if role := r.str("role"); role != "" {
		parsed, err := domain.ParseRole(role)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", u.ID, err)
		}
		u.Role = parsed
	} else {
		u.Role = domain.RoleUser
	}

	var err error
	flags := []struct {
		dst    *bool
		fields []string
	}{
		{&u.Active, append(names("is_active"), "active")},
		{&u.NotTemporary, append(names("is_not_temporary"), names("not_temporary")...)},
		{&u.AccountNonExpired, names("account_non_expired")},
		{&u.AccountNonLocked, names("account_non_locked")},
		{&u.CredentialsNonExpired, names("credentials_non_expired")},
	}
	for _, f := range flags {
		if *f.dst, err = r.boolean(true, f.fields...); err != nil {
			return nil, fmt.Errorf("user %s: %w", u.ID, err)
		}
	}

	if u.CreatedAt, err = r.time(names("created_at")...); err != nil {
		return nil, fmt.Errorf("user %s: %w", u.ID, err)
	}
	if u.Regions, err = r.list("region_code", names("regions", "region_codes")...); err != nil {
		return nil, fmt.Errorf("user %s: %w", u.ID, err)
	}
	if u.Permissions, err = r.list("permission_name", "permissions"); err != nil {
		return nil, fmt.Errorf("user %s: %w", u.ID, err)
	}
	return u, nil
}

func normalizePermission(r record) (domain.Permission, error) {
	p := domain.Permission{
		Name:        r.str(append(names("permission_name"), "name")...),
		Description: r.str("description"),
	}
	if p.Name == "" {
		return p, fmt.Errorf("permission without name")
	}
	if v, ok := r.pick("id"); ok {
		n, err := strconv.ParseInt(dualselect.NewID(v).Key(), 10, 64)
		if err != nil {
			return p, fmt.Errorf("permission %s: invalid id: %w", p.Name, err)
		}
		p.ID = n
	}
	var err error
	if p.Active, err = r.boolean(true, append(names("is_active"), "active")...); err != nil {
		return p, fmt.Errorf("permission %s: %w", p.Name, err)
	}
	return p, nil
}

func normalizeRegion(r record) (domain.Region, error) {
	reg := domain.Region{
		Code:    r.str(append(names("region_code"), "code")...),
		Name:    r.str(append(names("region_name"), "name")...),
		City:    r.str(names("city_name")...),
		State:   r.str(names("state_name")...),
		Country: r.str(names("country_name")...),
	}
	if reg.Code == "" {
		return reg, fmt.Errorf("region %q: missing code", reg.Name)
	}
	if reg.Name == "" {
		reg.Name = reg.Code
	}
	var err error
	if reg.Active, err = r.boolean(true, append(names("is_active"), "active")...); err != nil {
		return reg, fmt.Errorf("region %s: %w", reg.Code, err)
	}
	return reg, nil
}

// records extracts the list of objects stored under key
func records(doc map[string]any, key string) ([]record, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a list, got %T", key, v)
	}
	out := make([]record, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected an object, got %T", key, i, item)
		}
		out = append(out, record(m))
	}
	return out, nil
}

// decodeJSON keeps JSON numbers exact so numeric ids survive normalization
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
