package directory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"

	"nexventory/internal/domain"
)

// ErrUnsupportedFormat is returned for seed files that are not TOML or JSON
var ErrUnsupportedFormat = errors.New("unsupported directory file format")

// Seed is the canonical, normalized content of a directory file
type Seed struct {
	Permissions []domain.Permission `json:"permissions" toml:"permissions"`
	Regions     []domain.Region     `json:"regions" toml:"regions"`
	Users       []domain.User       `json:"users" toml:"users"`
}

// Format is a directory file encoding
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFor picks the encoding from a file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// LoadFile reads and normalizes a directory file
func LoadFile(path string) (*Seed, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory file: %w", err)
	}
	seed, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seed, nil
}

// Parse decodes raw directory data. Field names may be snake_case or
// camelCase; the result is always canonical.
func Parse(data []byte, format Format) (*Seed, error) {
	doc := map[string]any{}
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse toml: %w", err)
		}
	case FormatJSON:
		if err := decodeJSON(jsonc.ToJSON(data), &doc); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	return fromDocument(doc)
}

func fromDocument(doc map[string]any) (*Seed, error) {
	seed := &Seed{}

	perms, err := records(doc, "permissions")
	if err != nil {
		return nil, err
	}
	seenPerm := map[string]bool{}
	for _, r := range perms {
		p, err := normalizePermission(r)
		if err != nil {
			return nil, err
		}
		if seenPerm[p.Name] {
			return nil, fmt.Errorf("duplicate permission %q", p.Name)
		}
		seenPerm[p.Name] = true
		seed.Permissions = append(seed.Permissions, p)
	}

	regions, err := records(doc, "regions")
	if err != nil {
		return nil, err
	}
	seenRegion := map[string]bool{}
	for _, r := range regions {
		reg, err := normalizeRegion(r)
		if err != nil {
			return nil, err
		}
		if seenRegion[reg.Code] {
			return nil, fmt.Errorf("duplicate region %q", reg.Code)
		}
		seenRegion[reg.Code] = true
		seed.Regions = append(seed.Regions, reg)
	}

	users, err := records(doc, "users")
	if err != nil {
		return nil, err
	}
	seenUser := map[string]bool{}
	for _, r := range users {
		u, err := normalizeUser(r)
		if err != nil {
			return nil, err
		}
		if seenUser[u.ID] {
			return nil, fmt.Errorf("duplicate user id %q", u.ID)
		}
		seenUser[u.ID] = true
		seed.Users = append(seed.Users, *u)
	}
	return seed, nil
}

// Encode renders seed in format
func Encode(seed *Seed, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(seed)
	case FormatJSON:
		data, err := json.MarshalIndent(seed, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
}

// Export writes the store's content to path, encoded by extension
func Export(store Store, path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Encode(store.Snapshot(), format)
	if err != nil {
		return fmt.Errorf("failed to encode directory: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write directory file: %w", err)
	}
	return nil
}
